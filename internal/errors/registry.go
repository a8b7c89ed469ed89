package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (E120-E149)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The outlet configuration file could not be read or parsed.",
		DocURL:   "https://outlet.dev/docs/errors/E120",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or has an unsupported form.",
		DocURL:   "https://outlet.dev/docs/errors/E122",
	},
	"E141": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No outlet.json or outlet.yaml was found.",
		DocURL:   "https://outlet.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryConfig,
		Message:  "Configuration file already exists",
		Detail:   "Refusing to overwrite an existing outlet configuration.",
		DocURL:   "https://outlet.dev/docs/errors/E142",
	},

	// ============================================
	// Routing Errors (E200-E219)
	// ============================================

	"E200": {
		Category: CategoryManifest,
		Message:  "Invalid route manifest",
		Detail:   "The route manifest could not be decoded into a route collection.",
		DocURL:   "https://outlet.dev/docs/errors/E200",
	},
	"E201": {
		Category: CategoryNavigation,
		Message:  "Not-found route is not configured",
		Detail:   "No registered pattern matched the request and the not-found pattern has no registered route.",
		DocURL:   "https://outlet.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryManifest,
		Message:  "Route manifest source unavailable",
		Detail:   "The route manifest could not be fetched from its source.",
		DocURL:   "https://outlet.dev/docs/errors/E202",
	},
	"E210": {
		Category: CategoryProtocol,
		Message:  "Invalid host message",
		Detail:   "The host sent a message that is not a navigate or popstate request.",
		DocURL:   "https://outlet.dev/docs/errors/E210",
	},

	// ============================================
	// CLI Errors (E300-E319)
	// ============================================

	"E300": {
		Category: CategoryCLI,
		Message:  "No route manifest given",
		Detail:   "Pass --routes or set routes in the configuration file.",
		DocURL:   "https://outlet.dev/docs/errors/E300",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
