// Package errors provides structured, actionable error messages for outlet.
//
// Every error carries a stable code (e.g. "E201") that maps to a short
// message, a longer explanation and a documentation URL. Callers attach
// detail and a fix suggestion, and may wrap an underlying cause so that
// errors.Is and errors.As keep working across package boundaries.
//
// # Error Categories
//
//   - config: project configuration (outlet.json / outlet.yaml)
//   - manifest: route manifests (file, YAML, JSON, S3)
//   - navigation: navigation failures that must stop the controller
//   - protocol: host bridge messages
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E201").
//	    WithDetail(`pattern "/404" has no registered route`).
//	    WithSuggestion(`Register a route for "/404" or change notFound in outlet.json`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E201: Not-found route is not configured
//	//
//	//   pattern "/404" has no registered route
//	//
//	//   Hint: Register a route for "/404" or change notFound in outlet.json
//	//
//	//   Learn more: https://outlet.dev/docs/errors/E201
package errors
