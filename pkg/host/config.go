package host

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address used by Run.
	// Default: ":3000".
	Addr string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096 each.
	ReadBufferSize  int
	WriteBufferSize int

	// IdleTimeout closes a WebSocket connection that sends nothing for this
	// long. Zero disables the deadline.
	// Default: 5 minutes.
	IdleTimeout time.Duration

	// WriteTimeout bounds each WebSocket write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in Run.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the Origin of WebSocket upgrades.
	// Default: same-origin, plus AllowedOrigins.
	CheckOrigin func(r *http.Request) bool

	// AllowedOrigins are extra origins accepted by the default CheckOrigin,
	// for example "https://app.example.com".
	AllowedOrigins []string

	// Registry receives the server's collectors and backs /metrics.
	// Default: a fresh registry per server.
	Registry *prometheus.Registry

	// MetricsNamespace prefixes metric names.
	// Default: "outlet".
	MetricsNamespace string

	// DisableMetrics removes /metrics and navigation metrics.
	DisableMetrics bool

	// Tracer is handed to every controller. Nil uses the global provider.
	Tracer trace.Tracer

	// HistoryTitle is sent with every history.push message.
	HistoryTitle string

	// Logger receives server and session logs.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Addr:             ":3000",
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		IdleTimeout:      5 * time.Minute,
		WriteTimeout:     10 * time.Second,
		ShutdownTimeout:  30 * time.Second,
		MetricsNamespace: "outlet",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	out := *DefaultConfig()
	if c == nil {
		return &out
	}
	merged := *c
	if merged.Addr == "" {
		merged.Addr = out.Addr
	}
	if merged.ReadBufferSize == 0 {
		merged.ReadBufferSize = out.ReadBufferSize
	}
	if merged.WriteBufferSize == 0 {
		merged.WriteBufferSize = out.WriteBufferSize
	}
	if merged.IdleTimeout == 0 {
		merged.IdleTimeout = out.IdleTimeout
	}
	if merged.WriteTimeout == 0 {
		merged.WriteTimeout = out.WriteTimeout
	}
	if merged.ShutdownTimeout == 0 {
		merged.ShutdownTimeout = out.ShutdownTimeout
	}
	if merged.MetricsNamespace == "" {
		merged.MetricsNamespace = out.MetricsNamespace
	}
	return &merged
}

// SameOriginCheck accepts WebSocket upgrades whose Origin host equals the
// request host, and requests without an Origin header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

// originCheck builds the default CheckOrigin from AllowedOrigins.
func originCheck(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return SameOriginCheck
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		if set[r.Header.Get("Origin")] {
			return true
		}
		return SameOriginCheck(r)
	}
}
