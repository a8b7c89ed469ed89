// Package middleware provides net/http middleware for outlet hosts.
//
// This package includes:
//   - OpenTelemetry tracing of HTTP requests
//   - Prometheus request metrics
//
// Both label requests by their chi route pattern ("/resolve", "/ws")
// rather than the raw URL, keeping span names and label values bounded.
//
// # OpenTelemetry Middleware
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("storefront"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// Incoming trace context is extracted with the global propagator, so spans
// join the caller's trace.
//
// # Prometheus Metrics
//
//	r.Use(middleware.Prometheus(
//	    middleware.WithNamespace("storefront"),
//	    middleware.WithRegistry(registry),
//	))
//
// Metrics collected:
//   - outlet_http_requests_total{route,method,status}
//   - outlet_http_request_duration_seconds{route,method}
package middleware
