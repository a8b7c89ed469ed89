package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(Prometheus(WithRegistry(reg), WithNamespace("test")))

	serve(r, "/users/1")
	serve(r, "/users/2")
	serve(r, "/boom")
	serve(r, "/missing")

	tests := []struct {
		route, status string
		want          float64
	}{
		{"/users/{id}", "200", 2},
		{"/boom", "500", 1},
		{"unmatched", "404", 1},
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "test_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var route, status string
			for _, l := range m.GetLabel() {
				switch l.GetName() {
				case "route":
					route = l.GetValue()
				case "status":
					status = l.GetValue()
				}
			}
			counts[route+" "+status] = m.GetCounter().GetValue()
		}
	}
	for _, tt := range tests {
		if got := counts[tt.route+" "+tt.status]; got != tt.want {
			t.Errorf("requests_total{route=%q,status=%q} = %v, want %v", tt.route, tt.status, got, tt.want)
		}
	}

	n, err := testutil.GatherAndCount(reg, "test_http_request_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 3 {
		t.Errorf("duration series = %d, want 3", n)
	}
}

func TestPrometheusDefaults(t *testing.T) {
	config := defaultMetricsConfig()
	if config.Namespace != "outlet" {
		t.Errorf("Namespace = %q, want outlet", config.Namespace)
	}
	if config.Subsystem != "http" {
		t.Errorf("Subsystem = %q, want http", config.Subsystem)
	}

	WithSubsystem("api")(&config)
	WithConstLabels(prometheus.Labels{"app": "shop"})(&config)
	WithBuckets([]float64{0.1, 1})(&config)
	if config.Subsystem != "api" || config.ConstLabels["app"] != "shop" || len(config.Buckets) != 2 {
		t.Errorf("options not applied: %+v", config)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := map[int]string{
		0:   "101",
		200: "200",
		404: "404",
	}
	for status, want := range tests {
		if got := statusLabel(status); got != want {
			t.Errorf("statusLabel(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestOpenTelemetryPassesSpanToHandler(t *testing.T) {
	var (
		sawSpan bool
		traced  bool
	)
	r := chi.NewRouter()
	r.Use(OpenTelemetry(
		WithTracer(noop.NewTracerProvider().Tracer("test")),
		WithRequestFilter(func(r *http.Request) bool {
			traced = r.URL.Path != "/skip"
			return traced
		}),
	))
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNoContent)
	})

	if rec := serve(r, "/users/1"); rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if !traced || !sawSpan {
		t.Errorf("traced = %v, sawSpan = %v, want both true", traced, sawSpan)
	}

	if rec := serve(r, "/skip"); rec.Code != http.StatusNoContent {
		t.Errorf("filtered status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if traced {
		t.Error("filter should have skipped /skip")
	}
}

func TestOpenTelemetryDefaultTracer(t *testing.T) {
	r := newRouter(OpenTelemetry(WithTracerName("outlet-test")))
	if rec := serve(r, "/boom"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if rec := serve(r, "/users/9"); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
