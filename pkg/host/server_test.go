package host

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vango-dev/outlet/pkg/manifest"
	"github.com/vango-dev/outlet/pkg/router"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, routes *router.Collection[router.Meta]) *Server {
	t.Helper()
	if routes == nil {
		routes = manifest.BaseRoutes()
	}
	return New(routes, &Config{Logger: quietLogger()})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["routes"] != float64(3) {
		t.Errorf("routes = %v, want 3", body["routes"])
	}
}

func TestResolve(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		uri     string
		status  int
		phase   string
		target  string
		pattern string
	}{
		{"index", "/", http.StatusOK, "matched", "default-index-view", "/"},
		{"empty uri", "", http.StatusOK, "matched", "default-index-view", "/"},
		{"dynamic", "/dynamic/a/example/b", http.StatusOK, "matched", "dynamic-example-view", "/dynamic/:firstValue/example/:secondValue"},
		{"unknown", "/nowhere", http.StatusNotFound, "not_found", "default-not-found-view", "/404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/resolve?uri="+tt.uri)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}

			var body struct {
				State struct {
					Phase   string `json:"phase"`
					Target  string `json:"target"`
					Pattern string `json:"pattern"`
				} `json:"state"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.State.Phase != tt.phase {
				t.Errorf("phase = %q, want %q", body.State.Phase, tt.phase)
			}
			if body.State.Target != tt.target {
				t.Errorf("target = %q, want %q", body.State.Target, tt.target)
			}
			if body.State.Pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", body.State.Pattern, tt.pattern)
			}
		})
	}
}

func TestResolveParamsAndQuery(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s, "/resolve?uri="+"%2Fdynamic%2Fx%2Fexample%2Fy%3Ftab%3Dposts")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body ResolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body.Data.Param("firstValue"); got != "x" {
		t.Errorf("firstValue = %q, want %q", got, "x")
	}
	if got := body.Data.Param("secondValue"); got != "y" {
		t.Errorf("secondValue = %q, want %q", got, "y")
	}
	if got := body.Data.Query.Get("tab"); got != "posts" {
		t.Errorf("tab = %q, want %q", got, "posts")
	}
	if body.State.FinalURI != "/dynamic/x/example/y?tab=posts" {
		t.Errorf("uri = %q", body.State.FinalURI)
	}
	if body.Data.Title != "Dynamic Example" {
		t.Errorf("title = %q, want %q", body.Data.Title, "Dynamic Example")
	}
}

func TestResolveInvalidURI(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s, "/resolve?uri=https://evil.example/")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var msg ServerMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != MsgError || msg.Code != "E210" {
		t.Errorf("msg = %+v, want error E210", msg)
	}
}

func TestResolveNotFoundMisconfigured(t *testing.T) {
	routes := router.NewCollection[router.Meta]()
	routes.Add("/", router.NewRoute("index", false, router.Meta{}))
	s := newTestServer(t, routes)

	rec := get(t, s, "/resolve?uri=/missing")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	var msg ServerMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Code != "E201" {
		t.Errorf("code = %q, want E201", msg.Code)
	}
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := get(t, s, "/routes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	m, err := manifest.Parse(rec.Body.Bytes(), manifest.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Routes) != 3 {
		t.Errorf("len(Routes) = %d, want 3", len(m.Routes))
	}
	if m.NotFound != "/404" {
		t.Errorf("NotFound = %q, want /404", m.NotFound)
	}

	rec = get(t, s, "/routes?format=yaml")
	if ct := rec.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type = %q, want application/yaml", ct)
	}
	if _, err := manifest.Parse(rec.Body.Bytes(), manifest.FormatYAML); err != nil {
		t.Errorf("Parse yaml: %v", err)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "outlet_host_connections") {
		t.Errorf("metrics output missing outlet_host_connections:\n%s", rec.Body.String())
	}
}

func TestMetricsDisabled(t *testing.T) {
	s := New(manifest.BaseRoutes(), &Config{Logger: quietLogger(), DisableMetrics: true})
	if s.Registry() != nil {
		t.Error("Registry() should be nil with metrics disabled")
	}
	rec := get(t, s, "/metrics")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := (*Config)(nil).withDefaults()
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Addr)
	}
	if cfg.MetricsNamespace != "outlet" {
		t.Errorf("MetricsNamespace = %q, want outlet", cfg.MetricsNamespace)
	}

	cfg = (&Config{Addr: ":9999"}).withDefaults()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.WriteBufferSize != 4096 {
		t.Errorf("WriteBufferSize = %d, want 4096", cfg.WriteBufferSize)
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{"no origin", "example.com", "", true},
		{"same origin", "example.com", "https://example.com", true},
		{"same origin with port", "localhost:3000", "http://localhost:3000", true},
		{"different host", "example.com", "https://evil.com", false},
		{"different port", "localhost:3000", "http://localhost:4000", false},
		{"bad origin", "example.com", "://bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := SameOriginCheck(req); got != tt.want {
				t.Errorf("SameOriginCheck() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	check := originCheck([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Host = "api.example.com"
	req.Header.Set("Origin", "https://app.example.com")
	if !check(req) {
		t.Error("allowed origin rejected")
	}

	req.Header.Set("Origin", "https://evil.example.com")
	if check(req) {
		t.Error("unlisted origin accepted")
	}
}
