package host

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/manifest"
	"github.com/vango-dev/outlet/pkg/middleware"
	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

// Server bridges browsers to navigation controllers.
type Server struct {
	routes   *router.Collection[router.Meta]
	config   *Config
	upgrader websocket.Upgrader
	mux      chi.Router
	logger   *slog.Logger

	registry    *prometheus.Registry
	metrics     *navigation.Metrics
	connections prometheus.Gauge

	mu         sync.Mutex
	sessions   map[*session]struct{}
	nextID     atomic.Uint64
	httpServer *http.Server
}

// New creates a server for routes. The collection is read-only from the
// server's point of view: every connection works on its own clone.
func New(routes *router.Collection[router.Meta], config *Config) *Server {
	config = config.withDefaults()

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = router.NewCollection[router.Meta]()
	}
	checkOrigin := config.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = originCheck(config.AllowedOrigins)
	}

	s := &Server{
		routes: routes,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     checkOrigin,
		},
		logger:   logger,
		sessions: make(map[*session]struct{}),
	}

	if !config.DisableMetrics {
		s.registry = config.Registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		s.metrics = navigation.NewMetrics(
			navigation.WithNamespace(config.MetricsNamespace),
			navigation.WithRegistry(s.registry),
		)
		s.connections = promauto.With(s.registry).NewGauge(prometheus.GaugeOpts{
			Namespace: config.MetricsNamespace,
			Subsystem: "host",
			Name:      "connections",
			Help:      "Number of open WebSocket connections",
		})
	}

	s.mux = s.routesHandler()
	return s
}

func (s *Server) routesHandler() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	tracing := []middleware.OTelOption{
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
	}
	if s.config.Tracer != nil {
		tracing = append(tracing, middleware.WithTracer(s.config.Tracer))
	}
	r.Use(middleware.OpenTelemetry(tracing...))
	if s.registry != nil {
		r.Use(middleware.Prometheus(
			middleware.WithNamespace(s.config.MetricsNamespace),
			middleware.WithRegistry(s.registry),
		))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/routes", s.handleRoutes)
	r.Get("/resolve", s.handleResolve)
	r.Get("/ws", s.HandleWebSocket)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler, for mounting under another
// router.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Routes returns the collection served.
func (s *Server) Routes() *router.Collection[router.Meta] {
	return s.routes
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Sessions returns the number of open WebSocket connections.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:    s.config.Addr,
		Handler: s,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every WebSocket connection and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for sess := range s.sessions {
		sess.closeGoingAway()
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// HandleWebSocket upgrades the request and runs a navigation session until
// the connection closes.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		uri = "/"
	}
	if err := routepath.ValidateNavURI(uri); err != nil {
		writeError(w, http.StatusBadRequest, invalidMessage("invalid initial uri "+strconv.Quote(uri), err))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id := s.nextID.Add(1)
	sess := newSession(conn, s, s.logger.With("session", id))
	s.track(sess)
	defer s.untrack(sess)

	sess.run(r.Context(), uri)
}

func (s *Server) track(sess *session) {
	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	if s.connections != nil {
		s.connections.Inc()
	}
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	if s.connections != nil {
		s.connections.Dec()
	}
}

// newController builds the controller for one connection.
func (s *Server) newController(history navigation.History, renderer navigation.Renderer[router.Meta], logger *slog.Logger) *navigation.Controller[router.Meta] {
	opts := []navigation.Option{
		navigation.WithLogger(logger),
		navigation.WithHistoryTitle(s.config.HistoryTitle),
	}
	if s.metrics != nil {
		opts = append(opts, navigation.WithMetrics(s.metrics))
	}
	if s.config.Tracer != nil {
		opts = append(opts, navigation.WithTracer(s.config.Tracer))
	}
	return navigation.New(s.routes.Clone(), history, renderer, opts...)
}

// ResolveResponse is the body of GET /resolve.
type ResolveResponse struct {
	State navigation.State                   `json:"state"`
	Data  navigation.RenderData[router.Meta] `json:"data"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.Query().Get("uri")
	if err := routepath.ValidateNavURI(uri); err != nil {
		writeError(w, http.StatusBadRequest, invalidMessage("invalid uri "+strconv.Quote(uri), err))
		return
	}

	// A throwaway controller gives /resolve the exact semantics of an
	// initial load. Mount never pushes and the collection is only read.
	ctrl := navigation.New(s.routes, nil, nil, navigation.WithLogger(s.logger))
	if err := ctrl.Mount(r.Context(), uri); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusOK
	state := ctrl.State()
	if state.Phase == navigation.PhaseNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, ResolveResponse{State: state, Data: ctrl.RenderData()})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	m := manifest.FromCollection(s.routes)

	switch r.URL.Query().Get("format") {
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml")
		if err := m.Encode(w, manifest.FormatYAML); err != nil {
			s.logger.Error("encode routes", "error", err)
		}
	default:
		writeJSON(w, http.StatusOK, m)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"routes":   s.routes.Len(),
		"sessions": s.Sessions(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if errors.CodeOf(err) == "" {
		err = errors.New("E210").Wrap(err)
	}
	writeJSON(w, status, errorMessage(err))
}
