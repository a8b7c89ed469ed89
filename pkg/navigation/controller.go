package navigation

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

// ErrNotFoundMisconfigured is returned when a path matches nothing and the
// not-found pattern has no registered route either.
var ErrNotFoundMisconfigured = stderrors.New("not-found route is not registered")

// DefaultTarget is reported as the target before anything was resolved.
const DefaultTarget = "div"

type navKind string

const (
	kindInitial navKind = "initial"
	kindPush    navKind = "navigate"
	kindPop     navKind = "popstate"
)

const (
	outcomeMatched  = "matched"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Option configures a Controller.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	metrics       *Metrics
	defaultTarget string
	historyTitle  string
}

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer.
// Default: the global provider's "outlet" tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMetrics records navigations into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithDefaultTarget sets the target reported before the first resolution.
// Default: "div".
func WithDefaultTarget(target string) Option {
	return func(c *config) {
		c.defaultTarget = target
	}
}

// WithHistoryTitle sets the title passed to History.Push. Default: "".
func WithHistoryTitle(title string) Option {
	return func(c *config) {
		c.historyTitle = title
	}
}

// Controller resolves navigations against the route collection it owns,
// mutates history and hands render data to the view layer.
//
// A Controller is not safe for concurrent use. The host must deliver
// events one at a time, in order.
type Controller[M any] struct {
	routes   *router.Collection[M]
	history  History
	renderer Renderer[M]
	location *routepath.Location

	logger        *slog.Logger
	tracer        trace.Tracer
	metrics       *Metrics
	defaultTarget string
	historyTitle  string

	// ctx parents navigation spans; set by Mount.
	ctx context.Context

	phase    Phase
	entry    *router.Entry[M]
	params   router.Params
	query    routepath.Query
	target   string
	finalURI string

	listeners []func()
}

// New creates a controller owning routes.
// A nil routes starts from an empty collection; nil history or renderer
// discard their calls.
func New[M any](routes *router.Collection[M], history History, renderer Renderer[M], opts ...Option) *Controller[M] {
	cfg := config{defaultTarget: DefaultTarget}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.tracer == nil {
		cfg.tracer = defaultTracer()
	}
	if routes == nil {
		routes = router.NewCollection[M]()
	}
	if history == nil {
		history = HistoryFunc(func(HistoryState, string, string) {})
	}
	if renderer == nil {
		renderer = RendererFunc[M](func(string, RenderData[M]) {})
	}

	return &Controller[M]{
		routes:        routes,
		history:       history,
		renderer:      renderer,
		location:      routepath.NewLocation(""),
		logger:        cfg.logger,
		tracer:        cfg.tracer,
		metrics:       cfg.metrics,
		defaultTarget: cfg.defaultTarget,
		historyTitle:  cfg.historyTitle,
		ctx:           context.Background(),
		target:        cfg.defaultTarget,
		params:        router.Params{},
	}
}

// Mount performs the initial-load navigation to uri (the browser's current
// location). It never pushes history: the browser already has an entry for
// the loaded page. ctx parents the spans of all later navigations.
func (c *Controller[M]) Mount(ctx context.Context, uri string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	return c.navigate(kindInitial, uri)
}

// Unmount detaches event listeners and resets the controller to Idle.
func (c *Controller[M]) Unmount() {
	for _, off := range c.listeners {
		off()
	}
	c.listeners = nil
	c.phase = PhaseIdle
	c.entry = nil
	c.params = router.Params{}
	c.query = nil
	c.target = c.defaultTarget
	c.finalURI = ""
}

// HandleNavigationRequest navigates forward to uri and pushes exactly one
// history entry keyed by the canonical final URI.
func (c *Controller[M]) HandleNavigationRequest(uri string) error {
	return c.navigate(kindPush, uri)
}

// HandlePopSignal re-resolves the location restored by a back/forward
// move. It never pushes history. query may be given with or without its
// leading "?".
func (c *Controller[M]) HandlePopSignal(path, query string) error {
	uri := path
	if query != "" {
		if query[0] != '?' {
			uri += "?"
		}
		uri += query
	}
	return c.navigate(kindPop, uri)
}

// navigate runs one navigation to completion.
func (c *Controller[M]) navigate(kind navKind, uri string) error {
	start := time.Now()
	_, span := c.startSpan(kind, uri)
	defer span.End()

	previous := c.phase
	c.phase = PhaseResolving
	c.location.SetURI(uri)
	path := c.location.Path()

	phase := PhaseMatched
	outcome := outcomeMatched
	entry, ok := c.routes.Lookup(path)
	if !ok {
		phase = PhaseNotFound
		outcome = outcomeNotFound
		entry = c.routes.NotFound()
		if entry.Route() == nil {
			c.phase = previous
			err := errors.New("E201").
				WithDetail(fmt.Sprintf("no route matched %q and the not-found pattern %q has no registered route", path, entry.Pattern())).
				WithSuggestion(fmt.Sprintf("Register a route for %q or configure a different not-found pattern", entry.Pattern())).
				Wrap(ErrNotFoundMisconfigured)
			c.logger.Error("navigation failed",
				"kind", string(kind),
				"path", path,
				"not_found", entry.Pattern(),
				"error", err)
			c.metrics.recordNavigation(kind, outcomeError, time.Since(start))
			markSpanError(span, err)
			return err
		}
		c.logger.Info("route not found",
			"kind", string(kind),
			"path", path,
			"fallback", entry.Pattern())
	}

	route := entry.Route()
	params := entry.Extract(path)
	query := c.location.Query()
	finalURI := c.location.FinalURI()

	pushed := false
	if kind == kindPush {
		c.history.Push(HistoryState{Key: finalURI}, c.historyTitle, finalURI)
		c.metrics.recordPush()
		pushed = true
	}

	c.phase = phase
	c.entry = entry
	c.params = params
	c.query = query
	c.target = route.TargetID()
	c.finalURI = finalURI

	c.logger.Debug("navigation resolved",
		"kind", string(kind),
		"path", path,
		"pattern", entry.Pattern(),
		"target", c.target,
		"pushed", pushed)

	c.renderer.Render(c.target, newRenderData(route, params, query))

	c.metrics.recordNavigation(kind, outcome, time.Since(start))
	span.SetAttributes(
		attrPath.String(path),
		attrPattern.String(entry.Pattern()),
		attrTarget.String(c.target),
		attrOutcome.String(outcome),
		attrPushed.Bool(pushed),
	)
	return nil
}

// State returns a snapshot of the navigation state.
func (c *Controller[M]) State() State {
	s := State{
		Phase:           c.phase,
		TargetID:        c.target,
		Params:          c.params.Clone(),
		Query:           c.query.Clone(),
		FinalURI:        c.finalURI,
		NotFoundPattern: c.routes.NotFoundPattern(),
	}
	if c.entry != nil {
		s.Pattern = c.entry.Pattern()
		if r := c.entry.Route(); r != nil {
			s.Protected = r.Protected()
		}
	}
	return s
}

// Entry returns the current resolved entry, or nil before the first
// navigation.
func (c *Controller[M]) Entry() *router.Entry[M] {
	return c.entry
}

// RenderData assembles the render bundle for the current state.
func (c *Controller[M]) RenderData() RenderData[M] {
	var route *router.Route[M]
	if c.entry != nil {
		route = c.entry.Route()
	}
	return newRenderData(route, c.params, c.query)
}

// Routes returns the collection owned by the controller.
func (c *Controller[M]) Routes() *router.Collection[M] {
	return c.routes
}
