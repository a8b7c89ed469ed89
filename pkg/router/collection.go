package router

import (
	"sort"
	"strings"
)

// DefaultNotFoundPattern is the pattern used when nothing else matches.
const DefaultNotFoundPattern = "/404"

// TieBreak selects how a Collection picks among several matching patterns.
type TieBreak int

const (
	// TieBreakSpecificity prefers the candidate with the fewest dynamic
	// segments, then the most recently registered one.
	TieBreakSpecificity TieBreak = iota

	// TieBreakLastRegistered takes the last registered candidate. A literal
	// candidate is only accepted when it equals the path exactly; otherwise
	// the path does not match at all.
	TieBreakLastRegistered
)

// String returns the configuration name of the policy.
func (t TieBreak) String() string {
	switch t {
	case TieBreakSpecificity:
		return "specificity"
	case TieBreakLastRegistered:
		return "last-registered"
	default:
		return "unknown"
	}
}

// ParseTieBreak converts a configuration name into a TieBreak.
func ParseTieBreak(s string) (TieBreak, bool) {
	switch s {
	case "", "specificity":
		return TieBreakSpecificity, true
	case "last-registered":
		return TieBreakLastRegistered, true
	default:
		return TieBreakSpecificity, false
	}
}

// Option configures a Collection.
type Option func(*options)

type options struct {
	notFound string
	tieBreak TieBreak
}

// WithNotFoundPattern sets the pattern used as the fallback for unmatched
// paths. Default: "/404".
func WithNotFoundPattern(pattern string) Option {
	return func(o *options) {
		o.notFound = pattern
	}
}

// WithTieBreak sets the policy used when several patterns match.
func WithTieBreak(t TieBreak) Option {
	return func(o *options) {
		o.tieBreak = t
	}
}

// Registration is one pattern → route pair, in registration order.
type Registration[M any] struct {
	Pattern string
	Route   *Route[M]
}

type registration[M any] struct {
	pattern string
	route   *Route[M]
	matcher *matcher
}

// Collection maps patterns to routes and resolves paths against them.
type Collection[M any] struct {
	opts   options
	byName map[string]*registration[M]
	order  []*registration[M]
}

// NewCollection creates an empty collection.
func NewCollection[M any](opts ...Option) *Collection[M] {
	o := options{notFound: DefaultNotFoundPattern}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[M]{
		opts:   o,
		byName: make(map[string]*registration[M]),
	}
}

// Add registers route under pattern, overwriting any previous route for the
// same pattern. An overwritten pattern keeps its original position.
// Patterns are not validated; malformed dynamic markers are literal text.
func (c *Collection[M]) Add(pattern string, route *Route[M]) {
	if reg, ok := c.byName[pattern]; ok {
		reg.route = route
		return
	}
	reg := &registration[M]{
		pattern: pattern,
		route:   route,
		matcher: compilePattern(pattern),
	}
	c.byName[pattern] = reg
	c.order = append(c.order, reg)
}

// Lookup resolves path to the best registered pattern.
// It reports false when no pattern matches; the not-found fallback is not
// applied.
func (c *Collection[M]) Lookup(path string) (*Entry[M], bool) {
	var best *registration[M]

	switch c.opts.tieBreak {
	case TieBreakLastRegistered:
		for _, reg := range c.order {
			if reg.matcher.matches(path) {
				best = reg
			}
		}
		if best == nil {
			return nil, false
		}
		if !strings.Contains(best.pattern, ParamMarker) && best.pattern != path {
			return nil, false
		}

	default:
		for _, reg := range c.order {
			if !reg.matcher.matches(path) {
				continue
			}
			if reg.matcher.dynamic == 0 && reg.pattern != path {
				continue
			}
			// Later registrations win ties, hence <=.
			if best == nil || reg.matcher.dynamic <= best.matcher.dynamic {
				best = reg
			}
		}
		if best == nil {
			return nil, false
		}
	}

	return NewEntry(best.pattern, best.route), true
}

// Match resolves path to an entry. When nothing matches it falls back to
// the not-found pattern, whose entry has a nil route if that pattern is
// not registered either. Match never mutates the collection.
func (c *Collection[M]) Match(path string) *Entry[M] {
	if entry, ok := c.Lookup(path); ok {
		return entry
	}
	return c.NotFound()
}

// NotFound returns the entry for the not-found pattern.
func (c *Collection[M]) NotFound() *Entry[M] {
	return NewEntry(c.opts.notFound, c.Get(c.opts.notFound))
}

// Get returns the route registered under exactly pattern, or nil.
func (c *Collection[M]) Get(pattern string) *Route[M] {
	if reg, ok := c.byName[pattern]; ok {
		return reg.route
	}
	return nil
}

// NotFoundPattern returns the configured not-found pattern.
func (c *Collection[M]) NotFoundPattern() string {
	return c.opts.notFound
}

// SetNotFoundPattern changes the not-found pattern.
func (c *Collection[M]) SetNotFoundPattern(pattern string) {
	c.opts.notFound = pattern
}

// TieBreak returns the configured tie-break policy.
func (c *Collection[M]) TieBreak() TieBreak {
	return c.opts.tieBreak
}

// SetRouteMap replaces every registration with the contents of routes.
// Go maps are unordered, so patterns are registered in sorted order; use
// SetRoutes when registration order matters.
func (c *Collection[M]) SetRouteMap(routes map[string]*Route[M]) {
	patterns := make([]string, 0, len(routes))
	for p := range routes {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	regs := make([]Registration[M], 0, len(patterns))
	for _, p := range patterns {
		regs = append(regs, Registration[M]{Pattern: p, Route: routes[p]})
	}
	c.SetRoutes(regs)
}

// SetRoutes replaces every registration, adding regs in order.
func (c *Collection[M]) SetRoutes(regs []Registration[M]) {
	c.byName = make(map[string]*registration[M], len(regs))
	c.order = nil
	for _, r := range regs {
		c.Add(r.Pattern, r.Route)
	}
}

// RouteMap returns a copy of the pattern → route mapping.
func (c *Collection[M]) RouteMap() map[string]*Route[M] {
	m := make(map[string]*Route[M], len(c.order))
	for _, reg := range c.order {
		m[reg.pattern] = reg.route
	}
	return m
}

// Registrations returns the registrations in order.
func (c *Collection[M]) Registrations() []Registration[M] {
	regs := make([]Registration[M], 0, len(c.order))
	for _, reg := range c.order {
		regs = append(regs, Registration[M]{Pattern: reg.pattern, Route: reg.route})
	}
	return regs
}

// Patterns returns the registered patterns in order.
func (c *Collection[M]) Patterns() []string {
	patterns := make([]string, 0, len(c.order))
	for _, reg := range c.order {
		patterns = append(patterns, reg.pattern)
	}
	return patterns
}

// Len returns the number of registered patterns.
func (c *Collection[M]) Len() int {
	return len(c.order)
}

// Clone returns an independent collection with the same registrations and
// options. Routes themselves are shared.
func (c *Collection[M]) Clone() *Collection[M] {
	clone := &Collection[M]{
		opts:   c.opts,
		byName: make(map[string]*registration[M], len(c.order)),
		order:  make([]*registration[M], 0, len(c.order)),
	}
	for _, reg := range c.order {
		cp := *reg
		clone.byName[cp.pattern] = &cp
		clone.order = append(clone.order, &cp)
	}
	return clone
}
