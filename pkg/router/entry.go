package router

import (
	"strings"

	"github.com/vango-dev/outlet/pkg/routepath"
)

// ParamMarker prefixes dynamic segments in a pattern.
const ParamMarker = ":"

// Entry pairs a resolved pattern with its route, or with nil when the
// pattern has no registered route. Entries are cheap and created fresh for
// every navigation attempt.
type Entry[M any] struct {
	pattern string
	route   *Route[M]
}

// NewEntry creates an entry for pattern. route may be nil.
func NewEntry[M any](pattern string, route *Route[M]) *Entry[M] {
	return &Entry[M]{pattern: pattern, route: route}
}

// Pattern returns the resolved pattern.
func (e *Entry[M]) Pattern() string {
	return e.pattern
}

// Route returns the route, or nil when the pattern is unregistered.
func (e *Entry[M]) Route() *Route[M] {
	return e.route
}

// Params maps every dynamic segment name (marker included) to its
// zero-based segment index. The empty segment before a leading "/" counts
// as index 0, so "/products/:productId/option/:size" yields
// {":productId": 2, ":size": 4}.
//
// A name repeated within one pattern keeps its last index.
func (e *Entry[M]) Params() map[string]int {
	params := make(map[string]int)
	for i, seg := range routepath.Segments(e.pattern) {
		if strings.HasPrefix(seg, ParamMarker) {
			params[seg] = i
		}
	}
	return params
}

// HasParams reports whether the pattern has any dynamic segment.
func (e *Entry[M]) HasParams() bool {
	return len(e.Params()) > 0
}

// Extract reads the value of every parameter from the actual requested
// path. Parameters whose index lies beyond the path's segments are left
// unset.
func (e *Entry[M]) Extract(path string) Params {
	segments := routepath.Segments(path)
	values := make(Params)
	for name, idx := range e.Params() {
		if idx < len(segments) {
			values[name] = segments[idx]
		}
	}
	return values
}

// Params holds extracted parameter values keyed by marker-prefixed name.
type Params map[string]string

// Get returns the value of a parameter. The name may be given with or
// without the marker ("id" and ":id" are equivalent). Missing parameters
// return "".
func (p Params) Get(name string) string {
	v, _ := p.Lookup(name)
	return v
}

// Lookup is like Get but reports whether the parameter was set.
func (p Params) Lookup(name string) (string, bool) {
	if !strings.HasPrefix(name, ParamMarker) {
		name = ParamMarker + name
	}
	v, ok := p[name]
	return v, ok
}

// Clone returns a copy of p.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}
