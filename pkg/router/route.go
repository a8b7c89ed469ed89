package router

// Route describes a navigation target registered under a pattern.
//
// A Route is immutable apart from its metadata, which may be replaced
// wholesale with SetMeta. M is an opaque, caller-defined payload that the
// router passes through without inspecting.
type Route[M any] struct {
	targetID  string
	protected bool
	meta      M
}

// NewRoute creates a route descriptor.
//
// targetID identifies what the view layer should render (for example a
// custom element tag name). protected marks routes that require an
// authenticated viewer; the router only carries the flag.
func NewRoute[M any](targetID string, protected bool, meta M) *Route[M] {
	return &Route[M]{
		targetID:  targetID,
		protected: protected,
		meta:      meta,
	}
}

// TargetID returns the identifier of the view to render. Accessors on a
// nil route return zero values.
func (r *Route[M]) TargetID() string {
	if r == nil {
		return ""
	}
	return r.targetID
}

// Protected reports whether the route is flagged as protected.
func (r *Route[M]) Protected() bool {
	if r == nil {
		return false
	}
	return r.protected
}

// Meta returns the route metadata.
func (r *Route[M]) Meta() M {
	if r == nil {
		var zero M
		return zero
	}
	return r.meta
}

// SetMeta replaces the metadata after the route was registered.
func (r *Route[M]) SetMeta(meta M) {
	r.meta = meta
}

// RenderMeta is implemented by metadata payloads that contribute the
// title, description and vars of the render data bundle.
type RenderMeta interface {
	RenderTitle() string
	RenderDescription() string
	RenderVars() map[string]any
}

// Meta is the default metadata payload: page title, description and free
// form vars preloaded into the page.
type Meta struct {
	Title       string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Vars        map[string]any `json:"vars,omitempty" yaml:"vars,omitempty"`
}

// RenderTitle implements RenderMeta.
func (m Meta) RenderTitle() string { return m.Title }

// RenderDescription implements RenderMeta.
func (m Meta) RenderDescription() string { return m.Description }

// RenderVars implements RenderMeta.
func (m Meta) RenderVars() map[string]any { return m.Vars }
