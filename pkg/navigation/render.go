package navigation

import (
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

// RenderData is the bundle handed to the view layer after a navigation.
//
// Title, Description and Vars come from the route metadata when it
// implements router.RenderMeta. Meta is the untouched metadata payload.
type RenderData[M any] struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Params      router.Params   `json:"params"`
	Vars        map[string]any  `json:"vars"`
	Query       routepath.Query `json:"query"`
	Meta        M               `json:"meta"`
}

// Param returns a path parameter ("id" or ":id"), or "" when unset.
func (d RenderData[M]) Param(key string) string {
	return d.Params.Get(key)
}

// Var returns a metadata var, or nil when unset.
func (d RenderData[M]) Var(key string) any {
	return d.Vars[key]
}

// newRenderData assembles the render bundle. Maps are copied so the view
// layer cannot reach back into controller state.
func newRenderData[M any](route *router.Route[M], params router.Params, query routepath.Query) RenderData[M] {
	data := RenderData[M]{
		Params: params.Clone(),
		Vars:   map[string]any{},
		Query:  query.Clone(),
	}
	if route == nil {
		return data
	}

	data.Meta = route.Meta()
	if rm, ok := any(data.Meta).(router.RenderMeta); ok {
		data.Title = rm.RenderTitle()
		data.Description = rm.RenderDescription()
		for k, v := range rm.RenderVars() {
			data.Vars[k] = v
		}
	}
	return data
}
