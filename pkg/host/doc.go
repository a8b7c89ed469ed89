// Package host serves a route collection to browsers.
//
// A Server exposes a small HTTP API built on chi:
//
//	GET /resolve?uri=/users/7   resolve one URI without side effects
//	GET /routes                 the registered routes as a manifest
//	GET /healthz                liveness
//	GET /metrics                Prometheus metrics
//	GET /ws?uri=/current/page   WebSocket navigation bridge
//
// Each WebSocket connection gets its own navigation.Controller over a clone
// of the server's collection. Messages from one connection are handled in
// order on that connection's read loop, so a controller is never entered
// concurrently.
//
// # Wire Protocol
//
// Messages are JSON text frames. The browser sends
//
//	{"type": "navigate", "uri": "/users/7?tab=posts"}
//	{"type": "popstate", "path": "/users/7", "query": "tab=posts"}
//
// and receives
//
//	{"type": "history.push", "state": {"key": "/users/7?tab=posts"}, "title": "", "url": "/users/7?tab=posts"}
//	{"type": "render", "target": "user-view", "data": {...}}
//	{"type": "error", "code": "E201", "message": "...", "detail": "..."}
//
// The initial load is taken from the uri query parameter of the upgrade
// request. It renders but never pushes history.
package host
