// Package navigation implements the navigation controller: the state
// machine that turns navigation requests and history-pop signals into route
// resolutions, history mutations and render data.
//
// # States
//
//	Idle → Resolving → Matched | NotFound → Resolving → …
//
// Every navigation runs to completion before the next one starts. The
// controller is single-threaded; the host delivers events in order.
//
// # Entry Points
//
// The host environment wires real browser events to three calls:
//
//	ctrl.Mount(ctx, "/products/42?tab=specs") // initial load, never pushes
//	ctrl.HandleNavigationRequest("/about")    // link or programmatic, pushes once
//	ctrl.HandlePopSignal("/", "")             // back/forward, never pushes
//
// Listen subscribes the first two to an EventBus so any collaborator can
// request navigation by publishing on TopicNavigate or TopicPopState.
//
// # Not Found
//
// Unmatched paths fall back to the collection's not-found pattern. If that
// pattern has no registered route the navigation fails with
// ErrNotFoundMisconfigured: nothing is rendered and history is untouched.
package navigation
