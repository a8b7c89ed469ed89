// Package routepath decomposes navigation URIs.
//
// A Location wraps one raw URI (everything after the origin, e.g.
// "/products/42?tab=specs") and splits it into the path used for route
// matching and the ordered query pairs handed to the view layer. The
// canonical FinalURI is what gets stored in navigation history.
//
//	loc := routepath.NewLocation("/search?q=go+router&page=2")
//	loc.Path()             // "/search"
//	loc.Query().Get("q")   // "go router"
//	loc.FinalURI()         // "/search?q=go+router&page=2"
package routepath
