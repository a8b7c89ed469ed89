// Package router implements pattern registration and path resolution for
// outlet.
//
// The router provides:
//   - Route descriptors carrying a target identifier, a protection flag and
//     a caller-defined metadata payload
//   - An insertion-ordered Collection mapping patterns to descriptors
//   - Full-string, segment-count-safe matching of inbound paths
//   - Positional parameter geometry and extraction via Entry
//
// # Pattern Syntax
//
// Patterns are split on "/". Literal segments match verbatim; a segment of
// the form ":identifier" is dynamic and matches one or more ASCII letters or
// digits:
//
//	/                                       → only "/"
//	/about                                  → only "/about" (never "/aboutExtra")
//	/products/:id                           → "/products/42"
//	/dynamic/:firstValue/example/:secondValue
//
// The number of segments is part of a pattern's identity: "/products/:id"
// never matches "/products/42/reviews".
//
// # Ambiguity
//
// When several patterns match the same path the collection ranks the
// candidates. The default TieBreakSpecificity policy prefers the pattern
// with the fewest dynamic segments and, among equals, the most recently
// registered one. TieBreakLastRegistered keeps the historical behavior:
// the last registered candidate wins outright, and a literal candidate is
// only accepted when it equals the path.
//
// # Usage
//
//	routes := router.NewCollection[router.Meta]()
//	routes.Add("/", router.NewRoute("index-view", false, router.Meta{Title: "Home"}))
//	routes.Add("/404", router.NewRoute("not-found-view", false, router.Meta{}))
//	routes.Add("/products/:id", router.NewRoute("product-view", false, router.Meta{}))
//
//	entry := routes.Match("/products/42")
//	entry.Params()               // map[":id":2]
//	entry.Extract("/products/42") // Params{":id": "42"}
//
// A Collection is designed for single-threaded use. It is not safe for
// concurrent mutation; give each navigation controller its own Clone.
package router
