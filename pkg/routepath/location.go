package routepath

import "strings"

// Location is the source of truth for one navigation URI.
//
// Navigation has to be funneled through a Location rather than the browser's
// current address, otherwise query strings from the previous page would leak
// into links that don't carry them.
type Location struct {
	uri string
}

// NewLocation creates a Location wrapping uri.
func NewLocation(uri string) *Location {
	return &Location{uri: uri}
}

// SetURI replaces the wrapped URI.
func (l *Location) SetURI(uri string) {
	l.uri = uri
}

// URI returns the wrapped URI as given.
func (l *Location) URI() string {
	return l.uri
}

// Path returns the portion before the first "?". An empty path is "/".
func (l *Location) Path() string {
	path, _ := SplitPathAndQuery(l.uri)
	if path == "" {
		return "/"
	}
	return path
}

// RawQuery returns the portion after the first "?", without the "?".
func (l *Location) RawQuery() string {
	_, query := SplitPathAndQuery(l.uri)
	return query
}

// Query parses the query portion into ordered pairs.
func (l *Location) Query() Query {
	return ParseQuery(l.RawQuery())
}

// FinalURI returns the canonical path plus the re-serialized query.
// The query (and its "?") is omitted entirely when empty.
func (l *Location) FinalURI() string {
	path := l.Path()
	query := l.Query().Encode()
	if query == "" {
		return path
	}
	return path + "?" + query
}

// SplitPathAndQuery splits a URI into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(uri string) (path, query string) {
	path, query, _ = strings.Cut(uri, "?")
	return path, query
}

// Segments splits a path on "/". A leading "/" yields an empty first segment,
// so "/a/b" has segments ["", "a", "b"].
func Segments(path string) []string {
	return strings.Split(path, "/")
}

// SegmentCount returns len(Segments(path)) without allocating.
func SegmentCount(path string) int {
	return strings.Count(path, "/") + 1
}
