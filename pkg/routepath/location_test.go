package routepath

import (
	"reflect"
	"testing"
)

func TestLocationPath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{name: "empty", uri: "", want: "/"},
		{name: "root", uri: "/", want: "/"},
		{name: "plain path", uri: "/about", want: "/about"},
		{name: "with query", uri: "/products/42?tab=specs", want: "/products/42"},
		{name: "query only", uri: "?tab=specs", want: "/"},
		{name: "second question mark", uri: "/a?b=1?c=2", want: "/a"},
		{name: "trailing slash kept", uri: "/about/", want: "/about/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLocation(tt.uri).Path(); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationFinalURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{name: "no query", uri: "/about", want: "/about"},
		{name: "stray question mark dropped", uri: "/about?", want: "/about"},
		{name: "empty uri", uri: "", want: "/"},
		{name: "query kept", uri: "/search?q=go", want: "/search?q=go"},
		{name: "query re-encoded", uri: "/search?q=go router", want: "/search?q=go+router"},
		{name: "empty pieces removed", uri: "/s?&a=1&&b=2&", want: "/s?a=1&b=2"},
		{name: "bare key", uri: "/s?flag", want: "/s?flag="},
		{name: "duplicates kept in order", uri: "/s?a=1&a=2", want: "/s?a=1&a=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLocation(tt.uri).FinalURI(); got != tt.want {
				t.Errorf("FinalURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocationSetURI(t *testing.T) {
	loc := NewLocation("/first?x=1")
	loc.SetURI("/second")

	if loc.URI() != "/second" {
		t.Errorf("URI() = %q, want %q", loc.URI(), "/second")
	}
	if loc.Path() != "/second" {
		t.Errorf("Path() = %q, want %q", loc.Path(), "/second")
	}
	if len(loc.Query()) != 0 {
		t.Errorf("Query() = %v, want empty", loc.Query())
	}
	if loc.RawQuery() != "" {
		t.Errorf("RawQuery() = %q, want empty", loc.RawQuery())
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		path      string
		want      []string
		wantCount int
	}{
		{path: "/", want: []string{"", ""}, wantCount: 2},
		{path: "/about", want: []string{"", "about"}, wantCount: 2},
		{path: "/products/42/option/L", want: []string{"", "products", "42", "option", "L"}, wantCount: 5},
		{path: "", want: []string{""}, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Segments(tt.path)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segments(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if n := SegmentCount(tt.path); n != tt.wantCount {
				t.Errorf("SegmentCount(%q) = %d, want %d", tt.path, n, tt.wantCount)
			}
		})
	}
}

func TestSplitPathAndQuery(t *testing.T) {
	path, query := SplitPathAndQuery("/a/b?x=1&y=2")
	if path != "/a/b" || query != "x=1&y=2" {
		t.Errorf("SplitPathAndQuery() = (%q, %q)", path, query)
	}
	path, query = SplitPathAndQuery("/a/b")
	if path != "/a/b" || query != "" {
		t.Errorf("SplitPathAndQuery() = (%q, %q)", path, query)
	}
}
