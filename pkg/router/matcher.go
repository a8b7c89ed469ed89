package router

import (
	"regexp"
	"strings"

	"github.com/vango-dev/outlet/pkg/routepath"
)

// paramToken is the shape of a dynamic token inside a pattern. Anything
// else, including a lone ":", is literal text.
var paramToken = regexp.MustCompile(`:[a-zA-Z0-9]+`)

// paramValue is what a dynamic token matches in a path.
const paramValue = `[a-zA-Z0-9]+`

// matcher is the compiled form of one pattern.
type matcher struct {
	re       *regexp.Regexp
	segments int
	dynamic  int
}

// compilePattern substitutes every dynamic token with paramValue and quotes
// the remaining text, producing a full-string matcher.
func compilePattern(pattern string) *matcher {
	var b strings.Builder
	b.WriteString("^")

	last := 0
	locs := paramToken.FindAllStringIndex(pattern, -1)
	for _, loc := range locs {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString(paramValue)
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	return &matcher{
		re:       regexp.MustCompile(b.String()),
		segments: routepath.SegmentCount(pattern),
		dynamic:  len(locs),
	}
}

// matches reports whether path fully matches and has the same number of
// segments as the pattern.
func (m *matcher) matches(path string) bool {
	return routepath.SegmentCount(path) == m.segments && m.re.MatchString(path)
}
