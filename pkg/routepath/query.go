package routepath

import (
	"net/url"
	"strings"
)

// Pair is a single key/value entry of a query string.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Query is an ordered list of query pairs.
// Duplicate keys are kept in order; lookups are last-wins.
type Query []Pair

// ParseQuery parses a form-urlencoded query string ("a=1&b=two+words").
// Malformed percent-escapes are kept verbatim rather than rejected.
func ParseQuery(raw string) Query {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}

	var q Query
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		q = append(q, Pair{Key: unescape(key), Value: unescape(value)})
	}
	return q
}

func unescape(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}
	return u
}

// Get returns the value of the last pair with the given key, or "".
func (q Query) Get(key string) string {
	v, _ := q.Lookup(key)
	return v
}

// Lookup returns the value of the last pair with the given key.
func (q Query) Lookup(key string) (string, bool) {
	for i := len(q) - 1; i >= 0; i-- {
		if q[i].Key == key {
			return q[i].Value, true
		}
	}
	return "", false
}

// Has reports whether any pair has the given key.
func (q Query) Has(key string) bool {
	_, ok := q.Lookup(key)
	return ok
}

// Encode serializes the pairs in order as a form-urlencoded string.
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Values converts the pairs into url.Values, preserving every value.
func (q Query) Values() url.Values {
	v := make(url.Values, len(q))
	for _, p := range q {
		v[p.Key] = append(v[p.Key], p.Value)
	}
	return v
}

// Clone returns a copy that shares no storage with q.
func (q Query) Clone() Query {
	if q == nil {
		return nil
	}
	return append(Query(nil), q...)
}
