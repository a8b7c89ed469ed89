package router

import (
	"fmt"
	"testing"
)

func BenchmarkCollectionMatch(b *testing.B) {
	c := NewCollection[Meta]()
	for i := 0; i < 50; i++ {
		c.Add(fmt.Sprintf("/section%d/:id", i), NewRoute(fmt.Sprintf("view-%d", i), false, Meta{}))
		c.Add(fmt.Sprintf("/static/page%d", i), NewRoute(fmt.Sprintf("page-%d", i), false, Meta{}))
	}
	c.Add("/404", NewRoute("not-found", false, Meta{}))

	paths := []string{"/section25/42", "/static/page49", "/nowhere/at/all"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Match(paths[i%len(paths)])
	}
}

func BenchmarkEntryExtract(b *testing.B) {
	e := NewEntry[Meta]("/products/:id/option/:size", nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = e.Extract("/products/42/option/L")
	}
}
