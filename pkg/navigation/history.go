package navigation

// HistoryState is the state object stored with each pushed history entry.
type HistoryState struct {
	Key string `json:"key"`
}

// History is the host's navigation history (window.history in a browser).
type History interface {
	// Push adds an entry. It is called exactly once per successful forward
	// navigation and never for initial loads or pop signals.
	Push(state HistoryState, title, url string)
}

// HistoryFunc adapts a function to History.
type HistoryFunc func(state HistoryState, title, url string)

// Push implements History.
func (f HistoryFunc) Push(state HistoryState, title, url string) {
	f(state, title, url)
}

// Renderer receives the target to render and its data.
type Renderer[M any] interface {
	Render(targetID string, data RenderData[M])
}

// RendererFunc adapts a function to Renderer.
type RendererFunc[M any] func(targetID string, data RenderData[M])

// Render implements Renderer.
func (f RendererFunc[M]) Render(targetID string, data RenderData[M]) {
	f(targetID, data)
}

// HistoryEntry is one entry of a MemoryHistory.
type HistoryEntry struct {
	State HistoryState
	Title string
	URL   string
}

// MemoryHistory is an in-memory back/forward stack. It stands in for the
// browser in tests and in the CLI simulator.
type MemoryHistory struct {
	entries []HistoryEntry
	index   int
}

// NewMemoryHistory creates a history whose only entry is initialURL, the
// way a browser starts with the page that was loaded.
func NewMemoryHistory(initialURL string) *MemoryHistory {
	return &MemoryHistory{
		entries: []HistoryEntry{{State: HistoryState{Key: initialURL}, URL: initialURL}},
	}
}

// Push implements History. Entries after the current one are discarded.
func (h *MemoryHistory) Push(state HistoryState, title, url string) {
	h.entries = append(h.entries[:h.index+1], HistoryEntry{State: state, Title: title, URL: url})
	h.index = len(h.entries) - 1
}

// Back moves one entry back and returns its URL.
func (h *MemoryHistory) Back() (string, bool) {
	if h.index == 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index].URL, true
}

// Forward moves one entry forward and returns its URL.
func (h *MemoryHistory) Forward() (string, bool) {
	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index].URL, true
}

// Current returns the entry the history points at.
func (h *MemoryHistory) Current() HistoryEntry {
	return h.entries[h.index]
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries.
func (h *MemoryHistory) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
