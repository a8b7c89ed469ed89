package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/outlet/pkg/manifest"
)

func dial(t *testing.T, ts *httptest.Server, uri string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if uri != "" {
		url += "?uri=" + uri
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	return msg
}

func TestWebSocketSession(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := dial(t, ts, "/", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()

	// Initial load renders without pushing.
	msg := readMessage(t, conn)
	if msg.Type != MsgRender || msg.Target != "default-index-view" {
		t.Fatalf("initial message = %+v, want render of default-index-view", msg)
	}
	if msg.Data == nil || msg.Data.Title != "Home" {
		t.Errorf("initial data = %+v, want title Home", msg.Data)
	}

	// Forward navigation pushes, then renders.
	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, URI: "/dynamic/x/example/y?tab=1"}); err != nil {
		t.Fatal(err)
	}
	msg = readMessage(t, conn)
	if msg.Type != MsgHistoryPush {
		t.Fatalf("message = %+v, want history.push", msg)
	}
	if msg.URL != "/dynamic/x/example/y?tab=1" {
		t.Errorf("url = %q", msg.URL)
	}
	if msg.State == nil || msg.State.Key != msg.URL {
		t.Errorf("state = %+v, want key %q", msg.State, msg.URL)
	}
	msg = readMessage(t, conn)
	if msg.Type != MsgRender || msg.Target != "dynamic-example-view" {
		t.Fatalf("message = %+v, want render of dynamic-example-view", msg)
	}
	if got := msg.Data.Param("firstValue"); got != "x" {
		t.Errorf("firstValue = %q, want x", got)
	}
	if got := msg.Data.Query.Get("tab"); got != "1" {
		t.Errorf("tab = %q, want 1", got)
	}

	// Pop renders without pushing.
	if err := conn.WriteJSON(ClientMessage{Type: MsgPopState, Path: "/"}); err != nil {
		t.Fatal(err)
	}
	msg = readMessage(t, conn)
	if msg.Type != MsgRender || msg.Target != "default-index-view" {
		t.Fatalf("message = %+v, want render of default-index-view", msg)
	}

	// Unknown path falls back to not-found and still pushes.
	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, URI: "/nowhere"}); err != nil {
		t.Fatal(err)
	}
	msg = readMessage(t, conn)
	if msg.Type != MsgHistoryPush || msg.URL != "/nowhere" {
		t.Fatalf("message = %+v, want history.push of /nowhere", msg)
	}
	msg = readMessage(t, conn)
	if msg.Target != "default-not-found-view" {
		t.Errorf("target = %q, want default-not-found-view", msg.Target)
	}
}

func TestWebSocketInvalidMessages(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := dial(t, ts, "/", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn) // initial render

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{"},
		{"unknown type", `{"type":"reload"}`},
		{"absolute uri", `{"type":"navigate","uri":"https://evil.example/"}`},
		{"backslash", `{"type":"navigate","uri":"/a\\b"}`},
		{"bad pop path", `{"type":"popstate","path":"//evil.example"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
				t.Fatal(err)
			}
			msg := readMessage(t, conn)
			if msg.Type != MsgError || msg.Code != "E210" {
				t.Errorf("message = %+v, want error E210", msg)
			}
		})
	}

	// The session survives bad messages.
	if err := conn.WriteJSON(ClientMessage{Type: MsgPopState, Path: "/404"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, conn); msg.Type != MsgRender {
		t.Errorf("message = %+v, want render", msg)
	}
}

func TestWebSocketInvalidInitialURI(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	_, resp, err := dial(t, ts, "https://evil.example/", nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, want 400", resp)
	}
}

func TestWebSocketOriginRejected(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := dial(t, ts, "/", header)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("response = %v, want 403", resp)
	}
}

func TestWebSocketSessionsTracked(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := dial(t, ts, "/404", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	readMessage(t, conn)

	if got := s.Sessions(); got != 1 {
		t.Errorf("Sessions() = %d, want 1", got)
	}
	if got := testutil.ToFloat64(s.connections); got != 1 {
		t.Errorf("connections gauge = %v, want 1", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.Sessions() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := s.Sessions(); got != 0 {
		t.Errorf("Sessions() after close = %d, want 0", got)
	}
}

func TestWebSocketConnectionsAreIsolated(t *testing.T) {
	routes := manifest.BaseRoutes()
	s := newTestServer(t, routes)
	ts := httptest.NewServer(s)
	defer ts.Close()

	a, _, err := dial(t, ts, "/", nil)
	if err != nil {
		t.Fatalf("Dial a: %v", err)
	}
	defer a.Close()
	b, _, err := dial(t, ts, "/404", nil)
	if err != nil {
		t.Fatalf("Dial b: %v", err)
	}
	defer b.Close()

	if msg := readMessage(t, a); msg.Target != "default-index-view" {
		t.Errorf("a target = %q", msg.Target)
	}
	if msg := readMessage(t, b); msg.Target != "default-not-found-view" {
		t.Errorf("b target = %q", msg.Target)
	}

	// Changing the served collection later does not reach open sessions.
	routes.SetNotFoundPattern("/elsewhere")
	if err := a.WriteJSON(ClientMessage{Type: MsgPopState, Path: "/nowhere"}); err != nil {
		t.Fatal(err)
	}
	if msg := readMessage(t, a); msg.Target != "default-not-found-view" {
		t.Errorf("a target after pop = %q, want default-not-found-view", msg.Target)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := dial(t, ts, "/", nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn)

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("ReadMessage error = %v, want going-away close", err)
	}
}
