package host

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

// session is one WebSocket connection and its controller. All controller
// calls and all writes happen on the goroutine running run.
type session struct {
	conn   *websocket.Conn
	server *Server
	ctrl   *navigation.Controller[router.Meta]
	logger *slog.Logger

	// writeErr is the first failed write; the read loop stops on it.
	writeErr error
}

func newSession(conn *websocket.Conn, server *Server, logger *slog.Logger) *session {
	s := &session{
		conn:   conn,
		server: server,
		logger: logger,
	}
	s.ctrl = server.newController(
		navigation.HistoryFunc(s.push),
		navigation.RendererFunc[router.Meta](s.render),
		logger,
	)
	return s
}

// run mounts the controller at uri and processes messages until the
// connection closes.
func (s *session) run(ctx context.Context, uri string) {
	defer s.conn.Close()
	defer s.ctrl.Unmount()

	s.logger.Debug("session started", "uri", uri)
	if err := s.ctrl.Mount(ctx, uri); err != nil {
		s.logger.Error("initial navigation failed", "uri", uri, "error", err)
		s.send(errorMessage(err))
	}
	s.readLoop()
	s.logger.Debug("session ended")
}

func (s *session) readLoop() {
	idle := s.server.config.IdleTimeout

	for s.writeErr == nil {
		if idle > 0 {
			s.conn.SetReadDeadline(time.Now().Add(idle))
		}

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		if err := s.handle(data); err != nil {
			s.logger.Warn("message failed", "error", err)
			s.send(errorMessage(err))
		}
	}
}

// handle decodes and dispatches one client message.
func (s *session) handle(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return invalidMessage("message is not valid JSON", err)
	}

	switch msg.Type {
	case MsgNavigate:
		if err := routepath.ValidateNavURI(msg.URI); err != nil {
			return invalidMessage("invalid uri "+msg.URI, err)
		}
		return s.ctrl.HandleNavigationRequest(msg.URI)

	case MsgPopState:
		if err := routepath.ValidateNavURI(msg.Path); err != nil {
			return invalidMessage("invalid path "+msg.Path, err)
		}
		return s.ctrl.HandlePopSignal(msg.Path, msg.Query)

	default:
		return invalidMessage("unknown message type "+msg.Type, nil)
	}
}

func (s *session) push(state navigation.HistoryState, title, url string) {
	s.send(pushMessage(state, title, url))
}

func (s *session) render(target string, data navigation.RenderData[router.Meta]) {
	s.send(renderMessage(target, data))
}

func (s *session) send(msg ServerMessage) {
	if s.writeErr != nil {
		return
	}
	if wt := s.server.config.WriteTimeout; wt > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(wt))
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Error("write error", "type", msg.Type, "error", err)
		s.writeErr = err
	}
}

// closeGoingAway asks the peer to close. Safe to call from any goroutine.
func (s *session) closeGoingAway() {
	deadline := time.Now().Add(time.Second)
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), deadline)
	_ = s.conn.Close()
}
