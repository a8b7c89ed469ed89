package host

import (
	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/router"
)

// Message types.
const (
	MsgNavigate    = "navigate"
	MsgPopState    = "popstate"
	MsgHistoryPush = "history.push"
	MsgRender      = "render"
	MsgError       = "error"
)

// ClientMessage is a message sent by the browser.
type ClientMessage struct {
	Type  string `json:"type"`
	URI   string `json:"uri,omitempty"`
	Path  string `json:"path,omitempty"`
	Query string `json:"query,omitempty"`
}

// ServerMessage is a message sent to the browser. Which fields are set
// depends on Type.
type ServerMessage struct {
	Type string `json:"type"`

	// history.push
	State *navigation.HistoryState `json:"state,omitempty"`
	Title string                   `json:"title,omitempty"`
	URL   string                   `json:"url,omitempty"`

	// render
	Target string                              `json:"target,omitempty"`
	Data   *navigation.RenderData[router.Meta] `json:"data,omitempty"`

	// error
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func pushMessage(state navigation.HistoryState, title, url string) ServerMessage {
	return ServerMessage{Type: MsgHistoryPush, State: &state, Title: title, URL: url}
}

func renderMessage(target string, data navigation.RenderData[router.Meta]) ServerMessage {
	return ServerMessage{Type: MsgRender, Target: target, Data: &data}
}

// errorMessage converts err into an error message. Uncoded errors are
// reported as E210.
func errorMessage(err error) ServerMessage {
	oe := errors.FromError(err, "E210")
	msg := ServerMessage{
		Type:    MsgError,
		Code:    oe.Code,
		Message: oe.Message,
		Detail:  oe.Detail,
	}
	if oe.Wrapped != nil && msg.Detail == "" {
		msg.Detail = oe.Wrapped.Error()
	}
	return msg
}

// invalidMessage builds the E210 error for a rejected client message.
func invalidMessage(detail string, cause error) error {
	e := errors.New("E210").WithDetail(detail)
	if cause != nil {
		e = e.Wrap(cause)
	}
	return e
}
