package navigation

import (
	"fmt"

	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
)

// Phase is the controller's position in the navigation state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseMatched
	PhaseNotFound
)

// String returns a readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseMatched:
		return "matched"
	case PhaseNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseResolving, PhaseMatched, PhaseNotFound} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown navigation phase %q", text)
}

// State is a snapshot of the controller's navigation state.
type State struct {
	Phase           Phase           `json:"phase"`
	Pattern         string          `json:"pattern,omitempty"`
	TargetID        string          `json:"target"`
	Protected       bool            `json:"protected"`
	Params          router.Params   `json:"params,omitempty"`
	Query           routepath.Query `json:"query,omitempty"`
	FinalURI        string          `json:"uri,omitempty"`
	NotFoundPattern string          `json:"notFound"`
}
