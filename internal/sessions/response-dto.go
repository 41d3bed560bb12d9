package sessions

import (
	"encoding/json"
	"time"

	"seatlab/internal/editor"
	"seatlab/internal/viewer"
)

// SessionResponse describes a live session in API responses.
type SessionResponse struct {
	ID        string    `json:"id"`
	LayoutID  string    `json:"layout_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	State     State     `json:"state"`
}

// State is the lightweight editor state echoed back after every operation,
// so hosts can refresh toolbars without refetching the document.
type State struct {
	Tool          string   `json:"tool"`
	Selection     []string `json:"selection"`
	EditingTextID string   `json:"editing_text_id,omitempty"`
	CanUndo       bool     `json:"can_undo"`
	CanRedo       bool     `json:"can_redo"`
	SmartSnap     bool     `json:"smart_snap"`
	Previewing    bool     `json:"previewing"`
}

// DocumentResponse carries the serialized layout document.
type DocumentResponse struct {
	Filename string          `json:"filename,omitempty"`
	Document json.RawMessage `json:"document"`
}

// PreviewSelectionResponse reports the preview's selected seats.
type PreviewSelectionResponse struct {
	Controlled bool                `json:"controlled"`
	IDs        []string            `json:"ids"`
	Seats      []viewer.SeatRecord `json:"seats"`
}

func stateOf(s *Session, e *editor.Editor) State {
	selection := []string{}
	for _, o := range e.Selection() {
		selection = append(selection, o.ID)
	}
	return State{
		Tool:          string(e.Tools.Active()),
		Selection:     selection,
		EditingTextID: e.EditingTextID(),
		CanUndo:       e.Journal.CanUndo(),
		CanRedo:       e.Journal.CanRedo(),
		SmartSnap:     e.Snap.Enabled,
		Previewing:    s.preview != nil,
	}
}

func toSessionResponse(s *Session, e *editor.Editor) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		LayoutID:  s.LayoutID,
		CreatedAt: s.CreatedAt,
		State:     stateOf(s, e),
	}
}
