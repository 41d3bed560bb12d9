package sessions

import (
	"encoding/json"

	"seatlab/internal/layout"
	"seatlab/internal/viewer"
)

// open session request payload
type CreateSessionRequest struct {
	LayoutID string `json:"layout_id,omitempty" validate:"omitempty,uuid"` // load an existing layout into the session
}

// tool switch payload
type SetToolRequest struct {
	Tool string `json:"tool" validate:"required"`
}

// pointer event payload; hit_id identifies the object under the pointer
type PointerRequest struct {
	Action string  `json:"action" validate:"required,oneof=down move up double-click"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	HitID  string  `json:"hit_id,omitempty"`
}

// drag event payload for moving a selected object
type DragRequest struct {
	Action string  `json:"action" validate:"required,oneof=move end"`
	ID     string  `json:"id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// keyboard shortcut payload
type KeystrokeRequest struct {
	Key   string `json:"key" validate:"required"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

// clipboard action payload
type ClipboardRequest struct {
	Action string `json:"action" validate:"required,oneof=copy cut paste"`
}

// selection replacement payload
type SelectionRequest struct {
	IDs []string `json:"ids"`
}

// seat number edit payload
type SeatNumberRequest struct {
	Number string `json:"number" validate:"required,max=10"`
}

// seat category assignment payload; empty clears the category
type SeatCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

// in-place text commit payload
type CommitTextRequest struct {
	Text string `json:"text"`
}

// alignment assistance toggle payload
type SmartSnapRequest struct {
	Enabled bool `json:"enabled"`
}

// category table replacement payload
type SetCategoriesRequest struct {
	Categories []layout.Category `json:"categories" validate:"required,dive"`
}

// import payload: the raw layout document
type ImportRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
}

// save payload; name is used when the session is not bound to a layout yet
type SaveRequest struct {
	Name string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
}

// preview booking-state payload
type ApplyBookingsRequest struct {
	Bookings []viewer.SeatBooking `json:"bookings" validate:"required"`
}

// preview click payload
type PreviewClickRequest struct {
	SeatID string `json:"seat_id" validate:"required"`
}

// preview controlled-selection payload; a null list returns ownership of
// selection to the viewer
type PreviewSelectionRequest struct {
	IDs []string `json:"ids"`
}
