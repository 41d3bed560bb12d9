package scene

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidSnapshot = errors.New("invalid scene snapshot")

// ObjectState is the serialized form of an object. The field set is a fixed
// whitelist; runtime-only state (handle profile, viewer selection, transient
// flag) deliberately has no column here. The same struct is used for both
// directions so a serialize/deserialize cycle is lossless.
type ObjectState struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`

	Selectable bool `json:"selectable"`
	Evented    bool `json:"evented"`

	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`

	LockMovementX bool `json:"lockMovementX,omitempty"`
	LockMovementY bool `json:"lockMovementY,omitempty"`
	LockRotation  bool `json:"lockRotation,omitempty"`
	LockScalingX  bool `json:"lockScalingX,omitempty"`
	LockScalingY  bool `json:"lockScalingY,omitempty"`

	RowID      string     `json:"rowId,omitempty"`
	SeatNumber string     `json:"seatNumber,omitempty"`
	RowLabel   string     `json:"rowLabel,omitempty"`
	Category   string     `json:"category,omitempty"`
	Price      float64    `json:"price,omitempty"`
	Status     SeatStatus `json:"status,omitempty"`
	Radius     float64    `json:"radius,omitempty"`

	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`

	Points []Point `json:"points,omitempty"`

	Src string `json:"src,omitempty"`
}

// Snapshot is a full serialized scene: the object list in draw order plus
// the background.
type Snapshot struct {
	Objects    []ObjectState `json:"objects"`
	Background string        `json:"background,omitempty"`
}

func stateOf(o *Object) ObjectState {
	return ObjectState{
		ID:            o.ID,
		Kind:          o.Kind,
		Left:          o.Left,
		Top:           o.Top,
		Width:         o.Width,
		Height:        o.Height,
		ScaleX:        o.ScaleX,
		ScaleY:        o.ScaleY,
		Angle:         o.Angle,
		Selectable:    o.Selectable,
		Evented:       o.Evented,
		Fill:          o.Fill,
		Stroke:        o.Stroke,
		StrokeWidth:   o.StrokeWidth,
		LockMovementX: o.LockMovementX,
		LockMovementY: o.LockMovementY,
		LockRotation:  o.LockRotation,
		LockScalingX:  o.LockScalingX,
		LockScalingY:  o.LockScalingY,
		RowID:         o.RowID,
		SeatNumber:    o.SeatNumber,
		RowLabel:      o.RowLabel,
		Category:      o.Category,
		Price:         o.Price,
		Status:        o.Status,
		Radius:        o.Radius,
		Text:          o.Text,
		FontSize:      o.FontSize,
		Points:        o.Points,
		Src:           o.Src,
	}
}

// Restore materializes the serialized state back into an object.
func (st ObjectState) Restore() *Object {
	o := &Object{
		ID:            st.ID,
		Kind:          st.Kind,
		Left:          st.Left,
		Top:           st.Top,
		Width:         st.Width,
		Height:        st.Height,
		ScaleX:        st.ScaleX,
		ScaleY:        st.ScaleY,
		Angle:         st.Angle,
		Selectable:    st.Selectable,
		Evented:       st.Evented,
		Fill:          st.Fill,
		Stroke:        st.Stroke,
		StrokeWidth:   st.StrokeWidth,
		LockMovementX: st.LockMovementX,
		LockMovementY: st.LockMovementY,
		LockRotation:  st.LockRotation,
		LockScalingX:  st.LockScalingX,
		LockScalingY:  st.LockScalingY,
		RowID:         st.RowID,
		SeatNumber:    st.SeatNumber,
		RowLabel:      st.RowLabel,
		Category:      st.Category,
		Price:         st.Price,
		Status:        st.Status,
		Radius:        st.Radius,
		Text:          st.Text,
		FontSize:      st.FontSize,
		Points:        st.Points,
		Src:           st.Src,
	}
	o.ApplySeatHandles()
	return o
}

// TakeSnapshot serializes every persistent object in draw order. Transient
// objects (guides, badges, grid hints) are excluded.
func (s *Scene) TakeSnapshot() Snapshot {
	snap := Snapshot{Background: s.backgroundSrc}
	for _, o := range s.objects {
		if o.Transient {
			continue
		}
		snap.Objects = append(snap.Objects, stateOf(o))
	}
	return snap
}

// Validate checks the snapshot's object ids for presence and uniqueness,
// without touching any scene. Callers that must stay untouched on a bad
// document check here before loading.
func (snap Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(snap.Objects))
	for _, st := range snap.Objects {
		if st.ID == "" {
			return fmt.Errorf("%w: object without id", ErrInvalidSnapshot)
		}
		if _, dup := seen[st.ID]; dup {
			return fmt.Errorf("%w: duplicate object id %s", ErrInvalidSnapshot, st.ID)
		}
		seen[st.ID] = struct{}{}
	}
	return nil
}

// LoadSnapshot replaces the scene contents with the snapshot. A snapshot that
// fails Validate leaves the scene exactly as it was. The previous contents
// are discarded and a single scene:loaded event is emitted; callers that
// journal scene events must suppress themselves around this call when the
// load is their own doing.
func (s *Scene) LoadSnapshot(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	objects := make([]*Object, 0, len(snap.Objects))
	index := make(map[string]*Object, len(snap.Objects))
	for _, st := range snap.Objects {
		o := st.Restore()
		objects = append(objects, o)
		index[o.ID] = o
	}
	s.objects = objects
	s.index = index
	s.backgroundSrc = snap.Background
	s.emit(Event{Type: EventSceneLoaded})
	return nil
}

// Encode renders the snapshot as canonical JSON.
func (snap Snapshot) Encode() ([]byte, error) {
	return json.Marshal(snap)
}

// DecodeSnapshot parses a snapshot previously produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}
