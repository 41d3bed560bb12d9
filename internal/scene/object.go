package scene

import (
	"github.com/google/uuid"
)

// Kind identifies what a drawable object represents on the canvas.
type Kind string

const (
	KindSeat       Kind = "seat"
	KindRowLabel   Kind = "row-label"
	KindZone       Kind = "zone"
	KindPolygon    Kind = "polygon"
	KindText       Kind = "text"
	KindBackground Kind = "background"

	// Transient kinds exist only at runtime (alignment guides, selection
	// badges, the live grid-size hint) and are never serialized.
	KindGuide    Kind = "guide"
	KindBadge    Kind = "badge"
	KindGridHint Kind = "grid-hint"
)

// UnconfiguredSeatFill is the neutral fill for a seat without a valid
// category.
const UnconfiguredSeatFill = "#cccccc"

// SeatStatus is the booking status of a seat.
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusHeld      SeatStatus = "held"
	StatusSold      SeatStatus = "sold"
	StatusBlocked   SeatStatus = "blocked"
)

func (s SeatStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusHeld, StatusSold, StatusBlocked:
		return true
	}
	return false
}

// IsBooked reports whether the status carries a booking (darkened rendering,
// no customer interaction).
func (s SeatStatus) IsBooked() bool {
	return s == StatusSold || s == StatusHeld || s == StatusBlocked
}

// Locks reports whether the status makes the seat immutable to the operator.
func (s SeatStatus) Locks() bool {
	return s == StatusSold || s == StatusHeld
}

// Point is a coordinate in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ViewerState is runtime-only per-seat state owned by the customer viewer.
// It lives on the object so selection survives re-renders, but it is never
// part of a snapshot.
type ViewerState struct {
	Selected         bool
	RowLabel         string // lazily cached display label
	SavedStroke      string
	SavedStrokeWidth float64
	BadgeID          string
}

// Object is a single drawable entity on the scene. One struct covers every
// kind; kind-specific fields are zero-valued for the kinds that do not use
// them, mirroring the shape of the serialized document.
type Object struct {
	ID   string
	Kind Kind

	// Geometry
	Left   float64
	Top    float64
	Width  float64
	Height float64
	ScaleX float64
	ScaleY float64
	Angle  float64

	// Interaction flags
	Selectable bool
	Evented    bool

	// Style
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Per-axis locks
	LockMovementX bool
	LockMovementY bool
	LockRotation  bool
	LockScalingX  bool
	LockScalingY  bool

	// Seat fields
	RowID      string
	SeatNumber string
	RowLabel   string // optional explicit display label, overrides row lookup
	Category   string // weak reference to a category id, may be dangling
	Price      float64
	Status     SeatStatus
	Radius     float64

	// Text fields
	Text     string
	FontSize float64

	// Polygon vertices
	Points []Point

	// Background image source
	Src string

	// Runtime-only state, never serialized.
	Transient         bool
	CornerHandlesOnly bool
	Viewer            ViewerState
}

// NewID returns a fresh opaque object id.
func NewID() string {
	return uuid.NewString()
}

// NewObject creates an object of the given kind with an id already assigned
// and unit scale. Every object must carry its id before it is added to a
// scene.
func NewObject(kind Kind) *Object {
	return &Object{
		ID:         NewID(),
		Kind:       kind,
		ScaleX:     1,
		ScaleY:     1,
		Selectable: true,
		Evented:    true,
	}
}

// IsSeat reports whether the object is a seat.
func (o *Object) IsSeat() bool {
	return o.Kind == KindSeat
}

// LockedForEdit reports whether operator edits to seat number/category must
// be rejected. Sold and held seats are immutable.
func (o *Object) LockedForEdit() bool {
	return o.IsSeat() && o.Status.Locks()
}

// ScaledWidth returns the effective width after horizontal scaling.
func (o *Object) ScaledWidth() float64 {
	return o.Width * o.ScaleX
}

// ScaledHeight returns the effective height after vertical scaling.
func (o *Object) ScaledHeight() float64 {
	return o.Height * o.ScaleY
}

// CenterX returns the horizontal center of the object's bounding box.
func (o *Object) CenterX() float64 {
	return o.Left + o.ScaledWidth()/2
}

// CenterY returns the vertical center of the object's bounding box.
func (o *Object) CenterY() float64 {
	return o.Top + o.ScaledHeight()/2
}

// ApplySeatHandles restricts a seat to its corner handles. Mid-edge handles
// are disabled so seats resize uniformly. Called on creation and again after
// every snapshot restore, since handle visibility is not serialized.
func (o *Object) ApplySeatHandles() {
	if o.IsSeat() {
		o.CornerHandlesOnly = true
	}
}

// Clone returns a deep copy of the object, including its id. Callers that
// need an independent identity (clipboard, paste) assign a fresh id on the
// copy afterwards.
func (o *Object) Clone() *Object {
	cp := *o
	cp.Viewer = ViewerState{}
	if o.Points != nil {
		cp.Points = make([]Point, len(o.Points))
		copy(cp.Points, o.Points)
	}
	return &cp
}
