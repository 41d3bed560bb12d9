package viewer

import (
	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

const (
	highlightStroke      = "#2b7de9"
	highlightStrokeWidth = 3.0
	badgeRadius          = 6.0
)

// SeatRecord is the enriched seat data handed to host callbacks.
type SeatRecord struct {
	ID           string           `json:"id"`
	Number       string           `json:"number"`
	RowLabel     string           `json:"rowLabel"`
	Price        float64          `json:"price"`
	Category     string           `json:"category"`
	Status       scene.SeatStatus `json:"status"`
	CategoryInfo *layout.Category `json:"categoryInfo,omitempty"`
}

// SeatBooking is an authoritative booking-state record from the backend,
// matched onto scene objects by canvas seat id.
type SeatBooking struct {
	CanvasSeatID     string           `json:"canvasSeatId"`
	TicketCategoryID string           `json:"ticketCategoryId"`
	Status           scene.SeatStatus `json:"status"`
}

// Viewer is the customer-facing read-only seat selector. Selection state is
// either controlled (an external id list reconciled inward) or uncontrolled
// (owned internally); controlled mode takes priority once an external list
// has been supplied.
type Viewer struct {
	scene      *scene.Scene
	rows       *layout.RowTable
	categories map[string]layout.Category

	controlled bool

	// OnSeatClick fires for every accepted click with the enriched record.
	OnSeatClick func(SeatRecord)

	// OnSelectionChange reports the would-be (controlled) or effective
	// (uncontrolled) selected id list after a click.
	OnSelectionChange func(ids []string, seats []SeatRecord)
}

// New creates a viewer over the scene and side tables and derives every
// seat's initial appearance.
func New(s *scene.Scene, rows *layout.RowTable, categories []layout.Category) *Viewer {
	v := &Viewer{
		scene:      s,
		rows:       rows,
		categories: layout.CategoryIndex(categories),
	}
	RestyleSeats(s, v.categories)
	return v
}

// SetCategories replaces the category table and restyles all seats.
func (v *Viewer) SetCategories(categories []layout.Category) {
	v.categories = layout.CategoryIndex(categories)
	RestyleSeats(v.scene, v.categories)
}

// ApplyBookings reconciles backend booking state onto the scene. Records
// whose canvas seat id matches no live object are ignored.
func (v *Viewer) ApplyBookings(bookings []SeatBooking) {
	for _, b := range bookings {
		seat := v.scene.Get(b.CanvasSeatID)
		if seat == nil || !seat.IsSeat() {
			continue
		}
		if b.TicketCategoryID != "" {
			seat.Category = b.TicketCategoryID
		}
		if b.Status.IsValid() {
			seat.Status = b.Status
		}
	}
	RestyleSeats(v.scene, v.categories)
}

// Interactive reports whether the viewer accepts pointer input on the seat.
func (v *Viewer) Interactive(seat *scene.Object) bool {
	return seat != nil && seat.IsSeat() &&
		ComputeAppearance(seat, v.categories).Interactive
}

// Controlled reports whether an external id list currently governs
// selection.
func (v *Viewer) Controlled() bool {
	return v.controlled
}

// SetSelectedSeatIDs drives controlled mode. A nil list returns ownership of
// selection to the viewer; a non-nil list is reconciled inward, flipping
// only the seats whose state actually differs.
func (v *Viewer) SetSelectedSeatIDs(ids []string) {
	if ids == nil {
		v.controlled = false
		return
	}
	v.controlled = true

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	for _, seat := range v.scene.Seats() {
		switch {
		case want[seat.ID] && !seat.Viewer.Selected && v.Interactive(seat):
			v.SelectSeat(seat.ID)
		case !want[seat.ID] && seat.Viewer.Selected:
			v.DeselectSeat(seat.ID)
		}
	}
}

// SelectSeat highlights a seat: the original stroke is remembered, the
// stroke switches to the highlight color at increased width, and a checked
// badge is overlaid on the seat center at the front of the draw order.
// No-op if the seat is already selected.
func (v *Viewer) SelectSeat(id string) {
	seat := v.scene.Get(id)
	if seat == nil || !seat.IsSeat() || seat.Viewer.Selected {
		return
	}

	seat.Viewer.SavedStroke = seat.Stroke
	seat.Viewer.SavedStrokeWidth = seat.StrokeWidth
	seat.Stroke = highlightStroke
	seat.StrokeWidth = highlightStrokeWidth

	badge := scene.NewObject(scene.KindBadge)
	badge.Transient = true
	badge.Selectable = false
	badge.Evented = false
	badge.Radius = badgeRadius
	badge.Width = badgeRadius * 2
	badge.Height = badgeRadius * 2
	badge.Left = seat.CenterX() - badgeRadius
	badge.Top = seat.CenterY() - badgeRadius
	badge.Fill = highlightStroke
	badge.Text = "✓"
	if err := v.scene.Add(badge); err == nil {
		v.scene.BringToFront(badge.ID)
		seat.Viewer.BadgeID = badge.ID
	}

	seat.Viewer.Selected = true
}

// DeselectSeat restores the remembered stroke and removes the badge. No-op
// if the seat is not selected.
func (v *Viewer) DeselectSeat(id string) {
	seat := v.scene.Get(id)
	if seat == nil || !seat.IsSeat() || !seat.Viewer.Selected {
		return
	}

	seat.Stroke = seat.Viewer.SavedStroke
	seat.StrokeWidth = seat.Viewer.SavedStrokeWidth
	if seat.Viewer.BadgeID != "" {
		v.scene.Remove(seat.Viewer.BadgeID)
		seat.Viewer.BadgeID = ""
	}
	seat.Viewer.Selected = false
}

// SelectedIDs returns the ids of currently highlighted seats in draw order.
func (v *Viewer) SelectedIDs() []string {
	var ids []string
	for _, seat := range v.scene.Seats() {
		if seat.Viewer.Selected {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// HandleClick processes a pointer-down on a seat. Clicks on non-interactive
// seats are dropped. The intent is the negation of the seat's current flag.
// Uncontrolled mode flips the flag and visuals directly; controlled mode
// leaves visuals alone and only reports the would-be id list, expecting the
// host to feed it back through SetSelectedSeatIDs. Either way a single
// visual pass results per click.
func (v *Viewer) HandleClick(id string) {
	seat := v.scene.Get(id)
	if !v.Interactive(seat) {
		return
	}

	selecting := !seat.Viewer.Selected

	if !v.controlled {
		if selecting {
			v.SelectSeat(id)
		} else {
			v.DeselectSeat(id)
		}
	}

	ids := v.SelectedIDs()
	if v.controlled {
		// Visuals untouched: report the list as it would be after the
		// toggle.
		if selecting {
			ids = append(ids, id)
		} else {
			ids = remove(ids, id)
		}
	}

	if v.OnSeatClick != nil {
		v.OnSeatClick(v.Record(seat))
	}
	if v.OnSelectionChange != nil {
		v.OnSelectionChange(ids, v.Records(ids))
	}
}

// Record builds the enriched callback record for a seat, resolving and
// caching its display row label.
func (v *Viewer) Record(seat *scene.Object) SeatRecord {
	rec := SeatRecord{
		ID:       seat.ID,
		Number:   seat.SeatNumber,
		RowLabel: v.rowLabel(seat),
		Price:    seat.Price,
		Category: seat.Category,
		Status:   seat.Status,
	}
	if cat, ok := v.categories[seat.Category]; ok {
		rec.CategoryInfo = &cat
	}
	return rec
}

// Records builds enriched records for the given seat ids.
func (v *Viewer) Records(ids []string) []SeatRecord {
	records := make([]SeatRecord, 0, len(ids))
	for _, id := range ids {
		if seat := v.scene.Get(id); seat != nil && seat.IsSeat() {
			records = append(records, v.Record(seat))
		}
	}
	return records
}

// rowLabel resolves the display row label once per seat and caches it.
// Fallback chain: explicit label on the object, then the row table by rowId,
// then "-".
func (v *Viewer) rowLabel(seat *scene.Object) string {
	if seat.Viewer.RowLabel != "" {
		return seat.Viewer.RowLabel
	}
	label := "-"
	if seat.RowLabel != "" {
		label = seat.RowLabel
	} else if row, ok := v.rows.Get(seat.RowID); ok {
		label = row.Name
	}
	seat.Viewer.RowLabel = label
	return label
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
