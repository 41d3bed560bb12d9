package tools

import (
	"fmt"
	"math"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

// Tool identifies the active editing mode.
type Tool string

const (
	ToolSelect       Tool = "select"
	ToolAddSeat      Tool = "add-seat"
	ToolAddSeatGrid  Tool = "add-seat-grid"
	ToolAddRectangle Tool = "add-rectangle"
	ToolAddPolygon   Tool = "add-polygon"
	ToolAddText      Tool = "add-text"
)

func (t Tool) IsValid() bool {
	switch t {
	case ToolSelect, ToolAddSeat, ToolAddSeatGrid, ToolAddRectangle, ToolAddPolygon, ToolAddText:
		return true
	}
	return false
}

const (
	// CellPitch is the fixed grid cell size used by the seat-grid tool.
	CellPitch = 25.0

	// SeatRadius is the default radius of a newly placed seat.
	SeatRadius = 10.0

	// DefaultZoneSize is the side length a rectangle snaps to when the
	// pointer is released without dragging.
	DefaultZoneSize = 100.0

	defaultSeatStroke = "#7a7a7a"
	defaultZoneFill   = "#e8e8e8"
	defaultZoneStroke = "#555555"
	defaultFontSize   = 16.0
)

// SeatContext supplies the row and seat number for a single-seat placement.
// Seat numbers are unique only within a row, never globally.
type SeatContext struct {
	RowID      string
	SeatNumber string
}

// SeatContextFunc produces the context for the next single seat. The machine
// falls back to a default row with sequential numbering when nil.
type SeatContextFunc func() SeatContext

// Machine interprets pointer gestures according to the active tool and
// creates objects on the scene. Completing any single-shot creation returns
// the machine to the select tool.
type Machine struct {
	scene *scene.Scene
	rows  *layout.RowTable

	active Tool

	// SeatContext, when set, supplies row/number for the add-seat tool.
	SeatContext SeatContextFunc

	// OnTextCreated fires after the text tool places an object, so the
	// host can enter in-place editing with the contents selected.
	OnTextCreated func(*scene.Object)

	// seat-grid drag state
	gridActive bool
	gridStart  scene.Point
	gridHint   *scene.Object

	// rectangle drag state
	rectActive bool
	rectStart  scene.Point
	rect       *scene.Object
	rectMoved  bool

	// polygon state
	polyActive  bool
	polyPoints  []scene.Point
	polyPreview *scene.Object

	defaultRowID string
}

// NewMachine creates a machine in select mode.
func NewMachine(s *scene.Scene, rows *layout.RowTable) *Machine {
	return &Machine{scene: s, rows: rows, active: ToolSelect}
}

// Active returns the current tool.
func (m *Machine) Active() Tool {
	return m.active
}

// SetTool switches tools, abandoning any gesture in flight. Abandoned
// gestures leave nothing behind: grid hints and polygon previews are
// removed, a half-dragged rectangle is discarded.
func (m *Machine) SetTool(t Tool) error {
	if !t.IsValid() {
		return fmt.Errorf("unknown tool %q", t)
	}
	m.abandon()
	m.active = t
	return nil
}

func (m *Machine) abandon() {
	if m.gridHint != nil {
		m.scene.Remove(m.gridHint.ID)
		m.gridHint = nil
	}
	m.gridActive = false
	if m.rectActive && m.rect != nil {
		m.scene.Remove(m.rect.ID)
	}
	m.rectActive = false
	m.rect = nil
	if m.polyPreview != nil {
		m.scene.Remove(m.polyPreview.ID)
		m.polyPreview = nil
	}
	m.polyActive = false
	m.polyPoints = nil
}

// PointerDown begins or performs a gesture for the active tool. It returns
// the object created by single-shot tools (seat, text), if any.
func (m *Machine) PointerDown(p scene.Point) *scene.Object {
	switch m.active {
	case ToolAddSeat:
		return m.placeSeat(p)
	case ToolAddSeatGrid:
		m.beginGrid(p)
	case ToolAddRectangle:
		m.beginRect(p)
	case ToolAddText:
		return m.placeText(p)
	case ToolAddPolygon:
		m.addVertex(p)
	}
	return nil
}

// PointerMove advances an in-flight drag.
func (m *Machine) PointerMove(p scene.Point) {
	switch m.active {
	case ToolAddSeatGrid:
		m.updateGrid(p)
	case ToolAddRectangle:
		m.growRect(p)
	case ToolAddPolygon:
		m.updatePolyPreview(p)
	}
}

// PointerUp completes an in-flight drag and returns any created objects.
func (m *Machine) PointerUp(p scene.Point) []*scene.Object {
	switch m.active {
	case ToolAddSeatGrid:
		return m.finishGrid(p)
	case ToolAddRectangle:
		if o := m.finishRect(); o != nil {
			return []*scene.Object{o}
		}
	}
	return nil
}

// DoubleClick finalizes the polygon tool.
func (m *Machine) DoubleClick(p scene.Point) *scene.Object {
	if m.active == ToolAddPolygon {
		return m.finishPolygon()
	}
	return nil
}

//  ADD-SEAT

func (m *Machine) placeSeat(p scene.Point) *scene.Object {
	ctx := m.seatContext()
	seat := newSeat(p, ctx)
	if err := m.scene.Add(seat); err != nil {
		return nil
	}
	m.active = ToolSelect
	return seat
}

func (m *Machine) seatContext() SeatContext {
	if m.SeatContext != nil {
		return m.SeatContext()
	}
	// Default context: a dedicated row, numbered past whatever that row
	// already holds.
	if m.defaultRowID == "" || !m.rowExists(m.defaultRowID) {
		r := m.rows.AddNext()
		m.defaultRowID = r.ID
	}
	return SeatContext{
		RowID:      m.defaultRowID,
		SeatNumber: nextSeatNumber(m.scene, m.defaultRowID),
	}
}

func (m *Machine) rowExists(id string) bool {
	_, ok := m.rows.Get(id)
	return ok
}

// nextSeatNumber returns the smallest positive integer not yet used as a
// seat number within the row.
func nextSeatNumber(s *scene.Scene, rowID string) string {
	used := make(map[string]bool)
	for _, seat := range s.SeatsByRow()[rowID] {
		used[seat.SeatNumber] = true
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%d", n)
		if !used[candidate] {
			return candidate
		}
	}
}

func newSeat(center scene.Point, ctx SeatContext) *scene.Object {
	seat := scene.NewObject(scene.KindSeat)
	seat.Radius = SeatRadius
	seat.Width = SeatRadius * 2
	seat.Height = SeatRadius * 2
	seat.Left = center.X - SeatRadius
	seat.Top = center.Y - SeatRadius
	seat.Fill = scene.UnconfiguredSeatFill
	seat.Stroke = defaultSeatStroke
	seat.StrokeWidth = 1
	seat.RowID = ctx.RowID
	seat.SeatNumber = ctx.SeatNumber
	seat.Status = scene.StatusAvailable
	seat.ApplySeatHandles()
	return seat
}

//  ADD-SEAT-GRID

func (m *Machine) beginGrid(p scene.Point) {
	m.gridActive = true
	m.gridStart = p

	hint := scene.NewObject(scene.KindGridHint)
	hint.Transient = true
	hint.Selectable = false
	hint.Evented = false
	hint.Left = p.X
	hint.Top = p.Y
	hint.Text = "1 x 1"
	hint.FontSize = defaultFontSize
	if err := m.scene.Add(hint); err == nil {
		m.gridHint = hint
	}
}

func (m *Machine) updateGrid(p scene.Point) {
	if !m.gridActive || m.gridHint == nil {
		return
	}
	rows, cols := gridDimensions(m.gridStart, p)
	m.gridHint.Text = fmt.Sprintf("%d x %d", rows, cols)
	m.gridHint.Left = p.X + 10
	m.gridHint.Top = p.Y + 10
}

func (m *Machine) finishGrid(p scene.Point) []*scene.Object {
	if !m.gridActive {
		return nil
	}
	m.gridActive = false
	if m.gridHint != nil {
		m.scene.Remove(m.gridHint.ID)
		m.gridHint = nil
	}

	rows, cols := gridDimensions(m.gridStart, p)
	originX := math.Min(m.gridStart.X, p.X)
	originY := math.Min(m.gridStart.Y, p.Y)

	created := make([]*scene.Object, 0, rows*cols)
	for r := 0; r < rows; r++ {
		row := m.rows.AddNext()
		for c := 0; c < cols; c++ {
			center := scene.Point{
				X: originX + float64(c)*CellPitch + CellPitch/2,
				Y: originY + float64(r)*CellPitch + CellPitch/2,
			}
			seat := newSeat(center, SeatContext{
				RowID:      row.ID,
				SeatNumber: fmt.Sprintf("%d", c+1),
			})
			if err := m.scene.Add(seat); err != nil {
				continue
			}
			created = append(created, seat)
		}
	}
	m.active = ToolSelect
	return created
}

// gridDimensions converts a drag rectangle to row/column counts at the
// fixed cell pitch, with a minimum of one each.
func gridDimensions(start, end scene.Point) (rows, cols int) {
	w := math.Abs(end.X - start.X)
	h := math.Abs(end.Y - start.Y)
	rows = int(math.Floor(h / CellPitch))
	cols = int(math.Floor(w / CellPitch))
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

//  ADD-RECTANGLE

func (m *Machine) beginRect(p scene.Point) {
	rect := scene.NewObject(scene.KindZone)
	rect.Left = p.X
	rect.Top = p.Y
	rect.Width = 1
	rect.Height = 1
	rect.Fill = defaultZoneFill
	rect.Stroke = defaultZoneStroke
	rect.StrokeWidth = 1
	if err := m.scene.Add(rect); err != nil {
		return
	}
	m.rect = rect
	m.rectStart = p
	m.rectActive = true
	m.rectMoved = false
}

func (m *Machine) growRect(p scene.Point) {
	if !m.rectActive || m.rect == nil {
		return
	}
	w := p.X - m.rectStart.X
	h := p.Y - m.rectStart.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.rect.Width = w
	m.rect.Height = h
	m.rectMoved = true
}

func (m *Machine) finishRect() *scene.Object {
	if !m.rectActive || m.rect == nil {
		return nil
	}
	rect := m.rect
	if !m.rectMoved {
		rect.Width = DefaultZoneSize
		rect.Height = DefaultZoneSize
	}
	m.scene.NotifyModified(rect.ID)
	m.rectActive = false
	m.rect = nil
	m.active = ToolSelect
	return rect
}

//  ADD-TEXT

func (m *Machine) placeText(p scene.Point) *scene.Object {
	txt := scene.NewObject(scene.KindText)
	txt.Left = p.X
	txt.Top = p.Y
	txt.Text = "Text"
	txt.FontSize = defaultFontSize
	txt.Fill = "#000000"
	if err := m.scene.Add(txt); err != nil {
		return nil
	}
	m.active = ToolSelect
	if m.OnTextCreated != nil {
		m.OnTextCreated(txt)
	}
	return txt
}

//  ADD-POLYGON

func (m *Machine) addVertex(p scene.Point) {
	m.polyActive = true
	m.polyPoints = append(m.polyPoints, p)

	if m.polyPreview == nil {
		preview := scene.NewObject(scene.KindGuide)
		preview.Transient = true
		preview.Selectable = false
		preview.Evented = false
		if err := m.scene.Add(preview); err == nil {
			m.polyPreview = preview
		}
	}
	m.syncPolyPreview(p)
}

func (m *Machine) updatePolyPreview(p scene.Point) {
	if m.polyActive {
		m.syncPolyPreview(p)
	}
}

// syncPolyPreview keeps the rubber-band outline at the placed vertices plus
// the live pointer position.
func (m *Machine) syncPolyPreview(pointer scene.Point) {
	if m.polyPreview == nil {
		return
	}
	pts := make([]scene.Point, len(m.polyPoints), len(m.polyPoints)+1)
	copy(pts, m.polyPoints)
	m.polyPreview.Points = append(pts, pointer)
}

func (m *Machine) finishPolygon() *scene.Object {
	if !m.polyActive {
		return nil
	}
	points := m.polyPoints
	m.polyActive = false
	m.polyPoints = nil
	if m.polyPreview != nil {
		m.scene.Remove(m.polyPreview.ID)
		m.polyPreview = nil
	}
	m.active = ToolSelect

	// Fewer than three vertices is not a polygon; the drawing is dropped.
	if len(points) < 3 {
		return nil
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	poly := scene.NewObject(scene.KindPolygon)
	poly.Left = minX
	poly.Top = minY
	poly.Width = maxX - minX
	poly.Height = maxY - minY
	poly.Points = points
	poly.Fill = defaultZoneFill
	poly.Stroke = defaultZoneStroke
	poly.StrokeWidth = 1
	if err := m.scene.Add(poly); err != nil {
		return nil
	}
	return poly
}
