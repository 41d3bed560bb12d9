package tools

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

func newMachine(t *testing.T) (*Machine, *scene.Scene, *layout.RowTable) {
	t.Helper()
	s := scene.New()
	rows := layout.NewRowTable()
	return NewMachine(s, rows), s, rows
}

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h       float64
		rows, cols int
	}{
		{"130x55", 130, 55, 2, 5},
		{"exact cells", 100, 50, 2, 4},
		{"sub-cell drag", 10, 10, 1, 1},
		{"zero drag", 0, 0, 1, 1},
		{"wide only", 260, 10, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, cols := gridDimensions(scene.Point{}, scene.Point{X: tt.w, Y: tt.h})
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.cols, cols)
		})
	}
}

func TestSeatGridCreatesRowsAndSeats(t *testing.T) {
	m, s, rows := newMachine(t)
	rows.Add(layout.Row{ID: "pre-a", Name: "A"})
	rows.Add(layout.Row{ID: "pre-b", Name: "B"})

	require.NoError(t, m.SetTool(ToolAddSeatGrid))
	m.PointerDown(scene.Point{X: 100, Y: 100})
	m.PointerMove(scene.Point{X: 180, Y: 130})
	created := m.PointerUp(scene.Point{X: 230, Y: 155})

	// 130 wide, 55 tall at a 25 px pitch: 5 columns, 2 rows.
	assert.Len(t, created, 10)
	assert.Equal(t, 4, rows.Len())

	names := []string{}
	for _, r := range rows.Rows() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names, "new rows continue the alphabetic sequence")

	byRow := s.SeatsByRow()
	for _, r := range rows.Rows()[2:] {
		seats := byRow[r.ID]
		require.Len(t, seats, 5)
		for i, seat := range seats {
			assert.Equal(t, fmt.Sprintf("%d", i+1), seat.SeatNumber)
			assert.True(t, seat.CornerHandlesOnly)
		}
	}

	assert.Equal(t, ToolSelect, m.Active(), "grid tool returns to select")
}

func TestSeatGridHintIsTransientAndRemoved(t *testing.T) {
	m, s, _ := newMachine(t)
	require.NoError(t, m.SetTool(ToolAddSeatGrid))

	m.PointerDown(scene.Point{X: 0, Y: 0})
	require.NotNil(t, m.gridHint)
	assert.True(t, m.gridHint.Transient)

	m.PointerMove(scene.Point{X: 80, Y: 60})
	assert.Equal(t, "2 x 3", m.gridHint.Text)

	m.PointerUp(scene.Point{X: 80, Y: 60})
	for _, o := range s.Objects() {
		assert.NotEqual(t, scene.KindGridHint, o.Kind, "hint survived the drag")
	}
}

func TestAddSeatUsesDefaultRowAndSequentialNumbers(t *testing.T) {
	m, s, rows := newMachine(t)

	var seats []*scene.Object
	for i := 0; i < 3; i++ {
		require.NoError(t, m.SetTool(ToolAddSeat))
		seat := m.PointerDown(scene.Point{X: float64(i) * 30, Y: 10})
		require.NotNil(t, seat)
		seats = append(seats, seat)
		assert.Equal(t, ToolSelect, m.Active())
	}

	assert.Equal(t, 1, rows.Len())
	rowID := seats[0].RowID
	for i, seat := range seats {
		assert.Equal(t, rowID, seat.RowID)
		assert.Equal(t, fmt.Sprintf("%d", i+1), seat.SeatNumber)
	}
	assert.Len(t, s.SeatsByRow()[rowID], 3)
}

func TestAddSeatHonorsCallerContext(t *testing.T) {
	m, _, _ := newMachine(t)
	m.SeatContext = func() SeatContext {
		return SeatContext{RowID: "vip-row", SeatNumber: "12"}
	}

	require.NoError(t, m.SetTool(ToolAddSeat))
	seat := m.PointerDown(scene.Point{X: 5, Y: 5})
	require.NotNil(t, seat)
	assert.Equal(t, "vip-row", seat.RowID)
	assert.Equal(t, "12", seat.SeatNumber)
}

func TestRectangleDefaultsTo100WhenNotDragged(t *testing.T) {
	m, _, _ := newMachine(t)
	require.NoError(t, m.SetTool(ToolAddRectangle))

	m.PointerDown(scene.Point{X: 40, Y: 40})
	created := m.PointerUp(scene.Point{X: 40, Y: 40})

	require.Len(t, created, 1)
	assert.Equal(t, DefaultZoneSize, created[0].Width)
	assert.Equal(t, DefaultZoneSize, created[0].Height)
	assert.Equal(t, ToolSelect, m.Active())
}

func TestRectangleGrowsWithDrag(t *testing.T) {
	m, _, _ := newMachine(t)
	require.NoError(t, m.SetTool(ToolAddRectangle))

	m.PointerDown(scene.Point{X: 10, Y: 10})
	m.PointerMove(scene.Point{X: 210, Y: 90})
	created := m.PointerUp(scene.Point{X: 210, Y: 90})

	require.Len(t, created, 1)
	assert.Equal(t, 200.0, created[0].Width)
	assert.Equal(t, 80.0, created[0].Height)
}

func TestTextToolCreatesAndNotifies(t *testing.T) {
	m, _, _ := newMachine(t)
	var edited *scene.Object
	m.OnTextCreated = func(o *scene.Object) { edited = o }

	require.NoError(t, m.SetTool(ToolAddText))
	txt := m.PointerDown(scene.Point{X: 15, Y: 25})

	require.NotNil(t, txt)
	assert.Equal(t, scene.KindText, txt.Kind)
	assert.Same(t, txt, edited)
	assert.Equal(t, ToolSelect, m.Active())
}

func TestPolygonFinalizesWithThreeOrMoreVertices(t *testing.T) {
	m, s, _ := newMachine(t)
	require.NoError(t, m.SetTool(ToolAddPolygon))

	m.PointerDown(scene.Point{X: 0, Y: 0})
	m.PointerDown(scene.Point{X: 100, Y: 0})
	m.PointerMove(scene.Point{X: 60, Y: 40})
	m.PointerDown(scene.Point{X: 50, Y: 80})
	poly := m.DoubleClick(scene.Point{X: 50, Y: 80})

	require.NotNil(t, poly)
	assert.Equal(t, scene.KindPolygon, poly.Kind)
	assert.Len(t, poly.Points, 3)
	assert.Equal(t, 0.0, poly.Left)
	assert.Equal(t, 100.0, poly.Width)
	assert.Equal(t, 80.0, poly.Height)
	assert.Equal(t, ToolSelect, m.Active())

	for _, o := range s.Objects() {
		assert.NotEqual(t, scene.KindGuide, o.Kind, "rubber-band preview survived")
	}
}

func TestPolygonDiscardedBelowThreeVertices(t *testing.T) {
	m, s, _ := newMachine(t)
	require.NoError(t, m.SetTool(ToolAddPolygon))

	m.PointerDown(scene.Point{X: 0, Y: 0})
	m.PointerDown(scene.Point{X: 50, Y: 0})
	poly := m.DoubleClick(scene.Point{X: 50, Y: 0})

	assert.Nil(t, poly)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ToolSelect, m.Active())
}

func TestSwitchingToolsAbandonsInFlightGestures(t *testing.T) {
	m, s, _ := newMachine(t)

	require.NoError(t, m.SetTool(ToolAddPolygon))
	m.PointerDown(scene.Point{X: 0, Y: 0})
	m.PointerDown(scene.Point{X: 10, Y: 10})
	require.NoError(t, m.SetTool(ToolSelect))
	assert.Equal(t, 0, s.Len(), "abandoned polygon left artifacts")

	require.NoError(t, m.SetTool(ToolAddSeatGrid))
	m.PointerDown(scene.Point{X: 0, Y: 0})
	require.NoError(t, m.SetTool(ToolSelect))
	assert.Equal(t, 0, s.Len(), "abandoned grid drag left artifacts")
}

func TestSetToolRejectsUnknown(t *testing.T) {
	m, _, _ := newMachine(t)
	assert.Error(t, m.SetTool(Tool("lasso")))
	assert.Equal(t, ToolSelect, m.Active())
}
