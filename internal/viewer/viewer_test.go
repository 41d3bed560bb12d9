package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
)

var viewerCategories = []layout.Category{
	{ID: "vip", Name: "VIP", Color: "#aa00ff", Price: 150},
	{ID: "standard", Name: "Standard", Color: "#00aaff", Price: 60},
}

func newTestViewer(t *testing.T) (*Viewer, *scene.Scene, []*scene.Object) {
	t.Helper()
	s := scene.New()
	rows := layout.NewRowTable(layout.Row{ID: "row-a", Name: "A"})

	seats := make([]*scene.Object, 3)
	for i := range seats {
		seat := scene.NewObject(scene.KindSeat)
		seat.Left = float64(i) * 40
		seat.Radius = 10
		seat.Width, seat.Height = 20, 20
		seat.Stroke = "#333333"
		seat.StrokeWidth = 1
		seat.RowID = "row-a"
		seat.SeatNumber = string(rune('1' + i))
		seat.Category = "vip"
		seat.Status = scene.StatusAvailable
		require.NoError(t, s.Add(seat))
		seats[i] = seat
	}

	return New(s, rows, viewerCategories), s, seats
}

func TestNewRestylesSeats(t *testing.T) {
	v, _, seats := newTestViewer(t)
	_ = v
	for _, seat := range seats {
		assert.Equal(t, "#aa00ff", seat.Fill)
		assert.Equal(t, 150.0, seat.Price)
		assert.True(t, seat.Evented)
	}
}

func TestApplyBookingsDisablesSoldSeats(t *testing.T) {
	v, _, seats := newTestViewer(t)

	v.ApplyBookings([]SeatBooking{
		{CanvasSeatID: seats[0].ID, Status: scene.StatusSold},
		{CanvasSeatID: "no-such-seat", Status: scene.StatusSold},
	})

	assert.Equal(t, scene.StatusSold, seats[0].Status)
	assert.False(t, v.Interactive(seats[0]), "sold seats must never take clicks")
	assert.True(t, v.Interactive(seats[1]))
	assert.Equal(t, Darken("#aa00ff", DarkenFactor), seats[0].Fill)
}

func TestClickOnSoldSeatIsDropped(t *testing.T) {
	v, _, seats := newTestViewer(t)
	seats[0].Status = scene.StatusSold

	clicked := false
	v.OnSeatClick = func(SeatRecord) { clicked = true }

	v.HandleClick(seats[0].ID)
	assert.False(t, clicked)
	assert.Empty(t, v.SelectedIDs())
}

func TestUncontrolledToggle(t *testing.T) {
	v, s, seats := newTestViewer(t)

	v.HandleClick(seats[0].ID)
	assert.Equal(t, []string{seats[0].ID}, v.SelectedIDs())
	assert.Equal(t, highlightStroke, seats[0].Stroke)
	require.NotEmpty(t, seats[0].Viewer.BadgeID)
	assert.NotNil(t, s.Get(seats[0].Viewer.BadgeID))

	v.HandleClick(seats[0].ID)
	assert.Empty(t, v.SelectedIDs())
	assert.Equal(t, "#333333", seats[0].Stroke, "deselect must restore the original stroke")
	assert.Equal(t, 1.0, seats[0].StrokeWidth)
	for _, o := range s.Objects() {
		assert.NotEqual(t, scene.KindBadge, o.Kind, "badge left behind after deselect")
	}
}

func TestUncontrolledClickCallbacks(t *testing.T) {
	v, _, seats := newTestViewer(t)

	var record SeatRecord
	var ids []string
	v.OnSeatClick = func(r SeatRecord) { record = r }
	v.OnSelectionChange = func(sel []string, _ []SeatRecord) { ids = sel }

	v.HandleClick(seats[1].ID)

	assert.Equal(t, seats[1].ID, record.ID)
	assert.Equal(t, "A", record.RowLabel)
	assert.Equal(t, 150.0, record.Price)
	require.NotNil(t, record.CategoryInfo)
	assert.Equal(t, "VIP", record.CategoryInfo.Name)
	assert.Equal(t, []string{seats[1].ID}, ids)
}

func TestControlledReconciliation(t *testing.T) {
	v, _, seats := newTestViewer(t)

	v.SetSelectedSeatIDs([]string{seats[0].ID, seats[1].ID})
	assert.True(t, v.Controlled())
	assert.ElementsMatch(t, []string{seats[0].ID, seats[1].ID}, v.SelectedIDs())

	// Shrinking the list touches only the removed seat.
	stroke := seats[0].Stroke
	v.SetSelectedSeatIDs([]string{seats[0].ID})
	assert.Equal(t, []string{seats[0].ID}, v.SelectedIDs())
	assert.Equal(t, stroke, seats[0].Stroke, "s1 must be left untouched")
	assert.False(t, seats[1].Viewer.Selected)
	assert.Equal(t, "#333333", seats[1].Stroke)
}

func TestControlledClickReportsWithoutFlipping(t *testing.T) {
	v, _, seats := newTestViewer(t)
	v.SetSelectedSeatIDs([]string{})

	var ids []string
	v.OnSelectionChange = func(sel []string, _ []SeatRecord) { ids = sel }

	v.HandleClick(seats[2].ID)

	assert.Equal(t, []string{seats[2].ID}, ids, "would-be list includes the clicked seat")
	assert.Empty(t, v.SelectedIDs(), "controlled mode never mutates visuals on click")
	assert.False(t, seats[2].Viewer.Selected)
}

func TestControlledDeselectReport(t *testing.T) {
	v, _, seats := newTestViewer(t)
	v.SetSelectedSeatIDs([]string{seats[0].ID, seats[1].ID})

	var ids []string
	v.OnSelectionChange = func(sel []string, _ []SeatRecord) { ids = sel }

	v.HandleClick(seats[0].ID)
	assert.Equal(t, []string{seats[1].ID}, ids)
	assert.True(t, seats[0].Viewer.Selected, "host owns the actual flip")
}

func TestNilListReturnsOwnership(t *testing.T) {
	v, _, seats := newTestViewer(t)
	v.SetSelectedSeatIDs([]string{seats[0].ID})
	require.True(t, v.Controlled())

	v.SetSelectedSeatIDs(nil)
	assert.False(t, v.Controlled())
	assert.Equal(t, []string{seats[0].ID}, v.SelectedIDs(), "existing highlights survive the handover")

	v.HandleClick(seats[0].ID)
	assert.Empty(t, v.SelectedIDs(), "clicks flip directly again once uncontrolled")
}

func TestControlledSkipsNonInteractiveSeats(t *testing.T) {
	v, _, seats := newTestViewer(t)
	seats[0].Status = scene.StatusSold

	v.SetSelectedSeatIDs([]string{seats[0].ID, seats[1].ID})
	assert.Equal(t, []string{seats[1].ID}, v.SelectedIDs())
}

func TestSelectSeatIdempotent(t *testing.T) {
	v, s, seats := newTestViewer(t)

	v.SelectSeat(seats[0].ID)
	badge := seats[0].Viewer.BadgeID
	v.SelectSeat(seats[0].ID)

	assert.Equal(t, badge, seats[0].Viewer.BadgeID)
	count := 0
	for _, o := range s.Objects() {
		if o.Kind == scene.KindBadge {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "#333333", seats[0].Viewer.SavedStroke,
		"re-selecting must not overwrite the remembered stroke")
}

func TestRowLabelFallbackChain(t *testing.T) {
	s := scene.New()
	rows := layout.NewRowTable(layout.Row{ID: "row-b", Name: "B"})

	explicit := scene.NewObject(scene.KindSeat)
	explicit.RowLabel = "Balcony"
	explicit.RowID = "row-b"
	require.NoError(t, s.Add(explicit))

	byTable := scene.NewObject(scene.KindSeat)
	byTable.RowID = "row-b"
	require.NoError(t, s.Add(byTable))

	orphan := scene.NewObject(scene.KindSeat)
	orphan.RowID = "row-gone"
	require.NoError(t, s.Add(orphan))

	v := New(s, rows, nil)
	assert.Equal(t, "Balcony", v.Record(explicit).RowLabel)
	assert.Equal(t, "B", v.Record(byTable).RowLabel)
	assert.Equal(t, "-", v.Record(orphan).RowLabel)

	// Resolved once, then served from the per-seat cache.
	rows.Replace(nil)
	assert.Equal(t, "B", v.Record(byTable).RowLabel)
}
