package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSampleScene(t *testing.T) *Scene {
	t.Helper()
	s := New()

	seat := NewObject(KindSeat)
	seat.Left, seat.Top = 120.5, 44.25
	seat.Radius = 10
	seat.Width, seat.Height = 20, 20
	seat.RowID = "row-1"
	seat.SeatNumber = "7"
	seat.Category = "cat-1"
	seat.Price = 49.90
	seat.Status = StatusHeld
	seat.Fill = "#ff0000"
	seat.Stroke = "#333333"
	seat.StrokeWidth = 1.5
	require.NoError(t, s.Add(seat))

	zone := NewObject(KindZone)
	zone.Left, zone.Top, zone.Width, zone.Height = 10, 20, 300, 200
	zone.ScaleX, zone.ScaleY = 1.5, 0.75
	zone.Angle = 12.5
	zone.LockRotation = true
	require.NoError(t, s.Add(zone))

	txt := NewObject(KindText)
	txt.Text = "Stage"
	txt.FontSize = 24
	require.NoError(t, s.Add(txt))

	poly := NewObject(KindPolygon)
	poly.Points = []Point{{0, 0}, {100, 0}, {50, 80}}
	require.NoError(t, s.Add(poly))

	s.SetBackground("venue.png")
	return s
}

func TestSnapshotRoundTripIsLossless(t *testing.T) {
	s := buildSampleScene(t)

	data, err := s.TakeSnapshot().Encode()
	require.NoError(t, err)

	restored := New()
	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.NoError(t, restored.LoadSnapshot(snap))

	require.Equal(t, s.Len(), restored.Len())
	assert.Equal(t, "venue.png", restored.Background())

	orig := s.Objects()
	back := restored.Objects()
	for i := range orig {
		assert.Equal(t, stateOf(orig[i]), stateOf(back[i]), "object %d diverged", i)
	}

	// A second cycle must encode byte-identically.
	again, err := restored.TakeSnapshot().Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSnapshotExcludesTransientObjects(t *testing.T) {
	s := buildSampleScene(t)
	persistent := s.Len()

	guide := NewObject(KindGuide)
	guide.Transient = true
	require.NoError(t, s.Add(guide))
	badge := NewObject(KindBadge)
	badge.Transient = true
	require.NoError(t, s.Add(badge))

	snap := s.TakeSnapshot()
	assert.Len(t, snap.Objects, persistent)
}

func TestLoadSnapshotRestoresSeatHandles(t *testing.T) {
	s := buildSampleScene(t)
	snap := s.TakeSnapshot()

	restored := New()
	require.NoError(t, restored.LoadSnapshot(snap))
	for _, o := range restored.Seats() {
		assert.True(t, o.CornerHandlesOnly, "restored seat lost its handle profile")
	}
}

func TestLoadSnapshotRejectsDuplicateIDs(t *testing.T) {
	snap := Snapshot{Objects: []ObjectState{
		{ID: "x", Kind: KindZone},
		{ID: "x", Kind: KindZone},
	}}
	err := New().LoadSnapshot(snap)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSnapshotValidate(t *testing.T) {
	assert.NoError(t, Snapshot{}.Validate())
	assert.NoError(t, Snapshot{Objects: []ObjectState{
		{ID: "a", Kind: KindSeat},
		{ID: "b", Kind: KindSeat},
	}}.Validate())

	assert.ErrorIs(t, Snapshot{Objects: []ObjectState{
		{Kind: KindSeat},
	}}.Validate(), ErrInvalidSnapshot)
	assert.ErrorIs(t, Snapshot{Objects: []ObjectState{
		{ID: "a", Kind: KindSeat},
		{ID: "a", Kind: KindSeat},
	}}.Validate(), ErrInvalidSnapshot)
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	_, err := DecodeSnapshot([]byte("{not json"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}
