package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsDuplicateAndMissingIDs(t *testing.T) {
	s := New()

	o := NewObject(KindZone)
	require.NoError(t, s.Add(o))

	dup := NewObject(KindZone)
	dup.ID = o.ID
	assert.ErrorIs(t, s.Add(dup), ErrDuplicateID)

	anon := NewObject(KindZone)
	anon.ID = ""
	assert.ErrorIs(t, s.Add(anon), ErrMissingID)

	assert.Equal(t, 1, s.Len())
}

func TestIDsUniqueAcrossCreations(t *testing.T) {
	s := New()
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		o := NewObject(KindSeat)
		require.NoError(t, s.Add(o))
		assert.False(t, seen[o.ID], "id %s produced twice", o.ID)
		seen[o.ID] = true
	}
}

func TestSeatsByRowScansWeakReferences(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		seat := NewObject(KindSeat)
		seat.RowID = "row-a"
		require.NoError(t, s.Add(seat))
	}
	lonely := NewObject(KindSeat)
	lonely.RowID = "row-b"
	require.NoError(t, s.Add(lonely))

	byRow := s.SeatsByRow()
	assert.Len(t, byRow["row-a"], 3)
	assert.Len(t, byRow["row-b"], 1)

	// Deleting a seat must not leave a stale index entry on the next scan.
	s.Remove(lonely.ID)
	assert.Empty(t, s.SeatsByRow()["row-b"])
}

func TestEventsFireInOrder(t *testing.T) {
	s := New()
	var types []EventType
	s.Subscribe(func(ev Event) { types = append(types, ev.Type) })

	o := NewObject(KindText)
	require.NoError(t, s.Add(o))
	s.NotifyModified(o.ID)
	s.Remove(o.ID)
	s.Clear()

	assert.Equal(t, []EventType{
		EventObjectAdded,
		EventObjectModified,
		EventObjectRemoved,
		EventSceneCleared,
	}, types)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := New()
	calls := 0
	off := s.Subscribe(func(Event) { calls++ })

	require.NoError(t, s.Add(NewObject(KindZone)))
	off()
	require.NoError(t, s.Add(NewObject(KindZone)))

	assert.Equal(t, 1, calls)
}

func TestBringToFront(t *testing.T) {
	s := New()
	a := NewObject(KindZone)
	b := NewObject(KindZone)
	c := NewObject(KindZone)
	for _, o := range []*Object{a, b, c} {
		require.NoError(t, s.Add(o))
	}

	s.BringToFront(a.ID)
	objs := s.Objects()
	assert.Equal(t, a.ID, objs[len(objs)-1].ID)
}

func TestCloneIsDeep(t *testing.T) {
	o := NewObject(KindPolygon)
	o.Points = []Point{{X: 1, Y: 2}, {X: 3, Y: 4}}

	cp := o.Clone()
	cp.Points[0].X = 99

	assert.Equal(t, 1.0, o.Points[0].X)
	assert.Equal(t, o.ID, cp.ID, "clone keeps the id until the caller reassigns it")
}

func TestLockedForEdit(t *testing.T) {
	tests := []struct {
		status SeatStatus
		locked bool
	}{
		{StatusAvailable, false},
		{StatusBlocked, false},
		{StatusHeld, true},
		{StatusSold, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			seat := NewObject(KindSeat)
			seat.Status = tt.status
			assert.Equal(t, tt.locked, seat.LockedForEdit())
		})
	}
}
