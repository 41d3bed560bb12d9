package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/scene"
)

func addZone(t *testing.T, s *scene.Scene, left float64) *scene.Object {
	t.Helper()
	o := scene.NewObject(scene.KindZone)
	o.Left = left
	o.Width, o.Height = 50, 50
	require.NoError(t, s.Add(o))
	return o
}

func encoded(t *testing.T, s *scene.Scene) string {
	t.Helper()
	data, err := s.TakeSnapshot().Encode()
	require.NoError(t, err)
	return string(data)
}

func TestUndoRedoInverseLaw(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	const n = 5
	for i := 0; i < n; i++ {
		addZone(t, s, float64(i)*10)
	}
	final := encoded(t, s)
	require.Equal(t, n+1, j.Depth(), "initial state plus one entry per mutation")

	for i := 0; i < n-1; i++ {
		require.NoError(t, j.Undo())
	}
	assert.Equal(t, 1, s.Len())

	for i := 0; i < n-1; i++ {
		require.NoError(t, j.Redo())
	}
	assert.Equal(t, final, encoded(t, s), "redo chain must restore the exact pre-undo state")
	assert.Equal(t, 0, j.RedoDepth())
}

func TestUndoBoundaryIsNoOp(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	require.NoError(t, j.Undo())
	assert.Equal(t, 1, j.Depth())

	addZone(t, s, 0)
	require.NoError(t, j.Undo())
	require.NoError(t, j.Undo()) // second undo has nothing left to pop
	assert.Equal(t, 1, j.Depth())
	assert.Equal(t, 0, s.Len())
}

func TestRedoBoundaryIsNoOp(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	require.NoError(t, j.Redo())
	addZone(t, s, 0)
	require.NoError(t, j.Redo())
	assert.Equal(t, 1, s.Len())
}

func TestNewMutationDiscardsRedoHistory(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	addZone(t, s, 0)
	addZone(t, s, 100)
	require.NoError(t, j.Undo())
	require.Equal(t, 1, j.RedoDepth())

	addZone(t, s, 200)
	assert.Equal(t, 0, j.RedoDepth(), "redo stack must be cleared by a fresh mutation")
}

func TestUndoRedoDoesNotJournalItself(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	addZone(t, s, 0)
	addZone(t, s, 50)
	depth := j.Depth()

	require.NoError(t, j.Undo())
	require.NoError(t, j.Redo())
	assert.Equal(t, depth, j.Depth(), "reload events must not create new entries")
}

func TestIdenticalSnapshotsAreNotStacked(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	o := addZone(t, s, 0)
	depth := j.Depth()

	// Modification without any serialized change.
	s.NotifyModified(o.ID)
	assert.Equal(t, depth, j.Depth())

	o.Left = 75
	s.NotifyModified(o.ID)
	assert.Equal(t, depth+1, j.Depth())
}

func TestSuspendedJournalSkipsInterimStates(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	o := addZone(t, s, 0)
	depth := j.Depth()

	j.Suspend()
	for i := 1; i <= 4; i++ {
		o.Left = float64(i) * 10
		s.NotifyModified(o.ID)
	}
	assert.Equal(t, depth, j.Depth(), "suspended journal records nothing")

	j.Resume()
	o.Left = 100
	s.NotifyModified(o.ID)
	assert.Equal(t, depth+1, j.Depth(), "the final state journals as one entry")

	require.NoError(t, j.Undo())
	assert.Equal(t, 0.0, s.Get(o.ID).Left, "undo skips straight past the interim states")
}

func TestUndoRestoresSeatHandleProfile(t *testing.T) {
	s := scene.New()
	j := NewJournal(s)
	defer j.Close()

	seat := scene.NewObject(scene.KindSeat)
	seat.ApplySeatHandles()
	require.NoError(t, s.Add(seat))
	addZone(t, s, 0)

	require.NoError(t, j.Undo())
	restored := s.Get(seat.ID)
	require.NotNil(t, restored)
	assert.True(t, restored.CornerHandlesOnly)
}
