package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/editor"
	"seatlab/internal/scene"
	"seatlab/internal/shared/config"
	"seatlab/internal/tools"
	"seatlab/internal/viewer"
)

func newTestRegistry(t *testing.T, max int) *Registry {
	t.Helper()
	r := NewRegistry(config.EditorConfig{
		SessionIdleTimeout: time.Hour,
		MaxSessions:        max,
	})
	t.Cleanup(func() { r.Shutdown(context.Background()) })
	return r
}

func TestCreateAndGet(t *testing.T) {
	r := newTestRegistry(t, 10)

	s, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	got, err := r.Get(s.ID, "owner-1")
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestGetEnforcesOwnership(t *testing.T) {
	r := newTestRegistry(t, 10)

	s, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	_, err = r.Get(s.ID, "owner-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLimit(t *testing.T) {
	r := newTestRegistry(t, 2)

	_, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	_, err = r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	_, err = r.Create(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestCloseRemovesSession(t *testing.T) {
	r := newTestRegistry(t, 10)

	s, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	require.NoError(t, r.Close(context.Background(), s.ID, "owner-1", "test"))
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(s.ID, "owner-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = r.Close(context.Background(), s.ID, "owner-1", "test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	r := newTestRegistry(t, 10)

	idle, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	busy, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	// The busy session was touched just now; only the idle one should
	// fall past the timeout horizon.
	idle.mu.Lock()
	idle.lastActive = time.Now().Add(-2 * time.Hour)
	idle.mu.Unlock()

	r.sweep(time.Now())

	_, err = r.Get(idle.ID, "owner-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(busy.ID, "owner-1")
	assert.NoError(t, err)
}

func TestDoDrivesEditor(t *testing.T) {
	r := newTestRegistry(t, 10)

	s, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	err = s.Do(func(e *editor.Editor) error {
		if err := e.SetTool(tools.ToolAddSeat); err != nil {
			return err
		}
		e.PointerDown(scene.Point{X: 100, Y: 100}, "")
		return nil
	})
	require.NoError(t, err)

	s.Do(func(e *editor.Editor) error {
		assert.Len(t, e.Scene.Seats(), 1)
		return nil
	})
}

func TestPreviewLifecycle(t *testing.T) {
	r := newTestRegistry(t, 10)

	s, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)

	err = s.DoPreview(func(v *viewer.Viewer) error { return nil })
	assert.ErrorIs(t, err, ErrNoPreview)

	s.StartPreview()
	assert.True(t, s.Previewing())

	err = s.DoPreview(func(v *viewer.Viewer) error {
		assert.False(t, v.Controlled())
		return nil
	})
	require.NoError(t, err)

	s.EndPreview()
	assert.False(t, s.Previewing())
}

func TestShutdownClosesEverything(t *testing.T) {
	r := NewRegistry(config.EditorConfig{
		SessionIdleTimeout: time.Hour,
		MaxSessions:        10,
	})

	_, err := r.Create(context.Background(), "owner-1")
	require.NoError(t, err)
	_, err = r.Create(context.Background(), "owner-2")
	require.NoError(t, err)

	r.Shutdown(context.Background())
	assert.Equal(t, 0, r.Len())
}
