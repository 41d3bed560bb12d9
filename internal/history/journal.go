package history

import (
	"bytes"
	"fmt"

	"seatlab/internal/scene"
)

// Journal is the undo/redo snapshot log. It listens to structural scene
// events and records a full scene snapshot after each one. Undoing and
// redoing reload snapshots; a re-entrancy flag keeps those reloads from
// journaling themselves.
type Journal struct {
	scene *scene.Scene

	undoStack [][]byte // oldest -> most recent
	redoStack [][]byte // most recently undone first

	reloading   bool
	suspended   bool
	unsubscribe func()
}

// NewJournal attaches a journal to the scene and seeds it with the current
// state, so the first user mutation becomes undoable immediately.
func NewJournal(s *scene.Scene) *Journal {
	j := &Journal{scene: s}
	j.record()
	j.unsubscribe = s.Subscribe(func(ev scene.Event) {
		switch ev.Type {
		case scene.EventObjectAdded, scene.EventObjectRemoved,
			scene.EventObjectModified, scene.EventSceneLoaded,
			scene.EventSceneCleared:
			j.record()
		}
	})
	return j
}

// Close detaches the journal from the scene.
func (j *Journal) Close() {
	if j.unsubscribe != nil {
		j.unsubscribe()
		j.unsubscribe = nil
	}
}

// record snapshots the scene onto the undo stack. Nothing is pushed while a
// snapshot reload is in flight, or when the state is identical to the top of
// the stack (transient-only changes encode identically). Any genuinely new
// state discards the redo history.
func (j *Journal) record() {
	if j.reloading || j.suspended {
		return
	}
	data, err := j.scene.TakeSnapshot().Encode()
	if err != nil {
		return
	}
	if n := len(j.undoStack); n > 0 && bytes.Equal(j.undoStack[n-1], data) {
		return
	}
	j.undoStack = append(j.undoStack, data)
	j.redoStack = nil
}

// Suspend stops recording until Resume. Multi-frame gestures suspend around
// their interim states so the whole gesture journals as one entry.
func (j *Journal) Suspend() {
	j.suspended = true
}

// Resume re-enables recording. The next structural event journals normally.
func (j *Journal) Resume() {
	j.suspended = false
}

// CanUndo reports whether an undo would change anything.
func (j *Journal) CanUndo() bool {
	return len(j.undoStack) > 1
}

// CanRedo reports whether a redo would change anything.
func (j *Journal) CanRedo() bool {
	return len(j.redoStack) > 0
}

// Undo reloads the previous snapshot. With no prior state it is a silent
// no-op. The undone state moves to the front of the redo stack.
func (j *Journal) Undo() error {
	n := len(j.undoStack)
	if n <= 1 {
		return nil
	}
	if err := j.reload(j.undoStack[n-2]); err != nil {
		return err
	}
	top := j.undoStack[n-1]
	j.undoStack = j.undoStack[:n-1]
	j.redoStack = append([][]byte{top}, j.redoStack...)
	return nil
}

// Redo reloads the most recently undone snapshot. With nothing undone it is
// a silent no-op.
func (j *Journal) Redo() error {
	if len(j.redoStack) == 0 {
		return nil
	}
	next := j.redoStack[0]
	if err := j.reload(next); err != nil {
		return err
	}
	j.undoStack = append(j.undoStack, next)
	j.redoStack = j.redoStack[1:]
	return nil
}

func (j *Journal) reload(data []byte) error {
	snap, err := scene.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("reload journal snapshot: %w", err)
	}
	j.reloading = true
	defer func() { j.reloading = false }()
	if err := j.scene.LoadSnapshot(snap); err != nil {
		return fmt.Errorf("reload journal snapshot: %w", err)
	}
	// Handle visibility is not serialized; restored seats get their
	// corner-only profile back here.
	for _, o := range j.scene.Objects() {
		o.ApplySeatHandles()
	}
	return nil
}

// Depth returns the undo stack size.
func (j *Journal) Depth() int {
	return len(j.undoStack)
}

// RedoDepth returns the redo stack size.
func (j *Journal) RedoDepth() int {
	return len(j.redoStack)
}
