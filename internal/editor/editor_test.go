package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
	"seatlab/internal/tools"
)

func newEditor(t *testing.T) *Editor {
	t.Helper()
	e := New(nil)
	t.Cleanup(e.Journal.Close)
	return e
}

func placeSeat(t *testing.T, e *Editor, x, y float64) *scene.Object {
	t.Helper()
	require.NoError(t, e.SetTool(tools.ToolAddSeat))
	seat := e.PointerDown(scene.Point{X: x, Y: y}, "")
	require.NotNil(t, seat)
	return seat
}

func TestExportImportRoundTrip(t *testing.T) {
	e := newEditor(t)
	e.SetCategories([]layout.Category{{ID: "vip", Name: "VIP", Color: "#aa00ff", Price: 150}})
	seat := placeSeat(t, e, 100, 100)
	require.NoError(t, e.SetSeatCategory(seat.ID, "vip"))

	data, filename, err := e.ExportJSON()
	require.NoError(t, err)
	assert.Equal(t, "seats.json", filename)

	other := newEditor(t)
	require.NoError(t, other.ImportJSON(data))

	assert.Equal(t, 1, other.Scene.Len())
	restored := other.Scene.Get(seat.ID)
	require.NotNil(t, restored)
	assert.Equal(t, "vip", restored.Category)
	assert.Equal(t, "#aa00ff", restored.Fill, "imported seats are restyled from their category")
	assert.Equal(t, e.Rows.Len(), other.Rows.Len())
}

func TestImportInvalidFileLeavesSceneUntouched(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 50, 50)

	err := e.ImportJSON([]byte(`{"what": "ever"`))
	assert.ErrorIs(t, err, ErrInvalidFile)

	assert.Equal(t, 1, e.Scene.Len(), "a failed import must not clear the scene")
	assert.NotNil(t, e.Scene.Get(seat.ID))
}

func TestImportRejectsDuplicateCanvasIDs(t *testing.T) {
	e := newEditor(t)
	e.SetCategories([]layout.Category{{ID: "vip", Name: "VIP", Color: "#aa00ff", Price: 150}})
	seat := placeSeat(t, e, 50, 50)
	rowsBefore := e.Rows.Rows()

	// Well-formed envelope, broken canvas: two objects share an id.
	doc := []byte(`{
		"type": "canvas",
		"rows": [{"id": "r1", "name": "ZZ"}],
		"categories": [{"id": "c1", "name": "C", "color": "#fff", "price": 1}],
		"canvas": {"objects": [
			{"id": "dup", "kind": "seat"},
			{"id": "dup", "kind": "seat"}
		]}
	}`)

	err := e.ImportJSON(doc)
	assert.ErrorIs(t, err, ErrInvalidFile)

	assert.NotNil(t, e.Scene.Get(seat.ID), "rejected import must not touch the scene")
	assert.Equal(t, rowsBefore, e.Rows.Rows(), "rejected import must not touch the row table")
	require.Len(t, e.Categories(), 1)
	assert.Equal(t, "vip", e.Categories()[0].ID, "rejected import must not touch the categories")
}

func TestLoadDocumentAllOrNothing(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 50, 50)

	err := e.LoadDocument(layout.Document{
		Type: layout.DocumentType,
		Rows: []layout.Row{{ID: "r1", Name: "ZZ"}},
		Canvas: scene.Snapshot{Objects: []scene.ObjectState{
			{Kind: scene.KindSeat}, // no id
		}},
	})
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.NotNil(t, e.Scene.Get(seat.ID))
	_, leaked := e.Rows.Get("r1")
	assert.False(t, leaked, "the rejected document's rows must not leak into the table")
}

func TestSelectToolPointerDown(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 50, 50) // seat tool returns to select after placing

	e.PointerDown(scene.Point{X: 50, Y: 50}, seat.ID)
	require.Len(t, e.Selection(), 1)
	assert.Equal(t, seat.ID, e.Selection()[0].ID)

	e.PointerDown(scene.Point{X: 500, Y: 500}, "")
	assert.Empty(t, e.Selection(), "clicking empty canvas clears the selection")
}

func TestCopyPasteSelectsPastedGroup(t *testing.T) {
	ctx := context.Background()
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)

	e.PointerDown(scene.Point{X: 100, Y: 100}, seat.ID)
	require.NoError(t, e.Copy(ctx))
	require.NoError(t, e.Paste(ctx))

	sel := e.Selection()
	require.Len(t, sel, 1)
	assert.NotEqual(t, seat.ID, sel[0].ID)
	assert.Equal(t, 2, len(e.Scene.Seats()))
}

func TestPasteWithoutPointerIsNoOp(t *testing.T) {
	ctx := context.Background()
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	e.SelectObjects(seat.ID)
	require.NoError(t, e.Copy(ctx))

	e.lastPointer = nil
	require.NoError(t, e.Paste(ctx))
	assert.Equal(t, 1, len(e.Scene.Seats()))
}

func TestCopyEmptySelectionIsNoOp(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.Copy(context.Background()))
	assert.Equal(t, 0, e.Clipboard.Len())
}

func TestCutClearsSelection(t *testing.T) {
	ctx := context.Background()
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	e.SelectObjects(seat.ID)

	require.NoError(t, e.Cut(ctx))
	assert.Nil(t, e.Scene.Get(seat.ID))
	assert.Empty(t, e.Selection())
}

func TestDeleteThenUndoRestores(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)

	e.SelectObjects(seat.ID)
	e.DeleteSelection()
	assert.Equal(t, 0, e.Scene.Len())

	require.NoError(t, e.Undo())
	assert.NotNil(t, e.Scene.Get(seat.ID))
}

func TestSeatNumberValidation(t *testing.T) {
	e := newEditor(t)
	a := placeSeat(t, e, 100, 100)
	b := placeSeat(t, e, 140, 100)
	require.Equal(t, a.RowID, b.RowID)

	assert.ErrorIs(t, e.SetSeatNumber("no-such-id", "9"), ErrUnknownSeat)
	assert.ErrorIs(t, e.SetSeatNumber(b.ID, a.SeatNumber), ErrDuplicateSeatNumber)
	require.NoError(t, e.SetSeatNumber(b.ID, "17"))
	assert.Equal(t, "17", b.SeatNumber)

	// Same number in a different row is fine.
	other := placeSeat(t, e, 100, 200)
	other.RowID = "another-row"
	require.NoError(t, e.SetSeatNumber(other.ID, "17"))
}

func TestSoldSeatRejectsEdits(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	seat.Status = scene.StatusSold

	assert.ErrorIs(t, e.SetSeatNumber(seat.ID, "2"), ErrSeatImmutable)
	assert.ErrorIs(t, e.SetSeatCategory(seat.ID, "vip"), ErrSeatImmutable)
}

func TestSetSeatCategoryWeakReference(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)

	require.NoError(t, e.SetSeatCategory(seat.ID, "not-defined-yet"))
	assert.Equal(t, "not-defined-yet", seat.Category)
	assert.Equal(t, scene.UnconfiguredSeatFill, seat.Fill)
}

func TestDragMoveRespectsLocks(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	seat.LockMovementX = true
	left := seat.Left

	e.DragMove(seat.ID, scene.Point{X: 300, Y: 300})
	assert.Equal(t, left, seat.Left, "x stays put")
	assert.Equal(t, 300.0, seat.Top)
}

func TestDragEndClearsGuidesAndJournals(t *testing.T) {
	e := newEditor(t)
	a := placeSeat(t, e, 100, 100)
	b := placeSeat(t, e, 300, 300)
	depth := e.Journal.Depth()

	e.DragMove(b.ID, scene.Point{X: a.Left + 5, Y: 300})
	e.DragEnd(b.ID)

	assert.Empty(t, e.Snap.Guides())
	assert.Equal(t, a.Left, b.Left, "snap pulls the dragged seat onto the sibling edge")
	assert.Equal(t, depth+1, e.Journal.Depth(), "drag end journals exactly once")
}

func TestMultiFrameDragJournalsOnce(t *testing.T) {
	e := newEditor(t)
	a := placeSeat(t, e, 100, 100)
	b := placeSeat(t, e, 300, 300)
	origLeft := b.Left
	depth := e.Journal.Depth()

	// Several frames moving in and out of snap range: guide churn at
	// interim positions must not accrue undo entries.
	e.DragMove(b.ID, scene.Point{X: a.Left + 5, Y: 300})
	e.DragMove(b.ID, scene.Point{X: 250, Y: 280})
	e.DragMove(b.ID, scene.Point{X: a.Left + 3, Y: 260})
	e.DragEnd(b.ID)

	assert.Equal(t, depth+1, e.Journal.Depth(), "the whole drag is one undo entry")

	require.NoError(t, e.Undo())
	restored := e.Scene.Get(b.ID)
	require.NotNil(t, restored)
	assert.Equal(t, origLeft, restored.Left, "a single undo rewinds the whole drag")
}

func TestTextToolEntersEditing(t *testing.T) {
	e := newEditor(t)
	require.NoError(t, e.SetTool(tools.ToolAddText))

	text := e.PointerDown(scene.Point{X: 10, Y: 10}, "")
	require.NotNil(t, text)
	assert.Equal(t, text.ID, e.EditingTextID())

	e.CommitText(text.ID, "Stage")
	assert.Equal(t, "Stage", text.Text)
	assert.Empty(t, e.EditingTextID())
}

func TestHandleKeyShortcuts(t *testing.T) {
	ctx := context.Background()
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	e.PointerDown(scene.Point{X: 100, Y: 100}, seat.ID)

	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "c", Ctrl: true}))
	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "v", Ctrl: true}))
	assert.Equal(t, 2, len(e.Scene.Seats()))

	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "z", Ctrl: true}))
	assert.Equal(t, 1, len(e.Scene.Seats()))

	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "z", Ctrl: true, Shift: true}))
	assert.Equal(t, 2, len(e.Scene.Seats()))

	saved := false
	e.OnSave = func(layout.Document) { saved = true }
	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "s", Ctrl: true}))
	assert.True(t, saved)

	// Plain "c" without ctrl must not copy anything new.
	before := e.Clipboard.Len()
	require.NoError(t, e.HandleKey(ctx, Keystroke{Key: "c"}))
	assert.Equal(t, before, e.Clipboard.Len())
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	e := newEditor(t)
	seat := placeSeat(t, e, 100, 100)
	e.PointerDown(scene.Point{X: 100, Y: 100}, seat.ID)

	require.NoError(t, e.HandleKey(context.Background(), Keystroke{Key: "Delete"}))
	assert.Equal(t, 0, e.Scene.Len())
}

func TestOnChangeFiresOnMutation(t *testing.T) {
	e := newEditor(t)

	var changes int
	e.OnChange = func(layout.Document) { changes++ }

	placeSeat(t, e, 100, 100)
	assert.Greater(t, changes, 0)
}

func TestSmartSnapToggle(t *testing.T) {
	e := newEditor(t)
	a := placeSeat(t, e, 100, 100)
	b := placeSeat(t, e, 300, 300)

	e.SetSmartSnap(false)
	e.DragMove(b.ID, scene.Point{X: a.Left + 5, Y: 300})
	assert.Equal(t, a.Left+5, b.Left, "disabled snap keeps the raw pointer position")
	assert.Empty(t, e.Snap.Guides())
}
