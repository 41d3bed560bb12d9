package editor

import (
	"context"
	"errors"
	"fmt"

	"seatlab/internal/clipboard"
	"seatlab/internal/history"
	"seatlab/internal/layout"
	"seatlab/internal/scene"
	"seatlab/internal/snap"
	"seatlab/internal/tools"
	"seatlab/internal/viewer"
	"seatlab/pkg/logger"
)

var (
	ErrInvalidFile         = errors.New("invalid file")
	ErrUnknownSeat         = errors.New("unknown seat")
	ErrSeatImmutable       = errors.New("seat is sold or held and cannot be edited")
	ErrDuplicateSeatNumber = errors.New("seat number already used in this row")
)

// Editor is the editing engine's state object. It owns the scene, the side
// tables and every engine operating on them, and is passed by reference to
// whatever hosts it; there are no package-level globals. Hosts observe
// changes through Subscribe or the OnChange callback.
type Editor struct {
	Scene     *scene.Scene
	Rows      *layout.RowTable
	Tools     *tools.Machine
	Journal   *history.Journal
	Clipboard *clipboard.Clipboard
	Snap      *snap.Engine

	categories []layout.Category

	selection     []string
	lastPointer   *scene.Point
	editingTextID string
	dragging      bool

	// OnSave receives the encoded document when the operator saves.
	OnSave func(layout.Document)
	// OnChange receives the current document after every structural
	// mutation.
	OnChange func(layout.Document)

	subscribers  map[int]func()
	nextSub      int
	suppressNoti bool

	log *logger.Logger
}

// New assembles an editor around an empty scene.
func New(log *logger.Logger) *Editor {
	if log == nil {
		log = logger.GetDefault()
	}
	s := scene.New()
	rows := layout.NewRowTable()

	e := &Editor{
		Scene:       s,
		Rows:        rows,
		Tools:       tools.NewMachine(s, rows),
		Journal:     history.NewJournal(s),
		Clipboard:   clipboard.New(s),
		Snap:        snap.New(s),
		subscribers: make(map[int]func()),
		log:         log,
	}
	e.Tools.OnTextCreated = func(o *scene.Object) {
		// New text objects go straight into in-place editing with the
		// whole contents selected.
		e.editingTextID = o.ID
	}
	s.Subscribe(func(ev scene.Event) {
		switch ev.Type {
		case scene.EventObjectAdded, scene.EventObjectRemoved,
			scene.EventObjectModified, scene.EventSceneLoaded,
			scene.EventSceneCleared:
			e.notifyChange()
		}
	})
	return e
}

// Subscribe registers a host callback invoked after every structural change.
func (e *Editor) Subscribe(fn func()) func() {
	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	return func() { delete(e.subscribers, id) }
}

func (e *Editor) notifyChange() {
	if e.suppressNoti {
		return
	}
	for _, fn := range e.subscribers {
		fn()
	}
	if e.OnChange != nil {
		e.OnChange(e.Document())
	}
}

//  DOCUMENT

// Categories returns the document's category table.
func (e *Editor) Categories() []layout.Category {
	out := make([]layout.Category, len(e.categories))
	copy(out, e.categories)
	return out
}

// SetCategories replaces the category table and restyles every seat.
func (e *Editor) SetCategories(categories []layout.Category) {
	e.categories = append(e.categories[:0:0], categories...)
	viewer.RestyleSeats(e.Scene, layout.CategoryIndex(e.categories))
}

// Document assembles the current layout document.
func (e *Editor) Document() layout.Document {
	return layout.BuildDocument(e.Scene, e.Rows.Rows(), e.Categories())
}

// ExportJSON serializes the document for download, with its default
// filename.
func (e *Editor) ExportJSON() ([]byte, string, error) {
	data, err := layout.EncodeDocument(e.Document())
	if err != nil {
		return nil, "", err
	}
	return data, "seats.json", nil
}

// ImportJSON parses and loads a layout file. A parse failure is reported as
// an invalid-file error and leaves the editor exactly as it was; the scene
// and side tables are only replaced once the document is known good.
func (e *Editor) ImportJSON(data []byte) error {
	doc, err := layout.DecodeDocument(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return e.LoadDocument(doc)
}

// LoadDocument replaces the live scene and side tables with the document's
// contents. The canvas is validated first: a document with duplicate or
// missing object ids is rejected whole, leaving rows, categories and scene
// untouched.
func (e *Editor) LoadDocument(doc layout.Document) error {
	if err := doc.Canvas.Validate(); err != nil {
		e.log.Warn("layout document rejected by scene", "error", err)
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	e.Rows.Replace(doc.Rows)
	e.categories = append(e.categories[:0:0], doc.Categories...)
	e.selection = nil
	e.editingTextID = ""

	if err := e.Scene.LoadSnapshot(doc.Canvas); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	viewer.RestyleSeats(e.Scene, layout.CategoryIndex(e.categories))
	return nil
}

// Save hands the current document to the host.
func (e *Editor) Save() {
	if e.OnSave != nil {
		e.OnSave(e.Document())
	}
}

//  SELECTION & POINTER

// Selection returns the currently selected objects, in selection order.
func (e *Editor) Selection() []*scene.Object {
	var out []*scene.Object
	for _, id := range e.selection {
		if o := e.Scene.Get(id); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// SelectObjects replaces the selection.
func (e *Editor) SelectObjects(ids ...string) {
	e.selection = append(e.selection[:0:0], ids...)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.selection = nil
}

// SetTool switches the active tool.
func (e *Editor) SetTool(t tools.Tool) error {
	return e.Tools.SetTool(t)
}

// PointerDown dispatches a pointer-down at p. hitID identifies the object
// under the pointer, if any; in select mode it becomes the selection. The
// location is remembered as the paste origin.
func (e *Editor) PointerDown(p scene.Point, hitID string) *scene.Object {
	e.lastPointer = &p
	if e.Tools.Active() == tools.ToolSelect {
		if hitID != "" {
			e.SelectObjects(hitID)
		} else {
			e.ClearSelection()
		}
		return nil
	}
	return e.Tools.PointerDown(p)
}

// PointerMove advances the active tool's drag.
func (e *Editor) PointerMove(p scene.Point) {
	e.Tools.PointerMove(p)
}

// PointerUp completes the active tool's drag.
func (e *Editor) PointerUp(p scene.Point) []*scene.Object {
	return e.Tools.PointerUp(p)
}

// DoubleClick finalizes the polygon tool.
func (e *Editor) DoubleClick(p scene.Point) *scene.Object {
	return e.Tools.DoubleClick(p)
}

// DragMove moves a selected object to a new position mid-drag, letting the
// snap engine adjust it against its siblings. The journal is suspended for
// the duration of the drag, so guide churn at interim positions never
// accrues undo entries.
func (e *Editor) DragMove(id string, to scene.Point) {
	o := e.Scene.Get(id)
	if o == nil || o.LockMovementX && o.LockMovementY {
		return
	}
	if !e.dragging {
		e.dragging = true
		e.Journal.Suspend()
	}
	if !o.LockMovementX {
		o.Left = to.X
	}
	if !o.LockMovementY {
		o.Top = to.Y
	}
	e.Snap.ObjectMoving(o)
}

// DragEnd finalizes a drag: guides are cleared, the journal resumes and the
// move is journaled as a single entry.
func (e *Editor) DragEnd(id string) {
	e.Snap.ClearGuides()
	if e.dragging {
		e.dragging = false
		e.Journal.Resume()
	}
	e.Scene.NotifyModified(id)
}

//  CLIPBOARD

// Copy clones the selection into the clipboard. Empty selection is a silent
// no-op.
func (e *Editor) Copy(ctx context.Context) error {
	sel := e.Selection()
	if len(sel) == 0 {
		return nil
	}
	return e.Clipboard.Copy(ctx, sel)
}

// Cut copies the selection, removes the originals and clears the selection.
func (e *Editor) Cut(ctx context.Context) error {
	sel := e.Selection()
	if len(sel) == 0 {
		return nil
	}
	if err := e.Clipboard.Cut(ctx, sel); err != nil {
		return err
	}
	e.ClearSelection()
	return nil
}

// Paste places fresh clones of the clipboard and selects them as a group.
// Without clipboard contents or a known pointer origin it is a silent no-op.
func (e *Editor) Paste(ctx context.Context) error {
	if e.Clipboard.Len() == 0 || e.lastPointer == nil {
		return nil
	}
	pasted, err := e.Clipboard.Paste(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(pasted))
	for i, o := range pasted {
		ids[i] = o.ID
	}
	e.SelectObjects(ids...)
	return nil
}

// DeleteSelection removes every selected object.
func (e *Editor) DeleteSelection() {
	for _, o := range e.Selection() {
		e.Scene.Remove(o.ID)
	}
	e.ClearSelection()
}

//  HISTORY

// Undo steps back one journaled state; no-op without history.
func (e *Editor) Undo() error {
	return e.Journal.Undo()
}

// Redo reapplies the most recently undone state; no-op with nothing undone.
func (e *Editor) Redo() error {
	return e.Journal.Redo()
}

//  SEAT EDITS

// SetSeatNumber validates and applies a seat number. Numbers must be unique
// within the seat's row only; sold and held seats reject edits.
func (e *Editor) SetSeatNumber(id, number string) error {
	seat := e.Scene.Get(id)
	if seat == nil || !seat.IsSeat() {
		return ErrUnknownSeat
	}
	if seat.LockedForEdit() {
		return ErrSeatImmutable
	}
	for _, sibling := range e.Scene.SeatsByRow()[seat.RowID] {
		if sibling.ID != seat.ID && sibling.SeatNumber == number {
			return fmt.Errorf("%w: %s", ErrDuplicateSeatNumber, number)
		}
	}
	seat.SeatNumber = number
	e.Scene.NotifyModified(id)
	return nil
}

// SetSeatCategory assigns a category id to a seat and restyles it. The
// reference is weak; an id with no matching category renders the seat
// unconfigured.
func (e *Editor) SetSeatCategory(id, categoryID string) error {
	seat := e.Scene.Get(id)
	if seat == nil || !seat.IsSeat() {
		return ErrUnknownSeat
	}
	if seat.LockedForEdit() {
		return ErrSeatImmutable
	}
	seat.Category = categoryID
	viewer.ApplyAppearance(seat, layout.CategoryIndex(e.categories))
	e.Scene.NotifyModified(id)
	return nil
}

//  TEXT EDITING

// EditingTextID returns the id of the text object currently in in-place
// editing, if any.
func (e *Editor) EditingTextID() string {
	return e.editingTextID
}

// CommitText applies edited text content and leaves editing mode.
func (e *Editor) CommitText(id, text string) {
	o := e.Scene.Get(id)
	if o == nil || o.Kind != scene.KindText {
		return
	}
	o.Text = text
	if e.editingTextID == id {
		e.editingTextID = ""
	}
	e.Scene.NotifyModified(id)
}

// SetSmartSnap toggles the alignment engine.
func (e *Editor) SetSmartSnap(enabled bool) {
	e.Snap.Enabled = enabled
	if !enabled {
		e.Snap.ClearGuides()
	}
}
