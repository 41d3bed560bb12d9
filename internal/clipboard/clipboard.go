package clipboard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"seatlab/internal/scene"
)

var (
	ErrEmptyClipboard   = errors.New("clipboard is empty")
	ErrNothingSelected  = errors.New("nothing selected")
	ErrClipboardCollide = errors.New("pasted object id collides with live object")
)

// PasteOffset is how far each paste lands from the previous one, on both
// axes.
const PasteOffset = 20.0

// Clipboard holds cloned copies of the last copied selection. The stored
// clones are never mutated after publication; every paste clones them again
// with fresh ids, so repeated pastes never collide. A cumulative offset
// tracks how far the next paste should land.
type Clipboard struct {
	scene *scene.Scene

	contents []*scene.Object
	offset   float64
}

// New creates an empty clipboard bound to a scene.
func New(s *scene.Scene) *Clipboard {
	return &Clipboard{scene: s}
}

// Len returns how many objects the clipboard holds.
func (cb *Clipboard) Len() int {
	return len(cb.contents)
}

// Copy clones the selection concurrently and publishes the clone set as the
// new clipboard contents, replacing any previous contents. Publication only
// happens after every clone has completed.
func (cb *Clipboard) Copy(ctx context.Context, selection []*scene.Object) error {
	if len(selection) == 0 {
		return ErrNothingSelected
	}

	clones := make([]*scene.Object, len(selection))
	g, _ := errgroup.WithContext(ctx)
	for i, obj := range selection {
		i, obj := i, obj
		g.Go(func() error {
			clone := obj.Clone()
			clone.ID = scene.NewID()
			clones[i] = clone
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	cb.contents = clones
	cb.offset = 0
	return nil
}

// Cut copies the selection, then removes the originals from the scene.
func (cb *Clipboard) Cut(ctx context.Context, selection []*scene.Object) error {
	if err := cb.Copy(ctx, selection); err != nil {
		return err
	}
	for _, obj := range selection {
		cb.scene.Remove(obj.ID)
	}
	return nil
}

// Paste clones the clipboard contents with fresh ids, places them offset by
// (PasteOffset, PasteOffset) from the previous paste (or from the stored
// position on the first paste), adds them to the scene and returns them so
// the caller can select the group. The stored clipboard clones stay as they
// are.
func (cb *Clipboard) Paste(ctx context.Context) ([]*scene.Object, error) {
	if len(cb.contents) == 0 {
		return nil, ErrEmptyClipboard
	}

	cb.offset += PasteOffset

	pasted := make([]*scene.Object, len(cb.contents))
	g, _ := errgroup.WithContext(ctx)
	for i, stored := range cb.contents {
		i, stored := i, stored
		g.Go(func() error {
			clone := stored.Clone()
			clone.ID = scene.NewID()
			clone.Left = stored.Left + cb.offset
			clone.Top = stored.Top + cb.offset
			clone.Selectable = true
			clone.Evented = true
			clone.ApplySeatHandles()
			pasted[i] = clone
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		cb.offset -= PasteOffset
		return nil, err
	}

	for _, obj := range pasted {
		if err := cb.scene.Add(obj); err != nil {
			return nil, ErrClipboardCollide
		}
	}
	return pasted, nil
}
