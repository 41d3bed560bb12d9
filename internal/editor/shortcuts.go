package editor

import (
	"context"
	"strings"
)

// Keystroke is a normalized keyboard event from the host.
type Keystroke struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

// HandleKey dispatches the edit-mode keyboard shortcuts: Ctrl+C/X/V copy,
// cut, paste; Ctrl+Z undo, Ctrl+Shift+Z or Ctrl+Y redo; Ctrl+S save; Delete
// removes the selection. Unbound keys are ignored. Boundary conditions
// (empty clipboard, exhausted history) stay silent no-ops further down.
func (e *Editor) HandleKey(ctx context.Context, k Keystroke) error {
	key := strings.ToLower(k.Key)

	if !k.Ctrl {
		if key == "delete" || key == "backspace" {
			e.DeleteSelection()
		}
		return nil
	}

	switch key {
	case "c":
		return e.Copy(ctx)
	case "x":
		return e.Cut(ctx)
	case "v":
		return e.Paste(ctx)
	case "z":
		if k.Shift {
			return e.Redo()
		}
		return e.Undo()
	case "y":
		return e.Redo()
	case "s":
		e.Save()
	}
	return nil
}
