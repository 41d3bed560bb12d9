package snap

import (
	"math"

	"seatlab/internal/scene"
)

// Threshold is the distance in pixels under which an anchor pair snaps.
const Threshold = 10.0

// defaultGuideLength is used for guide lines when the engine has no canvas
// extent configured.
const defaultGuideLength = 5000.0

// Engine computes alignment guides against sibling objects while a drag is
// in progress, and pulls the dragged object onto a sibling's anchor when the
// two are close enough. It only acts while enabled and only on the moving
// gesture, never on finalized positions.
type Engine struct {
	scene *scene.Scene

	// Enabled is the smart-snap flag; a disabled engine does nothing.
	Enabled bool

	// CanvasWidth/CanvasHeight size the transient guide lines.
	CanvasWidth  float64
	CanvasHeight float64

	guides []*scene.Object
}

// New creates a snapping engine bound to a scene, enabled by default.
func New(s *scene.Scene) *Engine {
	return &Engine{scene: s, Enabled: true}
}

// anchors returns the three horizontal or vertical anchor coordinates of an
// object: edge, center, opposite edge, accounting for scale.
func anchorsX(o *scene.Object) [3]float64 {
	return [3]float64{o.Left, o.CenterX(), o.Left + o.ScaledWidth()}
}

func anchorsY(o *scene.Object) [3]float64 {
	return [3]float64{o.Top, o.CenterY(), o.Top + o.ScaledHeight()}
}

// ObjectMoving is called on every drag frame with the object being dragged.
// Existing guides are cleared before recomputation; at most one snap wins
// per axis (the last matching sibling anchor in draw order).
func (e *Engine) ObjectMoving(target *scene.Object) {
	e.ClearGuides()
	if !e.Enabled || target == nil {
		return
	}

	tx := anchorsX(target)
	ty := anchorsY(target)

	var (
		snapX, snapY   bool
		deltaX, deltaY float64
		guideX, guideY float64
	)

	for _, sib := range e.scene.Objects() {
		if sib.ID == target.ID || sib.Transient || !sib.Selectable {
			continue
		}
		sx := anchorsX(sib)
		sy := anchorsY(sib)
		// Anchors are compared like for like: edge against edge,
		// center against center.
		for i, tv := range tx {
			if math.Abs(tv-sx[i]) < Threshold {
				snapX = true
				deltaX = sx[i] - tv
				guideX = sx[i]
			}
		}
		for i, tv := range ty {
			if math.Abs(tv-sy[i]) < Threshold {
				snapY = true
				deltaY = sy[i] - tv
				guideY = sy[i]
			}
		}
	}

	if snapX {
		target.Left += deltaX
		e.addGuide(true, guideX)
	}
	if snapY {
		target.Top += deltaY
		e.addGuide(false, guideY)
	}
}

// addGuide places a transient full-length guide line at the given
// coordinate; vertical guides mark horizontal snaps and vice versa.
func (e *Engine) addGuide(vertical bool, at float64) {
	g := scene.NewObject(scene.KindGuide)
	g.Transient = true
	g.Selectable = false
	g.Evented = false
	g.Stroke = "#f5427e"
	g.StrokeWidth = 1
	if vertical {
		g.Left = at
		g.Top = 0
		g.Height = e.guideLength(e.CanvasHeight)
	} else {
		g.Left = 0
		g.Top = at
		g.Width = e.guideLength(e.CanvasWidth)
	}
	if err := e.scene.Add(g); err != nil {
		return
	}
	e.guides = append(e.guides, g)
}

func (e *Engine) guideLength(extent float64) float64 {
	if extent > 0 {
		return extent
	}
	return defaultGuideLength
}

// ClearGuides removes every live guide line. Called on each drag frame and
// when the drag completes.
func (e *Engine) ClearGuides() {
	for _, g := range e.guides {
		e.scene.Remove(g.ID)
	}
	e.guides = nil
}

// Guides returns the currently rendered guide lines.
func (e *Engine) Guides() []*scene.Object {
	out := make([]*scene.Object, len(e.guides))
	copy(out, e.guides)
	return out
}
