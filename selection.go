package pixed

import "math"

// selectionState is the gesture state of the selection engine. Exactly one
// gesture is active at a time.
type selectionState int

const (
	selIdle selectionState = iota
	selSelecting
	selDragging
	selScaling
)

// handleTolerancePx is the corner-handle hit radius in screen pixels; it is
// converted to sprite space by the current zoom before hit testing.
const handleTolerancePx = 8.0

// SelectionEngine captures a rectangular region of the active layer and
// supports three gestures: drag-defining the rectangle, moving its pixel
// content, and corner-handle scaling with optional rigid (integer-ratio)
// constraints. Moves and scales preview live during the drag and commit on
// release as one batched operation.
type SelectionEngine struct {
	sprite *Sprite
	state  selectionState

	sel    Rect
	hasSel bool

	rigid bool
	zoom  float64 // screen pixels per sprite pixel, for handle hit tests

	lastX, lastY int

	// selecting
	anchorX, anchorY int

	// dragging
	grab     *Clipboard
	offX     int
	offY     int
	dragDest Rect

	// scaling
	orig        Rect
	origContent *Clipboard
	scaleAX     int // anchor corner (opposite the dragged handle)
	scaleAY     int
	scaleDirX   int // +1 when the dragged corner lies right of the anchor
	scaleDirY   int

	// base is the active layer's pixel state after the source region was
	// cleared; every preview tick restores it before pasting the candidate.
	base *Pixmap

	mutated bool
}

// NewSelectionEngine creates an idle engine bound to a sprite.
func NewSelectionEngine(sp *Sprite) *SelectionEngine {
	return &SelectionEngine{sprite: sp, zoom: 1}
}

// SetZoom sets the screen-pixels-per-sprite-pixel factor used to convert
// the fixed handle hit tolerance into sprite space. Values <= 0 reset to 1.
func (e *SelectionEngine) SetZoom(z float64) {
	if z <= 0 {
		z = 1
	}
	e.zoom = z
}

// SetRigid toggles integer-ratio scaling.
func (e *SelectionEngine) SetRigid(r bool) { e.rigid = r }

// Rigid reports whether integer-ratio scaling is enabled.
func (e *SelectionEngine) Rigid() bool { return e.rigid }

// Selection returns the current selection rectangle, if any.
func (e *SelectionEngine) Selection() (Rect, bool) { return e.sel, e.hasSel }

// ClearSelection drops the selection. Called when the selection tool
// deactivates or the user explicitly deselects. Any in-progress gesture is
// force-closed first.
func (e *SelectionEngine) ClearSelection() {
	e.PointerLeave()
	e.hasSel = false
}

func (e *SelectionEngine) stack() *LayerStack { return e.sprite.Layers() }

// PointerDown starts a gesture: scaling when a corner handle of the
// existing selection is hit, dragging when the point falls inside the
// selection, selecting otherwise. Returns true when the gesture will
// mutate pixels (drag or scale on an unlocked layer).
func (e *SelectionEngine) PointerDown(x, y int) bool {
	if e.state != selIdle {
		e.PointerUp(e.lastX, e.lastY)
	}
	e.lastX, e.lastY = x, y
	e.mutated = false

	if e.hasSel {
		if hx, hy, ok := e.hitHandle(x, y); ok {
			return e.beginScale(hx, hy)
		}
		if e.sel.Contains(x, y) {
			return e.beginDrag(x, y)
		}
	}

	e.state = selSelecting
	e.anchorX, e.anchorY = x, y
	e.sel = RectAt(x, y)
	e.hasSel = true
	return false
}

// PointerDrag advances the active gesture to (x, y).
func (e *SelectionEngine) PointerDrag(x, y int) {
	e.lastX, e.lastY = x, y
	switch e.state {
	case selSelecting:
		e.sel = Rect{Left: e.anchorX, Top: e.anchorY, Right: x, Bottom: y}
	case selDragging:
		e.previewDrag(x, y)
	case selScaling:
		e.previewScale(x, y)
	case selIdle:
	}
}

// PointerUp finalizes the active gesture at (x, y). For drags and scales
// this pastes the final block and closes the batch; the return value
// reports whether pixels changed, so the caller knows to commit history.
func (e *SelectionEngine) PointerUp(x, y int) bool {
	switch e.state {
	case selSelecting:
		e.sel = Rect{Left: e.anchorX, Top: e.anchorY, Right: x, Bottom: y}.
			Normalized().Clip(e.sprite.Width(), e.sprite.Height())
		e.hasSel = !e.sel.Empty()
		e.state = selIdle
		return false
	case selDragging:
		e.previewDrag(x, y)
		e.sel = e.dragDest
		e.hasSel = true
		e.finishGesture()
		return e.mutated
	case selScaling:
		e.previewScale(x, y)
		e.finishGesture()
		return e.mutated
	case selIdle:
	}
	return false
}

// PointerLeave force-closes any in-progress gesture exactly as PointerUp at
// the last seen coordinate would, so the engine cannot get stuck when the
// pointer exits the canvas mid-gesture. Returns whether pixels changed.
func (e *SelectionEngine) PointerLeave() bool {
	if e.state == selIdle {
		return false
	}
	return e.PointerUp(e.lastX, e.lastY)
}

func (e *SelectionEngine) finishGesture() {
	e.state = selIdle
	e.grab = nil
	e.origContent = nil
	e.base = nil
	e.stack().EndBatch()
}

// hitHandle tests the four selection corners within the zoom-converted
// tolerance. Returns the hit corner's coordinates.
func (e *SelectionEngine) hitHandle(x, y int) (cx, cy int, ok bool) {
	tol := handleTolerancePx / e.zoom
	corners := [4][2]int{
		{e.sel.Left, e.sel.Top},
		{e.sel.Right, e.sel.Top},
		{e.sel.Left, e.sel.Bottom},
		{e.sel.Right, e.sel.Bottom},
	}
	for _, c := range corners {
		if math.Abs(float64(x-c[0])) <= tol && math.Abs(float64(y-c[1])) <= tol {
			return c[0], c[1], true
		}
	}
	return 0, 0, false
}

// beginDrag captures the selection's pixels and clears the source region
// immediately so the live preview does not render the block twice.
func (e *SelectionEngine) beginDrag(x, y int) bool {
	st := e.stack()
	if st.ActiveLayer().Locked() {
		return false
	}
	e.state = selDragging
	e.grab = CopyRegion(st, e.sel)
	e.offX = x - e.sel.Left
	e.offY = y - e.sel.Top
	st.StartBatch()
	deleteRegionPixels(st, e.sel)
	e.base = st.ActiveLayer().Pixmap().Clone()
	e.dragDest = e.sel
	e.mutated = true
	e.previewDrag(x, y)
	return true
}

// previewDrag restores the post-clear base and pastes the captured block at
// the current offset. Fully transparent captured cells never overwrite the
// destination.
func (e *SelectionEngine) previewDrag(x, y int) {
	st := e.stack()
	destX := x - e.offX
	destY := y - e.offY
	pm := st.ActiveLayer().Pixmap()
	copy(pm.Data(), e.base.Data())
	pm.SetRegion(destX, destY, e.grab.Pixmap(), true)
	e.dragDest = Rect{
		Left:   destX,
		Top:    destY,
		Right:  destX + e.grab.Width() - 1,
		Bottom: destY + e.grab.Height() - 1,
	}
	st.markChanged()
}

// beginScale captures the original rectangle and content for the corner at
// (hx, hy) and clears the source region, same rationale as dragging.
func (e *SelectionEngine) beginScale(hx, hy int) bool {
	st := e.stack()
	if st.ActiveLayer().Locked() {
		return false
	}
	e.state = selScaling
	e.orig = e.sel
	e.origContent = CopyRegion(st, e.sel)

	// Anchor at the corner opposite the dragged handle.
	if hx == e.sel.Left {
		e.scaleAX = e.sel.Right
		e.scaleDirX = -1
	} else {
		e.scaleAX = e.sel.Left
		e.scaleDirX = 1
	}
	if hy == e.sel.Top {
		e.scaleAY = e.sel.Bottom
		e.scaleDirY = -1
	} else {
		e.scaleAY = e.sel.Top
		e.scaleDirY = 1
	}

	st.StartBatch()
	deleteRegionPixels(st, e.sel)
	e.base = st.ActiveLayer().Pixmap().Clone()
	e.mutated = true
	return true
}

// previewScale recomputes the candidate rectangle for the dragged corner,
// applies the rigid snap when enabled, resamples the captured content to
// the candidate size and draws it live. The preview runs the same resample
// and paste as the final commit, so rigid constraints are visible during
// the gesture.
func (e *SelectionEngine) previewScale(x, y int) {
	// The dragged edge cannot cross the anchored edge; clamp to a
	// 1-pixel minimum.
	if e.scaleDirX > 0 && x < e.scaleAX {
		x = e.scaleAX
	}
	if e.scaleDirX < 0 && x > e.scaleAX {
		x = e.scaleAX
	}
	if e.scaleDirY > 0 && y < e.scaleAY {
		y = e.scaleAY
	}
	if e.scaleDirY < 0 && y > e.scaleAY {
		y = e.scaleAY
	}

	cand := Rect{Left: e.scaleAX, Top: e.scaleAY, Right: x, Bottom: y}.Normalized()

	if e.rigid {
		k := rigidFactor(cand.Width(), cand.Height(), e.orig.Width(), e.orig.Height())
		newW := k * e.orig.Width()
		newH := k * e.orig.Height()
		if e.scaleDirX > 0 {
			cand.Left = e.scaleAX
			cand.Right = e.scaleAX + newW - 1
		} else {
			cand.Right = e.scaleAX
			cand.Left = e.scaleAX - newW + 1
		}
		if e.scaleDirY > 0 {
			cand.Top = e.scaleAY
			cand.Bottom = e.scaleAY + newH - 1
		} else {
			cand.Bottom = e.scaleAY
			cand.Top = e.scaleAY - newH + 1
		}
	}

	st := e.stack()
	pm := st.ActiveLayer().Pixmap()
	copy(pm.Data(), e.base.Data())
	scaled := e.origContent.Resampled(cand.Width(), cand.Height())
	pm.SetRegion(cand.Left, cand.Top, scaled.Pixmap(), true)
	e.sel = cand
	st.markChanged()
}

// rigidFactor returns the integer scale multiple for rigid scaling: the
// larger of the two per-axis rounded factors, never below 1.
func rigidFactor(newW, newH, origW, origH int) int {
	kx := int(math.Round(float64(newW) / float64(origW)))
	ky := int(math.Round(float64(newH) / float64(origH)))
	k := kx
	if ky > k {
		k = ky
	}
	if k < 1 {
		k = 1
	}
	return k
}
