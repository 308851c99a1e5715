package pixed

// Modifiers carries the keyboard modifier state of a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// Tool is the uniform five-event pointer contract every editing tool
// implements. The UI collaborator forwards pointer events with sprite-space
// integer coordinates; tools mutate the session's sprite directly and ask
// the session to commit history once per finished gesture.
//
// PointerMove is hover only and must not mutate. PointerLeave must
// force-close any in-progress gesture exactly as PointerUp would, so a
// pointer exiting the canvas mid-stroke cannot leave a batch open.
type Tool interface {
	PointerDown(s *Session, x, y int, m Modifiers)
	PointerDrag(s *Session, x, y, lastX, lastY int, m Modifiers)
	PointerUp(s *Session, x, y int, m Modifiers)
	PointerMove(s *Session, x, y int, m Modifiers)
	PointerLeave(s *Session)

	// Deactivate is called when the session switches to another tool.
	Deactivate(s *Session)
}

// BrushTool draws freehand strokes with the plain brush point applier.
type BrushTool struct {
	Params BrushParams
	stroke *Stroke
}

// NewBrushTool creates a brush tool. A Size below 1 becomes 1.
func NewBrushTool(p BrushParams) *BrushTool {
	if p.Size < 1 {
		p.Size = 1
	}
	return &BrushTool{Params: p}
}

// PointerDown starts a stroke and applies the first point.
func (t *BrushTool) PointerDown(s *Session, x, y int, _ Modifiers) {
	t.stroke = NewStroke(s.Sprite().Layers())
	t.stroke.Begin(x, y, brushPoint{params: t.Params})
}

// PointerDrag rasterizes the segment from the previous to the current
// pointer position.
func (t *BrushTool) PointerDrag(_ *Session, x, y, lastX, lastY int, _ Modifiers) {
	if t.stroke != nil {
		t.stroke.Extend(lastX, lastY, x, y)
	}
}

// PointerUp ends the stroke; the whole gesture commits one history entry.
func (t *BrushTool) PointerUp(s *Session, _, _ int, _ Modifiers) {
	t.finish(s)
}

// PointerMove is hover only.
func (t *BrushTool) PointerMove(*Session, int, int, Modifiers) {}

// PointerLeave force-closes an in-progress stroke like PointerUp.
func (t *BrushTool) PointerLeave(s *Session) {
	t.finish(s)
}

// Deactivate force-closes an in-progress stroke.
func (t *BrushTool) Deactivate(s *Session) {
	t.finish(s)
}

func (t *BrushTool) finish(s *Session) {
	if t.stroke == nil {
		return
	}
	wrote := t.stroke.Wrote()
	t.stroke.End()
	t.stroke = nil
	if wrote {
		s.commit()
	}
}

// DitherTool draws strokes through the checkerboard dithering applier.
type DitherTool struct {
	Params DitherParams
	stroke *Stroke
}

// NewDitherTool creates a dithering tool. A Size below 1 becomes 1; an
// Opacity of 0 defaults to 100.
func NewDitherTool(p DitherParams) *DitherTool {
	if p.Size < 1 {
		p.Size = 1
	}
	if p.Opacity == 0 {
		p.Opacity = 100
	}
	return &DitherTool{Params: p}
}

// PointerDown starts a stroke and applies the first point.
func (t *DitherTool) PointerDown(s *Session, x, y int, _ Modifiers) {
	t.stroke = NewStroke(s.Sprite().Layers())
	t.stroke.Begin(x, y, ditherPoint{params: t.Params})
}

// PointerDrag rasterizes the drag segment.
func (t *DitherTool) PointerDrag(_ *Session, x, y, lastX, lastY int, _ Modifiers) {
	if t.stroke != nil {
		t.stroke.Extend(lastX, lastY, x, y)
	}
}

// PointerUp ends the stroke and commits one history entry.
func (t *DitherTool) PointerUp(s *Session, _, _ int, _ Modifiers) {
	t.finish(s)
}

// PointerMove is hover only.
func (t *DitherTool) PointerMove(*Session, int, int, Modifiers) {}

// PointerLeave force-closes an in-progress stroke like PointerUp.
func (t *DitherTool) PointerLeave(s *Session) {
	t.finish(s)
}

// Deactivate force-closes an in-progress stroke.
func (t *DitherTool) Deactivate(s *Session) {
	t.finish(s)
}

func (t *DitherTool) finish(s *Session) {
	if t.stroke == nil {
		return
	}
	wrote := t.stroke.Wrote()
	t.stroke.End()
	t.stroke = nil
	if wrote {
		s.commit()
	}
}

// MirrorTool draws strokes mirrored about the configured canvas axis.
type MirrorTool struct {
	Params MirrorParams
	stroke *Stroke
}

// NewMirrorTool creates a mirrored-draw tool.
func NewMirrorTool(p MirrorParams) *MirrorTool {
	return &MirrorTool{Params: p}
}

// PointerDown starts a stroke and applies the first point plus its mirrors.
func (t *MirrorTool) PointerDown(s *Session, x, y int, _ Modifiers) {
	t.stroke = NewStroke(s.Sprite().Layers())
	t.stroke.Begin(x, y, mirrorPoint{params: t.Params})
}

// PointerDrag rasterizes the drag segment.
func (t *MirrorTool) PointerDrag(_ *Session, x, y, lastX, lastY int, _ Modifiers) {
	if t.stroke != nil {
		t.stroke.Extend(lastX, lastY, x, y)
	}
}

// PointerUp ends the stroke and commits one history entry.
func (t *MirrorTool) PointerUp(s *Session, _, _ int, _ Modifiers) {
	t.finish(s)
}

// PointerMove is hover only.
func (t *MirrorTool) PointerMove(*Session, int, int, Modifiers) {}

// PointerLeave force-closes an in-progress stroke like PointerUp.
func (t *MirrorTool) PointerLeave(s *Session) {
	t.finish(s)
}

// Deactivate force-closes an in-progress stroke.
func (t *MirrorTool) Deactivate(s *Session) {
	t.finish(s)
}

func (t *MirrorTool) finish(s *Session) {
	if t.stroke == nil {
		return
	}
	wrote := t.stroke.Wrote()
	t.stroke.End()
	t.stroke = nil
	if wrote {
		s.commit()
	}
}

// FillParams configures the flood fill tool.
type FillParams struct {
	Color RGBA
	// Tolerance is a 0-100 percentage; see FloodFill.
	Tolerance float64
}

// FillTool flood-fills on click. One fill is one batch and one history
// entry; drags do not re-fill.
type FillTool struct {
	Params FillParams
}

// NewFillTool creates a flood fill tool.
func NewFillTool(p FillParams) *FillTool {
	return &FillTool{Params: p}
}

// PointerDown runs the fill at the clicked pixel and commits on success.
func (t *FillTool) PointerDown(s *Session, x, y int, _ Modifiers) {
	if FloodFill(s.Sprite().Layers(), x, y, t.Params.Color, t.Params.Tolerance) {
		s.commit()
	}
}

// PointerDrag does nothing; fill is click-driven.
func (t *FillTool) PointerDrag(*Session, int, int, int, int, Modifiers) {}

// PointerUp does nothing.
func (t *FillTool) PointerUp(*Session, int, int, Modifiers) {}

// PointerMove is hover only.
func (t *FillTool) PointerMove(*Session, int, int, Modifiers) {}

// PointerLeave does nothing; no gesture spans events.
func (t *FillTool) PointerLeave(*Session) {}

// Deactivate does nothing.
func (t *FillTool) Deactivate(*Session) {}

// SelectionTool routes pointer events into the session's selection engine.
type SelectionTool struct{}

// NewSelectionTool creates a selection tool.
func NewSelectionTool() *SelectionTool {
	return &SelectionTool{}
}

// PointerDown starts a select, drag or scale gesture depending on where the
// pointer lands relative to the existing selection.
func (t *SelectionTool) PointerDown(s *Session, x, y int, _ Modifiers) {
	s.Selection().PointerDown(x, y)
}

// PointerDrag advances the active gesture.
func (t *SelectionTool) PointerDrag(s *Session, x, y, _, _ int, _ Modifiers) {
	s.Selection().PointerDrag(x, y)
}

// PointerUp finalizes the gesture; moves and scales commit one history
// entry for the whole gesture.
func (t *SelectionTool) PointerUp(s *Session, x, y int, _ Modifiers) {
	if s.Selection().PointerUp(x, y) {
		s.commit()
	}
}

// PointerMove is hover only.
func (t *SelectionTool) PointerMove(*Session, int, int, Modifiers) {}

// PointerLeave force-closes the gesture like PointerUp at the last seen
// coordinate.
func (t *SelectionTool) PointerLeave(s *Session) {
	if s.Selection().PointerLeave() {
		s.commit()
	}
}

// Deactivate clears the selection; selections do not survive tool switches.
func (t *SelectionTool) Deactivate(s *Session) {
	s.Selection().ClearSelection()
}
