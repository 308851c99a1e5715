package pixed

// Session is the explicit context object for one editing session: it owns
// exactly one sprite, that sprite's undo history, the clipboard and the
// active tool. There is no process-wide editor state; collaborators create
// a Session and thread it through every call.
//
// A Session is single-threaded. Every operation runs to completion on the
// calling goroutine before returning; batches group notifications, never
// execution.
type Session struct {
	cfg       Config
	sprite    *Sprite
	history   *History
	clipboard *Clipboard
	selection *SelectionEngine
	tool      Tool
	onRender  func()
}

// NewSession creates a session around a fresh single-frame sprite of the
// given dimensions.
func NewSession(width, height int, name string, opts ...SessionOption) *Session {
	options := defaultSessionOptions()
	for _, opt := range opts {
		opt(&options)
	}

	sprite := options.sprite
	if sprite == nil {
		sprite = NewSprite(width, height, name)
	}

	s := &Session{
		cfg:    options.cfg,
		sprite: sprite,
	}
	s.history = NewHistory(s.cfg)
	s.history.Reset(sprite)
	s.selection = NewSelectionEngine(sprite)
	s.wireFrames()
	return s
}

// wireFrames routes every frame stack's change notification to the render
// callback. Re-run after structural changes that introduce new stacks.
func (s *Session) wireFrames() {
	for i := 0; i < s.sprite.FrameCount(); i++ {
		s.sprite.Frame(i).Layers().OnChange(s.notifyRender)
	}
}

func (s *Session) notifyRender() {
	if s.onRender != nil {
		s.onRender()
	}
}

// OnRender registers the callback fired once per completed batch (or per
// single unbatched write). Renderers redraw from the composited state here.
func (s *Session) OnRender(fn func()) { s.onRender = fn }

// Sprite returns the session's sprite.
func (s *Session) Sprite() *Sprite { return s.sprite }

// History returns the session's undo history.
func (s *Session) History() *History { return s.history }

// Selection returns the session's selection engine.
func (s *Session) Selection() *SelectionEngine { return s.selection }

// Clipboard returns the current clipboard content, or nil.
func (s *Session) Clipboard() *Clipboard { return s.clipboard }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// SetTool switches the active tool, deactivating the previous one (which
// force-closes its in-progress gesture, if any).
func (s *Session) SetTool(t Tool) {
	if s.tool != nil {
		s.tool.Deactivate(s)
	}
	s.tool = t
}

// Tool returns the active tool, or nil.
func (s *Session) Tool() Tool { return s.tool }

// PointerDown forwards a pointer-down event to the active tool.
func (s *Session) PointerDown(x, y int, m Modifiers) {
	if s.tool != nil {
		s.tool.PointerDown(s, x, y, m)
	}
}

// PointerDrag forwards a pointer-drag event to the active tool.
func (s *Session) PointerDrag(x, y, lastX, lastY int, m Modifiers) {
	if s.tool != nil {
		s.tool.PointerDrag(s, x, y, lastX, lastY, m)
	}
}

// PointerUp forwards a pointer-up event to the active tool.
func (s *Session) PointerUp(x, y int, m Modifiers) {
	if s.tool != nil {
		s.tool.PointerUp(s, x, y, m)
	}
}

// PointerMove forwards a hover event to the active tool. Never mutates.
func (s *Session) PointerMove(x, y int, m Modifiers) {
	if s.tool != nil {
		s.tool.PointerMove(s, x, y, m)
	}
}

// PointerLeave tells the active tool the pointer left the canvas; any
// in-progress gesture closes exactly as pointer-up would.
func (s *Session) PointerLeave() {
	if s.tool != nil {
		s.tool.PointerLeave(s)
	}
}

// commit records one history entry for a completed logical gesture and
// touches the sprite's modified time.
func (s *Session) commit() {
	s.sprite.Touch()
	s.history.Record(s.sprite)
}

// Undo restores the previous snapshot. No-op returning false at the oldest
// entry.
func (s *Session) Undo() bool { return s.history.Undo(s.sprite) }

// Redo restores the next snapshot. No-op returning false at the newest
// entry.
func (s *Session) Redo() bool { return s.history.Redo(s.sprite) }

// CanUndo reports whether Undo would restore anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would restore anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// GetPixel returns the composited color at (x, y); transparent out of range.
func (s *Session) GetPixel(x, y int) RGBA {
	return s.sprite.Layers().GetPixel(x, y)
}

// PickColor is the eyedropper: a pure composited read, identical to
// GetPixel. It never mutates and never commits history.
func (s *Session) PickColor(x, y int) RGBA {
	return s.GetPixel(x, y)
}

// SetPixel writes one pixel into the active layer and commits one history
// entry on success. Returns false on a locked layer or out-of-range
// coordinate.
func (s *Session) SetPixel(x, y int, c RGBA) bool {
	if !s.sprite.Layers().SetPixel(x, y, c) {
		return false
	}
	s.commit()
	return true
}

// GetPixelArray returns the full composited pixel grid.
func (s *Session) GetPixelArray() *Pixmap {
	return s.sprite.Layers().Composite()
}

// GetRegion bulk-reads a rectangle of the active layer.
func (s *Session) GetRegion(r Rect) *Pixmap {
	return s.sprite.Layers().ActiveLayer().Pixmap().Region(r)
}

// SetRegion bulk-writes src at (x, y) on the active layer and commits one
// history entry. Returns false on a locked layer.
func (s *Session) SetRegion(x, y int, src *Pixmap) bool {
	st := s.sprite.Layers()
	if st.ActiveLayer().Locked() {
		return false
	}
	st.StartBatch()
	st.ActiveLayer().Pixmap().SetRegion(x, y, src, false)
	st.markChanged()
	st.EndBatch()
	s.commit()
	return true
}

// Resize resamples the sprite to newW×newH (see [Sprite.Resize]) and
// commits one history entry on completion.
func (s *Session) Resize(newW, newH int, keepAspect bool) bool {
	if !s.sprite.Resize(newW, newH, keepAspect) {
		return false
	}
	s.selection.ClearSelection()
	s.commit()
	return true
}

// CropToSelection replaces the sprite's dimensions with the selection
// bounds and discards everything outside. The operation itself commits one
// history entry, so the editor's own undo can still revert it; asking the
// user for confirmation is the UI's job.
func (s *Session) CropToSelection() bool {
	r, ok := s.selection.Selection()
	if !ok {
		return false
	}
	if !s.sprite.CropTo(r) {
		return false
	}
	s.selection.ClearSelection()
	s.commit()
	return true
}

// Clear makes the active layer fully transparent; one history entry.
func (s *Session) Clear() bool {
	if !s.sprite.Clear() {
		return false
	}
	s.commit()
	return true
}

// FillAll overwrites the active layer with c; one history entry.
func (s *Session) FillAll(c RGBA) bool {
	if !s.sprite.Fill(c) {
		return false
	}
	s.commit()
	return true
}

// Duplicate returns a deep copy of the sprite with fresh identifiers.
// The copy belongs to the caller; this session keeps editing the original.
func (s *Session) Duplicate() *Sprite {
	return s.sprite.Clone()
}

// Copy reads the selection's pixels from the active layer into the
// clipboard. Reading is allowed on locked layers. Returns false without a
// selection.
func (s *Session) Copy() bool {
	r, ok := s.selection.Selection()
	if !ok {
		return false
	}
	s.clipboard = CopyRegion(s.sprite.Layers(), r)
	return true
}

// Cut copies the selection and clears the source region to transparent as
// one batched gesture with one history entry. No-op on a locked layer.
func (s *Session) Cut() bool {
	r, ok := s.selection.Selection()
	if !ok {
		return false
	}
	cb, ok := CutRegion(s.sprite.Layers(), r)
	if !ok {
		return false
	}
	s.clipboard = cb
	s.commit()
	return true
}

// Paste writes the clipboard at the selection's origin, or (0, 0) without a
// selection; one history entry. No-op on a locked layer or empty clipboard.
func (s *Session) Paste() bool {
	x, y := 0, 0
	if r, ok := s.selection.Selection(); ok {
		x, y = r.Left, r.Top
	}
	return s.PasteAt(x, y)
}

// PasteAt writes the clipboard at (x, y), clipped to the canvas; clipboard
// cells with zero alpha leave the destination untouched. One history entry.
func (s *Session) PasteAt(x, y int) bool {
	if !PasteClipboard(s.sprite.Layers(), s.clipboard, x, y) {
		return false
	}
	s.commit()
	return true
}

// Delete clears the selection's pixels to transparent; one history entry.
// No-op on a locked layer or without a selection.
func (s *Session) Delete() bool {
	r, ok := s.selection.Selection()
	if !ok {
		return false
	}
	if !DeleteRegion(s.sprite.Layers(), r) {
		return false
	}
	s.commit()
	return true
}

// FillSelection unconditionally overwrites the selection with c (alpha
// included); one history entry. No-op on a locked layer or without a
// selection.
func (s *Session) FillSelection(c RGBA) bool {
	r, ok := s.selection.Selection()
	if !ok {
		return false
	}
	if !FillRegion(s.sprite.Layers(), r, c) {
		return false
	}
	s.commit()
	return true
}

// AddFrame appends a blank frame, makes it active and commits one history
// entry.
func (s *Session) AddFrame(name string) *Frame {
	f := s.sprite.AddFrame(name)
	s.wireFrames()
	s.commit()
	return f
}

// DuplicateFrame inserts a deep copy of frame i after it, makes it active
// and commits one history entry. Returns nil if i is out of range.
func (s *Session) DuplicateFrame(i int) *Frame {
	f := s.sprite.DuplicateFrame(i)
	if f == nil {
		return nil
	}
	s.wireFrames()
	s.commit()
	return f
}

// RemoveFrame deletes frame i and commits one history entry. The last
// remaining frame cannot be removed.
func (s *Session) RemoveFrame(i int) bool {
	if !s.sprite.RemoveFrame(i) {
		return false
	}
	s.commit()
	return true
}

// SetActiveFrame switches the editable frame. A pure focus change; no
// history entry.
func (s *Session) SetActiveFrame(i int) bool {
	return s.sprite.SetActiveFrame(i)
}

// AddLayer appends a transparent layer on top of the active frame's stack
// and commits one history entry.
func (s *Session) AddLayer(name string) *Layer {
	l := s.sprite.Layers().AddLayer(name)
	s.commit()
	return l
}

// DuplicateLayer deep-copies the layer at index, inserts it above and
// commits one history entry. Returns nil if index is out of range.
func (s *Session) DuplicateLayer(index int) *Layer {
	l := s.sprite.Layers().DuplicateLayer(index)
	if l == nil {
		return nil
	}
	s.commit()
	return l
}

// RemoveLayer deletes the layer at index and commits one history entry.
// The last remaining layer cannot be removed.
func (s *Session) RemoveLayer(index int) bool {
	if !s.sprite.Layers().RemoveLayer(index) {
		return false
	}
	s.commit()
	return true
}

// MoveLayer reorders a layer and commits one history entry.
func (s *Session) MoveLayer(from, to int) bool {
	if !s.sprite.Layers().MoveLayer(from, to) {
		return false
	}
	s.commit()
	return true
}

// MergeDown composites the layer at index onto the one below, removes it and
// commits one history entry. No-op on the bottom layer or a locked
// destination.
func (s *Session) MergeDown(index int) bool {
	if !s.sprite.Layers().MergeDown(index) {
		return false
	}
	s.commit()
	return true
}

// SetActiveLayer switches the write-target layer. A pure focus change; no
// history entry.
func (s *Session) SetActiveLayer(index int) bool {
	return s.sprite.Layers().SetActiveIndex(index)
}
