package pixed

import "time"

// Snapshot is one immutable entry of the undo log: the full pixel state of
// the sprite's active frame at commit time.
type Snapshot struct {
	width  int
	height int
	active int
	layers []layerSnapshot
	taken  time.Time
}

// layerSnapshot is the serialized pixel state of one layer inside a
// Snapshot. Pixels are copied at capture time; a snapshot never aliases a
// live buffer.
type layerSnapshot struct {
	id      string
	name    string
	visible bool
	opacity float64
	locked  bool
	mode    BlendMode
	pixels  []uint8
}

// History is an append-only, truncate-on-branch undo/redo log of full-state
// snapshots with a movable cursor. Pushing while the cursor sits before the
// last entry discards everything after the cursor, standard linear undo.
//
// Two size-dependent mechanisms bound memory: a retained-entry cap (smaller
// for large sprites, oldest entries evicted first) and snapshot throttling
// (on large sprites only every Nth committed edit is recorded).
type History struct {
	cfg     Config
	entries []*Snapshot
	index   int // cursor; entries[index] mirrors the current state
	edits   int // committed-edit counter driving the large-sprite stride
}

// NewHistory creates an empty history. Call Reset to record the initial
// state before the first edit.
func NewHistory(cfg Config) *History {
	cfg.defaults()
	return &History{cfg: cfg, index: -1}
}

// Reset discards all entries and records the sprite's current state as the
// single baseline entry, bypassing throttling.
func (h *History) Reset(s *Sprite) {
	h.entries = h.entries[:0]
	h.index = -1
	h.edits = 0
	h.push(captureSnapshot(s))
}

// Len returns the number of retained entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the cursor position.
func (h *History) Index() int { return h.index }

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Record captures the sprite's current state as a new entry. On large
// sprites (pixel count above Config.LargeSpritePixels) only every
// SnapshotStride-th committed edit is recorded; skipped edits still count
// as committed but leave the log untouched. Returns whether an entry was
// pushed.
func (h *History) Record(s *Sprite) bool {
	h.edits++
	if s.PixelCount() > h.cfg.LargeSpritePixels && h.edits%h.cfg.SnapshotStride != 0 {
		Logger().Debug("snapshot throttled",
			"pixels", s.PixelCount(), "edit", h.edits, "stride", h.cfg.SnapshotStride)
		return false
	}
	h.push(captureSnapshot(s))
	h.evict(s)
	return true
}

// push appends a snapshot, cutting the redo branch first.
func (h *History) push(snap *Snapshot) {
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	h.entries = append(h.entries, snap)
	h.index = len(h.entries) - 1
}

// evict drops oldest entries once the size-dependent cap is exceeded,
// shifting the cursor accordingly.
func (h *History) evict(s *Sprite) {
	limit := h.cfg.HistoryCap
	if s.PixelCount() > h.cfg.LargeSpritePixels {
		limit = h.cfg.HistoryCapLarge
	}
	for len(h.entries) > limit {
		h.entries = h.entries[1:]
		h.index--
		Logger().Debug("history entry evicted", "cap", limit)
	}
	if h.index < 0 {
		h.index = 0
	}
}

// Undo moves the cursor back one entry and restores that snapshot into the
// sprite. Returns false (no-op) when already at the oldest entry.
func (h *History) Undo(s *Sprite) bool {
	if !h.CanUndo() {
		return false
	}
	h.index--
	applySnapshot(s, h.entries[h.index])
	return true
}

// Redo moves the cursor forward one entry and restores that snapshot.
// Returns false (no-op) when already at the newest entry.
func (h *History) Redo(s *Sprite) bool {
	if !h.CanRedo() {
		return false
	}
	h.index++
	applySnapshot(s, h.entries[h.index])
	return true
}

// captureSnapshot copies the active frame's full layer state.
func captureSnapshot(s *Sprite) *Snapshot {
	st := s.Layers()
	snap := &Snapshot{
		width:  st.Width(),
		height: st.Height(),
		active: st.ActiveIndex(),
		layers: make([]layerSnapshot, st.LayerCount()),
		taken:  time.Now(),
	}
	for i := 0; i < st.LayerCount(); i++ {
		l := st.Layer(i)
		pixels := make([]uint8, len(l.pixmap.data))
		copy(pixels, l.pixmap.data)
		snap.layers[i] = layerSnapshot{
			id:      l.id,
			name:    l.name,
			visible: l.visible,
			opacity: l.opacity,
			locked:  l.locked,
			mode:    l.mode,
			pixels:  pixels,
		}
	}
	return snap
}

// applySnapshot replaces the sprite's active frame state wholesale with the
// snapshot and updates the modified time. Other frames are not touched, and
// in particular not resized.
func applySnapshot(s *Sprite, snap *Snapshot) {
	st := s.Layers()
	layers := make([]*Layer, len(snap.layers))
	for i, ls := range snap.layers {
		l := NewLayer(ls.name, snap.width, snap.height)
		l.id = ls.id
		l.visible = ls.visible
		l.opacity = ls.opacity
		l.locked = ls.locked
		l.mode = ls.mode
		copy(l.pixmap.data, ls.pixels)
		layers[i] = l
	}
	st.width = snap.width
	st.height = snap.height
	st.layers = layers
	st.active = clampIndex(snap.active, len(layers))
	s.width = snap.width
	s.height = snap.height
	s.Touch()
	st.markChanged()
}
