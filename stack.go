package pixed

import "fmt"

// LayerStack is an ordered sequence of same-size layers with one active
// layer used as the default write target. Index 0 is the bottom layer
// (drawn first); the last index is the top.
//
// Reads through GetPixel are composited; writes through SetPixel go
// straight into one layer's buffer with no compositing on write.
type LayerStack struct {
	width  int
	height int
	layers []*Layer
	active int

	// Batch state. StartBatch/EndBatch group many pixel writes into one
	// change notification; they defer notification only, never execution.
	batchDepth int
	batchDirty bool
	onChange   func()
}

// NewLayerStack creates a stack of the given dimensions containing a single
// transparent base layer named "Layer 1".
func NewLayerStack(width, height int) *LayerStack {
	s := &LayerStack{
		width:  width,
		height: height,
	}
	s.layers = append(s.layers, NewLayer("Layer 1", width, height))
	return s
}

// Width returns the stack width in pixels.
func (s *LayerStack) Width() int { return s.width }

// Height returns the stack height in pixels.
func (s *LayerStack) Height() int { return s.height }

// LayerCount returns the number of layers in the stack.
func (s *LayerStack) LayerCount() int { return len(s.layers) }

// Layer returns the layer at index i, or nil if i is out of range.
func (s *LayerStack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// ActiveIndex returns the index of the active layer.
func (s *LayerStack) ActiveIndex() int { return s.active }

// SetActiveIndex sets the active layer index. Returns false and leaves the
// index unchanged if i is out of range.
func (s *LayerStack) SetActiveIndex(i int) bool {
	if i < 0 || i >= len(s.layers) {
		return false
	}
	s.active = i
	return true
}

// ActiveLayer returns the active layer.
func (s *LayerStack) ActiveLayer() *Layer { return s.layers[s.active] }

// OnChange registers the callback fired after pixel content changes.
// Inside a batch the callback fires once, at EndBatch.
func (s *LayerStack) OnChange(fn func()) { s.onChange = fn }

// GetPixel returns the visually composited color at (x, y): layers are
// blended bottom-to-top with the source-over operator, each layer's alpha
// scaled by its opacity. Invisible layers and fully transparent layer
// pixels are skipped. Out-of-range coordinates return Transparent.
func (s *LayerStack) GetPixel(x, y int) RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	out := Transparent
	for _, l := range s.layers {
		if !l.visible {
			continue
		}
		c := l.pixmap.GetPixel(x, y)
		if c.A == 0 {
			continue
		}
		c.A *= l.opacity
		out = Over(c, out)
	}
	return out
}

// Composite renders the whole stack into a new detached pixmap.
func (s *LayerStack) Composite() *Pixmap {
	out := NewPixmap(s.width, s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			out.SetPixel(x, y, s.GetPixel(x, y))
		}
	}
	return out
}

// SetPixel writes a pixel into the active layer's buffer. It returns false
// without side effects when the layer is locked or the coordinate is out of
// range, so the calling tool can skip its own history commit.
func (s *LayerStack) SetPixel(x, y int, c RGBA) bool {
	return s.SetPixelLayer(x, y, c, s.active)
}

// SetPixelLayer writes a pixel into the buffer of the layer at index.
func (s *LayerStack) SetPixelLayer(x, y int, c RGBA, index int) bool {
	l := s.Layer(index)
	if l == nil || l.locked {
		return false
	}
	if !l.pixmap.InBounds(x, y) {
		return false
	}
	l.pixmap.SetPixel(x, y, c)
	s.markChanged()
	return true
}

// StartBatch suppresses change notifications until the matching EndBatch.
// Batches nest; only the outermost EndBatch notifies.
func (s *LayerStack) StartBatch() {
	s.batchDepth++
}

// EndBatch closes the innermost batch. Closing the outermost batch fires
// exactly one change notification if any pixel changed during the batch.
func (s *LayerStack) EndBatch() {
	if s.batchDepth == 0 {
		return
	}
	s.batchDepth--
	if s.batchDepth == 0 && s.batchDirty {
		s.batchDirty = false
		if s.onChange != nil {
			s.onChange()
		}
	}
}

// InBatch reports whether a batch is currently open.
func (s *LayerStack) InBatch() bool { return s.batchDepth > 0 }

func (s *LayerStack) markChanged() {
	if s.batchDepth > 0 {
		s.batchDirty = true
		return
	}
	if s.onChange != nil {
		s.onChange()
	}
}

// AddLayer appends a new transparent layer on top of the stack and makes
// it active.
func (s *LayerStack) AddLayer(name string) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(s.layers)+1)
	}
	l := NewLayer(name, s.width, s.height)
	s.layers = append(s.layers, l)
	s.active = len(s.layers) - 1
	s.markChanged()
	return l
}

// DuplicateLayer inserts a deep copy of the layer at index directly above
// it and makes the copy active. Returns nil if index is out of range.
func (s *LayerStack) DuplicateLayer(index int) *Layer {
	src := s.Layer(index)
	if src == nil {
		return nil
	}
	dup := src.Clone()
	dup.SetName(src.name + " copy")
	s.layers = append(s.layers, nil)
	copy(s.layers[index+2:], s.layers[index+1:])
	s.layers[index+1] = dup
	s.active = index + 1
	s.markChanged()
	return dup
}

// RemoveLayer deletes the layer at index. The last remaining layer cannot
// be removed; returns false in that case or when index is out of range.
func (s *LayerStack) RemoveLayer(index int) bool {
	if len(s.layers) <= 1 || index < 0 || index >= len(s.layers) {
		return false
	}
	s.layers = append(s.layers[:index], s.layers[index+1:]...)
	if s.active >= len(s.layers) {
		s.active = len(s.layers) - 1
	} else if s.active > index {
		s.active--
	}
	s.markChanged()
	return true
}

// MoveLayer reorders the layer at from to position to, shifting the layers
// between them. The active layer follows the move.
func (s *LayerStack) MoveLayer(from, to int) bool {
	n := len(s.layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	l := s.layers[from]
	s.layers = append(s.layers[:from], s.layers[from+1:]...)
	s.layers = append(s.layers[:to], append([]*Layer{l}, s.layers[to:]...)...)
	s.active = to
	s.markChanged()
	return true
}

// MergeDown composites the layer at index onto the layer below it (respecting
// visibility and opacity of the merged layer) and removes it. The lower
// layer keeps its own metadata. Returns false for the bottom layer, an
// out-of-range index, or a locked destination.
func (s *LayerStack) MergeDown(index int) bool {
	if index <= 0 || index >= len(s.layers) {
		return false
	}
	top := s.layers[index]
	below := s.layers[index-1]
	if below.locked {
		return false
	}
	if top.visible {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				c := top.pixmap.GetPixel(x, y)
				if c.A == 0 {
					continue
				}
				c.A *= top.opacity
				below.pixmap.SetPixel(x, y, Over(c, below.pixmap.GetPixel(x, y)))
			}
		}
	}
	s.layers = append(s.layers[:index], s.layers[index+1:]...)
	if s.active >= index {
		s.active--
	}
	if s.active < 0 {
		s.active = 0
	}
	s.markChanged()
	return true
}

// Clone returns a deep copy of the stack. Layer identifiers are refreshed;
// the change callback is not carried over.
func (s *LayerStack) Clone() *LayerStack {
	out := &LayerStack{
		width:  s.width,
		height: s.height,
		active: s.active,
	}
	out.layers = make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		out.layers[i] = l.Clone()
	}
	return out
}

// reshape replaces every layer's buffer with pm[i] and updates the stack
// dimensions. All pixmaps must share one shape. Used by resize and crop.
func (s *LayerStack) reshape(width, height int, pms []*Pixmap) {
	s.width = width
	s.height = height
	for i, l := range s.layers {
		l.replacePixmap(pms[i])
	}
	s.markChanged()
}
