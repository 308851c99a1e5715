package pixed

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Frame is one animation frame of a sprite. Each frame owns its layer
// stack; single-frame sprites simply have one.
type Frame struct {
	id    string
	name  string
	stack *LayerStack
}

// NewFrame creates a frame with a fresh single-layer stack.
func NewFrame(name string, width, height int) *Frame {
	return &Frame{
		id:    uuid.NewString(),
		name:  name,
		stack: NewLayerStack(width, height),
	}
}

// ID returns the frame's unique identifier.
func (f *Frame) ID() string { return f.id }

// Name returns the frame's display name.
func (f *Frame) Name() string { return f.name }

// SetName sets the frame's display name.
func (f *Frame) SetName(name string) { f.name = name }

// Layers returns the frame's layer stack.
func (f *Frame) Layers() *LayerStack { return f.stack }

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.stack.Width() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.stack.Height() }

// Clone returns a deep copy with a fresh identifier.
func (f *Frame) Clone() *Frame {
	return &Frame{
		id:    uuid.NewString(),
		name:  f.name,
		stack: f.stack.Clone(),
	}
}

// Sprite is a single editable artwork: identity, dimensions, timestamps and
// one or more frames. The sprite's width and height always equal the active
// frame's dimensions.
type Sprite struct {
	id       string
	name     string
	width    int
	height   int
	created  time.Time
	modified time.Time
	frames   []*Frame
	active   int
}

// NewSprite creates a single-frame sprite with a transparent base layer.
func NewSprite(width, height int, name string) *Sprite {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	now := time.Now()
	return &Sprite{
		id:       uuid.NewString(),
		name:     name,
		width:    width,
		height:   height,
		created:  now,
		modified: now,
		frames:   []*Frame{NewFrame("Frame 1", width, height)},
	}
}

// ID returns the sprite's unique identifier.
func (s *Sprite) ID() string { return s.id }

// Name returns the sprite's display name.
func (s *Sprite) Name() string { return s.name }

// SetName sets the sprite's display name and touches the modified time.
func (s *Sprite) SetName(name string) {
	s.name = name
	s.Touch()
}

// Width returns the sprite width in pixels.
func (s *Sprite) Width() int { return s.width }

// Height returns the sprite height in pixels.
func (s *Sprite) Height() int { return s.height }

// Created returns the creation timestamp.
func (s *Sprite) Created() time.Time { return s.created }

// Modified returns the last-modification timestamp.
func (s *Sprite) Modified() time.Time { return s.modified }

// Touch updates the modified timestamp.
func (s *Sprite) Touch() { s.modified = time.Now() }

// IsAnimated reports whether the sprite has more than one frame.
func (s *Sprite) IsAnimated() bool { return len(s.frames) > 1 }

// FrameCount returns the number of frames.
func (s *Sprite) FrameCount() int { return len(s.frames) }

// Frame returns the frame at index i, or nil if out of range.
func (s *Sprite) Frame(i int) *Frame {
	if i < 0 || i >= len(s.frames) {
		return nil
	}
	return s.frames[i]
}

// ActiveFrameIndex returns the index of the active frame.
func (s *Sprite) ActiveFrameIndex() int { return s.active }

// SetActiveFrame makes frame i the editable frame and syncs the sprite
// dimensions to it. Returns false if i is out of range.
func (s *Sprite) SetActiveFrame(i int) bool {
	if i < 0 || i >= len(s.frames) {
		return false
	}
	s.active = i
	s.width = s.frames[i].Width()
	s.height = s.frames[i].Height()
	return true
}

// ActiveFrame returns the active frame.
func (s *Sprite) ActiveFrame() *Frame { return s.frames[s.active] }

// Layers returns the active frame's layer stack, the sprite's editable
// surface.
func (s *Sprite) Layers() *LayerStack { return s.ActiveFrame().stack }

// AddFrame appends a new blank frame of the sprite's dimensions and makes
// it active.
func (s *Sprite) AddFrame(name string) *Frame {
	f := NewFrame(name, s.width, s.height)
	s.frames = append(s.frames, f)
	s.active = len(s.frames) - 1
	s.Touch()
	return f
}

// DuplicateFrame inserts a deep copy of frame i directly after it and makes
// the copy active. Returns nil if i is out of range.
func (s *Sprite) DuplicateFrame(i int) *Frame {
	src := s.Frame(i)
	if src == nil {
		return nil
	}
	dup := src.Clone()
	dup.SetName(src.name + " copy")
	s.frames = append(s.frames, nil)
	copy(s.frames[i+2:], s.frames[i+1:])
	s.frames[i+1] = dup
	s.active = i + 1
	s.Touch()
	return dup
}

// RemoveFrame deletes frame i. The last remaining frame cannot be removed.
func (s *Sprite) RemoveFrame(i int) bool {
	if len(s.frames) <= 1 || i < 0 || i >= len(s.frames) {
		return false
	}
	s.frames = append(s.frames[:i], s.frames[i+1:]...)
	if s.active >= len(s.frames) {
		s.active = len(s.frames) - 1
	} else if s.active > i {
		s.active--
	}
	s.SetActiveFrame(s.active)
	s.Touch()
	return true
}

// Resize reallocates every layer buffer in every frame to newW×newH using
// nearest-neighbor resampling. With keepAspect true, one of the requested
// dimensions is recomputed from the original aspect ratio first: the width
// when the requested ratio is below the original, otherwise the height.
// Returns false for non-positive target dimensions.
func (s *Sprite) Resize(newW, newH int, keepAspect bool) bool {
	if newW < 1 || newH < 1 {
		return false
	}
	if keepAspect {
		orig := float64(s.width) / float64(s.height)
		requested := float64(newW) / float64(newH)
		if requested < orig {
			newW = int(math.Round(float64(newH) * orig))
		} else {
			newH = int(math.Round(float64(newW) / orig))
		}
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}
	}
	for _, f := range s.frames {
		st := f.stack
		pms := make([]*Pixmap, st.LayerCount())
		for i := range pms {
			pms[i] = resampleNearest(st.Layer(i).Pixmap(), newW, newH)
		}
		st.reshape(newW, newH, pms)
	}
	s.width = newW
	s.height = newH
	s.Touch()
	return true
}

// CropTo discards everything outside r (clipped to the sprite) in every
// frame and shrinks the sprite to r's size. Returns false when the clipped
// rectangle is empty.
func (s *Sprite) CropTo(r Rect) bool {
	r = r.Normalized().Clip(s.width, s.height)
	if r.Empty() {
		return false
	}
	w, h := r.Width(), r.Height()
	for _, f := range s.frames {
		st := f.stack
		pms := make([]*Pixmap, st.LayerCount())
		for i := range pms {
			pms[i] = st.Layer(i).Pixmap().Region(r)
		}
		st.reshape(w, h, pms)
	}
	s.width = w
	s.height = h
	s.Touch()
	return true
}

// Clear makes every pixel of the active layer fully transparent.
// Returns false if the active layer is locked.
func (s *Sprite) Clear() bool {
	l := s.Layers().ActiveLayer()
	if l.Locked() {
		return false
	}
	l.Pixmap().Clear(Transparent)
	s.Layers().markChanged()
	s.Touch()
	return true
}

// Fill overwrites every pixel of the active layer with c.
// Returns false if the active layer is locked.
func (s *Sprite) Fill(c RGBA) bool {
	l := s.Layers().ActiveLayer()
	if l.Locked() {
		return false
	}
	l.Pixmap().Clear(c)
	s.Layers().markChanged()
	s.Touch()
	return true
}

// FlipActiveLayer mirrors the active layer's pixels, horizontally when
// horizontal is true, vertically otherwise. Returns false on a locked layer.
func (s *Sprite) FlipActiveLayer(horizontal bool) bool {
	l := s.Layers().ActiveLayer()
	if l.Locked() {
		return false
	}
	src := l.Pixmap()
	out := NewPixmap(src.Width(), src.Height())
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			if horizontal {
				out.SetPixel(src.Width()-1-x, y, src.GetPixel(x, y))
			} else {
				out.SetPixel(x, src.Height()-1-y, src.GetPixel(x, y))
			}
		}
	}
	copy(src.Data(), out.Data())
	s.Layers().markChanged()
	s.Touch()
	return true
}

// Clone deep-copies the sprite with fresh identifiers and timestamps.
// No pixel buffer is shared with the source.
func (s *Sprite) Clone() *Sprite {
	now := time.Now()
	out := &Sprite{
		id:       uuid.NewString(),
		name:     s.name,
		width:    s.width,
		height:   s.height,
		created:  now,
		modified: now,
		active:   s.active,
	}
	out.frames = make([]*Frame, len(s.frames))
	for i, f := range s.frames {
		out.frames[i] = f.Clone()
	}
	return out
}

// PixelCount returns width*height, the size measure used for history
// throttling decisions.
func (s *Sprite) PixelCount() int { return s.width * s.height }

// resampleNearest scales src to newW×newH with nearest-neighbor sampling:
// each destination pixel reads floor(x/newW*oldW), floor(y/newH*oldH),
// clamped to the source bounds.
func resampleNearest(src *Pixmap, newW, newH int) *Pixmap {
	out := NewPixmap(newW, newH)
	oldW, oldH := src.Width(), src.Height()
	for y := 0; y < newH; y++ {
		sy := y * oldH / newH
		if sy > oldH-1 {
			sy = oldH - 1
		}
		for x := 0; x < newW; x++ {
			sx := x * oldW / newW
			if sx > oldW-1 {
				sx = oldW - 1
			}
			out.SetPixel(x, y, src.GetPixel(sx, sy))
		}
	}
	return out
}
