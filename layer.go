package pixed

import "github.com/google/uuid"

// Layer is one paintable plane of a frame: a pixel buffer plus the
// metadata that controls how it composites into the visible image.
// A Layer exclusively owns its Pixmap.
type Layer struct {
	id      string
	name    string
	pixmap  *Pixmap
	visible bool
	opacity float64
	locked  bool
	mode    BlendMode
}

// NewLayer creates a visible, unlocked, fully opaque layer with a
// transparent buffer of the given dimensions.
func NewLayer(name string, width, height int) *Layer {
	return &Layer{
		id:      uuid.NewString(),
		name:    name,
		pixmap:  NewPixmap(width, height),
		visible: true,
		opacity: 1.0,
		mode:    BlendNormal,
	}
}

// ID returns the layer's unique identifier.
func (l *Layer) ID() string { return l.id }

// Name returns the layer's display name.
func (l *Layer) Name() string { return l.name }

// SetName sets the layer's display name.
func (l *Layer) SetName(name string) { l.name = name }

// Pixmap returns the layer's pixel buffer. The buffer is owned by the
// layer; callers that need an independent copy must Clone it.
func (l *Layer) Pixmap() *Pixmap { return l.pixmap }

// Visible reports whether the layer participates in compositing.
func (l *Layer) Visible() bool { return l.visible }

// SetVisible toggles the layer's participation in compositing.
func (l *Layer) SetVisible(v bool) { l.visible = v }

// Opacity returns the layer opacity in [0, 1].
func (l *Layer) Opacity() float64 { return l.opacity }

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	l.opacity = o
}

// Locked reports whether writes to the layer are rejected.
func (l *Layer) Locked() bool { return l.locked }

// SetLocked toggles write protection. Reads are always allowed.
func (l *Layer) SetLocked(locked bool) { l.locked = locked }

// Mode returns the layer's blend mode tag.
func (l *Layer) Mode() BlendMode { return l.mode }

// SetMode sets the layer's blend mode tag. Modes other than BlendNormal
// are carried as metadata only; compositing treats them all as normal.
func (l *Layer) SetMode(m BlendMode) { l.mode = m }

// Clone returns a deep copy of the layer with a fresh identifier.
func (l *Layer) Clone() *Layer {
	return &Layer{
		id:      uuid.NewString(),
		name:    l.name,
		pixmap:  l.pixmap.Clone(),
		visible: l.visible,
		opacity: l.opacity,
		locked:  l.locked,
		mode:    l.mode,
	}
}

// replacePixmap swaps in a new buffer. The stack uses this on resize and
// crop, where buffers are reallocated rather than mutated in place.
func (l *Layer) replacePixmap(pm *Pixmap) { l.pixmap = pm }
