package pixed

import "math"

// LinePoints invokes fn at every integer coordinate of the line from
// (x0, y0) to (x1, y1), endpoints included, using integer Bresenham
// interpolation. All drag-segment rasterization in the engine goes through
// this one walker, so a stroke's footprint never depends on the active mode.
func LinePoints(x0, y0, x1, y1 int, fn func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fn(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PointApplier writes one stroke point (and its brush footprint) into a
// layer stack. Implementations receive the stroke so they can consult and
// update its per-stroke dedupe set.
type PointApplier interface {
	Apply(st *LayerStack, x, y int, k *Stroke)
}

// Stroke tracks one pointer-down..pointer-up gesture: the open batch and
// the per-stroke dedupe set that stops overlapping segments of a single
// stroke from double-blending a pixel.
type Stroke struct {
	stack   *LayerStack
	applier PointApplier
	visited map[[2]int]struct{}
	active  bool
	wrote   bool
}

// NewStroke creates an idle stroke bound to a layer stack.
func NewStroke(st *LayerStack) *Stroke {
	return &Stroke{stack: st}
}

// Active reports whether a gesture is in progress.
func (k *Stroke) Active() bool { return k.active }

// Begin starts a gesture at (x, y): resets the dedupe set, opens a batch
// and applies the first point. Calling Begin on an active stroke first
// force-closes the previous gesture.
func (k *Stroke) Begin(x, y int, applier PointApplier) {
	if k.active {
		k.End()
	}
	k.applier = applier
	k.visited = make(map[[2]int]struct{})
	k.active = true
	k.wrote = false
	k.stack.StartBatch()
	applier.Apply(k.stack, x, y, k)
}

// Extend rasterizes one drag segment from (x0, y0) to (x1, y1), applying
// the stroke's point applier at every intermediate integer coordinate.
// No-op on an idle stroke.
func (k *Stroke) Extend(x0, y0, x1, y1 int) {
	if !k.active {
		return
	}
	LinePoints(x0, y0, x1, y1, func(x, y int) {
		k.applier.Apply(k.stack, x, y, k)
	})
}

// End closes the gesture and its batch, producing the single change
// notification for the whole stroke. Idempotent on an idle stroke.
func (k *Stroke) End() {
	if !k.active {
		return
	}
	k.active = false
	k.applier = nil
	k.stack.EndBatch()
}

// seen reports whether (x, y) was already touched during this stroke.
func (k *Stroke) seen(x, y int) bool {
	_, ok := k.visited[[2]int{x, y}]
	return ok
}

// mark records (x, y) in the per-stroke dedupe set.
func (k *Stroke) mark(x, y int) {
	k.visited[[2]int{x, y}] = struct{}{}
	k.wrote = true
}

// Wrote reports whether any pixel write succeeded during this stroke.
// Strokes entirely on a locked layer or off-canvas write nothing, and the
// calling tool skips its history commit.
func (k *Stroke) Wrote() bool { return k.wrote }

// brushCells visits the S×S neighborhood around (x, y). For sizes above 1,
// cells farther than S/2 from the center are excluded, giving the brush a
// circular footprint.
func brushCells(x, y, size int, fn func(cx, cy int)) {
	if size <= 1 {
		fn(x, y)
		return
	}
	half := size / 2
	radius := float64(size) / 2
	for dy := -half; dy < size-half; dy++ {
		for dx := -half; dx < size-half; dx++ {
			if math.Sqrt(float64(dx*dx+dy*dy)) > radius {
				continue
			}
			fn(x+dx, y+dy)
		}
	}
}

// BrushParams configures the plain brush point applier.
type BrushParams struct {
	// Size is the brush footprint edge length in pixels (min 1).
	Size int
	// Color is the paint color. An alpha below 1 blends over the existing
	// layer pixel with the source-over operator; full alpha overwrites.
	Color RGBA
	// ApplyOnce suppresses re-writing any pixel already touched during the
	// current stroke, so overlapping segments cannot double-blend.
	ApplyOnce bool
}

// brushPoint is the brush-mode PointApplier.
type brushPoint struct {
	params BrushParams
}

func (b brushPoint) Apply(st *LayerStack, x, y int, k *Stroke) {
	c := b.params.Color
	blendIn := c.A < 1
	brushCells(x, y, b.params.Size, func(cx, cy int) {
		if b.params.ApplyOnce {
			if k.seen(cx, cy) {
				return
			}
		}
		out := c
		if blendIn {
			out = Over(c, st.ActiveLayer().Pixmap().GetPixel(cx, cy))
		}
		if st.SetPixel(cx, cy, out) {
			k.mark(cx, cy)
		}
	})
}

// DitherParams configures the dithering point applier.
type DitherParams struct {
	// Size is the footprint edge length in pixels (min 1).
	Size int
	// Color is the paint color before opacity scaling.
	Color RGBA
	// Opacity is a 0-100 percentage applied to Color's alpha before
	// blending.
	Opacity int
}

// ditherPoint writes only the cells of the footprint that satisfy the
// checkerboard predicate (x+y) % 2 == 0, in absolute sprite coordinates so
// adjacent points of a stroke interlock.
type ditherPoint struct {
	params DitherParams
}

func (d ditherPoint) Apply(st *LayerStack, x, y int, k *Stroke) {
	opacity := d.params.Opacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 100 {
		opacity = 100
	}
	c := d.params.Color
	c.A *= float64(opacity) / 100
	blendIn := c.A < 1
	brushCells(x, y, d.params.Size, func(cx, cy int) {
		if (cx+cy)%2 != 0 {
			return
		}
		if k.seen(cx, cy) {
			return
		}
		out := c
		if blendIn {
			out = Over(c, st.ActiveLayer().Pixmap().GetPixel(cx, cy))
		}
		if st.SetPixel(cx, cy, out) {
			k.mark(cx, cy)
		}
	})
}

// MirrorAxis selects which reflections a mirrored stroke produces.
type MirrorAxis int

const (
	// MirrorHorizontal reflects x about the canvas mid-width.
	MirrorHorizontal MirrorAxis = iota
	// MirrorVertical reflects y about the canvas mid-height.
	MirrorVertical
	// MirrorBoth reflects both axes (three mirrored points).
	MirrorBoth
	// MirrorDiagonal swaps x and y.
	MirrorDiagonal
)

// MirrorParams configures the mirrored-draw point applier.
type MirrorParams struct {
	Axis  MirrorAxis
	Color RGBA
}

// mirrorPoint writes the color at the original point plus its 1-3 mirrored
// counterparts, skipping coordinates already touched this stroke.
type mirrorPoint struct {
	params MirrorParams
}

func (m mirrorPoint) Apply(st *LayerStack, x, y int, k *Stroke) {
	points := [][2]int{{x, y}}
	mx := st.Width() - 1 - x
	my := st.Height() - 1 - y
	switch m.params.Axis {
	case MirrorHorizontal:
		points = append(points, [2]int{mx, y})
	case MirrorVertical:
		points = append(points, [2]int{x, my})
	case MirrorBoth:
		points = append(points, [2]int{mx, y}, [2]int{x, my}, [2]int{mx, my})
	case MirrorDiagonal:
		points = append(points, [2]int{y, x})
	}
	c := m.params.Color
	blendIn := c.A < 1
	for _, pt := range points {
		px, py := pt[0], pt[1]
		if k.seen(px, py) {
			continue
		}
		out := c
		if blendIn {
			out = Over(c, st.ActiveLayer().Pixmap().GetPixel(px, py))
		}
		if st.SetPixel(px, py, out) {
			k.mark(px, py)
		}
	}
}
