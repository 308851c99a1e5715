package pixed

// Rect is an axis-aligned rectangle in sprite-space pixel coordinates with
// inclusive edges: a Rect covering a single pixel has Left==Right and
// Top==Bottom.
type Rect struct {
	Left, Top, Right, Bottom int
}

// RectAt returns the single-pixel rectangle at (x, y).
func RectAt(x, y int) Rect {
	return Rect{Left: x, Top: y, Right: x, Bottom: y}
}

// Normalized returns the rectangle with edges swapped so that Left <= Right
// and Top <= Bottom. Degenerate single-row or single-column drags normalize
// to valid one-pixel-thick rectangles.
func (r Rect) Normalized() Rect {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	return r
}

// Width returns the pixel width of a normalized rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left + 1
}

// Height returns the pixel height of a normalized rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top + 1
}

// Contains reports whether (x, y) lies inside the rectangle (edges included).
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Clip intersects the rectangle with a w×h buffer. The result may be Empty.
func (r Rect) Clip(w, h int) Rect {
	if r.Left < 0 {
		r.Left = 0
	}
	if r.Top < 0 {
		r.Top = 0
	}
	if r.Right >= w {
		r.Right = w - 1
	}
	if r.Bottom >= h {
		r.Bottom = h - 1
	}
	return r
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

// Translated returns the rectangle shifted by (dx, dy).
func (r Rect) Translated(dx, dy int) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}
