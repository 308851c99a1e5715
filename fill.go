package pixed

// FloodFill recolors the 4-connected region of tolerance-matching pixels
// around the seed (x, y) on the stack's active layer.
//
// tolerance is a 0-100 percentage of the maximum possible distance in
// 4-channel RGBA space (see [RGBA.Distance]); values outside that range are
// clamped. At tolerance 0 a pixel matches only when all four channel bytes
// exactly equal the seed pixel's original bytes.
//
// The fill is iterative (explicit work stack, no recursion) and keeps a
// visited set so no pixel is processed twice. The whole fill runs inside
// one batch, so callers observe a single change notification.
//
// Returns false without side effects when the seed is out of bounds, the
// active layer is locked, or the seed pixel already equals fill exactly.
func FloodFill(st *LayerStack, x, y int, fill RGBA, tolerance float64) bool {
	layer := st.ActiveLayer()
	if layer.Locked() {
		return false
	}
	pm := layer.Pixmap()
	if !pm.InBounds(x, y) {
		return false
	}

	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance > 100 {
		tolerance = 100
	}

	tr, tg, tb, ta := pm.pixelBytes(x, y)
	fr, fg, fb, fa := fill.toBytes()
	if tr == fr && tg == fg && tb == fb && ta == fa {
		return false
	}
	target := fromBytes(tr, tg, tb, ta)

	matches := func(px, py int) bool {
		r, g, b, a := pm.pixelBytes(px, py)
		if tolerance == 0 {
			return r == tr && g == tg && b == tb && a == ta
		}
		return fromBytes(r, g, b, a).Distance(target) <= tolerance
	}

	width := pm.Width()
	visited := make(map[int]struct{})
	stack := []int{y*width + x}
	visited[y*width+x] = struct{}{}

	st.StartBatch()
	defer st.EndBatch()

	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		px, py := key%width, key/width

		st.SetPixel(px, py, fill)

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := px+d[0], py+d[1]
			if !pm.InBounds(nx, ny) {
				continue
			}
			nkey := ny*width + nx
			if _, seen := visited[nkey]; seen {
				continue
			}
			if !matches(nx, ny) {
				continue
			}
			visited[nkey] = struct{}{}
			stack = append(stack, nkey)
		}
	}
	return true
}
