package pixed

import "testing"

func TestLinePoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 0, 2, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}}},
		{"vertical", 1, 3, 1, 1, [][2]int{{1, 3}, {1, 2}, {1, 1}}},
		{"diagonal", 0, 0, 2, 2, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{"single point", 4, 4, 4, 4, [][2]int{{4, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][2]int
			LinePoints(tt.x0, tt.y0, tt.x1, tt.y1, func(x, y int) {
				got = append(got, [2]int{x, y})
			})
			if len(got) != len(tt.want) {
				t.Fatalf("points = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestLinePointsShallowSlope checks Bresenham visits a contiguous set of
// columns exactly once on a shallow slope.
func TestLinePointsShallowSlope(t *testing.T) {
	seen := map[int]int{}
	LinePoints(0, 0, 7, 2, func(x, y int) { seen[x]++ })
	for x := 0; x <= 7; x++ {
		if seen[x] != 1 {
			t.Errorf("column %d visited %d times, want 1", x, seen[x])
		}
	}
}

// TestBrushStroke is the reference scenario: size-1 brush, apply-once off,
// stroke from (0,0) to (2,0) sets exactly those three pixels.
func TestBrushStroke(t *testing.T) {
	st := NewLayerStack(4, 4)
	k := NewStroke(st)
	k.Begin(0, 0, brushPoint{params: BrushParams{Size: 1, Color: Red}})
	k.Extend(0, 0, 2, 0)
	k.End()

	for x := 0; x <= 2; x++ {
		if got := st.GetPixel(x, 0); !colorsClose(got, Red, 0.005) {
			t.Errorf("(%d,0) = %+v, want red", x, got)
		}
	}
	if got := st.GetPixel(3, 0); got != Transparent {
		t.Errorf("(3,0) = %+v, want untouched", got)
	}
	if !k.Wrote() {
		t.Error("Wrote() must report the successful writes")
	}
}

// TestStrokeOneNotification verifies a whole stroke produces one change
// notification at End, regardless of how many drag segments it had.
func TestStrokeOneNotification(t *testing.T) {
	st := NewLayerStack(8, 8)
	var notified int
	st.OnChange(func() { notified++ })

	k := NewStroke(st)
	k.Begin(0, 0, brushPoint{params: BrushParams{Size: 1, Color: Red}})
	k.Extend(0, 0, 5, 0)
	k.Extend(5, 0, 5, 5)
	k.End()

	if notified != 1 {
		t.Errorf("notifications = %d, want 1", notified)
	}
}

// TestBrushFootprint verifies the circular exclusion: size 5 covers a 5x5
// block minus the four corners (distance sqrt(8) > 2.5).
func TestBrushFootprint(t *testing.T) {
	st := NewLayerStack(9, 9)
	k := NewStroke(st)
	k.Begin(4, 4, brushPoint{params: BrushParams{Size: 5, Color: Red}})
	k.End()

	corners := [][2]int{{2, 2}, {6, 2}, {2, 6}, {6, 6}}
	for _, c := range corners {
		if got := st.GetPixel(c[0], c[1]); got != Transparent {
			t.Errorf("corner (%d,%d) = %+v, want excluded", c[0], c[1], got)
		}
	}
	inside := [][2]int{{4, 4}, {4, 2}, {2, 4}, {5, 5}}
	for _, c := range inside {
		if got := st.GetPixel(c[0], c[1]); !colorsClose(got, Red, 0.005) {
			t.Errorf("(%d,%d) = %+v, want red", c[0], c[1], got)
		}
	}
}

// TestApplyOncePreventsDoubleBlend verifies overlapping segments of one
// stroke cannot blend the same pixel twice when apply-once is on.
func TestApplyOncePreventsDoubleBlend(t *testing.T) {
	half := RGBA{R: 1, G: 0, B: 0, A: 0.5}

	run := func(applyOnce bool) RGBA {
		st := NewLayerStack(4, 1)
		st.ActiveLayer().Pixmap().Clear(White)
		k := NewStroke(st)
		k.Begin(0, 0, brushPoint{params: BrushParams{Size: 1, Color: half, ApplyOnce: applyOnce}})
		k.Extend(0, 0, 2, 0) // touches (0,0) again, then crosses it twice more
		k.Extend(2, 0, 0, 0)
		k.End()
		return st.GetPixel(1, 0)
	}

	once := run(true)
	wantOnce := Over(half, White)
	if !colorsClose(once, wantOnce, 0.01) {
		t.Errorf("apply-once blend = %+v, want single blend %+v", once, wantOnce)
	}

	multi := run(false)
	if colorsClose(multi, wantOnce, 0.01) {
		t.Error("without apply-once, retraced pixels should blend repeatedly")
	}
}

func TestBrushAlphaBlends(t *testing.T) {
	st := NewLayerStack(1, 1)
	st.ActiveLayer().Pixmap().Clear(White)

	k := NewStroke(st)
	k.Begin(0, 0, brushPoint{params: BrushParams{Size: 1, Color: RGBA{R: 1, A: 0.5}}})
	k.End()

	want := Over(RGBA{R: 1, A: 0.5}, White)
	if got := st.GetPixel(0, 0); !colorsClose(got, want, 0.01) {
		t.Errorf("blended pixel = %+v, want %+v", got, want)
	}
}

func TestStrokeOnLockedLayer(t *testing.T) {
	st := NewLayerStack(4, 4)
	st.ActiveLayer().SetLocked(true)

	k := NewStroke(st)
	k.Begin(0, 0, brushPoint{params: BrushParams{Size: 1, Color: Red}})
	k.Extend(0, 0, 3, 0)
	k.End()

	if k.Wrote() {
		t.Error("stroke on a locked layer must report no writes")
	}
}

// TestDitherCheckerboard verifies only cells with even coordinate sums are
// written and that the opacity percentage pre-scales the alpha.
func TestDitherCheckerboard(t *testing.T) {
	st := NewLayerStack(4, 4)
	k := NewStroke(st)
	k.Begin(1, 1, ditherPoint{params: DitherParams{Size: 3, Color: Red, Opacity: 100}})
	k.End()

	for y := 0; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			got := st.GetPixel(x, y)
			if (x+y)%2 == 0 {
				if !colorsClose(got, Red, 0.005) {
					t.Errorf("(%d,%d) = %+v, want red (checkerboard cell)", x, y, got)
				}
			} else if got != Transparent {
				t.Errorf("(%d,%d) = %+v, want untouched", x, y, got)
			}
		}
	}
}

func TestDitherOpacityScalesAlpha(t *testing.T) {
	st := NewLayerStack(1, 1)
	k := NewStroke(st)
	k.Begin(0, 0, ditherPoint{params: DitherParams{Size: 1, Color: Red, Opacity: 50}})
	k.End()

	got := st.GetPixel(0, 0)
	want := Over(Red.WithAlpha(0.5), Transparent)
	if !colorsClose(got, want, 0.01) {
		t.Errorf("dithered pixel = %+v, want %+v", got, want)
	}
}

func TestMirrorAxes(t *testing.T) {
	tests := []struct {
		name string
		axis MirrorAxis
		want [][2]int
	}{
		{"horizontal", MirrorHorizontal, [][2]int{{1, 2}, {6, 2}}},
		{"vertical", MirrorVertical, [][2]int{{1, 2}, {1, 5}}},
		{"both", MirrorBoth, [][2]int{{1, 2}, {6, 2}, {1, 5}, {6, 5}}},
		{"diagonal", MirrorDiagonal, [][2]int{{1, 2}, {2, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewLayerStack(8, 8)
			k := NewStroke(st)
			k.Begin(1, 2, mirrorPoint{params: MirrorParams{Axis: tt.axis, Color: Red}})
			k.End()

			painted := 0
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					if st.GetPixel(x, y).A > 0 {
						painted++
					}
				}
			}
			if painted != len(tt.want) {
				t.Errorf("painted %d pixels, want %d", painted, len(tt.want))
			}
			for _, p := range tt.want {
				if got := st.GetPixel(p[0], p[1]); !colorsClose(got, Red, 0.005) {
					t.Errorf("(%d,%d) = %+v, want red", p[0], p[1], got)
				}
			}
		})
	}
}

// TestMirrorDedupesCenter verifies a point on the mirror axis is written
// once, not blended twice through its coincident reflection.
func TestMirrorDedupesCenter(t *testing.T) {
	st := NewLayerStack(5, 5)
	st.ActiveLayer().Pixmap().Clear(White)
	half := RGBA{R: 1, A: 0.5}

	k := NewStroke(st)
	// x=2 is the mid-column of a 5-wide canvas: its reflection is itself.
	k.Begin(2, 0, mirrorPoint{params: MirrorParams{Axis: MirrorHorizontal, Color: half}})
	k.End()

	want := Over(half, White)
	if got := st.GetPixel(2, 0); !colorsClose(got, want, 0.01) {
		t.Errorf("axis pixel = %+v, want single blend %+v", got, want)
	}
}
