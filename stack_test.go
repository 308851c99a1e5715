package pixed

import "testing"

// TestSetThenGet covers the base visibility property: with a single opaque
// visible layer, a composited read returns exactly what was written.
func TestSetThenGet(t *testing.T) {
	st := NewLayerStack(8, 8)
	if !st.SetPixel(2, 3, Red) {
		t.Fatal("SetPixel failed on unlocked in-bounds pixel")
	}
	if got := st.GetPixel(2, 3); !colorsClose(got, Red, 0.005) {
		t.Errorf("GetPixel = %+v, want red", got)
	}
}

func TestGetPixelOutOfRange(t *testing.T) {
	st := NewLayerStack(4, 4)
	if got := st.GetPixel(-1, 0); got != Transparent {
		t.Errorf("out-of-range read = %+v, want transparent", got)
	}
	if got := st.GetPixel(4, 4); got != Transparent {
		t.Errorf("out-of-range read = %+v, want transparent", got)
	}
}

func TestSetPixelLocked(t *testing.T) {
	st := NewLayerStack(4, 4)
	st.ActiveLayer().SetLocked(true)
	if st.SetPixel(1, 1, Red) {
		t.Error("SetPixel on locked layer must return false")
	}
	if got := st.ActiveLayer().Pixmap().GetPixel(1, 1); got != Transparent {
		t.Errorf("locked layer was written: %+v", got)
	}
}

func TestCompositeSkipsInvisible(t *testing.T) {
	st := NewLayerStack(2, 2)
	st.SetPixel(0, 0, Red)

	top := st.AddLayer("top")
	st.SetPixel(0, 0, Blue)
	top.SetVisible(false)

	if got := st.GetPixel(0, 0); !colorsClose(got, Red, 0.005) {
		t.Errorf("invisible layer leaked into composite: %+v", got)
	}
}

func TestCompositeOpacityScalesAlpha(t *testing.T) {
	st := NewLayerStack(1, 1)
	st.SetPixel(0, 0, White)

	st.AddLayer("half red")
	st.SetPixel(0, 0, Red)
	st.ActiveLayer().SetOpacity(0.5)

	got := st.GetPixel(0, 0)
	want := Over(Red.WithAlpha(0.5), White)
	if !colorsClose(got, want, 0.005) {
		t.Errorf("composite = %+v, want %+v", got, want)
	}
}

// TestCompositeAssociative verifies compositing [A,B,C] equals compositing
// [A,B] and then overlaying C alone via the same over formula.
func TestCompositeAssociative(t *testing.T) {
	a := RGBA{R: 0.8, G: 0.1, B: 0.1, A: 0.9}
	b := RGBA{R: 0.1, G: 0.8, B: 0.1, A: 0.5}
	c := RGBA{R: 0.1, G: 0.1, B: 0.8, A: 0.3}

	st := NewLayerStack(1, 1)
	st.SetPixel(0, 0, a)
	st.AddLayer("B")
	st.SetPixel(0, 0, b)
	st.AddLayer("C")
	st.SetPixel(0, 0, c)

	full := st.GetPixel(0, 0)

	ab := Over(b, Over(a, Transparent))
	want := Over(c, ab)
	if !colorsClose(full, want, 0.01) {
		t.Errorf("composite [A,B,C] = %+v, want Over(C, Over(B, A)) = %+v", full, want)
	}
}

// TestBatchNotification verifies batches defer the change callback: many
// writes inside a batch produce exactly one notification at EndBatch.
func TestBatchNotification(t *testing.T) {
	st := NewLayerStack(8, 8)
	var notified int
	st.OnChange(func() { notified++ })

	st.SetPixel(0, 0, Red)
	if notified != 1 {
		t.Fatalf("unbatched write: %d notifications, want 1", notified)
	}

	st.StartBatch()
	for i := 0; i < 10; i++ {
		st.SetPixel(i%8, i/8, Blue)
	}
	if notified != 1 {
		t.Fatalf("writes inside batch notified early: %d", notified)
	}
	st.EndBatch()
	if notified != 2 {
		t.Errorf("after EndBatch: %d notifications, want 2", notified)
	}
}

func TestBatchNesting(t *testing.T) {
	st := NewLayerStack(2, 2)
	var notified int
	st.OnChange(func() { notified++ })

	st.StartBatch()
	st.StartBatch()
	st.SetPixel(0, 0, Red)
	st.EndBatch()
	if notified != 0 {
		t.Fatal("inner EndBatch must not notify")
	}
	st.EndBatch()
	if notified != 1 {
		t.Errorf("outer EndBatch: %d notifications, want 1", notified)
	}
}

func TestEmptyBatchDoesNotNotify(t *testing.T) {
	st := NewLayerStack(2, 2)
	var notified int
	st.OnChange(func() { notified++ })

	st.StartBatch()
	st.EndBatch()
	if notified != 0 {
		t.Errorf("batch without writes notified %d times", notified)
	}
}

func TestAddRemoveLayer(t *testing.T) {
	st := NewLayerStack(4, 4)
	st.AddLayer("second")
	if st.LayerCount() != 2 || st.ActiveIndex() != 1 {
		t.Fatalf("after add: count=%d active=%d", st.LayerCount(), st.ActiveIndex())
	}

	if !st.RemoveLayer(1) {
		t.Fatal("RemoveLayer(1) failed")
	}
	if st.LayerCount() != 1 || st.ActiveIndex() != 0 {
		t.Fatalf("after remove: count=%d active=%d", st.LayerCount(), st.ActiveIndex())
	}

	if st.RemoveLayer(0) {
		t.Error("removing the last layer must fail")
	}
}

func TestDuplicateLayerCopiesPixels(t *testing.T) {
	st := NewLayerStack(2, 2)
	st.SetPixel(0, 0, Red)

	dup := st.DuplicateLayer(0)
	if dup == nil {
		t.Fatal("DuplicateLayer returned nil")
	}
	if got := dup.Pixmap().GetPixel(0, 0); !colorsClose(got, Red, 0.005) {
		t.Errorf("duplicate missing pixels: %+v", got)
	}
	if dup.ID() == st.Layer(0).ID() {
		t.Error("duplicate must have a fresh identifier")
	}

	// Mutating the duplicate must not touch the source.
	dup.Pixmap().SetPixel(0, 0, Blue)
	if got := st.Layer(0).Pixmap().GetPixel(0, 0); !colorsClose(got, Red, 0.005) {
		t.Errorf("duplicate aliases source buffer: %+v", got)
	}
}

func TestMoveLayer(t *testing.T) {
	st := NewLayerStack(2, 2)
	st.AddLayer("middle")
	st.AddLayer("top")
	bottom := st.Layer(0)

	if !st.MoveLayer(0, 2) {
		t.Fatal("MoveLayer failed")
	}
	if st.Layer(2) != bottom {
		t.Error("layer did not move to top")
	}
	if st.ActiveIndex() != 2 {
		t.Errorf("active index = %d, want 2 (follows the move)", st.ActiveIndex())
	}
}

func TestMergeDown(t *testing.T) {
	st := NewLayerStack(2, 2)
	st.SetPixel(0, 0, White)
	st.SetPixel(1, 1, White)

	st.AddLayer("top")
	st.SetPixel(0, 0, Red)

	if !st.MergeDown(1) {
		t.Fatal("MergeDown failed")
	}
	if st.LayerCount() != 1 {
		t.Fatalf("layer count = %d, want 1", st.LayerCount())
	}
	if got := st.GetPixel(0, 0); !colorsClose(got, Red, 0.005) {
		t.Errorf("(0,0) = %+v, want red from merged layer", got)
	}
	if got := st.GetPixel(1, 1); !colorsClose(got, White, 0.005) {
		t.Errorf("(1,1) = %+v, want white from base layer", got)
	}
}

func TestStackCloneDeep(t *testing.T) {
	st := NewLayerStack(2, 2)
	st.SetPixel(0, 0, Red)

	dup := st.Clone()
	dup.SetPixel(0, 0, Blue)

	if got := st.GetPixel(0, 0); !colorsClose(got, Red, 0.005) {
		t.Errorf("clone aliases source: %+v", got)
	}
}
