package pixed

import (
	"encoding/json"
	"testing"
)

// TestSerializeRoundTrip verifies the full structural round trip: identical
// dimensions, frame and layer structure, metadata, and every pixel byte.
func TestSerializeRoundTrip(t *testing.T) {
	sp := NewSprite(5, 4, "round-trip")
	st := sp.Layers()
	st.SetPixel(0, 0, Red)
	st.SetPixel(4, 3, RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8})
	st.AddLayer("shade")
	st.ActiveLayer().SetOpacity(0.5)
	st.ActiveLayer().SetVisible(false)
	st.SetActiveIndex(0)
	sp.AddFrame("Frame 2")
	sp.SetActiveFrame(0)

	got := Deserialize(Serialize(sp))

	if got.ID() != sp.ID() || got.Name() != sp.Name() {
		t.Error("identity fields lost in round trip")
	}
	if got.Width() != 5 || got.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, want 5x4", got.Width(), got.Height())
	}
	if got.FrameCount() != 2 || got.ActiveFrameIndex() != 0 {
		t.Fatalf("frames = %d active = %d, want 2/0", got.FrameCount(), got.ActiveFrameIndex())
	}

	gs := got.Layers()
	if gs.LayerCount() != 2 {
		t.Fatalf("layer count = %d, want 2", gs.LayerCount())
	}
	if gs.Layer(1).Opacity() != 0.5 || gs.Layer(1).Visible() {
		t.Error("layer metadata lost in round trip")
	}

	for i := 0; i < 2; i++ {
		want := st.Layer(i).Pixmap().Data()
		have := gs.Layer(i).Pixmap().Data()
		for j := range want {
			if want[j] != have[j] {
				t.Fatalf("layer %d pixel byte %d = %d, want %d", i, j, have[j], want[j])
			}
		}
	}
}

// TestSerializeCopiesBuffers verifies the structural form never aliases the
// live sprite's pixel memory.
func TestSerializeCopiesBuffers(t *testing.T) {
	sp := NewSprite(2, 2, "alias")
	sp.Layers().SetPixel(0, 0, Red)

	d := Serialize(sp)
	sp.Layers().SetPixel(0, 0, Blue)

	got := Deserialize(d)
	if c := got.Layers().GetPixel(0, 0); !colorsClose(c, Red, 0.005) {
		t.Errorf("serialized data aliases the live buffer: %+v", c)
	}
}

// TestDeserializeRowsForm verifies the nested per-row pixel form loads the
// same bytes as the flat form.
func TestDeserializeRowsForm(t *testing.T) {
	sp := NewSprite(3, 2, "rows")
	sp.Layers().SetPixel(1, 0, Green)
	sp.Layers().SetPixel(2, 1, Red)

	d := Serialize(sp)
	flat := d.Frames[0].Layers[0].Pixels
	d.Frames[0].Layers[0].Pixels = flat.ToRows(3, 2)

	got := Deserialize(d)
	if c := got.Layers().GetPixel(1, 0); !colorsClose(c, Green, 0.005) {
		t.Errorf("(1,0) = %+v, want green", c)
	}
	if c := got.Layers().GetPixel(2, 1); !colorsClose(c, Red, 0.005) {
		t.Errorf("(2,1) = %+v, want red", c)
	}
}

// TestDeserializeBadPixelShape verifies a payload whose length does not
// match the declared dimensions is replaced by a transparent buffer of the
// declared size instead of failing the whole load.
func TestDeserializeBadPixelShape(t *testing.T) {
	d := Serialize(NewSprite(4, 4, "bad"))
	d.Frames[0].Layers[0].Pixels = PixelData{Flat: []uint8{1, 2, 3}}

	got := Deserialize(d)
	if got.Width() != 4 || got.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, want declared 4x4", got.Width(), got.Height())
	}
	pm := got.Layers().Layer(0).Pixmap()
	if len(pm.Data()) != 4*4*4 {
		t.Fatalf("substitute buffer has %d bytes, want 64", len(pm.Data()))
	}
	for i, b := range pm.Data() {
		if b != 0 {
			t.Fatalf("substitute buffer not transparent at byte %d", i)
		}
	}
}

func TestDeserializeClampsAndRegenerates(t *testing.T) {
	d := Serialize(NewSprite(2, 2, "fixup"))
	d.ID = ""
	d.ActiveFrame = 99
	d.Frames[0].Layers[0].ID = ""
	d.Frames[0].Layers[0].Opacity = 3.5
	d.Frames[0].ActiveLayer = -4

	got := Deserialize(d)
	if got.ID() == "" {
		t.Error("missing sprite identifier must be regenerated")
	}
	if got.ActiveFrameIndex() != 0 {
		t.Errorf("active frame = %d, want clamped to 0", got.ActiveFrameIndex())
	}
	if got.Layers().ActiveIndex() != 0 {
		t.Errorf("active layer = %d, want clamped to 0", got.Layers().ActiveIndex())
	}
	if got.Layers().Layer(0).Opacity() != 1 {
		t.Errorf("opacity = %v, want clamped to 1", got.Layers().Layer(0).Opacity())
	}
	if got.Layers().Layer(0).ID() == "" {
		t.Error("missing layer identifier must be regenerated")
	}
}

func TestDeserializeEmptyDocument(t *testing.T) {
	got := Deserialize(SpriteData{})
	if got.Width() != 1 || got.Height() != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1 floor", got.Width(), got.Height())
	}
	if got.FrameCount() != 1 || got.Layers().LayerCount() != 1 {
		t.Error("empty document must produce one frame with one layer")
	}
}

// TestSerializeJSONRoundTrip pushes the structural form through JSON, the
// on-disk document format.
func TestSerializeJSONRoundTrip(t *testing.T) {
	sp := NewSprite(3, 3, "json")
	sp.Layers().SetPixel(1, 1, Blue)

	raw, err := json.Marshal(Serialize(sp))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d SpriteData
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := Deserialize(d)
	if c := got.Layers().GetPixel(1, 1); !colorsClose(c, Blue, 0.005) {
		t.Errorf("(1,1) = %+v, want blue", c)
	}
}
