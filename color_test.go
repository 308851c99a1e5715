package pixed

import (
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that RGBA converts to color.Color.
var _ color.Color = RGBA{}.Color()

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want RGBA
	}{
		{"short rgb", "#F00", Red},
		{"short rgba", "F00F", Red},
		{"long rgb", "#00FF00", Green},
		{"long rgba", "0000FFFF", Blue},
		{"half alpha", "#FF000080", RGBA{R: 1, G: 0, B: 0, A: 128.0 / 255}},
		{"invalid length", "#12", RGBA{R: 0, G: 0, B: 0, A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hex(tt.hex)
			if !colorsClose(got, tt.want, 0.005) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		want float64
	}{
		{"identical", Red, Red, 0},
		{"max distance", White, Transparent, 100},
		{"single channel", RGBA{R: 1, A: 1}, RGBA{R: 0, A: 1}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Distance(tt.b)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Distance = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := RGBA{R: 0.2, G: 0.7, B: 0.1, A: 0.9}
	b := RGBA{R: 0.9, G: 0.1, B: 0.5, A: 0.3}
	if d1, d2 := a.Distance(b), b.Distance(a); d1 != d2 {
		t.Errorf("Distance not symmetric: %.6f vs %.6f", d1, d2)
	}
}

// TestChannelClamping verifies the buffer invariant: out-of-range channel
// values are clamped on write, never stored raw.
func TestChannelClamping(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(0, 0, RGBA{R: 2.5, G: -1, B: 0.5, A: 3})

	data := pm.Data()
	if data[0] != 255 || data[1] != 0 || data[3] != 255 {
		t.Errorf("channels not clamped: got (%d, %d, %d, %d)",
			data[0], data[1], data[2], data[3])
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if !colorsClose(got, want, 0.0001) {
		t.Errorf("Lerp = %+v, want %+v", got, want)
	}
}

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.25)
	if c.R != 1 || c.A != 0.25 {
		t.Errorf("WithAlpha = %+v", c)
	}
}

func TestByteRoundTrip(t *testing.T) {
	orig := RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8}
	r, g, b, a := orig.toBytes()
	back := fromBytes(r, g, b, a)
	if !colorsClose(orig, back, 1.0/255) {
		t.Errorf("byte round trip drifted: %+v -> %+v", orig, back)
	}
}

// colorsClose reports whether two colors agree within tol per channel.
func colorsClose(a, b RGBA, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol &&
		math.Abs(a.G-b.G) <= tol &&
		math.Abs(a.B-b.B) <= tol &&
		math.Abs(a.A-b.A) <= tol
}
