package pixed

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Export is a pure read boundary: every function here goes through the
// composited pixel state and creates no engine state.

// CompositedPixels returns the flat composited pixel grid of the sprite's
// active frame, suitable for raster export.
func CompositedPixels(s *Sprite) *Pixmap {
	return s.Layers().Composite()
}

// OpaquePixel is one opaque pixel reported as a unit square for vector
// export. Collaborators emit it as a 1×1 rectangle at (X, Y).
type OpaquePixel struct {
	X, Y  int
	Color RGBA
}

// OpaquePixels enumerates every composited pixel with alpha above zero, in
// row-major order. This is the entire vector-export contract: the engine
// has no vector semantics beyond unit squares.
func OpaquePixels(s *Sprite) []OpaquePixel {
	st := s.Layers()
	var out []OpaquePixel
	for y := 0; y < st.Height(); y++ {
		for x := 0; x < st.Width(); x++ {
			c := st.GetPixel(x, y)
			if c.A == 0 {
				continue
			}
			out = append(out, OpaquePixel{X: x, Y: y, Color: c})
		}
	}
	return out
}

// EncodePNG writes the composited sprite as PNG.
func EncodePNG(s *Sprite, w io.Writer) error {
	return png.Encode(w, CompositedPixels(s).ToImage())
}

// ExportPNG saves the composited sprite to a PNG file.
func ExportPNG(s *Sprite, path string) error {
	return CompositedPixels(s).SavePNG(path)
}

// EncodeScaledPNG writes the composited sprite as PNG upscaled by an
// integer factor with nearest-neighbor sampling, keeping pixel edges hard.
// Pixel art is usually published upscaled; a factor below 1 is an error.
func EncodeScaledPNG(s *Sprite, w io.Writer, factor int) error {
	if factor < 1 {
		return fmt.Errorf("scale factor must be >= 1, got %d", factor)
	}
	src := CompositedPixels(s).ToImage()
	if factor == 1 {
		return png.Encode(w, src)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return png.Encode(w, dst)
}

// ExportScaledPNG saves the composited sprite to a PNG file upscaled by an
// integer factor.
func ExportScaledPNG(s *Sprite, path string, factor int) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return EncodeScaledPNG(s, f, factor)
}
