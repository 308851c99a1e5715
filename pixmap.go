package pixed

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a fixed-shape rectangular pixel buffer for one layer.
// Storage is always a flat row-major byte slice in R,G,B,A channel order,
// 4 bytes per pixel; len(data) == width*height*4 at all times. Changing
// dimensions means allocating a new Pixmap, never resizing in place.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new fully transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// InBounds reports whether (x, y) addresses a pixel inside the buffer.
func (p *Pixmap) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// SetPixel sets the color of a single pixel. Out-of-range coordinates are
// a silent no-op; pointer input routinely lands off-canvas.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if !p.InBounds(x, y) {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3] = c.toBytes()
}

// GetPixel returns the color of a single pixel.
// Out-of-range coordinates return Transparent, never an error.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !p.InBounds(x, y) {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return fromBytes(p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3])
}

// pixelBytes returns the raw channel bytes at an in-bounds coordinate.
// Callers must bounds-check first. Used where exact byte equality matters
// (flood fill with zero tolerance).
func (p *Pixmap) pixelBytes(x, y int) (r, g, b, a uint8) {
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r, g, b, a := c.toBytes()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// FillRect fills the intersection of r with the buffer bounds.
func (p *Pixmap) FillRect(r Rect, c RGBA) {
	r = r.Normalized().Clip(p.width, p.height)
	if r.Empty() {
		return
	}
	for y := r.Top; y <= r.Bottom; y++ {
		for x := r.Left; x <= r.Right; x++ {
			p.SetPixel(x, y, c)
		}
	}
}

// Clone returns a deep copy sharing no storage with the receiver.
func (p *Pixmap) Clone() *Pixmap {
	out := &Pixmap{
		width:  p.width,
		height: p.height,
		data:   make([]uint8, len(p.data)),
	}
	copy(out.data, p.data)
	return out
}

// Region copies the pixels under r (clipped to the buffer) into a new
// detached pixmap of r's normalized size. Cells of r outside the buffer
// come back transparent.
func (p *Pixmap) Region(r Rect) *Pixmap {
	r = r.Normalized()
	out := NewPixmap(r.Width(), r.Height())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.SetPixel(x, y, p.GetPixel(r.Left+x, r.Top+y))
		}
	}
	return out
}

// SetRegion writes src at (x, y), clipped to the buffer bounds.
// When skipTransparent is true, fully transparent source pixels leave the
// destination untouched.
func (p *Pixmap) SetRegion(x, y int, src *Pixmap, skipTransparent bool) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			c := src.GetPixel(sx, sy)
			if skipTransparent && c.A == 0 {
				continue
			}
			p.SetPixel(x+sx, y+sy, c)
		}
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			pm.SetPixel(x, y, FromColor(c))
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
