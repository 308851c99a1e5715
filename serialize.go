package pixed

import (
	"time"

	"github.com/google/uuid"
)

// SpriteData is the plain structural form of a sprite, consumed by storage
// collaborators. It carries no behavior; both JSON and YAML storage formats
// map onto it directly.
type SpriteData struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Width       int         `json:"width" yaml:"width"`
	Height      int         `json:"height" yaml:"height"`
	Created     time.Time   `json:"created" yaml:"created"`
	Modified    time.Time   `json:"modified" yaml:"modified"`
	ActiveFrame int         `json:"active_frame" yaml:"active_frame"`
	Frames      []FrameData `json:"frames" yaml:"frames"`
}

// FrameData is the structural form of one frame.
type FrameData struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Width       int         `json:"width" yaml:"width"`
	Height      int         `json:"height" yaml:"height"`
	ActiveLayer int         `json:"active_layer" yaml:"active_layer"`
	Layers      []LayerData `json:"layers" yaml:"layers"`
}

// LayerData is the structural form of one layer.
type LayerData struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Visible   bool      `json:"visible" yaml:"visible"`
	Opacity   float64   `json:"opacity" yaml:"opacity"`
	Locked    bool      `json:"locked" yaml:"locked"`
	BlendMode string    `json:"blend_mode" yaml:"blend_mode"`
	Pixels    PixelData `json:"pixels" yaml:"pixels"`
}

// PixelData carries a layer's pixel payload in one of two interchangeable
// forms: a flat RGBA byte sequence or nested per-row byte slices. Exactly
// one form should be set; when both are present the flat form wins.
//
// The engine itself always stores pixels flat; the nested form exists only
// so older on-disk documents keep loading.
type PixelData struct {
	Flat []uint8   `json:"flat,omitempty" yaml:"flat,omitempty"`
	Rows [][]uint8 `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// flatten returns the payload as a single flat byte slice and reports
// whether its length matches the expected width*height*4 shape.
func (p PixelData) flatten(width, height int) ([]uint8, bool) {
	want := width * height * 4
	if p.Flat != nil {
		if len(p.Flat) != want {
			return nil, false
		}
		out := make([]uint8, want)
		copy(out, p.Flat)
		return out, true
	}
	if p.Rows != nil {
		if len(p.Rows) != height {
			return nil, false
		}
		out := make([]uint8, 0, want)
		for _, row := range p.Rows {
			if len(row) != width*4 {
				return nil, false
			}
			out = append(out, row...)
		}
		return out, true
	}
	return nil, false
}

// ToRows converts a flat payload to the nested per-row form. The receiver
// is not modified.
func (p PixelData) ToRows(width, height int) PixelData {
	flat, ok := p.flatten(width, height)
	if !ok {
		return PixelData{}
	}
	rows := make([][]uint8, height)
	stride := width * 4
	for y := 0; y < height; y++ {
		rows[y] = flat[y*stride : (y+1)*stride : (y+1)*stride]
	}
	return PixelData{Rows: rows}
}

// Serialize converts a sprite into its plain structural form. Pixel
// payloads are emitted flat; every buffer is copied, never aliased.
func Serialize(s *Sprite) SpriteData {
	out := SpriteData{
		ID:          s.id,
		Name:        s.name,
		Width:       s.width,
		Height:      s.height,
		Created:     s.created,
		Modified:    s.modified,
		ActiveFrame: s.active,
		Frames:      make([]FrameData, len(s.frames)),
	}
	for i, f := range s.frames {
		out.Frames[i] = serializeFrame(f)
	}
	return out
}

func serializeFrame(f *Frame) FrameData {
	st := f.stack
	fd := FrameData{
		ID:          f.id,
		Name:        f.name,
		Width:       st.Width(),
		Height:      st.Height(),
		ActiveLayer: st.ActiveIndex(),
		Layers:      make([]LayerData, st.LayerCount()),
	}
	for i := 0; i < st.LayerCount(); i++ {
		l := st.Layer(i)
		pixels := make([]uint8, len(l.pixmap.Data()))
		copy(pixels, l.pixmap.Data())
		fd.Layers[i] = LayerData{
			ID:        l.id,
			Name:      l.name,
			Visible:   l.visible,
			Opacity:   l.opacity,
			Locked:    l.locked,
			BlendMode: l.mode.String(),
			Pixels:    PixelData{Flat: pixels},
		}
	}
	return fd
}

// Deserialize reconstructs a sprite from its structural form.
//
// Malformed input is absorbed, never propagated: a pixel payload whose
// shape does not match the declared dimensions is replaced with a fully
// transparent buffer of the correct size and a warning is logged; missing
// identifiers are regenerated; out-of-range indices are clamped. The
// result is always a structurally valid sprite.
func Deserialize(d SpriteData) *Sprite {
	width, height := d.Width, d.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	s := &Sprite{
		id:       d.ID,
		name:     d.Name,
		width:    width,
		height:   height,
		created:  d.Created,
		modified: d.Modified,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.created.IsZero() {
		s.created = time.Now()
	}
	if s.modified.IsZero() {
		s.modified = s.created
	}

	if len(d.Frames) == 0 {
		s.frames = []*Frame{NewFrame("Frame 1", width, height)}
		return s
	}

	s.frames = make([]*Frame, len(d.Frames))
	for i, fd := range d.Frames {
		s.frames[i] = deserializeFrame(fd, width, height)
	}
	s.active = clampIndex(d.ActiveFrame, len(s.frames))
	s.width = s.frames[s.active].Width()
	s.height = s.frames[s.active].Height()
	return s
}

func deserializeFrame(fd FrameData, spriteW, spriteH int) *Frame {
	w, h := fd.Width, fd.Height
	if w < 1 || h < 1 {
		w, h = spriteW, spriteH
	}

	f := &Frame{
		id:   fd.ID,
		name: fd.Name,
	}
	if f.id == "" {
		f.id = uuid.NewString()
	}

	st := &LayerStack{width: w, height: h}
	if len(fd.Layers) == 0 {
		st.layers = []*Layer{NewLayer("Layer 1", w, h)}
	} else {
		st.layers = make([]*Layer, len(fd.Layers))
		for i, ld := range fd.Layers {
			st.layers[i] = deserializeLayer(ld, w, h)
		}
	}
	st.active = clampIndex(fd.ActiveLayer, len(st.layers))
	f.stack = st
	return f
}

func deserializeLayer(ld LayerData, w, h int) *Layer {
	l := NewLayer(ld.Name, w, h)
	if ld.ID != "" {
		l.id = ld.ID
	}
	l.visible = ld.Visible
	l.opacity = clampUnit(ld.Opacity)
	l.locked = ld.Locked
	l.mode = BlendModeFromString(ld.BlendMode)

	flat, ok := ld.Pixels.flatten(w, h)
	if !ok {
		// Substituting a blank buffer beats propagating a corrupt one.
		Logger().Warn("layer pixel data has wrong shape, substituting transparent buffer",
			"layer", ld.Name, "width", w, "height", h)
		return l
	}
	copy(l.pixmap.data, flat)
	return l
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
