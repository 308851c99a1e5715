package pixed

// BlendMode identifies how a layer is composited onto the layers below it.
//
// Only BlendNormal has an implementation; the remaining modes are reserved
// tags that round-trip through serialization but composite exactly like
// BlendNormal. They exist so documents produced by future versions keep
// their layer metadata when opened here.
type BlendMode int

const (
	// BlendNormal is standard source-over alpha compositing.
	BlendNormal BlendMode = iota
	// BlendMultiply is reserved; composites as BlendNormal.
	BlendMultiply
	// BlendScreen is reserved; composites as BlendNormal.
	BlendScreen
	// BlendOverlay is reserved; composites as BlendNormal.
	BlendOverlay
)

// String returns the serialized name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	default:
		return "normal"
	}
}

// BlendModeFromString parses a serialized blend mode name.
// Unknown names map to BlendNormal.
func BlendModeFromString(s string) BlendMode {
	switch s {
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "overlay":
		return BlendOverlay
	default:
		return BlendNormal
	}
}

// Over blends src over dst using the standard "over" operator on
// non-premultiplied colors:
//
//	outA = srcA + dstA*(1-srcA)
//	outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA   when outA > 0
//
// When outA is zero every channel is zero. This single function is the
// source of truth for every visual read in the engine: compositing,
// brush blending and selection paste all go through it.
func Over(src, dst RGBA) RGBA {
	srcA := src.A
	dstA := dst.A
	invSrcA := 1.0 - srcA

	outA := srcA + dstA*invSrcA
	if outA == 0 {
		return RGBA{R: 0, G: 0, B: 0, A: 0}
	}

	outR := (src.R*srcA + dst.R*dstA*invSrcA) / outA
	outG := (src.G*srcA + dst.G*dstA*invSrcA) / outA
	outB := (src.B*srcA + dst.B*dstA*invSrcA) / outA

	return RGBA{
		R: outR,
		G: outG,
		B: outB,
		A: outA,
	}
}
