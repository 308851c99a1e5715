// Package pixed is the editing core of a layered pixel-art editor.
//
// # Overview
//
// pixed owns the data model of an editable artwork (sprites, frames,
// layers, pixel buffers) and the algorithms that mutate it: flood fill,
// freehand stroke rasterization (brush, dither, mirrored draw), rectangular
// selection with move and integer-ratio scaling, and snapshot-based
// undo/redo. It renders nothing to a screen: composited pixel data flows
// out through [LayerStack.GetPixel] and the export helpers, and any
// on-screen drawing is the caller's job.
//
// # Quick Start
//
//	import "github.com/dotpix/pixed"
//
//	// Create an editing session with a blank 64x64 sprite.
//	s := pixed.NewSession(64, 64, "untitled")
//
//	// Draw a stroke with the brush tool.
//	s.SetTool(pixed.NewBrushTool(pixed.BrushParams{Size: 3, Color: pixed.Red}))
//	s.PointerDown(10, 10, pixed.Modifiers{})
//	s.PointerDrag(40, 40, 10, 10, pixed.Modifiers{})
//	s.PointerUp(40, 40, pixed.Modifiers{})
//
//	// Undo it, redo it.
//	s.Undo()
//	s.Redo()
//
//	// Save the composited result.
//	pixed.ExportPNG(s.Sprite(), "out.png")
//
// # Architecture
//
// The package is organized around a strict ownership chain: a [Session]
// owns one [Sprite], a Sprite owns its [Frame] list, each Frame owns a
// [LayerStack], each [Layer] owns a [Pixmap]. Tools ([BrushTool],
// [FillTool], [SelectionTool], ...) receive pointer events through a
// uniform five-event contract and mutate the active layer stack directly;
// the Session groups each gesture into exactly one [History] entry.
//
// # Coordinate System
//
// Sprite-space integer pixel coordinates: origin (0,0) at the top-left,
// X increases right, Y increases down. Out-of-range coordinates are never
// errors: reads return transparent, writes are silent no-ops.
//
// # Concurrency
//
// The engine is single-threaded by design. A Session and everything it
// owns must be driven from one goroutine; callers that hand pixel data to
// asynchronous I/O must clone it first (see [Sprite.Clone] and
// [Pixmap.Clone]).
package pixed

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
