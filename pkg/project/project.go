// Package project maps a wireframe through the viewer state onto the
// canvas. Projection is a pure function of its inputs and emits exactly
// one screen segment per edge, in edge order.
package project

import (
	"github.com/chazu/xylem/pkg/view"
	"github.com/chazu/xylem/pkg/wireframe"
	"github.com/go-gl/mathgl/mgl32"
)

// Dist is the fixed eye distance of the perspective divide. A rotated
// vertex with z approaching Dist blows the divide up; the displayed
// solids stay within about ±2 units so that never happens in practice,
// and the singularity is deliberately left unguarded.
const Dist float32 = 4.0

// Rect is the canvas area in screen pixels.
type Rect struct {
	Center mgl32.Vec2
	W, H   float32
}

// Segment is one projected edge, ready to be stroked as a straight line.
type Segment struct {
	A, B mgl32.Vec2
}

// Project maps every edge of the frame onto the canvas using the
// current orientation, pan, and zoom. Vertices are projected once and
// shared by the edges that reference them.
func Project(s *view.State, canvas Rect, f wireframe.Frame) []Segment {
	size := min(canvas.W, canvas.H) * 0.25 * s.Zoom

	pts := make([]mgl32.Vec2, len(f.Vertices))
	for i, v := range f.Vertices {
		rotated := s.Orientation.Rotate(v)
		scale := Dist / (Dist - rotated.Z())
		// Screen y grows downward, world y grows upward.
		offset := mgl32.Vec2{
			rotated.X() * scale * size,
			-rotated.Y() * scale * size,
		}.Add(s.Pan)
		pts[i] = canvas.Center.Add(offset)
	}

	segs := make([]Segment, len(f.Edges))
	for i, e := range f.Edges {
		segs[i] = Segment{A: pts[e[0]], B: pts[e[1]]}
	}
	return segs
}
