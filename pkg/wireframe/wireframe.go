// Package wireframe builds the edge set of the displayed solid. Edges
// are undirected and deduplicated by snapping endpoints to a fixed
// decimal grid, so a segment shared by adjacent faces is kept once no
// matter which traversal direction each face used.
package wireframe

import (
	"math"

	"github.com/chazu/xylem/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// snapScale is 10^5: endpoint coordinates are canonicalized to five
// decimal digits before deduplication. Tessellated meshes repeat every
// vertex once per incident face, with small float differences; snapping
// collapses those copies.
const snapScale = 1e5

// Frame is an indexed set of undirected edges. It is built once at
// startup and read every frame by the projector; it is never mutated
// after construction.
type Frame struct {
	Vertices []mgl32.Vec3
	Edges    [][2]int // index pairs into Vertices, low index first
}

// Cube returns the hardcoded unit cube wireframe: 8 vertices at ±1 and
// 12 edges.
func Cube() Frame {
	return Frame{
		Vertices: []mgl32.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Edges: [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {0, 3},
			{4, 5}, {5, 6}, {6, 7}, {4, 7},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		},
	}
}

// Icosahedron returns the regular icosahedron wireframe: 12 vertices on
// three golden-ratio rectangles and 30 edges. The 20 triangular faces
// go through the same dedup path as tessellated meshes, so every edge
// shared by two faces is kept once.
func Icosahedron() Frame {
	p := float32(math.Phi)
	verts := []mgl32.Vec3{
		{-1, p, 0}, {1, p, 0}, {-1, -p, 0}, {1, -p, 0},
		{0, -1, p}, {0, 1, p}, {0, -1, -p}, {0, 1, -p},
		{p, 0, -1}, {p, 0, 1}, {-p, 0, -1}, {-p, 0, 1},
	}
	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	faces := make([][]mgl32.Vec3, len(tris))
	for i, tri := range tris {
		faces[i] = []mgl32.Vec3{verts[tri[0]], verts[tri[1]], verts[tri[2]]}
	}
	return FromFaces(faces)
}

// FromFaces builds a wireframe from a polygon soup, one vertex list per
// face in boundary order. Every face's boundary edges are extracted and
// deduplicated.
func FromFaces(faces [][]mgl32.Vec3) Frame {
	b := newBuilder()
	for _, f := range faces {
		b.face(f)
	}
	return b.frame
}

// FromMesh extracts the boundary edges of every triangle in a kernel
// mesh. Interior edges shared by two triangles appear exactly once in
// the result.
func FromMesh(m *kernel.Mesh) Frame {
	b := newBuilder()
	face := make([]mgl32.Vec3, 3)
	for t := 0; t < m.TriangleCount(); t++ {
		for c := 0; c < 3; c++ {
			vi := int(m.Indices[t*3+c])
			face[c] = mgl32.Vec3{
				m.Vertices[vi*3+0],
				m.Vertices[vi*3+1],
				m.Vertices[vi*3+2],
			}
		}
		b.face(face)
	}
	return b.frame
}

// builder accumulates deduplicated vertices and edges. Vertex indices
// are assigned in first-seen order and edges are recorded in first-seen
// order, so the output is deterministic.
type builder struct {
	frame Frame
	byKey map[[3]int64]int
	seen  map[[2]int]struct{}
}

func newBuilder() *builder {
	return &builder{
		byKey: make(map[[3]int64]int),
		seen:  make(map[[2]int]struct{}),
	}
}

// face adds the boundary edges of one polygon.
func (b *builder) face(pts []mgl32.Vec3) {
	if len(pts) < 2 {
		return
	}
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = b.vertex(p)
	}
	for i := range idx {
		b.edge(idx[i], idx[(i+1)%len(idx)])
	}
}

// vertex canonicalizes a point to the snap grid and returns its index,
// allocating one on first sight.
func (b *builder) vertex(v mgl32.Vec3) int {
	k := [3]int64{snap(v.X()), snap(v.Y()), snap(v.Z())}
	if i, ok := b.byKey[k]; ok {
		return i
	}
	i := len(b.frame.Vertices)
	b.byKey[k] = i
	b.frame.Vertices = append(b.frame.Vertices, v)
	return i
}

// edge records an undirected edge, ordering the pair so (a,b) and (b,a)
// collapse to the same key. Edges degenerated by snapping are dropped.
func (b *builder) edge(i, j int) {
	if i == j {
		return
	}
	if j < i {
		i, j = j, i
	}
	k := [2]int{i, j}
	if _, ok := b.seen[k]; ok {
		return
	}
	b.seen[k] = struct{}{}
	b.frame.Edges = append(b.frame.Edges, k)
}

func snap(f float32) int64 {
	return int64(math.Round(float64(f) * snapScale))
}
