// Package kernel defines the abstract geometry kernel interface behind
// which solid construction is delegated. Implementations (sdfx,
// manifold) build primitives and tessellate them into triangle meshes;
// the viewer itself does no solid modeling.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds and tessellates the single solid the viewer displays.
// The kernel abstraction allows swapping backends without changing the
// rest of the system.
type Kernel interface {
	// Primitives, centered at the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Scale(s Solid, factor float64) Solid   // uniform

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
