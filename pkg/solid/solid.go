// Package solid describes the one solid the viewer displays: a single
// primitive plus a chain of transforms applied outward in order. It is
// a description, not a scene graph; there is exactly one leaf and no
// grouping.
package solid

// Vec3 is a 3D vector in model units (or Euler degrees for rotations).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Kind enumerates the primitive kinds a spec can name.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindCylinder
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	}
	return "unknown"
}

// Primitive is the leaf of a spec. Only the fields relevant to its
// Kind are meaningful: Size for boxes, Radius for spheres, and
// Height/Radius/Segments for cylinders.
type Primitive struct {
	Kind     Kind
	Size     Vec3
	Radius   float64
	Height   float64
	Segments int
}

// OpKind enumerates transform operations.
type OpKind int

const (
	OpTranslate OpKind = iota
	OpRotate
	OpScale
)

func (o OpKind) String() string {
	switch o {
	case OpTranslate:
		return "translate"
	case OpRotate:
		return "rotate"
	case OpScale:
		return "scale"
	}
	return "unknown"
}

// Transform is one step of the transform chain. Vec carries the
// translation offset or the rotation Euler angles in degrees; Factor
// carries the uniform scale.
type Transform struct {
	Op     OpKind
	Vec    Vec3
	Factor float64
}

// Spec is the immutable description of the displayed solid: the
// primitive first, then Transforms applied in slice order.
type Spec struct {
	Prim       Primitive
	Transforms []Transform
}

// With returns a copy of the spec with one more transform appended.
// The receiver is not modified; transform chains share no backing array
// with their parents.
func (s *Spec) With(t Transform) *Spec {
	chain := make([]Transform, len(s.Transforms), len(s.Transforms)+1)
	copy(chain, s.Transforms)
	return &Spec{Prim: s.Prim, Transforms: append(chain, t)}
}
