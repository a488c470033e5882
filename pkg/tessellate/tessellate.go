// Package tessellate turns a solid spec into a triangle mesh using a
// geometry kernel. The tessellator is read-only and never mutates the
// spec.
package tessellate

import (
	"fmt"

	"github.com/chazu/xylem/pkg/kernel"
	"github.com/chazu/xylem/pkg/solid"
)

// defaultSegments is used for cylinders whose spec does not name a
// segment count. Only kernels with explicit discretization (manifold)
// consume it; the SDF kernel represents smooth surfaces and ignores
// the value.
const defaultSegments = 32

// Tessellate builds the spec's primitive through the kernel, applies
// its transform chain innermost-first, and tessellates the result.
func Tessellate(spec *solid.Spec, k kernel.Kernel) (*kernel.Mesh, error) {
	if spec == nil {
		return nil, fmt.Errorf("tessellate: nil spec")
	}

	s, err := buildPrimitive(spec.Prim, k)
	if err != nil {
		return nil, err
	}

	for i, t := range spec.Transforms {
		switch t.Op {
		case solid.OpTranslate:
			s = k.Translate(s, t.Vec.X, t.Vec.Y, t.Vec.Z)
		case solid.OpRotate:
			s = k.Rotate(s, t.Vec.X, t.Vec.Y, t.Vec.Z)
		case solid.OpScale:
			if t.Factor == 0 {
				return nil, fmt.Errorf("tessellate: transform %d scales by zero", i)
			}
			s = k.Scale(s, t.Factor)
		default:
			return nil, fmt.Errorf("tessellate: transform %d has unknown op %v", i, t.Op)
		}
	}

	mesh, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed: %w", err)
	}
	return mesh, nil
}

// buildPrimitive creates geometry for the spec's leaf primitive.
func buildPrimitive(p solid.Primitive, k kernel.Kernel) (kernel.Solid, error) {
	switch p.Kind {
	case solid.KindBox:
		if p.Size.X <= 0 || p.Size.Y <= 0 || p.Size.Z <= 0 {
			return nil, fmt.Errorf("tessellate: box size %v must be positive", p.Size)
		}
		return k.Box(p.Size.X, p.Size.Y, p.Size.Z), nil

	case solid.KindSphere:
		if p.Radius <= 0 {
			return nil, fmt.Errorf("tessellate: sphere radius %v must be positive", p.Radius)
		}
		return k.Sphere(p.Radius), nil

	case solid.KindCylinder:
		if p.Height <= 0 || p.Radius <= 0 {
			return nil, fmt.Errorf("tessellate: cylinder height %v / radius %v must be positive", p.Height, p.Radius)
		}
		segments := p.Segments
		if segments == 0 {
			segments = defaultSegments
		}
		return k.Cylinder(p.Height, p.Radius, segments), nil

	default:
		return nil, fmt.Errorf("tessellate: unknown primitive kind %v", p.Kind)
	}
}
