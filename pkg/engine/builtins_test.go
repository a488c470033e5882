package engine

import (
	"testing"

	"github.com/chazu/xylem/pkg/solid"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(sphere :r 1.5)`,
			expect: `(sphere "__kw_r" 1.5)`,
		},
		{
			name:   "multiple keywords",
			input:  `(box :x 2 :y 1)`,
			expect: `(box "__kw_x" 2 "__kw_y" 1)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def half-size 1)`,
			expect: `(def half_size 1)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:corner-radius`,
			expect: `"__kw_corner-radius"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// evalSpec evaluates source and fails the test unless it yields a spec.
func evalSpec(t *testing.T, source string) *solid.Spec {
	t.Helper()
	eng := NewEngine()
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if spec == nil {
		t.Fatal("expected non-nil spec")
	}
	return spec
}

// evalFails evaluates source and fails the test unless evaluation produced
// eval errors.
func evalFails(t *testing.T, source string) []EvalError {
	t.Helper()
	eng := NewEngine()
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	return evalErrs
}

// ---------------------------------------------------------------------------
// Primitive builtins
// ---------------------------------------------------------------------------

func TestCubeDefaultSize(t *testing.T) {
	spec := evalSpec(t, `(show (cube))`)
	if spec.Prim.Kind != solid.KindBox {
		t.Fatalf("expected box, got %s", spec.Prim.Kind)
	}
	if spec.Prim.Size != (solid.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("expected size (2 2 2), got %+v", spec.Prim.Size)
	}
	if len(spec.Transforms) != 0 {
		t.Errorf("expected no transforms, got %d", len(spec.Transforms))
	}
}

func TestCubeKeywordSize(t *testing.T) {
	spec := evalSpec(t, `(show (cube :size 3))`)
	if spec.Prim.Size != (solid.Vec3{X: 3, Y: 3, Z: 3}) {
		t.Errorf("expected size (3 3 3), got %+v", spec.Prim.Size)
	}
}

func TestBoxKeywordDimensions(t *testing.T) {
	spec := evalSpec(t, `(show (box :x 4 :y 2 :z 1))`)
	if spec.Prim.Kind != solid.KindBox {
		t.Fatalf("expected box, got %s", spec.Prim.Kind)
	}
	if spec.Prim.Size != (solid.Vec3{X: 4, Y: 2, Z: 1}) {
		t.Errorf("expected size (4 2 1), got %+v", spec.Prim.Size)
	}
}

func TestBoxPositionalDimensions(t *testing.T) {
	spec := evalSpec(t, `(show (box 4 2 1))`)
	if spec.Prim.Size != (solid.Vec3{X: 4, Y: 2, Z: 1}) {
		t.Errorf("expected size (4 2 1), got %+v", spec.Prim.Size)
	}
}

func TestBoxMissingDimension(t *testing.T) {
	evalFails(t, `(show (box :x 4 :y 2))`)
}

func TestSphere(t *testing.T) {
	spec := evalSpec(t, `(show (sphere :r 1.5))`)
	if spec.Prim.Kind != solid.KindSphere {
		t.Fatalf("expected sphere, got %s", spec.Prim.Kind)
	}
	if spec.Prim.Radius != 1.5 {
		t.Errorf("expected radius 1.5, got %f", spec.Prim.Radius)
	}
}

func TestSphereMissingRadius(t *testing.T) {
	evalFails(t, `(show (sphere))`)
}

func TestCylinder(t *testing.T) {
	spec := evalSpec(t, `(show (cylinder :h 2 :r 0.5 :segments 48))`)
	if spec.Prim.Kind != solid.KindCylinder {
		t.Fatalf("expected cylinder, got %s", spec.Prim.Kind)
	}
	if spec.Prim.Height != 2 {
		t.Errorf("expected height 2, got %f", spec.Prim.Height)
	}
	if spec.Prim.Radius != 0.5 {
		t.Errorf("expected radius 0.5, got %f", spec.Prim.Radius)
	}
	if spec.Prim.Segments != 48 {
		t.Errorf("expected 48 segments, got %d", spec.Prim.Segments)
	}
}

func TestCylinderPositionalDefaultsSegments(t *testing.T) {
	spec := evalSpec(t, `(show (cylinder 2 0.5))`)
	if spec.Prim.Segments != 0 {
		t.Errorf("expected unset segments (0), got %d", spec.Prim.Segments)
	}
}

func TestWrongArgumentType(t *testing.T) {
	evalFails(t, `(show (sphere :r "big"))`)
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

func TestMoveWithVec3(t *testing.T) {
	spec := evalSpec(t, `(show (move (cube) (vec3 1 2 3)))`)
	if len(spec.Transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(spec.Transforms))
	}
	tr := spec.Transforms[0]
	if tr.Op != solid.OpTranslate {
		t.Errorf("expected translate, got %s", tr.Op)
	}
	if tr.Vec != (solid.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected offset (1 2 3), got %+v", tr.Vec)
	}
}

func TestMoveWithNumbers(t *testing.T) {
	spec := evalSpec(t, `(show (move (cube) 1 2 3))`)
	if len(spec.Transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(spec.Transforms))
	}
	if spec.Transforms[0].Vec != (solid.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected offset (1 2 3), got %+v", spec.Transforms[0].Vec)
	}
}

func TestSpin(t *testing.T) {
	spec := evalSpec(t, `(show (spin (box 2 1 1) 0 0 90))`)
	if len(spec.Transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(spec.Transforms))
	}
	tr := spec.Transforms[0]
	if tr.Op != solid.OpRotate {
		t.Errorf("expected rotate, got %s", tr.Op)
	}
	if tr.Vec != (solid.Vec3{Z: 90}) {
		t.Errorf("expected angles (0 0 90), got %+v", tr.Vec)
	}
}

func TestScale(t *testing.T) {
	spec := evalSpec(t, `(show (scale (sphere 1) 2.5))`)
	if len(spec.Transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(spec.Transforms))
	}
	tr := spec.Transforms[0]
	if tr.Op != solid.OpScale {
		t.Errorf("expected scale, got %s", tr.Op)
	}
	if tr.Factor != 2.5 {
		t.Errorf("expected factor 2.5, got %f", tr.Factor)
	}
}

func TestScaleZeroFactor(t *testing.T) {
	evalFails(t, `(show (scale (cube) 0))`)
}

func TestTransformChainOrder(t *testing.T) {
	spec := evalSpec(t, `(show (move (spin (scale (box 2 1 1) 2) 0 0 90) 1 0 0))`)
	if len(spec.Transforms) != 3 {
		t.Fatalf("expected 3 transforms, got %d", len(spec.Transforms))
	}
	want := []solid.OpKind{solid.OpScale, solid.OpRotate, solid.OpTranslate}
	for i, op := range want {
		if spec.Transforms[i].Op != op {
			t.Errorf("transform %d: expected %s, got %s", i, op, spec.Transforms[i].Op)
		}
	}
}

func TestTransformsDoNotMutateShared(t *testing.T) {
	// Two transforms applied to the same base must not clobber each other.
	source := `
(def base (cube))
(def a (move base 1 0 0))
(def b (spin base 0 0 45))
(show a)
`
	spec := evalSpec(t, source)
	if len(spec.Transforms) != 1 {
		t.Fatalf("expected 1 transform, got %d", len(spec.Transforms))
	}
	if spec.Transforms[0].Op != solid.OpTranslate {
		t.Errorf("expected translate, got %s", spec.Transforms[0].Op)
	}
}

// ---------------------------------------------------------------------------
// show semantics
// ---------------------------------------------------------------------------

func TestShowLastWins(t *testing.T) {
	source := `
(show (cube))
(show (sphere 1.5))
`
	spec := evalSpec(t, source)
	if spec.Prim.Kind != solid.KindSphere {
		t.Errorf("expected last shown solid (sphere), got %s", spec.Prim.Kind)
	}
}

func TestTrailingSolidFallback(t *testing.T) {
	// A script ending in a bare solid expression counts as showing it.
	spec := evalSpec(t, `(sphere 1.5)`)
	if spec.Prim.Kind != solid.KindSphere {
		t.Errorf("expected sphere, got %s", spec.Prim.Kind)
	}
}

// ---------------------------------------------------------------------------
// Preprocessing end-to-end
// ---------------------------------------------------------------------------

func TestKebabCaseVariables(t *testing.T) {
	source := `
(def half-size 1)
(show (cube :size (* half-size 4)))
`
	spec := evalSpec(t, source)
	if spec.Prim.Size.X != 4 {
		t.Errorf("expected size 4, got %f", spec.Prim.Size.X)
	}
}

func TestCommentsIgnored(t *testing.T) {
	source := `
;; a sphere, not a cube
(show (sphere 1)) ; trailing comment
`
	spec := evalSpec(t, source)
	if spec.Prim.Kind != solid.KindSphere {
		t.Errorf("expected sphere, got %s", spec.Prim.Kind)
	}
}

func TestKeywordPrefixStringCollision(t *testing.T) {
	// A string literal spelled like a preprocessed keyword is consumed
	// as that keyword by the argument parser.
	spec := evalSpec(t, `(show (sphere "__kw_r" 2))`)
	if spec.Prim.Radius != 2 {
		t.Errorf("expected radius 2 via collided keyword, got %f", spec.Prim.Radius)
	}
}

func TestArithmeticStillWorks(t *testing.T) {
	spec := evalSpec(t, `(show (sphere (+ 1 0.5)))`)
	if spec.Prim.Radius != 1.5 {
		t.Errorf("expected radius 1.5, got %f", spec.Prim.Radius)
	}
}
