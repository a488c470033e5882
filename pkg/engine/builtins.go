package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/xylem/pkg/solid"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms xylem Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: half-size -> half_size
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a solid.Spec so it can be passed between builtins.
type sexpSolid struct {
	spec *solid.Spec
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(solid %s +%d transforms)", s.spec.Prim.Kind, len(s.spec.Transforms))
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a solid.Vec3.
type sexpVec3 struct {
	vec solid.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// shownSolid records the spec the script asked to display. The last
// (show ...) wins; the viewer shows exactly one object.
type shownSolid struct {
	spec *solid.Spec
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
// A user string literal that itself starts with this prefix is
// indistinguishable from a preprocessed keyword and gets consumed as
// one by parseArgs. The DSL takes no string arguments, so nothing is
// lost to the collision.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// number extracts a float64 for a named parameter, preferring the
// keyword form and falling back to the positional slot.
func (a kwArgs) number(kw string, pos int) (float64, bool, error) {
	if v, ok := a.kw[kw]; ok {
		f, err := toFloat64(v)
		if err != nil {
			return 0, false, fmt.Errorf("%s: %w", kw, err)
		}
		return f, true, nil
	}
	if pos < len(a.positional) {
		f, err := toFloat64(a.positional[pos])
		if err != nil {
			return 0, false, err
		}
		return f, true, nil
	}
	return 0, false, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a spec from a sexpSolid.
func toSolid(s zygo.Sexp) (*solid.Spec, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.spec, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3, or from three trailing numbers.
func toVec3(args []zygo.Sexp) (solid.Vec3, error) {
	if len(args) == 1 {
		if v, ok := args[0].(*sexpVec3); ok {
			return v.vec, nil
		}
		return solid.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", args[0], args[0].SexpString(nil))
	}
	if len(args) == 3 {
		var out [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return solid.Vec3{}, err
			}
			out[i] = f
		}
		return solid.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
	}
	return solid.Vec3{}, fmt.Errorf("expected a vec3 or three numbers, got %d arguments", len(args))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the xylem part DSL into a zygomys environment.
// Solid expressions build up immutable solid.Spec values; (show ...) marks
// the spec the viewer displays.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, shown *shownSolid) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		v, err := toVec3(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec3{vec: v}, nil
	})

	// -----------------------------------------------------------------------
	// (cube :size 2)  or  (cube 2)
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size, ok, err := pa.number("size", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: %w", err)
		}
		if !ok {
			size = 2 // matches the built-in ±1 cube
		}
		return &sexpSolid{spec: &solid.Spec{
			Prim: solid.Primitive{
				Kind: solid.KindBox,
				Size: solid.Vec3{X: size, Y: size, Z: size},
			},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (box :x 2 :y 1 :z 1)  or  (box 2 1 1)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var dims [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, ok, err := pa.number(axis, i)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
			if !ok {
				return zygo.SexpNull, fmt.Errorf("box: missing %s dimension", axis)
			}
			dims[i] = f
		}
		return &sexpSolid{spec: &solid.Spec{
			Prim: solid.Primitive{
				Kind: solid.KindBox,
				Size: solid.Vec3{X: dims[0], Y: dims[1], Z: dims[2]},
			},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere :r 1.5)  or  (sphere 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r, ok, err := pa.number("r", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("sphere: missing radius")
		}
		return &sexpSolid{spec: &solid.Spec{
			Prim: solid.Primitive{Kind: solid.KindSphere, Radius: r},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :h 2 :r 0.5 :segments 48)  or  (cylinder 2 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		h, ok, err := pa.number("h", 0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder: missing height")
		}
		r, ok, err := pa.number("r", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder: missing radius")
		}
		segments, _, err := pa.number("segments", 2)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpSolid{spec: &solid.Spec{
			Prim: solid.Primitive{
				Kind:     solid.KindCylinder,
				Height:   h,
				Radius:   r,
				Segments: int(segments),
			},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (move SOLID (vec3 1 0 0))  or  (move SOLID 1 0 0)
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("move requires a solid and an offset")
		}
		spec, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		v, err := toVec3(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		return &sexpSolid{spec: spec.With(solid.Transform{Op: solid.OpTranslate, Vec: v})}, nil
	})

	// -----------------------------------------------------------------------
	// (spin SOLID (vec3 0 0 90))  or  (spin SOLID 0 0 90) — Euler degrees
	// -----------------------------------------------------------------------
	env.AddFunction("spin", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("spin requires a solid and Euler angles")
		}
		spec, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spin: %w", err)
		}
		v, err := toVec3(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spin: %w", err)
		}
		return &sexpSolid{spec: spec.With(solid.Transform{Op: solid.OpRotate, Vec: v})}, nil
	})

	// -----------------------------------------------------------------------
	// (scale SOLID 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a solid and a factor")
		}
		spec, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		f, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		if f == 0 {
			return zygo.SexpNull, fmt.Errorf("scale: factor must be non-zero")
		}
		return &sexpSolid{spec: spec.With(solid.Transform{Op: solid.OpScale, Factor: f})}, nil
	})

	// -----------------------------------------------------------------------
	// (show SOLID)
	// -----------------------------------------------------------------------
	env.AddFunction("show", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("show requires exactly one solid")
		}
		spec, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("show: %w", err)
		}
		shown.spec = spec
		return args[0], nil
	})
}
