package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/chazu/xylem/pkg/engine"
	"github.com/chazu/xylem/pkg/kernel/sdfx"
	"github.com/chazu/xylem/pkg/project"
	"github.com/chazu/xylem/pkg/tessellate"
	"github.com/chazu/xylem/pkg/view"
	"github.com/chazu/xylem/pkg/wireframe"
)

const (
	// strokeWidth is the line width for wireframe edges, in pixels.
	strokeWidth = 2.0

	// wheelScale converts ebiten's per-notch wheel ticks into the
	// pixel-like scroll units the view layer expects.
	wheelScale = 40.0
)

// App is the ebiten game driving the viewer. It polls mouse state each
// tick, feeds it to the view state, and strokes the projected wireframe.
type App struct {
	state *view.State
	frame wireframe.Frame

	lastX, lastY int
	dragging     bool
}

// NewApp creates a viewer for the given wireframe.
func NewApp(frame wireframe.Frame) *App {
	return &App{
		state: view.New(),
		frame: frame,
	}
}

// Update polls the mouse and advances the view state by one frame.
func (a *App) Update() error {
	x, y := ebiten.CursorPosition()
	primary := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	secondary := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	var drag mgl32.Vec2
	if (primary || secondary) && a.dragging {
		drag = mgl32.Vec2{float32(x - a.lastX), float32(y - a.lastY)}
	}
	// The first pressed frame establishes the anchor; deltas start on
	// the next tick so the model doesn't jump to the cursor.
	a.dragging = primary || secondary
	a.lastX, a.lastY = x, y

	_, wheelY := ebiten.Wheel()

	a.state.Update(view.FrameInput{
		PrimaryDown:   primary,
		SecondaryDown: secondary,
		Drag:          drag,
		Scroll:        float32(wheelY * wheelScale),
	})
	return nil
}

// Draw projects the wireframe through the current view state and strokes
// each edge as a solid white line.
func (a *App) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w := float32(b.Dx())
	h := float32(b.Dy())
	canvas := project.Rect{
		Center: mgl32.Vec2{w / 2, h / 2},
		W:      w,
		H:      h,
	}

	for _, seg := range project.Project(a.state, canvas, a.frame) {
		vector.StrokeLine(screen,
			seg.A.X(), seg.A.Y(),
			seg.B.X(), seg.B.Y(),
			strokeWidth, color.White, true)
	}
}

// Layout uses the window size directly as the render size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// buildFrame resolves the wireframe to display. A non-empty script takes
// priority over the named built-in solid.
func buildFrame(solidName, script string) (wireframe.Frame, error) {
	if script != "" {
		eng := engine.NewEngine()
		spec, evalErrs, err := eng.Evaluate(script)
		if err != nil {
			return wireframe.Frame{}, fmt.Errorf("script evaluation failed: %w", err)
		}
		for _, e := range evalErrs {
			log.Printf("script error: %v", e)
		}
		if spec == nil {
			return wireframe.Frame{}, fmt.Errorf("script produced no solid")
		}
		mesh, err := tessellate.Tessellate(spec, sdfx.New())
		if err != nil {
			return wireframe.Frame{}, fmt.Errorf("tessellation failed: %w", err)
		}
		return wireframe.FromMesh(mesh), nil
	}

	switch solidName {
	case "cube":
		return wireframe.Cube(), nil
	case "icosahedron", "ico":
		return wireframe.Icosahedron(), nil
	}
	return wireframe.Frame{}, fmt.Errorf("unknown solid %q (want cube or icosahedron)", solidName)
}
