// Package view owns the interactive transform state of the viewer: an
// orientation quaternion, a screen-space pan offset, and a zoom factor.
// The state advances once per frame from the pointer input accumulated
// by the host loop; there is no multi-frame mode tracking.
package view

import "github.com/go-gl/mathgl/mgl32"

// Interaction tuning. Drag deltas arrive in screen pixels; rotation
// converts them to radians, scroll scales the zoom multiplicatively.
const (
	RotatePerPixel = 0.01
	ZoomPerUnit    = 0.001
	MinZoom        = 0.2
	MaxZoom        = 5.0
)

// FrameInput is the pointer input accumulated over a single frame.
// The host adapter supplies a zero Drag unless a button is held.
type FrameInput struct {
	PrimaryDown   bool       // left button held
	SecondaryDown bool       // right button held
	Drag          mgl32.Vec2 // cursor delta in pixels since the previous frame
	Scroll        float32    // vertical wheel delta in pixel-like units
}

// State is the viewer's transform state. It is owned by the frame
// callback; nothing else reads or writes it.
type State struct {
	Orientation mgl32.Quat // cumulative rotation relative to the rest pose
	Pan         mgl32.Vec2 // screen pixels
	Zoom        float32    // clamped to [MinZoom, MaxZoom]
}

// New returns a State at the rest pose: identity orientation, zero pan,
// zoom 1.
func New() *State {
	return &State{Orientation: mgl32.QuatIdent(), Zoom: 1.0}
}

// Update advances the state by one frame of input. A left drag rotates,
// a right drag pans; the two are mutually exclusive and rotation takes
// precedence when both buttons are down. Scroll zooms independently of
// the drag state.
func (s *State) Update(in FrameInput) {
	if in.PrimaryDown {
		yaw := in.Drag.X() * RotatePerPixel
		pitch := in.Drag.Y() * RotatePerPixel
		// The new rotation composes on the left: yaw then pitch, applied
		// in world space before the existing orientation. The order is
		// not commutative.
		rot := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
			Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
		s.Orientation = rot.Mul(s.Orientation).Normalize()
	} else if in.SecondaryDown {
		s.Pan = s.Pan.Add(in.Drag)
	}

	if in.Scroll != 0 {
		s.Zoom = mgl32.Clamp(s.Zoom*(1+in.Scroll*ZoomPerUnit), MinZoom, MaxZoom)
	}
}
