// Package animation produces the per-frame model transform: a spring damped
// turntable and an intro zoom.
package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/pyx/pkg/math3d"
)

// tilt flips the model upright for a y-down screen. The small extra angle
// keeps faces parallel to the view from landing exactly edge-on.
const tilt = math.Pi + 0.01

// Axis tracks position and velocity for one rotation axis with spring decay.
type Axis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewAxis creates an axis whose velocity decays at the given frame rate.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 4.0, 1.0),
	}
}

// Update applies velocity to position and springs velocity toward 0.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Turntable spins a model about its vertical axis at a constant rate, with
// user impulses on yaw and pitch that die out under a spring.
type Turntable struct {
	Yaw, Pitch Axis
	Spin       float64     // Constant yaw per frame, radians
	Center     math3d.Vec3 // Screen position of the model origin
	Scale      float64     // Model units to pixels
	Zoom       float64     // Extra scale factor, 1 = none

	fps int
}

// NewTurntable centers the model in a width x height buffer.
func NewTurntable(width, height, fps int, scale float64) *Turntable {
	t := &Turntable{
		Spin:   0.02,
		Center: math3d.V3(float64(width)/2, float64(height)/2, 0),
		Scale:  scale,
		Zoom:   1,
		fps:    fps,
	}
	t.Reset()
	return t
}

// Impulse adds angular velocity in radians per frame.
func (t *Turntable) Impulse(pitch, yaw float64) {
	t.Pitch.Velocity += pitch
	t.Yaw.Velocity += yaw
}

// Update advances one frame.
func (t *Turntable) Update() {
	t.Yaw.Position += t.Spin
	t.Yaw.Update()
	t.Pitch.Update()
}

// Reset returns both axes to rest at angle 0.
func (t *Turntable) Reset() {
	t.Yaw = NewAxis(t.fps)
	t.Pitch = NewAxis(t.fps)
}

// Resize recenters the model for a new buffer size.
func (t *Turntable) Resize(width, height int) {
	t.Center = math3d.V3(float64(width)/2, float64(height)/2, 0)
}

// Transform returns T(center) * Rx(tilt + pitch) * Ry(yaw) * S(scale * zoom).
func (t *Turntable) Transform() math3d.Affine {
	s := t.Scale * t.Zoom
	return math3d.FromTranslation(t.Center).
		Mul(math3d.FromRotationX(tilt + t.Pitch.Position)).
		Mul(math3d.FromRotationY(t.Yaw.Position)).
		Mul(math3d.FromScale(math3d.Splat3(s)))
}
