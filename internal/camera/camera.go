// Package camera models the first-person look orientation.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/loop/config"
)

// Orientation is the look rotation in radians.
// Pitch is kept within [-PitchLimit, PitchLimit]; yaw is unbounded.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

// Direction returns the unit forward vector for the orientation.
// Positive yaw turns left, positive pitch looks up.
func (o Orientation) Direction() mgl64.Vec3 {
	yaw := -o.Yaw
	cosPitch := math.Cos(o.Pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * cosPitch,
		math.Sin(o.Pitch),
		-math.Cos(yaw) * cosPitch,
	}
}

// AimCache memoizes the aim direction until the orientation changes.
type AimCache struct {
	cached mgl64.Vec3
	valid  bool
}

// Invalidate marks the cached direction stale.
func (a *AimCache) Invalidate() {
	a.valid = false
}

// Valid reports whether the cached direction can be returned as-is.
func (a *AimCache) Valid() bool {
	return a.valid
}

// Get returns the cached direction, recomputing it from o if stale.
func (a *AimCache) Get(o Orientation) mgl64.Vec3 {
	if !a.valid {
		a.cached = o.Direction()
		a.valid = true
	}
	return a.cached
}

// Camera tracks orientation from pointer input.
type Camera struct {
	orientation Orientation
	aim         AimCache
	sensitivity float64

	// Pointer reference for absolute positions
	lastX, lastY float64
	firstMove    bool
}

// New creates a camera looking down -Z with the given sensitivity.
// A non-positive sensitivity selects the default.
func New(sensitivity float64) *Camera {
	if sensitivity <= 0 {
		sensitivity = config.MouseSensitivity
	}
	return &Camera{
		sensitivity: sensitivity,
		firstMove:   true,
	}
}

// Sensitivity returns radians applied per raw pointer unit.
func (c *Camera) Sensitivity() float64 {
	return c.sensitivity
}

// Orientation returns the current yaw and pitch.
func (c *Camera) Orientation() Orientation {
	return c.orientation
}

// SetOrientation replaces yaw and pitch, clamping pitch.
func (c *Camera) SetOrientation(o Orientation) {
	c.orientation = Orientation{Yaw: o.Yaw, Pitch: clampPitch(o.Pitch)}
	c.aim.Invalidate()
}

// ApplyMouseDelta rotates the camera by a raw pointer delta.
// dy is positive when the pointer moves up the screen.
func (c *Camera) ApplyMouseDelta(dx, dy float64) {
	c.orientation.Yaw -= dx * c.sensitivity
	c.orientation.Pitch = clampPitch(c.orientation.Pitch + dy*c.sensitivity)
	c.aim.Invalidate()
}

// HandlePointer consumes an absolute pointer position. The first position
// after Rearm only sets the reference point so capture does not cause a jump.
func (c *Camera) HandlePointer(x, y float64) {
	if c.firstMove {
		c.lastX = x
		c.lastY = y
		c.firstMove = false
		return
	}

	dx := x - c.lastX
	dy := c.lastY - y // Screen y grows downward
	c.lastX = x
	c.lastY = y

	c.ApplyMouseDelta(dx, dy)
}

// Rearm makes the next pointer position a reference-only event.
func (c *Camera) Rearm() {
	c.firstMove = true
}

// Armed reports whether the next pointer position will be ignored.
func (c *Camera) Armed() bool {
	return c.firstMove
}

// AimDirection returns the unit look vector, recomputed only when stale.
func (c *Camera) AimDirection() mgl64.Vec3 {
	return c.aim.Get(c.orientation)
}

func clampPitch(p float64) float64 {
	return mgl64.Clamp(p, -config.PitchLimit, config.PitchLimit)
}
