package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/physics"
)

// Target is the sphere the player shoots at.
type Target struct {
	Position mgl64.Vec3
	Radius   float64
}

// NewTarget creates the session's starting target.
func NewTarget() Target {
	return Target{
		Position: mgl64.Vec3{config.InitialTargetX, config.InitialTargetY, config.InitialTargetZ},
		Radius:   config.InitialTargetRadius,
	}
}

// HitBy reports whether a ray from the origin along dir hits the target.
func (t Target) HitBy(dir mgl64.Vec3) bool {
	return physics.RayHitsSphere(dir, t.Position, t.Radius)
}

// ClampRadius limits r to the allowed target radius range.
func ClampRadius(r float64) float64 {
	return mgl64.Clamp(r, config.MinTargetRadius, config.MaxTargetRadius)
}
