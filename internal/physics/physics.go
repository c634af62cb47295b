// Package physics provides hit testing and distance utilities.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// RayHitsSphere reports whether a ray from the world origin along dir
// meets the sphere. dir must be unit length, which lets the quadratic drop
// its leading coefficient.
//
// Any root in front of the origin counts, so a ray that starts inside the
// sphere (near root behind, far root ahead) is a hit.
func RayHitsSphere(dir, center mgl64.Vec3, radius float64) bool {
	b := -2 * dir.Dot(center)
	c := center.Dot(center) - radius*radius

	disc := b*b - 4*c
	if disc < 0 {
		return false
	}

	sqrtDisc := math.Sqrt(disc)
	t0 := (-b - sqrtDisc) * 0.5
	t1 := (-b + sqrtDisc) * 0.5
	return t0 > 0 || t1 > 0
}

// RaySphereNearest returns the smallest positive distance along a ray from
// origin (unit dir) to the sphere surface. ok is false when the sphere is
// missed or lies entirely behind the origin. Used by the renderer for depth.
func RaySphereNearest(origin, dir, center mgl64.Vec3, radius float64) (t float64, ok bool) {
	oc := origin.Sub(center)
	b := 2 * dir.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - 4*c
	if disc < 0 {
		return 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t0 := (-b - sqrtDisc) * 0.5
	t1 := (-b + sqrtDisc) * 0.5
	switch {
	case t0 > 0:
		return t0, true
	case t1 > 0:
		return t1, true
	default:
		return 0, false
	}
}

// RayPlaneY intersects a ray with the horizontal plane y = planeY.
// Returns false when the ray is parallel to the plane or points away from it.
func RayPlaneY(origin, dir mgl64.Vec3, planeY float64) (t float64, ok bool) {
	if math.Abs(dir.Y()) < 1e-9 {
		return 0, false
	}
	t = (planeY - origin.Y()) / dir.Y()
	return t, t > 0
}
