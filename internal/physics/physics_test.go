package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRayHitsSphere(t *testing.T) {
	tests := []struct {
		name   string
		dir    mgl64.Vec3
		center mgl64.Vec3
		radius float64
		want   bool
	}{
		{"dead ahead", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, -5}, 1, true},
		{"pointing away", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -5}, 1, false},
		{"passes beside", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{3, 0, -5}, 1, false},
		{"just inside edge", mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0.99, 0, -5}, 1, true},
		{"perpendicular", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -5}, 1, false},
		{"off lattice target", mgl64.Vec3{1, 0, -1}.Normalize(), mgl64.Vec3{2, 0, -2}, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RayHitsSphere(tt.dir, tt.center, tt.radius); got != tt.want {
				t.Errorf("RayHitsSphere(%v, %v, %f) = %v, want %v", tt.dir, tt.center, tt.radius, got, tt.want)
			}
		})
	}
}

// A ray starting inside the sphere has its near root behind the origin and
// its far root ahead. The permissive policy counts that as a hit, even when
// aiming directly away from the centre.
func TestRayHitsSphereFromInside(t *testing.T) {
	center := mgl64.Vec3{0, 0, -0.5}

	if !RayHitsSphere(mgl64.Vec3{0, 0, -1}, center, 1) {
		t.Error("Expected hit when the origin is inside the sphere looking toward the centre")
	}
	if !RayHitsSphere(mgl64.Vec3{0, 0, 1}, center, 1) {
		t.Error("Expected hit when the origin is inside the sphere looking away from the centre")
	}
}

func TestRayHitsSphereRoots(t *testing.T) {
	// b = -10, c = 24, D = 4: roots 4 and 6, both ahead
	dir := mgl64.Vec3{0, 0, -1}
	center := mgl64.Vec3{0, 0, -5}

	tNear, ok := RaySphereNearest(mgl64.Vec3{}, dir, center, 1)
	if !ok {
		t.Fatal("Expected nearest intersection")
	}
	if math.Abs(tNear-4) > 1e-9 {
		t.Errorf("Expected nearest root 4, got %f", tNear)
	}
}

func TestRaySphereNearestFromInside(t *testing.T) {
	tHit, ok := RaySphereNearest(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{}, 2)
	if !ok {
		t.Fatal("Expected exit intersection from inside the sphere")
	}
	if math.Abs(tHit-2) > 1e-9 {
		t.Errorf("Expected far root 2, got %f", tHit)
	}
}

func TestRaySphereNearestBehind(t *testing.T) {
	if _, ok := RaySphereNearest(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 0, 5}, 1); ok {
		t.Error("Expected no intersection with a sphere behind the origin")
	}
}

func TestRayPlaneY(t *testing.T) {
	dir := mgl64.Vec3{0, -1, -1}.Normalize()
	tHit, ok := RayPlaneY(mgl64.Vec3{}, dir, -2)
	if !ok {
		t.Fatal("Expected downward ray to hit the floor")
	}
	p := dir.Mul(tHit)
	if math.Abs(p.Y()+2) > 1e-9 {
		t.Errorf("Expected hit point on y=-2, got %v", p)
	}

	if _, ok := RayPlaneY(mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, -2); ok {
		t.Error("Expected upward ray to miss the floor")
	}
	if _, ok := RayPlaneY(mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, -2); ok {
		t.Error("Expected horizontal ray to miss the floor")
	}
}

func TestDistance(t *testing.T) {
	a := mgl64.Vec3{0, 0, -7}
	b := mgl64.Vec3{0, 2, -7}
	if got := Distance(a, b); math.Abs(got-2) > 1e-12 {
		t.Errorf("Expected distance 2, got %f", got)
	}
	if got := DistanceSquared(a, b); math.Abs(got-4) > 1e-12 {
		t.Errorf("Expected squared distance 4, got %f", got)
	}
}
