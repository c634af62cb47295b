// Package render ray casts the aim trainer scene onto a half-block canvas.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tomz197/aimtrainer/internal/camera"
	"github.com/tomz197/aimtrainer/internal/draw"
	"github.com/tomz197/aimtrainer/internal/game"
	"github.com/tomz197/aimtrainer/internal/loop/config"
	"github.com/tomz197/aimtrainer/internal/object"
	"github.com/tomz197/aimtrainer/internal/physics"
)

// Scene palette.
var (
	Sky        = colorful.Color{R: 0.04, G: 0.04, B: 0.07}
	Floor      = colorful.Color{R: 0.09, G: 0.09, B: 0.1}
	GridLine   = colorful.Color{R: 0.35, G: 0.35, B: 0.38}
	TargetBase = colorful.Color{R: 0, G: 1, B: 1}
	FlashColor = colorful.Color{R: 1, G: 1, B: 1}
	Crosshair  = colorful.Color{R: 0, G: 1, B: 0}
)

const (
	ambient  = 0.25
	fogStart = 4.0
	fogEnd   = 30.0
)

// lightDir points from surfaces toward the light.
var lightDir = mgl64.Vec3{0.4, 0.8, 0.45}.Normalize()

// Scene is what one frame shows.
type Scene struct {
	Orientation camera.Orientation
	Target      object.Target
	Phase       game.Phase
}

// Basis is the camera frame used to build per-pixel rays.
type Basis struct {
	Forward, Right, Up mgl64.Vec3
}

// NewBasis builds the camera frame for o. Forward matches the aim direction.
func NewBasis(o camera.Orientation) Basis {
	forward := o.Direction()
	right := forward.Cross(mgl64.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)
	return Basis{Forward: forward, Right: right, Up: up}
}

// Ray returns the unit view ray through the centre of sub-pixel (px, py)
// on a width x height sub-pixel grid.
func (b Basis) Ray(px, py, width, height int) mgl64.Vec3 {
	tanHalf := math.Tan(mgl64.DegToRad(config.FOVDegrees) / 2)
	aspect := float64(width) / float64(height)

	sx := (2*(float64(px)+0.5)/float64(width) - 1) * aspect * tanHalf
	sy := (1 - 2*(float64(py)+0.5)/float64(height)) * tanHalf

	return b.Forward.Add(b.Right.Mul(sx)).Add(b.Up.Mul(sy)).Normalize()
}

// Draw fills the canvas with the scene and overlays the crosshair.
func Draw(c *draw.Canvas, s Scene) {
	w, h := c.PixelWidth(), c.PixelHeight()
	if w == 0 || h == 0 {
		return
	}

	basis := NewBasis(s.Orientation)
	radius := s.Target.Radius * s.Phase.Scale
	base := TargetBase.BlendRgb(FlashColor, s.Phase.Flash)
	var origin mgl64.Vec3

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			dir := basis.Ray(px, py, w, h)
			c.Set(px, py, shade(origin, dir, s.Target.Position, radius, base))
		}
	}

	drawCrosshair(c, w/2, h/2)
}

// shade returns the colour seen along one ray.
func shade(origin, dir, center mgl64.Vec3, radius float64, base colorful.Color) colorful.Color {
	floorT, floorOK := physics.RayPlaneY(origin, dir, config.FloorY)
	if floorOK && (floorT < config.NearPlane || floorT > config.FarPlane) {
		floorOK = false
	}

	if t, ok := physics.RaySphereNearest(origin, dir, center, radius); ok && t < config.FarPlane {
		if !floorOK || t < floorT {
			p := origin.Add(dir.Mul(t))
			n := p.Sub(center).Normalize()
			intensity := ambient + (1-ambient)*math.Max(0, n.Dot(lightDir))
			return scale(base, intensity)
		}
	}

	if floorOK {
		p := origin.Add(dir.Mul(floorT))
		if math.Abs(p.X()) <= config.FloorExtent && math.Abs(p.Z()) <= config.FloorExtent {
			col := Floor
			if onGridLine(p.X()) || onGridLine(p.Z()) {
				col = GridLine
			}
			return fog(col, floorT)
		}
	}

	return Sky
}

func onGridLine(v float64) bool {
	return math.Abs(v-math.Round(v)) < config.FloorLine
}

func scale(col colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: col.R * k, G: col.G * k, B: col.B * k}
}

// fog fades distant floor toward the sky colour.
func fog(col colorful.Color, t float64) colorful.Color {
	k := mgl64.Clamp((t-fogStart)/(fogEnd-fogStart), 0, 1)
	return col.BlendRgb(Sky, k)
}

// drawCrosshair draws a centre dot with four short arms separated by a gap.
func drawCrosshair(c *draw.Canvas, cx, cy int) {
	c.Set(cx, cy, Crosshair)
	for _, d := range []int{2, 3} {
		c.Set(cx-d, cy, Crosshair)
		c.Set(cx+d, cy, Crosshair)
	}
	c.Set(cx, cy-2, Crosshair)
	c.Set(cx, cy+2, Crosshair)
}
