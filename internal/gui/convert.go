package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Scene lighting: one white point light at half intensity plus an equal
// ambient term.
var (
	LightPosition  = mgl64.Vec3{50, 0, -50}
	LightIntensity = 0.5
	Ambient        = 0.5
)

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func toColor(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

// shade darkens c by how directly the sphere face seen from eye points
// at the light.
func shade(c colorful.Color, center, eye, light mgl64.Vec3) colorful.Color {
	n := eye.Sub(center)
	l := light.Sub(center)
	if n.Len() == 0 || l.Len() == 0 {
		return c
	}
	diffuse := math.Max(0, n.Normalize().Dot(l.Normalize()))
	k := Ambient + LightIntensity*diffuse
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// orbitAngle turns a mouse drag in pixels into radians, a full turn per
// viewport height at speed 1.
func orbitAngle(pixels float32, height int, speed float64) float64 {
	if height <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(pixels) / float64(height) * speed
}
