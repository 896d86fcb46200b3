package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFov         = 50.0
	DefaultWidth       = 1280
	DefaultHeight      = 720
	MinOrbitDistance   = 50.0
	DefaultRotateSpeed = 0.25
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	Fov      float64 // vertical, degrees
	Aspect   float64
	Width    int
	Height   int
}

func NewCamera() *Camera {
	c := &Camera{
		Position: mgl64.Vec3{0, -15, -50},
		Up:       mgl64.Vec3{0, 1, 0},
		Fov:      DefaultFov,
	}
	c.Resize(DefaultWidth, DefaultHeight)
	return c
}

func (c *Camera) LookAt(target mgl64.Vec3) { c.Target = target }

// Resize recomputes the aspect ratio for a new viewport. Non-positive
// sizes are ignored.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width, c.Height = width, height
	c.Aspect = float64(width) / float64(height)
}

// Distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Position.Sub(c.Target).Len()
}

// Orbit rotates the camera around its target by yaw and pitch radians and
// moves it by zoom units toward the target, never closer than
// MinOrbitDistance.
func (c *Camera) Orbit(yaw, pitch, zoom float64) {
	offset := c.Position.Sub(c.Target)
	r := offset.Len()
	if r == 0 {
		return
	}

	theta := math.Atan2(offset.X(), offset.Z())
	phi := math.Acos(mgl64.Clamp(offset.Y()/r, -1, 1))

	theta += yaw
	phi = mgl64.Clamp(phi+pitch, 1e-3, math.Pi-1e-3)
	r = math.Max(MinOrbitDistance, r-zoom)

	c.Position = c.Target.Add(mgl64.Vec3{
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Cos(theta),
	})
}
