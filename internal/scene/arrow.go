package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	headLengthRatio = 0.2
	headWidthRatio  = 0.2
)

// Arrow is a direction indicator anchored at Origin.
type Arrow struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // unit length, or zero for a degenerate arrow
	Length    float64
	Color     colorful.Color
}

// NewArrow normalizes dir. A zero dir yields a degenerate arrow that keeps
// its origin and length but has no direction.
func NewArrow(dir, origin mgl64.Vec3, length float64, color colorful.Color) Arrow {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec3{}
	}
	return Arrow{Origin: origin, Direction: dir, Length: length, Color: color}
}

func (a Arrow) Degenerate() bool {
	return a.Length == 0 || a.Direction == (mgl64.Vec3{})
}

func (a Arrow) HeadLength() float64 { return a.Length * headLengthRatio }
func (a Arrow) HeadWidth() float64  { return a.HeadLength() * headWidthRatio }

func (a Arrow) Tip() mgl64.Vec3 {
	return a.Origin.Add(a.Direction.Mul(a.Length))
}

// ShaftEnd is where the shaft meets the cone.
func (a Arrow) ShaftEnd() mgl64.Vec3 {
	return a.Origin.Add(a.Direction.Mul(a.Length - a.HeadLength()))
}
