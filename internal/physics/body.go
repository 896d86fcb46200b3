package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents how the solver treats a body.
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by gravity and constraints.
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass.
	BodyTypeStatic
)

// Body is a point mass. Rotation is fixed; only the linear state is
// integrated.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	// LinearDamping is the fraction of velocity lost per second, 0..1.
	LinearDamping float64
	Type          BodyType

	previous mgl64.Vec3
	mass     float64
	invMass  float64
}

func NewBody(position mgl64.Vec3, mass, damping float64) *Body {
	b := &Body{
		Position:      position,
		previous:      position,
		LinearDamping: damping,
		Type:          BodyTypeDynamic,
	}
	b.SetMass(mass)
	return b
}

func NewStaticBody(position mgl64.Vec3) *Body {
	return &Body{
		Position: position,
		previous: position,
		Type:     BodyTypeStatic,
		mass:     0,
		invMass:  0,
	}
}

func (b *Body) Mass() float64        { return b.mass }
func (b *Body) InverseMass() float64 { return b.invMass }
func (b *Body) Speed() float64       { return b.Velocity.Len() }

// SetMass updates the mass of a dynamic body. A non-positive mass pins the
// body in place, the same as a static body.
func (b *Body) SetMass(mass float64) {
	if b.Type == BodyTypeStatic {
		return
	}
	b.mass = mass
	if mass > 0 {
		b.invMass = 1 / mass
	} else {
		b.invMass = 0
	}
}

// SetPosition teleports the body. The previous position is moved too so
// the next step does not see the jump as velocity.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.Position = p
	b.previous = p
}

func (b *Body) movable() bool {
	return b.Type == BodyTypeDynamic && b.invMass > 0
}

func (b *Body) integrate(h float64, gravity mgl64.Vec3) {
	if !b.movable() {
		return
	}
	b.previous = b.Position

	b.Velocity = b.Velocity.Add(gravity.Mul(h))
	b.Velocity = b.Velocity.Mul(math.Pow(1-b.LinearDamping, h))
	b.Position = b.Position.Add(b.Velocity.Mul(h))
}

func (b *Body) update(h float64) {
	if !b.movable() {
		return
	}
	b.Velocity = b.Position.Sub(b.previous).Mul(1 / h)
}

// IsFinite reports whether position and velocity hold no NaN or Inf.
func (b *Body) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.Position[i]) || !finite(b.Velocity[i]) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
