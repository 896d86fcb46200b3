package physics

type Constraint interface {
	SolvePosition()
}

// DistanceConstraint keeps two bodies at a fixed separation.
type DistanceConstraint struct {
	A, B     *Body
	Distance float64
}

// NewDistanceConstraint links a and b at their current separation.
func NewDistanceConstraint(a, b *Body) *DistanceConstraint {
	return &DistanceConstraint{
		A:        a,
		B:        b,
		Distance: b.Position.Sub(a.Position).Len(),
	}
}

func (c *DistanceConstraint) SetDistance(d float64) {
	if d < 0 {
		d = 0
	}
	c.Distance = d
}

// Separation returns the current distance between the two bodies.
func (c *DistanceConstraint) Separation() float64 {
	return c.B.Position.Sub(c.A.Position).Len()
}

// SolvePosition projects both bodies along the link, split by inverse mass.
func (c *DistanceConstraint) SolvePosition() {
	wA, wB := c.weight(c.A), c.weight(c.B)
	w := wA + wB
	if w == 0 {
		return
	}

	d := c.B.Position.Sub(c.A.Position)
	l := d.Len()
	if l == 0 {
		// direction is undefined for coincident bodies
		return
	}

	n := d.Mul(1 / l)
	correction := l - c.Distance

	c.A.Position = c.A.Position.Add(n.Mul(correction * wA / w))
	c.B.Position = c.B.Position.Sub(n.Mul(correction * wB / w))
}

func (c *DistanceConstraint) weight(b *Body) float64 {
	if !b.movable() {
		return 0
	}
	return b.invMass
}

var _ Constraint = (*DistanceConstraint)(nil)
