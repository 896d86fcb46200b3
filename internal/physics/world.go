package physics

import "github.com/go-gl/mathgl/mgl64"

const (
	DefaultSubsteps   = 10
	DefaultIterations = 2
)

// World advances point-mass bodies under gravity and position constraints.
type World struct {
	Bodies      []*Body
	Constraints []Constraint
	// Gravity acceleration (m/s²)
	Gravity    mgl64.Vec3
	Substeps   int
	Iterations int
}

func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		Gravity:    gravity,
		Substeps:   DefaultSubsteps,
		Iterations: DefaultIterations,
	}
}

func (w *World) AddBody(body *Body) {
	w.Bodies = append(w.Bodies, body)
}

func (w *World) AddConstraint(c Constraint) {
	w.Constraints = append(w.Constraints, c)
}

// Step advances the world by dt, split into substeps. Velocities are
// derived from the position change of each substep.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	substeps := max(1, w.Substeps)
	iterations := max(1, w.Iterations)
	h := dt / float64(substeps)

	for range substeps {
		for _, body := range w.Bodies {
			body.integrate(h, w.Gravity)
		}

		for range iterations {
			for _, c := range w.Constraints {
				c.SolvePosition()
			}
		}

		for _, body := range w.Bodies {
			body.update(h)
		}
	}
}
