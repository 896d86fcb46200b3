package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powerpendulum/internal/physics"
)

type ResetState int

const (
	Running ResetState = iota
	Resetting
)

func (s ResetState) String() string {
	if s == Resetting {
		return "resetting"
	}
	return "running"
}

// ResetController puts the pendulum back on its seed coordinates once
// both bodies come to rest in the same frame.
type ResetController struct {
	// Threshold is the speed at or below which a body counts as stopped.
	// Zero means exactly at rest.
	Threshold float64
	Seed1     mgl64.Vec3
	Seed2     mgl64.Vec3

	state ResetState
	count int
}

func NewResetController(threshold float64, seed1, seed2 mgl64.Vec3) *ResetController {
	return &ResetController{Threshold: threshold, Seed1: seed1, Seed2: seed2}
}

func (r *ResetController) State() ResetState { return r.state }

// Count is the number of resets performed so far.
func (r *ResetController) Count() int { return r.count }

func (r *ResetController) Stalled(b1, b2 *physics.Body) bool {
	return b1.Speed() <= r.Threshold && b2.Speed() <= r.Threshold
}

// Check enters the resetting state and moves both bodies to their seed
// coordinates when they have stalled. Call Done once the scene has been
// re-materialized.
func (r *ResetController) Check(b1, b2 *physics.Body) bool {
	if r.state == Resetting || !r.Stalled(b1, b2) {
		return false
	}
	r.state = Resetting
	r.count++

	b1.SetPosition(r.Seed1)
	b2.SetPosition(r.Seed2)
	b1.Velocity = mgl64.Vec3{}
	b2.Velocity = mgl64.Vec3{}
	return true
}

func (r *ResetController) Done() { r.state = Running }
