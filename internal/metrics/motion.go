package metrics

import (
	"math"

	"github.com/san-kum/powerpendulum/internal/sim"
)

// MaxSpeed is the peak speed of one body over a run.
type MaxSpeed struct {
	name string
	body int
	max  float64
}

func NewMaxSpeed(body int) *MaxSpeed {
	names := [2]string{"max_speed_inner", "max_speed_outer"}
	return &MaxSpeed{name: names[body], body: body}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(f sim.Frame) {
	m.max = math.Max(m.max, f.Bodies[m.body].Velocity.Len())
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Resets counts frames on which a stall reset happened.
type Resets struct {
	count int
}

func NewResets() *Resets { return &Resets{} }

func (r *Resets) Name() string { return "resets" }

func (r *Resets) Observe(f sim.Frame) {
	if f.Reset {
		r.count++
	}
}

func (r *Resets) Value() float64 { return float64(r.count) }
func (r *Resets) Reset()         { r.count = 0 }

// Defaults is the metric set recorded for headless runs.
func Defaults(gravity float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(gravity),
		NewEnergyDrift(gravity),
		NewMaxSpeed(0),
		NewMaxSpeed(1),
		NewResets(),
	}
}
