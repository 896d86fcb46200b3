package metrics

import (
	"math"

	"github.com/san-kum/powerpendulum/internal/sim"
)

// FrameEnergy is the kinetic plus potential energy of both bodies, with
// height measured along +y from the anchor.
func FrameEnergy(f sim.Frame, gravity float64) float64 {
	total := 0.0
	for _, b := range f.Bodies {
		v := b.Velocity.Len()
		total += 0.5*b.Mass*v*v + b.Mass*gravity*b.Position.Y()
	}
	return total
}

type Energy struct {
	name        string
	gravity     float64
	samples     int
	totalEnergy float64
}

func NewEnergy(gravity float64) *Energy {
	return &Energy{name: "energy", gravity: gravity}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	e.totalEnergy += FrameEnergy(f, e.gravity)
	e.samples++
}

// Value is the mean energy over all observed frames.
func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative change from the energy of the
// first frame. A stall reset moves the bodies, so the baseline restarts
// on the frame after one.
type EnergyDrift struct {
	name          string
	gravity       float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(gravity float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", gravity: gravity}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f sim.Frame) {
	if f.Reset {
		e.samples = 0
		return
	}
	energy := FrameEnergy(f, e.gravity)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
