package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFiniteState indicates a body position or velocity went NaN/Inf.
	// Recovery mid-run is not defined, so callers stop the simulation.
	ErrNonFiniteState = errors.New("sim: non-finite body state")

	ErrInvalidTicks = errors.New("sim: tick count must not be negative")
)

// SimulationError wraps an error with the tick and body it was seen on.
type SimulationError struct {
	Tick    int
	Time    float64
	Body    string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f) %s: %v", e.Tick, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
