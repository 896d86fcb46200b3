package sim

import "github.com/go-gl/mathgl/mgl64"

type BodyState struct {
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	Mass     float64    `json:"mass"`
}

// Frame is the state shown by one rendered frame.
type Frame struct {
	Tick     int          `json:"tick"`
	Time     float64      `json:"time"`
	Bodies   [2]BodyState `json:"bodies"`
	TrailLen int          `json:"trail_len"`
	Hue      int          `json:"hue"`
	Reset    bool         `json:"reset"`
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnTick(f Frame) { fn(f) }

type Result struct {
	Frames  []Frame
	Metrics map[string]float64
	Resets  int
	Ticks   int
}
