package panel

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Control names.
const (
	Pendulum1Mass   = "pendulum1_mass"
	Pendulum2Mass   = "pendulum2_mass"
	Pendulum1Color  = "pendulum1_color"
	Pendulum2Color  = "pendulum2_color"
	Arm1Length      = "arm1_length"
	Arm2Length      = "arm2_length"
	ArmsColor       = "arms_color"
	BackgroundColor = "background_color"
	TrailLength     = "trail_length"
	TrailDash       = "trail_dash"
	TrailGap        = "trail_gap"
	CameraFollow    = "camera_follow"
)

type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindColor
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Control describes one editable setting. Min, Max and Step only apply to
// numeric kinds; a zero Step means continuous.
type Control struct {
	Name  string
	Label string
	Kind  Kind
	Min   float64
	Max   float64
	Step  float64
}

var controls = []Control{
	{Name: Pendulum1Mass, Label: "pendulum 1 mass", Kind: KindFloat, Min: 0.5, Max: 10},
	{Name: Pendulum2Mass, Label: "pendulum 2 mass", Kind: KindFloat, Min: 0.5, Max: 10},
	{Name: Pendulum1Color, Label: "pendulum 1 color", Kind: KindColor},
	{Name: Pendulum2Color, Label: "pendulum 2 color", Kind: KindColor},
	{Name: Arm1Length, Label: "arm 1 length", Kind: KindFloat, Min: 0, Max: 20},
	{Name: Arm2Length, Label: "arm 2 length", Kind: KindFloat, Min: 0, Max: 20},
	{Name: ArmsColor, Label: "arms color", Kind: KindColor},
	{Name: BackgroundColor, Label: "background", Kind: KindColor},
	{Name: TrailLength, Label: "trail length", Kind: KindInt, Min: 0, Max: 150000, Step: 10},
	{Name: TrailDash, Label: "trail dash", Kind: KindFloat, Min: 0, Max: 10},
	{Name: TrailGap, Label: "trail gap", Kind: KindFloat, Min: 0, Max: 10},
	{Name: CameraFollow, Label: "camera follow", Kind: KindBool},
}

// Controls returns the panel layout in display order.
func Controls() []Control {
	out := make([]Control, len(controls))
	copy(out, controls)
	return out
}

func Lookup(name string) (Control, bool) {
	for _, c := range controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

// Clamp limits v to the control range and snaps it to Step.
func (c Control) Clamp(v float64) float64 {
	if c.Kind != KindFloat && c.Kind != KindInt {
		return v
	}
	if c.Step > 0 {
		v = c.Min + float64(int64((v-c.Min)/c.Step+0.5))*c.Step
	}
	if v < c.Min {
		v = c.Min
	}
	if v > c.Max {
		v = c.Max
	}
	return v
}

// Settings is the snapshot shown by a panel front-end.
type Settings struct {
	Pendulum1Mass   float64
	Pendulum2Mass   float64
	Pendulum1Color  colorful.Color
	Pendulum2Color  colorful.Color
	Arm1Length      float64
	Arm2Length      float64
	ArmsColor       colorful.Color
	BackgroundColor colorful.Color
	TrailLength     int
	TrailDash       float64
	TrailGap        float64
	CameraFollow    bool
}

// Float returns a numeric setting by control name.
func (s *Settings) Float(name string) (float64, bool) {
	switch name {
	case Pendulum1Mass:
		return s.Pendulum1Mass, true
	case Pendulum2Mass:
		return s.Pendulum2Mass, true
	case Arm1Length:
		return s.Arm1Length, true
	case Arm2Length:
		return s.Arm2Length, true
	case TrailLength:
		return float64(s.TrailLength), true
	case TrailDash:
		return s.TrailDash, true
	case TrailGap:
		return s.TrailGap, true
	}
	return 0, false
}

func (s *Settings) Color(name string) (colorful.Color, bool) {
	switch name {
	case Pendulum1Color:
		return s.Pendulum1Color, true
	case Pendulum2Color:
		return s.Pendulum2Color, true
	case ArmsColor:
		return s.ArmsColor, true
	case BackgroundColor:
		return s.BackgroundColor, true
	}
	return colorful.Color{}, false
}

func (s *Settings) Bool(name string) (bool, bool) {
	if name == CameraFollow {
		return s.CameraFollow, true
	}
	return false, false
}

func (s *Settings) setFloat(name string, v float64) {
	switch name {
	case Pendulum1Mass:
		s.Pendulum1Mass = v
	case Pendulum2Mass:
		s.Pendulum2Mass = v
	case Arm1Length:
		s.Arm1Length = v
	case Arm2Length:
		s.Arm2Length = v
	case TrailLength:
		s.TrailLength = int(v)
	case TrailDash:
		s.TrailDash = v
	case TrailGap:
		s.TrailGap = v
	}
}

func (s *Settings) setColor(name string, c colorful.Color) {
	switch name {
	case Pendulum1Color:
		s.Pendulum1Color = c
	case Pendulum2Color:
		s.Pendulum2Color = c
	case ArmsColor:
		s.ArmsColor = c
	case BackgroundColor:
		s.BackgroundColor = c
	}
}

// Apply writes a resolved change into the snapshot without dispatching it.
func (s *Settings) Apply(c Change) error {
	ctrl, ok := Lookup(c.Name)
	if !ok {
		return unknown(c.Name)
	}
	switch ctrl.Kind {
	case KindFloat, KindInt:
		v, err := toFloat(c.Value)
		if err != nil {
			return badValue(c, err)
		}
		s.setFloat(c.Name, ctrl.Clamp(v))
	case KindColor:
		col, err := toColor(c.Value)
		if err != nil {
			return badValue(c, err)
		}
		s.setColor(c.Name, col)
	case KindBool:
		b, err := toBool(c.Value)
		if err != nil {
			return badValue(c, err)
		}
		s.CameraFollow = b
	}
	return nil
}

// Values returns every control value keyed by control name, with colors
// as "#rrggbb" strings. The result feeds JSON front-ends.
func (s *Settings) Values() map[string]any {
	out := make(map[string]any, len(controls))
	for _, c := range controls {
		switch c.Kind {
		case KindFloat:
			out[c.Name], _ = s.Float(c.Name)
		case KindInt:
			v, _ := s.Float(c.Name)
			out[c.Name] = int(v)
		case KindColor:
			col, _ := s.Color(c.Name)
			out[c.Name] = col.Hex()
		case KindBool:
			out[c.Name], _ = s.Bool(c.Name)
		}
	}
	return out
}
