// Package panel binds live-editable settings to simulation state.
//
// Every control is paired with exactly one setter registered on a
// [Dispatcher]. Front-ends never touch simulation state; they push a
// [Change] onto a [Queue] and the owner of the state drains it between
// ticks.
package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/scene"
)

var (
	ErrUnknownControl = errors.New("panel: unknown control")
	ErrBadValue       = errors.New("panel: bad value")
)

// Change sets one control. Value is a float64/int for numeric controls,
// a "#rrggbb" string or 0xRRGGBB number for colors and a bool for flags.
type Change struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func unknown(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

func badValue(c Change, err error) error {
	return fmt.Errorf("%w for %s (%v): %v", ErrBadValue, c.Name, c.Value, err)
}

// Dispatcher routes changes to the setter bound to each control and keeps
// the settings snapshot in step.
type Dispatcher struct {
	settings Settings
	floats   map[string]func(float64)
	colors   map[string]func(colorful.Color)
	bools    map[string]func(bool)
}

func NewDispatcher(initial Settings) *Dispatcher {
	return &Dispatcher{
		settings: initial,
		floats:   make(map[string]func(float64)),
		colors:   make(map[string]func(colorful.Color)),
		bools:    make(map[string]func(bool)),
	}
}

// Settings returns a copy of the current snapshot.
func (d *Dispatcher) Settings() Settings { return d.settings }

func (d *Dispatcher) OnFloat(name string, fn func(float64))        { d.floats[name] = fn }
func (d *Dispatcher) OnColor(name string, fn func(colorful.Color)) { d.colors[name] = fn }
func (d *Dispatcher) OnBool(name string, fn func(bool))            { d.bools[name] = fn }

// Apply resolves the change against its control, updates the snapshot and
// calls the bound setter. The value is clamped to the control range.
func (d *Dispatcher) Apply(c Change) error {
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
		v = ctrl.Clamp(v)
		d.settings.setFloat(c.Name, v)
		if fn := d.floats[c.Name]; fn != nil {
			fn(v)
		}
	case KindColor:
		col, err := toColor(c.Value)
		if err != nil {
			return badValue(c, err)
		}
		d.settings.setColor(c.Name, col)
		if fn := d.colors[c.Name]; fn != nil {
			fn(col)
		}
	case KindBool:
		b, err := toBool(c.Value)
		if err != nil {
			return badValue(c, err)
		}
		d.settings.CameraFollow = b
		if fn := d.bools[c.Name]; fn != nil {
			fn(b)
		}
	}
	return nil
}

// Unbound lists controls that have no setter.
func (d *Dispatcher) Unbound() []string {
	var missing []string
	for _, c := range controls {
		var ok bool
		switch c.Kind {
		case KindFloat, KindInt:
			_, ok = d.floats[c.Name]
		case KindColor:
			_, ok = d.colors[c.Name]
		case KindBool:
			_, ok = d.bools[c.Name]
		}
		if !ok {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// toFloat accepts only finite numbers.
func toFloat(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		var err error
		if f, err = strconv.ParseFloat(n, 64); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite: %v", f)
	}
	return f, nil
}

func toColor(v any) (colorful.Color, error) {
	return scene.ParseColor(v)
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	return false, fmt.Errorf("not a bool: %T", v)
}
