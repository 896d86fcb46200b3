package panel

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestControlsCoverSettings(t *testing.T) {
	var s Settings
	for _, c := range Controls() {
		var ok bool
		switch c.Kind {
		case KindFloat, KindInt:
			_, ok = s.Float(c.Name)
		case KindColor:
			_, ok = s.Color(c.Name)
		case KindBool:
			_, ok = s.Bool(c.Name)
		}
		if !ok {
			t.Errorf("control %s has no settings field", c.Name)
		}
	}
}

func TestClamp(t *testing.T) {
	mass, _ := Lookup(Pendulum1Mass)
	trail, _ := Lookup(TrailLength)

	tests := []struct {
		name string
		ctrl Control
		in   float64
		want float64
	}{
		{"in range", mass, 3.5, 3.5},
		{"below min", mass, 0.1, 0.5},
		{"above max", mass, 42, 10},
		{"snap down", trail, 1234, 1230},
		{"snap up", trail, 1236, 1240},
		{"trail zero", trail, 0, 0},
		{"trail above max", trail, 200000, 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctrl.Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp(%f) = %f, want %f", tt.in, got, tt.want)
			}
		})
	}
}

func TestDispatcherCallsSetter(t *testing.T) {
	d := NewDispatcher(Settings{})

	var mass float64
	var color colorful.Color
	var follow bool
	d.OnFloat(Pendulum1Mass, func(v float64) { mass = v })
	d.OnColor(ArmsColor, func(c colorful.Color) { color = c })
	d.OnBool(CameraFollow, func(b bool) { follow = b })

	changes := []Change{
		{Name: Pendulum1Mass, Value: 4.0},
		{Name: ArmsColor, Value: "#ff0000"},
		{Name: CameraFollow, Value: true},
	}
	for _, c := range changes {
		if err := d.Apply(c); err != nil {
			t.Fatalf("apply %s: %v", c.Name, err)
		}
	}

	if mass != 4 {
		t.Errorf("mass setter got %f", mass)
	}
	if color.Hex() != "#ff0000" {
		t.Errorf("color setter got %s", color.Hex())
	}
	if !follow {
		t.Error("follow setter not called")
	}

	s := d.Settings()
	if s.Pendulum1Mass != 4 || s.ArmsColor.Hex() != "#ff0000" || !s.CameraFollow {
		t.Errorf("snapshot not updated: %+v", s)
	}
}

func TestDispatcherClampsBeforeSetter(t *testing.T) {
	d := NewDispatcher(Settings{})
	var got float64
	d.OnFloat(Arm1Length, func(v float64) { got = v })

	if err := d.Apply(Change{Name: Arm1Length, Value: 99.0}); err != nil {
		t.Fatal(err)
	}
	if got != 20 {
		t.Errorf("setter got %f, want clamped 20", got)
	}
}

func TestDispatcherErrors(t *testing.T) {
	d := NewDispatcher(Settings{})

	tests := []struct {
		name   string
		change Change
		want   error
	}{
		{"unknown", Change{Name: "gravity", Value: 1.0}, ErrUnknownControl},
		{"number as bool", Change{Name: CameraFollow, Value: 1.0}, ErrBadValue},
		{"bool as number", Change{Name: TrailGap, Value: true}, ErrBadValue},
		{"bad color", Change{Name: ArmsColor, Value: "grey"}, ErrBadValue},
		{"bad numeric string", Change{Name: TrailDash, Value: "lots"}, ErrBadValue},
		{"nan string", Change{Name: Arm1Length, Value: "NaN"}, ErrBadValue},
		{"nan float", Change{Name: Pendulum1Mass, Value: math.NaN()}, ErrBadValue},
		{"inf string", Change{Name: TrailLength, Value: "Inf"}, ErrBadValue},
		{"negative inf", Change{Name: TrailGap, Value: math.Inf(-1)}, ErrBadValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Apply(tt.change)
			if !errors.Is(err, tt.want) {
				t.Errorf("Apply() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDispatcherAcceptsStrings(t *testing.T) {
	d := NewDispatcher(Settings{})

	if err := d.Apply(Change{Name: TrailDash, Value: "2.5"}); err != nil {
		t.Fatal(err)
	}
	if err := d.Apply(Change{Name: CameraFollow, Value: "true"}); err != nil {
		t.Fatal(err)
	}

	s := d.Settings()
	if s.TrailDash != 2.5 || !s.CameraFollow {
		t.Errorf("string values not applied: %+v", s)
	}
}

func TestUnbound(t *testing.T) {
	d := NewDispatcher(Settings{})
	if got := len(d.Unbound()); got != len(Controls()) {
		t.Fatalf("expected all %d controls unbound, got %d", len(Controls()), got)
	}

	for _, c := range Controls() {
		switch c.Kind {
		case KindFloat, KindInt:
			d.OnFloat(c.Name, func(float64) {})
		case KindColor:
			d.OnColor(c.Name, func(colorful.Color) {})
		case KindBool:
			d.OnBool(c.Name, func(bool) {})
		}
	}
	if missing := d.Unbound(); len(missing) != 0 {
		t.Errorf("still unbound: %v", missing)
	}
}

func TestSettingsApply(t *testing.T) {
	var s Settings
	if err := s.Apply(Change{Name: TrailLength, Value: 55}); err != nil {
		t.Fatal(err)
	}
	if s.TrailLength != 60 {
		t.Errorf("TrailLength = %d, want 60", s.TrailLength)
	}
}

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue()
	q.Push(Change{Name: TrailDash, Value: 1.0})
	q.Push(Change{Name: TrailGap, Value: 2.0})

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0].Name != TrailDash || got[1].Name != TrailGap {
		t.Errorf("Drain() = %v", got)
	}
	if q.Drain() != nil {
		t.Error("second drain should be empty")
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Change{Name: TrailLength, Value: j})
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != 800 {
		t.Errorf("drained %d changes, want 800", got)
	}
}

func TestSettingsValues(t *testing.T) {
	s := Settings{
		Pendulum1Mass:   2.5,
		TrailLength:     300,
		BackgroundColor: colorful.Color{R: 1},
		CameraFollow:    true,
	}
	v := s.Values()

	if len(v) != len(Controls()) {
		t.Errorf("expected %d values, got %d", len(Controls()), len(v))
	}
	if v[Pendulum1Mass] != 2.5 || v[TrailLength] != 300 || v[BackgroundColor] != "#ff0000" || v[CameraFollow] != true {
		t.Errorf("unexpected values: %v", v)
	}
}
