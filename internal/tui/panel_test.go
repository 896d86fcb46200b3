package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/sim"
)

func testSettings() panel.Settings {
	return panel.Settings{
		Pendulum1Mass:   5,
		Pendulum2Mass:   5,
		Pendulum1Color:  colorful.Color{R: 1},
		Pendulum2Color:  colorful.Color{B: 1},
		Arm1Length:      10,
		Arm2Length:      10,
		ArmsColor:       colorful.Color{R: 0.2, G: 0.2, B: 0.2},
		TrailLength:     1000,
		TrailDash:       3,
		TrailGap:        1,
		CameraFollow:    false,
		BackgroundColor: colorful.Color{},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

// selectControl moves the cursor onto the named control.
func selectControl(t *testing.T, m Model, name string) Model {
	t.Helper()
	for i, c := range panel.Controls() {
		if c.Name == name {
			for j := 0; j < i; j++ {
				m, _ = press(m, "down")
			}
			return m
		}
	}
	t.Fatalf("no control %s", name)
	return m
}

func TestNudgeFloat(t *testing.T) {
	q := panel.NewQueue()
	m := NewModel(testSettings(), q)

	m, _ = press(m, "right", "right", "left")

	if got, want := m.Settings().Pendulum1Mass, 5+0.095; abs64(got-want) > 1e-9 {
		t.Errorf("mass = %f, want %f", got, want)
	}
	changes := q.Drain()
	if len(changes) != 3 || changes[0].Name != panel.Pendulum1Mass {
		t.Fatalf("queued %v", changes)
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestNudgeClampsAtRange(t *testing.T) {
	q := panel.NewQueue()
	m := NewModel(testSettings(), q)
	for i := 0; i < 20; i++ {
		m, _ = press(m, "shift+right")
	}
	if got := m.Settings().Pendulum1Mass; got != 10 {
		t.Errorf("mass = %f, want clamp at 10", got)
	}
}

func TestTrailLengthSteps(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.TrailLength)
	m, _ = press(m, "right", "shift+right")

	if got := m.Settings().TrailLength; got != 1110 {
		t.Errorf("trail length = %d, want 1110", got)
	}
}

func TestToggleFollow(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.CameraFollow)
	m, _ = press(m, " ")

	if !m.Settings().CameraFollow {
		t.Error("follow not toggled on")
	}
	changes := q.Drain()
	if len(changes) != 1 || changes[0].Value != true {
		t.Errorf("queued %v", changes)
	}

	m, _ = press(m, "enter")
	if m.Settings().CameraFollow {
		t.Error("enter did not toggle follow off")
	}
}

func TestEditColor(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.BackgroundColor)

	m, _ = press(m, "enter")
	if !m.editing || m.editBuf != "#000000" {
		t.Fatalf("editing %v buf %q", m.editing, m.editBuf)
	}
	m, _ = press(m, "backspace", "backspace", "backspace", "backspace", "backspace", "backspace", "1", "2", "z", "3", "4", "5", "6", "enter")

	if got := m.Settings().BackgroundColor.Hex(); got != "#123456" {
		t.Errorf("background = %s, want #123456", got)
	}
	if m.editing {
		t.Error("still editing after enter")
	}
	if q.Len() != 1 {
		t.Errorf("queue length %d", q.Len())
	}
}

func TestEditRejectsBadValue(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.ArmsColor)
	m, _ = press(m, "enter")
	for len(m.editBuf) > 0 {
		m, _ = press(m, "backspace")
	}
	m, _ = press(m, "enter")

	if !m.failed || m.status == "" {
		t.Error("expected an error status")
	}
	if q.Len() != 0 {
		t.Error("invalid change was queued")
	}
}

func TestEditEscape(t *testing.T) {
	q := panel.NewQueue()
	m := NewModel(testSettings(), q)
	m, _ = press(m, "enter", "9", "esc")

	if m.editing || m.Settings().Pendulum1Mass != 5 || q.Len() != 0 {
		t.Error("escape should discard the edit")
	}
}

func TestNudgeColorRotatesHue(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.Pendulum1Color)
	m, _ = press(m, "right")

	h, _, _ := m.Settings().Pendulum1Color.Hsl()
	if abs64(h-hueStep) > 1 {
		t.Errorf("hue = %f, want about %f", h, hueStep)
	}
}

func TestCursorBounds(t *testing.T) {
	m := NewModel(testSettings(), panel.NewQueue())
	m, _ = press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d", m.cursor)
	}
	for i := 0; i < 50; i++ {
		m, _ = press(m, "down")
	}
	if m.cursor != len(panel.Controls())-1 {
		t.Errorf("cursor = %d", m.cursor)
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(testSettings(), panel.NewQueue())
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestFrameMsg(t *testing.T) {
	m := NewModel(testSettings(), panel.NewQueue())
	next, _ := m.Update(FrameMsg{Tick: 42, TrailLen: 7, Reset: true})
	m = next.(Model)

	view := m.View()
	if !strings.Contains(view, "tick 42") || !strings.Contains(view, "resets 1") {
		t.Errorf("frame info missing from view")
	}
	for _, c := range panel.Controls() {
		if !strings.Contains(view, c.Label) {
			t.Errorf("control %s missing from view", c.Label)
		}
	}
}

type recordingSender struct{ msgs []tea.Msg }

func (r *recordingSender) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

func TestForwarder(t *testing.T) {
	to := &recordingSender{}
	f := NewForwarder(to, 10, nil)
	for i := 1; i <= 30; i++ {
		f.OnTick(sim.Frame{Tick: i, Reset: i == 15})
	}
	if len(to.msgs) != 4 {
		t.Errorf("forwarded %d frames, want 4", len(to.msgs))
	}
}

func TestForwarderSendsSettingsChanges(t *testing.T) {
	to := &recordingSender{}
	current := testSettings()
	f := NewForwarder(to, 100, func() panel.Settings { return current })

	f.OnTick(sim.Frame{Tick: 1})
	if len(to.msgs) != 0 {
		t.Fatalf("sent %d messages for unchanged settings", len(to.msgs))
	}

	current.CameraFollow = true
	f.OnTick(sim.Frame{Tick: 2})
	f.OnTick(sim.Frame{Tick: 3})
	if len(to.msgs) != 1 {
		t.Fatalf("sent %d messages, want 1", len(to.msgs))
	}
	msg, ok := to.msgs[0].(SettingsMsg)
	if !ok || !panel.Settings(msg).CameraFollow {
		t.Errorf("unexpected message %#v", to.msgs[0])
	}
}

func TestFollowToggledElsewhere(t *testing.T) {
	q := panel.NewQueue()
	m := selectControl(t, NewModel(testSettings(), q), panel.CameraFollow)

	applied := testSettings()
	applied.CameraFollow = true
	next, _ := m.Update(SettingsMsg(applied))
	m = next.(Model)
	if !m.Settings().CameraFollow {
		t.Fatal("panel did not pick up the applied settings")
	}

	m, _ = press(m, " ")
	changes := q.Drain()
	if len(changes) != 1 || changes[0].Value != false {
		t.Errorf("toggle after external change queued %v, want false", changes)
	}
}

func TestLiveRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)

	f := sim.Frame{Tick: 3, Time: 0.05}
	f.Bodies[0].Position = mgl64.Vec3{-10, 0, 0}
	f.Bodies[1].Position = mgl64.Vec3{-10, -10, 0}
	r.OnTick(f)

	out := buf.String()
	if !strings.Contains(out, "tick 3") {
		t.Error("header missing")
	}
	for _, c := range []string{"+", "o", "O", "*"} {
		if !strings.Contains(out, c) {
			t.Errorf("canvas missing %q", c)
		}
	}
	if len(r.trail) != 1 {
		t.Errorf("trail has %d points", len(r.trail))
	}

	f.Reset = true
	r.OnTick(f)
	if len(r.trail) != 1 {
		t.Errorf("reset did not clear the trail: %d", len(r.trail))
	}
}

func TestProject(t *testing.T) {
	if got := project(mgl64.Vec3{}); got != (cell{width / 2, height / 2}) {
		t.Errorf("origin projects to %v", got)
	}
	if got := project(mgl64.Vec3{extent, 0, 0}); got.x != width {
		t.Errorf("right edge projects to %v", got)
	}
}
