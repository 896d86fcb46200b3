package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/sim"
)

const hueStep = 10.0

// FrameMsg carries the latest simulation frame into the panel.
type FrameMsg sim.Frame

// SettingsMsg replaces the panel's values with the ones the simulation
// applied.
type SettingsMsg panel.Settings

// Model is the terminal parameter panel. Every edit is validated against
// a local copy of the settings and then pushed onto the queue; the
// simulation applies it on its next tick.
type Model struct {
	settings panel.Settings
	controls []panel.Control
	queue    *panel.Queue

	cursor  int
	editing bool
	editBuf string
	status  string
	failed  bool

	frame    sim.Frame
	hasFrame bool
	resets   int

	width  int
	height int
}

func NewModel(initial panel.Settings, queue *panel.Queue) Model {
	return Model{
		settings: initial,
		controls: panel.Controls(),
		queue:    queue,
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Settings is the panel's view of the current values.
func (m Model) Settings() panel.Settings { return m.settings }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case SettingsMsg:
		m.settings = panel.Settings(msg)
	case FrameMsg:
		m.frame = sim.Frame(msg)
		m.hasFrame = true
		if m.frame.Reset {
			m.resets++
		}
	}
	return m, nil
}

func (m Model) current() panel.Control { return m.controls[m.cursor] }

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		return m.editKey(msg)
	}

	ctrl := m.current()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.controls)-1 {
			m.cursor++
		}
	case "left", "h":
		m = m.nudge(ctrl, -1)
	case "right", "l":
		m = m.nudge(ctrl, 1)
	case "shift+left", "H":
		m = m.nudge(ctrl, -10)
	case "shift+right", "L":
		m = m.nudge(ctrl, 10)
	case " ":
		if ctrl.Kind == panel.KindBool {
			m = m.nudge(ctrl, 1)
		}
	case "enter":
		if ctrl.Kind == panel.KindBool {
			m = m.nudge(ctrl, 1)
			break
		}
		m.editing = true
		m.editBuf = m.valueString(ctrl)
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m = m.push(panel.Change{Name: m.current().Name, Value: m.editBuf})
		m.editing = false
		m.editBuf = ""
	case "esc":
		m.editing = false
		m.editBuf = ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case "ctrl+c":
		return m, tea.Quit
	default:
		if s := msg.String(); len(s) == 1 && accepts(m.current().Kind, s[0]) {
			m.editBuf += s
		}
	}
	return m, nil
}

func accepts(kind panel.Kind, c byte) bool {
	switch kind {
	case panel.KindColor:
		return c == '#' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	case panel.KindFloat, panel.KindInt:
		return (c >= '0' && c <= '9') || c == '.' || c == '-'
	}
	return false
}

// nudge moves a control by n steps: numbers by their step size, colors
// around the hue wheel and flags by toggling.
func (m Model) nudge(ctrl panel.Control, n int) Model {
	switch ctrl.Kind {
	case panel.KindFloat, panel.KindInt:
		v, _ := m.settings.Float(ctrl.Name)
		return m.push(panel.Change{Name: ctrl.Name, Value: v + float64(n)*stepSize(ctrl)})
	case panel.KindColor:
		c, _ := m.settings.Color(ctrl.Name)
		h, s, l := c.Hsl()
		if s == 0 {
			s, l = 1, 0.5
		}
		next := colorful.Hsl(wrapHue(h+float64(n)*hueStep), s, l)
		return m.push(panel.Change{Name: ctrl.Name, Value: next.Hex()})
	case panel.KindBool:
		b, _ := m.settings.Bool(ctrl.Name)
		return m.push(panel.Change{Name: ctrl.Name, Value: !b})
	}
	return m
}

func stepSize(ctrl panel.Control) float64 {
	if ctrl.Step > 0 {
		return ctrl.Step
	}
	return (ctrl.Max - ctrl.Min) / 100
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

// push validates c against the local settings and queues it.
func (m Model) push(c panel.Change) Model {
	if err := m.settings.Apply(c); err != nil {
		m.status = err.Error()
		m.failed = true
		return m
	}
	m.queue.Push(c)
	ctrl, _ := panel.Lookup(c.Name)
	m.status = fmt.Sprintf("%s = %s", c.Name, m.valueString(ctrl))
	m.failed = false
	return m
}

func (m Model) valueString(ctrl panel.Control) string {
	switch ctrl.Kind {
	case panel.KindFloat:
		v, _ := m.settings.Float(ctrl.Name)
		return strconv.FormatFloat(v, 'f', 2, 64)
	case panel.KindInt:
		v, _ := m.settings.Float(ctrl.Name)
		return strconv.Itoa(int(v))
	case panel.KindColor:
		c, _ := m.settings.Color(ctrl.Name)
		return c.Hex()
	case panel.KindBool:
		b, _ := m.settings.Bool(ctrl.Name)
		if b {
			return "on"
		}
		return "off"
	}
	return ""
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("       " + cyan.Render("p o w e r p e n d u l u m") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	for i, ctrl := range m.controls {
		val := m.valueString(ctrl)
		if m.editing && i == m.cursor {
			val = m.editBuf + "▋"
		}
		if ctrl.Kind == panel.KindColor {
			c, _ := m.settings.Color(ctrl.Name)
			val = swatch(c.Hex()) + " " + val
		}

		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-18s", ctrl.Label)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-18s", ctrl.Label)) + dim.Render(val) + "\n")
		}
	}

	b.WriteString("\n")
	if m.hasFrame {
		f := m.frame
		b.WriteString(dim.Render(fmt.Sprintf("      t %.1fs  tick %d  trail %d  resets %d", f.Time, f.Tick, f.TrailLen, m.resets)) + "\n")
	}
	if m.status != "" {
		style := green
		if m.failed {
			style = red
		}
		b.WriteString("      " + style.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  shift faster  enter edit  q quit") + "\n")

	return b.String()
}
