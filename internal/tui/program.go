package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/sim"
)

// NewProgram wraps the panel in a bubbletea program that stops with ctx.
func NewProgram(ctx context.Context, initial panel.Settings, queue *panel.Queue) *tea.Program {
	return tea.NewProgram(NewModel(initial, queue), tea.WithContext(ctx), tea.WithAltScreen())
}

type Sender interface {
	Send(msg tea.Msg)
}

// Forwarder is a simulation observer that passes every n-th frame, and
// every reset frame, on to a running panel. When settings is set, the
// panel also gets a SettingsMsg whenever the applied settings change, so
// edits made elsewhere (the window's follow key) show up in the panel.
type Forwarder struct {
	to       Sender
	every    int
	settings func() panel.Settings
	last     panel.Settings
}

func NewForwarder(to Sender, every int, settings func() panel.Settings) *Forwarder {
	f := &Forwarder{to: to, every: max(1, every), settings: settings}
	if settings != nil {
		f.last = settings()
	}
	return f
}

func (f *Forwarder) OnTick(frame sim.Frame) {
	if f.settings != nil {
		if s := f.settings(); s != f.last {
			f.last = s
			f.to.Send(SettingsMsg(s))
		}
	}
	if frame.Reset || frame.Tick%f.every == 0 {
		f.to.Send(FrameMsg(frame))
	}
}
