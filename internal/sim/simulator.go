package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/physics"
	"github.com/san-kum/powerpendulum/internal/scene"
)

type Simulator struct {
	cfg  *config.Config
	log  logr.Logger
	seed int64

	p          *Pendulum
	dispatcher *panel.Dispatcher
	queue      *panel.Queue
	reset      *ResetController

	tick  int
	time  float64
	frame Frame
	err   error

	metrics   []Metric
	observers []Observer
}

// New builds a fresh pendulum from cfg. A zero seed is replaced by the
// current time so every launch differs.
func New(cfg *config.Config, log logr.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := newPendulum(cfg, rand.New(rand.NewSource(seed)))

	s := &Simulator{
		cfg:   cfg,
		log:   log.WithValues("seed", seed),
		seed:  seed,
		p:     p,
		queue: panel.NewQueue(),
		reset: NewResetController(cfg.StallThreshold, vec(cfg.Pendulum1.Position), vec(cfg.Pendulum2.Position)),
	}
	s.dispatcher = panel.NewDispatcher(p.settings())
	p.bind(s.dispatcher)

	p.materialize()
	s.frame = s.snapshot(false)
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Seed() int64              { return s.seed }
func (s *Simulator) Scene() *scene.Scene      { return s.p.Scene }
func (s *Simulator) Queue() *panel.Queue      { return s.queue }
func (s *Simulator) World() *physics.World    { return s.p.World }
func (s *Simulator) Settings() panel.Settings { return s.dispatcher.Settings() }

// Frame is the snapshot taken at the end of the last tick.
func (s *Simulator) Frame() Frame { return s.frame }

// Resets is the number of stall resets so far.
func (s *Simulator) Resets() int { return s.reset.Count() }

// Bodies returns the two pendulum bodies, inner first.
func (s *Simulator) Bodies() (*physics.Body, *physics.Body) {
	return s.p.Body1, s.p.Body2
}

// Pendulum exposes the full simulation context. It must only be used from
// the goroutine that calls Tick.
func (s *Simulator) Pendulum() *Pendulum { return s.p }

func (s *Simulator) Resize(width, height int) {
	s.p.Scene.Camera.Resize(width, height)
}

// Apply runs a panel change immediately. Front-ends on other goroutines
// push onto Queue instead.
func (s *Simulator) Apply(c panel.Change) error {
	if err := s.dispatcher.Apply(c); err != nil {
		return err
	}
	s.log.V(1).Info("panel change", "name", c.Name, "value", c.Value)
	return nil
}

func (s *Simulator) drain() {
	for _, c := range s.queue.Drain() {
		if err := s.Apply(c); err != nil {
			s.log.Error(err, "panel change rejected", "name", c.Name)
		}
	}
}

// Tick advances one frame: queued edits, one physics step, the scene
// update and the stall check. A non-finite body state is fatal and is
// returned again by every later call.
func (s *Simulator) Tick() error {
	if s.err != nil {
		return s.err
	}
	s.drain()

	p := s.p
	p.World.Step(s.cfg.Dt)
	s.tick++
	s.time += s.cfg.Dt

	p.syncMeshes()
	p.updateCamera()
	p.updateArms()
	p.Trail.Record(p.Body2.Position)
	p.updateTrailLine()
	p.updateArrows()

	didReset := s.reset.Check(p.Body1, p.Body2)
	if didReset {
		p.Trail.Clear()
		p.materialize()
		s.reset.Done()
		s.log.Info("pendulum stalled, reset to seed positions", "tick", s.tick, "resets", s.reset.Count())
	}

	if err := s.validate(); err != nil {
		s.err = err
		s.log.Error(err, "simulation stopped")
		return err
	}

	s.frame = s.snapshot(didReset)
	for _, m := range s.metrics {
		m.Observe(s.frame)
	}
	for _, obs := range s.observers {
		obs.OnTick(s.frame)
	}
	return nil
}

func (s *Simulator) validate() error {
	for i, b := range []*physics.Body{s.p.Body1, s.p.Body2} {
		if !b.IsFinite() {
			body := fmt.Sprintf("pendulum%d", i+1)
			return &SimulationError{Tick: s.tick, Time: s.time, Body: body, Wrapped: ErrNonFiniteState}
		}
	}
	return nil
}

func (s *Simulator) snapshot(didReset bool) Frame {
	p := s.p
	return Frame{
		Tick: s.tick,
		Time: s.time,
		Bodies: [2]BodyState{
			{Position: p.Body1.Position, Velocity: p.Body1.Velocity, Mass: p.Body1.Mass()},
			{Position: p.Body2.Position, Velocity: p.Body2.Velocity, Mass: p.Body2.Mass()},
		},
		TrailLen: p.Trail.Len(),
		Hue:      p.Trail.Hue(),
		Reset:    didReset,
	}
}

// Run ticks n times, stopping early when ctx is done or the state goes
// non-finite. The partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, ticks int) (*Result, error) {
	if ticks < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTicks, ticks)
	}

	result := &Result{
		Frames:  make([]Frame, 0, ticks+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}
	result.Frames = append(result.Frames, s.frame)

	var runErr error
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
			runErr = s.Tick()
		}
		if runErr != nil {
			break
		}
		result.Frames = append(result.Frames, s.frame)
		result.Ticks++
	}

	result.Resets = s.reset.Count()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}
