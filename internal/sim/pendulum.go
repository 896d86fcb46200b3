package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/physics"
	"github.com/san-kum/powerpendulum/internal/scene"
	"github.com/san-kum/powerpendulum/internal/trail"
)

// Pendulum owns the world, the scene and the trail for one double
// pendulum. Everything here is touched by the tick goroutine only.
type Pendulum struct {
	World  *physics.World
	Anchor *physics.Body
	Body1  *physics.Body
	Body2  *physics.Body
	Link1  *physics.DistanceConstraint
	Link2  *physics.DistanceConstraint
	Trail  *trail.Recorder
	Scene  *scene.Scene

	Follow        bool
	ArrowsEnabled bool
	ArrowScale    float64
	ArrowColor    colorful.Color
}

type bodySetup struct {
	mass  float64
	color colorful.Color
	pos   mgl64.Vec3
}

func vec(p [3]float64) mgl64.Vec3 { return mgl64.Vec3{p[0], p[1], p[2]} }

// randomBody draws a mass in [0, 10), a color and a position inside the
// cube [-extent, extent)³.
func randomBody(rng *rand.Rand, extent float64) bodySetup {
	mass := max(config.MinMass, rng.Float64()*config.MaxMass)
	color := scene.FromHex(uint32(rng.Float64() * 0xffffff))
	pos := mgl64.Vec3{
		rng.Float64()*2*extent - extent,
		rng.Float64()*2*extent - extent,
		rng.Float64()*2*extent - extent,
	}
	return bodySetup{mass: mass, color: color, pos: pos}
}

func configuredBody(p config.PendulumConfig) bodySetup {
	return bodySetup{mass: p.Mass, color: scene.MustHex(p.Color), pos: vec(p.Position)}
}

func newPendulum(cfg *config.Config, rng *rand.Rand) *Pendulum {
	var s1, s2 bodySetup
	if cfg.Randomize {
		s1 = randomBody(rng, 10)
		s2 = randomBody(rng, 20)
	} else {
		s1 = configuredBody(cfg.Pendulum1)
		s2 = configuredBody(cfg.Pendulum2)
	}

	world := physics.NewWorld(mgl64.Vec3{0, -cfg.Gravity, 0})
	world.Substeps = cfg.Substeps

	anchor := physics.NewStaticBody(mgl64.Vec3{})
	body1 := physics.NewBody(s1.pos, s1.mass, cfg.Damping)
	body2 := physics.NewBody(s2.pos, s2.mass, cfg.Damping)
	world.AddBody(anchor)
	world.AddBody(body1)
	world.AddBody(body2)

	link1 := physics.NewDistanceConstraint(anchor, body1)
	link2 := physics.NewDistanceConstraint(body1, body2)
	if cfg.Arms.Length1 > 0 {
		link1.SetDistance(cfg.Arms.Length1)
	}
	if cfg.Arms.Length2 > 0 {
		link2.SetDistance(cfg.Arms.Length2)
	}
	world.AddConstraint(link1)
	world.AddConstraint(link2)

	rec := trail.New(cfg.Trail.Length)
	rec.Dash = cfg.Trail.Dash
	rec.Gap = cfg.Trail.Gap

	sc := scene.New()
	sc.Background = scene.MustHex(cfg.Background)
	sc.Pendulum1.Color = s1.color
	sc.Pendulum1.Scale = s1.mass / 2
	sc.Pendulum2.Color = s2.color
	sc.Pendulum2.Scale = s2.mass / 2
	sc.Arms.Color = scene.MustHex(cfg.Arms.Color)
	sc.Trail.DashSize = rec.Dash
	sc.Trail.GapSize = rec.Gap
	sc.Camera.Position = vec(cfg.Camera.Position)
	sc.Camera.Fov = cfg.Camera.Fov

	return &Pendulum{
		World:         world,
		Anchor:        anchor,
		Body1:         body1,
		Body2:         body2,
		Link1:         link1,
		Link2:         link2,
		Trail:         rec,
		Scene:         sc,
		Follow:        cfg.Camera.Follow,
		ArrowsEnabled: cfg.Arrows.Enabled,
		ArrowScale:    cfg.Arrows.Scale,
		ArrowColor:    scene.MustHex(cfg.Arrows.Color),
	}
}

// settings reports the live values the panel starts from.
func (p *Pendulum) settings() panel.Settings {
	return panel.Settings{
		Pendulum1Mass:   p.Body1.Mass(),
		Pendulum2Mass:   p.Body2.Mass(),
		Pendulum1Color:  p.Scene.Pendulum1.Color,
		Pendulum2Color:  p.Scene.Pendulum2.Color,
		Arm1Length:      p.Link1.Distance,
		Arm2Length:      p.Link2.Distance,
		ArmsColor:       p.Scene.Arms.Color,
		BackgroundColor: p.Scene.Background,
		TrailLength:     p.Trail.MaxLength(),
		TrailDash:       p.Trail.Dash,
		TrailGap:        p.Trail.Gap,
		CameraFollow:    p.Follow,
	}
}

// materialize rebuilds every derived scene element from the bodies and
// the trail without touching physics state.
func (p *Pendulum) materialize() {
	p.syncMeshes()
	p.updateCamera()
	p.updateArms()
	p.updateTrailLine()
	p.updateArrows()
}
