package sim

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/panel"
	"github.com/san-kum/powerpendulum/internal/physics"
	"github.com/san-kum/powerpendulum/internal/scene"
)

// bind registers one setter per panel control.
func (p *Pendulum) bind(d *panel.Dispatcher) {
	d.OnFloat(panel.Pendulum1Mass, p.massSetter(p.Body1, p.Scene.Pendulum1))
	d.OnFloat(panel.Pendulum2Mass, p.massSetter(p.Body2, p.Scene.Pendulum2))
	d.OnColor(panel.Pendulum1Color, func(c colorful.Color) { p.Scene.Pendulum1.Color = c })
	d.OnColor(panel.Pendulum2Color, func(c colorful.Color) { p.Scene.Pendulum2.Color = c })

	d.OnFloat(panel.Arm1Length, p.Link1.SetDistance)
	d.OnFloat(panel.Arm2Length, p.Link2.SetDistance)
	d.OnColor(panel.ArmsColor, func(c colorful.Color) { p.Scene.Arms.Color = c })
	d.OnColor(panel.BackgroundColor, func(c colorful.Color) { p.Scene.Background = c })

	d.OnFloat(panel.TrailLength, func(v float64) {
		p.Trail.SetMaxLength(int(v))
		p.updateTrailLine()
	})
	d.OnFloat(panel.TrailDash, func(v float64) {
		p.Trail.Dash = v
		p.Scene.Trail.DashSize = v
	})
	d.OnFloat(panel.TrailGap, func(v float64) {
		p.Trail.Gap = v
		p.Scene.Trail.GapSize = v
	})

	d.OnBool(panel.CameraFollow, func(follow bool) {
		p.Follow = follow
		p.updateCamera()
	})
}

func (p *Pendulum) massSetter(b *physics.Body, m *scene.Mesh) func(float64) {
	return func(mass float64) {
		b.SetMass(mass)
		m.Scale = mass / 2
	}
}
