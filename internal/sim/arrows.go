package sim

import (
	"github.com/san-kum/powerpendulum/internal/physics"
	"github.com/san-kum/powerpendulum/internal/scene"
)

func (p *Pendulum) velocityArrow(b *physics.Body) scene.Arrow {
	return scene.NewArrow(b.Velocity, b.Position, b.Speed()*p.ArrowScale, p.ArrowColor)
}

// updateArrows rebuilds both velocity arrows. Disabled arrows are left
// degenerate so renderers skip them.
func (p *Pendulum) updateArrows() {
	if !p.ArrowsEnabled {
		p.Scene.Arrows = [2]scene.Arrow{}
		return
	}
	p.Scene.Arrows[0] = p.velocityArrow(p.Body1)
	p.Scene.Arrows[1] = p.velocityArrow(p.Body2)
}
