package sim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powerpendulum/internal/scene"
	"github.com/san-kum/powerpendulum/internal/trail"
)

// syncMeshes copies body positions onto the sphere meshes as-is.
func (p *Pendulum) syncMeshes() {
	p.Scene.Pendulum1.Position = p.Body1.Position
	p.Scene.Pendulum2.Position = p.Body2.Position
}

// updateCamera points the camera at the outer body when following, at
// the origin otherwise.
func (p *Pendulum) updateCamera() {
	if p.Follow {
		p.Scene.Camera.LookAt(p.Body2.Position)
		return
	}
	p.Scene.Camera.LookAt(mgl64.Vec3{})
}

func (p *Pendulum) updateArms() {
	arms := p.Scene.Arms
	arms.Vertices = append(arms.Vertices[:0], p.Anchor.Position, p.Body1.Position, p.Body2.Position)
}

// updateTrailLine copies the recorder window onto the trail line, oldest
// sample first, and recomputes dash distances over the whole line.
func (p *Pendulum) updateTrailLine() {
	line := p.Scene.Trail
	line.Reset()
	p.Trail.Each(func(_ int, s trail.Sample) {
		line.Append(s.Position, scene.Hue(s.Hue))
	})
	line.DashSize = p.Trail.Dash
	line.GapSize = p.Trail.Gap
	line.ComputeLineDistances()
}
