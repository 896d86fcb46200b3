package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/powerpendulum/internal/scene"
)

const (
	sphereRings  = 16
	sphereSlices = 16
	coneSides    = 12
)

func (a *App) drawScene(sc *scene.Scene) {
	eye := sc.Camera.Position

	a.drawLine(sc.Arms)
	a.drawLine(sc.Trail)

	for _, m := range []*scene.Mesh{sc.Pendulum1, sc.Pendulum2} {
		col := shade(m.Color, m.Position, eye, LightPosition)
		rl.DrawSphereEx(toVector3(m.Position), float32(m.Radius()), sphereRings, sphereSlices, toColor(col))
	}

	for _, arrow := range sc.Arrows {
		a.drawArrow(arrow)
	}
}

// drawLine draws every visible segment of l, colored by its first vertex.
func (a *App) drawLine(l *scene.Line) {
	for i := 0; i+1 < len(l.Vertices); i++ {
		if !l.SegmentVisible(i) {
			continue
		}
		rl.DrawLine3D(toVector3(l.Vertices[i]), toVector3(l.Vertices[i+1]), toColor(l.ColorAt(i)))
	}
}

func (a *App) drawArrow(arrow scene.Arrow) {
	if arrow.Degenerate() {
		return
	}
	col := toColor(arrow.Color)
	shaftEnd := toVector3(arrow.ShaftEnd())
	rl.DrawLine3D(toVector3(arrow.Origin), shaftEnd, col)
	rl.DrawCylinderEx(shaftEnd, toVector3(arrow.Tip()), float32(arrow.HeadWidth()), 0, coneSides, col)
}
