// Package scene holds the renderable state of the pendulum view: meshes,
// lines, arrow helpers, the camera and the background. Renderers read it;
// the simulation writes it.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Mesh is a unit sphere drawn at Position, scaled uniformly.
type Mesh struct {
	Name     string
	Position mgl64.Vec3
	Scale    float64
	Color    colorful.Color
}

// Radius is the drawn radius of the scaled unit sphere.
func (m *Mesh) Radius() float64 { return m.Scale }

type Scene struct {
	Background colorful.Color
	Pendulum1  *Mesh
	Pendulum2  *Mesh
	Arms       *Line
	Trail      *Line
	Arrows     [2]Arrow
	Camera     *Camera
}

func New() *Scene {
	return &Scene{
		Background: colorful.Color{},
		Pendulum1:  &Mesh{Name: "pendulum1", Scale: 1},
		Pendulum2:  &Mesh{Name: "pendulum2", Scale: 1},
		Arms: &Line{
			Name:     "arms",
			Vertices: make([]mgl64.Vec3, 3),
			Color:    MustHex("#333333"),
		},
		Trail: &Line{
			Name:         "trail",
			VertexColors: true,
			DashSize:     1,
			GapSize:      0,
		},
		Camera: NewCamera(),
	}
}
