package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Line is a polyline. With VertexColors set each vertex carries its own
// color in Colors; otherwise Color applies to the whole line.
type Line struct {
	Name         string
	Vertices     []mgl64.Vec3
	Colors       []colorful.Color
	Color        colorful.Color
	VertexColors bool

	DashSize float64
	GapSize  float64
	// Distances holds the cumulative length up to each vertex, filled by
	// ComputeLineDistances.
	Distances []float64
}

// Reset empties the line while keeping its buffers.
func (l *Line) Reset() {
	l.Vertices = l.Vertices[:0]
	l.Colors = l.Colors[:0]
	l.Distances = l.Distances[:0]
}

func (l *Line) Append(v mgl64.Vec3, c colorful.Color) {
	l.Vertices = append(l.Vertices, v)
	l.Colors = append(l.Colors, c)
}

// ComputeLineDistances recomputes the cumulative length of every vertex
// from the full vertex sequence.
func (l *Line) ComputeLineDistances() {
	l.Distances = l.Distances[:0]
	total := 0.0
	for i, v := range l.Vertices {
		if i > 0 {
			total += v.Sub(l.Vertices[i-1]).Len()
		}
		l.Distances = append(l.Distances, total)
	}
}

// Length is the total polyline length as of the last ComputeLineDistances.
func (l *Line) Length() float64 {
	if len(l.Distances) == 0 {
		return 0
	}
	return l.Distances[len(l.Distances)-1]
}

// SegmentVisible reports whether segment i (from vertex i to i+1) starts
// inside a dash. A zero gap draws every segment; a zero dash draws none.
func (l *Line) SegmentVisible(i int) bool {
	if l.GapSize <= 0 {
		return true
	}
	if l.DashSize <= 0 {
		return false
	}
	if i < 0 || i >= len(l.Distances) {
		return false
	}
	return math.Mod(l.Distances[i], l.DashSize+l.GapSize) < l.DashSize
}

// ColorAt returns the color of vertex i.
func (l *Line) ColorAt(i int) colorful.Color {
	if l.VertexColors && i >= 0 && i < len(l.Colors) {
		return l.Colors[i]
	}
	return l.Color
}
