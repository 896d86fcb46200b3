package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/scene"
	"github.com/san-kum/powerpendulum/internal/sim"
)

// Plane picks the two coordinates a trajectory is projected onto.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneZY
)

func ParsePlane(s string) (Plane, error) {
	switch strings.ToLower(s) {
	case "xy", "":
		return PlaneXY, nil
	case "xz":
		return PlaneXZ, nil
	case "zy":
		return PlaneZY, nil
	}
	return PlaneXY, fmt.Errorf("unknown plane %q (want xy, xz or zy)", s)
}

func (p Plane) project(v mgl64.Vec3) (float64, float64) {
	switch p {
	case PlaneXZ:
		return v.X(), v.Z()
	case PlaneZY:
		return v.Z(), v.Y()
	}
	return v.X(), v.Y()
}

// TrailToSVG draws the outer body's path as line segments colored by the
// trail hue of each frame. Segments that cross a stall reset are skipped.
func TrailToSVG(frames []sim.Frame, plane Plane, width, height int, background colorful.Color) string {
	if len(frames) < 2 {
		return ""
	}

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, f := range frames {
		xs[i], ys[i] = plane.project(f.Bodies[1].Position)
	}

	// Find bounds
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toScreen := func(i int) (float64, float64) {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke-width="1.5">
`, width, height, width, height, background.Hex()))

	for i := 1; i < len(frames); i++ {
		if frames[i].Reset {
			continue
		}
		x0, y0 := toScreen(i - 1)
		x1, y1 := toScreen(i)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x0, y0, x1, y1, scene.Hue(frames[i].Hue).Hex()))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
