package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powerpendulum/internal/sim"
)

const (
	width       = 70
	height      = 24
	extent      = 40.0 // world units from the anchor to the canvas edge
	trailPoints = 60
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type cell struct{ x, y int }

// LiveRenderer draws frames of a headless run as ASCII art, projected on
// the x-y plane with the anchor in the middle.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	trail     []cell
}

// NewLiveRenderer writes to out at most frameRate times a second. A zero
// frame rate draws every frame.
func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
		trail:     make([]cell, 0, trailPoints),
	}
}

func (r *LiveRenderer) OnTick(f sim.Frame) {
	if f.Reset {
		r.trail = r.trail[:0]
	}

	b2 := project(f.Bodies[1].Position)
	r.trail = append(r.trail, b2)
	if len(r.trail) > trailPoints {
		r.trail = r.trail[1:]
	}

	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.clear()
	r.drawPendulum(f)
	r.render(f)
}

func project(p mgl64.Vec3) cell {
	return cell{
		x: width/2 + int(p.X()/extent*width/2),
		y: height/2 - int(p.Y()/extent*height/2),
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(from, to cell, c rune) {
	x1, y1, x2, y2 := from.x, from.y, to.x, to.y
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) drawPendulum(f sim.Frame) {
	anchor := cell{width / 2, height / 2}
	b1 := project(f.Bodies[0].Position)
	b2 := project(f.Bodies[1].Position)

	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	r.line(anchor, b1, '*')
	r.line(b1, b2, '*')
	r.set(anchor.x, anchor.y, '+')
	r.set(b1.x, b1.y, 'o')
	r.set(b2.x, b2.y, 'O')
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  powerpendulum  t=%.2fs  tick %d\n", f.Time, f.Tick))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for i, body := range f.Bodies {
		b.WriteString(fmt.Sprintf("  p%d (%6.2f %6.2f %6.2f) |v|=%.2f\n", i+1,
			body.Position.X(), body.Position.Y(), body.Position.Z(), body.Velocity.Len()))
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
