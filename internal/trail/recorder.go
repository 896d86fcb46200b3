// Package trail records the recent path of the outer pendulum as a bounded
// sliding window of samples, each tagged with a cycling hue.
package trail

import "github.com/go-gl/mathgl/mgl64"

const (
	HueCount         = 360
	DefaultMaxLength = 150000
	DefaultDash      = 3.0
	DefaultGap       = 1.0
)

type Sample struct {
	Position mgl64.Vec3
	Hue      int
}

// Recorder is a ring buffer of samples. While it holds fewer than max
// samples they are stored in order from index 0; once full, head marks
// the oldest sample and new samples overwrite it.
type Recorder struct {
	buf  []Sample
	head int
	max  int
	hue  int

	Dash float64
	Gap  float64
}

func New(maxLength int) *Recorder {
	return &Recorder{
		max:  max(0, maxLength),
		Dash: DefaultDash,
		Gap:  DefaultGap,
	}
}

func (r *Recorder) Len() int       { return len(r.buf) }
func (r *Recorder) MaxLength() int { return r.max }

// Hue is the hue of the most recent sample.
func (r *Recorder) Hue() int { return r.hue }

// NextHue advances the hue counter, wrapping 359 to 0.
func (r *Recorder) NextHue() int {
	r.hue = (r.hue + 1) % HueCount
	return r.hue
}

// Record appends p with the next hue and evicts the oldest sample once
// the window is full. With a max length of zero nothing is kept.
func (r *Recorder) Record(p mgl64.Vec3) {
	s := Sample{Position: p, Hue: r.NextHue()}
	if r.max == 0 {
		return
	}
	if len(r.buf) < r.max {
		r.buf = append(r.buf, s)
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % len(r.buf)
}

// At returns the i-th sample, oldest first.
func (r *Recorder) At(i int) Sample {
	return r.buf[(r.head+i)%len(r.buf)]
}

// Each calls fn for every sample, oldest first.
func (r *Recorder) Each(fn func(i int, s Sample)) {
	for i := range r.buf {
		fn(i, r.At(i))
	}
}

// Last returns the newest sample.
func (r *Recorder) Last() (Sample, bool) {
	if len(r.buf) == 0 {
		return Sample{}, false
	}
	return r.At(len(r.buf) - 1), true
}

// SetMaxLength changes the window size. Shrinking drops the oldest
// samples immediately.
func (r *Recorder) SetMaxLength(n int) {
	n = max(0, n)
	r.linearize()
	if excess := len(r.buf) - n; excess > 0 {
		r.buf = append(r.buf[:0], r.buf[excess:]...)
	}
	r.max = n
}

// Clear drops every sample. The hue counter keeps running.
func (r *Recorder) Clear() {
	r.buf = r.buf[:0]
	r.head = 0
}

// linearize rotates the buffer so the oldest sample sits at index 0.
func (r *Recorder) linearize() {
	if r.head == 0 {
		return
	}
	ordered := make([]Sample, len(r.buf))
	for i := range ordered {
		ordered[i] = r.At(i)
	}
	r.buf = ordered
	r.head = 0
}
