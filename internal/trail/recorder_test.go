package trail

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func point(i int) mgl64.Vec3 { return mgl64.Vec3{float64(i), 0, 0} }

func TestRecordBounded(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		records int
		want    int
	}{
		{"under capacity", 10, 5, 5},
		{"at capacity", 10, 10, 10},
		{"over capacity", 10, 25, 10},
		{"zero max", 0, 10, 0},
		{"one", 1, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.max)
			for i := 0; i < tt.records; i++ {
				r.Record(point(i))
				if r.Len() > tt.max {
					t.Fatalf("record %d: len %d exceeds max %d", i, r.Len(), tt.max)
				}
			}
			if r.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", r.Len(), tt.want)
			}
		})
	}
}

func TestSlidingWindowOrder(t *testing.T) {
	r := New(3)
	for i := 0; i < 7; i++ {
		r.Record(point(i))
	}

	for i, want := range []float64{4, 5, 6} {
		if got := r.At(i).Position.X(); got != want {
			t.Errorf("At(%d) = %f, want %f", i, got, want)
		}
	}

	last, ok := r.Last()
	if !ok || last.Position.X() != 6 {
		t.Errorf("Last() = %v, %v", last, ok)
	}
}

func TestHueWraps(t *testing.T) {
	r := New(5)
	for i := 0; i < HueCount*2+7; i++ {
		r.Record(point(i))
		if h := r.Hue(); h < 0 || h >= HueCount {
			t.Fatalf("hue %d out of range", h)
		}
	}

	r.hue = 359
	if next := r.NextHue(); next != 0 {
		t.Errorf("359 advanced to %d, want 0", next)
	}
}

func TestSampleHueMatchesCounter(t *testing.T) {
	r := New(10)
	r.Record(point(0))
	r.Record(point(1))

	if r.At(0).Hue != 1 || r.At(1).Hue != 2 {
		t.Errorf("hues = %d, %d; want 1, 2", r.At(0).Hue, r.At(1).Hue)
	}
}

func TestSetMaxLengthShrinks(t *testing.T) {
	r := New(5)
	for i := 0; i < 8; i++ {
		r.Record(point(i))
	}

	r.SetMaxLength(2)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r.At(0).Position.X() != 6 || r.At(1).Position.X() != 7 {
		t.Errorf("kept %v, %v; want newest two", r.At(0), r.At(1))
	}

	r.Record(point(8))
	if r.Len() != 2 || r.At(1).Position.X() != 8 {
		t.Errorf("record after shrink: len %d, last %v", r.Len(), r.At(1))
	}
}

func TestSetMaxLengthGrows(t *testing.T) {
	r := New(2)
	for i := 0; i < 5; i++ {
		r.Record(point(i))
	}

	r.SetMaxLength(4)
	r.Record(point(5))
	r.Record(point(6))

	want := []float64{3, 4, 5, 6}
	if r.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(want))
	}
	for i, w := range want {
		if got := r.At(i).Position.X(); got != w {
			t.Errorf("At(%d) = %f, want %f", i, got, w)
		}
	}
}

func TestClear(t *testing.T) {
	r := New(3)
	for i := 0; i < 5; i++ {
		r.Record(point(i))
	}
	hue := r.Hue()

	r.Clear()

	if r.Len() != 0 {
		t.Errorf("Len() = %d after clear", r.Len())
	}
	if _, ok := r.Last(); ok {
		t.Error("Last() reported a sample after clear")
	}
	if r.Hue() != hue {
		t.Errorf("clear reset hue to %d", r.Hue())
	}

	r.Record(point(9))
	if r.Len() != 1 || r.At(0).Position.X() != 9 {
		t.Errorf("record after clear: %v", r.At(0))
	}
}

func TestEachVisitsOldestFirst(t *testing.T) {
	r := New(3)
	for i := 0; i < 4; i++ {
		r.Record(point(i))
	}

	var got []float64
	r.Each(func(i int, s Sample) { got = append(got, s.Position.X()) })

	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Each order = %v, want %v", got, want)
			break
		}
	}
}
