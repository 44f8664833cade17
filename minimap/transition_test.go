package minimap

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTransitionSpeed(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want float64
	}{
		{"no_pan", 0, 1.1},
		{"half", 50, 0.75},
		{"at_limit", 100, 0.4},
		{"beyond_limit", 1000, 0.4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := NewTransition(Frame{Zoom: 1}, Frame{Pan: mgl64.Vec2{0, tc.dist}, Zoom: 1})
			if got := tr.Speed(); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("Speed() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTransitionStep(t *testing.T) {
	start := Frame{Pan: mgl64.Vec2{0, 0}, Tilt: 0, Zoom: 1}
	end := Frame{Pan: mgl64.Vec2{30, 40}, Tilt: 1, Zoom: 4}

	t.Run("non_positive_dt_is_ignored", func(t *testing.T) {
		tr := NewTransition(start, end)
		tr.Step(0)
		tr.Step(-1)
		if tr.Progress != 0 {
			t.Fatalf("progress = %v", tr.Progress)
		}
	})

	t.Run("clamps_at_one", func(t *testing.T) {
		tr := NewTransition(start, end)
		f := tr.Step(100)
		if tr.Progress != 1 || !tr.Done() {
			t.Fatalf("progress = %v", tr.Progress)
		}
		if f.Pan != end.Pan || f.Tilt != end.Tilt || f.Zoom != end.Zoom {
			t.Fatalf("final frame %+v, want %+v", f, end)
		}
	})

	t.Run("curves_differ_per_channel", func(t *testing.T) {
		tr := NewTransition(start, end)
		tr.Progress = 0.25
		f := tr.Frame()

		panW := f.Pan.Len() / end.Pan.Len()
		if math.Abs(panW-EaseOutExpo(0.25)) > 1e-9 {
			t.Fatalf("pan weight %v, want %v", panW, EaseOutExpo(0.25))
		}
		if math.Abs(f.Tilt-EaseInOutBack(0.25)) > 1e-9 {
			t.Fatalf("tilt %v, want %v", f.Tilt, EaseInOutBack(0.25))
		}
		if math.Abs(f.Zoom-(1+3*EaseOutBack(0.25))) > 1e-9 {
			t.Fatalf("zoom %v", f.Zoom)
		}
	})

	t.Run("zoom_overshoot_stays_in_range", func(t *testing.T) {
		tr := NewTransition(Frame{Zoom: MaxZoom}, Frame{Zoom: MinZoom})
		for p := 0.0; p <= 1; p += 0.01 {
			tr.Progress = p
			if z := tr.Frame().Zoom; z < MinZoom || z > MaxZoom {
				t.Fatalf("zoom %v out of range at %v", z, p)
			}
		}
	})
}

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]func(float64) float64{
		"out_expo":    EaseOutExpo,
		"in_out_back": EaseInOutBack,
		"out_back":    EaseOutBack,
	}
	for name, fn := range curves {
		t.Run(name, func(t *testing.T) {
			if fn(0) != 0 || fn(1) != 1 {
				t.Fatalf("endpoints %v, %v", fn(0), fn(1))
			}
			if fn(-1) != 0 || fn(2) != 1 {
				t.Fatalf("out-of-range inputs not pinned")
			}
		})
	}

	if EaseOutBack(0.6) <= 1 {
		t.Fatalf("out back should overshoot, got %v", EaseOutBack(0.6))
	}
	if EaseInOutBack(0.1) >= 0 {
		t.Fatalf("in-out back should dip below zero early, got %v", EaseInOutBack(0.1))
	}
}
