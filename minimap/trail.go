package minimap

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	TrailSampleInterval = 0.25
	TrailLifetime       = 2.5

	// number of points at the tail that fade in
	trailFadeLength = 8
)

// TrailPoint is one vertex of a trail polyline. Positions are kept in world
// space so the trail follows the view as it pans and rotates.
type TrailPoint struct {
	World  mgl64.Vec3
	Colour color.RGBA
}

// Trail is a sparse polyline left behind by a moving ball. It is cleared once
// nothing has been appended for TrailLifetime seconds.
type Trail struct {
	Colour color.RGBA

	points  []TrailPoint
	elapsed float64
	decay   float64
}

func NewTrail(c color.RGBA) *Trail {
	return &Trail{Colour: c}
}

// Sample records pos if at least TrailSampleInterval seconds have passed
// since the previous point. The first point of a trail is recorded at once.
// Every call restarts the decay timer.
func (t *Trail) Sample(dt float64, pos mgl64.Vec3) bool {
	t.decay = TrailLifetime
	t.elapsed += dt
	if len(t.points) > 0 && t.elapsed < TrailSampleInterval {
		return false
	}
	t.elapsed = 0
	t.points = append(t.points, TrailPoint{World: pos, Colour: t.Colour})
	return true
}

// Update runs the decay timer and clears the trail when it expires.
func (t *Trail) Update(dt float64) {
	if len(t.points) == 0 {
		return
	}
	t.decay -= dt
	if t.decay <= 0 {
		t.Reset()
	}
}

// Reset clears the polyline and restarts both timers.
func (t *Trail) Reset() {
	t.points = t.points[:0]
	t.elapsed = 0
	t.decay = TrailLifetime
}

func (t *Trail) Len() int {
	return len(t.points)
}

// Points returns the polyline with the tail faded in and the whole trail
// dimmed as it decays.
func (t *Trail) Points() []TrailPoint {
	out := make([]TrailPoint, len(t.points))
	fade := t.decay / TrailLifetime
	if fade > 1 {
		fade = 1
	}
	for i, p := range t.points {
		a := fade
		if i < trailFadeLength {
			a *= float64(i+1) / float64(trailFadeLength+1)
		}
		c := p.Colour
		c.R = uint8(float64(c.R) * a)
		c.G = uint8(float64(c.G) * a)
		c.B = uint8(float64(c.B) * a)
		c.A = uint8(float64(c.A) * a)
		out[i] = TrailPoint{World: p.World, Colour: c}
	}
	return out
}
