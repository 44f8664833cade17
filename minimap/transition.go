package minimap

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/common"
)

const (
	transitionBaseSpeed = 0.4
	transitionSpeedGain = 0.7
	// pan distance, in texture pixels, at which only the base speed remains
	transitionSlowDistance = 100.0
)

// Transition animates a ViewState from Start to End.
type Transition struct {
	Start    Frame
	End      Frame
	Progress float64
}

func NewTransition(start, end Frame) *Transition {
	return &Transition{Start: start, End: end}
}

// Speed is the progress rate per second. Short pans run up to 1.1x, long
// pans settle at the 0.4x base.
func (t *Transition) Speed() float64 {
	dist := t.Start.Pan.Sub(t.End.Pan).Len()
	return transitionBaseSpeed + transitionSpeedGain*(1-common.Clamp01(dist/transitionSlowDistance))
}

// Step advances progress by dt seconds and returns the interpolated frame.
// Non-positive dt leaves progress untouched.
func (t *Transition) Step(dt float64) Frame {
	if dt > 0 {
		t.Progress = common.Clamp01(t.Progress + dt*t.Speed())
	}
	return t.Frame()
}

// Frame returns the view at the current progress. Pan eases out fast, tilt
// swings past and settles, zoom overshoots and settles.
func (t *Transition) Frame() Frame {
	p := t.Progress
	pw := EaseOutExpo(p)
	return Frame{
		Pan: mgl64.Vec2{
			common.Lerp(t.Start.Pan.X(), t.End.Pan.X(), pw),
			common.Lerp(t.Start.Pan.Y(), t.End.Pan.Y(), pw),
		},
		Tilt: common.Lerp(t.Start.Tilt, t.End.Tilt, EaseInOutBack(p)),
		// overshoot must not flip or collapse the view
		Zoom: ClampZoom(common.Lerp(t.Start.Zoom, t.End.Zoom, EaseOutBack(p))),
	}
}

func (t *Transition) Done() bool {
	return t.Progress >= 1
}
