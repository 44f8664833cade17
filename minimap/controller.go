package minimap

import "github.com/go-gl/mathgl/mgl64"

// Controller retargets a ViewState and animates it toward the new target. It
// owns at most one Transition; a new Retarget replaces the one in flight.
type Controller struct {
	view       *ViewState
	transition *Transition
}

func NewController(view *ViewState) *Controller {
	if view == nil {
		view = NewViewState()
	}
	return &Controller{view: view}
}

func (c *Controller) View() *ViewState {
	return c.view
}

// Transition returns the transition in flight, or nil.
func (c *Controller) Transition() *Transition {
	return c.transition
}

func (c *Controller) Active() bool {
	return c.transition != nil
}

// Cancel drops the transition in flight, leaving the view where it is.
func (c *Controller) Cancel() {
	c.transition = nil
}

// Retarget starts a transition from the current view to either the whole-hole
// overview (reset) or the player-relative tracking frame. It returns the
// target frame.
func (c *Controller) Retarget(ctx Context, reset bool) Frame {
	c.transition = nil

	start := c.view.Frame()
	var end Frame
	if reset {
		end = ResetFrame(c.view, ctx.Bounds)
	} else {
		end = TrackFrame(c.view, ctx)
	}

	c.transition = NewTransition(start, end)
	return end
}

// Update advances the transition by dt seconds and rebuilds the view matrix.
// The transition is released once it completes. It reports whether a
// transition is still in flight.
func (c *Controller) Update(dt float64, sink UniformSink) bool {
	if c.transition == nil {
		return false
	}

	c.view.SetFrame(c.transition.Step(dt))
	c.view.UpdateShader(sink)

	if c.transition.Done() {
		c.transition = nil
		return false
	}
	return true
}

// ToMapCoords places a world position on the minimap, compensating for the
// current pan, tilt and zoom.
func (c *Controller) ToMapCoords(world mgl64.Vec3) mgl64.Vec2 {
	return c.view.ToMapCoords(world)
}
