package minimap

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestController() *Controller {
	view := newTestView(512, 512)
	view.Pan = mgl64.Vec2{256, 256}
	view.UpdateShader(nil)
	return NewController(view)
}

func TestControllerRetarget(t *testing.T) {
	hole := Bounds{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{200, 0, 80}}
	track := Context{
		Bounds: hole,
		Player: mgl64.Vec3{0, 0, 0},
		Pin:    mgl64.Vec3{0, 0, -50},
		Target: mgl64.Vec3{0, 0, -50},
	}

	Convey("Given a controller with a configured view", t, func() {
		c := newTestController()

		Convey("Retarget starts a transition from the current view", func() {
			end := c.Retarget(track, true)

			So(c.Active(), ShouldBeTrue)
			So(c.Transition().Start, ShouldResemble, c.View().Frame())
			So(c.Transition().End, ShouldResemble, end)
			So(c.Transition().Progress, ShouldEqual, 0)
		})

		Convey("Two retargets in the same frame leave only the second", func() {
			first := c.Retarget(track, true)
			firstTransition := c.Transition()
			second := c.Retarget(track, false)

			So(c.Transition(), ShouldNotPointTo, firstTransition)
			So(c.Transition().End, ShouldResemble, second)
			So(c.Transition().End, ShouldNotResemble, first)
		})

		Convey("Retargeting mid-flight restarts from where the view is", func() {
			c.Retarget(track, true)
			for i := 0; i < 10; i++ {
				c.Update(1.0/60, nil)
			}
			mid := c.View().Frame()
			c.Retarget(track, false)

			So(c.Transition().Start, ShouldResemble, mid)
			So(c.Transition().Progress, ShouldEqual, 0)
		})

		Convey("Cancel drops the transition and keeps the view", func() {
			before := c.View().Frame()
			c.Retarget(track, true)
			c.Cancel()

			So(c.Active(), ShouldBeFalse)
			So(c.Update(1, nil), ShouldBeFalse)
			So(c.View().Frame(), ShouldResemble, before)
		})
	})
}

func TestControllerConvergence(t *testing.T) {
	hole := Bounds{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{200, 0, 80}}
	steps := []float64{1.0 / 240, 1.0 / 60, 0.1, 2.5}

	for _, reset := range []bool{true, false} {
		for _, dt := range steps {
			c := newTestController()
			ctx := Context{Bounds: hole, Target: mgl64.Vec3{80, 0, -60}}
			end := c.Retarget(ctx, reset)

			sink := &recordingSink{}
			maxFrames := int(math.Ceil(1/(transitionBaseSpeed*dt))) + 1
			last := 0.0
			frames := 0
			for c.Active() {
				tr := c.Transition()
				c.Update(dt, sink)
				frames++
				if tr.Progress < last {
					t.Fatalf("progress went backwards: %v -> %v", last, tr.Progress)
				}
				last = tr.Progress
				if frames > maxFrames {
					t.Fatalf("reset=%v dt=%v: not finished after %d frames", reset, dt, frames)
				}
			}

			if last != 1 {
				t.Fatalf("final progress %v, want 1", last)
			}
			if c.Transition() != nil {
				t.Fatalf("transition should be released once finished")
			}
			if sink.calls != frames {
				t.Fatalf("expected UpdateShader every frame, got %d calls for %d frames", sink.calls, frames)
			}

			got := c.View().Frame()
			if !approxVec2(got.Pan, end.Pan, 1e-9) || math.Abs(got.Tilt-end.Tilt) > 1e-9 || math.Abs(got.Zoom-end.Zoom) > 1e-9 {
				t.Fatalf("view %+v did not land on %+v", got, end)
			}
		}
	}
}

func TestControllerTrackingOrientsPinUp(t *testing.T) {
	c := newTestController()
	ctx := Context{
		Player: mgl64.Vec3{0, 0, 0},
		Pin:    mgl64.Vec3{0, 0, -50},
		Target: mgl64.Vec3{0, 0, -50},
	}
	c.Retarget(ctx, false)
	for c.Update(1.0/60, nil) {
	}

	player := c.ToMapCoords(ctx.Player)
	pin := c.ToMapCoords(ctx.Pin)
	mid := c.ToMapCoords(mgl64.Vec3{0, 0, -25})

	// the map sprite is drawn rotated a quarter turn, so "up" in map space is -X
	if !approxVec2(mid, mgl64.Vec2{256, 256}, 1e-6) {
		t.Fatalf("midpoint should be centred, got %v", mid)
	}
	if pin.X() >= player.X() || math.Abs(pin.Y()-player.Y()) > 1e-6 {
		t.Fatalf("pin %v should lie on -X of player %v", pin, player)
	}
}
