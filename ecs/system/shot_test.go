package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/prefabs"
	. "github.com/smartystreets/goconvey/convey"
)

func TestShotEstimator(t *testing.T) {
	est, err := newShotEstimator(prefabs.ShotScript)
	if err != nil {
		t.Fatalf("load shot script: %v", err)
	}

	tests := []struct {
		name     string
		club     int
		power    float64
		wantClub string
		wantDist float64
		wantLoft float64
	}{
		{"driver_full", 0, 1, "Driver", 170, 0.26},
		{"putter_quarter", 5, 0.25, "Putter", 15, 0},
		{"negative_club_wraps", -1, 1, "Putter", 30, 0},
		{"club_wraps_past_end", 7, 1, "3 Wood", 140, 0.30},
		{"power_floor", 0, 0, "Driver", 170 * math.Sqrt(0.05), 0.26},
		{"power_ceiling", 3, 4, "9 Iron", 75, 0.62},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := est.Estimate(tc.club, tc.power)
			if err != nil {
				t.Fatal(err)
			}
			if got.Club != tc.wantClub {
				t.Fatalf("club = %q, want %q", got.Club, tc.wantClub)
			}
			if math.Abs(got.Distance-tc.wantDist) > 1e-9 {
				t.Fatalf("distance = %v, want %v", got.Distance, tc.wantDist)
			}
			if math.Abs(got.Loft-tc.wantLoft) > 1e-9 {
				t.Fatalf("loft = %v, want %v", got.Loft, tc.wantLoft)
			}
		})
	}
}

func TestShotEstimatorNotLoaded(t *testing.T) {
	var est *shotEstimator
	if _, err := est.Estimate(0, 1); err == nil {
		t.Fatal("expected an error from an unloaded estimator")
	}
}

func TestLaunchVelocity(t *testing.T) {
	s := &ShotSystem{ball: &prefabs.BallSpec{Damping: 0.4, GreenDamping: 0.6, Gravity: 20}}
	dir := mgl64.Vec3{1, 0, 0}

	s.estimate = ShotEstimate{Distance: 12}
	vx, vy, vz := s.launchVelocity(dir, true)
	if vy != 0 || vz != 0 {
		t.Fatalf("a putt should roll along the plane, got (%v, %v, %v)", vx, vy, vz)
	}
	if roll := vx / -math.Log(0.6); math.Abs(roll-12) > 1e-9 {
		t.Fatalf("putt rolls %v, want 12", roll)
	}

	vx, _, _ = s.launchVelocity(dir, false)
	if roll := vx / -math.Log(0.4); math.Abs(roll-12) > 1e-9 {
		t.Fatalf("fairway roll %v, want 12", roll)
	}

	s.estimate = ShotEstimate{Distance: 100, Loft: 0.5}
	vx, vy, _ = s.launchVelocity(dir, false)
	// flat ground carry: vh * 2vy / g
	if carry := vx * 2 * vy / 20; math.Abs(carry-100) > 1e-9 {
		t.Fatalf("carry = %v, want 100", carry)
	}
	if math.Abs(math.Atan2(vy, vx)-0.5) > 1e-9 {
		t.Fatalf("launch angle = %v, want 0.5", math.Atan2(vy, vx))
	}
}

func TestShouldAimAtPin(t *testing.T) {
	hole := testHole()
	cases := []struct {
		name string
		pos  mgl64.Vec3
		want bool
	}{
		{"on_tee", hole.Tee, false},
		{"short_of_target", mgl64.Vec3{150, 0, -100}, false},
		{"past_target", mgl64.Vec3{200, 0, -100}, true},
		{"on_green", mgl64.Vec3{280, 0, -96}, true},
	}
	for _, c := range cases {
		if got := shouldAimAtPin(c.pos, hole); got != c.want {
			t.Fatalf("%s: shouldAimAtPin = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestShotSystem(t *testing.T) {
	Convey("Given a hole with the active player on the tee", t, func() {
		w, _ := newMinimapWorld(t, 2)
		hole := testHole()
		addTestHole(t, w, hole)
		ball0, _ := addTestBall(t, w, 0, hole.Tee)
		ball1, _ := addTestBall(t, w, 1, hole.Tee.Add(mgl64.Vec3{1.5, 0, 0}))

		indicator := ecs.CreateEntity(w)
		So(ecs.Add(w, indicator, component.StrokeIndicatorComponent.Kind(), &component.StrokeIndicator{}), ShouldBeNil)
		So(ecs.Add(w, indicator, component.TransformComponent.Kind(), &component.Transform{}), ShouldBeNil)

		physics := NewBallPhysicsSystem(nil)
		physics.Update(w)

		shots, err := NewShotSystem(nil)
		So(err, ShouldBeNil)

		stateEnt, _ := w.First(component.GolfStateComponent.Kind())
		state := mustGet(t, w, stateEnt, component.GolfStateComponent)
		input := mustGet(t, w, stateEnt, component.InputComponent)
		mmEnt, _ := w.First(component.MinimapComponent.Kind())

		Convey("The estimate and indicator follow the selected club", func() {
			shots.Update(w)
			So(state.EstimatedShotDistance, ShouldAlmostEqual, 170, 1e-9)
			So(shots.Estimate().Club, ShouldEqual, "Driver")

			ind := mustGet(t, w, indicator, component.TransformComponent)
			So(ind.X, ShouldAlmostEqual, hole.Tee.X()+170, 1e-9)
			So(ind.Z, ShouldAlmostEqual, hole.Tee.Z(), 1e-9)

			input.ClubDelta = 1
			shots.Update(w)
			So(state.Club, ShouldEqual, 1)
			So(state.EstimatedShotDistance, ShouldAlmostEqual, 140, 1e-9)
		})

		Convey("Power input is clamped", func() {
			input.PowerDelta = -1000
			shots.Update(w)
			So(state.Power, ShouldEqual, minPower)
		})

		Convey("A swing launches the active ball", func() {
			input.Swing = true
			shots.Update(w)

			b := mustGet(t, w, ball0, component.BallComponent)
			pb := mustGet(t, w, ball0, component.PhysicsBodyComponent)
			So(b.Strokes, ShouldEqual, 1)
			So(b.State, ShouldEqual, component.BallFlight)
			So(b.VY, ShouldBeGreaterThan, 0)
			So(pb.Body.Velocity().X, ShouldBeGreaterThan, 0)
			So(state.ShotInProgress, ShouldBeTrue)
			So(mustGet(t, w, ball1, component.BallComponent).Strokes, ShouldEqual, 0)

			Convey("Nothing else happens while the ball moves", func() {
				shots.Update(w)
				So(b.Strokes, ShouldEqual, 1)
				So(state.ActivePlayerID, ShouldEqual, 0)
			})

			Convey("The turn passes once every ball rests", func() {
				input.Swing = false
				for i := 0; i < 3000 && b.State.Moving(); i++ {
					physics.Update(w)
				}
				So(b.State, ShouldEqual, component.BallIdle)

				shots.Update(w)
				So(state.ShotInProgress, ShouldBeFalse)
				So(state.ActivePlayerID, ShouldEqual, 1)
				So(state.AimAtPin, ShouldBeFalse)

				req, ok := ecs.Get(w, mmEnt, component.MinimapRetargetRequestComponent.Kind())
				So(ok, ShouldBeTrue)
				So(req.Reset, ShouldBeFalse)
			})
		})

		Convey("Holed balls are skipped", func() {
			mustGet(t, w, ball1, component.BallComponent).Holed = true
			state.ShotInProgress = true
			shots.Update(w)
			So(state.ActivePlayerID, ShouldEqual, 0)
		})

		Convey("The hole advances once everyone has holed out", func() {
			mustGet(t, w, ball0, component.BallComponent).Holed = true
			mustGet(t, w, ball1, component.BallComponent).Holed = true
			state.ShotInProgress = true
			shots.Update(w)

			req, ok := ecs.Get(w, stateEnt, component.HoleChangeRequestComponent.Kind())
			So(ok, ShouldBeTrue)
			So(req.Index, ShouldEqual, 1)
		})

		Convey("Next hole input asks for the following hole", func() {
			state.HoleIndex = 2
			input.NextHole = true
			input.Swing = true
			shots.Update(w)

			req, ok := ecs.Get(w, stateEnt, component.HoleChangeRequestComponent.Kind())
			So(ok, ShouldBeTrue)
			So(req.Index, ShouldEqual, 3)
			So(state.ShotInProgress, ShouldBeFalse)
		})

		Convey("Reset view input asks for the whole hole", func() {
			input.ResetView = true
			shots.Update(w)

			req, ok := ecs.Get(w, mmEnt, component.MinimapRetargetRequestComponent.Kind())
			So(ok, ShouldBeTrue)
			So(req.Reset, ShouldBeTrue)
		})
	})
}
