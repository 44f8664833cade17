package system

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
	. "github.com/smartystreets/goconvey/convey"
)

// newMinimapWorld returns a world whose minimap shows a 320x200 texture
// one-to-one: world (x, z) lands on map pixel (x, -z).
func newMinimapWorld(t *testing.T, players int) (*ecs.World, *component.Minimap) {
	t.Helper()
	w := ecs.NewWorld()

	view := minimap.NewViewState()
	view.Configure(mgl64.Vec2{320, 200}, mgl64.Vec2{1, 1})
	view.Pan = mgl64.Vec2{160, 100}
	mm := &component.Minimap{Controller: minimap.NewController(view), MarkerSize: 4}
	view.UpdateShader(mm)

	mmEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, mmEnt, component.MinimapComponent.Kind(), mm); err != nil {
		t.Fatal(err)
	}

	stateEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, stateEnt, component.GolfStateComponent.Kind(), &component.GolfState{PlayerCount: players, Power: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, stateEnt, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatal(err)
	}
	return w, mm
}

func addTestBall(t *testing.T, w *ecs.World, playerID int, pos mgl64.Vec3) (ecs.Entity, ecs.Entity) {
	t.Helper()
	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.BallComponent.Kind(), &component.Ball{PlayerID: playerID}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{X: pos.X(), Y: pos.Y(), Z: pos.Z()}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, ball, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 0.5, Mass: 0.045}); err != nil {
		t.Fatal(err)
	}

	marker := ecs.CreateEntity(w)
	if err := ecs.Add(w, marker, component.MinimapMarkerComponent.Kind(), &component.MinimapMarker{
		Parent:      ball.Handle(),
		Kind:        component.MarkerBall,
		PlayerID:    playerID,
		Colour:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		CurrentTime: 1,
		Trail:       minimap.NewTrail(color.RGBA{A: 255}),
		Scale:       1,
		Alpha:       1,
	}); err != nil {
		t.Fatal(err)
	}
	return ball, marker
}

func addTestHole(t *testing.T, w *ecs.World, hole *component.Hole) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HoleComponent.Kind(), hole); err != nil {
		t.Fatal(err)
	}
	return e
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, h.Kind())
	if !ok {
		t.Fatalf("entity %v has no %T", e, v)
	}
	return v
}

func TestMinimapMarkerSystem(t *testing.T) {
	Convey("Given a minimap with two players' balls", t, func() {
		w, _ := newMinimapWorld(t, 2)
		sys := NewMinimapMarkerSystem(prefabs.MarkerSpec{})
		ball0, marker0 := addTestBall(t, w, 0, mgl64.Vec3{100, 0, -50})
		_, marker1 := addTestBall(t, w, 1, mgl64.Vec3{120, 0, -60})

		Convey("Markers land on the projected ball position", func() {
			sys.Update(w)
			m := mustGet(t, w, marker0, component.MinimapMarkerComponent)

			So(m.X, ShouldAlmostEqual, 100, 1e-6)
			So(m.Y, ShouldAlmostEqual, 50, 1e-6)
			So(m.Visible, ShouldBeTrue)
			for i, want := range [4]float64{98, 48, 102, 52} {
				So(m.Clip[i], ShouldAlmostEqual, want, 1e-6)
			}
		})

		Convey("A marker whose ball is destroyed removes itself without disturbing others", func() {
			So(ecs.DestroyEntity(w, ball0), ShouldBeTrue)

			So(func() { sys.Update(w) }, ShouldNotPanic)
			So(ecs.IsAlive(w, marker0), ShouldBeFalse)
			So(ecs.IsAlive(w, marker1), ShouldBeTrue)
			So(len(w.Query(component.MinimapMarkerComponent.Kind())), ShouldEqual, 1)
		})

		Convey("A recycled parent slot does not revive the stale marker", func() {
			ecs.DestroyEntity(w, ball0)
			reused, _ := addTestBall(t, w, 0, mgl64.Vec3{10, 0, -10})
			So(reused.Handle(), ShouldNotEqual, ball0.Handle())

			sys.Update(w)
			So(ecs.IsAlive(w, marker0), ShouldBeFalse)
		})

		Convey("The inactive player's marker fades toward the inactive alpha", func() {
			sys.Update(w)
			active := mustGet(t, w, marker0, component.MinimapMarkerComponent)
			inactive := mustGet(t, w, marker1, component.MinimapMarkerComponent)

			So(active.Alpha, ShouldEqual, 1)
			So(inactive.Alpha, ShouldAlmostEqual, 1-frameDT*defaultFadeSpeed, 1e-9)

			for i := 0; i < 120; i++ {
				sys.Update(w)
			}
			So(inactive.Alpha, ShouldAlmostEqual, defaultInactiveAlpha, 1e-9)
			So(active.Alpha, ShouldEqual, 1)
		})

		Convey("Height scales the marker", func() {
			tr := mustGet(t, w, ball0, component.TransformComponent)
			tr.Y = 40
			mustGet(t, w, ball0, component.BallComponent).State = component.BallFlight

			sys.Update(w)
			m := mustGet(t, w, marker0, component.MinimapMarkerComponent)
			So(m.Scale, ShouldAlmostEqual, 2, 1e-9)
		})

		Convey("A ball coming to rest pops its marker", func() {
			ball := mustGet(t, w, ball0, component.BallComponent)
			m := mustGet(t, w, marker0, component.MinimapMarkerComponent)

			ball.State = component.BallRoll
			sys.Update(w)
			So(m.State, ShouldEqual, component.MarkerIdle)

			ball.State = component.BallIdle
			sys.Update(w)
			So(m.State, ShouldEqual, component.MarkerAnimating)

			ct := 1 - frameDT*defaultPopSpeed
			So(m.CurrentTime, ShouldAlmostEqual, ct, 1e-9)
			So(m.Scale, ShouldAlmostEqual, 1+(defaultPopScale-1)*ct, 1e-9)
			So(m.Alpha, ShouldAlmostEqual, 1-ct, 1e-9)

			for i := 0; i < 30 && m.State == component.MarkerAnimating; i++ {
				sys.Update(w)
			}
			So(m.State, ShouldEqual, component.MarkerIdle)
			So(m.CurrentTime, ShouldEqual, 1)
			So(m.Scale, ShouldEqual, 1)
		})

		Convey("A moving ball leaves a sparse trail", func() {
			ball := mustGet(t, w, ball0, component.BallComponent)
			m := mustGet(t, w, marker0, component.MinimapMarkerComponent)
			ball.State = component.BallRoll

			sys.Update(w)
			So(m.Trail.Len(), ShouldEqual, 1)

			for i := 0; i < 19; i++ {
				sys.Update(w)
			}
			So(m.Trail.Len(), ShouldEqual, 2)

			ball.State = component.BallIdle
			for i := 0; i < int(minimap.TrailLifetime/frameDT)+2; i++ {
				sys.Update(w)
			}
			So(m.Trail.Len(), ShouldEqual, 0)
		})

		Convey("Markers off the map are hidden", func() {
			tr := mustGet(t, w, ball0, component.TransformComponent)
			tr.X = -10

			sys.Update(w)
			So(mustGet(t, w, marker0, component.MinimapMarkerComponent).Visible, ShouldBeFalse)
		})
	})
}

func TestMinimapMarkerSystemWaitsForView(t *testing.T) {
	w := ecs.NewWorld()
	mmEnt := ecs.CreateEntity(w)
	mm := &component.Minimap{Controller: minimap.NewController(nil), MarkerSize: 4}
	if err := ecs.Add(w, mmEnt, component.MinimapComponent.Kind(), mm); err != nil {
		t.Fatal(err)
	}
	_, marker := addTestBall(t, w, 0, mgl64.Vec3{1, 0, -1})

	NewMinimapMarkerSystem(prefabs.MarkerSpec{}).Update(w)

	m := mustGet(t, w, marker, component.MinimapMarkerComponent)
	if m.Visible || m.X != 0 || m.Y != 0 {
		t.Fatalf("marker should be untouched before the view is built, got %+v", m)
	}
}

func TestClipMarker(t *testing.T) {
	size := mgl64.Vec2{320, 200}
	tests := []struct {
		name    string
		x, y    float64
		side    float64
		want    [4]float64
		visible bool
	}{
		{"inside", 100, 50, 4, [4]float64{98, 48, 102, 52}, true},
		{"left_edge", 1, 50, 4, [4]float64{0, 48, 3, 52}, true},
		{"bottom_right_corner", 319, 199, 4, [4]float64{317, 197, 320, 200}, true},
		{"outside", -10, 50, 4, [4]float64{}, false},
		{"touching_edge", -2, 50, 4, [4]float64{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, visible := clipMarker(tc.x, tc.y, tc.side, size)
			if visible != tc.visible {
				t.Fatalf("visible = %v, want %v", visible, tc.visible)
			}
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > 1e-9 {
					t.Fatalf("clip = %v, want %v", got, tc.want)
				}
			}
		})
	}
}
