package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
)

func runUntilIdle(s *BallPhysicsSystem, w *ecs.World, b *component.Ball, frames int) {
	for i := 0; i < frames && b.State.Moving(); i++ {
		s.Update(w)
	}
}

func TestBallPhysicsCreatesBodies(t *testing.T) {
	w := ecs.NewWorld()
	ball, _ := addTestBall(t, w, 0, mgl64.Vec3{5, 0, -7})
	s := NewBallPhysicsSystem(nil)

	s.Update(w)
	pb := mustGet(t, w, ball, component.PhysicsBodyComponent)
	if pb.Body == nil || pb.Shape == nil {
		t.Fatal("expected a body and shape")
	}
	if p := pb.Body.Position(); p.X != 5 || p.Y != -7 {
		t.Fatalf("body at %v, want (5, -7)", p)
	}
	if mustGet(t, w, ball, component.BallComponent).State != component.BallIdle {
		t.Fatal("a resting ball should be idle")
	}

	ecs.DestroyEntity(w, ball)
	s.Update(w)
	if len(s.bodies) != 0 {
		t.Fatalf("expected the body to be removed, %d left", len(s.bodies))
	}
}

func TestBallPhysicsRoll(t *testing.T) {
	w := ecs.NewWorld()
	ball, _ := addTestBall(t, w, 0, mgl64.Vec3{0, 0, 0})
	s := NewBallPhysicsSystem(&prefabs.BallSpec{Damping: 0.4, StopSpeed: 0.1})
	s.Update(w)

	b := mustGet(t, w, ball, component.BallComponent)
	pb := mustGet(t, w, ball, component.PhysicsBodyComponent)
	tr := mustGet(t, w, ball, component.TransformComponent)

	v := 10.0
	if !Launch(b, pb, v, 0, 0) {
		t.Fatal("launch failed")
	}
	if b.State != component.BallRoll {
		t.Fatalf("state = %v, want roll", b.State)
	}

	runUntilIdle(s, w, b, 1200)
	if b.State != component.BallIdle {
		t.Fatal("ball never stopped")
	}
	if tr.Y != 0 {
		t.Fatalf("a rolled ball should stay on the ground, y = %v", tr.Y)
	}
	want := v / -math.Log(0.4)
	if math.Abs(tr.X-want) > 0.5 {
		t.Fatalf("rolled to %v, want about %v", tr.X, want)
	}
}

func TestBallPhysicsFlight(t *testing.T) {
	w := ecs.NewWorld()
	ball, _ := addTestBall(t, w, 0, mgl64.Vec3{0, 0, 0})
	s := NewBallPhysicsSystem(nil)
	s.Update(w)

	b := mustGet(t, w, ball, component.BallComponent)
	pb := mustGet(t, w, ball, component.PhysicsBodyComponent)
	tr := mustGet(t, w, ball, component.TransformComponent)

	Launch(b, pb, 5, 12, 0)
	s.Update(w)
	if b.State != component.BallFlight || tr.Y <= 0 {
		t.Fatalf("expected the ball airborne, state %v y %v", b.State, tr.Y)
	}

	peak := 0.0
	for i := 0; i < 1200 && b.State.Moving(); i++ {
		s.Update(w)
		peak = math.Max(peak, tr.Y)
	}
	if b.State != component.BallIdle {
		t.Fatal("ball never stopped")
	}
	if tr.Y != 0 || b.VY != 0 {
		t.Fatalf("ball should rest on the ground, y %v vy %v", tr.Y, b.VY)
	}
	// v^2 / 2g
	if want := 12.0 * 12 / (2 * defaultBallGravity); math.Abs(peak-want) > 0.5 {
		t.Fatalf("peak %v, want about %v", peak, want)
	}
	if tr.X <= 0 {
		t.Fatalf("ball should travel forward, x = %v", tr.X)
	}
}

func TestBallPhysicsCupCapture(t *testing.T) {
	w := ecs.NewWorld()
	addTestHole(t, w, &component.Hole{
		Pin:         mgl64.Vec3{10, 0, 0},
		GreenRadius: 5,
		Bounds:      minimap.Bounds{Max: mgl64.Vec3{20, 0, 0}},
	})
	ball, _ := addTestBall(t, w, 0, mgl64.Vec3{7, 0, 0})
	s := NewBallPhysicsSystem(nil)
	s.Update(w)

	b := mustGet(t, w, ball, component.BallComponent)
	pb := mustGet(t, w, ball, component.PhysicsBodyComponent)
	tr := mustGet(t, w, ball, component.TransformComponent)

	Launch(b, pb, 4, 0, 0)
	s.Update(w)
	if b.State != component.BallPutt {
		t.Fatalf("a ball rolling on the green should be putting, got %v", b.State)
	}

	runUntilIdle(s, w, b, 600)
	if !b.Holed {
		t.Fatalf("expected the ball in the cup, stopped at %v", tr.X)
	}
	if tr.X != 10 || tr.Z != 0 {
		t.Fatalf("holed ball should sit on the pin, got (%v, %v)", tr.X, tr.Z)
	}
}

func TestBallPhysicsFastBallRollsOver(t *testing.T) {
	w := ecs.NewWorld()
	addTestHole(t, w, &component.Hole{Pin: mgl64.Vec3{10, 0, 0}})
	ball, _ := addTestBall(t, w, 0, mgl64.Vec3{9.5, 0, 0})
	s := NewBallPhysicsSystem(nil)
	s.Update(w)

	b := mustGet(t, w, ball, component.BallComponent)
	Launch(b, mustGet(t, w, ball, component.PhysicsBodyComponent), 40, 0, 0)
	s.Update(w)
	if b.Holed {
		t.Fatal("a fast ball should not drop")
	}
}

func TestLaunchWithoutBody(t *testing.T) {
	if Launch(&component.Ball{}, &component.PhysicsBody{}, 1, 1, 1) {
		t.Fatal("launch without a body should fail")
	}
}
