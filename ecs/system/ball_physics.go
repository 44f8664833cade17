package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/prefabs"
)

const (
	defaultBallDamping      = 0.35
	defaultBallGreenDamping = 0.55
	defaultBallGravity      = 30.0
	defaultBallBounce       = 0.3
	defaultBallStopSpeed    = 0.6
	defaultBallCupRadius    = 1.2

	// a landing slower than this does not bounce
	minBounceSpeed = 1.0
	// a ball faster than this rolls over the cup
	cupCaptureSpeed = 6.0
)

// BallPhysicsSystem moves balls across the course plane with chipmunk and
// integrates their height separately. The cp space has no gravity: its Y
// axis is world Z.
type BallPhysicsSystem struct {
	space *cp.Space
	dt    float64

	damping      float64
	greenDamping float64
	gravity      float64
	bounce       float64
	stopSpeed    float64
	cupRadius    float64

	bodies map[ecs.Entity]*cp.Body
}

func NewBallPhysicsSystem(spec *prefabs.BallSpec) *BallPhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	s := &BallPhysicsSystem{
		space:  space,
		dt:     frameDT,
		bodies: make(map[ecs.Entity]*cp.Body),
	}
	s.Configure(spec)
	return s
}

// Configure applies ball tunables; missing values keep the defaults.
func (s *BallPhysicsSystem) Configure(spec *prefabs.BallSpec) {
	if spec == nil {
		spec = &prefabs.BallSpec{}
	}
	s.damping = orDefault(spec.Damping, defaultBallDamping)
	s.greenDamping = orDefault(spec.GreenDamping, defaultBallGreenDamping)
	s.gravity = orDefault(spec.Gravity, defaultBallGravity)
	s.bounce = orDefault(spec.Bounce, defaultBallBounce)
	s.stopSpeed = orDefault(spec.StopSpeed, defaultBallStopSpeed)
	s.cupRadius = orDefault(spec.CupRadius, defaultBallCupRadius)
}

func (s *BallPhysicsSystem) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *BallPhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	var hole *component.Hole
	if holeEnt, ok := w.First(component.HoleComponent.Kind()); ok {
		hole, _ = ecs.Get(w, holeEnt, component.HoleComponent.Kind())
	}

	s.syncEntities(w)

	ecs.ForEach3(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, ball *component.Ball, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		k := 1.0
		if t.Y <= 0 && ball.VY <= 0 {
			k = s.damping
			if hole != nil && hole.OnGreen(transformVec(t)) {
				k = s.greenDamping
			}
		}
		pb.Body.UserData = k
	})

	s.space.Step(s.dt)

	ecs.ForEach3(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, ball *component.Ball, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		s.integrate(ball, t, pb.Body, hole)
	})
}

// integrate copies the plane position back, runs the height integrator and
// classifies the ball's motion.
func (s *BallPhysicsSystem) integrate(ball *component.Ball, t *component.Transform, body *cp.Body, hole *component.Hole) {
	p := body.Position()
	t.X, t.Z = p.X, p.Y

	if t.Y > 0 || ball.VY > 0 {
		t.Y += ball.VY * s.dt
		ball.VY -= s.gravity * s.dt
		if t.Y <= 0 {
			t.Y = 0
			ball.VY = -ball.VY * s.bounce
			if ball.VY < minBounceSpeed {
				ball.VY = 0
			}
		}
	}

	speed := body.Velocity().Length()
	airborne := t.Y > 0 || ball.VY > 0

	switch {
	case airborne:
		ball.State = component.BallFlight
	case hole != nil && !ball.Holed && speed < cupCaptureSpeed && planarDist(t, hole.Pin.X(), hole.Pin.Z()) < s.cupRadius:
		ball.Holed = true
		body.SetVelocity(0, 0)
		body.SetPosition(cp.Vector{X: hole.Pin.X(), Y: hole.Pin.Z()})
		t.X, t.Z = hole.Pin.X(), hole.Pin.Z()
		ball.State = component.BallIdle
	case speed < s.stopSpeed:
		body.SetVelocity(0, 0)
		ball.State = component.BallIdle
	case hole != nil && hole.OnGreen(transformVec(t)):
		ball.State = component.BallPutt
	default:
		ball.State = component.BallRoll
	}
}

// syncEntities creates bodies for new balls and drops bodies whose entity
// is gone.
func (s *BallPhysicsSystem) syncEntities(w *ecs.World) {
	for e, body := range s.bodies {
		if ecs.IsAlive(w, e) {
			continue
		}
		for _, shape := range bodyShapes(body) {
			s.space.RemoveShape(shape)
		}
		s.space.RemoveBody(body)
		delete(s.bodies, e)
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Body != nil {
			return
		}

		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		radius := pb.Radius
		if radius <= 0 {
			radius = 0.5
		}

		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
		body.SetPosition(cp.Vector{X: t.X, Y: t.Z})
		body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			k, ok := body.UserData.(float64)
			if !ok {
				k = 1
			}
			cp.BodyUpdateVelocity(body, cp.Vector{}, math.Pow(k, dt), dt)
		})

		shape := cp.NewCircle(body, radius, cp.Vector{})
		// balls roll through each other
		shape.SetSensor(true)

		s.space.AddBody(body)
		s.space.AddShape(shape)

		pb.Body = body
		pb.Shape = shape
		s.bodies[e] = body
	})
}

// Launch gives a resting ball its shot velocity: vx/vz on the plane, vy up.
func Launch(ball *component.Ball, pb *component.PhysicsBody, vx, vy, vz float64) bool {
	if ball == nil || pb == nil || pb.Body == nil {
		return false
	}
	pb.Body.SetVelocity(vx, vz)
	ball.VY = vy
	if vy > 0 {
		ball.State = component.BallFlight
	} else {
		ball.State = component.BallRoll
	}
	return true
}

func bodyShapes(body *cp.Body) []*cp.Shape {
	var shapes []*cp.Shape
	body.EachShape(func(shape *cp.Shape) {
		shapes = append(shapes, shape)
	})
	return shapes
}

func planarDist(t *component.Transform, x, z float64) float64 {
	return math.Hypot(t.X-x, t.Z-z)
}
