package system

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/fairway/common"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// PhysicsDebugSystem outlines the ball bodies on the course view and prints
// the active ball's motion.
type PhysicsDebugSystem struct {
	physics *BallPhysicsSystem
	course  *CourseViewSystem
}

func NewPhysicsDebugSystem(physics *BallPhysicsSystem, course *CourseViewSystem) *PhysicsDebugSystem {
	return &PhysicsDebugSystem{physics: physics, course: course}
}

func (s *PhysicsDebugSystem) Update(w *ecs.World) {}

func (s *PhysicsDebugSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil || s.physics == nil || s.course == nil {
		return
	}
	if _, _, ok := s.course.ToScreen(w, mgl64.Vec3{}); !ok {
		return
	}

	drawer := &physicsDebugDrawer{
		screen: screen,
		toScreen: func(v cp.Vector) (float64, float64) {
			x, y, _ := s.course.ToScreen(w, mgl64.Vec3{v.X, 0, v.Y})
			return x, y
		},
		scale: s.course.Scale(w),
	}
	cp.DrawSpace(s.physics.Space(), drawer)

	DrawBallStateDebug(w, screen)
}

// DrawBallStateDebug prints the active player's ball state in the bottom
// left corner.
func DrawBallStateDebug(w *ecs.World, screen *ebiten.Image) {
	stateEnt, ok := w.First(component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	state, ok := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	ent, ball, t, ok := activeBall(w, state.ActivePlayerID)
	if !ok {
		return
	}
	speed := 0.0
	if pb, ok := ecs.Get(w, ent, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		speed = pb.Body.Velocity().Length()
	}
	text := fmt.Sprintf("Ball State: %s\nHeight: %.2f\nVY: %.2f\nSpeed: %.2f\nAimAtPin: %v\nShotInProgress: %v\nComponents: %s",
		ball.State, t.Y, ball.VY, speed, state.AimAtPin, state.ShotInProgress,
		strings.Join(ecs.ComponentNames(w, ent), ", "))
	ebitenutil.DebugPrintAt(screen, text, 10, screen.Bounds().Dy()-116)
}

type physicsDebugDrawer struct {
	screen   *ebiten.Image
	toScreen func(cp.Vector) (float64, float64)
	// screen pixels per world unit
	scale float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	// a ball is far smaller than a pixel on the course view
	radius = math.Max(radius, 3/d.scale)
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2 / d.scale
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(common.Clamp01(float64(c.R)) * 255),
		G: uint8(common.Clamp01(float64(c.G)) * 255),
		B: uint8(common.Clamp01(float64(c.B)) * 255),
		A: uint8(common.Clamp01(float64(c.A)) * 255),
	}
}
