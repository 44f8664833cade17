package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/rs/zerolog/log"
)

// frameDT is the fixed step every system advances by.
const frameDT = 1.0 / ebiten.DefaultTPS

// MinimapRetargetSystem consumes retarget requests and steps the minimap
// view toward its target.
type MinimapRetargetSystem struct {
	dt float64
}

func NewMinimapRetargetSystem() *MinimapRetargetSystem {
	return &MinimapRetargetSystem{dt: frameDT}
}

func (s *MinimapRetargetSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return
	}
	mm, ok := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())
	if !ok || mm.Controller == nil {
		return
	}

	if req, ok := ecs.Get(w, mmEnt, component.MinimapRetargetRequestComponent.Kind()); ok {
		reset := req.Reset
		_ = ecs.Remove(w, mmEnt, component.MinimapRetargetRequestComponent.Kind())

		if ctx, ok := RetargetContext(w); ok && mm.View().Configured() {
			end := mm.Controller.Retarget(ctx, reset)
			log.Debug().
				Bool("reset", reset).
				Floats64("pan", end.Pan[:]).
				Float64("tilt", end.Tilt).
				Float64("zoom", end.Zoom).
				Msg("minimap retarget")
		}
	}

	mm.Controller.Update(s.dt, mm)
}

// RetargetContext gathers what the controller frames: the hole in play and
// the active player's ball. The tee stands in for a missing ball.
func RetargetContext(w *ecs.World) (minimap.Context, bool) {
	holeEnt, ok := w.First(component.HoleComponent.Kind())
	if !ok {
		return minimap.Context{}, false
	}
	hole, ok := ecs.Get(w, holeEnt, component.HoleComponent.Kind())
	if !ok {
		return minimap.Context{}, false
	}

	ctx := minimap.Context{
		Bounds:    hole.Bounds,
		Player:    hole.Tee,
		Pin:       hole.Pin,
		Target:    hole.Target,
		SubTarget: hole.SubTarget,
	}

	stateEnt, ok := w.First(component.GolfStateComponent.Kind())
	if !ok {
		return ctx, true
	}
	state, ok := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind())
	if !ok {
		return ctx, true
	}
	ctx.AimAtPin = state.AimAtPin
	ctx.EstimatedDistance = state.EstimatedShotDistance

	if _, _, t, ok := activeBall(w, state.ActivePlayerID); ok {
		ctx.Player = transformVec(t)
	}
	return ctx, true
}

// activeBall finds the ball belonging to playerID.
func activeBall(w *ecs.World, playerID int) (ecs.Entity, *component.Ball, *component.Transform, bool) {
	var (
		ent       ecs.Entity
		ball      *component.Ball
		transform *component.Transform
	)
	ecs.ForEach2(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Ball, t *component.Transform) {
		if ball == nil && b.PlayerID == playerID {
			ent, ball, transform = e, b, t
		}
	})
	return ent, ball, transform, ball != nil
}

func transformVec(t *component.Transform) mgl64.Vec3 {
	return mgl64.Vec3{t.X, t.Y, t.Z}
}
