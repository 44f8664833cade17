package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
)

const ballMass = 0.045

// NewBall places a player's ball at pos and gives it a minimap marker with a
// trail.
func NewBall(w *ecs.World, playerID int, pos mgl64.Vec3, spec *prefabs.BallSpec, c, trail color.RGBA) (ecs.Entity, error) {
	radius := 0.5
	if spec != nil && spec.Radius > 0 {
		radius = spec.Radius
	}

	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.BallComponent.Kind(), &component.Ball{PlayerID: playerID}); err != nil {
		return 0, fmt.Errorf("ball: add ball component: %w", err)
	}
	if err := ecs.Add(w, ball, component.TransformComponent.Kind(), &component.Transform{X: pos.X(), Y: pos.Y(), Z: pos.Z()}); err != nil {
		return 0, fmt.Errorf("ball: add transform: %w", err)
	}
	if err := ecs.Add(w, ball, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: radius, Mass: ballMass}); err != nil {
		return 0, fmt.Errorf("ball: add physics body: %w", err)
	}

	if _, err := NewMarker(w, ball, component.MarkerBall, playerID, c, minimap.NewTrail(trail)); err != nil {
		return 0, fmt.Errorf("ball: %w", err)
	}
	return ball, nil
}

// NewFlag places the flag on the pin.
func NewFlag(w *ecs.World, pin mgl64.Vec3, c color.RGBA) (ecs.Entity, error) {
	flag := ecs.CreateEntity(w)
	if err := ecs.Add(w, flag, component.FlagComponent.Kind(), &component.Flag{}); err != nil {
		return 0, fmt.Errorf("flag: add flag component: %w", err)
	}
	if err := ecs.Add(w, flag, component.TransformComponent.Kind(), &component.Transform{X: pin.X(), Y: pin.Y(), Z: pin.Z()}); err != nil {
		return 0, fmt.Errorf("flag: add transform: %w", err)
	}
	if _, err := NewMarker(w, flag, component.MarkerFlag, -1, c, nil); err != nil {
		return 0, fmt.Errorf("flag: %w", err)
	}
	return flag, nil
}

// NewStrokeIndicator creates the marker showing where the active player's
// shot is expected to finish. The shot system moves it.
func NewStrokeIndicator(w *ecs.World, playerID int, pos mgl64.Vec3, c color.RGBA) (ecs.Entity, error) {
	ind := ecs.CreateEntity(w)
	if err := ecs.Add(w, ind, component.StrokeIndicatorComponent.Kind(), &component.StrokeIndicator{PlayerID: playerID}); err != nil {
		return 0, fmt.Errorf("stroke indicator: add indicator component: %w", err)
	}
	if err := ecs.Add(w, ind, component.TransformComponent.Kind(), &component.Transform{X: pos.X(), Y: pos.Y(), Z: pos.Z()}); err != nil {
		return 0, fmt.Errorf("stroke indicator: add transform: %w", err)
	}
	if _, err := NewMarker(w, ind, component.MarkerStroke, playerID, c, nil); err != nil {
		return 0, fmt.Errorf("stroke indicator: %w", err)
	}
	return ind, nil
}
