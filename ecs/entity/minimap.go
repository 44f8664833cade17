package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
)

const defaultMarkerSize = 5.0

// NewMinimap creates the minimap entity with an unconfigured view. The view
// gets a texture once a hole is loaded.
func NewMinimap(w *ecs.World, spec *prefabs.MinimapSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("minimap: nil spec")
	}

	mm := &component.Minimap{Controller: minimap.NewController(minimap.NewViewState())}
	ApplyMinimapSpec(mm, spec)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MinimapComponent.Kind(), mm); err != nil {
		return 0, fmt.Errorf("minimap: add minimap component: %w", err)
	}
	return e, nil
}

// ApplyMinimapSpec copies screen placement and display settings onto mm.
func ApplyMinimapSpec(mm *component.Minimap, spec *prefabs.MinimapSpec) {
	mm.ScreenX = spec.ScreenX
	mm.ScreenY = spec.ScreenY
	mm.MarkerSize = spec.MarkerSize
	if mm.MarkerSize <= 0 {
		mm.MarkerSize = defaultMarkerSize
	}
	if view := mm.View(); view != nil {
		view.DisplayRatio = 1
		if spec.DisplayRatio > 0 {
			view.DisplayRatio = spec.DisplayRatio
		}
	}
}

// ConfigureMinimap points the minimap at a new hole: it sets the texture
// size and map scale, snaps the view to the whole-hole overview and builds
// the matrix so markers can be placed straight away. Any transition in
// flight is dropped.
func ConfigureMinimap(mm *component.Minimap, textureSize, mapScale mgl64.Vec2, bounds minimap.Bounds) {
	view := mm.View()
	if view == nil {
		return
	}
	mm.Controller.Cancel()
	view.Configure(textureSize, mapScale)
	view.SetFrame(minimap.ResetFrame(view, bounds))
	view.UpdateShader(mm)
}

// RequestRetarget asks for a new minimap transition next frame. Requests
// made before the retarget system runs overwrite each other.
func RequestRetarget(w *ecs.World, reset bool) error {
	e, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return fmt.Errorf("minimap: no minimap entity")
	}
	if err := ecs.Add(w, e, component.MinimapRetargetRequestComponent.Kind(), &component.MinimapRetargetRequest{Reset: reset}); err != nil {
		return fmt.Errorf("minimap: add retarget request: %w", err)
	}
	return nil
}
