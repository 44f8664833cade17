package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"golang.org/x/image/colornames"
)

var defaultPlayerColours = []color.RGBA{
	colornames.White,
	colornames.Gold,
	colornames.Tomato,
	colornames.Skyblue,
}

// NewMarker attaches a minimap marker to parent. The marker is a separate
// entity holding a weak reference, so destroying parent leaves it stale.
func NewMarker(w *ecs.World, parent ecs.Entity, kind component.MarkerKind, playerID int, c color.RGBA, trail *minimap.Trail) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MinimapMarkerComponent.Kind(), &component.MinimapMarker{
		Parent:      parent.Handle(),
		Kind:        kind,
		PlayerID:    playerID,
		Colour:      c,
		State:       component.MarkerIdle,
		CurrentTime: 1,
		Trail:       trail,
		Scale:       1,
		Alpha:       1,
	}); err != nil {
		return 0, fmt.Errorf("marker: add marker component: %w", err)
	}
	return e, nil
}

// PlayerColour returns the configured colour for a player, cycling through
// the palette.
func PlayerColour(palette []color.RGBA, playerID int) color.RGBA {
	if len(palette) == 0 {
		palette = defaultPlayerColours
	}
	if playerID < 0 {
		playerID = -playerID
	}
	return palette[playerID%len(palette)]
}
