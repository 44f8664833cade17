package component

import (
	"image/color"

	"github.com/milk9111/fairway/minimap"
)

type MarkerKind int

const (
	MarkerBall MarkerKind = iota
	MarkerFlag
	MarkerStroke
)

type MarkerState int

const (
	MarkerIdle MarkerState = iota
	// MarkerAnimating plays the pop shown when a stroke completes.
	MarkerAnimating
)

// MinimapMarker places a tracked world entity on the minimap. Parent is a
// weak reference (ecs.Entity is uint64): the marker never keeps its parent
// alive and is removed once the parent is gone.
type MinimapMarker struct {
	Parent   uint64
	Kind     MarkerKind
	PlayerID int
	Colour   color.RGBA

	State       MarkerState
	CurrentTime float64
	// LastMotion is the parent ball's motion state seen last frame.
	LastMotion MotionState

	Trail *minimap.Trail

	// Outputs for the renderer, in map pixels.
	X, Y    float64
	Scale   float64
	Alpha   float64
	Visible bool
	// Clip is the visible part of the marker quad: MinX, MinY, MaxX, MaxY.
	Clip [4]float64
}

var MinimapMarkerComponent = NewComponent[MinimapMarker]("minimap_marker")
