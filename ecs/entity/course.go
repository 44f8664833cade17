package entity

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/prefabs"
	"golang.org/x/image/colornames"
)

// spacing between players' balls on the tee, in world units
const teeSpacing = 1.5

// Course bundles the specs holes are built from.
type Course struct {
	Spec    *prefabs.CourseSpec
	Minimap *prefabs.MinimapSpec
	Ball    *prefabs.BallSpec
}

// LoadCourse reads every spec a course needs.
func LoadCourse() (*Course, error) {
	course, err := prefabs.LoadCourseSpec()
	if err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	mm, err := prefabs.LoadMinimapSpec()
	if err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	ball, err := prefabs.LoadBallSpec()
	if err != nil {
		return nil, fmt.Errorf("course: %w", err)
	}
	return &Course{Spec: course, Minimap: mm, Ball: ball}, nil
}

// PlayerColours resolves the configured player palette.
func (c *Course) PlayerColours() []color.RGBA {
	out := make([]color.RGBA, 0, len(c.Minimap.Colours.Players))
	for i, pc := range c.Minimap.Colours.Players {
		out = append(out, pc.RGBAOr(PlayerColour(nil, i)))
	}
	return out
}

// NewGolfState creates the turn state singleton.
func NewGolfState(w *ecs.World, players int) (ecs.Entity, error) {
	if players < 1 {
		players = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.GolfStateComponent.Kind(), &component.GolfState{
		PlayerCount: players,
		Power:       1,
	}); err != nil {
		return 0, fmt.Errorf("golf state: add golf state component: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("golf state: add input: %w", err)
	}
	return e, nil
}

// LoadHole replaces the hole in play. The previous hole's entities are
// destroyed, which leaves their minimap markers stale for the marker system
// to clean up. The minimap view is snapped to the new hole and a tracking
// retarget is requested. The overview texture is not touched; see
// RebuildOverview.
func LoadHole(w *ecs.World, c *Course, index int) error {
	if c == nil || c.Spec == nil || c.Minimap == nil {
		return fmt.Errorf("load hole: incomplete course")
	}
	index = HoleIndex(c.Spec, index)

	for _, e := range w.Query(component.HoleComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	for _, e := range w.Query(component.FlagComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	for _, e := range w.Query(component.BallComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	for _, e := range w.Query(component.StrokeIndicatorComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}

	holeEnt, err := NewHole(w, c.Spec, index)
	if err != nil {
		return fmt.Errorf("load hole %d: %w", index, err)
	}
	hole, _ := ecs.Get(w, holeEnt, component.HoleComponent.Kind())

	stateEnt, ok := w.First(component.GolfStateComponent.Kind())
	if !ok {
		return fmt.Errorf("load hole %d: no golf state", index)
	}
	state, _ := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind())
	state.HoleIndex = index
	state.ActivePlayerID = 0
	state.AimAtPin = false
	state.ShotInProgress = false

	if _, err := NewFlag(w, hole.Pin, colornames.Red); err != nil {
		return fmt.Errorf("load hole %d: %w", index, err)
	}

	palette := c.PlayerColours()
	trail := c.Minimap.Colours.Trail.RGBAOr(color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0x60})
	for p := 0; p < state.PlayerCount; p++ {
		pos := hole.Tee.Add(mgl64.Vec3{float64(p) * teeSpacing, 0, 0})
		if _, err := NewBall(w, p, pos, c.Ball, PlayerColour(palette, p), trail); err != nil {
			return fmt.Errorf("load hole %d: %w", index, err)
		}
	}

	if _, err := NewStrokeIndicator(w, state.ActivePlayerID, hole.Tee, colornames.Yellow); err != nil {
		return fmt.Errorf("load hole %d: %w", index, err)
	}

	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return fmt.Errorf("load hole %d: no minimap", index)
	}
	mm, _ := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())
	ApplyMinimapSpec(mm, c.Minimap)
	mm.Label = fmt.Sprintf("Hole %d  %s  Par %d", index+1, hole.Name, hole.Par)

	texSize := mgl64.Vec2{float64(c.Minimap.TextureWidth), float64(c.Minimap.TextureHeight)}
	mapScale := MapScale(c.Spec, c.Minimap.TextureWidth, c.Minimap.TextureHeight)
	ConfigureMinimap(mm, texSize, mapScale, hole.Bounds)

	return RequestRetarget(w, false)
}

// RebuildOverview bakes the overview texture of the hole in play and hands
// it to the minimap.
func RebuildOverview(w *ecs.World, c *Course) error {
	holeEnt, ok := w.First(component.HoleComponent.Kind())
	if !ok {
		return fmt.Errorf("rebuild overview: no hole loaded")
	}
	hole, _ := ecs.Get(w, holeEnt, component.HoleComponent.Kind())

	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return fmt.Errorf("rebuild overview: no minimap")
	}
	mm, _ := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())

	img, _ := BuildOverview(c.Spec, hole.Index, c.Minimap)
	if mm.Texture != nil {
		mm.Texture.Deallocate()
	}
	mm.Texture = img
	return nil
}
