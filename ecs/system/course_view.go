package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
)

// CourseViewSystem draws the hole's overview texture scaled into a screen
// rectangle, with every ball still in play on top.
type CourseViewSystem struct {
	X, Y          float64
	Width, Height float64
	// Palette colours balls by player id.
	Palette []color.RGBA
}

func NewCourseViewSystem(x, y, width, height float64, palette []color.RGBA) *CourseViewSystem {
	return &CourseViewSystem{X: x, Y: y, Width: width, Height: height, Palette: palette}
}

func (s *CourseViewSystem) Update(w *ecs.World) {}

func (s *CourseViewSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	mm, view, ok := courseView(w)
	if !ok || mm.Texture == nil {
		return
	}
	scale := s.scale(view)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(s.X, s.Y)
	screen.DrawImage(mm.Texture, op)

	ecs.ForEach2(w, component.BallComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Ball, t *component.Transform) {
		if b.Holed {
			return
		}
		x, y := s.project(view, transformVec(t))
		// higher balls draw bigger
		r := float32(2.5 + t.Y/8)
		vector.FillCircle(screen, float32(x), float32(y), r, s.colour(b.PlayerID), true)
	})
}

// ToScreen places a world position on the course view. It reports false
// until a hole is loaded.
func (s *CourseViewSystem) ToScreen(w *ecs.World, world mgl64.Vec3) (float64, float64, bool) {
	_, view, ok := courseView(w)
	if !ok {
		return 0, 0, false
	}
	x, y := s.project(view, world)
	return x, y, true
}

// Scale is screen pixels per world unit along X.
func (s *CourseViewSystem) Scale(w *ecs.World) float64 {
	_, view, ok := courseView(w)
	if !ok {
		return 1
	}
	return s.scale(view) * view.MapScale.X()
}

func (s *CourseViewSystem) scale(view *minimap.ViewState) float64 {
	return min(s.Width/view.TextureSize.X(), s.Height/view.TextureSize.Y())
}

func (s *CourseViewSystem) project(view *minimap.ViewState, world mgl64.Vec3) (float64, float64) {
	p := view.WorldToTexture(world)
	scale := s.scale(view)
	return s.X + p.X()*scale, s.Y + p.Y()*scale
}

func (s *CourseViewSystem) colour(playerID int) color.RGBA {
	if playerID >= 0 && playerID < len(s.Palette) {
		return s.Palette[playerID]
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

func courseView(w *ecs.World) (*component.Minimap, *minimap.ViewState, bool) {
	if w == nil {
		return nil, nil, false
	}
	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	mm, ok := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	view := mm.View()
	if view == nil || !view.Configured() {
		return nil, nil, false
	}
	return mm, view, true
}
