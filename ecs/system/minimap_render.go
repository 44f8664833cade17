package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fairway/assets"
	"github.com/milk9111/fairway/common"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	minimapShader = "minimap.kage"
	labelMargin   = 6.0
	trailWidth    = 1.0
)

// MinimapRenderSystem draws the minimap: the overview texture cropped by
// the view shader, trails and markers on top, then the whole map rotated a
// quarter turn onto the screen so the view's "up" faces up.
type MinimapRenderSystem struct {
	shader *ebiten.Shader
	view   *ebiten.Image
	face   text.Face
}

func NewMinimapRenderSystem() (*MinimapRenderSystem, error) {
	shader, err := assets.LoadShader(minimapShader)
	if err != nil {
		return nil, fmt.Errorf("minimap render: %w", err)
	}
	return &MinimapRenderSystem{
		shader: shader,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}, nil
}

func (s *MinimapRenderSystem) Update(w *ecs.World) {}

func (s *MinimapRenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return
	}
	mm, ok := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())
	if !ok || mm.Texture == nil {
		return
	}
	view := mm.View()
	if view == nil || !view.Built() {
		return
	}

	tw, th := mm.Texture.Bounds().Dx(), mm.Texture.Bounds().Dy()
	if s.view == nil || s.view.Bounds().Dx() != tw || s.view.Bounds().Dy() != th {
		if s.view != nil {
			s.view.Deallocate()
		}
		s.view = ebiten.NewImage(tw, th)
	}
	s.view.Clear()

	op := &ebiten.DrawRectShaderOptions{
		Images: [4]*ebiten.Image{mm.Texture, nil, nil, nil},
		Uniforms: map[string]interface{}{
			"CoordMatrix": mm.CoordMatrix[:],
		},
	}
	s.view.DrawRectShader(tw, th, s.shader, op)

	ecs.ForEach(w, component.MinimapMarkerComponent.Kind(), func(e ecs.Entity, m *component.MinimapMarker) {
		if m.Trail == nil || m.Trail.Len() < 2 {
			return
		}
		pts := m.Trail.Points()
		prev := view.ToMapCoords(pts[0].World)
		for _, p := range pts[1:] {
			cur := view.ToMapCoords(p.World)
			vector.StrokeLine(s.view, float32(prev.X()), float32(prev.Y()), float32(cur.X()), float32(cur.Y()), trailWidth, p.Colour, true)
			prev = cur
		}
	})

	ecs.ForEach(w, component.MinimapMarkerComponent.Kind(), func(e ecs.Entity, m *component.MinimapMarker) {
		if !m.Visible {
			return
		}
		c := fade(m.Colour, m.Alpha)
		x0, y0 := float32(m.Clip[0]), float32(m.Clip[1])
		x1, y1 := float32(m.Clip[2]), float32(m.Clip[3])
		vector.FillRect(s.view, x0, y0, x1-x0, y1-y0, c, false)
		if m.Kind == component.MarkerFlag {
			vector.StrokeRect(s.view, x0, y0, x1-x0, y1-y0, 1, fade(colornames.Black, m.Alpha), false)
		}
	})

	vector.StrokeRect(s.view, 0.5, 0.5, float32(tw)-1, float32(th)-1, 1, colornames.Black, false)

	draw := &ebiten.DrawImageOptions{}
	draw.GeoM.Translate(-float64(tw)/2, -float64(th)/2)
	draw.GeoM.Rotate(math.Pi / 2)
	draw.GeoM.Translate(mm.ScreenX, mm.ScreenY)
	screen.DrawImage(s.view, draw)

	if mm.Label != "" {
		lw, _ := text.Measure(mm.Label, s.face, 0)
		top := math.Round(mm.ScreenY + float64(tw)/2 + labelMargin)
		label := &text.DrawOptions{}
		label.GeoM.Translate(mm.ScreenX-lw/2, top)
		label.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, mm.Label, s.face, label)
	}
}

// fade scales a premultiplied colour by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := common.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
