package entity

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fairway/prefabs"
	"golang.org/x/image/colornames"
)

const (
	teeBoxSize = 6.0
	pinRadius  = 1.5
)

// BuildOverview bakes a top-down picture of one hole into a texture of the
// minimap's size. A world point (x, z) lands on pixel mapScale * (x, -z).
func BuildOverview(course *prefabs.CourseSpec, index int, spec *prefabs.MinimapSpec) (*ebiten.Image, mgl64.Vec2) {
	mapScale := MapScale(course, spec.TextureWidth, spec.TextureHeight)
	hole := course.Holes[HoleIndex(course, index)]
	colours := spec.Colours

	img := ebiten.NewImage(spec.TextureWidth, spec.TextureHeight)
	img.Fill(colours.Rough.RGBAOr(color.RGBA{R: 0x3b, G: 0x5e, B: 0x2b, A: 0xff}))

	toPx := func(x, z float64) (float32, float32) {
		return float32(x * mapScale.X()), float32(-z * mapScale.Y())
	}

	if len(hole.Fairway) >= 3 {
		var path vector.Path
		for i, p := range hole.Fairway {
			x, y := toPx(p.X, p.Z)
			if i == 0 {
				path.MoveTo(x, y)
				continue
			}
			path.LineTo(x, y)
		}
		path.Close()

		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(colours.Fairway.RGBAOr(color.RGBA{R: 0x5f, G: 0x9a, B: 0x3c, A: 0xff}))
		vector.FillPath(img, &path, &vector.FillOptions{}, op)
	}

	// the green is round in world units; use the mean scale for its radius
	meanScale := float32((mapScale.X() + mapScale.Y()) / 2)
	px, py := toPx(hole.Pin.X, hole.Pin.Z)
	vector.FillCircle(img, px, py, float32(hole.GreenRadius)*meanScale, colours.Green.RGBAOr(color.RGBA{R: 0x8c, G: 0xc7, B: 0x51, A: 0xff}), true)
	vector.FillCircle(img, px, py, pinRadius*meanScale, colornames.Black, true)

	tx, ty := toPx(hole.Tee.X, hole.Tee.Z)
	half := float32(teeBoxSize/2) * meanScale
	vector.FillRect(img, tx-half, ty-half, 2*half, 2*half, colours.Tee.RGBAOr(color.RGBA{R: 0xc2, G: 0xb2, B: 0x80, A: 0xff}), false)

	return img, mapScale
}
