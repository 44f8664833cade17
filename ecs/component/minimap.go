package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fairway/minimap"
)

// Minimap is the radar view of the current hole.
type Minimap struct {
	Controller *minimap.Controller
	// Texture is the overview of the hole the view crops.
	Texture *ebiten.Image
	// CoordMatrix is the shader uniform, column-major, as last pushed by the
	// view.
	CoordMatrix [16]float32
	// ScreenX/ScreenY place the centre of the map on screen.
	ScreenX float64
	ScreenY float64
	// MarkerSize is the side of an unscaled marker quad in map pixels.
	MarkerSize float64
	// Label is drawn under the map.
	Label string
}

// SetCoordMatrix stores the view matrix for the renderer.
func (m *Minimap) SetCoordMatrix(mat mgl64.Mat4) {
	for i, v := range mat {
		m.CoordMatrix[i] = float32(v)
	}
}

// View returns the controller's view, or nil.
func (m *Minimap) View() *minimap.ViewState {
	if m == nil || m.Controller == nil {
		return nil
	}
	return m.Controller.View()
}

var MinimapComponent = NewComponent[Minimap]("minimap")

// MinimapRetargetRequest asks the retarget system to start a new view
// transition. Reset frames the whole hole; otherwise the view tracks the
// active player. When several requests are made in one frame the last wins.
type MinimapRetargetRequest struct {
	Reset bool
}

var MinimapRetargetRequestComponent = NewComponent[MinimapRetargetRequest]("minimap_retarget_request")
