package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/minimap"
)

// Hole is the geometry of the hole in play, in world units.
type Hole struct {
	Index     int
	Name      string
	Par       int
	Tee       mgl64.Vec3
	Pin       mgl64.Vec3
	Target    mgl64.Vec3
	SubTarget mgl64.Vec3
	// GreenRadius is measured around the pin.
	GreenRadius float64
	Bounds      minimap.Bounds
}

// OnGreen reports whether p lies on the green.
func (h *Hole) OnGreen(p mgl64.Vec3) bool {
	dx, dz := p.X()-h.Pin.X(), p.Z()-h.Pin.Z()
	return dx*dx+dz*dz <= h.GreenRadius*h.GreenRadius
}

var HoleComponent = NewComponent[Hole]("hole")
