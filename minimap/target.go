package minimap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/common"
)

const (
	MinZoom = 0.5
	MaxZoom = 32.0

	// margins around the framed area
	resetFrameMargin = 1.6
	trackFrameMargin = 1.45

	// dogleg heuristic thresholds, tuned by playtesting
	doglegAheadDot     = 0.6
	doglegBehindDot    = 0.1
	doglegNearPrimary2 = 400.0

	// pan bias toward an off-axis sub-target
	biasMaxDot   = 0.8
	biasMinDist2 = 2.25
)

// Bounds is an axis-aligned world-space box.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

func (b Bounds) Centre() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Bounds) Extent() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Include grows b to contain p. The zero Bounds is treated as empty only when
// empty is true.
func (b Bounds) Include(p mgl64.Vec3, empty bool) Bounds {
	if empty {
		return Bounds{Min: p, Max: p}
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Context is the game state the controller frames.
type Context struct {
	// Bounds of the hole geometry, used by reset framing.
	Bounds Bounds
	Player mgl64.Vec3
	Pin    mgl64.Vec3
	// Target is the hole's primary aim point, SubTarget an optional dogleg
	// waypoint. The zero vector means no sub-target.
	Target    mgl64.Vec3
	SubTarget mgl64.Vec3
	// AimAtPin is set once the player is playing directly at the pin.
	AimAtPin bool
	// EstimatedDistance is the current shot's expected carry in world units.
	EstimatedDistance float64
}

// ClampZoom limits z to [MinZoom, MaxZoom]. NaN maps to MinZoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return MinZoom
	}
	return common.Clamp(z, MinZoom, MaxZoom)
}

// ShortestRotation returns the signed angle in [-pi, pi] that turns start
// onto end.
func ShortestRotation(start, end float64) float64 {
	return math.Remainder(end-start, 2*math.Pi)
}

// FindTargetPos picks the point the camera should look toward from player.
// On a dogleg the far corner or the waypoint frames the shot better than the
// straight line to the primary target. The checks run in order and the first
// match wins.
func FindTargetPos(player, primary, secondary mgl64.Vec3) mgl64.Vec3 {
	if secondary == (mgl64.Vec3{}) {
		return primary
	}

	t := flatten(primary.Sub(player))
	m := flatten(secondary.Sub(player))
	tLen, mLen := t.Len(), m.Len()
	d := normalisedDot(t, m)

	if d > doglegAheadDot && mLen > tLen && mLen/2 > tLen {
		return secondary
	}
	if t.Dot(t) < doglegNearPrimary2 || mLen < tLen || d < doglegBehindDot {
		return secondary
	}
	return primary
}

// ResetFrame fits the whole hole: no tilt, centred on the bounds, zoomed so
// the longer side fits with margin.
func ResetFrame(view *ViewState, b Bounds) Frame {
	ext := b.Extent()
	fitX := view.TextureSize.X() / (math.Abs(ext.X()) * resetFrameMargin)
	fitY := view.TextureSize.Y() / (math.Abs(ext.Z()) * resetFrameMargin)

	return Frame{
		Pan:  view.WorldToTexture(b.Centre()),
		Tilt: 0,
		Zoom: ClampZoom(math.Min(fitX, fitY)),
	}
}

// TrackFrame frames the player and the point they are aiming at, rotated so
// that point is up.
func TrackFrame(view *ViewState, ctx Context) Frame {
	target := ctx.Pin
	if !ctx.AimAtPin {
		target = FindTargetPos(ctx.Player, ctx.Target, ctx.SubTarget)
	}

	dir := mgl64.Vec2{target.X() - ctx.Player.X(), -(target.Z() - ctx.Player.Z())}

	tilt := view.Tilt
	if dir.Len() > 0 {
		tilt += ShortestRotation(view.Tilt, math.Atan2(-dir.Y(), dir.X())+math.Pi)
	}

	centre := trackCentre(flatten(ctx.Player), flatten(target), ctx.SubTarget)

	span := math.Max(dir.Len(), ctx.EstimatedDistance)
	return Frame{
		Pan:  mgl64.Vec2{centre.X() * view.MapScale.X(), -centre.Y() * view.MapScale.Y()},
		Tilt: tilt,
		Zoom: ClampZoom(view.TextureSize.X() / (span * trackFrameMargin)),
	}
}

// trackCentre returns the world XZ point to centre on: halfway between player
// and target, pulled sideways toward a sub-target that sits usefully off the
// line of play.
func trackCentre(player, target mgl64.Vec2, subTarget mgl64.Vec3) mgl64.Vec2 {
	t := target.Sub(player)
	mid := player.Add(t.Mul(0.5))
	if subTarget == (mgl64.Vec3{}) {
		return mid
	}

	s := flatten(subTarget).Sub(player)
	d := normalisedDot(t, s)
	if d > 0 && d < biasMaxDot && s.Dot(s) > biasMinDist2 && s.Len() < t.Len() {
		tn := t.Normalize()
		perp := s.Sub(tn.Mul(s.Dot(tn)))
		return mid.Add(perp.Mul(0.5))
	}
	return mid
}

// flatten drops height: (x, y, z) -> (x, z).
func flatten(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v.X(), v.Z()}
}

func normalisedDot(a, b mgl64.Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	return a.Dot(b) / (la * lb)
}
