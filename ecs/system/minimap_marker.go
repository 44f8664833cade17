package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/common"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/prefabs"
)

const (
	defaultPopScale      = 6.0
	defaultPopSpeed      = 3.0
	defaultHeightScale   = 40.0
	defaultFadeSpeed     = 2.0
	defaultInactiveAlpha = 0.4
)

// MinimapMarkerSystem places markers on the minimap every frame. It must run
// after the retarget system so markers use this frame's view.
type MinimapMarkerSystem struct {
	dt float64

	popScale      float64
	popSpeed      float64
	heightScale   float64
	fadeSpeed     float64
	inactiveAlpha float64
}

func NewMinimapMarkerSystem(spec prefabs.MarkerSpec) *MinimapMarkerSystem {
	s := &MinimapMarkerSystem{dt: frameDT}
	s.Configure(spec)
	return s
}

// Configure applies marker tunables; zero values keep the defaults.
func (s *MinimapMarkerSystem) Configure(spec prefabs.MarkerSpec) {
	s.popScale = orDefault(spec.PopScale, defaultPopScale)
	s.popSpeed = orDefault(spec.PopSpeed, defaultPopSpeed)
	s.heightScale = orDefault(spec.HeightScale, defaultHeightScale)
	s.fadeSpeed = orDefault(spec.FadeSpeed, defaultFadeSpeed)
	s.inactiveAlpha = orDefault(spec.InactiveAlpha, defaultInactiveAlpha)
}

func (s *MinimapMarkerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return
	}
	mm, ok := ecs.Get(w, mmEnt, component.MinimapComponent.Kind())
	if !ok {
		return
	}
	view := mm.View()
	if view == nil || !view.Built() {
		return
	}

	activePlayer := 0
	shotInProgress := false
	if stateEnt, ok := w.First(component.GolfStateComponent.Kind()); ok {
		if state, ok := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind()); ok {
			activePlayer = state.ActivePlayerID
			shotInProgress = state.ShotInProgress
		}
	}

	ecs.ForEach(w, component.MinimapMarkerComponent.Kind(), func(e ecs.Entity, m *component.MinimapMarker) {
		parent := ecs.FromHandle(m.Parent)
		if !ecs.IsAlive(w, parent) {
			ecs.DestroyEntity(w, e)
			return
		}

		t, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
		if !ok {
			m.Visible = false
			return
		}
		world := mgl64.Vec3{t.X, t.Y, t.Z}

		moving := false
		if ball, ok := ecs.Get(w, parent, component.BallComponent.Kind()); ok {
			moving = ball.State.Moving()
			if m.LastMotion.Moving() && !moving && m.State == component.MarkerIdle {
				m.State = component.MarkerAnimating
				m.CurrentTime = 1
			}
			m.LastMotion = ball.State
		}

		if m.Trail != nil {
			m.Trail.Update(s.dt)
		}

		pos := view.ToMapCoords(world)
		m.X, m.Y = pos.X(), pos.Y()

		if m.State == component.MarkerAnimating {
			m.CurrentTime -= s.dt * s.popSpeed
			if m.CurrentTime > 0 {
				m.Scale = 1 + (s.popScale-1)*m.CurrentTime
				m.Alpha = 1 - m.CurrentTime
				m.Clip, m.Visible = clipMarker(m.X, m.Y, mm.MarkerSize*m.Scale, view.TextureSize)
				return
			}
			m.CurrentTime = 1
			m.State = component.MarkerIdle
		}

		m.Scale = 1 + math.Max(world.Y(), 0)/s.heightScale

		target := 1.0
		if m.Kind != component.MarkerFlag && m.PlayerID != activePlayer {
			target = s.inactiveAlpha
		}
		m.Alpha = common.Approach(m.Alpha, target, s.dt*s.fadeSpeed)

		if moving && m.Trail != nil {
			m.Trail.Sample(s.dt, world)
		}

		m.Clip, m.Visible = clipMarker(m.X, m.Y, mm.MarkerSize*m.Scale, view.TextureSize)
		if m.Kind == component.MarkerStroke && shotInProgress {
			m.Visible = false
		}
	})
}

// clipMarker crops a marker quad of side size centred on (x, y) against the
// map rectangle. It reports false when nothing is left.
func clipMarker(x, y, size float64, mapSize mgl64.Vec2) ([4]float64, bool) {
	half := size / 2
	minX := math.Max(x-half, 0)
	minY := math.Max(y-half, 0)
	maxX := math.Min(x+half, mapSize.X())
	maxY := math.Min(y+half, mapSize.Y())
	if maxX <= minX || maxY <= minY {
		return [4]float64{}, false
	}
	return [4]float64{minX, minY, maxX, maxY}, true
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
