package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fairway/common"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/minimap"
	"github.com/milk9111/fairway/prefabs"
	"github.com/rs/zerolog/log"
)

const (
	minPower = 0.05
	maxPower = 1.0
)

// ShotSystem turns input into swings, keeps the shot estimate and stroke
// indicator current and hands the turn to the next player once every ball
// has stopped.
type ShotSystem struct {
	dt        float64
	estimator *shotEstimator
	ball      *prefabs.BallSpec

	estimate  ShotEstimate
	estimated bool
	lastClub  int
	lastPower float64
}

func NewShotSystem(ball *prefabs.BallSpec) (*ShotSystem, error) {
	est, err := newShotEstimator(prefabs.ShotScript)
	if err != nil {
		return nil, err
	}
	return &ShotSystem{dt: frameDT, estimator: est, ball: ball}, nil
}

// ReloadScript recompiles the shot script. The old script stays in use when
// the new one does not compile.
func (s *ShotSystem) ReloadScript() error {
	est, err := newShotEstimator(prefabs.ShotScript)
	if err != nil {
		return err
	}
	s.estimator = est
	s.estimated = false
	return nil
}

// Configure swaps the ball tunables used to size launches.
func (s *ShotSystem) Configure(ball *prefabs.BallSpec) {
	s.ball = ball
}

// Estimate returns the current shot estimate.
func (s *ShotSystem) Estimate() ShotEstimate {
	return s.estimate
}

func (s *ShotSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	stateEnt, ok := w.First(component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	state, ok := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	holeEnt, ok := w.First(component.HoleComponent.Kind())
	if !ok {
		return
	}
	hole, ok := ecs.Get(w, holeEnt, component.HoleComponent.Kind())
	if !ok {
		return
	}

	input, _ := ecs.Get(w, stateEnt, component.InputComponent.Kind())
	if input == nil {
		input = &component.Input{}
	}

	if input.NextHole {
		_ = ecs.Add(w, stateEnt, component.HoleChangeRequestComponent.Kind(), &component.HoleChangeRequest{Index: state.HoleIndex + 1})
		return
	}
	if input.ResetView {
		requestRetarget(w, true)
	}

	if state.ShotInProgress {
		if allBallsResting(w) {
			s.finishShot(w, stateEnt, state, hole)
		}
		return
	}

	if input.ClubDelta != 0 {
		state.Club += input.ClubDelta
	}
	if input.PowerDelta != 0 {
		state.Power = common.Clamp(state.Power+input.PowerDelta*s.dt, minPower, maxPower)
	}
	s.refreshEstimate(state)

	ballEnt, ball, t, ok := activeBall(w, state.ActivePlayerID)
	if !ok {
		return
	}
	pos := transformVec(t)
	dir := aimDirection(pos, hole, state.AimAtPin)
	s.placeIndicator(w, state.ActivePlayerID, pos.Add(dir.Mul(state.EstimatedShotDistance)))

	if !input.Swing || ball.Holed || ball.State.Moving() {
		return
	}
	pb, ok := ecs.Get(w, ballEnt, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	vx, vy, vz := s.launchVelocity(dir, hole.OnGreen(pos))
	if !Launch(ball, pb, vx, vy, vz) {
		return
	}
	ball.Strokes++
	state.ShotInProgress = true

	log.Debug().
		Int("player", state.ActivePlayerID).
		Str("club", s.estimate.Club).
		Float64("distance", state.EstimatedShotDistance).
		Int("strokes", ball.Strokes).
		Msg("swing")
}

func (s *ShotSystem) refreshEstimate(state *component.GolfState) {
	if s.estimated && state.Club == s.lastClub && state.Power == s.lastPower {
		return
	}
	est, err := s.estimator.Estimate(state.Club, state.Power)
	if err != nil {
		log.Warn().Err(err).Msg("shot estimate")
		return
	}
	s.estimate = est
	s.estimated = true
	s.lastClub, s.lastPower = state.Club, state.Power
	state.EstimatedShotDistance = est.Distance
}

// launchVelocity sizes a launch so the ball carries the estimated distance,
// or rolls it there for a club without loft.
func (s *ShotSystem) launchVelocity(dir mgl64.Vec3, onGreen bool) (float64, float64, float64) {
	ball := s.ball
	if ball == nil {
		ball = &prefabs.BallSpec{}
	}
	d := s.estimate.Distance

	if s.estimate.Loft <= 0 {
		k := orDefault(ball.Damping, defaultBallDamping)
		if onGreen {
			k = orDefault(ball.GreenDamping, defaultBallGreenDamping)
		}
		// with per-second damping k a ball launched at v rolls v / -ln(k)
		v := d * -math.Log(k)
		return dir.X() * v, 0, dir.Z() * v
	}

	g := orDefault(ball.Gravity, defaultBallGravity)
	tanL := math.Tan(s.estimate.Loft)
	vh := math.Sqrt(d * g / (2 * tanL))
	return dir.X() * vh, vh * tanL, dir.Z() * vh
}

func (s *ShotSystem) placeIndicator(w *ecs.World, playerID int, pos mgl64.Vec3) {
	ecs.ForEach2(w, component.StrokeIndicatorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ind *component.StrokeIndicator, t *component.Transform) {
		ind.PlayerID = playerID
		t.X, t.Y, t.Z = pos.X(), 0, pos.Z()
		if m := markerOf(w, e); m != nil {
			m.PlayerID = playerID
		}
	})
}

// finishShot hands the turn on once every ball has stopped.
func (s *ShotSystem) finishShot(w *ecs.World, stateEnt ecs.Entity, state *component.GolfState, hole *component.Hole) {
	state.ShotInProgress = false

	next, ok := nextPlayer(w, state.ActivePlayerID, state.PlayerCount)
	if !ok {
		log.Info().Int("hole", state.HoleIndex+1).Msg("hole complete")
		_ = ecs.Add(w, stateEnt, component.HoleChangeRequestComponent.Kind(), &component.HoleChangeRequest{Index: state.HoleIndex + 1})
		return
	}
	state.ActivePlayerID = next

	state.AimAtPin = false
	if _, _, t, ok := activeBall(w, next); ok {
		state.AimAtPin = shouldAimAtPin(transformVec(t), hole)
	}

	requestRetarget(w, false)
}

// nextPlayer picks the first player after current whose ball is not holed.
func nextPlayer(w *ecs.World, current, count int) (int, bool) {
	if count < 1 {
		count = 1
	}
	for i := 1; i <= count; i++ {
		id := (current + i) % count
		if _, ball, _, ok := activeBall(w, id); ok && !ball.Holed {
			return id, true
		}
	}
	return 0, false
}

// shouldAimAtPin reports whether a ball at pos plays straight at the pin:
// it is on the green or already past the hole's aim point.
func shouldAimAtPin(pos mgl64.Vec3, hole *component.Hole) bool {
	if hole.OnGreen(pos) {
		return true
	}
	toPin := planarLen(hole.Pin.Sub(pos))
	targetToPin := planarLen(hole.Pin.Sub(hole.Target))
	return toPin <= targetToPin
}

// aimDirection is the unit direction on the course plane from pos toward
// the point the player is aiming at.
func aimDirection(pos mgl64.Vec3, hole *component.Hole, aimAtPin bool) mgl64.Vec3 {
	target := hole.Pin
	if !aimAtPin {
		target = minimap.FindTargetPos(pos, hole.Target, hole.SubTarget)
	}
	d := mgl64.Vec3{target.X() - pos.X(), 0, target.Z() - pos.Z()}
	if d.Len() == 0 {
		d = mgl64.Vec3{hole.Pin.X() - pos.X(), 0, hole.Pin.Z() - pos.Z()}
	}
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func allBallsResting(w *ecs.World) bool {
	resting := true
	ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, b *component.Ball) {
		if b.State.Moving() {
			resting = false
		}
	})
	return resting
}

func markerOf(w *ecs.World, parent ecs.Entity) *component.MinimapMarker {
	var out *component.MinimapMarker
	ecs.ForEach(w, component.MinimapMarkerComponent.Kind(), func(e ecs.Entity, m *component.MinimapMarker) {
		if out == nil && m.Parent == parent.Handle() {
			out = m
		}
	})
	return out
}

func requestRetarget(w *ecs.World, reset bool) {
	mmEnt, ok := w.First(component.MinimapComponent.Kind())
	if !ok {
		return
	}
	_ = ecs.Add(w, mmEnt, component.MinimapRetargetRequestComponent.Kind(), &component.MinimapRetargetRequest{Reset: reset})
}

func planarLen(v mgl64.Vec3) float64 {
	return math.Hypot(v.X(), v.Z())
}
