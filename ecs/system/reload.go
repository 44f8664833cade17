package system

import (
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/ecs/entity"
	"github.com/milk9111/fairway/prefabs"
	"github.com/rs/zerolog/log"
)

// changeSource yields the names of prefab files edited since the last poll.
type changeSource interface {
	Poll() []string
}

// ReloadSystem applies prefab edits while the game runs. Spec edits reload
// the course and rebuild the hole in play; script edits recompile the shot
// script.
type ReloadSystem struct {
	source  changeSource
	course  *entity.Course
	holes   *HoleSystem
	shots   *ShotSystem
	markers *MinimapMarkerSystem
	physics *BallPhysicsSystem
}

func NewReloadSystem(source changeSource, course *entity.Course, holes *HoleSystem, shots *ShotSystem, markers *MinimapMarkerSystem, physics *BallPhysicsSystem) *ReloadSystem {
	return &ReloadSystem{
		source:  source,
		course:  course,
		holes:   holes,
		shots:   shots,
		markers: markers,
		physics: physics,
	}
}

func (s *ReloadSystem) Update(w *ecs.World) {
	if w == nil || s.source == nil {
		return
	}

	specs, script := false, false
	for _, name := range s.source.Poll() {
		switch name {
		case prefabs.CourseFile, prefabs.MinimapFile, prefabs.BallFile:
			specs = true
		case prefabs.ShotScript:
			script = true
		}
	}

	if script && s.shots != nil {
		if err := s.shots.ReloadScript(); err != nil {
			log.Warn().Err(err).Msg("reload shot script")
		} else {
			log.Info().Msg("shot script reloaded")
		}
	}

	if specs {
		s.reloadSpecs(w)
	}
}

func (s *ReloadSystem) reloadSpecs(w *ecs.World) {
	course, err := entity.LoadCourse()
	if err != nil {
		log.Warn().Err(err).Msg("reload specs")
		return
	}
	*s.course = *course

	if s.markers != nil {
		s.markers.Configure(course.Minimap.Markers)
	}
	if s.physics != nil {
		s.physics.Configure(course.Ball)
	}
	if s.shots != nil {
		s.shots.Configure(course.Ball)
	}

	index := 0
	if stateEnt, ok := w.First(component.GolfStateComponent.Kind()); ok {
		if state, ok := ecs.Get(w, stateEnt, component.GolfStateComponent.Kind()); ok {
			index = state.HoleIndex
		}
	}
	if s.holes != nil {
		if err := s.holes.Load(w, index); err != nil {
			log.Warn().Err(err).Msg("reload hole")
			return
		}
	}

	// show the whole edited hole; this overrides the tracking request made
	// by the load
	requestRetarget(w, true)
	log.Info().Int("hole", index+1).Msg("specs reloaded")
}
