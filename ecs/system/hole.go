package system

import (
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/ecs/entity"
	"github.com/rs/zerolog/log"
)

// HoleSystem loads the hole named by a HoleChangeRequest.
type HoleSystem struct {
	course *entity.Course
	// bake builds the overview texture; nil skips it.
	bake func(w *ecs.World, c *entity.Course) error
}

func NewHoleSystem(course *entity.Course) *HoleSystem {
	return &HoleSystem{course: course, bake: entity.RebuildOverview}
}

func (s *HoleSystem) Update(w *ecs.World) {
	if w == nil || s.course == nil {
		return
	}

	var (
		index   int
		pending bool
	)
	for _, e := range w.Query(component.HoleChangeRequestComponent.Kind()) {
		req, ok := ecs.Get(w, e, component.HoleChangeRequestComponent.Kind())
		if !ok {
			continue
		}
		index, pending = req.Index, true
		_ = ecs.Remove(w, e, component.HoleChangeRequestComponent.Kind())
	}
	if !pending {
		return
	}

	if err := s.Load(w, index); err != nil {
		log.Error().Err(err).Int("hole", index).Msg("load hole")
	}
}

// Load builds hole index and its overview texture.
func (s *HoleSystem) Load(w *ecs.World, index int) error {
	if err := entity.LoadHole(w, s.course, index); err != nil {
		return err
	}
	if s.bake != nil {
		if err := s.bake(w, s.course); err != nil {
			return err
		}
	}
	log.Info().Int("hole", entity.HoleIndex(s.course.Spec, index)+1).Msg("hole loaded")
	return nil
}
