package ecs

import (
	"sort"

	"github.com/milk9111/fairway/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
// It returns false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		if s.Has(e) {
			s.Remove(e)
		}
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// ComponentNames lists the registered names of every component e holds,
// sorted. Dead entities hold nothing.
func ComponentNames(w *World, e Entity) []string {
	if !IsAlive(w, e) {
		return nil
	}
	var names []string
	for id, s := range w.stores {
		if s.Has(e) {
			names = append(names, component.Name(id))
		}
	}
	sort.Strings(names)
	return names
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return CreateEntity(w)
}

// DestroyEntity marks an entity as dead.
func (w *World) DestroyEntity(e Entity) {
	DestroyEntity(w, e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// First returns the first live entity holding kind.
func (w *World) First(kind kindID) (Entity, bool) {
	s := w.store(kind.ID(), false)
	for _, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Query returns the live entities holding every listed kind.
func (w *World) Query(kinds ...kindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	out := IntersectEntities(sets...)
	live := out[:0]
	for _, e := range out {
		if w.entities.isAlive(e) {
			live = append(live, e)
		}
	}
	return live
}

type kindID interface {
	ID() component.ComponentID
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
