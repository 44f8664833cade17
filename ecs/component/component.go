package component

import (
	"errors"
	"reflect"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies a registered component kind. Zero is never issued.
type ComponentID uint32

// registry hands out component ids and remembers a display name for each, so
// debug overlays can list what an entity carries.
var registry struct {
	mu    sync.RWMutex
	names []string
}

func register(name string) ComponentID {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names))
}

// Name returns the name a kind was registered under, or "" for an id that
// was never issued.
func Name(id ComponentID) string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if id == 0 || int(id) > len(registry.names) {
		return ""
	}
	return registry.names[id-1]
}

// ComponentKind is the typed key for one component store.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind registers a kind named after T.
func NewComponentKind[T any]() ComponentKind[T] {
	return NewNamedComponentKind[T](reflect.TypeFor[T]().String())
}

// NewNamedComponentKind registers a kind under an explicit name. Two kinds may
// share a name; they still get distinct stores.
func NewNamedComponentKind[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: register(name)}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Name() string {
	return Name(k.id)
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is what each component file exports, e.g. BallComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewNamedComponentKind[T](name)}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) Name() string {
	return h.kind.Name()
}
