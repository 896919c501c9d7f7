package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/milk9111/platformer/ecs/component"
)

// Kind is any typed component kind.
type Kind interface {
	ID() component.ComponentID
}

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   *intmap.Map[component.ComponentID, *SparseSet]
	ids      []component.ComponentID
	events   EventQueue

	dt    float64
	time  float64
	frame uint64
}

func NewWorld() *World {
	return &World{stores: intmap.New[component.ComponentID, *SparseSet](64)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. Stale handles are
// ignored.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, id := range w.ids {
		if s, ok := w.stores.Get(id); ok {
			s.Remove(e)
		}
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// EntityCount is the number of live entities.
func (w *World) EntityCount() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if s, ok := w.stores.Get(id); ok {
		return s
	}
	if !create {
		return nil
	}
	s := NewSparseSet()
	w.stores.Put(id, s)
	w.ids = append(w.ids, id)
	return s
}

func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to %v: %w", component.ComponentName(id), e, component.ErrEntityNotAlive)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s to %v: %w", component.ComponentName(id), e, component.ErrNilComponent)
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	return w.store(id, false).Get(e)
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	s := w.store(id, false)
	if s == nil {
		return false
	}
	return s.Remove(e)
}

// Events returns the world event queue. It is cleared after every frame.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// DeltaTime is the step being simulated: the fixed step inside fixed-stage
// systems, the frame time elsewhere.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) SetDeltaTime(dt float64) {
	w.dt = dt
}

// Time is the simulated time in seconds, advanced once per frame.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.time
}

func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

func (w *World) advance(dt float64) {
	w.time += dt
	w.frame++
}
