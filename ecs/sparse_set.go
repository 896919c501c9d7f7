package ecs

import "github.com/kamstrup/intmap"

// SparseSet stores one component type densely, indexed by entity id.
type SparseSet struct {
	index    *intmap.Map[entityID, int]
	entities []Entity
	values   []any
}

func NewSparseSet() *SparseSet {
	return &SparseSet{index: intmap.New[entityID, int](64)}
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entities)
}

// Has reports whether e (with its current generation) is in the set.
func (s *SparseSet) Has(e Entity) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index.Get(e.id())
	return ok && s.entities[idx] == e
}

func (s *SparseSet) Get(e Entity) (any, bool) {
	if !s.Has(e) {
		return nil, false
	}
	idx, _ := s.index.Get(e.id())
	return s.values[idx], true
}

// Set inserts or replaces the value for e. A stale entry for the same slot is
// overwritten.
func (s *SparseSet) Set(e Entity, v any) {
	if idx, ok := s.index.Get(e.id()); ok {
		s.entities[idx] = e
		s.values[idx] = v
		return
	}
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
	s.index.Put(e.id(), len(s.entities)-1)
}

// Remove swaps the last element into e's slot.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx, _ := s.index.Get(e.id())
	last := len(s.entities) - 1
	moved := s.entities[last]

	s.entities[idx] = moved
	s.values[idx] = s.values[last]
	s.index.Put(moved.id(), idx)

	s.entities[last] = 0
	s.values[last] = nil
	s.entities = s.entities[:last]
	s.values = s.values[:last]
	s.index.Del(e.id())
	return true
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.entities
}

func (s *SparseSet) Values() []any {
	if s == nil {
		return nil
	}
	return s.values
}
