package behavior

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// SpawnHandle ties a spawned entity back to the Spawner that made it.
type SpawnHandle struct {
	owner *Spawner
	done  bool
}

// Destroyed tells the owning spawner the entity is gone. Only the first call
// counts.
func (h *SpawnHandle) Destroyed() {
	if h == nil || h.done {
		return
	}
	h.done = true
	if h.owner != nil && h.owner.live > 0 {
		h.owner.live--
	}
}

// Released reports whether Destroyed has been called.
func (h *SpawnHandle) Released() bool {
	return h != nil && h.done
}

// Spawner periodically instantiates a template while fewer than Limit spawned
// entities are alive.
type Spawner struct {
	limit    int
	interval float64
	template string
	spawner  EntitySpawner

	timer   float64
	live    int
	spawned int
}

func NewSpawner(limit int, interval float64, template string, spawner EntitySpawner) (*Spawner, error) {
	if spawner == nil {
		return nil, fmt.Errorf("spawner: %w", ErrNilCollaborator)
	}
	if limit < 0 {
		return nil, fmt.Errorf("spawner: %w: limit %d < 0", ErrInvalidConfig, limit)
	}
	if interval < 0 {
		return nil, fmt.Errorf("spawner: %w: interval %v < 0", ErrInvalidConfig, interval)
	}
	return &Spawner{
		limit:    limit,
		interval: interval,
		template: template,
		spawner:  spawner,
		timer:    interval,
	}, nil
}

// Live is the number of spawned entities not yet reported destroyed.
func (s *Spawner) Live() int { return s.live }

// Spawned is the total number of successful spawns.
func (s *Spawner) Spawned() int { return s.spawned }

func (s *Spawner) Limit() int { return s.limit }

func (s *Spawner) Timer() float64 { return s.timer }

// Update counts the timer down while below the limit and spawns at at once it
// drops below zero.
func (s *Spawner) Update(dt float64, at cp.Vector) error {
	if s.live >= s.limit {
		return nil
	}
	s.timer -= dt
	if s.timer >= 0 {
		return nil
	}

	handle := &SpawnHandle{owner: s}
	if err := s.spawner.Spawn(s.template, at, handle); err != nil {
		return fmt.Errorf("spawner: spawn %q: %w", s.template, err)
	}
	s.timer = s.interval
	s.live++
	s.spawned++
	return nil
}
