package behavior

import "fmt"

// PlatformReset returns a one-way platform's collider to its default state
// (solid, enabled) a fixed delay after it is seen in pass-through.
//
// Every Update that observes pass-through schedules another reset; pending
// resets are never cancelled or merged. They are idempotent, so the collider
// still ends up solid.
type PlatformReset struct {
	collider Collider
	delay    float64

	now     float64
	pending []float64
}

func NewPlatformReset(collider Collider, delay float64) (*PlatformReset, error) {
	if collider == nil {
		return nil, fmt.Errorf("platform reset: %w", ErrNilCollaborator)
	}
	if delay < 0 {
		return nil, fmt.Errorf("platform reset: %w: delay %v < 0", ErrInvalidConfig, delay)
	}
	return &PlatformReset{collider: collider, delay: delay}, nil
}

func (r *PlatformReset) Delay() float64 { return r.delay }

// Pending is the number of scheduled resets that have not fired yet.
func (r *PlatformReset) Pending() int { return len(r.pending) }

// PassThrough reports whether the collider is currently trigger or disabled.
func (r *PlatformReset) PassThrough() bool {
	return r.collider.Trigger() || !r.collider.Enabled()
}

func (r *PlatformReset) Update(dt float64) {
	r.now += dt

	kept := r.pending[:0]
	for _, at := range r.pending {
		if at <= r.now+timeEpsilon {
			r.reset()
			continue
		}
		kept = append(kept, at)
	}
	r.pending = kept

	if r.PassThrough() {
		r.pending = append(r.pending, r.now+r.delay)
	}
}

func (r *PlatformReset) reset() {
	r.collider.SetTrigger(false)
	r.collider.SetEnabled(true)
}

// timeEpsilon absorbs float drift from summing frame deltas.
const timeEpsilon = 1e-9
