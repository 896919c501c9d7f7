package behavior

import (
	"errors"

	"github.com/jakecoffman/cp"
)

type fakeCollider struct {
	tag      string
	disabled bool
	trigger  bool
}

func newFakeCollider(tag string) *fakeCollider { return &fakeCollider{tag: tag} }

func (c *fakeCollider) Tag() string             { return c.tag }
func (c *fakeCollider) Enabled() bool           { return !c.disabled }
func (c *fakeCollider) SetEnabled(enabled bool) { c.disabled = !enabled }
func (c *fakeCollider) Trigger() bool           { return c.trigger }
func (c *fakeCollider) SetTrigger(trigger bool) { c.trigger = trigger }

// fakeQuery answers downward casts with below and upward casts with above.
type fakeQuery struct {
	below    Collider
	above    Collider
	requests []CastRequest
}

func (q *fakeQuery) Cast(req CastRequest) Collider {
	q.requests = append(q.requests, req)
	if req.Direction.Y < 0 {
		return q.below
	}
	return q.above
}

type fakeBody struct {
	pos cp.Vector
	vel cp.Vector
}

func (b *fakeBody) Position() cp.Vector     { return b.pos }
func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }

type fakeAnim struct {
	floats map[string]float64
	bools  map[string]bool
}

func newFakeAnim() *fakeAnim {
	return &fakeAnim{floats: map[string]float64{}, bools: map[string]bool{}}
}

func (a *fakeAnim) SetFloat(name string, v float64) { a.floats[name] = v }
func (a *fakeAnim) SetBool(name string, v bool)     { a.bools[name] = v }

type fakeAudio struct {
	played  []string
	stopped []string
}

func (a *fakeAudio) PlaySound(name string, _ cp.Vector) { a.played = append(a.played, name) }
func (a *fakeAudio) StopSound(name string)              { a.stopped = append(a.stopped, name) }

type fakeEntitySpawner struct {
	handles []*SpawnHandle
	at      []cp.Vector
	fail    bool
}

var errSpawnFailed = errors.New("spawn failed")

func (s *fakeEntitySpawner) Spawn(_ string, at cp.Vector, handle *SpawnHandle) error {
	if s.fail {
		return errSpawnFailed
	}
	s.handles = append(s.handles, handle)
	s.at = append(s.at, at)
	return nil
}

type fakeJoint struct {
	kind  JointKind
	state LimitState
	speed float64
	sets  int
}

func (j *fakeJoint) Kind() JointKind        { return j.kind }
func (j *fakeJoint) LimitState() LimitState { return j.state }
func (j *fakeJoint) MotorSpeed() float64    { return j.speed }
func (j *fakeJoint) SetMotorSpeed(s float64) {
	j.speed = s
	j.sets++
}
