package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
)

// Body adapts a chipmunk body to behavior.Body.
type Body struct {
	body *cp.Body
}

var _ behavior.Body = Body{}

func NewBody(b *cp.Body) Body { return Body{body: b} }

func (b Body) Position() cp.Vector { return b.body.Position() }

func (b Body) Velocity() cp.Vector { return b.body.Velocity() }

func (b Body) SetVelocity(v cp.Vector) { b.body.SetVelocityVector(v) }

// Teleport moves the body and clears its velocity.
func (b Body) Teleport(pos cp.Vector) {
	b.body.SetPosition(pos)
	b.body.SetVelocityVector(cp.Vector{})
}
