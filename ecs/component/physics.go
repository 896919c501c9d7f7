package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/physics"
)

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyStatic
	BodyKinematic
)

// PhysicsBody holds the chipmunk body of an entity and the colliders attached
// to it. Body is nil until the physics system has created it.
type PhysicsBody struct {
	Type          BodyType
	Mass          float64
	FixedRotation bool
	Colliders     []physics.ColliderDef

	Body      *cp.Body
	Attached  []*physics.Collider
	ShapeSize cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Collider returns the first attached collider, or nil.
func (p *PhysicsBody) Collider() *physics.Collider {
	if p == nil || len(p.Attached) == 0 {
		return nil
	}
	return p.Attached[0]
}
