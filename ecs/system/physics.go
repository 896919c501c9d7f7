package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PhysicsSystem creates chipmunk bodies for new PhysicsBody components, steps
// the space and copies body poses back into transforms. It runs in the fixed
// stage.
type PhysicsSystem struct {
	world  *physics.World
	bodies map[ecs.Entity]*cp.Body
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		world:  world,
		bodies: make(map[ecs.Entity]*cp.Body),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.SyncEntities(w)
	ps.world.Step(w.DeltaTime())
	ps.syncTransforms(w)
}

// SyncEntities removes bodies of destroyed entities and creates bodies for
// entities that do not have one yet.
func (ps *PhysicsSystem) SyncEntities(w *ecs.World) {
	for e, body := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.bodies, e)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body != nil {
			return
		}
		ps.createBody(e, pb, t)
	})
}

func (ps *PhysicsSystem) createBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	pos := cp.Vector{X: t.X, Y: t.Y}

	var body *cp.Body
	switch pb.Type {
	case component.BodyStatic:
		body = ps.world.AddStaticBody(pos)
	case component.BodyKinematic:
		body = ps.world.AddKinematicBody(pos)
	default:
		body = ps.world.AddDynamicBody(pb.Mass, pos, pb.FixedRotation, colliderExtent(pb.Colliders))
	}
	if t.Rotation != 0 {
		body.SetAngle(t.Rotation)
	}

	group := ps.world.NewGroup()
	pb.Attached = pb.Attached[:0]
	for _, def := range pb.Colliders {
		def.Group = group
		c := ps.world.AddCollider(body, def)
		c.SetOwner(e)
		pb.Attached = append(pb.Attached, c)
	}
	pb.Body = body
	pb.ShapeSize = colliderExtent(pb.Colliders)
	ps.bodies[e] = body
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Type == component.BodyStatic {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}

// colliderExtent is the size of the box enclosing all collider defs around
// the body origin.
func colliderExtent(defs []physics.ColliderDef) cp.Vector {
	var halfW, halfH float64
	for _, d := range defs {
		hw, hh := d.Size.X/2, d.Size.Y/2
		if d.Radius > 0 {
			hw, hh = d.Radius, d.Radius
		}
		halfW = max(halfW, abs(d.Offset.X)+hw)
		halfH = max(halfH, abs(d.Offset.Y)+hh)
	}
	return cp.Vector{X: halfW * 2, Y: halfH * 2}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// OwnerOf returns the entity a collider was created for.
func OwnerOf(c *physics.Collider) (ecs.Entity, bool) {
	if c == nil {
		return 0, false
	}
	e, ok := c.Owner().(ecs.Entity)
	return e, ok
}
