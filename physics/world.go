package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const defaultIterations = 20

// World owns the chipmunk space, the bodies created through it and the
// motorised joints it integrates.
type World struct {
	space     *cp.Space
	shapes    map[*cp.Body][]*cp.Shape
	joints    []kinematicJoint
	nextGroup uint
}

type kinematicJoint interface {
	Body() *cp.Body
	sync(dt float64)
}

// NewWorld creates a space with the given gravity (world units, y up) and
// installs the one-way platform handlers.
func NewWorld(gravity cp.Vector) *World {
	space := cp.NewSpace()
	space.Iterations = defaultIterations
	space.SetGravity(gravity)

	w := &World{
		space:  space,
		shapes: make(map[*cp.Body][]*cp.Shape),
	}
	w.setupHandlers()
	return w
}

func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SetGravity replaces the space gravity.
func (w *World) SetGravity(g cp.Vector) {
	w.space.SetGravity(g)
}

// NewGroup hands out a fresh non-zero shape group. Shapes sharing a group
// never collide with each other and are skipped by queries cast with it.
func (w *World) NewGroup() uint {
	w.nextGroup++
	return w.nextGroup
}

// Step syncs kinematic joints then advances the space by dt.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, j := range w.joints {
		j.sync(dt)
	}
	w.space.Step(dt)
}

// Query returns a probe service that ignores shapes in group.
func (w *World) Query(group uint) *Query {
	return &Query{space: w.space, group: group}
}

// AddDynamicBody adds a dynamic body. fixedRotation gives it infinite moment.
func (w *World) AddDynamicBody(mass float64, pos cp.Vector, fixedRotation bool, size cp.Vector) *cp.Body {
	moment := math.Inf(1)
	if !fixedRotation {
		moment = cp.MomentForBox(mass, size.X, size.Y)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(pos)
	w.space.AddBody(body)
	return body
}

func (w *World) AddStaticBody(pos cp.Vector) *cp.Body {
	body := cp.NewStaticBody()
	body.SetPosition(pos)
	w.space.AddBody(body)
	return body
}

func (w *World) AddKinematicBody(pos cp.Vector) *cp.Body {
	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	w.space.AddBody(body)
	return body
}

// AddCollider attaches a shape described by def to body.
func (w *World) AddCollider(body *cp.Body, def ColliderDef) *Collider {
	var shape *cp.Shape
	if def.Radius > 0 {
		shape = cp.NewCircle(body, def.Radius, def.Offset)
	} else {
		hw, hh := def.Size.X/2, def.Size.Y/2
		bb := cp.BB{
			L: def.Offset.X - hw,
			B: def.Offset.Y - hh,
			R: def.Offset.X + hw,
			T: def.Offset.Y + hh,
		}
		shape = cp.NewBox2(body, bb, 0)
	}
	c := newCollider(shape, def)
	w.space.AddShape(shape)
	w.shapes[body] = append(w.shapes[body], shape)
	return c
}

// RemoveBody removes body, its shapes and any joint driving it.
func (w *World) RemoveBody(body *cp.Body) {
	if w == nil || body == nil {
		return
	}
	for _, s := range w.shapes[body] {
		w.space.RemoveShape(s)
	}
	delete(w.shapes, body)

	kept := w.joints[:0]
	for _, j := range w.joints {
		if j.Body() != body {
			kept = append(kept, j)
		}
	}
	w.joints = kept

	w.space.RemoveBody(body)
}

// Colliders returns the colliders attached to body.
func (w *World) Colliders(body *cp.Body) []*Collider {
	var out []*Collider
	for _, s := range w.shapes[body] {
		if c := ColliderOf(s); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (w *World) setupHandlers() {
	for _, other := range []cp.CollisionType{collisionTypePlayer, collisionTypeDummy} {
		handler := w.space.NewCollisionHandler(collisionTypeOneWay, other)
		handler.PreSolveFunc = oneWayPreSolve
	}
}

// oneWayPreSolve lets bodies pass upward through one-way shapes. The normal
// points from the platform to the other shape, so anything not resting on
// top is ignored until the pair separates.
func oneWayPreSolve(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	if arb.Normal().Dot(cp.Vector{X: 0, Y: 1}) < 0 {
		return arb.Ignore()
	}
	return true
}
