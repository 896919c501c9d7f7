package physics

import (
	"github.com/jakecoffman/cp"
)

// ColliderDef describes a shape to attach to a body. A positive Radius makes
// a circle, otherwise Size is used as a box.
type ColliderDef struct {
	Tag      string
	Layer    uint
	Mask     uint
	Group    uint
	Size     cp.Vector
	Radius   float64
	Offset   cp.Vector
	Friction float64
	OneWay   bool
	Trigger  bool
}

// Collider wraps a chipmunk shape. Disabling swaps the shape filter for one
// that rejects everything, so the shape neither collides nor shows up in
// queries until it is enabled again.
type Collider struct {
	shape   *cp.Shape
	tag     string
	filter  cp.ShapeFilter
	enabled bool
	trigger bool
	oneWay  bool
	owner   any
}

var disabledFilter = cp.ShapeFilter{}

func newCollider(shape *cp.Shape, def ColliderDef) *Collider {
	mask := def.Mask
	if mask == 0 {
		mask = LayerAll
	}
	c := &Collider{
		shape:   shape,
		tag:     def.Tag,
		filter:  cp.ShapeFilter{Group: def.Group, Categories: def.Layer, Mask: mask},
		enabled: true,
		trigger: def.Trigger,
		oneWay:  def.OneWay,
	}
	shape.UserData = c
	shape.SetFilter(c.filter)
	shape.SetSensor(def.Trigger)
	shape.SetFriction(def.Friction)
	shape.SetCollisionType(collisionTypeFor(def.Layer, def.OneWay))
	return c
}

// ColliderOf returns the collider owning shape, or nil.
func ColliderOf(shape *cp.Shape) *Collider {
	if shape == nil {
		return nil
	}
	c, _ := shape.UserData.(*Collider)
	return c
}

func (c *Collider) Shape() *cp.Shape { return c.shape }

func (c *Collider) Tag() string { return c.tag }

func (c *Collider) OneWay() bool { return c.oneWay }

func (c *Collider) Layer() uint { return c.filter.Categories }

// Group is the shape group the collider was created with.
func (c *Collider) Group() uint { return c.filter.Group }

// Owner is an arbitrary value tying the collider back to whatever built it.
func (c *Collider) Owner() any { return c.owner }

func (c *Collider) SetOwner(owner any) { c.owner = owner }

func (c *Collider) Enabled() bool { return c.enabled }

func (c *Collider) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if enabled {
		c.shape.SetFilter(c.filter)
	} else {
		c.shape.SetFilter(disabledFilter)
	}
}

func (c *Collider) Trigger() bool { return c.trigger }

func (c *Collider) SetTrigger(trigger bool) {
	if c.trigger == trigger {
		return
	}
	c.trigger = trigger
	c.shape.SetSensor(trigger)
}

// Solid reports whether the collider is enabled and not a trigger.
func (c *Collider) Solid() bool {
	return c.enabled && !c.trigger
}
