// Package behavior holds the gameplay rules of the platformer, written against
// small interfaces so they run without a window or a physics space.
package behavior

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
)

// Collider is the part of a physics collider the gameplay rules are allowed
// to touch: its tag and its pass-through flags.
type Collider interface {
	Tag() string
	Enabled() bool
	SetEnabled(enabled bool)
	Trigger() bool
	SetTrigger(trigger bool)
}

// CastShape selects the geometry swept by a probe.
type CastShape int

const (
	CastRay CastShape = iota
	CastBox
	CastCircle
)

var castShapeNames = [...]string{
	CastRay:    "ray",
	CastBox:    "box",
	CastCircle: "circle",
}

func (c CastShape) String() string {
	if c < 0 || int(c) >= len(castShapeNames) {
		return fmt.Sprintf("CastShape(%d)", int(c))
	}
	return castShapeNames[c]
}

// Valid reports whether c names a known cast shape.
func (c CastShape) Valid() bool {
	return c >= CastRay && c <= CastCircle
}

// Next cycles ray -> box -> circle -> ray.
func (c CastShape) Next() CastShape {
	return (c + 1) % CastShape(len(castShapeNames))
}

// ParseCastShape accepts "ray", "box" or "circle" (case-insensitive). An empty
// string selects the circle cast.
func ParseCastShape(s string) (CastShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ray":
		return CastRay, nil
	case "box":
		return CastBox, nil
	case "circle", "":
		return CastCircle, nil
	}
	return 0, fmt.Errorf("%w: unknown cast shape %q", ErrInvalidConfig, s)
}

// CastRequest describes a single probe.
type CastRequest struct {
	Shape     CastShape
	Origin    cp.Vector
	Direction cp.Vector
	Distance  float64
	// Size is the full box size for box casts. Circle casts use Distance as
	// the radius.
	Size cp.Vector
	Mask uint
}

// PhysicsQuery answers probes against the physics world. Cast returns nil when
// nothing was hit.
type PhysicsQuery interface {
	Cast(req CastRequest) Collider
}

// Body is a rigid body whose velocity the locomotion rules drive.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
}

// AnimationSink receives named animator parameters. Nothing is read back.
type AnimationSink interface {
	SetFloat(name string, v float64)
	SetBool(name string, v bool)
}

// AudioRouter plays and stops named cues.
type AudioRouter interface {
	PlaySound(name string, at cp.Vector)
	StopSound(name string)
}

// EntitySpawner instantiates a copy of a template at a position. The spawned
// entity keeps handle and calls handle.Destroyed when it goes away.
type EntitySpawner interface {
	Spawn(template string, at cp.Vector, handle *SpawnHandle) error
}
