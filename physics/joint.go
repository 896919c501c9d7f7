package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
)

// limitEpsilon is how close to a limit counts as being at it.
const limitEpsilon = 1e-4

// SliderDef describes a platform translating along Axis, with its travel
// measured from the body's starting position.
type SliderDef struct {
	Axis       cp.Vector
	Lower      float64
	Upper      float64
	MotorSpeed float64
}

// SliderJoint drives a kinematic body along an axis between translation
// limits. Motor speed is in world units per second.
type SliderJoint struct {
	body   *cp.Body
	origin cp.Vector
	axis   cp.Vector
	lower  float64
	upper  float64
	motor  float64
}

var _ behavior.Joint = (*SliderJoint)(nil)

// AddSlider attaches a slider joint to a kinematic body.
func (w *World) AddSlider(body *cp.Body, def SliderDef) (*SliderJoint, error) {
	if body == nil || body.GetType() != cp.BODY_KINEMATIC {
		return nil, fmt.Errorf("physics: add slider: %w: body must be kinematic", behavior.ErrInvalidConfig)
	}
	if def.Axis.LengthSq() == 0 {
		return nil, fmt.Errorf("physics: add slider: %w: zero axis", behavior.ErrInvalidConfig)
	}
	if def.Lower > def.Upper {
		return nil, fmt.Errorf("physics: add slider: %w: lower %v > upper %v", behavior.ErrInvalidConfig, def.Lower, def.Upper)
	}
	j := &SliderJoint{
		body:   body,
		origin: body.Position(),
		axis:   def.Axis.Normalize(),
		lower:  def.Lower,
		upper:  def.Upper,
		motor:  def.MotorSpeed,
	}
	w.joints = append(w.joints, j)
	return j, nil
}

func (j *SliderJoint) Body() *cp.Body { return j.body }

func (j *SliderJoint) Kind() behavior.JointKind { return behavior.JointSlider }

// Translation is the signed distance travelled along the axis.
func (j *SliderJoint) Translation() float64 {
	return j.body.Position().Sub(j.origin).Dot(j.axis)
}

func (j *SliderJoint) LimitState() behavior.LimitState {
	return limitState(j.Translation(), j.lower, j.upper)
}

func (j *SliderJoint) MotorSpeed() float64 { return j.motor }

func (j *SliderJoint) SetMotorSpeed(speed float64) { j.motor = speed }

func (j *SliderJoint) sync(dt float64) {
	speed := clampSpeed(j.Translation(), j.lower, j.upper, j.motor, dt)
	j.body.SetVelocityVector(j.axis.Mult(speed))
}

// HingeDef describes a platform rotating about its centre. Angles are in
// degrees relative to the body's starting angle, speed in degrees per second.
type HingeDef struct {
	Lower      float64
	Upper      float64
	MotorSpeed float64
}

// HingeJoint drives a kinematic body's rotation between angle limits.
type HingeJoint struct {
	body      *cp.Body
	reference float64
	lower     float64
	upper     float64
	motor     float64
}

var _ behavior.Joint = (*HingeJoint)(nil)

func (w *World) AddHinge(body *cp.Body, def HingeDef) (*HingeJoint, error) {
	if body == nil || body.GetType() != cp.BODY_KINEMATIC {
		return nil, fmt.Errorf("physics: add hinge: %w: body must be kinematic", behavior.ErrInvalidConfig)
	}
	if def.Lower > def.Upper {
		return nil, fmt.Errorf("physics: add hinge: %w: lower %v > upper %v", behavior.ErrInvalidConfig, def.Lower, def.Upper)
	}
	j := &HingeJoint{
		body:      body,
		reference: body.Angle(),
		lower:     def.Lower,
		upper:     def.Upper,
		motor:     def.MotorSpeed,
	}
	w.joints = append(w.joints, j)
	return j, nil
}

func (j *HingeJoint) Body() *cp.Body { return j.body }

func (j *HingeJoint) Kind() behavior.JointKind { return behavior.JointHinge }

// Angle is the rotation from the reference angle, in degrees.
func (j *HingeJoint) Angle() float64 {
	return (j.body.Angle() - j.reference) * 180 / math.Pi
}

func (j *HingeJoint) LimitState() behavior.LimitState {
	return limitState(j.Angle(), j.lower, j.upper)
}

func (j *HingeJoint) MotorSpeed() float64 { return j.motor }

func (j *HingeJoint) SetMotorSpeed(speed float64) { j.motor = speed }

func (j *HingeJoint) sync(dt float64) {
	speed := clampSpeed(j.Angle(), j.lower, j.upper, j.motor, dt)
	j.body.SetAngularVelocity(speed * math.Pi / 180)
}

func limitState(v, lower, upper float64) behavior.LimitState {
	switch {
	case upper-lower < limitEpsilon:
		return behavior.LimitEqual
	case v <= lower+limitEpsilon:
		return behavior.LimitLower
	case v >= upper-limitEpsilon:
		return behavior.LimitUpper
	}
	return behavior.LimitInactive
}

// clampSpeed limits speed so one step of dt never carries v past a limit.
func clampSpeed(v, lower, upper, speed, dt float64) float64 {
	next := v + speed*dt
	switch {
	case speed > 0 && next > upper:
		return math.Max(0, (upper-v)/dt)
	case speed < 0 && next < lower:
		return math.Min(0, (lower-v)/dt)
	}
	return speed
}
