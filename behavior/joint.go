package behavior

import (
	"fmt"
	"strings"
)

// JointKind is the kind of constraint driving a moving platform.
type JointKind int

const (
	JointSlider JointKind = iota + 1
	JointHinge
)

func (k JointKind) String() string {
	switch k {
	case JointSlider:
		return "slider"
	case JointHinge:
		return "hinge"
	}
	return fmt.Sprintf("JointKind(%d)", int(k))
}

func ParseJointKind(s string) (JointKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slider":
		return JointSlider, nil
	case "hinge":
		return JointHinge, nil
	}
	return 0, fmt.Errorf("%w: unknown joint kind %q", ErrInvalidConfig, s)
}

// LimitState is where a joint sits relative to its travel limits.
type LimitState int

const (
	LimitInactive LimitState = iota
	LimitLower
	LimitUpper
	LimitEqual
)

func (s LimitState) String() string {
	switch s {
	case LimitInactive:
		return "inactive"
	case LimitLower:
		return "lower"
	case LimitUpper:
		return "upper"
	case LimitEqual:
		return "equal"
	}
	return fmt.Sprintf("LimitState(%d)", int(s))
}

// Joint is a motorised constraint with travel limits.
type Joint interface {
	Kind() JointKind
	LimitState() LimitState
	MotorSpeed() float64
	SetMotorSpeed(speed float64)
}

// MotorDriver flips a joint motor between a positive and a negative speed
// whenever the joint reaches one of its limits.
type MotorDriver struct {
	kind     JointKind
	joint    Joint
	positive float64
	negative float64
	motor    float64
}

func NewMotorDriver(kind JointKind, joint Joint, positive, negative float64) (*MotorDriver, error) {
	if joint == nil {
		return nil, fmt.Errorf("motor driver: %w", ErrNilCollaborator)
	}
	if kind != JointSlider && kind != JointHinge {
		return nil, fmt.Errorf("motor driver: %w: %v", ErrInvalidConfig, kind)
	}
	if joint.Kind() != kind {
		return nil, fmt.Errorf("motor driver: %w: want %v, joint is %v", ErrJointKind, kind, joint.Kind())
	}
	return &MotorDriver{
		kind:     kind,
		joint:    joint,
		positive: positive,
		negative: negative,
		motor:    joint.MotorSpeed(),
	}, nil
}

func (d *MotorDriver) Kind() JointKind { return d.kind }

// Motor is the motor speed last written by the driver (or read at creation).
func (d *MotorDriver) Motor() float64 { return d.motor }

func (d *MotorDriver) Update() {
	switch d.joint.LimitState() {
	case LimitLower:
		d.motor = d.positive
		d.joint.SetMotorSpeed(d.motor)
	case LimitUpper:
		d.motor = d.negative
		d.joint.SetMotorSpeed(d.motor)
	}
}
