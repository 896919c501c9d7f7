package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliderTravelsBetweenLimits(t *testing.T) {
	w := NewWorld(cp.Vector{X: 0, Y: -25})
	body := w.AddKinematicBody(cp.Vector{X: 1, Y: 1})
	w.AddCollider(body, ColliderDef{Tag: "Ground", Layer: LayerGround, Size: cp.Vector{X: 2, Y: 0.5}})

	slider, err := w.AddSlider(body, SliderDef{Axis: cp.Vector{X: 2}, Lower: 0, Upper: 3, MotorSpeed: 2})
	require.NoError(t, err)
	driver, err := behavior.NewMotorDriver(behavior.JointSlider, slider, 2, -2)
	require.NoError(t, err)

	assert.Equal(t, behavior.LimitLower, slider.LimitState())

	sawUpper, sawLowerAgain := false, false
	for i := 0; i < 400; i++ {
		driver.Update()
		w.Step(testStep)

		tr := slider.Translation()
		require.GreaterOrEqual(t, tr, -limitEpsilon)
		require.LessOrEqual(t, tr, 3+limitEpsilon)
		assert.InDelta(t, 1, body.Position().Y, 1e-9, "moves only along the axis")

		switch slider.LimitState() {
		case behavior.LimitUpper:
			sawUpper = true
		case behavior.LimitLower:
			if sawUpper {
				sawLowerAgain = true
			}
		}
	}
	assert.True(t, sawUpper)
	assert.True(t, sawLowerAgain)
}

func TestHingeRotatesBetweenLimits(t *testing.T) {
	w := NewWorld(cp.Vector{})
	body := w.AddKinematicBody(cp.Vector{})
	w.AddCollider(body, ColliderDef{Tag: "Ground", Layer: LayerGround, Size: cp.Vector{X: 4, Y: 0.3}})

	hinge, err := w.AddHinge(body, HingeDef{Lower: -30, Upper: 30, MotorSpeed: 45})
	require.NoError(t, err)
	driver, err := behavior.NewMotorDriver(behavior.JointHinge, hinge, 45, -45)
	require.NoError(t, err)

	flips := 0
	last := hinge.MotorSpeed()
	for i := 0; i < 500; i++ {
		driver.Update()
		if hinge.MotorSpeed() != last {
			flips++
			last = hinge.MotorSpeed()
		}
		w.Step(testStep)
		require.GreaterOrEqual(t, hinge.Angle(), -30-limitEpsilon)
		require.LessOrEqual(t, hinge.Angle(), 30+limitEpsilon)
	}
	assert.GreaterOrEqual(t, flips, 2)
}

func TestJointValidation(t *testing.T) {
	w := NewWorld(cp.Vector{})
	static := w.AddStaticBody(cp.Vector{})
	kinematic := w.AddKinematicBody(cp.Vector{})

	_, err := w.AddSlider(static, SliderDef{Axis: cp.Vector{X: 1}, Upper: 1})
	assert.ErrorIs(t, err, behavior.ErrInvalidConfig)
	_, err = w.AddSlider(kinematic, SliderDef{Upper: 1})
	assert.ErrorIs(t, err, behavior.ErrInvalidConfig)
	_, err = w.AddSlider(kinematic, SliderDef{Axis: cp.Vector{X: 1}, Lower: 2, Upper: 1})
	assert.ErrorIs(t, err, behavior.ErrInvalidConfig)
	_, err = w.AddHinge(nil, HingeDef{})
	assert.ErrorIs(t, err, behavior.ErrInvalidConfig)

	hinge, err := w.AddHinge(kinematic, HingeDef{})
	require.NoError(t, err)
	_, err = behavior.NewMotorDriver(behavior.JointSlider, hinge, 1, -1)
	assert.ErrorIs(t, err, behavior.ErrJointKind)
}

func TestLimitState(t *testing.T) {
	cases := []struct {
		v, lower, upper float64
		want            behavior.LimitState
	}{
		{0, 0, 3, behavior.LimitLower},
		{-1, 0, 3, behavior.LimitLower},
		{3, 0, 3, behavior.LimitUpper},
		{1.5, 0, 3, behavior.LimitInactive},
		{1, 1, 1, behavior.LimitEqual},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, limitState(c.v, c.lower, c.upper), "%v in [%v, %v]", c.v, c.lower, c.upper)
	}
}

func TestClampSpeed(t *testing.T) {
	assert.InDelta(t, 2.0, clampSpeed(0, 0, 3, 2, 0.02), 1e-9)
	assert.InDelta(t, 5.0, clampSpeed(2.9, 0, 3, 10, 0.02), 1e-9)
	assert.InDelta(t, -5.0, clampSpeed(0.1, 0, 3, -10, 0.02), 1e-9)
	assert.Zero(t, clampSpeed(3, 0, 3, 10, 0.02))
}
