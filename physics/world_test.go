package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStep = 1.0 / 50

func addBall(w *World, pos cp.Vector) (*cp.Body, *Collider) {
	body := w.AddDynamicBody(1, pos, true, cp.Vector{X: 1, Y: 1})
	c := w.AddCollider(body, ColliderDef{Tag: "Player", Layer: LayerPlayer, Group: w.NewGroup(), Radius: 0.5})
	return body, c
}

// oneWayWorld has a thin one-way plank with its top face at y=0 and no
// other ground.
func oneWayWorld() (*World, *Collider) {
	w := NewWorld(cp.Vector{X: 0, Y: -25})
	body := w.AddStaticBody(cp.Vector{X: 0, Y: -0.1})
	plank := w.AddCollider(body, ColliderDef{
		Tag:    "PlatformEffector",
		Layer:  LayerPlatform,
		Size:   cp.Vector{X: 6, Y: 0.2},
		OneWay: true,
	})
	return w, plank
}

func simulate(w *World, seconds float64) {
	for t := 0.0; t < seconds; t += testStep {
		w.Step(testStep)
	}
}

func TestOneWayPlatformHoldsFromAbove(t *testing.T) {
	w, _ := oneWayWorld()
	ball, _ := addBall(w, cp.Vector{X: 0, Y: 2})

	simulate(w, 2)
	assert.InDelta(t, 0.5, ball.Position().Y, 0.1, "resting on top")
}

func TestOneWayPlatformPassesFromBelow(t *testing.T) {
	w, _ := oneWayWorld()
	ball, _ := addBall(w, cp.Vector{X: 0, Y: -1})
	ball.SetVelocityVector(cp.Vector{X: 0, Y: 10})

	simulate(w, 2)
	assert.InDelta(t, 0.5, ball.Position().Y, 0.1, "jumped through and landed on top")
}

func TestDisabledPlatformDoesNotCollide(t *testing.T) {
	w, plank := oneWayWorld()
	ball, _ := addBall(w, cp.Vector{X: 0, Y: 2})

	plank.SetEnabled(false)
	simulate(w, 1)
	assert.Less(t, ball.Position().Y, -1.0)
}

func TestTriggerPlatformDoesNotCollide(t *testing.T) {
	w, plank := oneWayWorld()
	ball, _ := addBall(w, cp.Vector{X: 0, Y: 0.6})
	simulate(w, 0.5)
	require.InDelta(t, 0.5, ball.Position().Y, 0.1)

	plank.SetTrigger(true)
	simulate(w, 1)
	assert.Less(t, ball.Position().Y, -1.0, "dropped through")
}

func TestRemoveBodyDropsShapesAndJoints(t *testing.T) {
	w := NewWorld(cp.Vector{})
	body := w.AddKinematicBody(cp.Vector{})
	c := w.AddCollider(body, ColliderDef{Tag: "Platform", Layer: LayerGround, Size: cp.Vector{X: 2, Y: 0.5}})
	_, err := w.AddSlider(body, SliderDef{Axis: cp.Vector{X: 1}, Lower: 0, Upper: 2, MotorSpeed: 1})
	require.NoError(t, err)
	require.Equal(t, []*Collider{c}, w.Colliders(body))

	w.RemoveBody(body)
	assert.Empty(t, w.Colliders(body))
	assert.Empty(t, w.joints)
	assert.Nil(t, w.Query(0).Cast(downProbe(0, 0.3)))
}

func TestParseLayers(t *testing.T) {
	mask, ok := ParseLayers([]string{"ground", "platform"})
	assert.True(t, ok)
	assert.Equal(t, LayerGround|LayerPlatform, mask)

	mask, ok = ParseLayers([]string{"dummy", "water"})
	assert.False(t, ok)
	assert.Equal(t, LayerDummy, mask)
}

func TestColliderOf(t *testing.T) {
	_, plank := oneWayWorld()
	assert.Same(t, plank, ColliderOf(plank.Shape()))
	assert.Nil(t, ColliderOf(nil))
	assert.True(t, plank.OneWay())
	assert.Equal(t, LayerPlatform, plank.Layer())
}
