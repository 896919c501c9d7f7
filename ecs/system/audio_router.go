package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// cueRouter plays cues through the Audio component of one entity. The audio
// system picks the flags up later in the frame.
type cueRouter struct {
	w *ecs.World
	e ecs.Entity
}

var _ behavior.AudioRouter = cueRouter{}

func (r cueRouter) PlaySound(name string, _ cp.Vector) {
	a, ok := ecs.Get(r.w, r.e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	if i := a.Index(name); i >= 0 {
		a.Play[i] = true
	}
}

func (r cueRouter) StopSound(name string) {
	a, ok := ecs.Get(r.w, r.e, component.AudioComponent.Kind())
	if !ok {
		return
	}
	if i := a.Index(name); i >= 0 {
		a.Stop[i] = true
	}
}

// musicRouter turns play and stop into music requests.
type musicRouter struct {
	w *ecs.World
}

var _ behavior.AudioRouter = musicRouter{}

func (r musicRouter) PlaySound(track string, _ cp.Vector) {
	RequestMusic(r.w, track)
}

func (r musicRouter) StopSound(string) {
	StopMusic(r.w)
}

type discardAnimation struct{}

func (discardAnimation) SetFloat(string, float64) {}

func (discardAnimation) SetBool(string, bool) {}
