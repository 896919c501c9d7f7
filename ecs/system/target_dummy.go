package system

import (
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

const (
	// EventDummyDestroyed is pushed when a target dummy is removed. Data is
	// the dummy entity.
	EventDummyDestroyed = "dummy_destroyed"

	stompCue = "Stomp"
)

const dummyDispatchScript = `
if __phase == "update" {
	update(__engine, __state)
}
`

type dummyScript struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// TargetDummySystem runs each dummy's tengo script and removes dummies that
// were stomped, asked to be destroyed or fell below the kill plane. Removal
// notifies the spawner that made the dummy.
type TargetDummySystem struct {
	scripts map[ecs.Entity]*dummyScript
}

func NewTargetDummySystem() *TargetDummySystem {
	return &TargetDummySystem{scripts: map[ecs.Entity]*dummyScript{}}
}

func (s *TargetDummySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	s.applyStomps(w)

	killY, hasBounds := 0.0, false
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok {
			killY, hasBounds = b.KillY, true
		}
	}

	ecs.ForEach(w, component.TargetDummyComponent.Kind(), func(e ecs.Entity, dummy *component.TargetDummy) {
		dummy.Age += dt
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && hasBounds && t.Y < killY {
			dummy.Destroy = true
		}
		switch {
		case dummy.Destroy:
		case dummy.Script != "":
			s.runScript(w, e, dummy, dt)
		case dummy.Stomped:
			dummy.Destroy = true
		}
		if dummy.Destroy {
			s.destroy(w, e)
		}
	})

	for e := range s.scripts {
		if !w.IsAlive(e) {
			delete(s.scripts, e)
		}
	}
}

func (s *TargetDummySystem) applyStomps(w *ecs.World) {
	for _, evt := range w.Events().Peek(EventStomp) {
		stomp, ok := evt.Data.(Stomp)
		if !ok {
			continue
		}
		dummy, ok := ecs.Get(w, stomp.Dummy, component.TargetDummyComponent.Kind())
		if !ok || dummy.Stomped {
			continue
		}
		dummy.Stomped = true

		if p, ok := ecs.Get(w, stomp.Player, component.PlayerComponent.Kind()); ok {
			p.Stomps++
		}
		pos := cp.Vector{}
		if t, ok := ecs.Get(w, stomp.Player, component.TransformComponent.Kind()); ok {
			pos = cp.Vector{X: t.X, Y: t.Y}
		}
		cueRouter{w: w, e: stomp.Player}.PlaySound(stompCue, pos)
	}
}

func (s *TargetDummySystem) destroy(w *ecs.World, e ecs.Entity) {
	if link, ok := ecs.Get(w, e, component.SpawnedComponent.Kind()); ok {
		link.Handle.Destroyed()
	}
	ecs.DestroyEntity(w, e)
	delete(s.scripts, e)
	w.Events().Push(ecs.Event{Type: EventDummyDestroyed, Data: e})
}

func (s *TargetDummySystem) runScript(w *ecs.World, e ecs.Entity, dummy *component.TargetDummy, dt float64) {
	rt := s.scripts[e]
	if rt == nil || rt.path != dummy.Script {
		var err error
		rt, err = loadDummyScript(dummy.Script)
		if err != nil {
			log.Printf("target dummy: entity=%v load %q: %v", e, dummy.Script, err)
			// Keep the failed runtime so the error is logged once.
			rt = &dummyScript{path: dummy.Script}
		}
		s.scripts[e] = rt
	}
	if rt.compiled == nil {
		return
	}

	engine := buildDummyEngine(w, e, dummy, dt)
	if err := rt.compiled.Set("__phase", "update"); err != nil {
		log.Printf("target dummy: entity=%v: %v", e, err)
		return
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		log.Printf("target dummy: entity=%v: %v", e, err)
		return
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		log.Printf("target dummy: entity=%v: %v", e, err)
		return
	}
	if err := rt.compiled.Run(); err != nil {
		log.Printf("target dummy: entity=%v script error: %v", e, err)
		rt.compiled = nil
	}
}

func loadDummyScript(path string) (*dummyScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + dummyDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &dummyScript{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func buildDummyEngine(w *ecs.World, e ecs.Entity, dummy *component.TargetDummy, dt float64) *tengo.ImmutableMap {
	stomped := tengo.FalseValue
	if dummy.Stomped {
		stomped = tengo.TrueValue
	}
	values := map[string]tengo.Object{
		"dt":      &tengo.Float{Value: dt},
		"age":     &tengo.Float{Value: dummy.Age},
		"stomped": stomped,
	}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		dummy.Destroy = true
		return tengo.TrueValue, nil
	}}

	values["set_velocity_x"] = &tengo.UserFunction{Name: "set_velocity_x", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		vx, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "vx", Expected: "float", Found: args[0].TypeName()}
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			return tengo.FalseValue, nil
		}
		v := pb.Body.Velocity()
		pb.Body.SetVelocityVector(cp.Vector{X: vx, Y: v.Y})
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y := 0.0, 0.0
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			x, y = t.X, t.Y
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
