package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"camera_tag":        addCameraTag,
	"target_dummy_tag":  addTargetDummyTag,
	"player":            addPlayer,
	"input":             addInput,
	"transform":         addTransform,
	"render_layer":      addRenderLayer,
	"physics_body":      addPhysicsBody,
	"locomotion":        addLocomotion,
	"platform_effector": addPlatformEffector,
	"moving_platform":   addMovingPlatform,
	"spawner":           addSpawner,
	"target_dummy":      addTargetDummy,
	"audio":             addAudio,
	"animator":          addAnimator,
	"safe_respawn":      addSafeRespawn,
	"music_player":      addMusicPlayer,
	"music_toggle":      addMusicToggle,
	"camera":            addCamera,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"target_dummy_tag",
	"player",
	"input",
	"transform",
	"render_layer",
	"physics_body",
	"locomotion",
	"platform_effector",
	"moving_platform",
	"spawner",
	"target_dummy",
	"audio",
	"animator",
	"safe_respawn",
	"music_player",
	"music_toggle",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithOverrides(w, prefabPath, nil)
}

// BuildEntityWithOverrides builds a prefab with per-component overrides
// merged over the prefab's own specs.
func BuildEntityWithOverrides(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	components := mergeComponents(spec.Components, overrides)
	if len(components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	name := spec.Name
	if name == "" {
		name = prefabPath
	}
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add name: %w", prefabPath, err)
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

// mergeComponents overlays overrides on base. When both sides of a key are
// maps their fields are merged one level deep; otherwise the override wins.
func mergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, over := range overrides {
		baseMap, okBase := out[k].(map[string]any)
		overMap, okOver := over.(map[string]any)
		if !okBase || !okOver {
			out[k] = over
			continue
		}
		merged := make(map[string]any, len(baseMap)+len(overMap))
		for fk, fv := range baseMap {
			merged[fk] = fv
		}
		for fk, fv := range overMap {
			merged[fk] = fv
		}
		out[k] = merged
	}
	return out
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addTargetDummyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargetDummyTagComponent.Kind(), &component.TargetDummyTag{})
}

func addPlayer(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	if spec.Color != "" {
		if _, err := prefabs.ParseColor(spec.Color); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index, Color: spec.Color})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}

	var bodyType component.BodyType
	switch spec.Type {
	case "", "dynamic":
		bodyType = component.BodyDynamic
		if spec.Mass <= 0 {
			spec.Mass = 1
		}
	case "static":
		bodyType = component.BodyStatic
	case "kinematic":
		bodyType = component.BodyKinematic
	default:
		return fmt.Errorf("unknown body type %q", spec.Type)
	}
	if len(spec.Colliders) == 0 {
		return fmt.Errorf("physics body needs at least one collider")
	}

	defs := make([]physics.ColliderDef, 0, len(spec.Colliders))
	for _, c := range spec.Colliders {
		def, err := c.Def()
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:          bodyType,
		Mass:          spec.Mass,
		FixedRotation: spec.FixedRotation,
		Colliders:     defs,
	})
}

func addLocomotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpecOver(raw, prefabs.DefaultLocomotionSpec())
	if err != nil {
		return fmt.Errorf("decode locomotion spec: %w", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{
		Config:     cfg,
		CastHitLog: spec.CastHitLog,
	})
}

func addPlatformEffector(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlatformEffectorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode platform effector spec: %w", err)
	}
	if spec.Delay < 0 {
		return fmt.Errorf("%w: platform effector delay %v < 0", behavior.ErrInvalidConfig, spec.Delay)
	}
	return ecs.Add(w, e, component.PlatformEffectorComponent.Kind(), &component.PlatformEffector{Delay: spec.Delay})
}

func addMovingPlatform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovingPlatformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode moving platform spec: %w", err)
	}
	kind, err := behavior.ParseJointKind(spec.Joint)
	if err != nil {
		return err
	}
	if spec.Upper < spec.Lower {
		return fmt.Errorf("%w: moving platform upper %v < lower %v", behavior.ErrInvalidConfig, spec.Upper, spec.Lower)
	}
	return ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{
		Kind:          kind,
		Axis:          [2]float64{spec.AxisX, spec.AxisY},
		Lower:         spec.Lower,
		Upper:         spec.Upper,
		PositiveSpeed: spec.PositiveSpeed,
		NegativeSpeed: spec.NegativeSpeed,
	})
}

func addSpawner(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpawnerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	if spec.Template == "" {
		return fmt.Errorf("%w: spawner template is empty", behavior.ErrInvalidConfig)
	}
	s, err := behavior.NewSpawner(spec.Limit, spec.Interval, spec.Template, NewSpawner(w))
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SpawnerComponent.Kind(), &component.Spawner{
		Template: spec.Template,
		Limit:    spec.Limit,
		Interval: spec.Interval,
		OffsetX:  spec.OffsetX,
		OffsetY:  spec.OffsetY,
		Spawner:  s,
	})
}

func addTargetDummy(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TargetDummyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode target dummy spec: %w", err)
	}
	return ecs.Add(w, e, component.TargetDummyComponent.Kind(), &component.TargetDummy{Script: spec.Script})
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), buildAudioComponent(spec.Clips))
}

func addAnimator(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator())
}

func addSafeRespawn(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{})
}

func addMusicPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MusicPlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode music player spec: %w", err)
	}
	return addMusicPlayerFromSpec(w, e, spec)
}

func addMusicToggle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MusicToggleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode music toggle spec: %w", err)
	}
	if spec.Track == "" {
		return fmt.Errorf("%w: music toggle track is empty", behavior.ErrInvalidConfig)
	}
	return ecs.Add(w, e, component.MusicToggleComponent.Kind(), &component.MusicToggle{Track: spec.Track})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}
