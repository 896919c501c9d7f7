// Command levelcheck builds every prefab and level headlessly and steps each
// level for a while, so broken yaml or scripts show up without opening a
// window.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

const worldPrefab = "world.yaml"

type report struct {
	Level     string
	Entities  int
	Dummies   int
	PlayerX   float64
	PlayerY   float64
	Grounded  bool
	Respawns  int
	Simulated float64
}

func main() {
	levelName := flag.String("level", "", "only check this level")
	seconds := flag.Float64("seconds", 10, "simulated seconds per level")
	flag.Parse()

	failed := false
	if err := checkPrefabs(); err != nil {
		log.Printf("prefabs: %v", err)
		failed = true
	}

	names := levels.Names()
	if *levelName != "" {
		names = []string{*levelName}
	}
	for _, name := range names {
		r, err := checkLevel(name, *seconds)
		if err != nil {
			log.Printf("level %s: %v", name, err)
			failed = true
			continue
		}
		printReport(os.Stdout, r)
	}
	if failed {
		os.Exit(1)
	}
}

// checkPrefabs builds every entity prefab into its own world.
func checkPrefabs() error {
	names, err := prefabs.List()
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		if name == worldPrefab {
			continue
		}
		if _, err := entity.BuildEntity(ecs.NewWorld(), name); err != nil {
			return err
		}
	}
	return nil
}

func checkLevel(name string, seconds float64) (report, error) {
	r := report{Level: name}
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return r, err
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return r, err
	}

	w := ecs.NewWorld()
	if _, err := entity.LoadScene(w, lvl); err != nil {
		return r, err
	}

	pw := physics.NewWorld(cp.Vector{X: 0, Y: spec.GravityY})
	s := ecs.NewScheduler(spec.FixedStep)
	s.SetMaxFixedSteps(spec.MaxFixedSteps)
	s.AddFixed(system.NewLocomotionPhysicsSystem())
	s.AddFixed(system.NewPhysicsSystem(pw))
	s.Add(system.NewLocomotionSystem(pw))
	s.Add(system.NewPlatformResetSystem())
	s.Add(system.NewMovingPlatformSystem(pw))
	s.Add(system.NewSpawnerSystem())
	s.Add(system.NewTargetDummySystem())
	s.Add(system.NewRespawnSystem())

	for t := 0.0; t < seconds; t += spec.FixedStep {
		s.Update(w, spec.FixedStep)
	}
	r.Simulated = w.Time()
	r.Entities = w.EntityCount()
	r.Dummies = len(w.Query(component.TargetDummyComponent.Kind()))

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return r, fmt.Errorf("no player placed")
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		r.PlayerX, r.PlayerY = t.X, t.Y
	}
	if loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind()); ok && loco.Controller != nil {
		r.Grounded = loco.Controller.State().Grounded
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		r.Respawns = p.Respawns
	}
	if !r.Grounded {
		return r, fmt.Errorf("player is not standing on anything at (%.2f, %.2f)", r.PlayerX, r.PlayerY)
	}
	return r, nil
}

func printReport(out io.Writer, r report) {
	fmt.Fprintf(out, "%-16s %6.1fs  entities=%d dummies=%d player=(%.2f, %.2f) grounded=%v respawns=%d\n",
		r.Level, r.Simulated, r.Entities, r.Dummies, r.PlayerX, r.PlayerY, r.Grounded, r.Respawns)
}
