package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/settings"
	"golang.design/x/clipboard"
)

const playerPrefab = "player.yaml"

type Options struct {
	Level      string
	Debug      bool
	Cast       string
	CastHitLog bool
	Watch      bool
}

type Game struct {
	opts       Options
	spec       prefabs.WorldSpec
	background color.Color
	settings   *settings.Manager
	watcher    *prefabs.Watcher

	world     *ecs.World
	physics   *physics.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	levelName string

	// cast is the probe shape applied on top of the player prefab; empty
	// keeps the prefab's own.
	cast string

	debug          bool
	paused         bool
	quit           bool
	pauseUI        *ebitenui.UI
	pauseMenu      *pauseMenu
	clipboardReady bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	bg, err := prefabs.ParseColor(spec.Background)
	if err != nil {
		return nil, fmt.Errorf("world background: %w", err)
	}

	g := &Game{
		opts:       opts,
		spec:       spec,
		background: bg,
		settings:   settings.Open(common.AppName),
		render:     system.NewRenderSystem(spec.PixelsPerUnit),
		debug:      opts.Debug,
	}

	g.cast = g.settings.CastShape()
	if opts.Cast != "" {
		g.cast = opts.Cast
	}
	if g.cast != "" {
		if _, err := behavior.ParseCastShape(g.cast); err != nil {
			return nil, err
		}
	}

	name := opts.Level
	if name == "" {
		name = common.DefaultLevel
	}
	if err := g.loadLevel(name); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "levels")
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard: %v (snapshot copy disabled)", err)
	} else {
		g.clipboardReady = true
	}

	g.pauseUI, g.pauseMenu = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("prefabs: close watcher: %v", err)
		}
	}
}

// loadLevel builds a fresh world for the named level. Music playback state
// carries over so a reload does not restart the track. On error the current
// world is kept.
func (g *Game) loadLevel(name string) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}

	var music *component.MusicPlayer
	if g.world != nil {
		if e, ok := ecs.First(g.world, component.MusicPlayerComponent.Kind()); ok {
			if mp, ok := ecs.Get(g.world, e, component.MusicPlayerComponent.Kind()); ok {
				music = entity.CloneMusicPlayerState(mp)
			}
		}
	}

	world := ecs.NewWorld()
	if _, err := entity.LoadScene(world, lvl); err != nil {
		return err
	}
	if music != nil {
		if e, ok := ecs.First(world, component.MusicPlayerComponent.Kind()); ok {
			_ = ecs.Add(world, e, component.MusicPlayerComponent.Kind(), music)
		}
	}

	ecs.ForEach(world, component.LocomotionComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion) {
		loco.CastHitLog = loco.CastHitLog || g.opts.CastHitLog
	})
	if g.cast != "" {
		shape, _ := behavior.ParseCastShape(g.cast)
		if err := system.SetCastShape(world, shape); err != nil {
			return err
		}
	}

	pw := physics.NewWorld(cp.Vector{X: 0, Y: g.spec.GravityY})
	g.world = world
	g.physics = pw
	g.scheduler = g.newScheduler(pw)
	g.levelName = name
	log.Printf("level: loaded %q (%d entities)", lvl.Name, world.EntityCount())
	return nil
}

func (g *Game) newScheduler(pw *physics.World) *ecs.Scheduler {
	s := ecs.NewScheduler(g.spec.FixedStep)
	s.SetMaxFixedSteps(g.spec.MaxFixedSteps)

	s.AddFixed(system.NewLocomotionPhysicsSystem())
	s.AddFixed(system.NewPhysicsSystem(pw))

	s.Add(system.NewInputSystem())
	s.Add(system.NewLocomotionSystem(pw))
	s.Add(system.NewPlatformResetSystem())
	s.Add(system.NewMovingPlatformSystem(pw))
	s.Add(system.NewSpawnerSystem())
	s.Add(system.NewTargetDummySystem())
	s.Add(system.NewAudioToggleSystem(g.settings))
	s.Add(system.NewMusicSystem(nil))
	s.Add(system.NewAudioSystem(nil))
	s.Add(system.NewRespawnSystem())
	s.Add(system.NewAnimationSystem())
	s.Add(system.NewCameraSystem(g.spec.ScreenWidth, g.spec.ScreenHeight, g.spec.PixelsPerUnit))
	return s
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.SetPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.CycleCast()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.RequestReload()
	}

	g.scheduler.Update(g.world, 1.0/float64(ebiten.TPS()))
	g.handleReload()
	return nil
}

func (g *Game) SetPaused(paused bool) {
	g.paused = paused
	if g.pauseMenu != nil {
		g.pauseMenu.refresh()
	}
}

// CycleCast switches the player's probe shape to the next one and saves it.
func (g *Game) CycleCast() {
	current := behavior.CastCircle
	if g.cast != "" {
		current, _ = behavior.ParseCastShape(g.cast)
	} else if p, ok := ecs.First(g.world, component.LocomotionComponent.Kind()); ok {
		loco, _ := ecs.Get(g.world, p, component.LocomotionComponent.Kind())
		current = loco.Config.Cast
	}
	next := current.Next()
	if err := system.SetCastShape(g.world, next); err != nil {
		log.Printf("locomotion: %v", err)
		return
	}
	g.cast = next.String()
	g.settings.SetCastShape(g.cast)
	log.Printf("locomotion: cast shape %s", next)
}

func (g *Game) CastShape() string {
	if g.cast != "" {
		return g.cast
	}
	if p, ok := ecs.First(g.world, component.LocomotionComponent.Kind()); ok {
		loco, _ := ecs.Get(g.world, p, component.LocomotionComponent.Kind())
		return loco.Config.Cast.String()
	}
	return behavior.CastCircle.String()
}

// RequestReload asks for the level to be rebuilt at the end of the frame.
func (g *Game) RequestReload() {
	e := ecs.CreateEntity(g.world)
	_ = ecs.Add(g.world, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{})
}

func (g *Game) handleReload() {
	if _, ok := ecs.First(g.world, component.ReloadRequestComponent.Kind()); !ok {
		return
	}
	for _, e := range g.world.Query(component.ReloadRequestComponent.Kind()) {
		ecs.DestroyEntity(g.world, e)
	}
	if err := g.loadLevel(g.levelName); err != nil {
		log.Printf("level: reload %q: %v (keeping current level)", g.levelName, err)
	}
}

// pollWatcher applies prefab edits. Player tuning is swapped in place; any
// other change rebuilds the level.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("prefabs: watch: %v", err)
		}
	default:
	}

	reload := false
	for _, name := range g.watcher.Poll() {
		if name == playerPrefab {
			if err := g.reloadPlayerTuning(); err != nil {
				log.Printf("prefabs: reload %s: %v (keeping previous tuning)", name, err)
			}
			continue
		}
		log.Printf("prefabs: %s changed", name)
		reload = true
	}
	if reload {
		g.RequestReload()
	}
}

func (g *Game) reloadPlayerTuning() error {
	spec, err := prefabs.LoadEntityBuildSpec(playerPrefab)
	if err != nil {
		return err
	}
	raw, ok := spec.Components["locomotion"]
	if !ok {
		return fmt.Errorf("no locomotion component")
	}
	locoSpec, err := prefabs.DecodeComponentSpecOver(raw, prefabs.DefaultLocomotionSpec())
	if err != nil {
		return err
	}
	cfg, err := locoSpec.Config()
	if err != nil {
		return err
	}
	if g.cast != "" {
		cfg.Cast, _ = behavior.ParseCastShape(g.cast)
	}

	var firstErr error
	ecs.ForEach(g.world, component.LocomotionComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion) {
		if loco.Controller != nil {
			if err := loco.Controller.SetConfig(cfg); err != nil {
				firstErr = err
				return
			}
		}
		loco.Config = cfg
	})
	if firstErr == nil {
		log.Printf("prefabs: applied %s tuning", playerPrefab)
	}
	return firstErr
}

func (g *Game) copySnapshot() {
	b, err := playerSnapshotYAML(g.world)
	if err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	if !g.clipboardReady {
		log.Printf("snapshot:\n%s", b)
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	log.Printf("snapshot: copied %d bytes", len(b))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen, g.spec.PixelsPerUnit)
		system.DrawProbeDebug(g.world, screen, g.spec.PixelsPerUnit)
		system.DrawPlayerStateDebug(g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 10, screen.Bounds().Dy()-20)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.spec.ScreenWidth), float64(g.spec.ScreenHeight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.ScreenWidth, g.spec.ScreenHeight
}
