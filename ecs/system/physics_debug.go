package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

var (
	probeMissColor = color.NRGBA{R: 255, G: 220, B: 40, A: 200}
	probeHitColor  = color.NRGBA{R: 255, G: 60, B: 60, A: 220}
)

// DrawPhysicsDebug outlines every shape in space.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image, pixelsPerUnit float64) {
	if space == nil || w == nil || screen == nil {
		return
	}
	drawer := &physicsDebugDrawer{
		screen: screen,
		view:   cameraView(w, screen, pixelsPerUnit),
	}
	cp.DrawSpace(space, drawer)
}

// DrawProbeDebug draws the player's ground and head probes, red when the
// last check hit something.
func DrawProbeDebug(w *ecs.World, screen *ebiten.Image, pixelsPerUnit float64) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller == nil || loco.Body == nil {
		return
	}
	d := &physicsDebugDrawer{screen: screen, view: cameraView(w, screen, pixelsPerUnit)}

	cfg := loco.Controller.Config()
	hits := loco.Controller.LastHits()
	pos := loco.Body.Position()
	d.drawProbe(cfg, pos.Add(cfg.FootOffset), cp.Vector{Y: -1}, hits.Down != nil)
	d.drawProbe(cfg, pos.Add(cfg.HeadOffset), cp.Vector{Y: 1}, hits.Up != nil)
}

// DrawPlayerStateDebug prints the locomotion state and session counters.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	loco, ok := ecs.Get(w, player, component.LocomotionComponent.Kind())
	if !ok || loco.Controller == nil {
		return
	}
	st := loco.Controller.State()
	stats, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	if stats == nil {
		stats = &component.Player{}
	}
	text := fmt.Sprintf(
		"Grounded: %v\nCoyote: %.2f\nJumpBuffer: %.2f\nCast: %s\nJumps: %d\nStomps: %d\nRespawns: %d\nMusic muted: %v\nEntities: %d",
		st.Grounded, max(0, st.Coyote), max(0, st.JumpBuffer), loco.Controller.Config().Cast,
		stats.Jumps, stats.Stomps, stats.Respawns, MusicMuted(w), w.EntityCount(),
	)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   view
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

// DrawDot size is in pixels.
func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos)
	half := float32(size / 2)
	c := toNRGBA(fill)
	vector.StrokeLine(d.screen, x-half, y, x+half, y, 1, c, false)
	vector.StrokeLine(d.screen, x, y-half, x, y+half, 1, c, false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

// ShapeColor dims shapes that are switched off or passable.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if c := physics.ColliderOf(shape); c != nil && !c.Solid() {
		return cp.FColor{R: 0.4, G: 0.4, B: 0.4, A: 0.3}
	}
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawProbe(cfg behavior.LocomotionConfig, origin, dir cp.Vector, hit bool) {
	c := probeMissColor
	if hit {
		c = probeHitColor
	}
	end := origin.Add(dir.Mult(cfg.ProbeDistance))
	fc := cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
	switch cfg.Cast {
	case behavior.CastBox:
		hw, hh := cfg.ProbeSize.X/2, cfg.ProbeSize.Y/2
		for _, at := range []cp.Vector{origin, end} {
			d.drawPolygon([]cp.Vector{
				{X: at.X - hw, Y: at.Y - hh}, {X: at.X + hw, Y: at.Y - hh},
				{X: at.X + hw, Y: at.Y + hh}, {X: at.X - hw, Y: at.Y + hh},
			}, fc)
		}
	case behavior.CastCircle:
		r := cfg.ProbeSize.X / 2
		d.drawCircle(origin, r, fc)
		d.drawCircle(end, r, fc)
	}
	d.drawLine(origin, end, fc)
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, color cp.FColor) {
	x1, y1 := d.view.toScreen(a)
	x2, y2 := d.view.toScreen(b)
	ebitenutil.DrawLine(d.screen, float64(x1), float64(y1), float64(x2), float64(y2), toNRGBA(color))
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, color cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], color)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, color cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, color)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
