package system

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"golang.org/x/image/colornames"
)

const markerSize = 0.3

// view maps world units (y up) to screen pixels around the camera.
type view struct {
	camX, camY   float64
	scale        float64
	halfW, halfH float64
}

func (v view) toScreen(p cp.Vector) (float32, float32) {
	return float32((p.X-v.camX)*v.scale + v.halfW), float32((v.camY-p.Y)*v.scale + v.halfH)
}

func cameraView(w *ecs.World, screen *ebiten.Image, pixelsPerUnit float64) view {
	b := screen.Bounds()
	v := view{
		scale: pixelsPerUnit,
		halfW: float64(b.Dx()) / 2,
		halfH: float64(b.Dy()) / 2,
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		v.camX, v.camY = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.scale *= cam.Zoom
	}
	return v
}

// RenderSystem draws every entity with a render layer as flat shapes, using
// its colliders for geometry.
type RenderSystem struct {
	pixelsPerUnit float64
	colors        map[string]color.Color
	white         *ebiten.Image
}

func NewRenderSystem(pixelsPerUnit float64) *RenderSystem {
	return &RenderSystem{pixelsPerUnit: pixelsPerUnit, colors: map[string]color.Color{}}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	v := cameraView(w, screen, r.pixelsPerUnit)

	entities := w.Query(component.TransformComponent.Kind(), component.RenderLayerComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, _ := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind())
		lj, _ := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind())
		if li.Index != lj.Index {
			return li.Index < lj.Index
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		layer, _ := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		clr := r.color(layer.Color)

		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || pb.Body == nil {
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			r.drawMarker(screen, v, cp.Vector{X: t.X, Y: t.Y}, clr)
			continue
		}

		pos, angle := pb.Body.Position(), pb.Body.Angle()
		for i, def := range pb.Colliders {
			c := clr
			if i < len(pb.Attached) && !pb.Attached[i].Solid() {
				c = fade(clr)
			}
			r.drawCollider(screen, v, pos, angle, def, c)
		}
	}
}

func (r *RenderSystem) drawCollider(screen *ebiten.Image, v view, pos cp.Vector, angle float64, def physics.ColliderDef, clr color.Color) {
	rot := cp.ForAngle(angle)
	if def.Radius > 0 {
		center := pos.Add(def.Offset.Rotate(rot))
		x, y := v.toScreen(center)
		vector.FillCircle(screen, x, y, float32(def.Radius*v.scale), clr, true)
		return
	}
	hw, hh := def.Size.X/2, def.Size.Y/2
	corners := []cp.Vector{
		{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh},
	}
	for i, c := range corners {
		corners[i] = pos.Add(def.Offset.Add(c).Rotate(rot))
	}
	r.fillPolygon(screen, v, corners, clr)
}

func (r *RenderSystem) drawMarker(screen *ebiten.Image, v view, at cp.Vector, clr color.Color) {
	r.fillPolygon(screen, v, []cp.Vector{
		{X: at.X, Y: at.Y + markerSize},
		{X: at.X + markerSize, Y: at.Y},
		{X: at.X, Y: at.Y - markerSize},
		{X: at.X - markerSize, Y: at.Y},
	}, clr)
}

// fillPolygon fills a convex polygon as a triangle fan.
func (r *RenderSystem) fillPolygon(screen *ebiten.Image, v view, verts []cp.Vector, clr color.Color) {
	if len(verts) < 3 {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	cr, cg, cb, ca := clr.RGBA()
	vs := make([]ebiten.Vertex, len(verts))
	for i, p := range verts {
		x, y := v.toScreen(p)
		vs[i] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		}
	}
	is := make([]uint16, 0, (len(verts)-2)*3)
	for i := 1; i < len(verts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, r.white, op)
}

func (r *RenderSystem) color(name string) color.Color {
	if c, ok := r.colors[name]; ok {
		return c
	}
	c, err := prefabs.ParseColor(name)
	if err != nil {
		c = colornames.White
	}
	r.colors[name] = c
	return c
}

// fade drops a colour to a third of its alpha.
func fade(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A /= 3
	return n
}
