package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem eases the camera toward the player and keeps the view inside
// the level bounds. The camera transform is the world point at the centre of
// the screen.
type CameraSystem struct {
	screenW       float64
	screenH       float64
	pixelsPerUnit float64
}

func NewCameraSystem(screenW, screenH int, pixelsPerUnit float64) *CameraSystem {
	return &CameraSystem{
		screenW:       float64(screenW),
		screenH:       float64(screenH),
		pixelsPerUnit: pixelsPerUnit,
	}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camT, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	tx, ty := target.X, target.Y
	if !cam.Snapped || cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		camT.X, camT.Y = tx, ty
		cam.Snapped = true
	} else {
		camT.X = common.Lerp(camT.X, tx, cam.Smoothness)
		camT.Y = common.Lerp(camT.Y, ty, cam.Smoothness)
	}

	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok {
			halfW, halfH := cs.halfView(cam.Zoom)
			camT.X = common.Clamp(camT.X, b.MinX+halfW, b.MaxX-halfW)
			camT.Y = common.Clamp(camT.Y, b.MinY+halfH, b.MaxY-halfH)
		}
	}
	cam.X, cam.Y = camT.X, camT.Y
}

// halfView is half the visible extent in world units.
func (cs *CameraSystem) halfView(zoom float64) (float64, float64) {
	if zoom <= 0 {
		zoom = 1
	}
	scale := cs.pixelsPerUnit * zoom
	if scale <= 0 {
		return 0, 0
	}
	return cs.screenW / scale / 2, cs.screenH / scale / 2
}
