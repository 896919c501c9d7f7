// Package physics adapts the chipmunk space to the gameplay interfaces in
// package behavior: colliders with pass-through flags, probe casts and
// motorised platform joints.
package physics

import "github.com/jakecoffman/cp"

// Category bits used in shape filters.
const (
	LayerGround uint = 1 << iota
	LayerPlatform
	LayerDummy
	LayerPlayer
)

// LayerAll matches every category.
const LayerAll = ^uint(0)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeOneWay
	collisionTypePlayer
	collisionTypeDummy
)

var layerNames = map[string]uint{
	"ground":   LayerGround,
	"platform": LayerPlatform,
	"dummy":    LayerDummy,
	"player":   LayerPlayer,
	"all":      LayerAll,
}

// ParseLayers ORs together named layers. Unknown names are reported through
// ok=false and contribute nothing.
func ParseLayers(names []string) (mask uint, ok bool) {
	ok = true
	for _, n := range names {
		bit, found := layerNames[n]
		if !found {
			ok = false
			continue
		}
		mask |= bit
	}
	return mask, ok
}

func collisionTypeFor(layer uint, oneWay bool) cp.CollisionType {
	switch {
	case oneWay:
		return collisionTypeOneWay
	case layer&LayerPlayer != 0:
		return collisionTypePlayer
	case layer&LayerDummy != 0:
		return collisionTypeDummy
	}
	return collisionTypeSolid
}
