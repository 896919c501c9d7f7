package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/behavior"
)

// Query answers behavior.CastRequest probes against a space. Shapes sharing
// the query's group, triggers and disabled colliders are never reported.
type Query struct {
	space *cp.Space
	group uint
}

var _ behavior.PhysicsQuery = (*Query)(nil)

// Hit is the nearest contact of a cast.
type Hit struct {
	Collider *Collider
	// Distance travelled along the cast direction before contact. Zero when
	// the probe starts overlapping the collider.
	Distance float64
}

// Cast implements behavior.PhysicsQuery.
func (q *Query) Cast(req behavior.CastRequest) behavior.Collider {
	hit, ok := q.CastHit(req)
	if !ok {
		return nil
	}
	return hit.Collider
}

// CastHit runs the probe and reports the nearest collider along it.
func (q *Query) CastHit(req behavior.CastRequest) (Hit, bool) {
	if q == nil || q.space == nil || req.Distance <= 0 {
		return Hit{}, false
	}
	dir := req.Direction.Normalize()
	if dir.LengthSq() == 0 {
		return Hit{}, false
	}

	mask := req.Mask
	if mask == 0 {
		mask = LayerAll
	}
	filter := cp.ShapeFilter{Group: q.group, Categories: LayerAll, Mask: mask}

	best := Hit{Distance: math.Inf(1)}
	consider := func(shape *cp.Shape, dist float64) {
		c := ColliderOf(shape)
		if c == nil || !c.Solid() {
			return
		}
		if dist < best.Distance {
			best = Hit{Collider: c, Distance: dist}
		}
	}

	switch req.Shape {
	case behavior.CastRay:
		q.sweepSegment(req.Origin, dir, req.Distance, 0, filter, consider)
	case behavior.CastCircle:
		q.sweepSegment(req.Origin, dir, req.Distance, req.Distance, filter, consider)
	case behavior.CastBox:
		q.sweepBox(req.Origin, dir, req.Distance, req.Size, filter, consider)
	default:
		return Hit{}, false
	}

	if best.Collider == nil {
		return Hit{}, false
	}
	return best, true
}

// sweepSegment moves a point (radius 0) or a circle from origin along dir.
// Shapes already overlapping the start are hits at distance zero.
func (q *Query) sweepSegment(origin, dir cp.Vector, dist, radius float64, filter cp.ShapeFilter, consider func(*cp.Shape, float64)) {
	q.space.BBQuery(cp.NewBBForCircle(origin, radius), filter, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(origin).Distance <= radius {
			consider(shape, 0)
		}
	}, nil)

	end := origin.Add(dir.Mult(dist))
	q.space.SegmentQuery(origin, end, radius, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, data interface{}) {
		consider(shape, alpha*dist)
	}, nil)
}

// sweepBox moves an axis-aligned box of the given full size from origin along
// dir. Contacts are tested against the shapes themselves, so rotated colliders
// only report where their outline is actually reached.
func (q *Query) sweepBox(origin, dir cp.Vector, dist float64, size cp.Vector, filter cp.ShapeFilter, consider func(*cp.Shape, float64)) {
	body := cp.NewKinematicBody()
	body.SetPosition(origin)
	box := cp.NewBox(body, size.X, size.Y, 0)
	box.Filter = filter

	// ShapeQuery also caches the box's world vertices used below.
	q.space.ShapeQuery(box, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		consider(shape, 0)
	})

	hw, hh := size.X/2, size.Y/2
	start := cp.NewBBForExtents(origin, hw, hh)
	end := origin.Add(dir.Mult(dist))
	swept := start.Merge(cp.NewBBForExtents(end, hw, hh))
	corners := []cp.Vector{
		{X: start.L, Y: start.B},
		{X: start.R, Y: start.B},
		{X: start.R, Y: start.T},
		{X: start.L, Y: start.T},
	}

	q.space.BBQuery(swept, filter, func(shape *cp.Shape, _ interface{}) {
		if t, ok := boxContact(box, shape, corners, dir, dist); ok {
			consider(shape, t)
		}
	}, nil)
}

// boxContact is the first travel along dir at which box touches target. For
// convex shapes that is either a box corner reaching the target or a target
// feature reaching the box, so both are cast and the nearest wins.
func boxContact(box, target *cp.Shape, corners []cp.Vector, dir cp.Vector, dist float64) (float64, bool) {
	best, found := math.Inf(1), false
	var info cp.SegmentQueryInfo
	try := func(shape *cp.Shape, from, to cp.Vector, radius float64) {
		if shape.SegmentQuery(from, to, radius, &info) && info.Alpha*dist < best {
			best, found = info.Alpha*dist, true
		}
	}

	forward := dir.Mult(dist)
	for _, c := range corners {
		try(target, c, c.Add(forward), 0)
	}

	back := forward.Neg()
	switch class := target.Class.(type) {
	case *cp.PolyShape:
		for i := 0; i < class.Count(); i++ {
			v := class.TransformVert(i)
			try(box, v, v.Add(back), class.Radius())
		}
	case *cp.Circle:
		c := class.TransformC()
		try(box, c, c.Add(back), class.Radius())
	case *cp.Segment:
		for _, v := range []cp.Vector{class.TransformA(), class.TransformB()} {
			try(box, v, v.Add(back), class.Radius())
		}
	}
	return best, found
}
