package ops

import (
	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Side selects which side of an entity an offset lands on. For lines
// and polylines, left is 90 degrees counterclockwise from the travel
// direction. For circles and rectangles, left means outward.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Offset returns a parallel copy of e at the given distance on the
// given side. A non-positive distance, or a circle or rectangle that
// would collapse, declines with a nil result. Lines, circles,
// polylines, and rectangles are supported; arcs are not.
func Offset(e entity.Entity, distance float64, side Side, tol geom.Tolerance) (entity.Entity, error) {
	if distance <= 0 {
		return nil, nil
	}
	signed := distance
	if side == SideRight {
		signed = -distance
	}

	switch src := e.(type) {
	case *entity.Line:
		return offsetLine(src, signed), nil
	case *entity.Circle:
		return offsetCircle(src, signed)
	case *entity.Polyline:
		return offsetPolyline(src, signed, tol)
	case *entity.Rectangle:
		return offsetRectangle(src, signed), nil
	default:
		return nil, unsupported("offset", e)
	}
}

// OffsetToward offsets e toward the reference point: the side is
// derived from the point's position relative to the entity.
func OffsetToward(e entity.Entity, distance float64, ref geom.Vector2, tol geom.Tolerance) (entity.Entity, error) {
	side, err := sideOf(e, ref)
	if err != nil {
		return nil, err
	}
	return Offset(e, distance, side, tol)
}

// sideOf determines which side of e the point lies on.
func sideOf(e entity.Entity, p geom.Vector2) (Side, error) {
	switch src := e.(type) {
	case *entity.Line:
		if src.Direction().Cross(p.Sub(src.Start())) >= 0 {
			return SideLeft, nil
		}
		return SideRight, nil
	case *entity.Circle:
		if p.DistanceTo(src.Center()) >= src.Radius() {
			return SideLeft, nil
		}
		return SideRight, nil
	case *entity.Rectangle:
		if src.BoundingBox().ContainsPoint(p) {
			return SideRight, nil
		}
		return SideLeft, nil
	case *entity.Polyline:
		// Side relative to the nearest segment.
		bestSq := -1.0
		side := SideLeft
		for i := 0; i < src.SegmentCount(); i++ {
			a, b := src.Segment(i)
			near := a
			d := b.Sub(a)
			if lsq := d.LengthSq(); lsq > 0 {
				t := p.Sub(a).Dot(d) / lsq
				if t < 0 {
					t = 0
				} else if t > 1 {
					t = 1
				}
				near = a.Add(d.Scale(t))
			}
			if dsq := p.DistanceSqTo(near); bestSq < 0 || dsq < bestSq {
				bestSq = dsq
				if d.Cross(p.Sub(a)) >= 0 {
					side = SideLeft
				} else {
					side = SideRight
				}
			}
		}
		return side, nil
	default:
		return SideLeft, unsupported("offset", e)
	}
}

func offsetLine(l *entity.Line, signed float64) *entity.Line {
	off := l.Direction().Perpendicular().Scale(signed)
	return entity.NewLine(l.Start().Add(off), l.End().Add(off))
}

func offsetCircle(c *entity.Circle, signed float64) (entity.Entity, error) {
	r := c.Radius() + signed
	if r <= 0 {
		return nil, nil
	}
	out, err := entity.NewCircle(c.Center(), r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func offsetRectangle(r *entity.Rectangle, signed float64) entity.Entity {
	box := r.BoundingBox().Pad(signed)
	if box.Width() <= 0 || box.Height() <= 0 {
		return nil
	}
	return entity.NewRectangle(box.Min, box.Max)
}

// offsetPolyline offsets each segment and re-miters the vertices by
// intersecting consecutive offset segments; parallel neighbors fall
// back to the raw offset endpoint. Open polylines keep the offset
// segments' own endpoints at the two ends; closed polylines miter
// cyclically.
func offsetPolyline(p *entity.Polyline, signed float64, tol geom.Tolerance) (entity.Entity, error) {
	segCount := p.SegmentCount()
	starts := make([]geom.Vector2, segCount)
	ends := make([]geom.Vector2, segCount)
	dirs := make([]geom.Vector2, segCount)
	for i := 0; i < segCount; i++ {
		a, b := p.Segment(i)
		d := b.Sub(a).Normalize()
		off := d.Perpendicular().Scale(signed)
		starts[i] = a.Add(off)
		ends[i] = b.Add(off)
		dirs[i] = d
	}

	miter := func(prev, next int) geom.Vector2 {
		pt, ok := infiniteIntersect(starts[prev], dirs[prev], starts[next], dirs[next], tol)
		if !ok {
			// Parallel neighbors: keep the raw offset endpoint.
			return ends[prev]
		}
		return pt
	}

	verts := make([]geom.Vector2, p.VertexCount())
	if p.Closed() {
		for i := range verts {
			prev := (i - 1 + segCount) % segCount
			verts[i] = miter(prev, i)
		}
	} else {
		verts[0] = starts[0]
		for i := 1; i < len(verts)-1; i++ {
			verts[i] = miter(i-1, i)
		}
		verts[len(verts)-1] = ends[segCount-1]
	}
	return entity.NewPolyline(verts, p.Closed())
}

// infiniteIntersect intersects two infinite lines given by point and
// direction. The second result is false when they are parallel.
func infiniteIntersect(p1, d1, p2, d2 geom.Vector2, tol geom.Tolerance) (geom.Vector2, bool) {
	denom := d1.Cross(d2)
	if denom > -tol.Cross && denom < tol.Cross {
		return geom.Vector2{}, false
	}
	t := p2.Sub(p1).Cross(d2) / denom
	return p1.Add(d1.Scale(t)), true
}
