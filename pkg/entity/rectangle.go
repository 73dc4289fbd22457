package entity

import (
	"github.com/chazu/vellum/pkg/geom"
)

// Rectangle is an axis-aligned rectangle held as two opposite corners.
// Transforms are applied to the corners, so a rectangle stays
// axis-aligned; callers wanting rotated rectangles convert to a closed
// polyline first.
type Rectangle struct {
	id      ID
	corner1 geom.Vector2
	corner2 geom.Vector2
	cache   boxCache
}

var _ Entity = (*Rectangle)(nil)

// NewRectangle creates a rectangle from two opposite corners.
func NewRectangle(corner1, corner2 geom.Vector2) *Rectangle {
	return &Rectangle{id: NewID(), corner1: corner1, corner2: corner2}
}

func (r *Rectangle) entity()    {}
func (r *Rectangle) ID() ID     { return r.id }
func (r *Rectangle) Kind() Kind { return KindRectangle }

// Corner1 returns the first corner as given.
func (r *Rectangle) Corner1() geom.Vector2 { return r.corner1 }

// Corner2 returns the second corner as given.
func (r *Rectangle) Corner2() geom.Vector2 { return r.corner2 }

// SetCorner1 moves the first corner.
func (r *Rectangle) SetCorner1(p geom.Vector2) {
	r.corner1 = p
	r.cache.invalidate()
}

// SetCorner2 moves the second corner.
func (r *Rectangle) SetCorner2(p geom.Vector2) {
	r.corner2 = p
	r.cache.invalidate()
}

// Corners returns the four corners in counterclockwise order starting
// at the min corner.
func (r *Rectangle) Corners() [4]geom.Vector2 {
	box := r.BoundingBox()
	return [4]geom.Vector2{
		box.Min,
		{X: box.Max.X, Y: box.Min.Y},
		box.Max,
		{X: box.Min.X, Y: box.Max.Y},
	}
}

// Width returns the horizontal extent.
func (r *Rectangle) Width() float64 { return r.BoundingBox().Width() }

// Height returns the vertical extent.
func (r *Rectangle) Height() float64 { return r.BoundingBox().Height() }

// Center returns the rectangle center.
func (r *Rectangle) Center() geom.Vector2 { return r.BoundingBox().Center() }

func (r *Rectangle) BoundingBox() geom.BoundingBox {
	if !r.cache.valid {
		r.cache.box = geom.NewBox(r.corner1, r.corner2)
		r.cache.valid = true
	}
	return r.cache.box
}

func (r *Rectangle) NearestPoint(p geom.Vector2) geom.Vector2 {
	corners := r.Corners()
	best := corners[0]
	bestSq := p.DistanceSqTo(best)
	for i := 0; i < 4; i++ {
		cand := segmentNearest(corners[i], corners[(i+1)%4], p)
		if d := p.DistanceSqTo(cand); d < bestSq {
			best, bestSq = cand, d
		}
	}
	return best
}

func (r *Rectangle) DistanceTo(p geom.Vector2) float64 {
	return r.NearestPoint(p).DistanceTo(p)
}

func (r *Rectangle) ContainsPoint(p geom.Vector2, tol float64) bool {
	return r.DistanceTo(p) <= tol
}

func (r *Rectangle) IntersectsRect(min, max geom.Vector2) bool {
	box := geom.NewBox(min, max)
	if !box.Intersects(r.BoundingBox()) {
		return false
	}
	corners := r.Corners()
	for i := 0; i < 4; i++ {
		if segmentIntersectsBox(corners[i], corners[(i+1)%4], box) {
			return true
		}
	}
	return false
}

func (r *Rectangle) SnapPoints(kinds SnapKinds) []SnapPoint {
	var pts []SnapPoint
	corners := r.Corners()
	if kinds&SnapEndpoint != 0 {
		for _, c := range corners {
			pts = append(pts, SnapPoint{Kind: SnapEndpoint, Point: c})
		}
	}
	if kinds&SnapMidpoint != 0 {
		for i := 0; i < 4; i++ {
			a, b := corners[i], corners[(i+1)%4]
			pts = append(pts, SnapPoint{Kind: SnapMidpoint, Point: a.Lerp(b, 0.5)})
		}
	}
	if kinds&SnapCenter != 0 {
		pts = append(pts, SnapPoint{Kind: SnapCenter, Point: r.Center()})
	}
	return pts
}

func (r *Rectangle) Transform(m geom.Affine) error {
	r.corner1 = m.Apply(r.corner1)
	r.corner2 = m.Apply(r.corner2)
	r.cache.invalidate()
	return nil
}

func (r *Rectangle) Clone() Entity {
	return NewRectangle(r.corner1, r.corner2)
}
