package entity

import (
	"fmt"
	"math"

	"github.com/chazu/vellum/pkg/geom"
)

// Circle is a full circle with a center and positive radius.
type Circle struct {
	id     ID
	center geom.Vector2
	radius float64
	cache  boxCache
}

var _ Entity = (*Circle)(nil)

// NewCircle creates a circle. The radius must be positive.
func NewCircle(center geom.Vector2, radius float64) (*Circle, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("circle radius is %.4f, must be positive", radius)
	}
	return &Circle{id: NewID(), center: center, radius: radius}, nil
}

func (c *Circle) entity()    {}
func (c *Circle) ID() ID     { return c.id }
func (c *Circle) Kind() Kind { return KindCircle }

// Center returns the center point.
func (c *Circle) Center() geom.Vector2 { return c.center }

// Radius returns the radius.
func (c *Circle) Radius() float64 { return c.radius }

// SetCenter moves the circle.
func (c *Circle) SetCenter(p geom.Vector2) {
	c.center = p
	c.cache.invalidate()
}

// SetRadius changes the radius. Non-positive values are rejected.
func (c *Circle) SetRadius(r float64) error {
	if r <= 0 {
		return fmt.Errorf("circle radius is %.4f, must be positive", r)
	}
	c.radius = r
	c.cache.invalidate()
	return nil
}

// PointAt returns the point on the circle at the given angle (radians).
func (c *Circle) PointAt(theta float64) geom.Vector2 {
	return c.center.Add(geom.Polar(c.radius, theta))
}

// Circumference returns the perimeter length.
func (c *Circle) Circumference() float64 {
	return 2 * math.Pi * c.radius
}

func (c *Circle) BoundingBox() geom.BoundingBox {
	if !c.cache.valid {
		r := geom.V(c.radius, c.radius)
		c.cache.box = geom.BoundingBox{Min: c.center.Sub(r), Max: c.center.Add(r)}
		c.cache.valid = true
	}
	return c.cache.box
}

func (c *Circle) NearestPoint(p geom.Vector2) geom.Vector2 {
	d := p.Sub(c.center)
	if d.LengthSq() == 0 {
		// Center query: every point is equidistant, pick angle 0.
		return c.PointAt(0)
	}
	return c.center.Add(d.Normalize().Scale(c.radius))
}

func (c *Circle) DistanceTo(p geom.Vector2) float64 {
	return math.Abs(p.DistanceTo(c.center) - c.radius)
}

func (c *Circle) ContainsPoint(p geom.Vector2, tol float64) bool {
	return c.DistanceTo(p) <= tol
}

func (c *Circle) IntersectsRect(min, max geom.Vector2) bool {
	box := geom.NewBox(min, max)
	// Closest point on the box to the center.
	cx := math.Max(box.Min.X, math.Min(c.center.X, box.Max.X))
	cy := math.Max(box.Min.Y, math.Min(c.center.Y, box.Max.Y))
	if geom.V(cx, cy).DistanceTo(c.center) > c.radius {
		return false
	}
	// If the box lies entirely inside the circle, the rim misses it.
	for _, corner := range []geom.Vector2{
		box.Min, box.Max, geom.V(box.Min.X, box.Max.Y), geom.V(box.Max.X, box.Min.Y),
	} {
		if corner.DistanceTo(c.center) >= c.radius {
			return true
		}
	}
	return false
}

func (c *Circle) SnapPoints(kinds SnapKinds) []SnapPoint {
	var pts []SnapPoint
	if kinds&SnapCenter != 0 {
		pts = append(pts, SnapPoint{Kind: SnapCenter, Point: c.center})
	}
	return pts
}

// Transform applies m. Only conformal transforms (translation,
// rotation, uniform scale, mirror) keep a circle circular; anything
// else is rejected.
func (c *Circle) Transform(m geom.Affine) error {
	if !m.IsConformal(1e-9) {
		return fmt.Errorf("circle cannot represent a non-conformal transform")
	}
	c.center = m.Apply(c.center)
	c.radius *= m.ScaleFactor()
	c.cache.invalidate()
	return nil
}

func (c *Circle) Clone() Entity {
	return &Circle{id: NewID(), center: c.center, radius: c.radius}
}
