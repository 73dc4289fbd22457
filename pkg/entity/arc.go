package entity

import (
	"fmt"
	"math"

	"github.com/chazu/vellum/pkg/geom"
)

// Arc is a circular arc from StartAngle to EndAngle around Center.
// CCW selects the travel direction from the start angle to the end
// angle; angles are in radians.
type Arc struct {
	id         ID
	center     geom.Vector2
	radius     float64
	startAngle float64
	endAngle   float64
	ccw        bool
	cache      boxCache
}

var _ Entity = (*Arc)(nil)

// NewArc creates an arc. The radius must be positive.
func NewArc(center geom.Vector2, radius, startAngle, endAngle float64, ccw bool) (*Arc, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("arc radius is %.4f, must be positive", radius)
	}
	return &Arc{
		id:         NewID(),
		center:     center,
		radius:     radius,
		startAngle: startAngle,
		endAngle:   endAngle,
		ccw:        ccw,
	}, nil
}

func (a *Arc) entity()    {}
func (a *Arc) ID() ID     { return a.id }
func (a *Arc) Kind() Kind { return KindArc }

// Center returns the arc center.
func (a *Arc) Center() geom.Vector2 { return a.center }

// Radius returns the arc radius.
func (a *Arc) Radius() float64 { return a.radius }

// StartAngle returns the start angle in radians.
func (a *Arc) StartAngle() float64 { return a.startAngle }

// EndAngle returns the end angle in radians.
func (a *Arc) EndAngle() float64 { return a.endAngle }

// CCW reports whether the arc travels counterclockwise.
func (a *Arc) CCW() bool { return a.ccw }

// SetCenter moves the arc.
func (a *Arc) SetCenter(p geom.Vector2) {
	a.center = p
	a.cache.invalidate()
}

// SetRadius changes the radius. Non-positive values are rejected.
func (a *Arc) SetRadius(r float64) error {
	if r <= 0 {
		return fmt.Errorf("arc radius is %.4f, must be positive", r)
	}
	a.radius = r
	a.cache.invalidate()
	return nil
}

// SetAngles changes both angles.
func (a *Arc) SetAngles(start, end float64) {
	a.startAngle = start
	a.endAngle = end
	a.cache.invalidate()
}

// normalizeAngle maps theta into [0, 2*pi).
func normalizeAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// Sweep returns the angular extent traveled from the start angle to
// the end angle in the arc's direction, in (0, 2*pi]. Coincident
// angles are treated as a full circle.
func (a *Arc) Sweep() float64 {
	var sweep float64
	if a.ccw {
		sweep = normalizeAngle(a.endAngle - a.startAngle)
	} else {
		sweep = normalizeAngle(a.startAngle - a.endAngle)
	}
	if sweep == 0 {
		sweep = 2 * math.Pi
	}
	return sweep
}

// ContainsAngle reports whether theta lies on the arc's sweep.
func (a *Arc) ContainsAngle(theta float64) bool {
	var off float64
	if a.ccw {
		off = normalizeAngle(theta - a.startAngle)
	} else {
		off = normalizeAngle(a.startAngle - theta)
	}
	return off <= a.Sweep()
}

// StartPoint returns the point at the start angle.
func (a *Arc) StartPoint() geom.Vector2 {
	return a.center.Add(geom.Polar(a.radius, a.startAngle))
}

// EndPoint returns the point at the end angle.
func (a *Arc) EndPoint() geom.Vector2 {
	return a.center.Add(geom.Polar(a.radius, a.endAngle))
}

// Midpoint returns the point halfway along the sweep.
func (a *Arc) Midpoint() geom.Vector2 {
	half := a.Sweep() / 2
	if !a.ccw {
		half = -half
	}
	return a.center.Add(geom.Polar(a.radius, a.startAngle+half))
}

// Length returns the arc length.
func (a *Arc) Length() float64 {
	return a.radius * a.Sweep()
}

func (a *Arc) BoundingBox() geom.BoundingBox {
	if !a.cache.valid {
		box := geom.NewBox(a.StartPoint(), a.EndPoint())
		// Axis extreme points that lie on the sweep extend the box.
		for _, theta := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			if a.ContainsAngle(theta) {
				box = box.ExpandByPoint(a.center.Add(geom.Polar(a.radius, theta)))
			}
		}
		a.cache.box = box
		a.cache.valid = true
	}
	return a.cache.box
}

func (a *Arc) NearestPoint(p geom.Vector2) geom.Vector2 {
	d := p.Sub(a.center)
	if d.LengthSq() > 0 {
		theta := d.Angle()
		if a.ContainsAngle(theta) {
			return a.center.Add(d.Normalize().Scale(a.radius))
		}
	}
	// Off-sweep (or center) queries snap to the nearer endpoint.
	s, e := a.StartPoint(), a.EndPoint()
	if p.DistanceSqTo(s) <= p.DistanceSqTo(e) {
		return s
	}
	return e
}

func (a *Arc) DistanceTo(p geom.Vector2) float64 {
	return a.NearestPoint(p).DistanceTo(p)
}

func (a *Arc) ContainsPoint(p geom.Vector2, tol float64) bool {
	return a.DistanceTo(p) <= tol
}

func (a *Arc) IntersectsRect(min, max geom.Vector2) bool {
	box := geom.NewBox(min, max)
	if !box.Intersects(a.BoundingBox()) {
		return false
	}
	if box.ContainsPoint(a.StartPoint()) || box.ContainsPoint(a.EndPoint()) {
		return true
	}
	// Sample the sweep; fine enough for window selection.
	const samples = 32
	sweep := a.Sweep()
	for i := 0; i <= samples; i++ {
		step := sweep * float64(i) / samples
		if !a.ccw {
			step = -step
		}
		if box.ContainsPoint(a.center.Add(geom.Polar(a.radius, a.startAngle+step))) {
			return true
		}
	}
	return false
}

func (a *Arc) SnapPoints(kinds SnapKinds) []SnapPoint {
	var pts []SnapPoint
	if kinds&SnapEndpoint != 0 {
		pts = append(pts,
			SnapPoint{Kind: SnapEndpoint, Point: a.StartPoint()},
			SnapPoint{Kind: SnapEndpoint, Point: a.EndPoint()},
		)
	}
	if kinds&SnapMidpoint != 0 {
		pts = append(pts, SnapPoint{Kind: SnapMidpoint, Point: a.Midpoint()})
	}
	if kinds&SnapCenter != 0 {
		pts = append(pts, SnapPoint{Kind: SnapCenter, Point: a.center})
	}
	return pts
}

// Transform applies m. Only conformal transforms keep an arc circular.
// A mirror flips the travel direction.
func (a *Arc) Transform(m geom.Affine) error {
	if !m.IsConformal(1e-9) {
		return fmt.Errorf("arc cannot represent a non-conformal transform")
	}
	start := m.Apply(a.StartPoint())
	end := m.Apply(a.EndPoint())
	center := m.Apply(a.center)

	a.center = center
	a.radius *= m.ScaleFactor()
	a.startAngle = start.Sub(center).Angle()
	a.endAngle = end.Sub(center).Angle()
	if m.Det() < 0 {
		a.ccw = !a.ccw
	}
	a.cache.invalidate()
	return nil
}

func (a *Arc) Clone() Entity {
	return &Arc{
		id:         NewID(),
		center:     a.center,
		radius:     a.radius,
		startAngle: a.startAngle,
		endAngle:   a.endAngle,
		ccw:        a.ccw,
	}
}
