// Package intersect computes pairwise intersections between drawing
// entities. Line-line, line-circle, and circle-circle are implemented;
// other pairs (arcs, polylines, rectangles) must be decomposed by the
// caller into their constituent lines before calling. Degenerate
// geometry yields an empty result, never an error.
package intersect

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// ErrUnsupportedPair reports that Intersect was called with an entity
// pair outside the implemented capability matrix. This is a caller
// mismatch, distinct from degenerate geometry (which returns an empty
// list with nil error).
var ErrUnsupportedPair = errors.New("intersect: unsupported entity pair")

// ExtendReach is how far beyond its end a line is projected when
// searching for an extension boundary.
const ExtendReach = 10000.0

// Point is a single intersection. T1 is the parametric position on the
// first entity in [0,1]; T2 is the position on the second entity when
// the pair defines one (HasT2). Cutter is set by FindAll.
type Point struct {
	Point  geom.Vector2
	T1     float64
	T2     float64
	HasT2  bool
	Cutter entity.Entity
}

// Calculator performs intersection queries under one tolerance policy.
type Calculator struct {
	tol geom.Tolerance
}

// NewCalculator returns a Calculator using the given tolerances.
func NewCalculator(tol geom.Tolerance) *Calculator {
	return &Calculator{tol: tol}
}

// Intersect dispatches on the concrete pair. Supported pairs are
// line-line, line-circle (either order), and circle-circle; everything
// else returns ErrUnsupportedPair.
func (c *Calculator) Intersect(a, b entity.Entity) ([]Point, error) {
	switch ea := a.(type) {
	case *entity.Line:
		switch eb := b.(type) {
		case *entity.Line:
			return c.LineLine(ea, eb), nil
		case *entity.Circle:
			return c.LineCircle(ea, eb), nil
		}
	case *entity.Circle:
		switch eb := b.(type) {
		case *entity.Line:
			pts := c.LineCircle(eb, ea)
			for i := range pts {
				pts[i].T1, pts[i].T2 = pts[i].T2, pts[i].T1
			}
			return pts, nil
		case *entity.Circle:
			return c.CircleCircle(ea, eb), nil
		}
	}
	return nil, fmt.Errorf("%w: %s-%s", ErrUnsupportedPair, a.Kind(), b.Kind())
}

// LineLine intersects two segments by solving p1 + t*r = p3 + u*s with
// 2D cross products. Parallel and collinear segments (|r×s| below the
// cross tolerance) yield no intersection; collinear overlap is not
// specially detected.
func (c *Calculator) LineLine(a, b *entity.Line) []Point {
	p1, r := a.Start(), a.End().Sub(a.Start())
	p3, s := b.Start(), b.End().Sub(b.Start())

	denom := r.Cross(s)
	if math.Abs(denom) < c.tol.Cross {
		return nil
	}
	d := p3.Sub(p1)
	t := d.Cross(s) / denom
	u := d.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return nil
	}
	return []Point{{
		Point: p1.Add(r.Scale(t)),
		T1:    t,
		T2:    u,
		HasT2: true,
	}}
}

// LineCircle intersects a segment with a circle by parametrizing the
// line with its unit direction and solving the resulting quadratic.
// A near-zero discriminant is treated as a tangent touch (one point).
// T2 is the circle parameter: the hit angle normalized to [0,1).
func (c *Calculator) LineCircle(l *entity.Line, ci *entity.Circle) []Point {
	length := l.Length()
	if length < c.tol.Distance {
		return nil
	}
	d := l.Direction()
	f := l.Start().Sub(ci.Center())

	// t^2 + 2(f·d)t + (f·f - r^2) = 0 with unit d.
	half := f.Dot(d)
	disc := half*half - (f.LengthSq() - ci.Radius()*ci.Radius())

	var roots []float64
	switch {
	case disc < -c.tol.Distance:
		return nil
	case disc <= c.tol.Distance:
		roots = []float64{-half}
	default:
		sq := math.Sqrt(disc)
		roots = []float64{-half - sq, -half + sq}
	}

	var pts []Point
	for _, t := range roots {
		if t < 0 || t > length {
			continue
		}
		p := l.Start().Add(d.Scale(t))
		pts = append(pts, Point{
			Point: p,
			T1:    t / length,
			T2:    normalizedAngle(p.Sub(ci.Center())),
			HasT2: true,
		})
	}
	return pts
}

// CircleCircle intersects two circles with the radical-line
// construction: up to two points, one when tangent, none when the
// circles are too far apart, nested, or coincident.
func (c *Calculator) CircleCircle(a, b *entity.Circle) []Point {
	c1, r1 := a.Center(), a.Radius()
	c2, r2 := b.Center(), b.Radius()

	d := c1.DistanceTo(c2)
	eps := c.tol.Distance
	switch {
	case d > r1+r2+eps: // too far apart
		return nil
	case d < math.Abs(r1-r2)-eps: // one nested inside the other
		return nil
	case d < eps && math.Abs(r1-r2) < eps: // coincident
		return nil
	}

	// Distance from c1 to the radical line along the center line.
	axis := (d*d + r1*r1 - r2*r2) / (2 * d)
	hsq := r1*r1 - axis*axis
	h := math.Sqrt(math.Max(hsq, 0))

	dir := c2.Sub(c1).Scale(1 / d)
	base := c1.Add(dir.Scale(axis))

	p1 := base
	if h <= eps {
		// Tangent: single touch point on the center line.
		return []Point{{
			Point: p1,
			T1:    normalizedAngle(p1.Sub(c1)),
			T2:    normalizedAngle(p1.Sub(c2)),
			HasT2: true,
		}}
	}
	off := dir.Perpendicular().Scale(h)
	pa := base.Add(off)
	pb := base.Sub(off)
	return []Point{
		{
			Point: pa,
			T1:    normalizedAngle(pa.Sub(c1)),
			T2:    normalizedAngle(pa.Sub(c2)),
			HasT2: true,
		},
		{
			Point: pb,
			T1:    normalizedAngle(pb.Sub(c1)),
			T2:    normalizedAngle(pb.Sub(c2)),
			HasT2: true,
		},
	}
}

// FindAll collects every intersection of target against the cutter
// list, tags each hit with its cutter, and returns them sorted by
// ascending parameter on target. Cutters outside the capability matrix
// contribute nothing.
func (c *Calculator) FindAll(target entity.Entity, cutters []entity.Entity) []Point {
	var all []Point
	for _, cutter := range cutters {
		if cutter.ID() == target.ID() {
			continue
		}
		pts, err := c.Intersect(target, cutter)
		if err != nil {
			continue
		}
		for _, p := range pts {
			p.Cutter = cutter
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].T1 < all[j].T1 })
	return all
}

// ExtendToEntity projects the line ExtendReach units past its end
// point, intersects the extension with boundary, and returns the first
// hit strictly beyond the original end in the travel direction.
// The second result is false when no qualifying intersection exists.
func (c *Calculator) ExtendToEntity(l *entity.Line, boundary entity.Entity) (geom.Vector2, bool) {
	length := l.Length()
	if length < c.tol.Distance {
		return geom.Vector2{}, false
	}
	dir := l.Direction()
	probe := entity.NewLine(l.Start(), l.End().Add(dir.Scale(ExtendReach)))

	pts, err := c.Intersect(probe, boundary)
	if err != nil {
		return geom.Vector2{}, false
	}

	// Parameter of the original end on the probe.
	tEnd := length / (length + ExtendReach)

	best := geom.Vector2{}
	bestT := math.Inf(1)
	found := false
	for _, p := range pts {
		if p.T1 <= tEnd+c.tol.Distance/(length+ExtendReach) {
			continue
		}
		if p.T1 < bestT {
			best, bestT = p.Point, p.T1
			found = true
		}
	}
	return best, found
}

// normalizedAngle maps a direction to its angle as a fraction of a
// full turn in [0,1).
func normalizedAngle(d geom.Vector2) float64 {
	a := d.Angle()
	if a < 0 {
		a += 2 * math.Pi
	}
	return a / (2 * math.Pi)
}
