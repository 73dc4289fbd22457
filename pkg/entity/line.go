package entity

import (
	"github.com/chazu/vellum/pkg/geom"
)

// Line is a straight segment from Start to End.
type Line struct {
	id    ID
	start geom.Vector2
	end   geom.Vector2
	cache boxCache
}

var _ Entity = (*Line)(nil)

// NewLine creates a line segment. Zero-length lines are permitted;
// queries on them degenerate to the single point.
func NewLine(start, end geom.Vector2) *Line {
	return &Line{id: NewID(), start: start, end: end}
}

func (l *Line) entity()    {}
func (l *Line) ID() ID     { return l.id }
func (l *Line) Kind() Kind { return KindLine }

// Start returns the start point.
func (l *Line) Start() geom.Vector2 { return l.start }

// End returns the end point.
func (l *Line) End() geom.Vector2 { return l.end }

// SetStart moves the start point.
func (l *Line) SetStart(p geom.Vector2) {
	l.start = p
	l.cache.invalidate()
}

// SetEnd moves the end point.
func (l *Line) SetEnd(p geom.Vector2) {
	l.end = p
	l.cache.invalidate()
}

// Length returns the segment length.
func (l *Line) Length() float64 {
	return l.start.DistanceTo(l.end)
}

// Direction returns the unit direction from start to end, or the zero
// vector for a zero-length line.
func (l *Line) Direction() geom.Vector2 {
	return l.end.Sub(l.start).Normalize()
}

// Midpoint returns the segment midpoint.
func (l *Line) Midpoint() geom.Vector2 {
	return l.start.Lerp(l.end, 0.5)
}

// PointAt returns the point at parameter t, 0 at start and 1 at end.
func (l *Line) PointAt(t float64) geom.Vector2 {
	return l.start.Lerp(l.end, t)
}

// ParamAt returns the parameter of the projection of p onto the
// segment, clamped to [0,1].
func (l *Line) ParamAt(p geom.Vector2) float64 {
	d := l.end.Sub(l.start)
	lsq := d.LengthSq()
	if lsq == 0 {
		return 0
	}
	t := p.Sub(l.start).Dot(d) / lsq
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (l *Line) BoundingBox() geom.BoundingBox {
	if !l.cache.valid {
		l.cache.box = geom.NewBox(l.start, l.end)
		l.cache.valid = true
	}
	return l.cache.box
}

func (l *Line) NearestPoint(p geom.Vector2) geom.Vector2 {
	return segmentNearest(l.start, l.end, p)
}

func (l *Line) DistanceTo(p geom.Vector2) float64 {
	return l.NearestPoint(p).DistanceTo(p)
}

func (l *Line) ContainsPoint(p geom.Vector2, tol float64) bool {
	return l.DistanceTo(p) <= tol
}

func (l *Line) IntersectsRect(min, max geom.Vector2) bool {
	return segmentIntersectsBox(l.start, l.end, geom.NewBox(min, max))
}

func (l *Line) SnapPoints(kinds SnapKinds) []SnapPoint {
	var pts []SnapPoint
	if kinds&SnapEndpoint != 0 {
		pts = append(pts,
			SnapPoint{Kind: SnapEndpoint, Point: l.start},
			SnapPoint{Kind: SnapEndpoint, Point: l.end},
		)
	}
	if kinds&SnapMidpoint != 0 {
		pts = append(pts, SnapPoint{Kind: SnapMidpoint, Point: l.Midpoint()})
	}
	return pts
}

func (l *Line) Transform(m geom.Affine) error {
	l.start = m.Apply(l.start)
	l.end = m.Apply(l.end)
	l.cache.invalidate()
	return nil
}

func (l *Line) Clone() Entity {
	return NewLine(l.start, l.end)
}
