package entity

import (
	"fmt"

	"github.com/chazu/vellum/pkg/geom"
)

// Polyline is an ordered run of vertices joined by straight segments.
// A closed polyline has an implicit segment from the last vertex back
// to the first.
type Polyline struct {
	id       ID
	vertices []geom.Vector2
	closed   bool
	cache    boxCache
}

var _ Entity = (*Polyline)(nil)

// NewPolyline creates a polyline. At least two vertices are required.
func NewPolyline(vertices []geom.Vector2, closed bool) (*Polyline, error) {
	if len(vertices) < 2 {
		return nil, fmt.Errorf("polyline has %d vertices, need at least 2", len(vertices))
	}
	vs := make([]geom.Vector2, len(vertices))
	copy(vs, vertices)
	return &Polyline{id: NewID(), vertices: vs, closed: closed}, nil
}

func (p *Polyline) entity()    {}
func (p *Polyline) ID() ID     { return p.id }
func (p *Polyline) Kind() Kind { return KindPolyline }

// Closed reports whether the polyline is closed.
func (p *Polyline) Closed() bool { return p.closed }

// VertexCount returns the number of vertices.
func (p *Polyline) VertexCount() int { return len(p.vertices) }

// Vertex returns vertex i.
func (p *Polyline) Vertex(i int) geom.Vector2 { return p.vertices[i] }

// Vertices returns a copy of the vertex slice.
func (p *Polyline) Vertices() []geom.Vector2 {
	vs := make([]geom.Vector2, len(p.vertices))
	copy(vs, p.vertices)
	return vs
}

// SetVertex moves vertex i.
func (p *Polyline) SetVertex(i int, v geom.Vector2) {
	p.vertices[i] = v
	p.cache.invalidate()
}

// SetClosed opens or closes the polyline.
func (p *Polyline) SetClosed(closed bool) {
	p.closed = closed
	p.cache.invalidate()
}

// AppendVertex adds a vertex at the end.
func (p *Polyline) AppendVertex(v geom.Vector2) {
	p.vertices = append(p.vertices, v)
	p.cache.invalidate()
}

// SegmentCount returns the number of segments: N-1 open, N closed.
func (p *Polyline) SegmentCount() int {
	if p.closed {
		return len(p.vertices)
	}
	return len(p.vertices) - 1
}

// Segment returns the endpoints of segment i.
func (p *Polyline) Segment(i int) (a, b geom.Vector2) {
	a = p.vertices[i]
	b = p.vertices[(i+1)%len(p.vertices)]
	return a, b
}

// Length returns the total length of all segments.
func (p *Polyline) Length() float64 {
	var sum float64
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.Segment(i)
		sum += a.DistanceTo(b)
	}
	return sum
}

func (p *Polyline) BoundingBox() geom.BoundingBox {
	if !p.cache.valid {
		box := geom.EmptyBox()
		for _, v := range p.vertices {
			box = box.ExpandByPoint(v)
		}
		p.cache.box = box
		p.cache.valid = true
	}
	return p.cache.box
}

func (p *Polyline) NearestPoint(q geom.Vector2) geom.Vector2 {
	best := p.vertices[0]
	bestSq := q.DistanceSqTo(best)
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.Segment(i)
		cand := segmentNearest(a, b, q)
		if d := q.DistanceSqTo(cand); d < bestSq {
			best, bestSq = cand, d
		}
	}
	return best
}

func (p *Polyline) DistanceTo(q geom.Vector2) float64 {
	return p.NearestPoint(q).DistanceTo(q)
}

func (p *Polyline) ContainsPoint(q geom.Vector2, tol float64) bool {
	return p.DistanceTo(q) <= tol
}

func (p *Polyline) IntersectsRect(min, max geom.Vector2) bool {
	box := geom.NewBox(min, max)
	if !box.Intersects(p.BoundingBox()) {
		return false
	}
	for i := 0; i < p.SegmentCount(); i++ {
		a, b := p.Segment(i)
		if segmentIntersectsBox(a, b, box) {
			return true
		}
	}
	return false
}

func (p *Polyline) SnapPoints(kinds SnapKinds) []SnapPoint {
	var pts []SnapPoint
	if kinds&SnapEndpoint != 0 {
		for _, v := range p.vertices {
			pts = append(pts, SnapPoint{Kind: SnapEndpoint, Point: v})
		}
	}
	if kinds&SnapMidpoint != 0 {
		for i := 0; i < p.SegmentCount(); i++ {
			a, b := p.Segment(i)
			pts = append(pts, SnapPoint{Kind: SnapMidpoint, Point: a.Lerp(b, 0.5)})
		}
	}
	return pts
}

func (p *Polyline) Transform(m geom.Affine) error {
	for i, v := range p.vertices {
		p.vertices[i] = m.Apply(v)
	}
	p.cache.invalidate()
	return nil
}

func (p *Polyline) Clone() Entity {
	vs := make([]geom.Vector2, len(p.vertices))
	copy(vs, p.vertices)
	return &Polyline{id: NewID(), vertices: vs, closed: p.closed}
}
