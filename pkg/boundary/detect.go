// Package boundary reconstructs closed polygons ("rooms") from a
// heterogeneous collection of line-like entities by flattening them to
// directed segments and tracing connectivity. Segments are immutable;
// traversal direction is tracked separately so one decomposition can
// be reused across detection passes.
package boundary

import (
	"math"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Segment is one directed edge of an entity's decomposition.
type Segment struct {
	Start  geom.Vector2
	End    geom.Vector2
	Source entity.Entity
}

// DetectedBoundary is a closed polygon traced from connected segments.
// Label and Name are advisory classification data, set by a Classifier
// or carried over from a previous detection pass.
type DetectedBoundary struct {
	Vertices []geom.Vector2
	Area     float64
	Label    string
	Name     string
}

// Centroid returns the area-weighted centroid of the polygon.
func (b DetectedBoundary) Centroid() geom.Vector2 {
	n := len(b.Vertices)
	if n == 0 {
		return geom.Vector2{}
	}
	var cx, cy, area float64
	for i := 0; i < n; i++ {
		p, q := b.Vertices[i], b.Vertices[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
		area += cross
	}
	if area == 0 {
		// Degenerate polygon: fall back to the vertex mean.
		var sum geom.Vector2
		for _, v := range b.Vertices {
			sum = sum.Add(v)
		}
		return sum.Scale(1 / float64(n))
	}
	return geom.V(cx/(3*area), cy/(3*area))
}

// ContainsPoint reports whether p lies inside the polygon (ray cast).
func (b DetectedBoundary) ContainsPoint(p geom.Vector2) bool {
	inside := false
	n := len(b.Vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := b.Vertices[i], b.Vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}

// shoelace returns the signed polygon area.
func shoelace(verts []geom.Vector2) float64 {
	var sum float64
	n := len(verts)
	for i := 0; i < n; i++ {
		p, q := verts[i], verts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Detector traces boundaries under one tolerance policy.
type Detector struct {
	tol geom.Tolerance
}

// NewDetector returns a Detector using the given tolerances. Connect
// is the endpoint-matching distance; MinArea filters sliver loops.
func NewDetector(tol geom.Tolerance) *Detector {
	return &Detector{tol: tol}
}

// Flatten decomposes line-like entities into directed segments:
// one per line, one per consecutive polyline vertex pair, four per
// rectangle. Circles and arcs do not participate.
func Flatten(entities []entity.Entity) []Segment {
	var segs []Segment
	for _, e := range entities {
		switch src := e.(type) {
		case *entity.Line:
			segs = append(segs, Segment{Start: src.Start(), End: src.End(), Source: e})
		case *entity.Polyline:
			for i := 0; i < src.SegmentCount(); i++ {
				a, b := src.Segment(i)
				segs = append(segs, Segment{Start: a, End: b, Source: e})
			}
		case *entity.Rectangle:
			corners := src.Corners()
			for i := 0; i < 4; i++ {
				segs = append(segs, Segment{Start: corners[i], End: corners[(i+1)%4], Source: e})
			}
		}
	}
	return segs
}

// Detect flattens the entities and traces every closed loop with at
// least three vertices and enough area to matter. Running it twice on
// an unchanged entity set yields identical boundaries.
func (d *Detector) Detect(entities []entity.Entity) []DetectedBoundary {
	return d.DetectFromSegments(Flatten(entities))
}

// DetectFromSegments traces closed loops over a prepared segment set.
// The segments themselves are never modified; reversal during
// traversal is purely logical.
func (d *Detector) DetectFromSegments(segs []Segment) []DetectedBoundary {
	used := make([]bool, len(segs))
	maxSteps := 2 * len(segs)

	var out []DetectedBoundary
	for seed := range segs {
		if used[seed] {
			continue
		}
		verts, consumed, closed := d.trace(segs, used, seed, maxSteps)
		// Consumed segments stay consumed whether or not the walk
		// closed; open chains are discarded, not retried.
		for _, i := range consumed {
			used[i] = true
		}
		if !closed || len(verts) < 3 {
			continue
		}
		area := math.Abs(shoelace(verts))
		if area <= d.tol.MinArea {
			continue
		}
		out = append(out, DetectedBoundary{Vertices: verts, Area: area})
	}
	return out
}

// trace walks connectivity from the seed segment. It returns the loop
// vertices, the indexes of consumed segments, and whether the walk
// returned to the seed's start.
func (d *Detector) trace(segs []Segment, used []bool, seed, maxSteps int) (verts []geom.Vector2, consumed []int, closed bool) {
	start := segs[seed].Start
	current := segs[seed].End
	verts = append(verts, start)
	consumed = append(consumed, seed)

	taken := map[int]bool{seed: true}
	for step := 0; step < maxSteps; step++ {
		if current.Equals(start, d.tol.Connect) {
			return verts, consumed, true
		}
		verts = append(verts, current)

		next := -1
		reversed := false
		for i, s := range segs {
			if used[i] || taken[i] {
				continue
			}
			if s.Start.Equals(current, d.tol.Connect) {
				next, reversed = i, false
				break
			}
			if s.End.Equals(current, d.tol.Connect) {
				next, reversed = i, true
				break
			}
		}
		if next < 0 {
			// Open chain: no unused segment connects.
			return verts, consumed, false
		}
		taken[next] = true
		consumed = append(consumed, next)
		if reversed {
			current = segs[next].Start
		} else {
			current = segs[next].End
		}
	}
	// Safety bound hit: abort the trace.
	return verts, consumed, false
}
