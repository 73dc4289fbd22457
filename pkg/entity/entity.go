// Package entity defines the drawing entities of the drafting kernel:
// lines, arcs, circles, polylines, and rectangles. The set is closed;
// every variant implements the Entity capability interface and nothing
// outside this package can.
package entity

import (
	"github.com/google/uuid"

	"github.com/chazu/vellum/pkg/geom"
)

// ID identifies an entity for the lifetime of a document. IDs are
// assigned at construction and survive mutation; Clone assigns a fresh
// one.
type ID string

// NewID returns a new unique entity ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Kind enumerates the entity variants.
type Kind int

const (
	KindLine Kind = iota
	KindArc
	KindCircle
	KindPolyline
	KindRectangle
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindCircle:
		return "circle"
	case KindPolyline:
		return "polyline"
	case KindRectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// SnapKinds is a bitmask selecting which snap points to report.
type SnapKinds uint

const (
	SnapEndpoint SnapKinds = 1 << iota
	SnapMidpoint
	SnapCenter

	SnapAll = SnapEndpoint | SnapMidpoint | SnapCenter
)

// SnapPoint is a candidate point for the snapping collaborator.
type SnapPoint struct {
	Kind  SnapKinds
	Point geom.Vector2
}

// Entity is the capability set shared by all drawing entities.
// Geometry queries never fail; mutators invalidate the cached bounding
// box. Transform returns an error only when the variant cannot
// represent the result (a circle under a non-conformal transform).
type Entity interface {
	// ID returns the entity's identity.
	ID() ID
	// Kind returns the concrete variant.
	Kind() Kind
	// BoundingBox returns the cached axis-aligned bounding box,
	// recomputing it after any mutation.
	BoundingBox() geom.BoundingBox
	// NearestPoint returns the point on the entity closest to p.
	NearestPoint(p geom.Vector2) geom.Vector2
	// DistanceTo returns the distance from p to the entity.
	DistanceTo(p geom.Vector2) float64
	// ContainsPoint reports whether p lies on the entity within tol.
	ContainsPoint(p geom.Vector2, tol float64) bool
	// IntersectsRect reports whether the entity intersects the
	// axis-aligned rectangle spanned by min and max. Used for
	// window selection.
	IntersectsRect(min, max geom.Vector2) bool
	// SnapPoints returns the snap candidates of the requested kinds.
	SnapPoints(kinds SnapKinds) []SnapPoint
	// Transform applies an affine transform in place.
	Transform(m geom.Affine) error
	// Clone returns a deep copy with a fresh ID.
	Clone() Entity

	entity() // marker method restricting implementations to this package
}

// boxCache holds a lazily computed bounding box. Mutators call
// invalidate; BoundingBox implementations recompute when !valid.
type boxCache struct {
	box   geom.BoundingBox
	valid bool
}

func (c *boxCache) invalidate() { c.valid = false }

// segmentNearest returns the point on segment ab closest to p.
func segmentNearest(a, b, p geom.Vector2) geom.Vector2 {
	d := b.Sub(a)
	lsq := d.LengthSq()
	if lsq == 0 {
		return a
	}
	t := p.Sub(a).Dot(d) / lsq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(d.Scale(t))
}

// segmentIntersectsBox reports whether segment ab intersects box.
// Endpoint containment is checked first; otherwise the segment is
// clipped against the box with the slab method.
func segmentIntersectsBox(a, b geom.Vector2, box geom.BoundingBox) bool {
	if box.ContainsPoint(a) || box.ContainsPoint(b) {
		return true
	}
	d := b.Sub(a)
	tmin, tmax := 0.0, 1.0
	for _, axis := range [2][3]float64{
		{d.X, a.X - box.Max.X, a.X - box.Min.X},
		{d.Y, a.Y - box.Max.Y, a.Y - box.Min.Y},
	} {
		dir, aboveMax, aboveMin := axis[0], axis[1], axis[2]
		if dir == 0 {
			if aboveMax > 0 || aboveMin < 0 {
				return false
			}
			continue
		}
		t1 := -aboveMin / dir
		t2 := -aboveMax / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return false
		}
	}
	return true
}
