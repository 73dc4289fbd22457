// Package spatial provides a loose quadtree over entity bounding
// boxes. An entity straddling a quadrant split is retained at the
// parent node rather than duplicated into children or split, so every
// entity is stored at exactly one node and reported at most once per
// query.
package spatial

import (
	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Defaults for tree construction.
const (
	DefaultCapacity = 10
	DefaultMaxDepth = 8
)

// rebuildPadding is the fraction added around the union bounds when
// Rebuild derives them from the entities.
const rebuildPadding = 0.1

// QuadTree indexes entities by bounding box for range, point, and
// circle queries. It is not safe for concurrent mutation; callers
// serialize access against one document version.
type QuadTree struct {
	root     *node
	capacity int
	maxDepth int
	ids      map[entity.ID]struct{}
}

type node struct {
	bounds   geom.BoundingBox
	entities []entity.Entity
	children *[4]*node // NW, NE, SW, SE when subdivided
	depth    int
}

// New creates an empty tree covering bounds with default capacity and
// depth limits.
func New(bounds geom.BoundingBox) *QuadTree {
	return NewWith(bounds, DefaultCapacity, DefaultMaxDepth)
}

// NewWith creates an empty tree with explicit capacity and max depth.
// Non-positive values fall back to the defaults.
func NewWith(bounds geom.BoundingBox, capacity, maxDepth int) *QuadTree {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &QuadTree{
		root:     &node{bounds: bounds},
		capacity: capacity,
		maxDepth: maxDepth,
		ids:      make(map[entity.ID]struct{}),
	}
}

// Bounds returns the area the tree covers.
func (t *QuadTree) Bounds() geom.BoundingBox { return t.root.bounds }

// Len returns the number of stored entities.
func (t *QuadTree) Len() int { return len(t.ids) }

// Insert adds e to the tree. Entities whose bounding box falls outside
// the tree bounds are held at the root. Inserting an entity already
// stored (same ID) is a no-op.
func (t *QuadTree) Insert(e entity.Entity) {
	if _, ok := t.ids[e.ID()]; ok {
		return
	}
	t.root.insert(e, e.BoundingBox(), t.capacity, t.maxDepth)
	t.ids[e.ID()] = struct{}{}
}

func (n *node) insert(e entity.Entity, box geom.BoundingBox, capacity, maxDepth int) {
	if n.children == nil {
		if len(n.entities) < capacity || n.depth >= maxDepth {
			n.entities = append(n.entities, e)
			return
		}
		n.subdivide(capacity, maxDepth)
	}
	for _, child := range n.children {
		if child.bounds.ContainsBox(box) {
			child.insert(e, box, capacity, maxDepth)
			return
		}
	}
	// Straddles the split (or lies outside): stays here.
	n.entities = append(n.entities, e)
}

// subdivide splits the node at its midpoint and migrates every stored
// entity that fits entirely inside a single child.
func (n *node) subdivide(capacity, maxDepth int) {
	mid := n.bounds.Center()
	min, max := n.bounds.Min, n.bounds.Max
	n.children = &[4]*node{
		{bounds: geom.BoundingBox{Min: geom.V(min.X, mid.Y), Max: geom.V(mid.X, max.Y)}, depth: n.depth + 1}, // NW
		{bounds: geom.BoundingBox{Min: mid, Max: max}, depth: n.depth + 1},                                   // NE
		{bounds: geom.BoundingBox{Min: min, Max: mid}, depth: n.depth + 1},                                   // SW
		{bounds: geom.BoundingBox{Min: geom.V(mid.X, min.Y), Max: geom.V(max.X, mid.Y)}, depth: n.depth + 1}, // SE
	}

	kept := n.entities[:0]
	for _, e := range n.entities {
		box := e.BoundingBox()
		migrated := false
		for _, child := range n.children {
			if child.bounds.ContainsBox(box) {
				child.insert(e, box, capacity, maxDepth)
				migrated = true
				break
			}
		}
		if !migrated {
			kept = append(kept, e)
		}
	}
	n.entities = kept
}

// Query returns all entities whose bounding box intersects the range.
func (t *QuadTree) Query(rangeBox geom.BoundingBox) []entity.Entity {
	seen := make(map[entity.ID]bool)
	var out []entity.Entity
	t.root.query(rangeBox, seen, &out)
	return out
}

func (n *node) query(rangeBox geom.BoundingBox, seen map[entity.ID]bool, out *[]entity.Entity) {
	if !n.bounds.Intersects(rangeBox) && n.depth > 0 {
		return
	}
	for _, e := range n.entities {
		if e.BoundingBox().Intersects(rangeBox) && !seen[e.ID()] {
			seen[e.ID()] = true
			*out = append(*out, e)
		}
	}
	if n.children == nil {
		return
	}
	for _, child := range n.children {
		if child.bounds.Intersects(rangeBox) {
			child.query(rangeBox, seen, out)
		}
	}
}

// QueryPoint returns entities whose bounding box comes within tol of p.
func (t *QuadTree) QueryPoint(p geom.Vector2, tol float64) []entity.Entity {
	r := geom.V(tol, tol)
	return t.Query(geom.BoundingBox{Min: p.Sub(r), Max: p.Add(r)})
}

// QueryCircle returns entities within radius of center, filtered by
// true circular distance rather than bounding-box overlap alone.
func (t *QuadTree) QueryCircle(center geom.Vector2, radius float64) []entity.Entity {
	r := geom.V(radius, radius)
	candidates := t.Query(geom.BoundingBox{Min: center.Sub(r), Max: center.Add(r)})
	out := candidates[:0]
	for _, e := range candidates {
		if e.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes e (matched by identity) from the tree. It reports
// whether the entity was found.
func (t *QuadTree) Remove(e entity.Entity) bool {
	if t.root.remove(e.ID()) {
		delete(t.ids, e.ID())
		return true
	}
	return false
}

func (n *node) remove(id entity.ID) bool {
	for i, e := range n.entities {
		if e.ID() == id {
			n.entities = append(n.entities[:i], n.entities[i+1:]...)
			return true
		}
	}
	if n.children == nil {
		return false
	}
	for _, child := range n.children {
		if child.remove(id) {
			return true
		}
	}
	return false
}

// Rebuild discards the tree and bulk-inserts entities, deriving the
// bounds from the union of their bounding boxes plus 10% padding.
func (t *QuadTree) Rebuild(entities []entity.Entity) {
	union := geom.EmptyBox()
	for _, e := range entities {
		union = union.Union(e.BoundingBox())
	}
	if union.IsEmpty() {
		union = geom.NewBox(geom.V(0, 0), geom.V(1, 1))
	}
	pad := rebuildPadding * maxf(union.Width(), union.Height())
	if pad == 0 {
		pad = 1
	}
	t.RebuildWithin(entities, union.Pad(pad))
}

// RebuildWithin discards the tree and bulk-inserts entities into the
// given bounds.
func (t *QuadTree) RebuildWithin(entities []entity.Entity, bounds geom.BoundingBox) {
	t.root = &node{bounds: bounds}
	t.ids = make(map[entity.ID]struct{})
	for _, e := range entities {
		t.Insert(e)
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
