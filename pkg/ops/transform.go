package ops

import (
	"sort"

	"github.com/chazu/vellum/pkg/entity"
	"github.com/chazu/vellum/pkg/geom"
)

// Apply clones every entity and applies the affine transform to the
// clones. Inputs are never mutated. An error surfaces only when a
// variant cannot represent the transform (a circle or arc under a
// non-conformal matrix); in that case no partial result is returned.
func Apply(entities []entity.Entity, m geom.Affine) ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		c := e.Clone()
		if err := c.Transform(m); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Move translates the entities by delta.
func Move(entities []entity.Entity, delta geom.Vector2) ([]entity.Entity, error) {
	return Apply(entities, geom.Translation(delta))
}

// Rotate rotates the entities by theta radians about pivot.
func Rotate(entities []entity.Entity, pivot geom.Vector2, theta float64) ([]entity.Entity, error) {
	return Apply(entities, geom.Rotation(pivot, theta))
}

// Scale scales the entities about base. Anisotropic factors are
// rejected by circles and arcs.
func Scale(entities []entity.Entity, base geom.Vector2, sx, sy float64) ([]entity.Entity, error) {
	return Apply(entities, geom.Scaling(base, sx, sy))
}

// Mirror reflects the entities about the line through point with
// direction dir.
func Mirror(entities []entity.Entity, point, dir geom.Vector2) ([]entity.Entity, error) {
	return Apply(entities, geom.Reflection(point, dir))
}

// Alignment selects the aggregate-box edge or axis entities align to.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignTop
	AlignBottom
	AlignCenterX
	AlignCenterY
)

// Align moves each entity so its bounding box meets the chosen edge or
// center axis of the selection's aggregate bounding box. Fewer than
// two entities is a no-op returning the inputs.
func Align(entities []entity.Entity, mode Alignment) ([]entity.Entity, error) {
	if len(entities) < 2 {
		return entities, nil
	}
	agg := geom.EmptyBox()
	for _, e := range entities {
		agg = agg.Union(e.BoundingBox())
	}

	out := make([]entity.Entity, 0, len(entities))
	for _, e := range entities {
		box := e.BoundingBox()
		var delta geom.Vector2
		switch mode {
		case AlignLeft:
			delta = geom.V(agg.Min.X-box.Min.X, 0)
		case AlignRight:
			delta = geom.V(agg.Max.X-box.Max.X, 0)
		case AlignBottom:
			delta = geom.V(0, agg.Min.Y-box.Min.Y)
		case AlignTop:
			delta = geom.V(0, agg.Max.Y-box.Max.Y)
		case AlignCenterX:
			delta = geom.V(agg.Center().X-box.Center().X, 0)
		case AlignCenterY:
			delta = geom.V(0, agg.Center().Y-box.Center().Y)
		}
		moved, err := Move([]entity.Entity{e}, delta)
		if err != nil {
			return nil, err
		}
		out = append(out, moved[0])
	}
	return out, nil
}

// DistributeAxis selects the axis entities are distributed along.
type DistributeAxis int

const (
	DistributeX DistributeAxis = iota
	DistributeY
)

// Distribute spaces entity centers evenly along an axis between the
// two extreme centers of the selection. The extreme entities stay
// fixed. Fewer than three entities is a no-op returning the inputs.
func Distribute(entities []entity.Entity, axis DistributeAxis) ([]entity.Entity, error) {
	if len(entities) < 3 {
		return entities, nil
	}

	centerOn := func(e entity.Entity) float64 {
		c := e.BoundingBox().Center()
		if axis == DistributeY {
			return c.Y
		}
		return c.X
	}

	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return centerOn(entities[order[i]]) < centerOn(entities[order[j]])
	})

	lo := centerOn(entities[order[0]])
	hi := centerOn(entities[order[len(order)-1]])
	step := (hi - lo) / float64(len(entities)-1)

	out := make([]entity.Entity, len(entities))
	for rank, idx := range order {
		target := lo + step*float64(rank)
		shift := target - centerOn(entities[idx])
		delta := geom.V(shift, 0)
		if axis == DistributeY {
			delta = geom.V(0, shift)
		}
		moved, err := Move([]entity.Entity{entities[idx]}, delta)
		if err != nil {
			return nil, err
		}
		out[idx] = moved[0]
	}
	return out, nil
}
