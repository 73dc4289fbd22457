package geom

import "math"

// BoundingBox is an axis-aligned rectangle given by its min and max
// corners. The zero value is not a valid box; use EmptyBox or NewBox.
type BoundingBox struct {
	Min Vector2 `json:"min"`
	Max Vector2 `json:"max"`
}

// NewBox returns the bounding box of two arbitrary corner points.
func NewBox(a, b Vector2) BoundingBox {
	return BoundingBox{
		Min: Vector2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vector2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// EmptyBox returns a box that contains nothing. Expanding it by any
// point yields the box of exactly that point.
func EmptyBox() BoundingBox {
	return BoundingBox{
		Min: Vector2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vector2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// IsEmpty reports whether the box contains no points.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vector2 {
	return Vector2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// ContainsPoint reports whether p lies inside or on the box.
func (b BoundingBox) ContainsPoint(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsBox reports whether o lies entirely inside or on b.
func (b BoundingBox) ContainsBox(o BoundingBox) bool {
	return o.Min.X >= b.Min.X && o.Max.X <= b.Max.X &&
		o.Min.Y >= b.Min.Y && o.Max.Y <= b.Max.Y
}

// Intersects reports whether b and o overlap, boundary contact included.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// ExpandByPoint returns the smallest box containing b and p.
func (b BoundingBox) ExpandByPoint(p Vector2) BoundingBox {
	return BoundingBox{
		Min: Vector2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vector2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BoundingBox{
		Min: Vector2{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Vector2{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Pad returns the box grown by d on every side.
func (b BoundingBox) Pad(d float64) BoundingBox {
	return BoundingBox{
		Min: Vector2{X: b.Min.X - d, Y: b.Min.Y - d},
		Max: Vector2{X: b.Max.X + d, Y: b.Max.Y + d},
	}
}
