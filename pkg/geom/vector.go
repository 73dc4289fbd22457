// Package geom provides the 2D value types the drafting kernel is built
// on: vectors, axis-aligned bounding boxes, affine transforms, and the
// tolerance policy shared by every numeric comparison in the kernel.
package geom

import (
	"fmt"
	"math"
)

// Vector2 is a 2D point or direction in world coordinates.
// It has value semantics: methods return new values and never mutate
// the receiver.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for constructing a Vector2.
func V(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Polar constructs a Vector2 from a radius and an angle in radians.
func Polar(radius, theta float64) Vector2 {
	return Vector2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product v·o.
func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the scalar 2D cross product v×o (the z component of the
// 3D cross product). Its sign gives the orientation of o relative to v.
func (v Vector2) Cross(o Vector2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the Euclidean length of v.
func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared length of v, avoiding the square root.
func (v Vector2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceTo returns the distance between the points v and o.
func (v Vector2) DistanceTo(o Vector2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// DistanceSqTo returns the squared distance between the points v and o.
func (v Vector2) DistanceSqTo(o Vector2) float64 {
	dx, dy := v.X-o.X, v.Y-o.Y
	return dx*dx + dy*dy
}

// Normalize returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector2{X: v.X / l, Y: v.Y / l}
}

// Perpendicular returns v rotated 90 degrees counterclockwise.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Lerp returns the linear interpolation between v and o at parameter t,
// where t=0 yields v and t=1 yields o. t is not clamped.
func (v Vector2) Lerp(o Vector2, t float64) Vector2 {
	return Vector2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

// Angle returns the angle of v in radians, in (-pi, pi].
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns v rotated by theta radians about the origin.
func (v Vector2) Rotate(theta float64) Vector2 {
	sin, cos := math.Sincos(theta)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// RotateAround returns v rotated by theta radians about pivot.
func (v Vector2) RotateAround(pivot Vector2, theta float64) Vector2 {
	return v.Sub(pivot).Rotate(theta).Add(pivot)
}

// Equals reports whether v and o coincide within tol.
func (v Vector2) Equals(o Vector2, tol float64) bool {
	return v.DistanceSqTo(o) <= tol*tol
}
