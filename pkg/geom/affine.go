package geom

import "math"

// Affine is a 2x3 affine transform in row-major layout:
//
//	| A C E |
//	| B D F |
//
// applied as x' = A*x + C*y + E, y' = B*x + D*y + F.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a pure translation by d.
func Translation(d Vector2) Affine {
	return Affine{A: 1, D: 1, E: d.X, F: d.Y}
}

// Rotation returns a rotation by theta radians about pivot.
func Rotation(pivot Vector2, theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return Affine{
		A: cos, C: -sin, E: pivot.X - cos*pivot.X + sin*pivot.Y,
		B: sin, D: cos, F: pivot.Y - sin*pivot.X - cos*pivot.Y,
	}
}

// Scaling returns an anisotropic scale about base.
func Scaling(base Vector2, sx, sy float64) Affine {
	return Affine{
		A: sx, E: base.X * (1 - sx),
		D: sy, F: base.Y * (1 - sy),
	}
}

// Reflection returns the Householder reflection about the line through
// point with direction dir. dir need not be unit length; a zero dir
// yields a reflection through the point itself.
func Reflection(point, dir Vector2) Affine {
	d := dir.Normalize()
	if d.X == 0 && d.Y == 0 {
		// Point reflection.
		return Affine{A: -1, D: -1, E: 2 * point.X, F: 2 * point.Y}
	}
	a := d.X*d.X - d.Y*d.Y
	b := 2 * d.X * d.Y
	return Affine{
		A: a, C: b, E: point.X - a*point.X - b*point.Y,
		B: b, D: -a, F: point.Y - b*point.X + a*point.Y,
	}
}

// Mul returns the composition m ∘ n: n is applied first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms the point p.
func (m Affine) Apply(p Vector2) Vector2 {
	return Vector2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVector transforms the direction p, ignoring translation.
func (m Affine) ApplyVector(p Vector2) Vector2 {
	return Vector2{
		X: m.A*p.X + m.C*p.Y,
		Y: m.B*p.X + m.D*p.Y,
	}
}

// IsConformal reports whether the transform preserves circles: a
// rotation, uniform scale, translation, reflection, or combination.
// Anisotropic scales and shears are not conformal.
func (m Affine) IsConformal(tol float64) bool {
	// Columns of the linear part must be orthogonal and equal length.
	c1 := Vector2{X: m.A, Y: m.B}
	c2 := Vector2{X: m.C, Y: m.D}
	return math.Abs(c1.Dot(c2)) <= tol &&
		math.Abs(c1.LengthSq()-c2.LengthSq()) <= tol
}

// ScaleFactor returns the uniform scale applied by a conformal
// transform (the length of the first column of the linear part).
func (m Affine) ScaleFactor() float64 {
	return math.Hypot(m.A, m.B)
}

// Det returns the determinant of the linear part. Negative determinant
// means the transform flips orientation (a mirror).
func (m Affine) Det() float64 {
	return m.A*m.D - m.B*m.C
}
