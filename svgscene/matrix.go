package svgscene

import "math"

// Matrix2D is a 2x3 affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral element of matrix composition.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns the composition t then a, so that applying the result
// is the same as applying a first and t second (parent-then-child order
// when t is the parent).
func (t Matrix2D) Mult(a Matrix2D) Matrix2D {
	return Matrix2D{
		A: t.A*a.A + t.C*a.B,
		B: t.B*a.A + t.D*a.B,
		C: t.A*a.C + t.C*a.D,
		D: t.B*a.C + t.D*a.D,
		E: t.A*a.E + t.C*a.F + t.E,
		F: t.B*a.E + t.D*a.F + t.F,
	}
}

// Translate appends a translation by x, y.
func (t Matrix2D) Translate(x, y float64) Matrix2D {
	return t.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends a scale by x, y.
func (t Matrix2D) Scale(x, y float64) Matrix2D {
	return t.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation by theta radians, about the origin.
func (t Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return t.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends a skew along the x axis by theta radians.
func (t Matrix2D) SkewX(theta float64) Matrix2D {
	return t.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY appends a skew along the y axis by theta radians.
func (t Matrix2D) SkewY(theta float64) Matrix2D {
	return t.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Determinant of the linear 2x2 block. A zero determinant means the
// transform collapses the plane and cannot be inverted.
func (t Matrix2D) Determinant() float64 {
	return t.A*t.D - t.B*t.C
}

// Invert returns the inverse transform. The second return value is
// false for a degenerate (non-invertible) matrix, in which case the
// first value is Identity.
func (t Matrix2D) Invert() (Matrix2D, bool) {
	det := t.Determinant()
	if det == 0 || math.IsInf(det, 0) || math.IsNaN(det) {
		return Identity, false
	}
	return Matrix2D{
		A: t.D / det,
		B: -t.B / det,
		C: -t.C / det,
		D: t.A / det,
		E: (t.C*t.F - t.D*t.E) / det,
		F: (t.B*t.E - t.A*t.F) / det,
	}, true
}

// Apply transforms the point p.
func (t Matrix2D) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}
