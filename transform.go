package transit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// === Matrix ================================================================

// Matrix is a 3x3 matrix, flattened by rows. Being an array, it is copied
// on assignment.
type Matrix [9]float64

func (m Matrix) get(row, col int) float64 {
	return m[row*3+col]
}

func (m *Matrix) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m Matrix) row(row int) r3.Vec {
	return r3.Vec{X: m[row*3], Y: m[row*3+1], Z: m[row*3+2]}
}

func (m Matrix) col(col int) r3.Vec {
	return r3.Vec{X: m[col], Y: m[3+col], Z: m[6+col]}
}

// IdentityMatrix maps every vector onto itself.
func IdentityMatrix() Matrix {
	var m Matrix
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// RotationZ rotates counter-clockwise around the z-axis.
// Argument is in radians.
func RotationZ(theta float64) Matrix {
	var m Matrix
	sin, cos := math.Sincos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// UniformScale scales all axes by s.
func UniformScale(s float64) Matrix {
	var m Matrix
	m.set(0, 0, s)
	m.set(1, 1, s)
	m.set(2, 2, s)
	return m
}

// Combine 2 matrices to a new one: first m, then n.
func (m Matrix) Combine(n Matrix) Matrix {
	var o Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, r3.Dot(n.row(row), m.col(col)))
		}
	}
	return o
}

// MultiplyVector applies m to a vector.
func (m Matrix) MultiplyVector(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: r3.Dot(m.row(0), v),
		Y: r3.Dot(m.row(1), v),
		Z: r3.Dot(m.row(2), v),
	}
}

// Determinant of m.
func (m Matrix) Determinant() float64 {
	return r3.Dot(m.col(0), r3.Cross(m.col(1), m.col(2)))
}

// IsRigid is true for rotations and reflections: columns of unit length,
// mutually perpendicular. Rigid matrices preserve distances.
func (m Matrix) IsRigid() bool {
	for i := 0; i < 3; i++ {
		if !Is1(r3.Dot(m.col(i), m.col(i))) || !Is0(r3.Dot(m.col(i), m.col((i+1)%3))) {
			return false
		}
	}
	return Is1(math.Abs(m.Determinant()))
}

// IsAlmostEqual compares entries with SmallRelative tolerance.
func (m Matrix) IsAlmostEqual(n Matrix) bool {
	for i := range m {
		if !IsAlmostEqualNumber(m[i], n[i]) {
			return false
		}
	}
	return true
}

// Debug Stringer for a matrix.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// === Transform =============================================================

// Transform is an affine placement: world = Matrix·local + Origin.
// Transforms are values; spirals hold their own copy.
type Transform struct {
	Matrix Matrix
	Origin r3.Vec
}

// Identity transform. Will transform a point onto itself.
func Identity() Transform {
	return Transform{Matrix: IdentityMatrix()}
}

// Translation transform. Translate a point by (dx,dy,dz).
func Translation(dx, dy, dz float64) Transform {
	return Transform{Matrix: IdentityMatrix(), Origin: r3.Vec{X: dx, Y: dy, Z: dz}}
}

// FixedPointAndMatrix creates a transform applying m around a fixed point.
func FixedPointAndMatrix(fixed r3.Vec, m Matrix) Transform {
	return Transform{Matrix: m, Origin: r3.Sub(fixed, m.MultiplyVector(fixed))}
}

// Combine 2 transforms to a new one: first t, then n.
func (t Transform) Combine(n Transform) Transform {
	return Transform{
		Matrix: t.Matrix.Combine(n.Matrix),
		Origin: r3.Add(n.Matrix.MultiplyVector(t.Origin), n.Origin),
	}
}

// MultiplyPoint transforms a 3D point.
func (t Transform) MultiplyPoint(p r3.Vec) r3.Vec {
	return r3.Add(t.Matrix.MultiplyVector(p), t.Origin)
}

// MultiplyVector transforms a 3D vector, ignoring the translation part.
func (t Transform) MultiplyVector(v r3.Vec) r3.Vec {
	return t.Matrix.MultiplyVector(v)
}

// MultiplyPair transforms a local xy point (z = 0).
func (t Transform) MultiplyPair(p Pair) r3.Vec {
	return t.MultiplyPoint(p.Vec())
}

// MultiplyPairVector transforms a local xy vector (z = 0).
func (t Transform) MultiplyPairVector(v Pair) r3.Vec {
	return t.MultiplyVector(v.Vec())
}

// IsAlmostEqual compares matrix and origin.
func (t Transform) IsAlmostEqual(other Transform) bool {
	return t.Matrix.IsAlmostEqual(other.Matrix) && IsAlmostEqualVec(t.Origin, other.Origin)
}

// Debug Stringer for a transform.
func (t Transform) String() string {
	return fmt.Sprintf("%s+(%g,%g,%g)", t.Matrix, t.Origin.X, t.Origin.Y, t.Origin.Z)
}
