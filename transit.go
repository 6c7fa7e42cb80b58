/*
Package transit implements the geometric ground work for transition spirals:
numeric tolerances, local xy pairs, placement transforms, fraction intervals
and angle sweeps.

Sub-packages build on it: polyn (univariate polynomials), snap (normalized
curvature transitions), xyeval (local xy spiral evaluators), stroke (polyline
approximations) and spiral (direct and integrated transition spirals).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package transit

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'transit'
func tracer() tracing.Trace {
	return tracing.Select("transit")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
const Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// SmallAngleRadians is the tolerance for comparing angles.
var SmallAngleRadians float64 = 1.0e-12

// SmallMetricDistance is the tolerance for comparing coordinates.
var SmallMetricDistance float64 = 1.0e-6

// SmallRelative is the relative tolerance for comparing non-metric numbers.
var SmallRelative float64 = 1.0e-10

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Degrees converts an angle in degrees to radians.
func Degrees(deg float64) float64 {
	return deg * Deg2Rad
}

// IsFinite is true for numbers which are neither NaN nor ±Inf.
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Interpolate returns a + f·(b-a). For f > ½ the interpolation starts at b,
// so that f = 1 yields b exactly.
func Interpolate(a, f, b float64) float64 {
	if f <= 0.5 {
		return a + f*(b-a)
	}
	return b - (1-f)*(b-a)
}

// IsSameCoordinate compares two coordinates with SmallMetricDistance.
func IsSameCoordinate(a, b float64) bool {
	return math.Abs(a-b) <= SmallMetricDistance
}

// IsAlmostEqualNumber compares two numbers with a tolerance relative to
// their magnitude.
func IsAlmostEqualNumber(a, b float64) bool {
	return math.Abs(a-b) <= SmallRelative*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// IsAlmostEqualRadians compares two angles, without period shift.
func IsAlmostEqualRadians(a, b float64) bool {
	return math.Abs(a-b) <= SmallAngleRadians
}

// === Pair Data Type ========================================================

// Pair is a 2D point or vector in the local xy plane of a spiral.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Magnitude is the euclidean length of a pair.
func (p Pair) Magnitude() float64 {
	return cmplx.Abs(p.C())
}

// Angle is the direction of a pair in radians, measured from the x-axis.
func (p Pair) Angle() float64 {
	return cmplx.Phase(p.C())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Vec lifts a pair to 3D, with z = 0.
func (p Pair) Vec() r3.Vec {
	return r3.Vec{X: p.X(), Y: p.Y()}
}

// Polar returns the unit pair in direction theta.
func Polar(theta float64) Pair {
	return Pair(cmplx.Rect(1, theta))
}

// === Vectors ===============================================================

// IsAlmostEqualVec compares two 3D points or vectors coordinate-wise.
func IsAlmostEqualVec(a, b r3.Vec) bool {
	return IsSameCoordinate(a.X, b.X) && IsSameCoordinate(a.Y, b.Y) && IsSameCoordinate(a.Z, b.Z)
}

// CurvatureMagnitude computes |d1 × d2| / |d1|³ for the first and second
// derivative of a curve. Returns 0 for vanishing d1.
func CurvatureMagnitude(d1, d2 r3.Vec) float64 {
	q := r3.Norm(d1)
	if Is0(q) {
		return 0
	}
	return r3.Norm(r3.Cross(d1, d2)) / (q * q * q)
}

// Ray is a point with a tangent vector.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// Plane is a point with two vectors, usually first and second derivative.
type Plane struct {
	Origin  r3.Vec
	VectorU r3.Vec
	VectorV r3.Vec
}
