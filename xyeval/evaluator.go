/*
Package xyeval implements evaluators for spirals given directly in a local
xy frame.

An evaluator maps a fraction u of the nominal spiral (u ∈ [0,1], although
most evaluators extrapolate beyond) to local coordinates x(u), y(u) and the
first three derivatives with respect to u. All derivatives are exact
derivatives of the formula used for x and y, never finite differences.

Evaluators are immutable after construction and may be shared between
goroutines.

Families

	ClothoidSeries    truncated power series of the Fresnel integrals
	                  (Arema and WesternAustralian are fixed truncations)
	Cubic             y = m⋅x³ (JapaneseCubic, Czech)
	DirectHalfCosine  y'' follows a half cosine in x
*/
package xyeval

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/transit"
)

// tracer writes to trace with key 'xyeval'
func tracer() tracing.Trace {
	return tracing.Select("xyeval")
}

// ErrInvalidParameters flags nominal length or radius unusable for an evaluator.
var ErrInvalidParameters = errors.New("invalid evaluator parameters")

// Evaluator is the capability set shared by all xy spiral evaluators.
type Evaluator interface {
	FractionToX(u float64) float64
	FractionToY(u float64) float64
	FractionToDX(u float64) float64
	FractionToDY(u float64) float64
	FractionToDDX(u float64) float64
	FractionToDDY(u float64) float64
	FractionToDDDX(u float64) float64
	FractionToDDDY(u float64) float64
	// XToFraction inverts FractionToX. Returns NaN if no fraction could be found.
	XToFraction(x float64) float64
	// Clone returns an independent copy.
	Clone() Evaluator
	// IsAlmostEqual compares family and defining parameters.
	IsAlmostEqual(other Evaluator) bool
}

// FractionToPoint evaluates (x,y) at u.
func FractionToPoint(e Evaluator, u float64) transit.Pair {
	return transit.P(e.FractionToX(u), e.FractionToY(u))
}

// FractionToPointAndDerivative evaluates (x,y) and its first derivative at u.
func FractionToPointAndDerivative(e Evaluator, u float64) (p, d1 transit.Pair) {
	p = FractionToPoint(e, u)
	d1 = transit.P(e.FractionToDX(u), e.FractionToDY(u))
	return
}

// FractionToPointAnd2Derivatives evaluates (x,y) and two derivatives at u.
func FractionToPointAnd2Derivatives(e Evaluator, u float64) (p, d1, d2 transit.Pair) {
	p, d1 = FractionToPointAndDerivative(e, u)
	d2 = transit.P(e.FractionToDDX(u), e.FractionToDDY(u))
	return
}

// FractionToPointAnd3Derivatives evaluates (x,y) and three derivatives at u.
func FractionToPointAnd3Derivatives(e Evaluator, u float64) (p, d1, d2, d3 transit.Pair) {
	p, d1, d2 = FractionToPointAnd2Derivatives(e, u)
	d3 = transit.P(e.FractionToDDDX(u), e.FractionToDDDY(u))
	return
}

// FractionToBearingRadians is the direction of the tangent at u.
func FractionToBearingRadians(e Evaluator, u float64) float64 {
	return math.Atan2(e.FractionToDY(u), e.FractionToDX(u))
}

// --- Newton inversion ------------------------------------------------------

// MaxNewtonIterations caps the inversion of x(u).
var MaxNewtonIterations = 15

// NewtonFractionTolerance is the fraction step at which Newton iteration
// counts as converged.
var NewtonFractionTolerance = 1.0e-13

// newtonXToFraction solves x(u) = x, starting at seed.
func newtonXToFraction(e Evaluator, x, seed float64) float64 {
	u := seed
	for i := 0; i < MaxNewtonIterations; i++ {
		dx := e.FractionToDX(u)
		if dx == 0 || !transit.IsFinite(dx) {
			break
		}
		du := (e.FractionToX(u) - x) / dx
		u -= du
		if math.Abs(du) <= NewtonFractionTolerance*math.Max(1, math.Abs(u)) {
			return u
		}
	}
	tracer().Errorf("newton inversion for x = %g did not converge", x)
	return math.NaN()
}

func validLengthRadius(length, radius float64) bool {
	return length > 0 && radius != 0 && transit.IsFinite(length) && transit.IsFinite(radius)
}
