package xyeval

import (
	"fmt"
	"math"

	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/polyn"
)

// ClothoidSeries evaluates a clothoid by truncated power series of the
// Fresnel integrals
//
//	x(s) = ∫cos(c⋅t²)dt = s - c²s⁵/10 + c⁴s⁹/216 - …
//	y(s) = ∫sin(c⋅t²)dt = cs³/3 - c³s⁷/42 + …
//
// with s = u⋅L and c = 1/(2RL). numXTerms and numYTerms select how many terms
// of each series are used.
type ClothoidSeries struct {
	nominalLength1 float64
	constantDiv2LR float64
	numXTerms      int
	numYTerms      int

	x, dx, ddx, dddx polyn.Polynomial // in u
	y, dy, ddy, dddy polyn.Polynomial // in u
}

var _ Evaluator = &ClothoidSeries{}

// NewClothoidSeries creates a series evaluator for nominal length length1 and
// curvature growth constant constantDiv2LR = 1/(2⋅R⋅L). Term counts below 1 are
// raised to 1.
func NewClothoidSeries(length1, constantDiv2LR float64, numXTerms, numYTerms int) *ClothoidSeries {
	if numXTerms < 1 {
		numXTerms = 1
	}
	if numYTerms < 1 {
		numYTerms = 1
	}
	cs := &ClothoidSeries{
		nominalLength1: length1,
		constantDiv2LR: constantDiv2LR,
		numXTerms:      numXTerms,
		numYTerms:      numYTerms,
	}
	cs.x, cs.y = seriesPolynomials(length1, constantDiv2LR, numXTerms, numYTerms)
	cs.dx = cs.x.Derivative()
	cs.ddx = cs.dx.Derivative()
	cs.dddx = cs.ddx.Derivative()
	cs.dy = cs.y.Derivative()
	cs.ddy = cs.dy.Derivative()
	cs.dddy = cs.ddy.Derivative()
	tracer().Debugf("clothoid series x(u) = %s (%d terms)", cs.x.TraceString("u"), cs.x.TermCount())
	tracer().Debugf("clothoid series y(u) = %s (%d terms)", cs.y.TraceString("u"), cs.y.TermCount())
	return cs
}

// seriesPolynomials builds x(u) and y(u). With a = c⋅L² the terms are
//
//	x: L⋅(-1)ⁿ a²ⁿ    / ((2n)!   (4n+1)) ⋅ u⁴ⁿ⁺¹
//	y: L⋅(-1)ⁿ a²ⁿ⁺¹  / ((2n+1)! (4n+3)) ⋅ u⁴ⁿ⁺³
func seriesPolynomials(length1, c float64, numX, numY int) (polyn.Polynomial, polyn.Polynomial) {
	a := c * length1 * length1
	x := polyn.NewConstantPolynomial(0)
	y := polyn.NewConstantPolynomial(0)
	// term k of the combined series is a^k / k! ⋅ u^(2k+1) / (2k+1), alternating
	// between x (even k) and y (odd k)
	ak, kfact := 1.0, 1.0
	for k := 0; k < 2*max(numX, numY); k++ {
		if k > 0 {
			ak *= a
			kfact *= float64(k)
		}
		n := k / 2
		sign := 1.0
		if n%2 == 1 {
			sign = -1.0
		}
		coeff := sign * length1 * ak / (kfact * float64(2*k+1))
		if k%2 == 0 && n < numX {
			x.SetTerm(2*k+1, coeff)
		} else if k%2 == 1 && n < numY {
			y.SetTerm(2*k+1, coeff)
		}
	}
	return x, y
}

// NumXTerms is the number of terms of the x series.
func (cs *ClothoidSeries) NumXTerms() int { return cs.numXTerms }

// NumYTerms is the number of terms of the y series.
func (cs *ClothoidSeries) NumYTerms() int { return cs.numYTerms }

// NominalLength is the nominal length L.
func (cs *ClothoidSeries) NominalLength() float64 { return cs.nominalLength1 }

// ConstantDiv2LR is the curvature growth constant c = 1/(2RL).
func (cs *ClothoidSeries) ConstantDiv2LR() float64 { return cs.constantDiv2LR }

// FractionToX and its siblings evaluate the series polynomials and their
// exact derivatives at fraction u.
func (cs *ClothoidSeries) FractionToX(u float64) float64    { return cs.x.Eval(u) }
func (cs *ClothoidSeries) FractionToY(u float64) float64    { return cs.y.Eval(u) }
func (cs *ClothoidSeries) FractionToDX(u float64) float64   { return cs.dx.Eval(u) }
func (cs *ClothoidSeries) FractionToDY(u float64) float64   { return cs.dy.Eval(u) }
func (cs *ClothoidSeries) FractionToDDX(u float64) float64  { return cs.ddx.Eval(u) }
func (cs *ClothoidSeries) FractionToDDY(u float64) float64  { return cs.ddy.Eval(u) }
func (cs *ClothoidSeries) FractionToDDDX(u float64) float64 { return cs.dddx.Eval(u) }
func (cs *ClothoidSeries) FractionToDDDY(u float64) float64 { return cs.dddy.Eval(u) }

// XToFraction inverts x(u) by Newton iteration, seeded with x/L.
func (cs *ClothoidSeries) XToFraction(x float64) float64 {
	if cs.nominalLength1 == 0 {
		return math.NaN()
	}
	return newtonXToFraction(cs, x, x/cs.nominalLength1)
}

// Clone returns a copy. The series polynomials are immutable and shared.
func (cs *ClothoidSeries) Clone() Evaluator {
	c := *cs
	return &c
}

// IsAlmostEqual compares length, growth constant and term counts.
func (cs *ClothoidSeries) IsAlmostEqual(other Evaluator) bool {
	o, ok := other.(*ClothoidSeries)
	if !ok || o == nil {
		return false
	}
	return cs.numXTerms == o.numXTerms && cs.numYTerms == o.numYTerms &&
		transit.IsAlmostEqualNumber(cs.nominalLength1, o.nominalLength1) &&
		transit.IsAlmostEqualNumber(cs.constantDiv2LR, o.constantDiv2LR)
}

func (cs *ClothoidSeries) String() string {
	return fmt.Sprintf("ClothoidSeries(L=%g, c=%g, X%dY%d)", cs.nominalLength1, cs.constantDiv2LR,
		cs.numXTerms, cs.numYTerms)
}

// NewTruncatedClothoid creates a series evaluator from nominal length and end
// radius.
func NewTruncatedClothoid(length1, radius1 float64, numXTerms, numYTerms int) (*ClothoidSeries, error) {
	if !validLengthRadius(length1, radius1) {
		return nil, fmt.Errorf("%w: length %g, radius %g", ErrInvalidParameters, length1, radius1)
	}
	return NewClothoidSeries(length1, 1.0/(2.0*radius1*length1), numXTerms, numYTerms), nil
}

// NewArema creates the AREMA approximation: a clothoid series with two terms
// in x and y.
func NewArema(length1, radius1 float64) (*ClothoidSeries, error) {
	return NewTruncatedClothoid(length1, radius1, 2, 2)
}

// NewWesternAustralian creates the Western Australian approximation: two
// terms in x, one term in y.
func NewWesternAustralian(length1, radius1 float64) (*ClothoidSeries, error) {
	return NewTruncatedClothoid(length1, radius1, 2, 1)
}
