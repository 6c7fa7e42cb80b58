package xyeval

import (
	"fmt"
	"math"

	"github.com/npillmayer/transit"
)

// DirectHalfCosine evaluates a spiral whose second derivative y'' follows a
// half cosine along the x-axis:
//
//	x = u⋅L
//	y = ( x²/4 - L²/(2π²)⋅(1 - cos(πx/L)) ) / R
//
// so that y'' runs from 0 at x = 0 to 1/R at x = L.
type DirectHalfCosine struct {
	nominalLength1 float64
	nominalRadius1 float64
	c              float64 // L²/(2π²)
	wavenumber     float64 // π/L
}

var _ Evaluator = &DirectHalfCosine{}

// NewDirectHalfCosine creates a half-cosine evaluator.
func NewDirectHalfCosine(length1, radius1 float64) (*DirectHalfCosine, error) {
	if !validLengthRadius(length1, radius1) {
		return nil, fmt.Errorf("%w: length %g, radius %g", ErrInvalidParameters, length1, radius1)
	}
	return &DirectHalfCosine{
		nominalLength1: length1,
		nominalRadius1: radius1,
		c:              length1 * length1 / (2 * math.Pi * math.Pi),
		wavenumber:     math.Pi / length1,
	}, nil
}

// FractionToX is u⋅L.
func (e *DirectHalfCosine) FractionToX(u float64) float64 {
	return u * e.nominalLength1
}

// FractionToY is (x²/4 − L²/(2π²)⋅(1 − cos(πx/L)))/R.
func (e *DirectHalfCosine) FractionToY(u float64) float64 {
	x := u * e.nominalLength1
	return (x*x/4 - e.c*(1-math.Cos(e.wavenumber*x))) / e.nominalRadius1
}

// FractionToDX is L. Derivatives by u follow below; x is linear in u, so
// DDX and DDDX vanish.
func (e *DirectHalfCosine) FractionToDX(u float64) float64 {
	return e.nominalLength1
}

func (e *DirectHalfCosine) FractionToDY(u float64) float64 {
	x := u * e.nominalLength1
	dydx := (x/2 - e.c*e.wavenumber*math.Sin(e.wavenumber*x)) / e.nominalRadius1
	return dydx * e.nominalLength1
}

func (e *DirectHalfCosine) FractionToDDX(u float64) float64 {
	return 0
}

func (e *DirectHalfCosine) FractionToDDY(u float64) float64 {
	x := u * e.nominalLength1
	d2ydx2 := 0.5 * (1 - math.Cos(e.wavenumber*x)) / e.nominalRadius1
	return d2ydx2 * e.nominalLength1 * e.nominalLength1
}

func (e *DirectHalfCosine) FractionToDDDX(u float64) float64 {
	return 0
}

func (e *DirectHalfCosine) FractionToDDDY(u float64) float64 {
	x := u * e.nominalLength1
	d3ydx3 := 0.5 * e.wavenumber * math.Sin(e.wavenumber*x) / e.nominalRadius1
	l := e.nominalLength1
	return d3ydx3 * l * l * l
}

// XToFraction is exact, as x is linear in u.
func (e *DirectHalfCosine) XToFraction(x float64) float64 {
	return x / e.nominalLength1
}

// Clone returns a copy of e.
func (e *DirectHalfCosine) Clone() Evaluator {
	c := *e
	return &c
}

// IsAlmostEqual compares nominal length and radius.
func (e *DirectHalfCosine) IsAlmostEqual(other Evaluator) bool {
	o, ok := other.(*DirectHalfCosine)
	if !ok || o == nil {
		return false
	}
	return transit.IsAlmostEqualNumber(e.nominalLength1, o.nominalLength1) &&
		transit.IsAlmostEqualNumber(e.nominalRadius1, o.nominalRadius1)
}

func (e *DirectHalfCosine) String() string {
	return fmt.Sprintf("DirectHalfCosine(L=%g, R=%g)", e.nominalLength1, e.nominalRadius1)
}
