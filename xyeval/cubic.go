package xyeval

import (
	"fmt"
	"math"

	"github.com/npillmayer/transit"
)

// Cubic evaluates the cubic parabola
//
//	x = u⋅axisLength,  y = m⋅x³
//
// Japanese cubic and Czech cubic differ in the choice of m.
type Cubic struct {
	axisLength float64
	cubicM     float64
}

var _ Evaluator = &Cubic{}

// NewCubic creates a cubic evaluator.
func NewCubic(axisLength, cubicM float64) *Cubic {
	return &Cubic{axisLength: axisLength, cubicM: cubicM}
}

// NewJapaneseCubic creates the cubic y = x³/(6RL).
func NewJapaneseCubic(length1, radius1 float64) (*Cubic, error) {
	if !validLengthRadius(length1, radius1) {
		return nil, fmt.Errorf("%w: length %g, radius %g", ErrInvalidParameters, length1, radius1)
	}
	return NewCubic(length1, 1.0/(6.0*radius1*length1)), nil
}

// CzechGammaConstant is the correction factor of the Czech cubic,
//
//	γ = 2R / √(4R² - L²)
//
// It is undefined (ok = false) for L ≥ 2R.
func CzechGammaConstant(length1, radius1 float64) (gamma float64, ok bool) {
	d := 4.0*radius1*radius1 - length1*length1
	if d <= 0 {
		return math.NaN(), false
	}
	return 2.0 * math.Abs(radius1) / math.Sqrt(d), true
}

// NewCzech creates the Czech cubic y = γ⋅x³/(6RL).
func NewCzech(length1, radius1 float64) (*Cubic, error) {
	if !validLengthRadius(length1, radius1) {
		return nil, fmt.Errorf("%w: length %g, radius %g", ErrInvalidParameters, length1, radius1)
	}
	gamma, ok := CzechGammaConstant(length1, radius1)
	if !ok {
		return nil, fmt.Errorf("%w: no Czech gamma for length %g, radius %g", ErrInvalidParameters,
			length1, radius1)
	}
	return NewCubic(length1, gamma/(6.0*radius1*length1)), nil
}

// AxisLength is the x-extent at u = 1.
func (c *Cubic) AxisLength() float64 { return c.axisLength }

// CubicM is the factor m of y = m⋅x³.
func (c *Cubic) CubicM() float64 { return c.cubicM }

// FractionToX is u⋅L.
func (c *Cubic) FractionToX(u float64) float64 {
	return u * c.axisLength
}

// FractionToY is m⋅x³.
func (c *Cubic) FractionToY(u float64) float64 {
	x := u * c.axisLength
	return c.cubicM * x * x * x
}

// FractionToDX is the constant dx/du = L.
func (c *Cubic) FractionToDX(u float64) float64 {
	return c.axisLength
}

// FractionToDY is dy/du = 3m⋅x²⋅L.
func (c *Cubic) FractionToDY(u float64) float64 {
	x := u * c.axisLength
	return 3.0 * c.cubicM * x * x * c.axisLength
}

// FractionToDDX is 0.
func (c *Cubic) FractionToDDX(u float64) float64 {
	return 0
}

// FractionToDDY is d²y/du² = 6m⋅x⋅L².
func (c *Cubic) FractionToDDY(u float64) float64 {
	x := u * c.axisLength
	return 6.0 * c.cubicM * x * c.axisLength * c.axisLength
}

// FractionToDDDX is 0.
func (c *Cubic) FractionToDDDX(u float64) float64 {
	return 0
}

// FractionToDDDY is the constant 6m⋅L³.
func (c *Cubic) FractionToDDDY(u float64) float64 {
	return 6.0 * c.cubicM * c.axisLength * c.axisLength * c.axisLength
}

// XToFraction is exact, as x is linear in u.
func (c *Cubic) XToFraction(x float64) float64 {
	if c.axisLength == 0 {
		return math.NaN()
	}
	return x / c.axisLength
}

// Clone returns a copy of c.
func (c *Cubic) Clone() Evaluator {
	cc := *c
	return &cc
}

// IsAlmostEqual compares axis length and cubic factor.
func (c *Cubic) IsAlmostEqual(other Evaluator) bool {
	o, ok := other.(*Cubic)
	if !ok || o == nil {
		return false
	}
	return transit.IsAlmostEqualNumber(c.axisLength, o.axisLength) &&
		transit.IsAlmostEqualNumber(c.cubicM, o.cubicM)
}

func (c *Cubic) String() string {
	return fmt.Sprintf("Cubic(x=%g, m=%g)", c.axisLength, c.cubicM)
}
