package spiral

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/polyn"
)

// ErrTooManyUnknowns flags transition properties with more than one value
// not set.
var ErrTooManyUnknowns = errors.New("more than one unknown transition property")

// Quantity names one of the five values defining a transition.
type Quantity int8

// The defining values of a transition. Resolved means no value is missing.
const (
	Resolved Quantity = iota
	Radius0
	Radius1
	Bearing0
	Bearing1
	Length
)

var quantityNames = [...]string{"resolved", "radius0", "radius1", "bearing0", "bearing1", "length"}

func (q Quantity) String() string {
	if q < 0 || int(q) >= len(quantityNames) {
		return fmt.Sprintf("Quantity(%d)", q)
	}
	return quantityNames[q]
}

// ConditionalProperties holds radius, bearing and length of a transition
// with at most one of them missing. The missing one is tracked by a tag and
// may be computed from the others with
//
//	length ⋅ (1/radius0 + 1/radius1)/2 = bearing1 − bearing0
//
// A radius of 0 stands for a straight line (curvature 0). Bearings are in
// radians.
type ConditionalProperties struct {
	radius0, radius1   float64
	bearing0, bearing1 float64
	length             float64
	missing            Quantity
}

// NewConditionalProperties creates properties with the value for quantity
// missing not yet known. The argument given for the missing slot is ignored.
func NewConditionalProperties(missing Quantity, r0, r1, b0, b1, length float64) *ConditionalProperties {
	cp := &ConditionalProperties{
		radius0:  r0,
		radius1:  r1,
		bearing0: b0,
		bearing1: b1,
		length:   length,
		missing:  missing,
	}
	if s := cp.slot(missing); s != nil {
		*s = math.NaN()
	}
	return cp
}

// FromValues creates properties from five values, where NaN marks the
// unknown one. Returns ErrTooManyUnknowns if more than one value is NaN.
func FromValues(r0, r1, b0, b1, length float64) (*ConditionalProperties, error) {
	missing := Resolved
	for q, v := range []float64{r0, r1, b0, b1, length} {
		if !math.IsNaN(v) {
			continue
		}
		if missing != Resolved {
			return nil, fmt.Errorf("%w: %s and %s", ErrTooManyUnknowns, missing, Quantity(q+1))
		}
		missing = Quantity(q + 1)
	}
	return NewConditionalProperties(missing, r0, r1, b0, b1, length), nil
}

func (cp *ConditionalProperties) slot(q Quantity) *float64 {
	switch q {
	case Radius0:
		return &cp.radius0
	case Radius1:
		return &cp.radius1
	case Bearing0:
		return &cp.bearing0
	case Bearing1:
		return &cp.bearing1
	case Length:
		return &cp.length
	}
	return nil
}

// Missing is the quantity not yet known, or Resolved.
func (cp *ConditionalProperties) Missing() Quantity { return cp.missing }

// IsResolved is true if all five values are known.
func (cp *ConditionalProperties) IsResolved() bool { return cp.missing == Resolved }

// Radius0 is the start radius, NaN if unknown.
func (cp *ConditionalProperties) Radius0() float64 { return cp.radius0 }

// Radius1 is the end radius, NaN if unknown.
func (cp *ConditionalProperties) Radius1() float64 { return cp.radius1 }

// Bearing0 is the start bearing in radians, NaN if unknown.
func (cp *ConditionalProperties) Bearing0() float64 { return cp.bearing0 }

// Bearing1 is the end bearing in radians, NaN if unknown.
func (cp *ConditionalProperties) Bearing1() float64 { return cp.bearing1 }

// Length is the curve length, NaN if unknown.
func (cp *ConditionalProperties) Length() float64 { return cp.length }

// Clone returns an independent copy.
func (cp *ConditionalProperties) Clone() *ConditionalProperties {
	c := *cp
	return &c
}

// TryResolveAnySingleUnknown computes the missing value from the other
// four. It returns false and leaves the properties untouched if nothing is
// missing, if a known value is not finite, if both radii are known and equal
// (no transition), or if the relation cannot be solved for the missing value
// (e.g. a length for a transition without curvature).
func (cp *ConditionalProperties) TryResolveAnySingleUnknown() bool {
	if cp.missing == Resolved {
		return false
	}
	for q := Radius0; q <= Length; q++ {
		if q != cp.missing && !transit.IsFinite(*cp.slot(q)) {
			tracer().Debugf("cannot resolve %s: %s is %g", cp.missing, q, *cp.slot(q))
			return false
		}
	}
	if cp.missing != Radius0 && cp.missing != Radius1 && cp.radius0 == cp.radius1 {
		tracer().Debugf("cannot resolve %s: equal radii %g", cp.missing, cp.radius0)
		return false
	}
	// turn = L⋅(k0+k1)/2 and sweep = b1−b0 are linear in the unknown, with an
	// unknown radius entering as its curvature
	x, _ := polyn.New(0, polyn.X{I: 1, C: 1})
	term := func(q Quantity, v float64) polyn.Polynomial {
		if q == cp.missing {
			return x
		}
		return polyn.NewConstantPolynomial(v)
	}
	k0, k1 := RadiusToCurvature(cp.radius0), RadiusToCurvature(cp.radius1)
	kavg := term(Radius0, k0).Add(term(Radius1, k1)).Scale(0.5)
	var turn polyn.Polynomial
	if cp.missing == Length {
		turn = x.Scale((k0 + k1) / 2)
	} else {
		turn = kavg.Scale(cp.length)
	}
	sweep := term(Bearing1, cp.bearing1).Subtract(term(Bearing0, cp.bearing0))
	eq := turn.Subtract(sweep)
	root, err := eq.LinearRoot()
	if err != nil {
		tracer().Debugf("cannot resolve %s from %s = 0: %v", cp.missing, eq.TraceString(cp.missing.String()), err)
		return false
	}
	switch cp.missing {
	case Radius0, Radius1:
		root = CurvatureToRadius(root)
	case Length:
		if root <= 0 {
			tracer().Debugf("cannot resolve length: sweep %g against curvature %g", cp.bearing1-cp.bearing0,
				(k0+k1)/2)
			return false
		}
	}
	*cp.slot(cp.missing) = root
	cp.missing = Resolved
	return true
}

// IsAlmostEqual compares all known values, radii and length relative to
// their magnitude, bearings with transit.SmallAngleRadians. Properties
// missing different values are never equal; nil is never equal.
func (cp *ConditionalProperties) IsAlmostEqual(other *ConditionalProperties) bool {
	if cp == nil || other == nil || cp.missing != other.missing {
		return false
	}
	for q := Radius0; q <= Length; q++ {
		if q == cp.missing {
			continue
		}
		a, b := *cp.slot(q), *other.slot(q)
		switch q {
		case Bearing0, Bearing1:
			if !transit.IsAlmostEqualRadians(a, b) {
				return false
			}
		default:
			if !transit.IsAlmostEqualNumber(a, b) {
				return false
			}
		}
	}
	return true
}

func (cp *ConditionalProperties) String() string {
	return fmt.Sprintf("{r0=%g r1=%g b0=%g° b1=%g° L=%g missing=%s}", cp.radius0, cp.radius1,
		cp.bearing0/transit.Deg2Rad, cp.bearing1/transit.Deg2Rad, cp.length, cp.missing)
}

// --- Radius and curvature --------------------------------------------------

// RadiusToCurvature is 1/r, with radius 0 meaning a straight line.
func RadiusToCurvature(r float64) float64 {
	if r == 0 {
		return 0
	}
	return 1 / r
}

// CurvatureToRadius is 1/k, with curvature 0 (within transit.Epsilon)
// yielding radius 0.
func CurvatureToRadius(k float64) float64 {
	if transit.Is0(k) {
		return 0
	}
	return 1 / k
}

// AverageCurvature is the mean of the curvatures at both radii.
func AverageCurvature(r0, r1 float64) float64 {
	return (RadiusToCurvature(r0) + RadiusToCurvature(r1)) / 2
}

// RadiusRadiusSweepToLength is the length of a transition between two radii
// turning by sweep radians. Returns 0 for a transition without curvature.
func RadiusRadiusSweepToLength(r0, r1, sweep float64) float64 {
	k := AverageCurvature(r0, r1)
	if k == 0 {
		return 0
	}
	return sweep / k
}

// RadiusRadiusLengthToSweep is the bearing change of a transition between
// two radii with given length.
func RadiusRadiusLengthToSweep(r0, r1, length float64) float64 {
	return length * AverageCurvature(r0, r1)
}

// RadiusLengthSweepToOtherRadius is the radius at the opposite end of a
// transition starting at radius r0.
func RadiusLengthSweepToOtherRadius(r0, length, sweep float64) float64 {
	if length == 0 {
		return 0
	}
	return CurvatureToRadius(2*sweep/length - RadiusToCurvature(r0))
}
