// Package snap implements normalized transition functions ("snap functions").
//
// A snap function maps a fraction u ∈ [0,1] of a transition to the fraction
// of the total curvature change reached at u. All functions provided here
// run from 0 at u=0 to 1 at u=1, are point-symmetric about (½,½) and
// therefore enclose an area of exactly ½ over [0,1].
package snap

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'snap'
func tracer() tracing.Trace {
	return tracing.Select("snap")
}

// Function is a normalized transition.
type Function interface {
	// CurvatureFraction is the fraction of curvature change reached at u.
	CurvatureFraction(u float64) float64
	// CurvatureFractionDerivative is d/du of CurvatureFraction.
	CurvatureFractionDerivative(u float64) float64
	// Area is the integral of CurvatureFraction over [0,u].
	Area(u float64) float64
	// Name is the spiral type name of the transition.
	Name() string
}

// Names of the snap functions, as used for spiral types.
const (
	ClothoidName    = "clothoid"
	BlossName       = "bloss"
	BiQuadraticName = "biquadratic"
	SineName        = "sine"
	CosineName      = "cosine"
)

// ByName returns the snap function for a spiral type name. Names are
// case-sensitive.
func ByName(name string) (Function, bool) {
	switch name {
	case ClothoidName:
		return Clothoid{}, true
	case BlossName:
		return Bloss{}, true
	case BiQuadraticName:
		return BiQuadratic{}, true
	case SineName:
		return Sine{}, true
	case CosineName:
		return Cosine{}, true
	}
	tracer().Debugf("no snap function named %q", name)
	return nil, false
}

// Names lists all known snap function names.
func Names() []string {
	return []string{ClothoidName, BlossName, BiQuadraticName, SineName, CosineName}
}

// Clothoid is the linear transition f(u) = u.
type Clothoid struct{}

func (Clothoid) CurvatureFraction(u float64) float64           { return u }
func (Clothoid) CurvatureFractionDerivative(u float64) float64 { return 1 }
func (Clothoid) Area(u float64) float64                        { return 0.5 * u * u }
func (Clothoid) Name() string                                  { return ClothoidName }

// Bloss is the cubic transition f(u) = u²(3-2u).
type Bloss struct{}

func (Bloss) CurvatureFraction(u float64) float64 {
	return u * u * (3 - 2*u)
}

func (Bloss) CurvatureFractionDerivative(u float64) float64 {
	return 6 * u * (1 - u)
}

func (Bloss) Area(u float64) float64 {
	return u * u * u * (1 - 0.5*u)
}

func (Bloss) Name() string { return BlossName }

// BiQuadratic joins two parabolas at u = ½:
//
//	f(u) = 2u²          for u ≤ ½
//	f(u) = 1 - 2(1-u)²  for u > ½
type BiQuadratic struct{}

func (BiQuadratic) CurvatureFraction(u float64) float64 {
	if u <= 0.5 {
		return 2 * u * u
	}
	v := 1 - u
	return 1 - 2*v*v
}

func (BiQuadratic) CurvatureFractionDerivative(u float64) float64 {
	if u <= 0.5 {
		return 4 * u
	}
	return 4 * (1 - u)
}

func (BiQuadratic) Area(u float64) float64 {
	if u <= 0.5 {
		return 2 * u * u * u / 3
	}
	v := 1 - u
	return u - 0.5 + 2*v*v*v/3
}

func (BiQuadratic) Name() string { return BiQuadraticName }

// Sine is the transition f(u) = u - sin(2πu)/(2π).
type Sine struct{}

func (Sine) CurvatureFraction(u float64) float64 {
	return u - math.Sin(2*math.Pi*u)/(2*math.Pi)
}

func (Sine) CurvatureFractionDerivative(u float64) float64 {
	return 1 - math.Cos(2*math.Pi*u)
}

func (Sine) Area(u float64) float64 {
	return 0.5*u*u + (math.Cos(2*math.Pi*u)-1)/(4*math.Pi*math.Pi)
}

func (Sine) Name() string { return SineName }

// Cosine is the half-cosine transition f(u) = (1 - cos πu)/2.
type Cosine struct{}

func (Cosine) CurvatureFraction(u float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*u))
}

func (Cosine) CurvatureFractionDerivative(u float64) float64 {
	return 0.5 * math.Pi * math.Sin(math.Pi*u)
}

func (Cosine) Area(u float64) float64 {
	return 0.5*u - math.Sin(math.Pi*u)/(2*math.Pi)
}

func (Cosine) Name() string { return CosineName }

// String is a debugging helper.
func String(f Function) string {
	return fmt.Sprintf("snap(%s)", f.Name())
}
