package spiral

import (
	"fmt"
	"math"

	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/xyeval"
)

// Type names of direct spirals. Names are case-sensitive. Truncated clothoids
// of arbitrary order are named after ClothoidSeriesFormat.
const (
	AremaName             = "arema"
	JapaneseCubicName     = "japanese-cubic"
	CzechName             = "czech"
	DirectHalfCosineName  = "direct-half-cosine"
	WesternAustralianName = "western-australian"
	ClothoidSeriesFormat  = "ClothoidSeriesX%dY%d"
)

// MaxSeriesTerms bounds the term counts a ClothoidSeriesFormat type name may
// ask for.
var MaxSeriesTerms = 12

// DirectSpiral is a transition spiral evaluated by an xy evaluator in the
// local frame: it starts at the origin heading along the x axis, with radius
// 0 (straight) at the start and the nominal radius at nominal length.
type DirectSpiral struct {
	placement
	evaluator xyeval.Evaluator
	length1   float64
	radius1   float64
}

var _ Spiral = &DirectSpiral{}

// evaluatorCurve adapts an xy evaluator to the nominal geometry of a spiral.
type evaluatorCurve struct {
	e xyeval.Evaluator
}

func (c evaluatorCurve) eval(g float64) (p, d1, d2, d3 transit.Pair) {
	return xyeval.FractionToPointAnd3Derivatives(c.e, g)
}

func (c evaluatorCurve) bearing(g float64) float64 {
	return xyeval.FractionToBearingRadians(c.e, g)
}

func (c evaluatorCurve) curvature(g float64) float64 {
	_, d1, d2, _ := c.eval(g)
	q := d1.Magnitude()
	if transit.Is0(q) {
		return 0
	}
	return (d1.X()*d2.Y() - d1.Y()*d2.X()) / (q * q * q)
}

func (c evaluatorCurve) isAlmostEqual(other nominal) bool {
	o, ok := other.(evaluatorCurve)
	return ok && c.e.IsAlmostEqual(o.e)
}

func newDirectSpiral(spiralType string, e xyeval.Evaluator, length1, radius1 float64,
	active *transit.Interval, localToWorld transit.Transform) (*DirectSpiral, error) {
	iv, err := activeInterval(active)
	if err != nil {
		return nil, err
	}
	return &DirectSpiral{
		placement: newPlacement(spiralType, iv, localToWorld, evaluatorCurve{e: e}),
		evaluator: e,
		length1:   length1,
		radius1:   radius1,
	}, nil
}

// CreateTruncatedClothoid creates a direct spiral from a clothoid series with
// numXTerms terms for x and numYTerms terms for y. Term counts below 1 are
// raised to 1.
func CreateTruncatedClothoid(spiralType string, localToWorld transit.Transform, numXTerms, numYTerms int,
	active *transit.Interval, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewTruncatedClothoid(length1, radius1, numXTerms, numYTerms)
	if err != nil {
		tracer().Debugf("truncated clothoid %s: %v", spiralType, err)
		return nil, err
	}
	return newDirectSpiral(spiralType, e, length1, radius1, active, localToWorld)
}

// CreateJapaneseCubic creates the cubic y = x³/(6RL).
func CreateJapaneseCubic(localToWorld transit.Transform, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewJapaneseCubic(length1, radius1)
	if err != nil {
		return nil, err
	}
	return newDirectSpiral(JapaneseCubicName, e, length1, radius1, nil, localToWorld)
}

// CreateArema creates the AREMA spiral, a clothoid series of 2 terms each.
func CreateArema(localToWorld transit.Transform, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewArema(length1, radius1)
	if err != nil {
		return nil, err
	}
	return newDirectSpiral(AremaName, e, length1, radius1, nil, localToWorld)
}

// CreateCzechCubic creates the Czech cubic, corrected by the gamma factor.
func CreateCzechCubic(localToWorld transit.Transform, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewCzech(length1, radius1)
	if err != nil {
		return nil, err
	}
	return newDirectSpiral(CzechName, e, length1, radius1, nil, localToWorld)
}

// CreateDirectHalfCosine creates the half-cosine spiral.
func CreateDirectHalfCosine(localToWorld transit.Transform, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewDirectHalfCosine(length1, radius1)
	if err != nil {
		return nil, err
	}
	return newDirectSpiral(DirectHalfCosineName, e, length1, radius1, nil, localToWorld)
}

// CreateWesternAustralian creates the Western Australian spiral, a clothoid
// series of 2 terms in x and 1 term in y.
func CreateWesternAustralian(localToWorld transit.Transform, length1, radius1 float64) (*DirectSpiral, error) {
	e, err := xyeval.NewWesternAustralian(length1, radius1)
	if err != nil {
		return nil, err
	}
	return newDirectSpiral(WesternAustralianName, e, length1, radius1, nil, localToWorld)
}

// evaluatorByName selects the evaluator for a direct spiral type name.
func evaluatorByName(spiralType string, length1, radius1 float64) (xyeval.Evaluator, error) {
	switch spiralType {
	case AremaName:
		return xyeval.NewArema(length1, radius1)
	case JapaneseCubicName:
		return xyeval.NewJapaneseCubic(length1, radius1)
	case CzechName:
		return xyeval.NewCzech(length1, radius1)
	case DirectHalfCosineName:
		return xyeval.NewDirectHalfCosine(length1, radius1)
	case WesternAustralianName:
		return xyeval.NewWesternAustralian(length1, radius1)
	}
	var nx, ny int
	if n, err := fmt.Sscanf(spiralType, ClothoidSeriesFormat, &nx, &ny); err == nil && n == 2 &&
		spiralType == fmt.Sprintf(ClothoidSeriesFormat, nx, ny) {
		if nx > MaxSeriesTerms || ny > MaxSeriesTerms {
			return nil, fmt.Errorf("%w: %q has more than %d terms", ErrUnknownSpiralType, spiralType,
				MaxSeriesTerms)
		}
		return xyeval.NewTruncatedClothoid(length1, radius1, nx, ny)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpiralType, spiralType)
}

// CreateFromLengthAndRadius creates a direct spiral of a named type from
// radii, bearings (radians) and length, where NaN marks a value not given.
// Direct spirals leave a straight line along the x axis: radius0 has to be 0,
// and bearing0, if given, 0. radius1 and length are required. bearing1 is not
// checked, as the approximations do not reach the bearing of the true
// clothoid.
func CreateFromLengthAndRadius(spiralType string, r0, r1, b0, b1, length float64,
	active *transit.Interval, localToWorld transit.Transform) (*DirectSpiral, error) {
	switch {
	case math.IsNaN(r0) || math.IsNaN(r1) || math.IsNaN(length):
		return nil, fmt.Errorf("%w: radius0 %g, radius1 %g and length %g are required",
			ErrInconsistentProperties, r0, r1, length)
	case r0 == r1:
		return nil, fmt.Errorf("%w: equal radii %g", ErrDegenerate, r0)
	case r0 != 0:
		return nil, fmt.Errorf("%w: direct spiral must start straight, radius0 %g",
			ErrInconsistentProperties, r0)
	case !math.IsNaN(b0) && !transit.Is0(b0):
		return nil, fmt.Errorf("%w: direct spiral must start at bearing 0, bearing0 %g°",
			ErrInconsistentProperties, b0/transit.Deg2Rad)
	case length <= 0:
		return nil, fmt.Errorf("%w: length %g", ErrDegenerate, length)
	}
	e, err := evaluatorByName(spiralType, length, r1)
	if err != nil {
		tracer().Debugf("direct spiral: %v", err)
		return nil, err
	}
	return newDirectSpiral(spiralType, e, length, r1, active, localToWorld)
}

// Evaluator is the xy evaluator of the spiral.
func (s *DirectSpiral) Evaluator() xyeval.Evaluator { return s.evaluator }

// NominalLength is the length the spiral has been created with.
func (s *DirectSpiral) NominalLength() float64 { return s.length1 }

// NominalRadius is the radius at nominal length.
func (s *DirectSpiral) NominalRadius() float64 { return s.radius1 }

// CloneTransformed returns a copy placed by the spiral's transform followed
// by t.
func (s *DirectSpiral) CloneTransformed(t transit.Transform) Spiral {
	c := s.clone()
	c.placement = c.placedBy(t)
	return c
}

// Clone returns an independent copy.
func (s *DirectSpiral) Clone() Spiral {
	return s.clone()
}

func (s *DirectSpiral) clone() *DirectSpiral {
	e := s.evaluator.Clone()
	c := *s
	c.evaluator = e
	c.curve = evaluatorCurve{e: e}
	c.strokes = s.strokes.Clone()
	return &c
}

// IsAlmostEqual compares type, interval, placement and evaluator.
func (s *DirectSpiral) IsAlmostEqual(other Spiral) bool {
	o, ok := other.(*DirectSpiral)
	if !ok || o == nil || s == nil {
		return false
	}
	return s.placement.isAlmostEqual(&o.placement)
}

func (s *DirectSpiral) String() string {
	return fmt.Sprintf("%s L=%g R=%g", s.placement.String(), s.length1, s.radius1)
}
