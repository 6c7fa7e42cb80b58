package spiral

import (
	"fmt"
	"math"

	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/snap"
	"github.com/npillmayer/transit/stroke"
)

// IntegratedSpiral is a transition whose curvature follows a snap function
// between the curvatures at its ends:
//
//	k(g) = k0 + (k1−k0)⋅snap(g)
//	θ(g) = θ0 + L⋅(k0⋅g + (k1−k0)⋅area(g))
//
// Positions are integrals of L⋅(cos θ, sin θ). The nominal curve is stroked
// once at construction; point queries integrate from the nearest stroke.
type IntegratedSpiral struct {
	placement
	snapped *snapCurve
}

var _ Spiral = &IntegratedSpiral{}

// snapCurve is the local geometry of an integrated spiral, starting at the
// origin.
type snapCurve struct {
	snap        snap.Function
	radius01    transit.Interval
	bearing01   transit.AngleSweep
	curvature01 transit.Interval // signed, positive turns left
	length      float64
	strokes     *stroke.LineString // nominal strokes, uniform in global fraction
}

// newSnapCurve computes curvatures and length for a transition from
// radius01.X0 to radius01.X1 turning through bearing01. Radii are signed,
// positive for a left turn; the mean curvature has to turn the way the sweep
// does.
func newSnapCurve(fn snap.Function, radius01 transit.Interval, bearing01 transit.AngleSweep) (*snapCurve, error) {
	sweep := bearing01.SweepRadians()
	if radius01.X0 == radius01.X1 {
		return nil, fmt.Errorf("%w: equal radii %g", ErrDegenerate, radius01.X0)
	}
	k0 := RadiusToCurvature(radius01.X0)
	k1 := RadiusToCurvature(radius01.X1)
	if transit.Is0(sweep) || (k0+k1)/2 == 0 {
		return nil, fmt.Errorf("%w: sweep %g° with mean curvature %g", ErrDegenerate,
			sweep/transit.Deg2Rad, (k0+k1)/2)
	}
	length := sweep / ((k0 + k1) / 2)
	if !(length > 0) || !transit.IsFinite(length) {
		return nil, fmt.Errorf("%w: radii %g, %g cannot turn %g°", ErrInconsistentProperties,
			radius01.X0, radius01.X1, sweep/transit.Deg2Rad)
	}
	c := &snapCurve{
		snap:        fn,
		radius01:    radius01,
		bearing01:   bearing01,
		curvature01: transit.NewInterval(k0, k1),
		length:      length,
	}
	c.stroke()
	return c, nil
}

// stroke fills the nominal strokes, one for every StrokeRadians of bearing
// change.
func (c *snapCurve) stroke() {
	n := max(MinStrokes, int(math.Ceil(math.Abs(c.bearing01.SweepRadians())/StrokeRadians)))
	c.strokes = stroke.NewLineString().Knot(transit.Origin.Vec(), 0, 0)
	p := transit.Origin
	for i := 1; i <= n; i++ {
		g0, g1 := float64(i-1)/float64(n), float64(i)/float64(n)
		p += integratePair(c.tangent, g0, g1)
		c.strokes.Knot(p.Vec(), g1, g1*c.length)
	}
}

// tangent is L⋅(cos θ, sin θ), the derivative of position by global fraction.
func (c *snapCurve) tangent(g float64) transit.Pair {
	return transit.Polar(c.bearing(g)).Scaled(c.length)
}

func (c *snapCurve) bearing(g float64) float64 {
	k0, k1 := c.curvature01.X0, c.curvature01.X1
	return c.bearing01.StartRadians + c.length*(k0*g+(k1-k0)*c.snap.Area(g))
}

func (c *snapCurve) curvature(g float64) float64 {
	return c.curvature01.FractionToPoint(c.snap.CurvatureFraction(g))
}

func (c *snapCurve) position(g float64) transit.Pair {
	n := c.strokes.N() - 1
	i := min(n, max(0, int(math.Round(g*float64(n)))))
	start := c.strokes.Point(i)
	p := transit.P(start.X, start.Y)
	return p + integratePair(c.tangent, c.strokes.Fraction(i), g)
}

func (c *snapCurve) eval(g float64) (p, d1, d2, d3 transit.Pair) {
	theta := c.bearing(g)
	k := c.curvature(g)
	L := c.length
	u, v := transit.Polar(theta), transit.Polar(theta+math.Pi/2)
	dk := (c.curvature01.X1 - c.curvature01.X0) * c.snap.CurvatureFractionDerivative(g)
	p = c.position(g)
	d1 = u.Scaled(L)
	d2 = v.Scaled(L * L * k)
	d3 = v.Scaled(L*L*dk) - u.Scaled(L*L*L*k*k)
	return
}

func (c *snapCurve) isAlmostEqual(other nominal) bool {
	o, ok := other.(*snapCurve)
	if !ok {
		return false
	}
	return c.snap.Name() == o.snap.Name() &&
		c.radius01.IsAlmostEqual(o.radius01) &&
		c.bearing01.IsAlmostEqual(o.bearing01)
}

// --- Construction -----------------------------------------------------------

// CreateRadiusRadiusBearingBearing creates an integrated spiral from the
// radii and bearings at its ends. Radius 0 means a straight line. An empty
// spiralType selects the clothoid; active nil means the complete spiral.
func CreateRadiusRadiusBearingBearing(radius01 transit.Interval, bearing01 transit.AngleSweep,
	active *transit.Interval, localToWorld transit.Transform, spiralType string) (*IntegratedSpiral, error) {
	if spiralType == "" {
		spiralType = snap.ClothoidName
	}
	fn, ok := snap.ByName(spiralType)
	if !ok {
		tracer().Debugf("no integrated spiral of type %q", spiralType)
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpiralType, spiralType)
	}
	iv, err := activeInterval(active)
	if err != nil {
		return nil, err
	}
	c, err := newSnapCurve(fn, radius01, bearing01)
	if err != nil {
		tracer().Debugf("integrated spiral %s: %v", spiralType, err)
		return nil, err
	}
	return &IntegratedSpiral{
		placement: newPlacement(spiralType, iv, localToWorld, c),
		snapped:   c,
	}, nil
}

// CreateFrom4OutOf5 creates an integrated spiral from radii, bearings
// (radians) and length, where at most one of them may be NaN. The missing
// value is computed; if all five are given, they have to be consistent.
func CreateFrom4OutOf5(spiralType string, r0, r1, b0, b1, length float64,
	active *transit.Interval, localToWorld transit.Transform) (*IntegratedSpiral, error) {
	if spiralType == "" {
		spiralType = snap.ClothoidName
	}
	if _, ok := snap.ByName(spiralType); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpiralType, spiralType)
	}
	cp, err := FromValues(r0, r1, b0, b1, length)
	if err != nil {
		tracer().Debugf("integrated spiral %s: %v", spiralType, err)
		return nil, err
	}
	if !cp.IsResolved() && !cp.TryResolveAnySingleUnknown() {
		return nil, fmt.Errorf("%w: cannot resolve %s", ErrInconsistentProperties, cp)
	}
	sweep := RadiusRadiusLengthToSweep(cp.Radius0(), cp.Radius1(), cp.Length())
	if !transit.IsAlmostEqualNumber(sweep, cp.Bearing1()-cp.Bearing0()) {
		return nil, fmt.Errorf("%w: %s", ErrInconsistentProperties, cp)
	}
	return CreateRadiusRadiusBearingBearing(
		transit.NewInterval(cp.Radius0(), cp.Radius1()),
		transit.AngleSweep{StartRadians: cp.Bearing0(), EndRadians: cp.Bearing1()},
		active, localToWorld, spiralType)
}

// SetFrom makes s a copy of other. It must not run concurrently with reads
// of s.
func (s *IntegratedSpiral) SetFrom(other *IntegratedSpiral) {
	c := *other.snapped
	s.snapped = &c
	s.placement = other.placement
	s.placement.curve = s.snapped
	s.placement.strokes = other.strokes.Clone()
}

// SnapFunction is the curvature transition of the spiral.
func (s *IntegratedSpiral) SnapFunction() snap.Function { return s.snapped.snap }

// RadiusInterval holds the radii at both ends of the complete spiral.
func (s *IntegratedSpiral) RadiusInterval() transit.Interval { return s.snapped.radius01 }

// BearingSweep holds the bearings at both ends of the complete spiral.
func (s *IntegratedSpiral) BearingSweep() transit.AngleSweep { return s.snapped.bearing01 }

// NominalLength is the length of the complete spiral in local coordinates.
func (s *IntegratedSpiral) NominalLength() float64 { return s.snapped.length }

// NominalStrokes returns a copy of the strokes of the complete spiral in local
// coordinates.
func (s *IntegratedSpiral) NominalStrokes() *stroke.LineString { return s.snapped.strokes.Clone() }

// CloneTransformed returns a copy placed by the spiral's transform followed
// by t.
func (s *IntegratedSpiral) CloneTransformed(t transit.Transform) Spiral {
	return &IntegratedSpiral{
		placement: s.placedBy(t),
		snapped:   s.snapped,
	}
}

// Clone returns an independent copy.
func (s *IntegratedSpiral) Clone() Spiral {
	c := &IntegratedSpiral{}
	c.SetFrom(s)
	return c
}

// IsAlmostEqual compares type, interval, placement and defining values.
func (s *IntegratedSpiral) IsAlmostEqual(other Spiral) bool {
	o, ok := other.(*IntegratedSpiral)
	if !ok || o == nil || s == nil {
		return false
	}
	return s.placement.isAlmostEqual(&o.placement)
}

func (s *IntegratedSpiral) String() string {
	return fmt.Sprintf("%s r=%s b=%s", s.placement.String(), s.snapped.radius01, s.snapped.bearing01)
}
