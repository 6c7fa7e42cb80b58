package spiral

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/snap"
	"github.com/npillmayer/transit/stroke"
	"github.com/npillmayer/transit/xyeval"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVec(t *testing.T, expected, actual r3.Vec, msg string, args ...interface{}) {
	t.Helper()
	if !transit.IsAlmostEqualVec(expected, actual) {
		t.Errorf("expected %v, got %v: "+msg, append([]interface{}{expected, actual}, args...)...)
	}
}

func clothoid0To1000(t *testing.T, active *transit.Interval) *IntegratedSpiral {
	t.Helper()
	s, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(0, 1000), transit.SweepDegrees(0, 8),
		active, transit.Identity(), "")
	if err != nil {
		t.Fatalf("cannot create spiral: %v", err)
	}
	return s
}

func TestCreateAndPoke(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spiralA := clothoid0To1000(t, nil)
	assert.Equal(t, snap.ClothoidName, spiralA.SpiralType())
	spiralB, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(-1000, 0), transit.SweepDegrees(10, 3),
		nil, transit.Identity(), "clothoid")
	if err != nil {
		t.Fatalf("cannot create turning right spiral: %v", err)
	}
	assert.Less(t, spiralB.FractionToCurvature(0), 0.0)
	assert.InDelta(t, transit.Degrees(3), spiralB.FractionToBearingRadians(1), 1e-12)
	assert.False(t, spiralB.IsAlmostEqual(spiralA))
	assert.False(t, spiralA.IsAlmostEqual(nil))
	assert.False(t, spiralA.IsAlmostEqual((*IntegratedSpiral)(nil)))
	spiralB.SetFrom(spiralA)
	assert.True(t, spiralA.IsAlmostEqual(spiralB))
	assertVec(t, spiralA.EndPoint(), spiralB.EndPoint(), "end point after SetFrom")

	spiralD, err := CreateFrom4OutOf5("badTypeName", 0, 300, 0, math.NaN(), 100, nil, transit.Identity())
	assert.Nil(t, spiralD)
	assert.True(t, errors.Is(err, ErrUnknownSpiralType))
	spiralD1, err := CreateFrom4OutOf5("clothoid", 0, 300, 0, math.NaN(), 100, nil, transit.Identity())
	assert.NoError(t, err)
	assert.NotNil(t, spiralD1)
	spiralD2, err := CreateFrom4OutOf5("clothoid", 0, math.NaN(), 0, math.NaN(), 100, nil, transit.Identity())
	assert.Nil(t, spiralD2)
	assert.True(t, errors.Is(err, ErrTooManyUnknowns))
	spiralD3, err := CreateFrom4OutOf5("clothoid", 0, 300, 0, 1.0, 100, nil, transit.Identity())
	assert.Nil(t, spiralD3)
	assert.True(t, errors.Is(err, ErrInconsistentProperties))
	spiralD4, err := CreateFrom4OutOf5("sine", 0, 300, 0, 100.0/600.0, 100, nil, transit.Identity())
	assert.NoError(t, err)
	assert.Equal(t, "sine", spiralD4.SpiralType())
}

// Radii are signed: the mean curvature fixes both length and turning
// direction, and an end curvature keeps its sign.
func TestSignedRadii(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, err := CreateFrom4OutOf5("clothoid", -500, 1000, 0, math.NaN(), 100, nil, transit.Identity())
	if err != nil {
		t.Fatalf("cannot create spiral with inflection: %v", err)
	}
	assert.InDelta(t, 100.0, s.NominalLength(), 1e-9)
	assert.InDelta(t, -0.002, s.FractionToCurvature(0), 1e-12)
	assert.InDelta(t, 0.001, s.FractionToCurvature(1), 1e-12)
	assert.InDelta(t, -0.05, s.FractionToBearingRadians(1), 1e-12)
	assert.InDelta(t, 100.0, s.CurveLength(), 1e-9)

	_, err = CreateFrom4OutOf5("clothoid", -500, 1000, 0, 0.05, 100, nil, transit.Identity())
	assert.True(t, errors.Is(err, ErrInconsistentProperties), "sweep against mean curvature")
	_, err = CreateRadiusRadiusBearingBearing(transit.NewInterval(0, -1000), transit.SweepDegrees(0, 8),
		nil, transit.Identity(), "")
	assert.True(t, errors.Is(err, ErrInconsistentProperties), "right-turning radius, left sweep")
	_, err = CreateRadiusRadiusBearingBearing(transit.NewInterval(-1000, 1000), transit.SweepDegrees(0, 8),
		nil, transit.Identity(), "")
	assert.True(t, errors.Is(err, ErrDegenerate), "mean curvature 0")
	right, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(0, -1000), transit.SweepDegrees(0, -8),
		nil, transit.Identity(), "")
	if err != nil {
		t.Fatalf("cannot create right-turning spiral: %v", err)
	}
	assert.InDelta(t, -0.001, right.FractionToCurvature(1), 1e-12)
	assert.Less(t, right.EndPoint().Y, 0.0)
}

func TestDegenerateIntegrated(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(500, 500), transit.SweepDegrees(0, 8),
		nil, transit.Identity(), "")
	assert.True(t, errors.Is(err, ErrDegenerate), "equal radii")
	_, err = CreateRadiusRadiusBearingBearing(transit.NewInterval(0, 500), transit.SweepDegrees(8, 8),
		nil, transit.Identity(), "")
	assert.True(t, errors.Is(err, ErrDegenerate), "no sweep")
	iv := transit.NewInterval(0.4, 0.4)
	_, err = CreateRadiusRadiusBearingBearing(transit.NewInterval(0, 500), transit.SweepDegrees(0, 8),
		&iv, transit.Identity(), "")
	assert.True(t, errors.Is(err, transit.ErrDegenerateInterval))
	_, err = CreateRadiusRadiusBearingBearing(transit.NewInterval(0, 500), transit.SweepDegrees(0, 8),
		nil, transit.Identity(), "Clothoid")
	assert.True(t, errors.Is(err, ErrUnknownSpiralType), "type names are case-sensitive")
}

func TestCreateAndTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spiralA := clothoid0To1000(t, nil)
	for _, transform := range []transit.Transform{
		transit.Translation(2, 3, 1),
		transit.FixedPointAndMatrix(r3.Vec{X: 3, Y: 2, Z: 5}, transit.RotationZ(transit.Degrees(10))),
		transit.FixedPointAndMatrix(r3.Vec{X: 3, Y: 2, Z: 5}, transit.UniformScale(2)),
	} {
		spiralB := spiralA.CloneTransformed(transform)
		assertVec(t, transform.MultiplyPoint(spiralA.StartPoint()), spiralB.StartPoint(), "start point")
		assertVec(t, transform.MultiplyPoint(spiralA.EndPoint()), spiralB.EndPoint(), "end point")
		for _, f := range []float64{0.25, 0.35, 0.98} {
			assertVec(t, transform.MultiplyPoint(spiralA.FractionToPoint(f)), spiralB.FractionToPoint(f),
				"point at %g", f)
		}
		assert.True(t, spiralB.LocalToWorld().IsAlmostEqual(transform))
		assert.False(t, spiralA.IsAlmostEqual(spiralB))
	}
	scaled := spiralA.CloneTransformed(transit.FixedPointAndMatrix(r3.Vec{}, transit.UniformScale(2)))
	assert.InDelta(t, spiralA.FractionToCurvature(0.5)/2, scaled.FractionToCurvature(0.5), 1e-12)
	assert.InDelta(t, 2*spiralA.CurveLength(), scaled.CurveLength(), 1e-9)
	rotated := spiralA.CloneTransformed(transit.FixedPointAndMatrix(r3.Vec{}, transit.RotationZ(transit.Degrees(10))))
	assert.InDelta(t, spiralA.FractionToBearingRadians(0.5)+transit.Degrees(10),
		rotated.FractionToBearingRadians(0.5), 1e-12)

	options := stroke.ForCurves()
	options.MaxEdgeLength = 3.0
	numStroke := spiralA.ComputeStrokeCountForOptions(options)
	quick := spiralA.QuickLength()
	assert.LessOrEqual(t, float64(numStroke-1)*options.MaxEdgeLength, quick)
	assert.LessOrEqual(t, quick, float64(numStroke+1)*options.MaxEdgeLength)
}

func TestRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := clothoid0To1000(t, nil)
	box := s.Range()
	end := s.EndPoint()
	assert.InDelta(t, 0.0, box.Min.X, 1e-12)
	assert.InDelta(t, 0.0, box.Min.Y, 1e-12)
	assert.InDelta(t, end.X, box.Max.X, 1e-9)
	assert.InDelta(t, end.Y, box.Max.Y, 1e-9)
	moved := s.CloneTransformed(transit.Translation(10, -5, 0)).Range()
	assert.InDelta(t, box.Min.X+10, moved.Min.X, 1e-9)
	assert.InDelta(t, box.Max.Y-5, moved.Max.Y, 1e-9)
}

func TestPartialSpiralPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f0, f1 := 0.3, 0.9
	spiralA := clothoid0To1000(t, nil)
	spiralB := clothoid0To1000(t, &transit.Interval{X0: f0, X1: f1})
	for _, f := range []float64{0.25, 0.35, 0.98} {
		assertVec(t, spiralA.FractionToPoint(transit.Interpolate(f0, f, f1)), spiralB.FractionToPoint(f),
			"partial spiral at fraction %g", f)
	}
	assert.InDelta(t, spiralA.FractionToBearingRadians(f0), spiralB.FractionToBearingRadians(0), 1e-12)
	assert.InDelta(t, spiralA.FractionToCurvature(f0), spiralB.FractionToCurvature(0), 1e-12)
	assertVec(t, spiralA.FractionToPoint(f1), spiralB.EndPoint(), "end of partial spiral")
	assert.InDelta(t, spiralA.CurveLengthBetweenFractions(f0, f1), spiralB.CurveLength(), 1e-9)
}

func TestPartialSpiralDerivatives(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f0, f1 := 0.3, 0.9
	delta := f1 - f0
	spiralA := clothoid0To1000(t, nil)
	spiralB := clothoid0To1000(t, &transit.Interval{X0: f0, X1: f1})
	for _, f := range []float64{0.25, 0.35, 0.98} {
		g := transit.Interpolate(f0, f, f1)
		tangentA := spiralA.FractionToPointAndDerivative(g)
		tangentB := spiralB.FractionToPointAndDerivative(f)
		assertVec(t, tangentA.Origin, tangentB.Origin, "origin at %g", f)
		assertVec(t, r3.Scale(delta, tangentA.Direction), tangentB.Direction, "tangent at %g", f)
		planeA := spiralA.FractionToPointAnd2Derivatives(g)
		planeB := spiralB.FractionToPointAnd2Derivatives(f)
		assertVec(t, planeA.Origin, planeB.Origin, "origin at %g", f)
		assertVec(t, r3.Scale(delta, planeA.VectorU), planeB.VectorU, "first derivative at %g", f)
		assertVec(t, r3.Scale(delta*delta, planeA.VectorV), planeB.VectorV, "second derivative at %g", f)
		_, _, _, d3A := spiralA.FractionToPointAnd3Derivatives(g)
		_, _, _, d3B := spiralB.FractionToPointAnd3Derivatives(f)
		assertVec(t, r3.Scale(delta*delta*delta, d3A), d3B, "third derivative at %g", f)
	}
}

func TestIntegratedDerivatives(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, name := range snap.Names() {
		s, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(0, 1000), transit.SweepDegrees(0, 8),
			nil, transit.Identity(), name)
		if err != nil {
			t.Fatalf("cannot create %s spiral: %v", name, err)
		}
		L := s.NominalLength()
		for _, f := range []float64{0.1, 0.37, 0.62, 0.81} {
			p, d1, d2, d3 := s.FractionToPointAnd3Derivatives(f)
			assert.Equal(t, p, s.FractionToPoint(f))
			assert.InDelta(t, L, r3.Norm(d1), 1e-9, "%s: speed is length", name)
			assert.InDelta(t, 0.0, r3.Dot(d1, d2), 1e-6, "%s: d2 normal to d1", name)
			h := 1e-5
			fd1 := r3.Scale(1/(2*h), r3.Sub(s.FractionToPoint(f+h), s.FractionToPoint(f-h)))
			assertVec(t, d1, fd1, "%s: first derivative at %g", name, f)
			h = 1e-4
			_, _, d2p, _ := s.FractionToPointAnd3Derivatives(f + h)
			_, _, d2m, _ := s.FractionToPointAnd3Derivatives(f - h)
			fd3 := r3.Scale(1/(2*h), r3.Sub(d2p, d2m))
			assert.InDelta(t, d3.X, fd3.X, 1e-4, "%s: third derivative x at %g", name, f)
			assert.InDelta(t, d3.Y, fd3.Y, 1e-4, "%s: third derivative y at %g", name, f)
		}
		assert.InDelta(t, transit.Degrees(8), s.FractionToBearingRadians(1), 1e-12, name)
		assert.InDelta(t, 0.001, s.FractionToCurvature(1), 1e-12, name)
		assert.InDelta(t, 0.0, s.FractionToCurvature(0), 1e-12, name)
		assert.InDelta(t, L, s.CurveLength(), 1e-9, name)
		assert.LessOrEqual(t, s.QuickLength(), s.CurveLength()+1e-9, name)
	}
}

// Truncated clothoid series have to approach the integrated clothoid with
// growing order.
func TestClothoidTermsAgainstIntegrated(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	distance1 := 100.0
	for _, radius1 := range []float64{200, 400, 1000} {
		s, err := CreateFrom4OutOf5("clothoid", 0, radius1, 0, math.NaN(), distance1, nil, transit.Identity())
		if err != nil {
			t.Fatalf("cannot create clothoid for R = %g: %v", radius1, err)
		}
		c := 1 / (2 * radius1 * distance1)
		for _, d := range []float64{0, 10, 30, 50, 61, 67, 72, 90, 100} {
			f := d / distance1
			p := s.FractionToPoint(f)
			error0 := 1.0
			for _, n := range []int{1, 2, 3, 4, 5, 6, 8} {
				e := xyeval.NewClothoidSeries(distance1, c, n, n)
				q := xyeval.FractionToPoint(e, f)
				errorN := math.Hypot(q.X()-p.X, q.Y()-p.Y)
				assert.LessOrEqual(t, errorN, error0+1e-9, "R = %g, d = %g, order %d", radius1, d, n)
				error0 = errorN
			}
			assert.Less(t, error0, 1e-9, "R = %g, d = %g", radius1, d)
		}
	}
}

func TestIntegratedTypes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r1 := 500.0
	length := transit.Degrees(8) / AverageCurvature(0, r1)
	var spirals []Spiral
	for _, spiralType := range []string{"clothoid", "bloss", "biquadratic", "sine", "cosine", "czech", "arema"} {
		for _, active := range []transit.Interval{transit.UnitInterval(), transit.NewInterval(0.35, 0.75)} {
			if s, err := CreateRadiusRadiusBearingBearing(transit.NewInterval(0, r1), transit.SweepDegrees(0, 8),
				&active, transit.Identity(), spiralType); err == nil {
				spirals = append(spirals, s)
			} else if s, err := CreateFromLengthAndRadius(spiralType, 0, r1, math.NaN(), math.NaN(), length,
				&active, transit.Identity()); err == nil {
				spirals = append(spirals, s)
			}
		}
	}
	assert.Len(t, spirals, 14)
	for _, s := range spirals {
		ls := stroke.NewLineString()
		s.EmitStrokes(ls, nil)
		assert.GreaterOrEqual(t, ls.N(), MinStrokes+1, s.SpiralType())
		assertVec(t, s.StartPoint(), ls.Point(0), "%s: first stroke point", s.SpiralType())
		assertVec(t, s.EndPoint(), ls.Point(ls.N()-1), "%s: last stroke point", s.SpiralType())
		assert.InDelta(t, s.CurveLength(), ls.Distance(ls.N()-1), 1e-9, s.SpiralType())
		assert.Equal(t, ls.N(), s.ActiveStrokes().N())
	}
}

func TestEmitStrokes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	first := clothoid0To1000(t, &transit.Interval{X0: 0, X1: 0.5})
	second := clothoid0To1000(t, &transit.Interval{X0: 0.5, X1: 1})
	options := stroke.Options{MaxEdgeLength: 10}
	n1 := first.ComputeStrokeCountForOptions(options)
	n2 := second.ComputeStrokeCountForOptions(options)
	ls := stroke.NewLineString()
	first.EmitStrokes(ls, &options)
	second.EmitStrokes(ls, &options)
	assert.Equal(t, n1+1+n2, ls.N(), "shared point emitted once")
	box := ls.XYRange()
	end := second.EndPoint()
	assert.InDelta(t, end.X, box.Max.X, 1e-9)
	assert.InDelta(t, end.Y, box.Max.Y, 1e-9)
	assert.InDelta(t, 0.0, box.Min.X, 1e-12)
}

func TestSampleConstruction(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	radius1, length1 := 300.0, 100.0
	s, err := CreateFrom4OutOf5("clothoid", 0, radius1, 0, math.NaN(), length1, nil, transit.Identity())
	if err != nil {
		t.Fatalf("cannot create spiral: %v", err)
	}
	tangent := s.FractionToPointAndDerivative(1.0)
	assert.InDelta(t, length1, r3.Norm(tangent.Direction), 1e-9)
	assert.InDelta(t, length1/(2*radius1), math.Atan2(tangent.Direction.Y, tangent.Direction.X), 1e-12)
	assert.InDelta(t, 1/radius1, s.FractionToCurvature(1), 1e-12)
	// the arc leaving the spiral has its center on the left normal
	normal := r3.Unit(r3.Vec{X: -tangent.Direction.Y, Y: tangent.Direction.X})
	center := r3.Add(tangent.Origin, r3.Scale(radius1, normal))
	assert.Greater(t, center.Y, radius1)
}
