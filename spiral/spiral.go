/*
Package spiral implements transition spirals: curves easing from one
curvature to another, as used in road and rail alignment.

Two families share the Spiral interface. A DirectSpiral evaluates a closed
form or truncated series in local xy coordinates (package xyeval). An
IntegratedSpiral defines its curvature by a snap function over the bearing
sweep and integrates positions numerically.

Each spiral carries an active fraction interval and a placement transform.
For an active interval [f0,f1], global fraction g = f0 + f⋅(f1−f0); the k-th
derivative is scaled by (f1−f0)^k.

Spirals do not change after construction, except for an explicit
IntegratedSpiral.SetFrom, and may be read concurrently.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spiral

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/transit"
	"github.com/npillmayer/transit/stroke"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'spiral'
func tracer() tracing.Trace {
	return tracing.Select("spiral")
}

// Errors returned by the spiral factories. A failed construction never
// returns a spiral.
var (
	ErrUnknownSpiralType      = errors.New("unknown spiral type")
	ErrInconsistentProperties = errors.New("inconsistent transition properties")
	ErrDegenerate             = errors.New("degenerate transition")
)

// StrokeRadians is the bearing change per stroke of the cached strokes.
var StrokeRadians = 0.02

// MinStrokes is the minimum number of strokes for any spiral.
var MinStrokes = 4

// Spiral is the contract of all transition spirals. Fractions refer to the
// active interval.
type Spiral interface {
	SpiralType() string
	ActiveInterval() transit.Interval
	LocalToWorld() transit.Transform

	FractionToPoint(f float64) r3.Vec
	FractionToPointAndDerivative(f float64) transit.Ray
	FractionToPointAnd2Derivatives(f float64) transit.Plane
	FractionToPointAnd3Derivatives(f float64) (p, d1, d2, d3 r3.Vec)
	FractionToBearingRadians(f float64) float64
	FractionToCurvature(f float64) float64
	StartPoint() r3.Vec
	EndPoint() r3.Vec

	QuickLength() float64
	CurveLength() float64
	CurveLengthBetweenFractions(f0, f1 float64) float64

	Range() polyclip.Rectangle

	ComputeStrokeCountForOptions(opts stroke.Options) int
	EmitStrokes(target *stroke.LineString, opts *stroke.Options)
	ActiveStrokes() *stroke.LineString

	CloneTransformed(t transit.Transform) Spiral
	Clone() Spiral
	IsAlmostEqual(other Spiral) bool
}

// nominal is the local xy geometry of a complete spiral, parameterized by
// global fraction.
type nominal interface {
	// point and derivatives with respect to the global fraction
	eval(g float64) (p, d1, d2, d3 transit.Pair)
	bearing(g float64) float64
	curvature(g float64) float64
	isAlmostEqual(other nominal) bool
}

// placement maps the nominal geometry of a spiral to world coordinates and
// restricts it to the active interval. It carries everything common to all
// spirals.
type placement struct {
	spiralType   string
	active       transit.Interval
	localToWorld transit.Transform
	curve        nominal
	strokes      *stroke.LineString // active strokes in world coordinates
}

func activeInterval(active *transit.Interval) (transit.Interval, error) {
	if active == nil {
		return transit.UnitInterval(), nil
	}
	if err := active.Validate(); err != nil {
		return transit.Interval{}, err
	}
	return *active, nil
}

func newPlacement(spiralType string, active transit.Interval, t transit.Transform, curve nominal) placement {
	pl := placement{
		spiralType:   spiralType,
		active:       active,
		localToWorld: t,
		curve:        curve,
	}
	pl.refreshStrokes()
	return pl
}

// refreshStrokes rebuilds the active strokes, with a stroke for every
// StrokeRadians of bearing change.
func (pl *placement) refreshStrokes() {
	sweep := pl.curve.bearing(pl.active.X1) - pl.curve.bearing(pl.active.X0)
	n := max(MinStrokes, int(math.Ceil(math.Abs(sweep)/StrokeRadians)))
	pl.strokes = stroke.NewLineString()
	pl.emit(pl.strokes, n)
	if tracer().GetTraceLevel() >= tracing.LevelDebug {
		tracer().Debugf("%s strokes %s", pl.spiralType, stroke.AsString(pl.strokes))
	}
}

// placedBy returns a copy placed by the placement's transform followed by t.
// A rigid t moves the active strokes along; any other t changes curve
// distances, and strokes are rebuilt.
func (pl *placement) placedBy(t transit.Transform) placement {
	c := *pl
	c.localToWorld = pl.localToWorld.Combine(t)
	if t.Matrix.IsRigid() {
		c.strokes = pl.strokes.Transformed(t)
	} else {
		c.refreshStrokes()
	}
	return c
}

// emit appends n strokes. The first point is skipped if target already ends
// there.
func (pl *placement) emit(target *stroke.LineString, n int) {
	var d float64
	for i := 0; i <= n; i++ {
		f := float64(i) / float64(n)
		if i > 0 {
			d += pl.CurveLengthBetweenFractions(float64(i-1)/float64(n), f)
		}
		p := pl.FractionToPoint(f)
		if i == 0 && target.N() > 0 && transit.IsAlmostEqualVec(target.Point(target.N()-1), p) {
			continue
		}
		target.Knot(p, f, d)
	}
}

// SpiralType is the type name the spiral has been created with.
func (pl *placement) SpiralType() string { return pl.spiralType }

// ActiveInterval is the interval of global fractions in use.
func (pl *placement) ActiveInterval() transit.Interval { return pl.active }

// LocalToWorld is the placement transform.
func (pl *placement) LocalToWorld() transit.Transform { return pl.localToWorld }

// FractionToPoint maps an active fraction to a world point.
func (pl *placement) FractionToPoint(f float64) r3.Vec {
	p, _, _, _ := pl.curve.eval(pl.active.FractionToPoint(f))
	return pl.localToWorld.MultiplyPair(p)
}

// FractionToPointAndDerivative returns the world point with the derivative
// by active fraction.
func (pl *placement) FractionToPointAndDerivative(f float64) transit.Ray {
	p, d1, _, _ := pl.curve.eval(pl.active.FractionToPoint(f))
	delta := pl.active.Delta()
	return transit.Ray{
		Origin:    pl.localToWorld.MultiplyPair(p),
		Direction: pl.localToWorld.MultiplyPairVector(d1.Scaled(delta)),
	}
}

// FractionToPointAnd2Derivatives returns the osculating plane frame: origin,
// first and second derivative.
func (pl *placement) FractionToPointAnd2Derivatives(f float64) transit.Plane {
	p, d1, d2, _ := pl.curve.eval(pl.active.FractionToPoint(f))
	delta := pl.active.Delta()
	return transit.Plane{
		Origin:  pl.localToWorld.MultiplyPair(p),
		VectorU: pl.localToWorld.MultiplyPairVector(d1.Scaled(delta)),
		VectorV: pl.localToWorld.MultiplyPairVector(d2.Scaled(delta * delta)),
	}
}

func (pl *placement) FractionToPointAnd3Derivatives(f float64) (p, d1, d2, d3 r3.Vec) {
	lp, ld1, ld2, ld3 := pl.curve.eval(pl.active.FractionToPoint(f))
	delta := pl.active.Delta()
	t := pl.localToWorld
	return t.MultiplyPair(lp), t.MultiplyPairVector(ld1.Scaled(delta)),
		t.MultiplyPairVector(ld2.Scaled(delta * delta)),
		t.MultiplyPairVector(ld3.Scaled(delta * delta * delta))
}

// FractionToBearingRadians is the direction of travel in the xy plane of the
// world, for a placement rotating about the z axis.
func (pl *placement) FractionToBearingRadians(f float64) float64 {
	ex := pl.localToWorld.MultiplyVector(r3.Vec{X: 1})
	return pl.curve.bearing(pl.active.FractionToPoint(f)) + transit.P(ex.X, ex.Y).Angle()
}

// FractionToCurvature is the curvature in world coordinates, signed as the
// local curvature (positive turning left).
func (pl *placement) FractionToCurvature(f float64) float64 {
	g := pl.active.FractionToPoint(f)
	_, d1, d2, _ := pl.curve.eval(g)
	k := transit.CurvatureMagnitude(pl.localToWorld.MultiplyPairVector(d1),
		pl.localToWorld.MultiplyPairVector(d2))
	if pl.curve.curvature(g) < 0 {
		return -k
	}
	return k
}

func (pl *placement) StartPoint() r3.Vec { return pl.FractionToPoint(0) }

func (pl *placement) EndPoint() r3.Vec { return pl.FractionToPoint(1) }

// QuickLength is the length of the active strokes.
func (pl *placement) QuickLength() float64 {
	return pl.strokes.Length()
}

// CurveLength is the length of the active part in world coordinates.
func (pl *placement) CurveLength() float64 {
	return pl.CurveLengthBetweenFractions(0, 1)
}

// CurveLengthBetweenFractions integrates the magnitude of the world
// derivative, with a Gauss-Legendre rule per stroke. The result is not
// negative.
func (pl *placement) CurveLengthBetweenFractions(f0, f1 float64) float64 {
	if f0 == f1 {
		return 0
	}
	if f0 > f1 {
		f0, f1 = f1, f0
	}
	speed := func(f float64) float64 {
		return r3.Norm(pl.FractionToPointAndDerivative(f).Direction)
	}
	n := max(1, int(math.Ceil((f1-f0)*float64(pl.strokes.N()-1))))
	var length float64
	for i := 0; i < n; i++ {
		a := transit.Interpolate(f0, float64(i)/float64(n), f1)
		b := transit.Interpolate(f0, float64(i+1)/float64(n), f1)
		length += quad.Fixed(speed, a, b, gaussPoints, quad.Legendre{}, 0)
	}
	return length
}

// Range is the xy bounding rectangle of the active strokes in world
// coordinates.
func (pl *placement) Range() polyclip.Rectangle {
	return pl.strokes.XYRange()
}

// ComputeStrokeCountForOptions is the number of strokes needed to satisfy
// all criteria of opts.
func (pl *placement) ComputeStrokeCountForOptions(opts stroke.Options) int {
	sweep := pl.curve.bearing(pl.active.X1) - pl.curve.bearing(pl.active.X0)
	length := pl.QuickLength()
	k := math.Max(math.Abs(pl.FractionToCurvature(0)), math.Abs(pl.FractionToCurvature(1)))
	n := opts.ApplyAngleTol(MinStrokes, sweep, stroke.DefaultAngleTol)
	n = opts.ApplyChordTol(n, length, k)
	n = opts.ApplyMaxEdgeLength(n, length)
	return opts.ApplyMinStrokesPerPrimitive(n)
}

// EmitStrokes appends strokes to target. With opts nil the stroke count of
// the active strokes is used.
func (pl *placement) EmitStrokes(target *stroke.LineString, opts *stroke.Options) {
	n := pl.strokes.N() - 1
	if opts != nil {
		n = pl.ComputeStrokeCountForOptions(*opts)
	}
	pl.emit(target, n)
}

// ActiveStrokes returns a copy of the cached strokes of the active interval,
// in world coordinates.
func (pl *placement) ActiveStrokes() *stroke.LineString {
	return pl.strokes.Clone()
}

func (pl *placement) isAlmostEqual(other *placement) bool {
	return pl.spiralType == other.spiralType &&
		pl.active.IsAlmostEqual(other.active) &&
		pl.localToWorld.IsAlmostEqual(other.localToWorld) &&
		pl.curve.isAlmostEqual(other.curve)
}

func (pl *placement) String() string {
	return fmt.Sprintf("%s%s@%s", pl.spiralType, pl.active, pl.localToWorld)
}

// --- Gauss-Legendre ---------------------------------------------------------

const gaussPoints = 5

// Gauss-Legendre nodes and weights on [0,1]
var gaussX, gaussW = legendreUnit(gaussPoints)

func legendreUnit(n int) ([]float64, []float64) {
	x, w := make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, 0, 1)
	return x, w
}

// integratePair integrates a pair valued function from a to b; a > b is
// allowed.
func integratePair(f func(float64) transit.Pair, a, b float64) transit.Pair {
	h := b - a
	var sum transit.Pair
	for i := range gaussX {
		sum += f(a + h*gaussX[i]).Scaled(gaussW[i])
	}
	return sum.Scaled(h)
}
