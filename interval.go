package transit

import (
	"errors"
	"fmt"
)

// ErrDegenerateInterval flags an interval with identical ends.
var ErrDegenerateInterval = errors.New("interval must not be degenerate")

// Interval is an ordered pair of numbers. It is used for active fraction
// intervals of partial spirals as well as for start and end radius.
// X0 > X1 is allowed.
type Interval struct {
	X0, X1 float64
}

// NewInterval creates an interval [x0 … x1].
func NewInterval(x0, x1 float64) Interval {
	return Interval{X0: x0, X1: x1}
}

// UnitInterval is [0 … 1].
func UnitInterval() Interval {
	return Interval{X0: 0, X1: 1}
}

// FractionToPoint maps a fraction to interval coordinates.
func (iv Interval) FractionToPoint(f float64) float64 {
	return Interpolate(iv.X0, f, iv.X1)
}

// Delta is X1-X0.
func (iv Interval) Delta() float64 {
	return iv.X1 - iv.X0
}

// IsDegenerate is true if both ends coincide.
func (iv Interval) IsDegenerate() bool {
	return iv.X0 == iv.X1
}

// Validate returns ErrDegenerateInterval for degenerate intervals.
func (iv Interval) Validate() error {
	if iv.IsDegenerate() {
		return fmt.Errorf("%w: [%g … %g]", ErrDegenerateInterval, iv.X0, iv.X1)
	}
	return nil
}

// IsAlmostEqual compares both ends with relative tolerance.
func (iv Interval) IsAlmostEqual(other Interval) bool {
	return IsAlmostEqualNumber(iv.X0, other.X0) && IsAlmostEqualNumber(iv.X1, other.X1)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g … %g]", iv.X0, iv.X1)
}

// AngleSweep is a start and end angle in radians.
type AngleSweep struct {
	StartRadians, EndRadians float64
}

// SweepDegrees creates an angle sweep from degrees.
func SweepDegrees(start, end float64) AngleSweep {
	return AngleSweep{StartRadians: Degrees(start), EndRadians: Degrees(end)}
}

// SweepRadians is EndRadians-StartRadians.
func (a AngleSweep) SweepRadians() float64 {
	return a.EndRadians - a.StartRadians
}

// IsAlmostEqual compares start and end with SmallAngleRadians.
func (a AngleSweep) IsAlmostEqual(other AngleSweep) bool {
	return IsAlmostEqualRadians(a.StartRadians, other.StartRadians) &&
		IsAlmostEqualRadians(a.EndRadians, other.EndRadians)
}

func (a AngleSweep) String() string {
	return fmt.Sprintf("[%g° … %g°]", a.StartRadians/Deg2Rad, a.EndRadians/Deg2Rad)
}
