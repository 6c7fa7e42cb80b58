package stroke

import (
	"math"

	"github.com/npillmayer/transit"
)

// DefaultAngleTol is the turning angle per stroke used when Options carry none.
var DefaultAngleTol = 15 * transit.Deg2Rad

// Options control the number of strokes for a curve. Zero values switch a
// criterion off.
type Options struct {
	AngleTol               float64 // max turning angle per stroke, radians
	ChordTol               float64 // max distance between chord and curve
	MaxEdgeLength          float64 // max chord length
	MinStrokesPerPrimitive int
}

// ForCurves returns options suitable for smooth curves.
func ForCurves() Options {
	return Options{AngleTol: DefaultAngleTol}
}

// ApplyAngleTol raises minCount so that each stroke turns by at most the
// angle tolerance. defaultTol is used if the options carry no angle tolerance.
func (o Options) ApplyAngleTol(minCount int, sweepRadians, defaultTol float64) int {
	tol := o.AngleTol
	if tol <= 0 {
		tol = defaultTol
	}
	if tol <= 0 {
		return minCount
	}
	return max(minCount, int(math.Ceil(math.Abs(sweepRadians)/tol)))
}

// ApplyMaxEdgeLength raises minCount so that no stroke exceeds MaxEdgeLength.
func (o Options) ApplyMaxEdgeLength(minCount int, length float64) int {
	if o.MaxEdgeLength <= 0 {
		return minCount
	}
	return max(minCount, int(math.Ceil(math.Abs(length)/o.MaxEdgeLength)))
}

// ApplyChordTol raises minCount so that strokes on a curve of the given
// maximal curvature stay within ChordTol of the curve. Uses the circle
// estimate h²/(8r) for the chord error of a chord of length h.
func (o Options) ApplyChordTol(minCount int, length, curvature float64) int {
	curvature = math.Abs(curvature)
	if o.ChordTol <= 0 || transit.Is0(curvature) {
		return minCount
	}
	h := math.Sqrt(8 * o.ChordTol / curvature)
	return max(minCount, int(math.Ceil(math.Abs(length)/h)))
}

// ApplyMinStrokesPerPrimitive raises minCount to MinStrokesPerPrimitive.
func (o Options) ApplyMinStrokesPerPrimitive(minCount int) int {
	return max(minCount, o.MinStrokesPerPrimitive)
}
