/*
Package stroke holds piecewise linear approximations of curves.

A LineString is built knot by knot, each knot carrying the curve fraction and
the distance along the curve it was sampled at:

	ls := stroke.NewLineString().Knot(p0, 0, 0).Knot(p1, 0.5, 12.3).Knot(p2, 1, 24.6)

Options decide how many strokes a curve is split into.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package stroke

import (
	"fmt"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/transit"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'stroke'
func tracer() tracing.Trace {
	return tracing.Select("stroke")
}

// LineString is a polyline with a (fraction, distance) parameter pair per knot.
type LineString struct {
	points []r3.Vec
	params []transit.Pair // x = curve fraction, y = distance along the curve
}

// NewLineString creates an empty line string, to be extended by subsequent
// builder calls.
func NewLineString() *LineString {
	return &LineString{}
}

// Knot appends a point with its curve fraction and distance.
// Part of builder functionality.
func (ls *LineString) Knot(p r3.Vec, fraction, distance float64) *LineString {
	ls.points = append(ls.points, p)
	ls.params = append(ls.params, transit.P(fraction, distance))
	return ls
}

// N is the number of knots.
func (ls *LineString) N() int {
	if ls == nil {
		return 0
	}
	return len(ls.points)
}

// Point returns knot i.
func (ls *LineString) Point(i int) r3.Vec {
	return ls.points[i]
}

// Param returns the (fraction, distance) pair of knot i.
func (ls *LineString) Param(i int) transit.Pair {
	return ls.params[i]
}

// Fraction returns the curve fraction of knot i.
func (ls *LineString) Fraction(i int) float64 {
	return ls.params[i].X()
}

// Distance returns the curve distance of knot i.
func (ls *LineString) Distance(i int) float64 {
	return ls.params[i].Y()
}

// Length is the sum of all chord lengths.
func (ls *LineString) Length() float64 {
	var l float64
	for i := 1; i < ls.N(); i++ {
		l += r3.Norm(r3.Sub(ls.points[i], ls.points[i-1]))
	}
	return l
}

// Clone returns an independent copy.
func (ls *LineString) Clone() *LineString {
	return &LineString{
		points: append([]r3.Vec(nil), ls.points...),
		params: append([]transit.Pair(nil), ls.params...),
	}
}

// Transformed returns a copy with all knots transformed. Parameters are
// copied unchanged, so distances stay valid for rigid transforms only.
func (ls *LineString) Transformed(t transit.Transform) *LineString {
	c := ls.Clone()
	for i, p := range c.points {
		c.points[i] = t.MultiplyPoint(p)
	}
	return c
}

// Footprint is the projection of the line string onto the xy plane.
func (ls *LineString) Footprint() polyclip.Contour {
	c := make(polyclip.Contour, 0, ls.N())
	for _, p := range ls.points {
		c = append(c, polyclip.Point{X: p.X, Y: p.Y})
	}
	return c
}

// XYRange is the bounding rectangle of the footprint.
func (ls *LineString) XYRange() polyclip.Rectangle {
	if ls.N() == 0 {
		tracer().Debugf("xy range of empty line string")
		return polyclip.Rectangle{}
	}
	return ls.Footprint().BoundingBox()
}

// AsString returns a line string as a (debugging) string.
func AsString(ls *LineString) string {
	var b strings.Builder
	for i := 0; i < ls.N(); i++ {
		if i > 0 {
			b.WriteString(" -- ")
		}
		p := ls.points[i]
		b.WriteString(fmt.Sprintf("(%.4g,%.4g,%.4g)@%.4g", p.X, p.Y, p.Z, ls.Fraction(i)))
	}
	return b.String()
}
