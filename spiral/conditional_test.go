package spiral

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/transit"
	"github.com/stretchr/testify/assert"
)

func TestConditionalPropertiesHelloWorld(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b0, b1 := transit.Degrees(10), transit.Degrees(25)
	r0, r1 := 0.0, 1000.0
	dataA := NewConditionalProperties(Length, r0, r1, b0, b1, 0)
	if !dataA.TryResolveAnySingleUnknown() {
		t.Fatalf("expected length to resolve for %s", dataA)
	}
	lengthA := dataA.Length()
	assert.InDelta(t, transit.Degrees(15)/0.0005, lengthA, 1e-9)
	dataB := NewConditionalProperties(Radius0, 0, r1, b0, b1, lengthA)
	dataC := NewConditionalProperties(Radius1, r0, 0, b0, b1, lengthA)
	dataD := NewConditionalProperties(Bearing0, r0, r1, 0, b1, lengthA)
	dataE := NewConditionalProperties(Bearing1, r0, r1, b0, 0, lengthA)
	for _, data := range []*ConditionalProperties{dataB, dataC, dataD, dataE} {
		assert.False(t, dataA.IsAlmostEqual(data), "%s unresolved", data.Missing())
	}
	assert.False(t, dataD.IsAlmostEqual(dataE))
	for _, data := range []*ConditionalProperties{dataB, dataC, dataD, dataE} {
		q := data.Missing()
		assert.True(t, data.TryResolveAnySingleUnknown(), "resolve %s", q)
		assert.True(t, dataA.IsAlmostEqual(data), "resolved %s: %s", q, data)
	}
	assert.False(t, dataA.IsAlmostEqual(nil))
}

func TestConditionalPropertiesRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, values := range [][5]float64{
		{0, 300, 0, transit.Degrees(9.5), 100},
		{400, 1200, transit.Degrees(3), transit.Degrees(13), 0},
		{-500, 0, transit.Degrees(2), transit.Degrees(-5), 0},
	} {
		complete, err := FromValues(values[0], values[1], values[2], values[3], math.NaN())
		if err != nil || !complete.TryResolveAnySingleUnknown() {
			t.Fatalf("cannot complete %v", values)
		}
		r0, r1, b0, b1, L := complete.Radius0(), complete.Radius1(), complete.Bearing0(),
			complete.Bearing1(), complete.Length()
		for q := Radius0; q <= Length; q++ {
			cp := NewConditionalProperties(q, r0, r1, b0, b1, L)
			if !cp.TryResolveAnySingleUnknown() {
				t.Fatalf("cannot resolve %s of %s", q, cp)
			}
			assert.True(t, complete.IsAlmostEqual(cp), "%s: %s against %s", q, cp, complete)
		}
	}
}

func TestConditionalPropertiesFailures(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := FromValues(0, math.NaN(), 0, math.NaN(), 100)
	assert.True(t, errors.Is(err, ErrTooManyUnknowns))

	complete, err := FromValues(0, 300, 0, 0.1, 100)
	assert.NoError(t, err)
	assert.True(t, complete.IsResolved())
	assert.False(t, complete.TryResolveAnySingleUnknown(), "nothing to resolve")

	straight := NewConditionalProperties(Length, 0, 0, 0, 0.1, 0)
	assert.False(t, straight.TryResolveAnySingleUnknown(), "no curvature, no length")
	assert.Equal(t, Length, straight.Missing())
	assert.True(t, math.IsNaN(straight.Length()))

	noLength := NewConditionalProperties(Radius1, 0, 0, 0, 0.1, 0)
	assert.False(t, noLength.TryResolveAnySingleUnknown(), "zero length")

	for q := Bearing0; q <= Length; q++ {
		circular := NewConditionalProperties(q, 1000, 1000, 0, 0.1, 100)
		before := *circular
		assert.False(t, circular.TryResolveAnySingleUnknown(), "equal radii, %s missing", q)
		assert.Equal(t, q, circular.Missing())
		assert.True(t, math.IsNaN(*circular.slot(q)))
		assert.Equal(t, before.String(), circular.String())
	}

	backwards := NewConditionalProperties(Length, 0, 300, 0.2, 0.1, 0)
	assert.False(t, backwards.TryResolveAnySingleUnknown(), "negative length")

	malformed := NewConditionalProperties(Bearing1, math.NaN(), 300, 0, 0, 100)
	assert.False(t, malformed.TryResolveAnySingleUnknown())
	assert.Equal(t, "bearing1", malformed.Missing().String())
}

func TestRadiusHelpers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 0.0, RadiusToCurvature(0))
	assert.Equal(t, 0.0, CurvatureToRadius(0))
	assert.InDelta(t, 0.0005, AverageCurvature(0, 1000), 1e-18)
	sweep := RadiusRadiusLengthToSweep(0, 10, 50)
	assert.InDelta(t, 2.5, sweep, 1e-15)
	assert.InDelta(t, 50.0, RadiusRadiusSweepToLength(0, 10, sweep), 1e-12)
	assert.InDelta(t, 10.0, RadiusLengthSweepToOtherRadius(0, 50, sweep), 1e-12)
	assert.Equal(t, 0.0, RadiusRadiusSweepToLength(0, 0, sweep))
}
