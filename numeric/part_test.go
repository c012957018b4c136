// SPDX-License-Identifier: MIT

package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/probcalc/cluster"
	"github.com/katalvlaran/probcalc/numeric"
)

func mustPart(t *testing.T, p, mean, square, lo, hi float64) numeric.Part {
	t.Helper()
	pt, err := numeric.NewPart(math.Log(p), mean, square, lo, hi)
	require.NoError(t, err)
	return pt
}

func mustPoint(t *testing.T, value, p float64) numeric.Part {
	t.Helper()
	pt, err := numeric.PointPart(value, p)
	require.NoError(t, err)
	return pt
}

func TestPart_String(t *testing.T) {
	pt, err := numeric.NewPart(-1, 3, 9, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "Part(logp=-1, mean=3, square=9, min=2, max=4)", pt.String())
}

func TestNewPart_ClampsRounding(t *testing.T) {
	pt, err := numeric.NewPart(0, 2+1e-12, 4, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, pt.Mean())

	// square one ulp-ish below mean² is lifted onto the envelope
	pt, err = numeric.NewPart(0, 1.5, 2.25-1e-13, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.25, pt.Square())
}

func TestNewPart_Errors(t *testing.T) {
	cases := []struct {
		name                           string
		logp, mean, square, minV, maxV float64
		want                           error
	}{
		{"mean above max", 0, 3, 9, 1, 2, cluster.ErrInvariantViolation},
		{"square below mean²", 0, 1.5, 2, 1, 2, cluster.ErrInvariantViolation},
		{"square above envelope", 0, 1.5, 3, 1, 2, cluster.ErrInvariantViolation},
		{"min above max", 0, 1, 1, 2, 1, cluster.ErrInvariantViolation},
		{"NaN logp", math.NaN(), 1, 1, 1, 1, cluster.ErrInvalidArgument},
		{"+Inf logp", math.Inf(1), 1, 1, 1, 1, cluster.ErrInvalidArgument},
		{"NaN mean", 0, math.NaN(), 1, 1, 1, cluster.ErrInvalidArgument},
		{"Inf max", 0, 1, 1, 1, math.Inf(1), cluster.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := numeric.NewPart(tc.logp, tc.mean, tc.square, tc.minV, tc.maxV)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := numeric.PointPart(1, -0.5)
	assert.ErrorIs(t, err, cluster.ErrInvalidArgument)

	// zero mass is a legal part
	pt, err := numeric.PointPart(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pt.Mass())
}

func TestPart_Add(t *testing.T) {
	a := mustPart(t, 0.1, 3, 9, 2, 4)
	b := mustPart(t, 0.2, 8, 64, 7, 10)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.02, sum.Mass(), 1e-15)
	assert.Equal(t, 11.0, sum.Mean())
	assert.Equal(t, 121.0, sum.Square())
	assert.Equal(t, 9.0, sum.Min())
	assert.Equal(t, 14.0, sum.Max())
}

func TestPart_MultiplySigned(t *testing.T) {
	a := mustPart(t, 0.5, 0, 1, -2, 3)
	b := mustPart(t, 0.5, 1, 2, -1, 4)

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assert.Equal(t, -8.0, prod.Min())
	assert.Equal(t, 12.0, prod.Max())
	assert.Equal(t, 0.0, prod.Mean())
	assert.Equal(t, 2.0, prod.Square())
	assert.InDelta(t, 0.25, prod.Mass(), 1e-15)
}

func TestPart_OutcomesSymmetric(t *testing.T) {
	pt := mustPart(t, 0.5, 1, 5.0/3, 0, 2)
	out := pt.Outcomes()
	require.Len(t, out, 3)
	for i, want := range []float64{0, 1, 2} {
		assert.Equal(t, want, out[i].Value)
		assert.InDelta(t, 1.0/6, out[i].P, 1e-12)
	}
}

// TestPart_OutcomesAsymmetric recovers two unequal endpoint masses; the
// max mass scales with p like the min mass does.
func TestPart_OutcomesAsymmetric(t *testing.T) {
	m, err := numeric.Merge(mustPoint(t, 0, 0.1), mustPoint(t, 3, 0.3))
	require.NoError(t, err)

	out := m.Outcomes()
	require.Len(t, out, 2)
	assert.Equal(t, 0.0, out[0].Value)
	assert.InDelta(t, 0.1, out[0].P, 1e-12)
	assert.Equal(t, 3.0, out[1].Value)
	assert.InDelta(t, 0.3, out[1].P, 1e-12)
}

func TestPart_OutcomesRoundTrip(t *testing.T) {
	parts := []numeric.Part{
		mustPart(t, 0.1, 1, 5.0/3, 0, 2),
		mustPart(t, 3.0/7, 2, 4.5, 1, 4),
		mustPart(t, 1.0/3, -0.5, 1, -2, 1),
	}
	for _, pt := range parts {
		var p, ex, exx float64
		for _, o := range pt.Outcomes() {
			p += o.P
			ex += o.P * o.Value
			exx += o.P * o.Value * o.Value
		}
		assert.InDelta(t, pt.Mass(), p, 1e-12, pt.String())
		assert.InDelta(t, pt.Mean(), ex/p, 1e-12, pt.String())
		assert.InDelta(t, pt.Square(), exx/p, 1e-12, pt.String())
	}
}

func TestPart_OutcomesZeroMass(t *testing.T) {
	assert.Empty(t, mustPoint(t, 4, 0).Outcomes())
}

func TestMerge(t *testing.T) {
	m, err := numeric.Merge(mustPoint(t, 1, 0.25), mustPoint(t, 2, 0.25), mustPoint(t, 5, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 1, m.Mass(), 1e-15)
	assert.InDelta(t, 3.25, m.Mean(), 1e-12)
	assert.InDelta(t, 0.25+1+12.5, m.Square(), 1e-12)
	assert.Equal(t, 1.0, m.Min())
	assert.Equal(t, 5.0, m.Max())

	_, err = numeric.Merge()
	assert.ErrorIs(t, err, cluster.ErrEmptyMerge)
}

func TestMerge_ZeroMass(t *testing.T) {
	m, err := numeric.Merge(mustPoint(t, 1, 0), mustPoint(t, 3, 0))
	require.NoError(t, err)
	assert.True(t, math.IsInf(m.LogP(), -1))
	assert.Equal(t, 2.0, m.Mean())
	assert.Equal(t, 5.0, m.Square())
}

// TestMerge_TinyMasses keeps masses far below the float64 range apart.
func TestMerge_TinyMasses(t *testing.T) {
	a, err := numeric.NewPart(-2000, 1, 1, 1, 1)
	require.NoError(t, err)
	b, err := numeric.NewPart(-2000+math.Log(3), 5, 25, 5, 5)
	require.NoError(t, err)

	m, err := numeric.Merge(a, b)
	require.NoError(t, err)
	assert.InDelta(t, -2000+math.Log(4), m.LogP(), 1e-12)
	assert.InDelta(t, 4, m.Mean(), 1e-12)
}

func TestPart_PartialLogCDFEdges(t *testing.T) {
	pt := mustPart(t, 0.5, 1, 5.0/3, 0, 2)

	b := pt.PartialLogCDF(-0.5)
	assert.True(t, math.IsInf(b.Lower, -1))
	assert.True(t, math.IsInf(b.Upper, -1))

	b = pt.PartialLogCDF(2)
	assert.InDelta(t, math.Log(0.5), b.Lower, 1e-15)
	assert.InDelta(t, math.Log(0.5), b.Upper, 1e-15)

	// point mass at the mean of a wide range
	flat := mustPart(t, 0.5, 1, 1, 0, 2)
	lin := flat.PartialCDF(0.5)
	assert.Equal(t, 0.0, lin.Lower)
	assert.Equal(t, 0.0, lin.Upper)
	lin = flat.PartialCDF(1)
	assert.InDelta(t, 0.5, lin.Lower, 1e-15)
}

// TestPart_PartialCDFContainsTruth checks the bound against the points a
// part was merged from.
func TestPart_PartialCDFContainsTruth(t *testing.T) {
	points := []numeric.Outcome{{Value: 0, P: 0.2}, {Value: 1, P: 0.5}, {Value: 4, P: 0.3}}
	parts := make([]numeric.Part, len(points))
	for i, o := range points {
		parts[i] = mustPoint(t, o.Value, o.P)
	}
	m, err := numeric.Merge(parts...)
	require.NoError(t, err)

	prevLower, prevUpper := 0.0, 0.0
	for v := -0.5; v <= 4.5; v += 0.125 {
		var truth float64
		for _, o := range points {
			if o.Value <= v {
				truth += o.P
			}
		}
		b := m.PartialCDF(v)
		assert.LessOrEqual(t, b.Lower, truth+1e-12, "value %g", v)
		assert.GreaterOrEqual(t, b.Upper, truth-1e-12, "value %g", v)
		assert.GreaterOrEqual(t, b.Lower, prevLower-1e-12, "value %g", v)
		assert.GreaterOrEqual(t, b.Upper, prevUpper-1e-12, "value %g", v)
		prevLower, prevUpper = b.Lower, b.Upper
	}
}

func TestPart_Uncertainty(t *testing.T) {
	assert.Equal(t, 0.0, mustPoint(t, 2, 1).Uncertainty(false))

	m, err := numeric.Merge(mustPoint(t, 0, 0.5), mustPoint(t, 1, 0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Uncertainty(true))
	assert.Greater(t, m.Uncertainty(false), 0.0)
}

func TestPart_MergeCost(t *testing.T) {
	a := mustPoint(t, 1, 0.5)
	same := mustPoint(t, 1, 0.25)
	far := mustPoint(t, 9, 0.5)

	merged, cost, err := a.MergeCost(same)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
	assert.InDelta(t, 0.75, merged.Mass(), 1e-15)

	_, cost, err = a.MergeCost(far)
	require.NoError(t, err)
	assert.Greater(t, cost, 0.0)
}

func TestPart_Equal(t *testing.T) {
	a := mustPart(t, 0.5, 1, 5.0/3, 0, 2)
	b := mustPart(t, 0.5, 1+1e-13, 5.0/3, 0, 2)
	c := mustPart(t, 0.25, 1, 5.0/3, 0, 2)
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
