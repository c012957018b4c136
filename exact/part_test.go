// SPDX-License-Identifier: MIT

package exact_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/probcalc/cluster"
	"github.com/katalvlaran/probcalc/exact"
)

func r(num, den int64) *big.Rat { return big.NewRat(num, den) }

func mustPart(t *testing.T, p, mean, square, lo, hi *big.Rat) exact.Part {
	t.Helper()
	pt, err := exact.NewPart(p, mean, square, lo, hi)
	require.NoError(t, err)
	return pt
}

func assertRat(t *testing.T, want, got *big.Rat, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, want.RatString(), got.RatString(), msgAndArgs...)
}

func TestPart_String(t *testing.T) {
	pt := mustPart(t, r(1, 10), r(3, 1), r(9, 1), r(2, 1), r(4, 1))
	assert.Equal(t, "Part(p=1/10, mean=3, square=9, min=2, max=4)", pt.String())
}

func TestPart_Equal(t *testing.T) {
	a := mustPart(t, r(1, 10), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(1, 10), r(5, 5), r(1, 1), r(1, 1), r(1, 1))
	c := mustPart(t, r(1, 5), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestPart_Add(t *testing.T) {
	a := mustPart(t, r(1, 10), r(3, 1), r(9, 1), r(2, 1), r(4, 1))
	b := mustPart(t, r(2, 10), r(8, 1), r(64, 1), r(7, 1), r(10, 1))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assertRat(t, r(2, 100), sum.P())
	assertRat(t, r(11, 1), sum.Mean())
	assertRat(t, r(121, 1), sum.Square())
	assertRat(t, r(9, 1), sum.Min())
	assertRat(t, r(14, 1), sum.Max())
}

func TestPart_Multiply(t *testing.T) {
	a := mustPart(t, r(1, 10), r(3, 1), r(9, 1), r(2, 1), r(4, 1))
	b := mustPart(t, r(2, 10), r(8, 1), r(64, 1), r(7, 1), r(10, 1))

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assertRat(t, r(2, 100), prod.P())
	assertRat(t, r(24, 1), prod.Mean())
	assertRat(t, r(576, 1), prod.Square())
	assertRat(t, r(14, 1), prod.Min())
	assertRat(t, r(40, 1), prod.Max())
}

// TestPart_MultiplySigned takes bounds from all four corner products.
func TestPart_MultiplySigned(t *testing.T) {
	a := mustPart(t, r(1, 2), r(0, 1), r(1, 1), r(-2, 1), r(3, 1))
	b := mustPart(t, r(1, 2), r(1, 1), r(2, 1), r(-1, 1), r(4, 1))

	prod, err := a.Multiply(b)
	require.NoError(t, err)
	assertRat(t, r(-8, 1), prod.Min())
	assertRat(t, r(12, 1), prod.Max())
	assertRat(t, r(0, 1), prod.Mean())
	assertRat(t, r(2, 1), prod.Square())
}

func TestPart_Outcomes(t *testing.T) {
	pt := mustPart(t, r(1, 10), r(1, 1), r(5, 3), r(0, 1), r(2, 1))
	out := pt.Outcomes()
	require.Len(t, out, 3)
	for i, want := range []int64{0, 1, 2} {
		assertRat(t, r(want, 1), out[i].Value)
		assertRat(t, r(1, 30), out[i].P)
	}
}

// TestPart_OutcomesAfterMerge drops the zero-mass mean point.
func TestPart_OutcomesAfterMerge(t *testing.T) {
	a := mustPart(t, r(1, 10), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(1, 5), r(2, 1), r(4, 1), r(2, 1), r(2, 1))
	m, err := exact.Merge(a, b)
	require.NoError(t, err)

	out := m.Outcomes()
	require.Len(t, out, 2)
	assertRat(t, r(1, 1), out[0].Value)
	assertRat(t, r(1, 10), out[0].P)
	assertRat(t, r(2, 1), out[1].Value)
	assertRat(t, r(1, 5), out[1].P)
}

func TestPart_OutcomesSinglePoint(t *testing.T) {
	pt := mustPart(t, r(1, 4), r(5, 1), r(25, 1), r(5, 1), r(5, 1))
	out := pt.Outcomes()
	require.Len(t, out, 1)
	assertRat(t, r(5, 1), out[0].Value)
	assertRat(t, r(1, 4), out[0].P)
}

// TestPart_OutcomesRoundTrip recomputes both moments from the points.
func TestPart_OutcomesRoundTrip(t *testing.T) {
	parts := []exact.Part{
		mustPart(t, r(1, 10), r(1, 1), r(5, 3), r(0, 1), r(2, 1)),
		mustPart(t, r(3, 7), r(2, 1), r(9, 2), r(1, 1), r(4, 1)),
		mustPart(t, r(1, 3), r(-1, 2), r(1, 1), r(-2, 1), r(1, 1)),
		mustPart(t, r(1, 2), r(3, 2), r(9, 4), r(1, 1), r(2, 1)),
	}
	for _, pt := range parts {
		mass, ex, exx := new(big.Rat), new(big.Rat), new(big.Rat)
		for _, o := range pt.Outcomes() {
			mass.Add(mass, o.P)
			ex.Add(ex, new(big.Rat).Mul(o.P, o.Value))
			exx.Add(exx, new(big.Rat).Mul(o.P, new(big.Rat).Mul(o.Value, o.Value)))
		}
		assertRat(t, pt.P(), mass, pt.String())
		assertRat(t, pt.Mean(), ex.Quo(ex, mass), pt.String())
		assertRat(t, pt.Square(), exx.Quo(exx, mass), pt.String())
	}
}

func TestPart_Merge(t *testing.T) {
	a := mustPart(t, r(1, 10), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(1, 5), r(2, 1), r(4, 1), r(2, 1), r(2, 1))
	m, err := exact.Merge(a, b)
	require.NoError(t, err)

	assertRat(t, r(3, 10), m.P())
	assertRat(t, r(5, 3), m.Mean())
	assertRat(t, r(3, 1), m.Square())
	assertRat(t, r(1, 1), m.Min())
	assertRat(t, r(2, 1), m.Max())
}

func TestPart_MergeEmpty(t *testing.T) {
	_, err := exact.Merge()
	assert.ErrorIs(t, err, cluster.ErrEmptyMerge)
}

func TestPart_MergeZeroMass(t *testing.T) {
	a := mustPart(t, r(0, 1), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(0, 1), r(3, 1), r(9, 1), r(3, 1), r(3, 1))
	m, err := exact.Merge(a, b)
	require.NoError(t, err)
	assertRat(t, r(0, 1), m.P())
	assertRat(t, r(2, 1), m.Mean())
	assert.Empty(t, m.Outcomes())
}

// TestPart_MergeLimited bounds denominators and keeps the invariant.
func TestPart_MergeLimited(t *testing.T) {
	a := mustPart(t, r(1, 7919), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(1, 7907), r(2, 1), r(4, 1), r(2, 1), r(2, 1))
	c := mustPart(t, r(1, 7901), r(5, 1), r(25, 1), r(5, 1), r(5, 1))

	maxDen := big.NewInt(1000)
	m, err := exact.MergeLimited(maxDen, a, b, c)
	require.NoError(t, err)
	assert.LessOrEqual(t, m.P().Denom().Cmp(maxDen), 0)
	assert.LessOrEqual(t, m.Mean().Denom().Cmp(maxDen), 0)

	unlimited, err := exact.Merge(a, b, c)
	require.NoError(t, err)
	assert.InDelta(t, unlimited.Mass(), m.Mass(), 1e-3)
}

func TestNewPart_Invariants(t *testing.T) {
	_, err := exact.NewPart(r(1, 2), r(5, 1), r(25, 1), r(0, 1), r(4, 1))
	assert.ErrorIs(t, err, cluster.ErrInvariantViolation, "mean above max")

	_, err = exact.NewPart(r(1, 2), r(1, 1), r(1, 2), r(0, 1), r(2, 1))
	assert.ErrorIs(t, err, cluster.ErrInvariantViolation, "square below mean²")

	_, err = exact.NewPart(r(1, 2), r(1, 1), r(3, 1), r(0, 1), r(2, 1))
	assert.ErrorIs(t, err, cluster.ErrInvariantViolation, "square above envelope")

	_, err = exact.NewPart(r(-1, 2), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	assert.ErrorIs(t, err, cluster.ErrInvalidArgument, "negative mass")

	_, err = exact.NewPart(nil, r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	assert.ErrorIs(t, err, cluster.ErrInvalidArgument, "nil mass")
}

func TestPart_PartialCDFEdges(t *testing.T) {
	pt := mustPart(t, r(1, 10), r(1, 1), r(5, 3), r(0, 1), r(2, 1))

	b := pt.PartialCDF(r(2, 1))
	assertRat(t, r(1, 10), b.Lower)
	assertRat(t, r(1, 10), b.Upper)

	b = pt.PartialCDF(r(-1, 2))
	assertRat(t, r(0, 1), b.Lower)
	assertRat(t, r(0, 1), b.Upper)

	// points 0, 1, 2 with 1/30 each: true CDF at 1 is 1/15
	b = pt.PartialCDF(r(1, 1))
	assertRat(t, r(1, 30), b.Lower)
	assertRat(t, r(1, 15), b.Upper)
}

// TestPart_PartialCDFMonotone walks a grid and checks ordering.
func TestPart_PartialCDFMonotone(t *testing.T) {
	pt := mustPart(t, r(1, 2), r(3, 2), r(7, 2), r(0, 1), r(4, 1))
	prev := pt.PartialCDF(r(-1, 1))
	for i := int64(-3); i <= 20; i++ {
		b := pt.PartialCDF(r(i, 4))
		assert.LessOrEqual(t, b.Lower.Cmp(b.Upper), 0, "lower > upper at %d/4", i)
		assert.GreaterOrEqual(t, b.Lower.Cmp(prev.Lower), 0, "lower decreased at %d/4", i)
		assert.GreaterOrEqual(t, b.Upper.Cmp(prev.Upper), 0, "upper decreased at %d/4", i)
		prev = b
	}
}

func TestPart_Uncertainty(t *testing.T) {
	point := mustPart(t, r(1, 2), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	assert.Equal(t, 0.0, point.Uncertainty(false))

	// all mass on the endpoints: exact unless the tie-break is asked for
	ends := mustPart(t, r(1, 2), r(1, 1), r(2, 1), r(0, 1), r(2, 1))
	assert.Equal(t, 0.0, ends.Uncertainty(true))
	assert.Greater(t, ends.Uncertainty(false), 0.0)

	spread := mustPart(t, r(1, 2), r(1, 1), r(5, 3), r(0, 1), r(2, 1))
	assert.Greater(t, spread.Uncertainty(true), 0.0)
}

func TestPart_MergeCost(t *testing.T) {
	a := mustPart(t, r(1, 4), r(1, 1), r(1, 1), r(1, 1), r(1, 1))
	b := mustPart(t, r(1, 4), r(2, 1), r(4, 1), r(2, 1), r(2, 1))
	far := mustPart(t, r(1, 4), r(9, 1), r(81, 1), r(9, 1), r(9, 1))

	_, near, err := a.MergeCost(b)
	require.NoError(t, err)
	_, wide, err := a.MergeCost(far)
	require.NoError(t, err)
	assert.Greater(t, near, 0.0)
	assert.Less(t, near, wide, "distant parts cost more to merge")
}
