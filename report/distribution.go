// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"

	"github.com/katalvlaran/probcalc/cluster"
)

// Distribution is the float64 view of a random variable. Both
// exact.RandomVariable and numeric.RandomVariable satisfy it.
type Distribution interface {
	// CDFFloat64 bounds P(X ≤ x).
	CDFFloat64(x float64) (lower, upper float64)
	// SupportFloat64 returns the smallest and largest possible value.
	SupportFloat64() (lo, hi float64, err error)
	MeanFloat64() float64
	VarianceFloat64() float64
	// Len is the number of parts backing the distribution.
	Len() int
}

// Bound is a probability interval.
type Bound = cluster.Bound[float64]

// Summary holds the headline numbers of a distribution.
type Summary struct {
	Parts  int
	Min    float64
	Max    float64
	Mass   float64
	Mean   float64
	StdDev float64
}

// Summarize computes the Summary of d.
//
// Errors: ErrEmptyDistribution.
func Summarize(d Distribution) (Summary, error) {
	lo, hi, err := support(d)
	if err != nil {
		return Summary{}, err
	}
	mass, _ := d.CDFFloat64(hi)
	return Summary{
		Parts:  d.Len(),
		Min:    lo,
		Max:    hi,
		Mass:   mass,
		Mean:   d.MeanFloat64(),
		StdDev: math.Sqrt(math.Max(0, d.VarianceFloat64())),
	}, nil
}

// Tails bounds both tails of a distribution.
type Tails struct {
	Below, Above           float64
	AtMostBelow, OverAbove Bound
}

// Tail bounds P(X ≤ below) and P(X > above). The upper tail is the total
// mass minus the CDF bound at above, so its ends swap.
//
// Errors: ErrEmptyDistribution.
func Tail(d Distribution, below, above float64) (Tails, error) {
	_, hi, err := support(d)
	if err != nil {
		return Tails{}, err
	}
	mass, _ := d.CDFFloat64(hi)

	bl, bu := d.CDFFloat64(below)
	al, au := d.CDFFloat64(above)
	return Tails{
		Below:       below,
		Above:       above,
		AtMostBelow: Bound{Lower: bl, Upper: bu},
		OverAbove:   Bound{Lower: math.Max(0, mass-au), Upper: math.Max(0, mass-al)},
	}, nil
}

// CDFRow is one line of a CDF table.
type CDFRow struct {
	Value float64
	Bound Bound
}

// CDFTable evaluates the CDF bound at every value.
func CDFTable(d Distribution, values []float64) []CDFRow {
	rows := make([]CDFRow, len(values))
	for i, v := range values {
		l, u := d.CDFFloat64(v)
		rows[i] = CDFRow{Value: v, Bound: Bound{Lower: l, Upper: u}}
	}
	return rows
}

func support(d Distribution) (float64, float64, error) {
	lo, hi, err := d.SupportFloat64()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrEmptyDistribution, err)
	}
	return lo, hi, nil
}
