// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"math"
)

// DefaultSteps is the default number of histogram bins.
const DefaultSteps = 101

const panicStepsInvalid = "report: WithSteps: steps must be >= 1"

// Bin is one histogram bar over (From, To]; the first bin also holds From.
// Lower and Upper bound the mass in the bin (the cumulative mass when the
// histogram is cumulative); Mid is the midpoint estimate.
type Bin struct {
	From, To     float64
	Lower, Upper float64
	Mid          float64
}

// HistogramOption configures Histogram.
type HistogramOption func(*histogramOptions)

type histogramOptions struct {
	steps      int
	cumulative bool
	from, to   *float64
}

// WithSteps sets the number of bins. Panics if n < 1.
func WithSteps(n int) HistogramOption {
	if n < 1 {
		panic(panicStepsInvalid)
	}
	return func(o *histogramOptions) { o.steps = n }
}

// WithCumulative reports P(X ≤ To) per bin instead of the bin mass.
func WithCumulative() HistogramOption {
	return func(o *histogramOptions) { o.cumulative = true }
}

// WithRange overrides the support as the histogram range.
func WithRange(from, to float64) HistogramOption {
	return func(o *histogramOptions) { o.from, o.to = &from, &to }
}

// Histogram splits the value range into equal bins and bounds the mass in
// each from the CDF bounds at the bin edges. A single-point range is
// widened by 1/2 on both sides.
//
// Errors: ErrEmptyDistribution, ErrInvalidRange.
func Histogram(d Distribution, opts ...HistogramOption) ([]Bin, error) {
	o := histogramOptions{steps: DefaultSteps}
	for _, opt := range opts {
		opt(&o)
	}

	from, to, err := support(d)
	if err != nil {
		return nil, err
	}
	if o.from != nil {
		from, to = *o.from, *o.to
	}
	if math.IsNaN(from) || math.IsNaN(to) || math.IsInf(from, 0) || math.IsInf(to, 0) || to < from {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, from, to)
	}
	if to == from {
		from, to = from-0.5, to+0.5
	}

	delta := (to - from) / float64(o.steps)
	bins := make([]Bin, o.steps)
	var lastLower, lastUpper float64
	for i := range bins {
		edge := from + float64(i+1)*delta
		if i == o.steps-1 {
			edge = to
		}
		lower, upper := d.CDFFloat64(edge)

		b := Bin{From: from + float64(i)*delta, To: edge}
		if o.cumulative {
			b.Lower, b.Upper = lower, upper
			b.Mid = (lower + upper) / 2
		} else {
			b.Lower = math.Max(0, lower-lastUpper)
			b.Upper = math.Max(0, upper-lastLower)
			b.Mid = math.Max(0, (lower+upper)/2-(lastLower+lastUpper)/2)
		}
		bins[i] = b
		lastLower, lastUpper = lower, upper
	}
	return bins, nil
}
