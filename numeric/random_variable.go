// SPDX-License-Identifier: MIT

package numeric

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/probcalc/cluster"
)

// RandomVariable is a distribution held as float parts sorted by min. It
// is immutable and safe for concurrent reads.
type RandomVariable struct {
	parts []Part
	opts  options
}

// New builds a variable from point outcomes. Masses need not sum to 1.
//
// Errors: cluster.ErrInvalidArgument for NaN/Inf values or negative masses.
func New(outcomes []Outcome, opts ...Option) (*RandomVariable, error) {
	parts := make([]Part, 0, len(outcomes))
	for i, o := range outcomes {
		pt, err := PointPart(o.Value, o.P)
		if err != nil {
			return nil, fmt.Errorf("numeric: outcome %d: %w", i, err)
		}
		parts = append(parts, pt)
	}
	return fromParts(parts, newOptions(opts...))
}

// FairDie is the uniform distribution over 1..n.
func FairDie(n int, opts ...Option) (*RandomVariable, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: die needs at least one side, got %d", cluster.ErrInvalidArgument, n)
	}
	p := 1 / float64(n)
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		outcomes[i] = Outcome{Value: float64(i + 1), P: p}
	}
	return New(outcomes, opts...)
}

// FromParts builds a variable from existing parts (they are simplified).
func FromParts(parts []Part, opts ...Option) (*RandomVariable, error) {
	return fromParts(slices.Clone(parts), newOptions(opts...))
}

func fromParts(parts []Part, o options) (*RandomVariable, error) {
	simplified, err := cluster.Simplify(parts, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("numeric: simplify: %w", err)
	}
	return &RandomVariable{parts: simplified, opts: o}, nil
}

// Len returns the number of parts.
func (rv *RandomVariable) Len() int { return len(rv.parts) }

// Parts returns the parts sorted by min. The slice is a copy.
func (rv *RandomVariable) Parts() []Part { return slices.Clone(rv.parts) }

// Add is the distribution of X+Y for independent X (rv) and Y (other).
func (rv *RandomVariable) Add(other *RandomVariable) (*RandomVariable, error) {
	return rv.combine("add", other, Part.Add)
}

// Multiply is the distribution of X·Y for independent X and Y.
func (rv *RandomVariable) Multiply(other *RandomVariable) (*RandomVariable, error) {
	return rv.combine("multiply", other, Part.Multiply)
}

func (rv *RandomVariable) combine(name string, other *RandomVariable, op func(a, b Part) (Part, error)) (*RandomVariable, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: %s with nil variable", cluster.ErrInvalidArgument, name)
	}
	parts, err := cluster.CrossProduct(rv.parts, other.parts, rv.opts.cfg.Workers, op)
	if err != nil {
		return nil, fmt.Errorf("numeric: %s: %w", name, err)
	}
	res, err := fromParts(parts, rv.opts)
	if err != nil {
		return nil, err
	}
	rv.opts.cfg.Logger.Debug(name,
		"family", "numeric",
		"left_parts", len(rv.parts),
		"right_parts", len(other.parts),
		"parts", res.Len())
	return res, nil
}

// Repeat is the sum of k independent copies of rv by doubling.
// Repeat(1) returns rv itself.
//
// Errors: cluster.ErrInvalidArgument for k < 1.
func (rv *RandomVariable) Repeat(k int) (*RandomVariable, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: repeat count %d", cluster.ErrInvalidArgument, k)
	}
	var (
		result *RandomVariable
		base   = rv
		err    error
	)
	for n := k; n > 0; n >>= 1 {
		if n&1 == 1 {
			if result == nil {
				result = base
			} else if result, err = result.Add(base); err != nil {
				return nil, err
			}
		}
		if n > 1 {
			if base, err = base.Add(base); err != nil {
				return nil, err
			}
		}
	}
	rv.opts.cfg.Logger.Debug("repeat", "family", "numeric", "k", k, "parts", result.Len())
	return result, nil
}

// LogCDF bounds log P(X ≤ value); partial bounds are summed with
// LogAddExp so deep tails keep their precision.
func (rv *RandomVariable) LogCDF(value float64) Bound {
	lower, upper := math.Inf(-1), math.Inf(-1)
	for _, pt := range rv.parts {
		if pt.min > value {
			break
		}
		b := pt.PartialLogCDF(value)
		lower = LogAddExp(lower, b.Lower)
		upper = LogAddExp(upper, b.Upper)
	}
	return Bound{Lower: lower, Upper: upper}
}

// CDF bounds P(X ≤ value).
func (rv *RandomVariable) CDF(value float64) Bound {
	b := rv.LogCDF(value)
	return Bound{Lower: math.Exp(b.Lower), Upper: math.Exp(b.Upper)}
}

// Outcomes expands every part to points and returns them sorted by value;
// values equal up to Epsilon are combined.
func (rv *RandomVariable) Outcomes() []Outcome {
	var all []Outcome
	for _, pt := range rv.parts {
		all = append(all, pt.Outcomes()...)
	}
	slices.SortStableFunc(all, func(a, b Outcome) int { return cmp.Compare(a.Value, b.Value) })

	out := make([]Outcome, 0, len(all))
	for _, o := range all {
		if n := len(out); n > 0 && sameValue(out[n-1].Value, o.Value) {
			out[n-1].P += o.P
			continue
		}
		out = append(out, o)
	}
	return out
}

func sameValue(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// TotalMass is the sum of part masses.
func (rv *RandomVariable) TotalMass() float64 {
	logps := make([]float64, len(rv.parts))
	for i, pt := range rv.parts {
		logps[i] = pt.logp
	}
	return math.Exp(LogSumExp(logps...))
}

// Mean is E[X] = Σ p·mean.
func (rv *RandomVariable) Mean() float64 {
	var sum float64
	for _, pt := range rv.parts {
		sum += pt.Mass() * pt.mean
	}
	return sum
}

// SecondMoment is E[X²] = Σ p·square.
func (rv *RandomVariable) SecondMoment() float64 {
	var sum float64
	for _, pt := range rv.parts {
		sum += pt.Mass() * pt.square
	}
	return sum
}

// Variance is E[X²] − E[X]², floored at 0 against cancellation.
func (rv *RandomVariable) Variance() float64 {
	m := rv.Mean()
	return math.Max(0, rv.SecondMoment()-m*m)
}

// MinMax returns the support bounds.
//
// Errors: cluster.ErrInvalidArgument for a variable without parts.
func (rv *RandomVariable) MinMax() (float64, float64, error) {
	if len(rv.parts) == 0 {
		return 0, 0, fmt.Errorf("%w: empty variable has no support", cluster.ErrInvalidArgument)
	}
	lo, hi := rv.parts[0].min, rv.parts[0].max
	for _, pt := range rv.parts[1:] {
		lo = math.Min(lo, pt.min)
		hi = math.Max(hi, pt.max)
	}
	return lo, hi, nil
}

// Quantile bounds the q-quantile inf{x : P(X ≤ x) ≥ q}, scanning part
// mins for Lower and part maxes for Upper as exact.RandomVariable does.
//
// Errors: cluster.ErrInvalidArgument unless 0 < q ≤ 1 and rv has parts.
func (rv *RandomVariable) Quantile(q float64) (Bound, error) {
	if !(q > 0 && q <= 1) {
		return Bound{}, fmt.Errorf("%w: quantile level %g not in (0, 1]", cluster.ErrInvalidArgument, q)
	}
	_, hi, err := rv.MinMax()
	if err != nil {
		return Bound{}, err
	}
	logq := math.Log(q)

	scan := func(key func(Part) float64) float64 {
		sorted := slices.Clone(rv.parts)
		slices.SortStableFunc(sorted, func(a, b Part) int { return cmp.Compare(key(a), key(b)) })
		sum := math.Inf(-1)
		for _, pt := range sorted {
			sum = LogAddExp(sum, pt.logp)
			if sum >= logq-Epsilon {
				return key(pt)
			}
		}
		return hi
	}

	return Bound{
		Lower: scan(func(pt Part) float64 { return pt.min }),
		Upper: scan(func(pt Part) float64 { return pt.max }),
	}, nil
}

// Split partitions the parts by mean: mean ≤ threshold goes to lower,
// the rest to upper. Both halves are sub-distributions.
func (rv *RandomVariable) Split(threshold float64) (*RandomVariable, *RandomVariable, error) {
	var lowerParts, upperParts []Part
	for _, pt := range rv.parts {
		if pt.mean <= threshold {
			lowerParts = append(lowerParts, pt)
		} else {
			upperParts = append(upperParts, pt)
		}
	}
	lower, err := fromParts(lowerParts, rv.opts)
	if err != nil {
		return nil, nil, err
	}
	upper, err := fromParts(upperParts, rv.opts)
	if err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

// Scale returns a copy of rv with every mass multiplied by factor.
//
// Errors: cluster.ErrInvalidArgument unless factor is positive and finite.
func (rv *RandomVariable) Scale(factor float64) (*RandomVariable, error) {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return nil, fmt.Errorf("%w: scale factor %g", cluster.ErrInvalidArgument, factor)
	}
	shift := math.Log(factor)
	parts := make([]Part, len(rv.parts))
	for i, pt := range rv.parts {
		pt.logp += shift
		parts[i] = pt
	}
	return &RandomVariable{parts: parts, opts: rv.opts}, nil
}

// Concat is the mixture holding the parts of both variables (masses add).
func (rv *RandomVariable) Concat(other *RandomVariable) (*RandomVariable, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: concat with nil variable", cluster.ErrInvalidArgument)
	}
	parts := make([]Part, 0, len(rv.parts)+len(other.parts))
	parts = append(parts, rv.parts...)
	parts = append(parts, other.parts...)
	return fromParts(parts, rv.opts)
}

// CDFFloat64 returns the CDF bound as a pair, for report consumers.
func (rv *RandomVariable) CDFFloat64(x float64) (float64, float64) {
	b := rv.CDF(x)
	return b.Lower, b.Upper
}

// SupportFloat64 is MinMax.
func (rv *RandomVariable) SupportFloat64() (float64, float64, error) { return rv.MinMax() }

// MeanFloat64 is Mean.
func (rv *RandomVariable) MeanFloat64() float64 { return rv.Mean() }

// VarianceFloat64 is Variance.
func (rv *RandomVariable) VarianceFloat64() float64 { return rv.Variance() }
