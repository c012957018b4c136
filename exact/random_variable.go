// SPDX-License-Identifier: MIT

package exact

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/katalvlaran/probcalc/cluster"
	"github.com/katalvlaran/probcalc/rational"
)

// RandomVariable is a distribution held as parts sorted by min. It is
// immutable and safe for concurrent reads.
type RandomVariable struct {
	parts []Part
	opts  options
}

// New builds a variable from point outcomes. Outcomes with equal values
// are allowed; masses need not sum to 1 (sub-distributions are fine).
//
// Errors: cluster.ErrInvalidArgument for nil fields or negative masses.
func New(outcomes []Outcome, opts ...Option) (*RandomVariable, error) {
	parts := make([]Part, 0, len(outcomes))
	for i, o := range outcomes {
		pt, err := PointPart(o.Value, o.P)
		if err != nil {
			return nil, fmt.Errorf("exact: outcome %d: %w", i, err)
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
	p := big.NewRat(1, int64(n))
	outcomes := make([]Outcome, n)
	for i := range outcomes {
		outcomes[i] = Outcome{Value: rational.Int(int64(i + 1)), P: p}
	}
	return New(outcomes, opts...)
}

// FromParts builds a variable from existing parts (they are simplified).
func FromParts(parts []Part, opts ...Option) (*RandomVariable, error) {
	return fromParts(slices.Clone(parts), newOptions(opts...))
}

// fromParts simplifies parts under o. Every constructor funnels through it.
func fromParts(parts []Part, o options) (*RandomVariable, error) {
	wrapped := make([]boundedPart, len(parts))
	for i, pt := range parts {
		wrapped[i] = boundedPart{Part: pt, maxDen: o.maxDen}
	}
	simplified, err := cluster.Simplify(wrapped, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("exact: simplify: %w", err)
	}
	out := make([]Part, len(simplified))
	for i, b := range simplified {
		out[i] = b.Part
	}
	return &RandomVariable{parts: out, opts: o}, nil
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
		return nil, fmt.Errorf("exact: %s: %w", name, err)
	}
	res, err := fromParts(parts, rv.opts)
	if err != nil {
		return nil, err
	}
	rv.opts.cfg.Logger.Debug(name,
		"family", "exact",
		"left_parts", len(rv.parts),
		"right_parts", len(other.parts),
		"parts", res.Len())
	return res, nil
}

// Repeat is the sum of k independent copies of rv, computed by doubling:
// O(log k) compositions. Repeat(1) returns rv itself.
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
	rv.opts.cfg.Logger.Debug("repeat", "family", "exact", "k", k, "parts", result.Len())
	return result, nil
}

// CDF bounds P(X ≤ value). Parts are scanned by min and the scan stops at
// the first part that starts above value.
func (rv *RandomVariable) CDF(value *big.Rat) Bound {
	lower, upper := new(big.Rat), new(big.Rat)
	for _, pt := range rv.parts {
		if pt.min.Cmp(value) > 0 {
			break
		}
		b := pt.PartialCDF(value)
		lower.Add(lower, b.Lower)
		upper.Add(upper, b.Upper)
	}
	return Bound{Lower: lower, Upper: upper}
}

// Outcomes expands every part to points and returns them sorted by value
// with equal values combined. Only sensible while the part count is small.
func (rv *RandomVariable) Outcomes() []Outcome {
	var all []Outcome
	for _, pt := range rv.parts {
		all = append(all, pt.Outcomes()...)
	}
	slices.SortStableFunc(all, func(a, b Outcome) int { return a.Value.Cmp(b.Value) })

	out := make([]Outcome, 0, len(all))
	for _, o := range all {
		if n := len(out); n > 0 && out[n-1].Value.Cmp(o.Value) == 0 {
			out[n-1].P.Add(out[n-1].P, o.P)
			continue
		}
		out = append(out, Outcome{Value: o.Value, P: rational.Copy(o.P)})
	}
	return out
}

// TotalMass is the sum of part masses (1 for a proper distribution).
func (rv *RandomVariable) TotalMass() *big.Rat {
	sum := new(big.Rat)
	for _, pt := range rv.parts {
		sum.Add(sum, pt.p)
	}
	return sum
}

// Mean is E[X] = Σ p·mean over the parts.
func (rv *RandomVariable) Mean() *big.Rat {
	sum, term := new(big.Rat), new(big.Rat)
	for _, pt := range rv.parts {
		sum.Add(sum, term.Mul(pt.p, pt.mean))
	}
	return sum
}

// SecondMoment is E[X²] = Σ p·square over the parts.
func (rv *RandomVariable) SecondMoment() *big.Rat {
	sum, term := new(big.Rat), new(big.Rat)
	for _, pt := range rv.parts {
		sum.Add(sum, term.Mul(pt.p, pt.square))
	}
	return sum
}

// Variance is E[X²] − E[X]².
func (rv *RandomVariable) Variance() *big.Rat {
	m := rv.Mean()
	m.Mul(m, m)
	return m.Sub(rv.SecondMoment(), m)
}

// MinMax returns the support bounds.
//
// Errors: cluster.ErrInvalidArgument for a variable without parts.
func (rv *RandomVariable) MinMax() (*big.Rat, *big.Rat, error) {
	if len(rv.parts) == 0 {
		return nil, nil, fmt.Errorf("%w: empty variable has no support", cluster.ErrInvalidArgument)
	}
	lo, hi := rv.parts[0].min, rv.parts[0].max
	for _, pt := range rv.parts[1:] {
		if pt.min.Cmp(lo) < 0 {
			lo = pt.min
		}
		if pt.max.Cmp(hi) > 0 {
			hi = pt.max
		}
	}
	return rational.Copy(lo), rational.Copy(hi), nil
}

// Quantile bounds the q-quantile inf{x : P(X ≤ x) ≥ q}. Lower is the
// first part min at which the mass of parts starting at or below it
// reaches q; Upper is the first part max at which the mass of parts
// ending at or below it reaches q. Both fall back to the support max.
//
// Errors: cluster.ErrInvalidArgument unless 0 < q ≤ 1 and rv has parts.
func (rv *RandomVariable) Quantile(q *big.Rat) (Bound, error) {
	if q == nil || q.Sign() <= 0 || q.Cmp(rational.Int(1)) > 0 {
		return Bound{}, fmt.Errorf("%w: quantile level must be in (0, 1]", cluster.ErrInvalidArgument)
	}
	_, hi, err := rv.MinMax()
	if err != nil {
		return Bound{}, err
	}

	scan := func(key func(Part) *big.Rat) *big.Rat {
		sorted := slices.Clone(rv.parts)
		slices.SortStableFunc(sorted, func(a, b Part) int { return key(a).Cmp(key(b)) })
		sum := new(big.Rat)
		for _, pt := range sorted {
			sum.Add(sum, pt.p)
			if sum.Cmp(q) >= 0 {
				return rational.Copy(key(pt))
			}
		}
		return rational.Copy(hi)
	}

	return Bound{
		Lower: scan(func(pt Part) *big.Rat { return pt.min }),
		Upper: scan(func(pt Part) *big.Rat { return pt.max }),
	}, nil
}

// CDFFloat64 is CDF for a float64 query, for float consumers (reports).
func (rv *RandomVariable) CDFFloat64(x float64) (float64, float64) {
	v := new(big.Rat)
	if v.SetFloat64(x) == nil {
		// ±Inf/NaN: everything or nothing lies below
		if x > 0 {
			m := rational.Float64(rv.TotalMass())
			return m, m
		}
		return 0, 0
	}
	b := rv.CDF(v)
	return rational.Float64(b.Lower), rational.Float64(b.Upper)
}

// SupportFloat64 is MinMax as float64.
func (rv *RandomVariable) SupportFloat64() (float64, float64, error) {
	lo, hi, err := rv.MinMax()
	if err != nil {
		return 0, 0, err
	}
	return rational.Float64(lo), rational.Float64(hi), nil
}

// MeanFloat64 is Mean as float64.
func (rv *RandomVariable) MeanFloat64() float64 { return rational.Float64(rv.Mean()) }

// VarianceFloat64 is Variance as float64.
func (rv *RandomVariable) VarianceFloat64() float64 { return rational.Float64(rv.Variance()) }
