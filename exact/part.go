// SPDX-License-Identifier: MIT

package exact

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/probcalc/cluster"
	"github.com/katalvlaran/probcalc/rational"
)

// Outcome is an exact point mass.
type Outcome = cluster.Outcome[*big.Rat]

// Bound is an exact probability interval.
type Bound = cluster.Bound[*big.Rat]

var _ cluster.ProbabilityCluster[Part, *big.Rat] = Part{}

// Part is a cluster of probability mass p over [min, max] with conditional
// mean and conditional second moment (square). Parts are immutable: the
// accessors return copies and every operation allocates its result.
type Part struct {
	p      *big.Rat
	mean   *big.Rat
	square *big.Rat
	min    *big.Rat
	max    *big.Rat
}

// NewPart validates and copies the five moments into a Part.
//
// Errors:
//   - cluster.ErrInvalidArgument if any input is nil or p < 0.
//   - cluster.ErrInvariantViolation unless min ≤ mean ≤ max and
//     mean² ≤ square ≤ mean² + (max−mean)(mean−min).
func NewPart(p, mean, square, min, max *big.Rat) (Part, error) {
	if p == nil || mean == nil || square == nil || min == nil || max == nil {
		return Part{}, fmt.Errorf("%w: nil moment", cluster.ErrInvalidArgument)
	}
	if p.Sign() < 0 {
		return Part{}, fmt.Errorf("%w: negative probability %s", cluster.ErrInvalidArgument, p.RatString())
	}
	if mean.Cmp(min) < 0 || mean.Cmp(max) > 0 {
		return Part{}, fmt.Errorf("%w: mean %s outside [%s, %s]",
			cluster.ErrInvariantViolation, mean.RatString(), min.RatString(), max.RatString())
	}
	lo, hi := squareEnvelope(mean, min, max)
	if square.Cmp(lo) < 0 || square.Cmp(hi) > 0 {
		return Part{}, fmt.Errorf("%w: square %s outside [%s, %s]",
			cluster.ErrInvariantViolation, square.RatString(), lo.RatString(), hi.RatString())
	}

	return Part{
		p:      rational.Copy(p),
		mean:   rational.Copy(mean),
		square: rational.Copy(square),
		min:    rational.Copy(min),
		max:    rational.Copy(max),
	}, nil
}

// PointPart is all of mass p sitting on value.
func PointPart(value, p *big.Rat) (Part, error) {
	if value == nil {
		return Part{}, fmt.Errorf("%w: nil value", cluster.ErrInvalidArgument)
	}
	sq := new(big.Rat).Mul(value, value)
	return NewPart(p, value, sq, value, value)
}

// squareEnvelope returns [mean², mean² + (max−mean)(mean−min)].
func squareEnvelope(mean, min, max *big.Rat) (*big.Rat, *big.Rat) {
	lo := new(big.Rat).Mul(mean, mean)
	spread := new(big.Rat).Mul(
		new(big.Rat).Sub(max, mean),
		new(big.Rat).Sub(mean, min),
	)
	return lo, spread.Add(spread, lo)
}

// P returns the probability mass.
func (pt Part) P() *big.Rat { return rational.Copy(pt.p) }

// Mean returns the conditional mean.
func (pt Part) Mean() *big.Rat { return rational.Copy(pt.mean) }

// Square returns the conditional second moment.
func (pt Part) Square() *big.Rat { return rational.Copy(pt.square) }

// Min returns the lower value bound.
func (pt Part) Min() *big.Rat { return rational.Copy(pt.min) }

// Max returns the upper value bound.
func (pt Part) Max() *big.Rat { return rational.Copy(pt.max) }

// Mass returns p as float64.
func (pt Part) Mass() float64 { return rational.Float64(pt.p) }

// variance returns square − mean².
func (pt Part) variance() *big.Rat {
	d := new(big.Rat).Mul(pt.mean, pt.mean)
	return d.Sub(pt.square, d)
}

// Add is the part of X+Y where X and Y are independent and restricted to
// pt and other: masses multiply, means and bounds add, and
// square = s1 + s2 + 2·m1·m2.
func (pt Part) Add(other Part) (Part, error) {
	p := new(big.Rat).Mul(pt.p, other.p)
	mean := new(big.Rat).Add(pt.mean, other.mean)
	cross := new(big.Rat).Mul(pt.mean, other.mean)
	cross.Add(cross, cross)
	square := new(big.Rat).Add(pt.square, other.square)
	square.Add(square, cross)
	lo := new(big.Rat).Add(pt.min, other.min)
	hi := new(big.Rat).Add(pt.max, other.max)
	return NewPart(p, mean, square, lo, hi)
}

// Multiply is the part of X·Y for independent X and Y. The bounds are the
// extremes of the four corner products, so signed ranges are handled.
func (pt Part) Multiply(other Part) (Part, error) {
	p := new(big.Rat).Mul(pt.p, other.p)
	mean := new(big.Rat).Mul(pt.mean, other.mean)
	square := new(big.Rat).Mul(pt.square, other.square)

	corners := [4]*big.Rat{
		new(big.Rat).Mul(pt.min, other.min),
		new(big.Rat).Mul(pt.min, other.max),
		new(big.Rat).Mul(pt.max, other.min),
		new(big.Rat).Mul(pt.max, other.max),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		if c.Cmp(lo) < 0 {
			lo = c
		}
		if c.Cmp(hi) > 0 {
			hi = c
		}
	}
	return NewPart(p, mean, square, lo, hi)
}

// Outcomes reconstructs the unique distribution on {min, mean, max} with
// the part's mass, mean and second moment. Zero masses are dropped.
func (pt Part) Outcomes() []Outcome {
	if pt.p.Sign() == 0 {
		return nil
	}
	if pt.mean.Cmp(pt.min) == 0 || pt.mean.Cmp(pt.max) == 0 {
		return []Outcome{{Value: rational.Copy(pt.mean), P: rational.Copy(pt.p)}}
	}

	// diff = p·(square − mean²)/(max − min)
	diff := pt.variance()
	diff.Quo(diff, new(big.Rat).Sub(pt.max, pt.min))
	diff.Mul(diff, pt.p)

	pMin := new(big.Rat).Quo(diff, new(big.Rat).Sub(pt.mean, pt.min))
	pMax := new(big.Rat).Quo(diff, new(big.Rat).Sub(pt.max, pt.mean))
	pMean := new(big.Rat).Sub(pt.p, pMin)
	pMean.Sub(pMean, pMax)

	out := make([]Outcome, 0, 3)
	for _, o := range []Outcome{
		{Value: pt.min, P: pMin},
		{Value: pt.mean, P: pMean},
		{Value: pt.max, P: pMax},
	} {
		if o.P.Sign() > 0 {
			out = append(out, Outcome{Value: rational.Copy(o.Value), P: o.P})
		}
	}
	return out
}

// PartialCDF bounds the mass of this part at or below value using only its
// moments. With d = square − mean²:
//
//	value < min                → [0, 0]
//	d == 0 or value ≥ max      → [p, p]
//	value ≤ mean − d/(max−mean) → [0, p·d/(d+(mean−value)²)]
//	value ≤ mean + d/(mean−min) → [p·com/(value−min), p·(max−mean−com)/(max−value)]
//	otherwise                  → [p·(mean−value)²/(d+(mean−value)²), p]
//
// where com = (d − (max−mean)(mean−value))/(max−min).
func (pt Part) PartialCDF(value *big.Rat) Bound {
	if value.Cmp(pt.min) < 0 {
		return Bound{Lower: new(big.Rat), Upper: new(big.Rat)}
	}
	d := pt.variance()
	if d.Sign() <= 0 && value.Cmp(pt.mean) < 0 {
		// no variance: all of p sits on the mean
		return Bound{Lower: new(big.Rat), Upper: new(big.Rat)}
	}
	if d.Sign() <= 0 || value.Cmp(pt.max) >= 0 {
		return Bound{Lower: pt.P(), Upper: pt.P()}
	}

	dMaxMean := new(big.Rat).Sub(pt.max, pt.mean)
	dMeanValue := new(big.Rat).Sub(pt.mean, value)
	dmv2 := new(big.Rat).Mul(dMeanValue, dMeanValue)

	bound1 := new(big.Rat).Quo(d, dMaxMean)
	bound1.Sub(pt.mean, bound1)
	if value.Cmp(bound1) <= 0 {
		upper := new(big.Rat).Add(d, dmv2)
		upper.Quo(d, upper)
		return Bound{Lower: new(big.Rat), Upper: upper.Mul(upper, pt.p)}
	}

	dMeanMin := new(big.Rat).Sub(pt.mean, pt.min)
	bound2 := new(big.Rat).Quo(d, dMeanMin)
	bound2.Add(pt.mean, bound2)
	if value.Cmp(bound2) <= 0 {
		com := new(big.Rat).Mul(dMaxMean, dMeanValue)
		com.Sub(d, com)
		com.Quo(com, new(big.Rat).Sub(pt.max, pt.min))

		lower := new(big.Rat).Quo(com, new(big.Rat).Sub(value, pt.min))
		upper := new(big.Rat).Sub(dMaxMean, com)
		upper.Quo(upper, new(big.Rat).Sub(pt.max, value))
		return Bound{Lower: lower.Mul(lower, pt.p), Upper: upper.Mul(upper, pt.p)}
	}

	lower := new(big.Rat).Add(d, dmv2)
	lower.Quo(dmv2, lower)
	return Bound{Lower: lower.Mul(lower, pt.p), Upper: pt.P()}
}

// Uncertainty is the integral of the CDF bound gap divided by p; see
// cluster.UncertaintyIntegral. Saturation is decided exactly.
func (pt Part) Uncertainty(exactUpper bool) float64 {
	d := pt.variance()
	if d.Sign() <= 0 || pt.min.Cmp(pt.max) == 0 {
		return 0
	}
	dMaxMean := new(big.Rat).Sub(pt.max, pt.mean)
	dMeanMin := new(big.Rat).Sub(pt.mean, pt.min)
	dUpper := new(big.Rat).Mul(dMaxMean, dMeanMin)
	return cluster.UncertaintyIntegral(
		rational.Float64(d),
		rational.Float64(dMaxMean),
		rational.Float64(dMeanMin),
		d.Cmp(dUpper) >= 0,
		exactUpper,
	)
}

// CmpMean orders parts by mean.
func (pt Part) CmpMean(other Part) int { return pt.mean.Cmp(other.mean) }

// CmpMin orders parts by lower bound.
func (pt Part) CmpMin(other Part) int { return pt.min.Cmp(other.min) }

// MergeCost merges pt and other without denominator limiting and reports
// the probability-weighted uncertainty growth.
func (pt Part) MergeCost(other Part) (Part, float64, error) {
	merged, err := Merge(pt, other)
	if err != nil {
		return Part{}, 0, err
	}
	return merged, mergeCost(pt, other, merged), nil
}

// mergeCost is p_m·[U(m, false) − (p1/p_m)·U(a) − (p2/p_m)·U(b)].
func mergeCost(a, b, merged Part) float64 {
	if merged.p.Sign() == 0 {
		return 0
	}
	wa := rational.Float64(new(big.Rat).Quo(a.p, merged.p))
	wb := rational.Float64(new(big.Rat).Quo(b.p, merged.p))
	v := merged.Uncertainty(false) - wa*a.Uncertainty(true) - wb*b.Uncertainty(true)
	return merged.Mass() * v
}

// Equal reports whether both parts carry identical moments.
func (pt Part) Equal(other Part) bool {
	return pt.p.Cmp(other.p) == 0 &&
		pt.mean.Cmp(other.mean) == 0 &&
		pt.square.Cmp(other.square) == 0 &&
		pt.min.Cmp(other.min) == 0 &&
		pt.max.Cmp(other.max) == 0
}

// String formats the part with exact fractions.
func (pt Part) String() string {
	return fmt.Sprintf("Part(p=%s, mean=%s, square=%s, min=%s, max=%s)",
		pt.p.RatString(), pt.mean.RatString(), pt.square.RatString(),
		pt.min.RatString(), pt.max.RatString())
}
