// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"

	"github.com/katalvlaran/probcalc/cluster"
)

// Epsilon is the relative tolerance within which constructors clamp
// rounding noise instead of rejecting a part.
const Epsilon = 1e-9

// outcomeFloor drops expanded point masses below outcomeFloor·p.
const outcomeFloor = 1e-12

// Outcome is a floating point mass.
type Outcome = cluster.Outcome[float64]

// Bound is a floating probability interval.
type Bound = cluster.Bound[float64]

var _ cluster.ProbabilityCluster[Part, float64] = Part{}

// Part is a cluster of probability mass exp(logp) over [min, max] with
// conditional mean and conditional second moment (square).
type Part struct {
	logp   float64
	mean   float64
	square float64
	min    float64
	max    float64
}

// NewPart validates the moments. Violations up to Epsilon are clamped.
//
// Errors:
//   - cluster.ErrInvalidArgument for NaN inputs, logp = +Inf or infinite
//     values.
//   - cluster.ErrInvariantViolation when min > max or mean/square fall
//     outside their envelope by more than Epsilon.
func NewPart(logp, mean, square, min, max float64) (Part, error) {
	if math.IsNaN(logp) || math.IsInf(logp, 1) {
		return Part{}, fmt.Errorf("%w: log probability %g", cluster.ErrInvalidArgument, logp)
	}
	for _, v := range [...]float64{mean, square, min, max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Part{}, fmt.Errorf("%w: non-finite moment %g", cluster.ErrInvalidArgument, v)
		}
	}
	if min > max {
		return Part{}, fmt.Errorf("%w: min %g above max %g", cluster.ErrInvariantViolation, min, max)
	}

	scale := math.Max(1, math.Max(math.Abs(min), math.Abs(max)))
	tol := Epsilon * scale
	if mean < min-tol || mean > max+tol {
		return Part{}, fmt.Errorf("%w: mean %g outside [%g, %g]", cluster.ErrInvariantViolation, mean, min, max)
	}
	mean = clamp(mean, min, max)

	lo, hi := squareEnvelope(mean, min, max)
	tolSq := Epsilon * scale * scale
	if square < lo-tolSq || square > hi+tolSq {
		return Part{}, fmt.Errorf("%w: square %g outside [%g, %g]", cluster.ErrInvariantViolation, square, lo, hi)
	}
	square = clamp(square, lo, hi)

	return Part{logp: logp, mean: mean, square: square, min: min, max: max}, nil
}

// PointPart is all of mass p (not log) sitting on value.
func PointPart(value, p float64) (Part, error) {
	if math.IsNaN(p) || p < 0 || math.IsInf(p, 0) {
		return Part{}, fmt.Errorf("%w: probability %g", cluster.ErrInvalidArgument, p)
	}
	return NewPart(math.Log(p), value, value*value, value, value)
}

func squareEnvelope(mean, min, max float64) (float64, float64) {
	lo := mean * mean
	return lo, lo + (max-mean)*(mean-min)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// LogP returns the natural log of the mass.
func (pt Part) LogP() float64 { return pt.logp }

// Mass returns exp(logp).
func (pt Part) Mass() float64 { return math.Exp(pt.logp) }

// Mean returns the conditional mean.
func (pt Part) Mean() float64 { return pt.mean }

// Square returns the conditional second moment.
func (pt Part) Square() float64 { return pt.square }

// Min returns the lower value bound.
func (pt Part) Min() float64 { return pt.min }

// Max returns the upper value bound.
func (pt Part) Max() float64 { return pt.max }

// Add is the part of X+Y for independent X and Y restricted to pt and
// other. Rounding in the moments is clamped by NewPart.
func (pt Part) Add(other Part) (Part, error) {
	return NewPart(
		pt.logp+other.logp,
		pt.mean+other.mean,
		pt.square+other.square+2*pt.mean*other.mean,
		pt.min+other.min,
		pt.max+other.max,
	)
}

// Multiply is the part of X·Y for independent X and Y; bounds come from
// the four corner products.
func (pt Part) Multiply(other Part) (Part, error) {
	a, b := pt.min*other.min, pt.min*other.max
	c, d := pt.max*other.min, pt.max*other.max
	return NewPart(
		pt.logp+other.logp,
		pt.mean*other.mean,
		pt.square*other.square,
		math.Min(math.Min(a, b), math.Min(c, d)),
		math.Max(math.Max(a, b), math.Max(c, d)),
	)
}

// Outcomes expands the part into at most three points at min, mean and
// max matching its first two moments. Masses below 1e-12·p are dropped.
func (pt Part) Outcomes() []Outcome {
	p := pt.Mass()
	if p == 0 {
		return nil
	}
	if pt.min == pt.mean || pt.max == pt.mean {
		return []Outcome{{Value: pt.mean, P: p}}
	}

	diff := (pt.square - pt.mean*pt.mean) / (pt.max - pt.min)
	pMin := p * diff / (pt.mean - pt.min)
	pMax := p * diff / (pt.max - pt.mean)
	pMean := p - pMin - pMax

	floor := outcomeFloor * p
	out := make([]Outcome, 0, 3)
	if pMin > floor {
		out = append(out, Outcome{Value: pt.min, P: pMin})
	}
	if pMean > floor {
		out = append(out, Outcome{Value: pt.mean, P: pMean})
	}
	if pMax > floor {
		out = append(out, Outcome{Value: pt.max, P: pMax})
	}
	return out
}

// PartialLogCDF bounds the log of the mass at or below value; -Inf stands
// for zero. The four regimes match exact.Part.PartialCDF.
func (pt Part) PartialLogCDF(value float64) Bound {
	negInf := math.Inf(-1)
	if value < pt.min {
		return Bound{Lower: negInf, Upper: negInf}
	}

	d := pt.square - pt.mean*pt.mean
	if d <= 0 && value < pt.mean {
		// no variance: all of p sits on the mean
		return Bound{Lower: negInf, Upper: negInf}
	}
	if d <= 0 || value >= pt.max {
		return Bound{Lower: pt.logp, Upper: pt.logp}
	}

	// d > 0 implies max > mean > min
	dMaxMean := pt.max - pt.mean
	bound1 := pt.mean - d/dMaxMean
	dMeanValue := pt.mean - value
	if value <= bound1 {
		return Bound{Lower: negInf, Upper: pt.logp - math.Log1p(dMeanValue*dMeanValue/d)}
	}

	dMeanMin := pt.mean - pt.min
	bound2 := pt.mean + d/dMeanMin
	if value <= bound2 {
		com := (d - dMaxMean*dMeanValue) / (pt.max - pt.min)
		com = clamp(com, 0, dMaxMean)
		return Bound{
			Lower: pt.logp + math.Log(com/(value-pt.min)),
			Upper: math.Min(pt.logp+math.Log((dMaxMean-com)/(pt.max-value)), pt.logp),
		}
	}

	return Bound{Lower: pt.logp - math.Log1p(d/(dMeanValue*dMeanValue)), Upper: pt.logp}
}

// PartialCDF is PartialLogCDF in linear space.
func (pt Part) PartialCDF(value float64) Bound {
	b := pt.PartialLogCDF(value)
	return Bound{Lower: math.Exp(b.Lower), Upper: math.Exp(b.Upper)}
}

// Uncertainty is the integral of the CDF bound gap divided by p; see
// cluster.UncertaintyIntegral.
func (pt Part) Uncertainty(exactUpper bool) float64 {
	d := pt.square - pt.mean*pt.mean
	if d <= 0 || pt.min == pt.max {
		return 0
	}
	dMaxMean := pt.max - pt.mean
	dMeanMin := pt.mean - pt.min
	return cluster.UncertaintyIntegral(d, dMaxMean, dMeanMin, d >= dMaxMean*dMeanMin, exactUpper)
}

// CmpMean orders parts by mean.
func (pt Part) CmpMean(other Part) int { return cmpFloat(pt.mean, other.mean) }

// CmpMin orders parts by lower bound.
func (pt Part) CmpMin(other Part) int { return cmpFloat(pt.min, other.min) }

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MergeCost merges pt and other and reports the probability-weighted
// growth of CDF uncertainty.
func (pt Part) MergeCost(other Part) (Part, float64, error) {
	merged, err := Merge(pt, other)
	if err != nil {
		return Part{}, 0, err
	}
	if math.IsInf(merged.logp, -1) {
		return merged, 0, nil
	}
	v := merged.Uncertainty(false)
	v -= math.Exp(pt.logp-merged.logp) * pt.Uncertainty(true)
	v -= math.Exp(other.logp-merged.logp) * other.Uncertainty(true)
	return merged, merged.Mass() * v, nil
}

// Merge combines parts: masses add in log space (log-sum-exp), the range
// widens, mean and square are mass-weighted and clamped into their
// envelope to absorb rounding.
//
// Errors: cluster.ErrEmptyMerge for no input.
func Merge(parts ...Part) (Part, error) {
	if len(parts) == 0 {
		return Part{}, cluster.ErrEmptyMerge
	}

	logps := make([]float64, len(parts))
	lo, hi := parts[0].min, parts[0].max
	for i, el := range parts {
		logps[i] = el.logp
		lo = math.Min(lo, el.min)
		hi = math.Max(hi, el.max)
	}
	logp := LogSumExp(logps...)

	var ex, exx float64
	for _, el := range parts {
		w := 1 / float64(len(parts))
		if !math.IsInf(logp, -1) {
			w = math.Exp(el.logp - logp)
		}
		ex += w * el.mean
		exx += w * el.square
	}

	ex = clamp(ex, lo, hi)
	sqLo, sqHi := squareEnvelope(ex, lo, hi)
	exx = clamp(exx, sqLo, sqHi)

	return NewPart(logp, ex, exx, lo, hi)
}

// Equal reports whether both parts agree within Epsilon.
func (pt Part) Equal(other Part) bool {
	near := func(a, b float64) bool {
		if a == b {
			return true
		}
		return math.Abs(a-b) <= Epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	}
	return near(pt.logp, other.logp) &&
		near(pt.mean, other.mean) &&
		near(pt.square, other.square) &&
		near(pt.min, other.min) &&
		near(pt.max, other.max)
}

// String formats the part.
func (pt Part) String() string {
	return fmt.Sprintf("Part(logp=%g, mean=%g, square=%g, min=%g, max=%g)",
		pt.logp, pt.mean, pt.square, pt.min, pt.max)
}
