// SPDX-License-Identifier: MIT

package exact

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/probcalc/cluster"
	"github.com/katalvlaran/probcalc/rational"
)

// Merge combines parts into one: masses add, min/max widen, mean and
// square are mass-weighted averages. The result is exact.
//
// When every input has zero mass the moments are averaged unweighted so
// the result still lies inside the widened range.
//
// Errors: cluster.ErrEmptyMerge for no input.
func Merge(parts ...Part) (Part, error) {
	return MergeLimited(nil, parts...)
}

// MergeLimited is Merge followed by re-rationalising p, mean and square to
// denominators ≤ maxDen (nil disables the limit). The moments are then
// clamped back into min ≤ mean ≤ max and the square envelope, the only
// place a Part is ever clamped.
func MergeLimited(maxDen *big.Int, parts ...Part) (Part, error) {
	if len(parts) == 0 {
		return Part{}, cluster.ErrEmptyMerge
	}

	p := new(big.Rat)
	ex := new(big.Rat)
	exx := new(big.Rat)
	lo, hi := parts[0].min, parts[0].max
	term := new(big.Rat)
	for _, el := range parts {
		p.Add(p, el.p)
		ex.Add(ex, term.Mul(el.p, el.mean))
		exx.Add(exx, term.Mul(el.p, el.square))
		if el.min.Cmp(lo) < 0 {
			lo = el.min
		}
		if el.max.Cmp(hi) > 0 {
			hi = el.max
		}
	}

	var mean, square *big.Rat
	if p.Sign() == 0 {
		n := new(big.Rat).SetInt64(int64(len(parts)))
		mean, square = new(big.Rat), new(big.Rat)
		for _, el := range parts {
			mean.Add(mean, el.mean)
			square.Add(square, el.square)
		}
		mean.Quo(mean, n)
		square.Quo(square, n)
	} else {
		mean = ex.Quo(ex, p)
		square = exx.Quo(exx, p)
	}

	if maxDen != nil {
		var err error
		if p, err = rational.LimitDenominator(p, maxDen); err != nil {
			return Part{}, fmt.Errorf("exact: merge: %w", err)
		}
		if mean, err = rational.LimitDenominator(mean, maxDen); err != nil {
			return Part{}, fmt.Errorf("exact: merge: %w", err)
		}
		if square, err = rational.LimitDenominator(square, maxDen); err != nil {
			return Part{}, fmt.Errorf("exact: merge: %w", err)
		}
	}

	mean = rational.Clamp(mean, lo, hi)
	sqLo, sqHi := squareEnvelope(mean, lo, hi)
	square = rational.Clamp(square, sqLo, sqHi)

	return NewPart(p, mean, square, lo, hi)
}

// boundedPart pairs a Part with the denominator limit its merges use, so
// the engine's MergeCost goes through MergeLimited.
type boundedPart struct {
	Part
	maxDen *big.Int
}

func (b boundedPart) CmpMean(other boundedPart) int { return b.Part.CmpMean(other.Part) }

func (b boundedPart) CmpMin(other boundedPart) int { return b.Part.CmpMin(other.Part) }

func (b boundedPart) MergeCost(other boundedPart) (boundedPart, float64, error) {
	merged, err := MergeLimited(b.maxDen, b.Part, other.Part)
	if err != nil {
		return boundedPart{}, 0, err
	}
	return boundedPart{Part: merged, maxDen: b.maxDen}, mergeCost(b.Part, other.Part, merged), nil
}
