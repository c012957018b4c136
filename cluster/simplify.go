// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"math"
	"slices"
)

// Simplify merges adjacent (by mean) parts until at most about
// cfg.TargetPartCount remain, preferring merges that add the least CDF
// uncertainty. The input slice is not modified.
//
// Behavior:
//   - len(parts) ≤ target: the parts come back unchanged, sorted by min.
//   - otherwise rounds of threshold merging run until the count is at
//     most SlackFactor·target. Each round merges at least one pair.
//   - the result is sorted by min so CDF scans can stop early.
//
// Errors:
//   - ErrInvalidConfig for an unusable cfg.
//   - any error returned by MergeCost.
//   - ErrMassDrift when the merged total mass moved beyond MassTolerance.
//
// Complexity: O(n log n) for the sorts plus O(n) MergeCost calls per round.
func Simplify[C Mergeable[C]](parts []C, cfg Config) ([]C, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := slices.Clone(parts)
	rounds := 0
	for len(out) > cfg.TargetPartCount {
		rounds++
		before := len(out)
		next, threshold, err := mergeRound(out, cfg)
		if err != nil {
			return nil, err
		}
		out = next
		cfg.Logger.Debug("simplify round",
			"round", rounds,
			"parts_in", before,
			"parts_out", len(out),
			"threshold", threshold)

		if float64(len(out)) <= cfg.SlackFactor*float64(cfg.TargetPartCount) {
			break
		}
		if len(out) == before {
			// unreachable for finite costs; keeps a broken MergeCost from spinning
			cfg.Logger.Warn("simplify made no progress", "parts", len(out))
			break
		}
	}

	slices.SortStableFunc(out, func(a, b C) int { return a.CmpMin(b) })

	if rounds > 0 {
		massIn, massOut := TotalMass(parts), TotalMass(out)
		scale := math.Max(math.Abs(massIn), math.SmallestNonzeroFloat64)
		if math.Abs(massOut-massIn) > cfg.MassTolerance*scale {
			return nil, fmt.Errorf("%w: %g before, %g after", ErrMassDrift, massIn, massOut)
		}
	}

	return out, nil
}

// TotalMass sums Mass over parts.
func TotalMass[C Mergeable[C]](parts []C) float64 {
	var sum float64
	for _, p := range parts {
		sum += p.Mass()
	}
	return sum
}

// mergeRound runs one threshold pass and returns the new parts and the
// threshold that was used. Requires len(parts) > cfg.TargetPartCount.
func mergeRound[C Mergeable[C]](parts []C, cfg Config) ([]C, float64, error) {
	sorted := slices.Clone(parts)
	slices.SortStableFunc(sorted, func(a, b C) int { return a.CmpMean(b) })

	merged, costs, err := adjacentCosts(sorted, cfg.Workers)
	if err != nil {
		return nil, 0, err
	}

	// n-1 costs and n > target, so the target-th largest always exists.
	threshold := KthLargest(costs, cfg.TargetPartCount)

	out := make([]C, 0, cfg.TargetPartCount+1)
	current := sorted[0]
	currentMerged := false
	for i := 1; i < len(sorted); i++ {
		var (
			candidate C
			cost      float64
		)
		if currentMerged {
			// the running part changed; the precomputed pair no longer applies
			candidate, cost, err = current.MergeCost(sorted[i])
			if err != nil {
				return nil, 0, err
			}
			cost = sanitizeCost(cost)
		} else {
			candidate, cost = merged[i-1], costs[i-1]
		}

		if cost <= threshold {
			current = candidate
			currentMerged = true
			continue
		}
		out = append(out, current)
		current = sorted[i]
		currentMerged = false
	}
	out = append(out, current)

	return out, threshold, nil
}

// adjacentCosts evaluates MergeCost for every neighbouring pair of sorted.
// Costs are sanitized so NaN never poisons the selection.
func adjacentCosts[C Mergeable[C]](sorted []C, workers int) ([]C, []float64, error) {
	n := len(sorted) - 1
	merged := make([]C, n)
	costs := make([]float64, n)

	err := Parallel(n, workers, func(i int) error {
		m, c, err := sorted[i].MergeCost(sorted[i+1])
		if err != nil {
			return err
		}
		merged[i] = m
		costs[i] = sanitizeCost(c)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return merged, costs, nil
}

// sanitizeCost maps NaN to +Inf: an unrankable merge is never preferred.
func sanitizeCost(c float64) float64 {
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}
