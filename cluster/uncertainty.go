// SPDX-License-Identifier: MIT

package cluster

import "math"

// UncertaintyIntegral integrates upper−lower of the partial CDF bound of a
// unit-mass cluster over every query value. Inputs are the variance d, the
// distances max−mean and mean−min, and whether the variance already sits
// at its ceiling (max−mean)(mean−min) (all mass on the two endpoints).
//
// The integral is a ranking heuristic, not a guarantee:
//   - d ≤ 0 or a zero-width range → 0.
//   - saturated && exactUpper → 0, the bound is exact there.
//   - saturated && !exactUpper → evaluated with d/2, so fully polarised
//     clusters are not mistaken for free merges.
//
// The three terms cover [min, bound1], [bound1, bound2] and [bound2, max].
func UncertaintyIntegral(d, dMaxMean, dMeanMin float64, saturated, exactUpper bool) float64 {
	dMaxMin := dMaxMean + dMeanMin
	if d <= 0 || dMaxMin <= 0 || dMaxMean <= 0 || dMeanMin <= 0 {
		return 0
	}
	dUpper := dMaxMean * dMeanMin
	if saturated {
		if exactUpper {
			return 0
		}
		d /= 2
	}

	gap := dUpper - d
	ret := 0.0
	if gap > 0 {
		ratio := (dUpper*dUpper + d*d + d*(dMaxMean*dMaxMean+dMeanMin*dMeanMin)) / (gap * gap)
		ret = math.Log(ratio) * gap / dMaxMin
	}

	s := math.Sqrt(d)
	ret += s * (math.Atan(-s/dMeanMin) - math.Atan(-dMaxMean/s))
	ret += s * (math.Atan(-s/dMaxMean) - math.Atan(-dMeanMin/s))
	return ret
}
