// SPDX-License-Identifier: MIT

package numeric

import "math"

// LogAddExp returns log(exp(a) + exp(b)) without leaving log space.
func LogAddExp(a, b float64) float64 {
	if math.IsInf(a, -1) {
		return b
	}
	if math.IsInf(b, -1) {
		return a
	}
	if a < b {
		a, b = b, a
	}
	return a + math.Log1p(math.Exp(b-a))
}

// LogSumExp returns log(Σ exp(x_i)); -Inf for no input.
func LogSumExp(xs ...float64) float64 {
	hi := math.Inf(-1)
	for _, x := range xs {
		if x > hi {
			hi = x
		}
	}
	if math.IsInf(hi, 0) {
		return hi
	}
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - hi)
	}
	return hi + math.Log(sum)
}
