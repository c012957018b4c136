// SPDX-License-Identifier: MIT

package cluster

// KthLargest returns the k-th largest value of xs (k is 1-based) without
// sorting: a three-way quickselect on a copy. xs must not contain NaN and
// 1 ≤ k ≤ len(xs) must hold; out-of-range k is clamped.
//
// Complexity: O(n) expected, duplicates cost nothing extra thanks to the
// three-way partition.
func KthLargest(xs []float64, k int) float64 {
	if len(xs) == 0 {
		return 0
	}
	k = min(max(k, 1), len(xs))

	buf := make([]float64, len(xs))
	copy(buf, xs)

	// k-th largest == (n-k)-th smallest, 0-based.
	return selectSmallest(buf, len(buf)-k)
}

// selectSmallest partially orders xs in place and returns the element that
// would sit at index k after a full ascending sort.
func selectSmallest(xs []float64, k int) float64 {
	lo, hi := 0, len(xs)-1
	for lo < hi {
		pivot := medianOfThree(xs[lo], xs[lo+(hi-lo)/2], xs[hi])

		// [lo,lt) < pivot, [lt,gt] == pivot, (gt,hi] > pivot
		lt, i, gt := lo, lo, hi
		for i <= gt {
			switch {
			case xs[i] < pivot:
				xs[lt], xs[i] = xs[i], xs[lt]
				lt++
				i++
			case xs[i] > pivot:
				xs[i], xs[gt] = xs[gt], xs[i]
				gt--
			default:
				i++
			}
		}

		switch {
		case k < lt:
			hi = lt - 1
		case k > gt:
			lo = gt + 1
		default:
			return pivot
		}
	}
	return xs[k]
}

func medianOfThree(a, b, c float64) float64 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
	}
	if a > b {
		return a
	}
	return b
}
