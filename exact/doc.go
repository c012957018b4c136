// SPDX-License-Identifier: MIT

// Package exact implements the exact probability family: every
// probability, value and moment is a math/big.Rat.
//
// 🚀 What does it compute?
//
//	Distributions of sums and products of independent discrete random
//	variables (dice!). A RandomVariable is a list of Parts; adding two
//	variables adds every pair of parts, then the simplification engine
//	(package cluster) merges parts back under a budget.
//
// ✨ Exactness contract:
//   - while no merge happens (part count under budget) all results are
//     exact: FairDie(3).Add(FairDie(3)) gives exactly 1/9, 2/9, 3/9, ...
//   - merges re-rationalise p, mean and square to a bounded denominator
//     (WithMaxDenominator) so fractions stay small; the loss per merge is
//     below 1/maxDenominator.
//   - CDF bounds are computed exactly in rationals from the stored
//     moments; they are exact whenever the parts are.
//
// ⚙️ Usage:
//
//	d6, _ := exact.FairDie(6)
//	three, _ := d6.Repeat(3)          // 3d6 via doubling
//	b := three.CDF(big.NewRat(10, 1)) // P(3d6 ≤ 10) ∈ [b.Lower, b.Upper]
//	for _, o := range three.Outcomes() {
//	    fmt.Println(o.Value, o.P)
//	}
//
// Performance: Add/Multiply are O(N·M) part operations plus a simplify
// pass; Repeat(k) needs O(log k) compositions.
package exact
