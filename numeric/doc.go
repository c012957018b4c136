// SPDX-License-Identifier: MIT

// Package numeric is the floating-point probability family. Moments are
// float64 and masses are stored as natural logarithms, so products of
// thousands of small probabilities do not underflow.
//
// It mirrors package exact operation for operation (Part, RandomVariable,
// FairDie, Add, Multiply, Repeat, CDF, Outcomes) and adds a few
// sub-distribution tools: Split, Scale and Concat.
//
// Rounding policy:
//
//	Part constructors absorb violations of the moment invariant up to
//	Epsilon (relative) by clamping; anything larger is reported as
//	cluster.ErrInvariantViolation. Merges always clamp.
//
// ⚙️ Usage:
//
//	d20, _ := numeric.FairDie(20)
//	many, _ := d20.Repeat(100)   // 100d20, ≤ ~200 parts
//	b := many.CDF(1000)          // P(100d20 ≤ 1000) ∈ [b.Lower, b.Upper]
package numeric
