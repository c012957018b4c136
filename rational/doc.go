// SPDX-License-Identifier: MIT

// Package rational collects the small exact-arithmetic helpers the exact
// probability family needs on top of math/big.Rat.
//
// What is here:
//   - LimitDenominator: closest rational with a bounded denominator
//     (continued-fraction best approximation), used to keep merged
//     moments from accumulating ever larger denominators.
//   - Min / Max / Clamp: ordering helpers that never alias their inputs.
//   - Parse: "1/3", "0.25", "7" into a *big.Rat.
//
// Every function returns a freshly allocated *big.Rat; inputs are never
// mutated.
package rational
