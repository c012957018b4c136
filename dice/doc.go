// SPDX-License-Identifier: MIT

// Package dice parses dice expressions such as "3d6 + 2*d4" and
// evaluates them with either probability family.
//
// Grammar (whitespace is ignored, + binds looser than *):
//
//	sum     := product ('+' product)*
//	product := atom ('*' atom)*
//	atom    := [N] 'd' S | integer | '(' sum ')'
//
// Semantics:
//   - NdS is the sum of N independent fair S-sided dice; dS means 1dS.
//   - k*X with an integer literal k on the left is k independent copies
//     of X added together (X.Repeat(k)), so 3*d6 equals 3d6.
//   - any other a*b is the product of independent variables: d6*3 is a
//     single die scaled by three, d6*d6 the product of two dice.
//   - an integer alone is a constant.
//
// Errors: ErrSyntax for malformed input, ErrInvalidDice for counts or
// sides outside [1, MaxDice].
package dice
