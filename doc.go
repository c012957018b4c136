// SPDX-License-Identifier: MIT

// Package probcalc computes distributions of sums and products of
// independent discrete random variables, dice above all, with guaranteed
// lower and upper bounds on the CDF.
//
// 🚀 What is probcalc?
//
//	A distribution is a list of parts. Each part keeps a probability mass,
//	a value range and its first two conditional moments. Composition adds
//	or multiplies every pair of parts; simplification merges neighbours
//	back under a budget, choosing the merges that widen the CDF bounds the
//	least. The bounds stay valid after any number of merges.
//
// Packages:
//
//	rational/ : big.Rat helpers, continued-fraction denominator limiting
//	cluster/  : the part contract, the generic Simplify engine, errgroup fan-out
//	exact/    : the exact family (math/big.Rat everywhere)
//	numeric/  : the float64 family with log-space masses
//	dice/     : "3d6 + 2*d4" parser and evaluator for either family
//	report/   : histograms, tails, CDF tables and summaries as text
//	config/   : PROBCALC_* environment settings
//	cmd/probcalc: the command line front end
//
// Quick example:
//
//	d6, _ := exact.FairDie(6)
//	three, _ := d6.Repeat(3)
//	b := three.CDF(big.NewRat(10, 1)) // exactly 1/2 for both ends
//
//	go install github.com/katalvlaran/probcalc/cmd/probcalc@latest
package probcalc
