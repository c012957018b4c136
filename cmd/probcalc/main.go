// SPDX-License-Identifier: MIT

// Command probcalc evaluates dice expressions and prints their
// distribution, CDF bounds, tails, histogram or summary.
//
//	probcalc outcomes "3d6"
//	probcalc cdf "100d20" 1000 1050 --family numeric
//	probcalc histogram "2d6 + d4" --steps 20
//	probcalc tail "10d10" --below 30 --above 80
//	probcalc stats "d6 * d6"
//
// Settings come from PROBCALC_* environment variables (see package
// config); flags override them.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
