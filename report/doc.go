// SPDX-License-Identifier: MIT

// Package report turns a distribution into text: histogram bins with
// lower/upper bars, tail probabilities, CDF tables and summary moments.
//
// It works on float64 views only (Distribution), so both the exact and
// the numeric family can be reported. Terminal colours come from
// fatih/color and switch off automatically when stdout is not a TTY.
package report
