// SPDX-License-Identifier: MIT

package rational

import "errors"

var (
	// ErrParse is returned when a string is not a valid rational literal.
	ErrParse = errors.New("rational: cannot parse value")

	// ErrBadDenominator is returned when a denominator bound is not positive.
	ErrBadDenominator = errors.New("rational: denominator bound must be positive")
)
