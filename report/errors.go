// SPDX-License-Identifier: MIT

package report

import "errors"

var (
	// ErrEmptyDistribution is returned for a distribution without support.
	ErrEmptyDistribution = errors.New("report: distribution has no support")

	// ErrInvalidRange is returned when a histogram range is empty or not finite.
	ErrInvalidRange = errors.New("report: invalid value range")
)
