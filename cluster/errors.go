// SPDX-License-Identifier: MIT

package cluster

import "errors"

// Sentinel errors shared by the exact and numeric families. Callers match
// them with errors.Is; the families wrap them with call-site detail.
var (
	// ErrInvariantViolation marks a part whose moments break
	// min ≤ mean ≤ max or mean² ≤ square ≤ mean² + (max−mean)(mean−min).
	ErrInvariantViolation = errors.New("cluster: part invariant violated")

	// ErrEmptyMerge is returned when Merge is called without parts.
	ErrEmptyMerge = errors.New("cluster: merge needs at least one part")

	// ErrInvalidArgument reports an unsupported operand (repeat count < 1,
	// die with < 1 side, nil variable, negative probability).
	ErrInvalidArgument = errors.New("cluster: invalid argument")

	// ErrMassDrift is returned when simplification changed the total
	// probability mass beyond the configured tolerance.
	ErrMassDrift = errors.New("cluster: probability mass drifted")

	// ErrInvalidConfig reports an engine configuration that cannot work.
	ErrInvalidConfig = errors.New("cluster: invalid configuration")
)
