// SPDX-License-Identifier: MIT

package cluster

// Outcome is a single point mass: P is the probability of Value.
type Outcome[V any] struct {
	Value V
	P     V
}

// Bound is an interval [Lower, Upper] that contains a probability.
type Bound[V any] struct {
	Lower V
	Upper V
}

// ProbabilityCluster is the contract of one part family. C is the
// concrete part type, V the scalar type its probabilities and values use
// (*big.Rat for the exact family, float64 for the numeric one).
//
// Implementations are immutable values: no method changes its receiver
// or its arguments.
type ProbabilityCluster[C any, V any] interface {
	Mergeable[C]

	// Add models the sum of two independent clusters.
	Add(other C) (C, error)
	// Multiply models the product of two independent clusters.
	Multiply(other C) (C, error)
	// PartialCDF bounds the mass of this cluster at or below value.
	PartialCDF(value V) Bound[V]
	// Outcomes expands the cluster into at most three point masses whose
	// first two moments equal the cluster's.
	Outcomes() []Outcome[V]
	// Uncertainty is the integral of the CDF bound gap divided by p.
	Uncertainty(exactUpper bool) float64
}

// Mergeable is what Simplify needs from a part.
type Mergeable[C any] interface {
	// CmpMean orders by conditional mean (-1, 0, +1).
	CmpMean(other C) int
	// CmpMin orders by lower value bound (-1, 0, +1).
	CmpMin(other C) int
	// MergeCost merges the receiver with other and returns the merged
	// part together with the probability-weighted growth in CDF
	// uncertainty the merge introduces.
	MergeCost(other C) (merged C, cost float64, err error)
	// Mass returns p as float64; used for mass-conservation checks.
	Mass() float64
}
