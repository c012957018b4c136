// SPDX-License-Identifier: MIT

// Package cluster defines the contract shared by the exact and numeric
// probability families and the simplification engine that keeps their
// part lists bounded.
//
// 🚀 What is a cluster?
//
//	A cluster ("part") is a lump of probability mass over a value range
//	[min, max], summarised by its mass p, its conditional mean and its
//	conditional second moment. Those five numbers are enough to add and
//	multiply independent clusters, to bound the CDF, and to expand the
//	cluster back into at most three point outcomes.
//
// ✨ What lives here:
//   - ProbabilityCluster: the interface both Part families implement.
//   - Outcome / Bound: fixed-field value records.
//   - Simplify: greedy nearest-neighbour merging under a global
//     threshold, generic over any Mergeable part type.
//   - Config / Option: engine knobs (target part count, slack, workers,
//     mass tolerance, logger).
//
// Algorithm outline (Simplify):
//  1. parts ≤ target → return them sorted by min.
//  2. sort by mean; cost every adjacent pair with MergeCost.
//  3. threshold = target-th largest cost (quickselect).
//  4. scan left to right, merging the running part with its right
//     neighbour while the pair costs ≤ threshold.
//  5. repeat while the result exceeds slack·target; sort by min.
//
// Complexity: O(n) cost evaluations and O(n) expected selection per round.
package cluster
