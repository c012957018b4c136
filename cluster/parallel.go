// SPDX-License-Identifier: MIT

package cluster

import "golang.org/x/sync/errgroup"

// Parallel calls fn(i) for i in [0, n). With workers ≤ 1 the calls run in
// order on the calling goroutine; otherwise at most workers goroutines run
// them concurrently. fn must only write to slots owned by index i. The
// first error is returned.
func Parallel(n, workers int, fn func(i int) error) error {
	if workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}

// CrossProduct applies op to every pair (left[i], right[j]); the result for
// the pair lives at index i*len(right)+j, whatever the worker count.
func CrossProduct[C any](left, right []C, workers int, op func(a, b C) (C, error)) ([]C, error) {
	m := len(right)
	out := make([]C, len(left)*m)
	err := Parallel(len(left), workers, func(i int) error {
		for j, b := range right {
			c, err := op(left[i], b)
			if err != nil {
				return err
			}
			out[i*m+j] = c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
