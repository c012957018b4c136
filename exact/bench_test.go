// SPDX-License-Identifier: MIT

package exact_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/probcalc/exact"
)

// benchmarkRepeat sums k d6 with the given part budget.
func benchmarkRepeat(b *testing.B, k, target int, opts ...exact.Option) {
	opts = append(opts, exact.WithTargetPartCount(target))
	d6, err := exact.FairDie(6, opts...)
	if err != nil {
		b.Fatalf("FairDie failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d6.Repeat(k); err != nil {
			b.Fatalf("Repeat failed: %v", err)
		}
	}
}

// BenchmarkRepeat_10d6_Small keeps a tight 50-part budget.
func BenchmarkRepeat_10d6_Small(b *testing.B) { benchmarkRepeat(b, 10, 50) }

// BenchmarkRepeat_50d6 sums fifty dice with a 100-part budget.
func BenchmarkRepeat_50d6(b *testing.B) { benchmarkRepeat(b, 50, 100) }

// BenchmarkRepeat_50d6_Parallel is BenchmarkRepeat_50d6 on four workers.
func BenchmarkRepeat_50d6_Parallel(b *testing.B) {
	benchmarkRepeat(b, 50, 100, exact.WithWorkers(4))
}

// BenchmarkCDF queries a simplified 20d6 at every integer of its support.
func BenchmarkCDF(b *testing.B) {
	d6, _ := exact.FairDie(6, exact.WithTargetPartCount(100))
	many, err := d6.Repeat(20)
	if err != nil {
		b.Fatalf("Repeat failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for v := int64(20); v <= 120; v++ {
			_ = many.CDF(big.NewRat(v, 1))
		}
	}
}
