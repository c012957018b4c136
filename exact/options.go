// SPDX-License-Identifier: MIT

package exact

import (
	"log/slog"
	"math/big"

	"github.com/katalvlaran/probcalc/cluster"
)

const (
	// DefaultTargetPartCount is the exact family's part budget.
	DefaultTargetPartCount = 800

	// DefaultMaxDenominator bounds merged fractions (2^48).
	DefaultMaxDenominator = int64(1) << 48
)

const panicMaxDenominatorInvalid = "exact: WithMaxDenominator: bound must be >= 0"

// Option configures a RandomVariable. Results of Add, Multiply and
// Repeat inherit the receiver's options.
type Option func(*options)

type options struct {
	cfg    cluster.Config
	maxDen *big.Int // nil: merges stay exact
}

func newOptions(opts ...Option) options {
	o := options{
		cfg:    cluster.NewConfig(cluster.WithTargetPartCount(DefaultTargetPartCount)),
		maxDen: big.NewInt(DefaultMaxDenominator),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTargetPartCount sets the simplification budget.
func WithTargetPartCount(n int) Option {
	set := cluster.WithTargetPartCount(n)
	return func(o *options) { set(&o.cfg) }
}

// WithSlackFactor sets the tolerated overshoot of the budget.
func WithSlackFactor(f float64) Option {
	set := cluster.WithSlackFactor(f)
	return func(o *options) { set(&o.cfg) }
}

// WithWorkers parallelises cross products and merge costing.
func WithWorkers(n int) Option {
	set := cluster.WithWorkers(n)
	return func(o *options) { set(&o.cfg) }
}

// WithMassTolerance sets the accepted relative mass drift per simplify.
func WithMassTolerance(tol float64) Option {
	set := cluster.WithMassTolerance(tol)
	return func(o *options) { set(&o.cfg) }
}

// WithLogger receives composition and simplification Debug records.
func WithLogger(l *slog.Logger) Option {
	set := cluster.WithLogger(l)
	return func(o *options) { set(&o.cfg) }
}

// WithMaxDenominator bounds the denominators of merged parts. 0 keeps
// merges exact (fractions may then grow without limit).
func WithMaxDenominator(d int64) Option {
	if d < 0 {
		panic(panicMaxDenominatorInvalid)
	}
	return func(o *options) {
		if d == 0 {
			o.maxDen = nil
			return
		}
		o.maxDen = big.NewInt(d)
	}
}
