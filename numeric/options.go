// SPDX-License-Identifier: MIT

package numeric

import (
	"log/slog"

	"github.com/katalvlaran/probcalc/cluster"
)

// DefaultTargetPartCount is the numeric family's part budget. Float parts
// are cheap, yet the default stays below the exact family's because
// rounding noise grows with every merge round.
const DefaultTargetPartCount = 200

// Option configures a RandomVariable. Results of composition inherit the
// receiver's options.
type Option func(*options)

type options struct {
	cfg cluster.Config
}

func newOptions(opts ...Option) options {
	o := options{cfg: cluster.NewConfig(cluster.WithTargetPartCount(DefaultTargetPartCount))}
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
