// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"io"
	"log/slog"
	"math"
)

// Engine defaults. The families override DefaultTargetPartCount with their
// own budgets (exact parts are far more expensive to carry).
const (
	// DefaultTargetPartCount is the part budget Simplify reduces towards.
	DefaultTargetPartCount = 200

	// DefaultSlackFactor lets the result exceed the target by 10% before
	// another merge round is started.
	DefaultSlackFactor = 1.1

	// DefaultWorkers keeps everything on the calling goroutine.
	DefaultWorkers = 1

	// DefaultMassTolerance is the relative change in total mass Simplify
	// accepts before reporting ErrMassDrift.
	DefaultMassTolerance = 1e-9
)

const (
	panicTargetInvalid    = "cluster: WithTargetPartCount: target must be >= 1"
	panicSlackInvalid     = "cluster: WithSlackFactor: slack must be finite and >= 1"
	panicWorkersInvalid   = "cluster: WithWorkers: workers must be >= 1"
	panicToleranceInvalid = "cluster: WithMassTolerance: tolerance must be >= 0"
)

// Config is the resolved engine configuration. The zero value is not
// usable; build one with NewConfig.
type Config struct {
	// TargetPartCount is the number of parts Simplify aims for.
	TargetPartCount int
	// SlackFactor triggers another round while len > SlackFactor·target.
	SlackFactor float64
	// Workers bounds the goroutines used for independent pairwise work.
	Workers int
	// MassTolerance is the accepted relative total-mass change.
	MassTolerance float64
	// Logger receives Debug records; never nil after NewConfig.
	Logger *slog.Logger
}

// Option mutates a Config. Constructors panic on nonsensical values
// (programmer error); Validate catches configs assembled by hand.
type Option func(*Config)

// NewConfig returns the defaults with opts applied in order.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		TargetPartCount: DefaultTargetPartCount,
		SlackFactor:     DefaultSlackFactor,
		Workers:         DefaultWorkers,
		MassTolerance:   DefaultMassTolerance,
		Logger:          discardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Validate reports ErrInvalidConfig for a config Simplify cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TargetPartCount < 1:
		return fmt.Errorf("%w: target part count %d", ErrInvalidConfig, c.TargetPartCount)
	case math.IsNaN(c.SlackFactor) || math.IsInf(c.SlackFactor, 0) || c.SlackFactor < 1:
		return fmt.Errorf("%w: slack factor %g", ErrInvalidConfig, c.SlackFactor)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case math.IsNaN(c.MassTolerance) || c.MassTolerance < 0:
		return fmt.Errorf("%w: mass tolerance %g", ErrInvalidConfig, c.MassTolerance)
	}
	return nil
}

// WithTargetPartCount sets the part budget.
func WithTargetPartCount(n int) Option {
	if n < 1 {
		panic(panicTargetInvalid)
	}
	return func(c *Config) { c.TargetPartCount = n }
}

// WithSlackFactor sets how far above the target a result may stay.
func WithSlackFactor(f float64) Option {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 {
		panic(panicSlackInvalid)
	}
	return func(c *Config) { c.SlackFactor = f }
}

// WithWorkers enables parallel cost evaluation and cross products.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}
	return func(c *Config) { c.Workers = n }
}

// WithMassTolerance sets the accepted relative mass drift. +Inf disables
// the check.
func WithMassTolerance(tol float64) Option {
	if math.IsNaN(tol) || tol < 0 {
		panic(panicToleranceInvalid)
	}
	return func(c *Config) { c.MassTolerance = tol }
}

// WithLogger routes engine Debug records to l. nil restores the discard
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l == nil {
			l = discardLogger()
		}
		c.Logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
