// SPDX-License-Identifier: MIT

// Package config loads process configuration from PROBCALC_* environment
// variables and converts it into options of the chosen family.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/probcalc/exact"
	"github.com/katalvlaran/probcalc/numeric"
)

// Family names accepted by PROBCALC_FAMILY and --family.
const (
	FamilyExact   = "exact"
	FamilyNumeric = "numeric"
)

var (
	// ErrUnknownFamily is returned for a family other than exact or numeric.
	ErrUnknownFamily = errors.New("config: unknown family")

	// ErrInvalidValue is returned for a setting outside its valid range.
	ErrInvalidValue = errors.New("config: invalid value")
)

// Config is the process configuration. Zero TargetParts selects the
// family's default budget.
type Config struct {
	Family         string     `env:"PROBCALC_FAMILY"          envDefault:"exact"`
	TargetParts    int        `env:"PROBCALC_TARGET_PARTS"`
	Slack          float64    `env:"PROBCALC_SLACK"           envDefault:"1.1"`
	Workers        int        `env:"PROBCALC_WORKERS"         envDefault:"1"`
	MaxDenominator int64      `env:"PROBCALC_MAX_DENOMINATOR" envDefault:"281474976710656"`
	LogLevel       slog.Level `env:"PROBCALC_LOG_LEVEL"       envDefault:"warn"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting. Flags that override a loaded Config
// should be validated again.
func (c Config) Validate() error {
	switch c.Family {
	case FamilyExact, FamilyNumeric:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFamily, c.Family)
	}
	switch {
	case c.TargetParts < 0:
		return fmt.Errorf("%w: target parts %d", ErrInvalidValue, c.TargetParts)
	case math.IsNaN(c.Slack) || math.IsInf(c.Slack, 0) || c.Slack < 1:
		return fmt.Errorf("%w: slack %g", ErrInvalidValue, c.Slack)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidValue, c.Workers)
	case c.MaxDenominator < 0:
		return fmt.Errorf("%w: max denominator %d", ErrInvalidValue, c.MaxDenominator)
	}
	return nil
}

// ExactOptions converts c into exact family options. c must be valid.
func (c Config) ExactOptions(logger *slog.Logger) []exact.Option {
	opts := []exact.Option{
		exact.WithSlackFactor(c.Slack),
		exact.WithWorkers(c.Workers),
		exact.WithMaxDenominator(c.MaxDenominator),
		exact.WithLogger(logger),
	}
	if c.TargetParts > 0 {
		opts = append(opts, exact.WithTargetPartCount(c.TargetParts))
	}
	return opts
}

// NumericOptions converts c into numeric family options. c must be valid.
func (c Config) NumericOptions(logger *slog.Logger) []numeric.Option {
	opts := []numeric.Option{
		numeric.WithSlackFactor(c.Slack),
		numeric.WithWorkers(c.Workers),
		numeric.WithLogger(logger),
	}
	if c.TargetParts > 0 {
		opts = append(opts, numeric.WithTargetPartCount(c.TargetParts))
	}
	return opts
}
