// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/probcalc/config"
	"github.com/katalvlaran/probcalc/dice"
	"github.com/katalvlaran/probcalc/report"
)

// app carries the loaded configuration between cobra hooks and commands.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	family      string
	logLevel    string
	targetParts int
	workers     int
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "probcalc",
		Short:        "Distributions of dice expressions with guaranteed CDF bounds",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.family, "family", "", "probability family: exact or numeric (PROBCALC_FAMILY)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (PROBCALC_LOG_LEVEL)")
	flags.IntVar(&a.targetParts, "target-parts", 0, "simplification budget, 0 for the family default (PROBCALC_TARGET_PARTS)")
	flags.IntVar(&a.workers, "workers", 0, "parallel workers (PROBCALC_WORKERS)")

	root.AddCommand(
		newOutcomesCmd(a),
		newCDFCmd(a),
		newHistogramCmd(a),
		newTailCmd(a),
		newStatsCmd(a),
	)
	return root
}

// load reads the environment, applies explicitly set flags and builds
// the logger on the command's stderr.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("family") {
		cfg.Family = a.family
	}
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(a.logLevel)); err != nil {
			return fmt.Errorf("%w: log level %q", config.ErrInvalidValue, a.logLevel)
		}
	}
	if flags.Changed("target-parts") {
		cfg.TargetParts = a.targetParts
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))
	return nil
}

// evaluated is an expression evaluated in the configured family.
type evaluated struct {
	expr     dice.Expr
	dist     report.Distribution
	outcomes func() []report.OutcomeRow
}

func (a *app) evaluate(src string) (evaluated, error) {
	e, err := dice.Parse(src)
	if err != nil {
		return evaluated{}, err
	}

	var ev evaluated
	switch a.cfg.Family {
	case config.FamilyExact:
		rv, err := dice.Eval(e, dice.Exact(a.cfg.ExactOptions(a.logger)...))
		if err != nil {
			return evaluated{}, err
		}
		ev = evaluated{expr: e, dist: rv, outcomes: func() []report.OutcomeRow {
			var rows []report.OutcomeRow
			for _, o := range rv.Outcomes() {
				p, _ := o.P.Float64()
				rows = append(rows, report.OutcomeRow{Value: o.Value.RatString(), P: p, Exact: o.P.RatString()})
			}
			return rows
		}}

	case config.FamilyNumeric:
		rv, err := dice.Eval(e, dice.Numeric(a.cfg.NumericOptions(a.logger)...))
		if err != nil {
			return evaluated{}, err
		}
		ev = evaluated{expr: e, dist: rv, outcomes: func() []report.OutcomeRow {
			var rows []report.OutcomeRow
			for _, o := range rv.Outcomes() {
				rows = append(rows, report.OutcomeRow{Value: strconv.FormatFloat(o.Value, 'g', -1, 64), P: o.P})
			}
			return rows
		}}

	default:
		return evaluated{}, fmt.Errorf("%w: %q", config.ErrUnknownFamily, a.cfg.Family)
	}

	a.logger.Debug("evaluated", "expr", e.String(), "family", a.cfg.Family, "parts", ev.dist.Len())
	return ev, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}
