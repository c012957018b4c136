// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/probcalc/report"
)

func newOutcomesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "outcomes <expr>",
		Short: "List point masses (small distributions only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := a.evaluate(args[0])
			if err != nil {
				return err
			}
			return report.WriteOutcomes(cmd.OutOrStdout(), "outcomes of "+ev.expr.String(), ev.outcomes(), report.DefaultBarWidth)
		},
	}
}

func newCDFCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cdf <expr> <value>...",
		Short: "Bound P(X ≤ value) for each value",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args)-1)
			for _, s := range args[1:] {
				v, err := parseFloat("value", s)
				if err != nil {
					return err
				}
				values = append(values, v)
			}
			ev, err := a.evaluate(args[0])
			if err != nil {
				return err
			}
			return report.WriteCDF(cmd.OutOrStdout(), "cdf of "+ev.expr.String(), report.CDFTable(ev.dist, values))
		},
	}
}

func newHistogramCmd(a *app) *cobra.Command {
	var (
		steps      int
		cumulative bool
		from, to   float64
	)
	cmd := &cobra.Command{
		Use:   "histogram <expr>",
		Short: "Print a histogram with lower and upper mass bounds per bin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("steps must be >= 1, got %d", steps)
			}
			ev, err := a.evaluate(args[0])
			if err != nil {
				return err
			}
			opts := []report.HistogramOption{report.WithSteps(steps)}
			if cumulative {
				opts = append(opts, report.WithCumulative())
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				lo, hi, err := ev.dist.SupportFloat64()
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("from") {
					lo = from
				}
				if cmd.Flags().Changed("to") {
					hi = to
				}
				opts = append(opts, report.WithRange(lo, hi))
			}
			bins, err := report.Histogram(ev.dist, opts...)
			if err != nil {
				return err
			}
			title := "histogram of " + ev.expr.String()
			if cumulative {
				title = "cumulative " + title
			}
			return report.WriteHistogram(cmd.OutOrStdout(), title, bins, report.DefaultBarWidth)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", report.DefaultSteps, "number of bins")
	cmd.Flags().BoolVar(&cumulative, "cumulative", false, "print P(X ≤ bin end) instead of bin mass")
	cmd.Flags().Float64Var(&from, "from", 0, "start of the value range (default: support min)")
	cmd.Flags().Float64Var(&to, "to", 0, "end of the value range (default: support max)")
	return cmd
}

func newTailCmd(a *app) *cobra.Command {
	var below, above float64
	cmd := &cobra.Command{
		Use:   "tail <expr>",
		Short: "Bound P(X ≤ below) and P(X > above)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := a.evaluate(args[0])
			if err != nil {
				return err
			}
			tails, err := report.Tail(ev.dist, below, above)
			if err != nil {
				return err
			}
			return report.WriteTail(cmd.OutOrStdout(), "tails of "+ev.expr.String(), tails)
		},
	}
	cmd.Flags().Float64Var(&below, "below", 0, "lower tail threshold")
	cmd.Flags().Float64Var(&above, "above", 0, "upper tail threshold")
	_ = cmd.MarkFlagRequired("below")
	_ = cmd.MarkFlagRequired("above")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <expr>",
		Short: "Print part count, support, mass, mean and standard deviation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := a.evaluate(args[0])
			if err != nil {
				return err
			}
			s, err := report.Summarize(ev.dist)
			if err != nil {
				return err
			}
			return report.WriteSummary(cmd.OutOrStdout(), "summary of "+ev.expr.String(), s)
		},
	}
}
