// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
)

// DefaultBarWidth is the width of the longest bar in runes.
const DefaultBarWidth = 40

var colorize = struct {
	Header func(...interface{}) string
	Axis   func(...interface{}) string
	Bar    func(...interface{}) string
	Bound  func(...interface{}) string
}{
	Header: color.New(color.Bold).SprintFunc(),
	Axis:   color.New(color.FgCyan).SprintFunc(),
	Bar:    color.New(color.FgGreen).SprintFunc(),
	Bound:  color.New(color.FgYellow).SprintFunc(),
}

// bar renders a bar of frac·width blocks padded to width.
func bar(frac float64, width int) string {
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	n := int(math.Round(math.Min(frac, 1) * float64(width)))
	return colorize.Bar(strings.Repeat("█", n)) + strings.Repeat(" ", width-n)
}

func bound(b Bound) string {
	return colorize.Bound(fmt.Sprintf("[%.4f, %.4f]", b.Lower, b.Upper))
}

// WriteHistogram prints one line per bin: range, bar of the midpoint
// estimate, the estimate and its bound.
func WriteHistogram(w io.Writer, title string, bins []Bin, width int) error {
	var top float64
	for _, b := range bins {
		top = math.Max(top, b.Mid)
	}
	if _, err := fmt.Fprintln(w, colorize.Header(title)); err != nil {
		return err
	}
	for _, b := range bins {
		frac := 0.0
		if top > 0 {
			frac = b.Mid / top
		}
		_, err := fmt.Fprintf(w, "%s  %s  %.4f  %s\n",
			colorize.Axis(fmt.Sprintf("%9.3f ..%9.3f", b.From, b.To)),
			bar(frac, width),
			b.Mid,
			bound(Bound{Lower: b.Lower, Upper: b.Upper}))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the summary as a two-column table.
func WriteSummary(w io.Writer, title string, s Summary) error {
	rows := [][2]string{
		{"parts", fmt.Sprintf("%d", s.Parts)},
		{"support", fmt.Sprintf("[%.4f, %.4f]", s.Min, s.Max)},
		{"mass", fmt.Sprintf("%.4f", s.Mass)},
		{"mean", fmt.Sprintf("%.4f", s.Mean)},
		{"std dev", fmt.Sprintf("%.4f", s.StdDev)},
	}
	if _, err := fmt.Fprintln(w, colorize.Header(title)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  %s %s\n", colorize.Axis(fmt.Sprintf("%-9s", r[0])), r[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTail prints both tail bounds.
func WriteTail(w io.Writer, title string, t Tails) error {
	if _, err := fmt.Fprintln(w, colorize.Header(title)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  P(X ≤ %.4f) ∈ %s\n", t.Below, bound(t.AtMostBelow)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  P(X > %.4f) ∈ %s\n", t.Above, bound(t.OverAbove))
	return err
}

// WriteCDF prints one CDF bound per row.
func WriteCDF(w io.Writer, title string, rows []CDFRow) error {
	if _, err := fmt.Fprintln(w, colorize.Header(title)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  P(X ≤ %.4f) ∈ %s\n", r.Value, bound(r.Bound)); err != nil {
			return err
		}
	}
	return nil
}

// OutcomeRow is one point mass prepared for printing. Value and Exact are
// preformatted by the caller; Exact may be empty.
type OutcomeRow struct {
	Value string
	P     float64
	Exact string
}

// WriteOutcomes prints the point masses with bars relative to the largest.
func WriteOutcomes(w io.Writer, title string, rows []OutcomeRow, width int) error {
	var top float64
	valueWidth := 0
	for _, r := range rows {
		top = math.Max(top, r.P)
		valueWidth = max(valueWidth, len(r.Value))
	}
	if _, err := fmt.Fprintln(w, colorize.Header(title)); err != nil {
		return err
	}
	for _, r := range rows {
		frac := 0.0
		if top > 0 {
			frac = r.P / top
		}
		exact := ""
		if r.Exact != "" {
			exact = "  " + colorize.Bound(r.Exact)
		}
		_, err := fmt.Fprintf(w, "  %s  %s  %.6f%s\n",
			colorize.Axis(fmt.Sprintf("%*s", valueWidth, r.Value)), bar(frac, width), r.P, exact)
		if err != nil {
			return err
		}
	}
	return nil
}
