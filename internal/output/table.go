// Package output renders ledgers and rosters for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"points/internal/core"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	dayStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a6e3a1"))
	negStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

const ruleWidth = 48

// SummaryOptions controls which days show their items.
type SummaryOptions struct {
	// ShowAll expands every day regardless of IsExpanded.
	ShowAll bool
	// IsExpanded reports whether a day's items are listed. Nil means none.
	IsExpanded func(date string) bool
}

func (o SummaryOptions) expanded(date string) bool {
	if o.ShowAll {
		return true
	}
	return o.IsExpanded != nil && o.IsExpanded(date)
}

// amount formats d, in red when negative.
func amount(d decimal.Decimal) string {
	s := core.FormatAmount(d)
	if d.IsNegative() {
		return negStyle.Render(s)
	}
	return s
}

// PrintSummary prints one child's days, newest first, with item rows for
// expanded days and the grand total at the bottom.
func PrintSummary(w io.Writer, s core.Summary, opts SummaryOptions) {
	fmt.Fprintln(w, headerStyle.Render(s.Child))
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))

	if len(s.Days) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No records yet."))
	}

	for _, day := range s.Days {
		marker := "▸"
		if opts.expanded(day.Date) {
			marker = "▾"
		}
		fmt.Fprintf(w, "%s %s  %s\n", marker, dayStyle.Render(core.FormatDateHeader(day.Date)),
			amount(day.Total))

		if !opts.expanded(day.Date) {
			continue
		}
		for _, r := range day.Records {
			fmt.Fprintf(w, "    %s  %s\n", r.Label, mutedStyle.Render(shortID(r.ID.String())))
			fmt.Fprintf(w, "      Qty: %d × %s  =  %s\n", r.Quantity, core.FormatAmount(r.Price),
				amount(r.Total()))
		}
	}

	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
	fmt.Fprintf(w, "%s %s\n", totalStyle.Render("Total:"), totalStyle.Render(core.FormatAmount(s.GrandTotal)))
}

// PrintRoster prints every child with their total.
func PrintRoster(w io.Writer, totals []core.ChildTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No kids yet. Add one with: points add-kid <name>"))
		return
	}

	nameWidth := len("Kid")
	for _, t := range totals {
		if len(t.Name) > nameWidth {
			nameWidth = len(t.Name)
		}
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s  %7s  %12s", nameWidth, "Kid", "Records", "Total")))
	fmt.Fprintln(w, strings.Repeat("─", nameWidth+2+7+2+12))
	for _, t := range totals {
		fmt.Fprintf(w, "%-*s  %7d  %12s\n", nameWidth, t.Name, t.RecordCount, core.FormatAmount(t.Total))
	}
}

// PrintOrphans lists record collections whose child left the roster.
func PrintOrphans(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No orphaned records."))
		return
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// shortID keeps the first uuid group, enough to pick a record by prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
