package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders the results of a run as a Markdown document.
func Markdown(v View) string {
	var b strings.Builder

	b.WriteString("# Investrack\n\n")
	fmt.Fprintf(&b, "_As of %s UTC (%s performance)_\n\n", v.GeneratedAt.Format("2006-01-02 15:04"), v.Mode)

	b.WriteString("| Metric | Value | Change |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Total Value (GHS) | %s | |\n", FormatGHS(v.Valuation.TotalGHS))
	fmt.Fprintf(&b, "| Total Invested (GHS) | %s | |\n", FormatGHS(v.TotalInvested))
	fmt.Fprintf(&b, "| All-Time PNL (GHS) | %s | %s |\n", FormatGHS(v.PNL), FormatPercent(v.PNLPercent))
	for _, m := range v.Performance {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Label, FormatGHS(m.PNL), FormatPercent(m.Percent))
	}

	b.WriteString("\n## Portfolio Breakdown\n\n")
	b.WriteString("| coin | amount | price_usd | value_usd | value_ghs |\n|---|---:|---:|---:|---:|\n")
	for _, r := range v.Valuation.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			r.Coin, FormatAmount(r.Amount), FormatUSD(r.PriceUSD), FormatUSD(r.ValueUSD), FormatGHS(r.ValueGHS))
	}

	b.WriteString("\n## Asset Allocation (%)\n\n")
	if v.HasAllocation() {
		b.WriteString("| coin | value_ghs | share |\n|---|---:|---:|\n")
		for _, s := range v.Allocation {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Coin, FormatGHS(s.ValueGHS), FormatPercent(s.Share*100))
		}
	} else {
		b.WriteString(allocationPlaceholder + "\n")
	}

	b.WriteString("\n## Portfolio Value Over Time (GHS)\n\n")
	if v.HasHistoryChart() {
		first, last := v.History[0], v.History[len(v.History)-1]
		fmt.Fprintf(&b, "%d snapshots, from %s on %s to %s on %s.\n",
			len(v.History),
			FormatGHS(first.ValueGHS), first.Timestamp.Format("2006-01-02"),
			FormatGHS(last.ValueGHS), last.Timestamp.Format("2006-01-02"),
		)
	} else {
		b.WriteString(historyPlaceholder + "\n")
	}

	return b.String()
}

// RenderTerminal renders the Markdown report for a terminal. style is a glamour
// standard style name ("dark", "light", "notty", ...) or "auto" to detect it.
func RenderTerminal(v View, style string, width int) (string, error) {
	styleOpt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(Markdown(v))
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}
