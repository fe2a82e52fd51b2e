package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investrack/internal/models"
	"investrack/internal/performance"
	"investrack/internal/valuation"
)

func sampleView() View {
	rows := []valuation.Row{
		{Coin: models.BTC, Amount: 0.5, PriceUSD: 60000, ValueUSD: 30000, ValueGHS: 450000},
		{Coin: models.USDT, Amount: 100, PriceUSD: 1, ValueUSD: 100, ValueGHS: 1500},
	}
	return View{
		GeneratedAt:   time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
		Mode:          performance.Calendar,
		Settings:      models.DefaultSettings(),
		Valuation:     valuation.Valuation{Rows: rows, TotalUSD: 30100, TotalGHS: 451500},
		TotalInvested: 400000,
		PNL:           51500,
		PNLPercent:    12.8756,
		Performance: []performance.Metric{
			{Label: "MTD PNL", Period: "month", Result: performance.Result{PNL: 1500, Percent: 0.33}},
		},
		History: []models.Snapshot{
			{Timestamp: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC), ValueGHS: 450000},
			{Timestamp: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), ValueGHS: 451500},
		},
		Allocation: valuation.Allocation(rows),
	}
}

func TestMarkdown(t *testing.T) {
	t.Run("FullView", func(t *testing.T) {
		md := Markdown(sampleView())

		assert.Contains(t, md, "_As of 2026-10-19 09:30 UTC (calendar performance)_")
		assert.Contains(t, md, "| Total Value (GHS) | GHS 451,500.00 | |")
		assert.Contains(t, md, "| All-Time PNL (GHS) | GHS 51,500.00 | 12.88% |")
		assert.Contains(t, md, "| MTD PNL | GHS 1,500.00 | 0.33% |")
		assert.Contains(t, md, "| BTC | 0.5 | $60,000.00 | $30,000.00 | GHS 450,000.00 |")
		assert.Contains(t, md, "2 snapshots, from GHS 450,000.00 on 2026-10-01 to GHS 451,500.00 on 2026-10-19.")
		assert.NotContains(t, md, allocationPlaceholder)
		assert.NotContains(t, md, historyPlaceholder)
	})

	t.Run("InfiniteTotal", func(t *testing.T) {
		v := sampleView()
		v.Valuation.TotalGHS = math.Inf(1)
		v.PNL = math.Inf(1)

		var md string
		require.NotPanics(t, func() { md = Markdown(v) })
		assert.Contains(t, md, "| Total Value (GHS) | GHS n/a | |")
	})

	t.Run("EmptyView", func(t *testing.T) {
		md := Markdown(View{Mode: performance.Prorated})

		assert.Contains(t, md, allocationPlaceholder)
		assert.Contains(t, md, historyPlaceholder)
	})
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(sampleView(), "notty", 120)

	require.NoError(t, err)
	assert.Contains(t, out, "Portfolio Breakdown")
	assert.Contains(t, out, "GHS 451,500.00")
}
