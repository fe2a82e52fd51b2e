package dashboard

import (
	"time"

	"investrack/internal/models"
	"investrack/internal/performance"
	"investrack/internal/valuation"
)

// View is the computed state of one dashboard run.
type View struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	Mode          performance.Mode     `json:"mode"`
	Settings      models.Settings      `json:"settings"`
	Valuation     valuation.Valuation  `json:"valuation"`
	TotalInvested float64              `json:"total_invested"`
	PNL           float64              `json:"pnl"`
	PNLPercent    float64              `json:"pnl_percent"`
	Performance   []performance.Metric `json:"performance"`
	History       []models.Snapshot    `json:"history"`
	Allocation    []valuation.Slice    `json:"allocation"`
}

// HasHistoryChart reports whether enough snapshots exist to draw the line chart.
func (v View) HasHistoryChart() bool {
	return len(v.History) >= minHistoryPoints
}

// HasAllocation reports whether any holding has a positive value.
func (v View) HasAllocation() bool {
	return len(v.Allocation) > 0
}
