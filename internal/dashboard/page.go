package dashboard

import (
	"encoding/base64"
	"html/template"

	"go.uber.org/zap"

	"investrack/internal/models"
)

const (
	historyPlaceholder    = "Line chart will appear once enough data is recorded (two points minimum)."
	allocationPlaceholder = "Enter holdings to see allocation chart."
)

// page is the template data for the dashboard.
type page struct {
	View
	Coins                 []models.Coin
	HistoryChart          template.URL
	AllocationChart       template.URL
	HistoryPlaceholder    string
	AllocationPlaceholder string
}

func newPage(v View, logger *zap.Logger) page {
	p := page{
		View:                  v,
		Coins:                 models.Coins,
		HistoryPlaceholder:    historyPlaceholder,
		AllocationPlaceholder: allocationPlaceholder,
	}

	if v.HasHistoryChart() {
		png, err := RenderHistoryChart(v.History)
		if err != nil {
			logger.Warn("Failed to render history chart", zap.Error(err))
		} else {
			p.HistoryChart = pngDataURL(png)
		}
	}

	if v.HasAllocation() {
		png, err := RenderAllocationChart(v.Allocation)
		if err != nil {
			logger.Warn("Failed to render allocation chart", zap.Error(err))
		} else {
			p.AllocationChart = pngDataURL(png)
		}
	}

	return p
}

func pngDataURL(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

var templateFuncs = template.FuncMap{
	"ghs":     FormatGHS,
	"usd":     FormatUSD,
	"percent": FormatPercent,
	"amount":  FormatAmount,
	"holding": func(h models.Holdings, s models.Symbol) float64 { return h[s] },
	"negative": func(v float64) bool {
		return v < 0
	},
}
