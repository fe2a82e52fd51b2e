package dashboard

import (
	"bytes"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"investrack/internal/models"
	"investrack/internal/valuation"
)

// minHistoryPoints is the number of snapshots needed before the line chart is drawn.
const minHistoryPoints = 2

// RenderHistoryChart renders the portfolio value over time as a PNG line chart.
func RenderHistoryChart(history []models.Snapshot) ([]byte, error) {
	if len(history) < minHistoryPoints {
		return nil, fmt.Errorf("need at least %d data points, got %d", minHistoryPoints, len(history))
	}

	xValues := lo.Map(history, func(s models.Snapshot, _ int) time.Time { return s.Timestamp })
	yValues := lo.Map(history, func(s models.Snapshot, _ int) float64 { return s.ValueGHS })

	graph := chart.Chart{
		Title:  "Portfolio Value (GHS)",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02 15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatGHS(f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "value_ghs",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	// A flat series has no y-range to scale against.
	if lo.Min(yValues) == lo.Max(yValues) {
		v := yValues[0]
		graph.YAxis.Range = &chart.ContinuousRange{Min: v - 1, Max: v + 1}
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAllocationChart renders the allocation by local value as a PNG pie chart.
func RenderAllocationChart(slices []valuation.Slice) ([]byte, error) {
	if len(slices) == 0 {
		return nil, fmt.Errorf("no holdings with a positive value")
	}

	pie := chart.PieChart{
		Title:  "Allocation (GHS)",
		Width:  512,
		Height: 512,
		Values: lo.Map(slices, func(s valuation.Slice, _ int) chart.Value {
			return chart.Value{
				Label: fmt.Sprintf("%s %s", s.Coin, FormatPercent(s.Share*100)),
				Value: s.ValueGHS,
			}
		}),
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
