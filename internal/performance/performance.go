// Package performance derives period profit and loss for the dashboard.
//
// Two modes exist. Calendar mode compares the latest total with the first snapshot
// recorded in the current calendar period. Prorated mode needs no history: it spreads
// the all-time PNL evenly over the days elapsed since the period started, which treats
// PNL as if it accrued uniformly since inception. Prorated figures are estimates.
package performance

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"investrack/internal/models"
	"investrack/internal/valuation"
)

// Mode selects how period PNL is derived.
type Mode string

const (
	Calendar Mode = "calendar"
	Prorated Mode = "prorated"
)

// ParseMode parses a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Calendar:
		return Calendar, nil
	case Prorated:
		return Prorated, nil
	default:
		return "", fmt.Errorf("unknown performance mode %q", s)
	}
}

// Periods returns the periods reported in mode, in display order.
func (m Mode) Periods() []Period {
	if m == Prorated {
		return []Period{Week, Month, Year}
	}
	return []Period{Month, Year}
}

// Result is the PNL of one period.
type Result struct {
	PNL     float64 `json:"pnl"`
	Percent float64 `json:"percent"`
}

// CalendarPNL compares latest with the first snapshot recorded in the current period.
// Fewer than two snapshots in the window yield a zero result. The percentage is
// relative to that first snapshot.
func CalendarPNL(history []models.Snapshot, latest float64, p Period, now time.Time) Result {
	window := lo.Filter(history, func(s models.Snapshot, _ int) bool {
		return p.Contains(now, s.Timestamp)
	})
	if len(window) < 2 {
		return Result{}
	}

	start := window[0].ValueGHS
	pnl := latest - start
	return Result{PNL: pnl, Percent: valuation.Percent(pnl, start)}
}

// ElapsedDays returns the whole days from the start of the period to the date of now,
// with a floor of 1.
func ElapsedDays(p Period, now time.Time) int {
	start := p.Start(now)
	// Compare calendar dates so a DST shift cannot shorten a day.
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return max(1, int(to.Sub(from)/(24*time.Hour)))
}

// ProratedPNL estimates the period PNL as allTimePNL divided by the days elapsed in
// the period. The percentage is relative to totalInvested.
func ProratedPNL(allTimePNL, totalInvested float64, p Period, now time.Time) Result {
	pnl := allTimePNL / float64(ElapsedDays(p, now))
	return Result{PNL: pnl, Percent: valuation.Percent(pnl, totalInvested)}
}

// Input is everything Compute needs from one dashboard run.
type Input struct {
	History       []models.Snapshot
	Latest        float64 // current total in GHS
	AllTimePNL    float64
	TotalInvested float64
	Now           time.Time
}

// Metric is a labelled period result.
type Metric struct {
	Label    string `json:"label"`
	Period   string `json:"period"`
	Estimate bool   `json:"estimate"`
	Result
}

// Compute returns the period metrics for mode.
func Compute(mode Mode, in Input) []Metric {
	return lo.Map(mode.Periods(), func(p Period, _ int) Metric {
		if mode == Prorated {
			return Metric{
				Label:    p.ToDateAbbrev() + " PNL (est.)",
				Period:   p.String(),
				Estimate: true,
				Result:   ProratedPNL(in.AllTimePNL, in.TotalInvested, p, in.Now),
			}
		}
		return Metric{
			Label:  p.ToDateAbbrev() + " PNL",
			Period: p.String(),
			Result: CalendarPNL(in.History, in.Latest, p, in.Now),
		}
	})
}
