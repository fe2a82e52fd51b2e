package performance

import "time"

// Period is a calendar window anchored at its start.
type Period int

const (
	Week Period = iota // starts on Monday
	Month
	Year
)

func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "period"
	}
}

// ToDateAbbrev returns the "-to-date" abbreviation (e.g. "MTD").
func (p Period) ToDateAbbrev() string {
	switch p {
	case Week:
		return "WTD"
	case Month:
		return "MTD"
	case Year:
		return "YTD"
	default:
		return "PTD"
	}
}

// Start returns midnight at the start of the period containing t, in t's location.
func (p Period) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	switch p {
	case Week:
		offset := (int(t.Weekday()) + 6) % 7 // days since Monday
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	}
}

// Contains reports whether ts falls in the same period as now, compared in UTC.
func (p Period) Contains(now, ts time.Time) bool {
	return p.Start(now.UTC()).Equal(p.Start(ts.UTC()))
}
