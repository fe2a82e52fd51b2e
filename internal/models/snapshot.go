package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot is one recorded portfolio total.
type Snapshot struct {
	Timestamp time.Time
	ValueGHS  float64
}

type snapshotJSON struct {
	Timestamp string  `json:"timestamp"`
	ValueGHS  float64 `json:"value_ghs"`
}

// timestampLayouts are tried in order; zone-less layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads an ISO-8601 timestamp, with or without a zone offset.
func ParseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Timestamp: s.Timestamp.UTC().Format(time.RFC3339Nano),
		ValueGHS:  s.ValueGHS,
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ts, err := ParseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}
	s.Timestamp = ts
	s.ValueGHS = raw.ValueGHS
	return nil
}
