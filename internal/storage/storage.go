// Package storage persists the dashboard settings and the portfolio value history.
//
// Persistence is advisory: every Store method degrades to defaults on failure and
// logs the cause instead of returning it, so the dashboard works with no saved state.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"investrack/internal/config"
	"investrack/internal/models"
)

// Store persists settings and the append-only snapshot history.
type Store interface {
	// LoadSettings returns the saved settings, or defaults when nothing usable is stored.
	LoadSettings(ctx context.Context) models.Settings
	// SaveSettings overwrites the saved settings.
	SaveSettings(ctx context.Context, s models.Settings)
	// LoadHistory returns the recorded snapshots in insertion order.
	LoadHistory(ctx context.Context) []models.Snapshot
	// AppendHistory records snap after existing and returns the extended history.
	AppendHistory(ctx context.Context, snap models.Snapshot, existing []models.Snapshot) []models.Snapshot
	Close() error
}

// New opens the store selected by cfg.Driver.
func New(cfg config.Storage, defaults models.Settings, logger *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "json":
		return NewJSONStore(cfg.SettingsFile, cfg.HistoryFile, defaults, logger), nil
	case "sqlite":
		return NewSQLiteStore(cfg.DSN, defaults, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// settingsDocument is the on-disk shape of the settings. Pointers tell a missing key
// apart from an explicit zero so each key falls back to its own default.
type settingsDocument struct {
	Holdings      map[string]float64 `json:"holdings"`
	FXRate        *float64           `json:"fx_rate"`
	TotalInvested *float64           `json:"total_invested"`
}

func (d settingsDocument) settings(defaults models.Settings) models.Settings {
	s := models.Settings{
		Holdings:      make(models.Holdings, len(d.Holdings)),
		FXRate:        defaults.FXRate,
		TotalInvested: defaults.TotalInvested,
	}
	for raw, qty := range d.Holdings {
		if sym, ok := models.ParseSymbol(raw); ok {
			s.Holdings[sym] = qty
		}
	}
	if d.FXRate != nil {
		s.FXRate = *d.FXRate
	}
	if d.TotalInvested != nil {
		s.TotalInvested = *d.TotalInvested
	}
	return s.Normalize()
}

func newSettingsDocument(s models.Settings) settingsDocument {
	s = s.Normalize()
	d := settingsDocument{
		Holdings:      make(map[string]float64, len(s.Holdings)),
		FXRate:        &s.FXRate,
		TotalInvested: &s.TotalInvested,
	}
	for sym, qty := range s.Holdings {
		d.Holdings[sym.String()] = qty
	}
	return d
}
