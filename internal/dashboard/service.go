// Package dashboard runs the valuation pipeline and presents its results.
package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"investrack/internal/models"
	"investrack/internal/performance"
	"investrack/internal/storage"
	"investrack/internal/valuation"
)

// PriceProvider prices the tracked coins. It never fails; unknown prices are 0.
type PriceProvider interface {
	Prices(ctx context.Context, symbols []models.Symbol) models.Prices
}

// Options configures a Service.
type Options struct {
	Mode          performance.Mode
	RecordHistory bool             // append a snapshot on every run
	Now           func() time.Time // defaults to time.Now
}

// Service recomputes the whole dashboard on every run.
type Service struct {
	store  storage.Store
	prices PriceProvider
	mode   performance.Mode
	record bool
	now    func() time.Time
	logger *zap.Logger

	// mu serializes runs; each one is a read-modify-write of the
	// history log.
	mu sync.Mutex
}

// NewService creates a dashboard service.
func NewService(store storage.Store, prices PriceProvider, opts Options, logger *zap.Logger) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mode := opts.Mode
	if mode == "" {
		mode = performance.Calendar
	}
	return &Service{
		store:  store,
		prices: prices,
		mode:   mode,
		record: opts.RecordHistory,
		now:    now,
		logger: logger.Named("dashboard"),
	}
}

// Run loads the settings, prices the holdings, records a snapshot and derives the
// performance metrics.
func (s *Service) Run(ctx context.Context) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.store.LoadSettings(ctx)
	history := s.store.LoadHistory(ctx)
	quotes := s.prices.Prices(ctx, models.Symbols())

	val := valuation.Value(settings.Holdings, quotes, settings.FXRate)
	pnl, pnlPct := valuation.ProfitAndLoss(val.TotalGHS, settings.TotalInvested)

	// Periods are evaluated in UTC in both modes.
	now := s.now().UTC()
	if s.record {
		history = s.store.AppendHistory(ctx, models.Snapshot{Timestamp: now, ValueGHS: val.TotalGHS}, history)
	}

	metrics := performance.Compute(s.mode, performance.Input{
		History:       history,
		Latest:        val.TotalGHS,
		AllTimePNL:    pnl,
		TotalInvested: settings.TotalInvested,
		Now:           now,
	})

	s.logger.Debug("Dashboard run complete",
		zap.Float64("total_ghs", val.TotalGHS),
		zap.Float64("pnl", pnl),
		zap.Int("history", len(history)),
	)

	return View{
		GeneratedAt:   now,
		Mode:          s.mode,
		Settings:      settings,
		Valuation:     val,
		TotalInvested: settings.TotalInvested,
		PNL:           pnl,
		PNLPercent:    pnlPct,
		Performance:   metrics,
		History:       history,
		Allocation:    valuation.Allocation(val.Rows),
	}
}

// Settings returns the saved settings.
func (s *Service) Settings(ctx context.Context) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadSettings(ctx)
}

// UpdateSettings clamps settings to their valid ranges and saves them.
func (s *Service) UpdateSettings(ctx context.Context, settings models.Settings) models.Settings {
	return s.EditSettings(ctx, func(cur *models.Settings) { *cur = settings })
}

// EditSettings loads the saved settings, applies edit, then clamps and saves the
// result. The whole sequence holds the run lock, so concurrent edits are not lost.
func (s *Service) EditSettings(ctx context.Context, edit func(*models.Settings)) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.store.LoadSettings(ctx)
	edit(&settings)

	normalized := settings.Normalize()
	s.store.SaveSettings(ctx, normalized)
	s.logger.Info("Settings saved",
		zap.Float64("fx_rate", normalized.FXRate),
		zap.Float64("total_invested", normalized.TotalInvested),
	)
	return normalized
}
