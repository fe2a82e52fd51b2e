// Package prices resolves USD spot prices for the tracked coins.
package prices

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"investrack/internal/config"
	"investrack/internal/models"
)

// stablecoinPrice is the fixed USD price of a stablecoin.
const stablecoinPrice = 1.0

// Source looks up USD prices for a set of symbols.
// It may return a partial map together with an error describing what failed.
type Source interface {
	Name() string
	Quote(ctx context.Context, symbols []models.Symbol) (map[models.Symbol]float64, error)
}

// Service prices the tracked coins. It never fails: stablecoins are pinned to 1 USD
// and every symbol the source could not price is reported as 0.
type Service struct {
	source Source
	logger *zap.Logger
}

// NewService creates a price service over source.
func NewService(source Source, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger.Named("prices")}
}

// NewSource builds the source selected by cfg.Strategy.
func NewSource(cfg config.Prices, logger *zap.Logger) (Source, error) {
	switch cfg.Strategy {
	case "", "batch":
		return NewCoinGecko(cfg.CoinGeckoURL, cfg.BatchTimeout, logger), nil
	case "ticker":
		return NewBinance(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown price strategy %q", cfg.Strategy)
	}
}

// Prices returns a price for every symbol in symbols.
func (s *Service) Prices(ctx context.Context, symbols []models.Symbol) models.Prices {
	out := make(models.Prices, len(symbols))
	for _, sym := range symbols {
		out[sym] = 0
	}

	stable, lookup := lo.FilterReject(symbols, func(sym models.Symbol, _ int) bool {
		return sym.IsStablecoin()
	})
	for _, sym := range stable {
		out[sym] = stablecoinPrice
	}
	if len(lookup) == 0 {
		return out
	}

	quoted, err := s.source.Quote(ctx, lookup)
	if err != nil {
		s.logger.Warn("Price lookup failed, missing prices fall back to zero",
			zap.String("source", s.source.Name()),
			zap.Int("priced", len(quoted)),
			zap.Int("requested", len(lookup)),
			zap.Error(err),
		)
	}
	for _, sym := range lookup {
		if p, ok := quoted[sym]; ok {
			out[sym] = p
		}
	}
	return out
}
