package prices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"investrack/internal/config"
	"investrack/internal/models"
)

// Binance prices each symbol with its own ticker request against the quote asset.
type Binance struct {
	client     *resty.Client
	quoteAsset string
	logger     *zap.Logger
	limiter    *rate.Limiter
}

var _ Source = (*Binance)(nil)

// NewBinance creates a Binance ticker source.
func NewBinance(cfg config.Prices, logger *zap.Logger) *Binance {
	client := resty.New().
		SetBaseURL(cfg.BinanceURL).
		SetTimeout(cfg.TickerTimeout)

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Binance{
		client:     client,
		quoteAsset: strings.ToUpper(cfg.QuoteAsset),
		logger:     logger.Named("binance"),
		limiter:    rate.NewLimiter(limit, max(cfg.RateLimitBurst, 1)),
	}
}

func (c *Binance) Name() string { return "binance" }

// TickerPrice represents the response for a single ticker price.
// Binance sends the price as a string; a plain number is accepted too.
type TickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// Quote fetches each symbol independently. Symbols that fail are left out of the
// result and reported together in the returned error.
func (c *Binance) Quote(ctx context.Context, symbols []models.Symbol) (map[models.Symbol]float64, error) {
	result := make(map[models.Symbol]float64, len(symbols))
	var errs []error

	for _, sym := range symbols {
		price, err := c.tickerPrice(ctx, sym.String()+c.quoteAsset)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sym, err))
			continue
		}
		result[sym] = price
	}

	return result, errors.Join(errs...)
}

func (c *Binance) tickerPrice(ctx context.Context, pair string) (float64, error) {
	req := c.client.R().
		SetQueryParam("symbol", pair).
		ForceContentType("application/json").
		SetResult(&TickerPrice{})

	resp, err := c.doRequest(ctx, "/ticker/price", req)
	if err != nil {
		return 0, fmt.Errorf("failed to get ticker price for %s: %w", pair, err)
	}

	return resp.Result().(*TickerPrice).Price.InexactFloat64(), nil
}

// doRequest executes a single GET, paced by the rate limiter. There is no retry:
// a failed lookup is priced at zero for this run.
func (c *Binance) doRequest(ctx context.Context, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing request", zap.String("url", c.client.BaseURL+url), zap.Any("query", req.QueryParam))
	resp, err := req.SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
	}
	return resp, nil
}
