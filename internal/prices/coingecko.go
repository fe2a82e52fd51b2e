package prices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"investrack/internal/models"
)

// CoinGecko prices every symbol with a single simple-price request.
type CoinGecko struct {
	client *resty.Client
	logger *zap.Logger
}

var _ Source = (*CoinGecko)(nil)

// NewCoinGecko creates a CoinGecko source. The request is made once, without retries.
func NewCoinGecko(baseURL string, timeout time.Duration, logger *zap.Logger) *CoinGecko {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &CoinGecko{client: client, logger: logger.Named("coingecko")}
}

func (c *CoinGecko) Name() string { return "coingecko" }

// Quote fetches USD prices for symbols. Any transport, status or decoding failure
// fails the whole batch.
func (c *CoinGecko) Quote(ctx context.Context, symbols []models.Symbol) (map[models.Symbol]float64, error) {
	ids := lo.FilterMap(symbols, func(sym models.Symbol, _ int) (string, bool) {
		coin, ok := models.LookupCoin(sym)
		return coin.CoinGeckoID, ok
	})

	// Parse: {"bitcoin":{"usd":45000},"ethereum":{"usd":2500},...}
	var raw map[string]map[string]*float64

	c.logger.Debug("Executing request", zap.Strings("ids", ids))
	resp, err := c.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("vs_currencies", "usd").
		SetResult(&raw).
		Get("/simple/price")
	if err != nil {
		return nil, fmt.Errorf("coingecko request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko request failed with status %s: %s", resp.Status(), resp.String())
	}

	result := make(map[models.Symbol]float64, len(symbols))
	for _, sym := range symbols {
		coin, _ := models.LookupCoin(sym)
		quote, ok := raw[coin.CoinGeckoID]
		if !ok {
			continue
		}
		result[sym] = lo.FromPtr(quote["usd"])
	}
	return result, nil
}
