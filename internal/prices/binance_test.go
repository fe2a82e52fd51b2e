package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"investrack/internal/config"
	"investrack/internal/models"
)

// setupBinance creates a new test server and a Binance source configured to use it.
func setupBinance(t *testing.T, handler http.HandlerFunc) *Binance {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewBinance(config.Prices{
		BinanceURL:    server.URL,
		QuoteAsset:    "usdt",
		TickerTimeout: time.Second,
	}, zap.NewNop())
}

func TestBinance_Quote(t *testing.T) {
	t.Run("StringAndNumberPrices", func(t *testing.T) {
		b := setupBinance(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ticker/price", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Query().Get("symbol") {
			case "BTCUSDT":
				_, _ = w.Write([]byte(`{"symbol": "BTCUSDT", "price": "64250.12000000"}`))
			case "XRPUSDT":
				_, _ = w.Write([]byte(`{"symbol": "XRPUSDT", "price": 0.52}`))
			default:
				t.Errorf("unexpected symbol %q", r.URL.Query().Get("symbol"))
			}
		})

		prices, err := b.Quote(context.Background(), []models.Symbol{models.BTC, models.XRP})

		require.NoError(t, err)
		assert.Equal(t, 64250.12, prices[models.BTC])
		assert.Equal(t, 0.52, prices[models.XRP])
	})

	t.Run("PartialFailure", func(t *testing.T) {
		b := setupBinance(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("symbol") == "TRXUSDT" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
				return
			}
			_, _ = w.Write([]byte(`{"price": "2.5"}`))
		})

		prices, err := b.Quote(context.Background(), []models.Symbol{models.ADA, models.TRX, models.DOGE})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRXUSDT")
		assert.Equal(t, map[models.Symbol]float64{models.ADA: 2.5, models.DOGE: 2.5}, prices)
	})

	t.Run("MalformedPrice", func(t *testing.T) {
		b := setupBinance(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"price": "n/a"}`))
		})

		prices, err := b.Quote(context.Background(), []models.Symbol{models.BNB})

		assert.Error(t, err)
		assert.Empty(t, prices)
	})
}
