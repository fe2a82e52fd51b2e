package dashboard

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investrack/internal/models"
	"investrack/internal/valuation"
)

var pngMagic = []byte("\x89PNG")

func TestRenderHistoryChart(t *testing.T) {
	start := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	t.Run("TooFewPoints", func(t *testing.T) {
		_, err := RenderHistoryChart([]models.Snapshot{{Timestamp: start, ValueGHS: 10}})
		assert.Error(t, err)
	})

	t.Run("Series", func(t *testing.T) {
		png, err := RenderHistoryChart([]models.Snapshot{
			{Timestamp: start, ValueGHS: 1000},
			{Timestamp: start.Add(24 * time.Hour), ValueGHS: 1250.5},
			{Timestamp: start.Add(48 * time.Hour), ValueGHS: 990},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	})

	t.Run("FlatSeries", func(t *testing.T) {
		png, err := RenderHistoryChart([]models.Snapshot{
			{Timestamp: start, ValueGHS: 0},
			{Timestamp: start.Add(time.Hour), ValueGHS: 0},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngMagic))
	})
}

func TestRenderAllocationChart(t *testing.T) {
	_, err := RenderAllocationChart(nil)
	assert.Error(t, err)

	png, err := RenderAllocationChart([]valuation.Slice{
		{Coin: models.BTC, ValueGHS: 750, Share: 0.75},
		{Coin: models.USDT, ValueGHS: 250, Share: 0.25},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
