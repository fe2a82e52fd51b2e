package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"investrack/internal/models"
	"investrack/internal/performance"
)

func setupServer(t *testing.T) (testEnv, *httptest.Server) {
	env := setupService(t, Options{Mode: performance.Calendar, RecordHistory: true})
	srv := NewServer(0, env.svc, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return env, ts
}

// noRedirect stops the client at the settings redirect.
func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func getBody(t *testing.T, url string) string {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b strings.Builder
	_, err = io.Copy(&b, resp.Body)
	require.NoError(t, err)
	return b.String()
}

func TestServer_Index(t *testing.T) {
	t.Run("ColdStartShowsPlaceholders", func(t *testing.T) {
		_, ts := setupServer(t)

		body := getBody(t, ts.URL+"/")

		assert.Contains(t, body, historyPlaceholder)
		assert.Contains(t, body, allocationPlaceholder)
		assert.Contains(t, body, "GHS 0.00")
		assert.Contains(t, body, `name="hold_BTC"`)
		assert.Contains(t, body, "MTD PNL")
	})

	t.Run("ChartsAfterTwoRuns", func(t *testing.T) {
		env, ts := setupServer(t)
		settings := models.DefaultSettings()
		settings.Holdings[models.BTC] = 1
		env.svc.UpdateSettings(context.Background(), settings)

		getBody(t, ts.URL+"/")
		body := getBody(t, ts.URL+"/")

		assert.NotContains(t, body, historyPlaceholder)
		assert.NotContains(t, body, allocationPlaceholder)
		assert.Contains(t, body, "data:image/png;base64,")
		assert.Contains(t, body, "GHS 900,000.00")
	})

	t.Run("UnknownPath", func(t *testing.T) {
		_, ts := setupServer(t)

		resp, err := http.Get(ts.URL + "/nope")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Settings(t *testing.T) {
	env, ts := setupServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	form := url.Values{
		"hold_BTC":       {"0.5"},
		"hold_ETH":       {"not-a-number"},
		"hold_DOGE":      {"-10"},
		"fx_rate":        {"12.5"},
		"total_invested": {"1000"},
	}
	resp, err := client.PostForm(ts.URL+"/settings", form)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	saved := env.store.LoadSettings(context.Background())
	assert.Equal(t, 0.5, saved.Holdings[models.BTC])
	assert.Equal(t, 0.0, saved.Holdings[models.ETH])
	assert.Equal(t, 0.0, saved.Holdings[models.DOGE])
	assert.Equal(t, 12.5, saved.FXRate)
	assert.Equal(t, 1000.0, saved.TotalInvested)
}

func TestServer_ConcurrentSettingsPosts(t *testing.T) {
	env, ts := setupServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	var wg sync.WaitGroup
	for i, c := range models.Coins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			form := url.Values{"hold_" + c.Symbol.String(): {strconv.Itoa(i + 1)}}
			resp, err := client.PostForm(ts.URL+"/settings", form)
			if assert.NoError(t, err) {
				resp.Body.Close()
			}
		}()
	}
	wg.Wait()

	saved := env.store.LoadSettings(context.Background())
	for i, c := range models.Coins {
		assert.Equal(t, float64(i+1), saved.Holdings[c.Symbol], c.Symbol)
	}
}

func TestServer_DashboardAPI(t *testing.T) {
	env, ts := setupServer(t)
	settings := models.DefaultSettings()
	settings.Holdings[models.ETH] = 2
	settings.FXRate = 10
	settings.TotalInvested = 50000
	env.svc.UpdateSettings(context.Background(), settings)

	resp, err := http.Get(ts.URL + "/api/dashboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got struct {
		Valuation struct {
			TotalGHS float64 `json:"total_ghs"`
		} `json:"valuation"`
		PNL        float64 `json:"pnl"`
		PNLPercent float64 `json:"pnl_percent"`
		History    []struct {
			Timestamp string  `json:"timestamp"`
			ValueGHS  float64 `json:"value_ghs"`
		} `json:"history"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 60000.0, got.Valuation.TotalGHS)
	assert.Equal(t, 10000.0, got.PNL)
	assert.InDelta(t, 20.0, got.PNLPercent, 1e-9)
	require.Len(t, got.History, 1)
	assert.Equal(t, "2026-10-19T09:00:00Z", got.History[0].Timestamp)
}

func TestServer_Health(t *testing.T) {
	_, ts := setupServer(t)

	assert.Equal(t, "OK\n", getBody(t, ts.URL+"/health"))
}
