package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
	"FinTalk/internal/service/ratelimit"
)

// quoteBackend points the finance library at a local server for the test's
// lifetime. Not parallel-safe: the backend is package-global state.
func quoteBackend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prev := finance.GetBackend(finance.YFinBackend)
	finance.SetBackend(finance.YFinBackend, &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        srv.URL,
		HTTPClient: srv.Client(),
	})
	t.Cleanup(func() { finance.SetBackend(finance.YFinBackend, prev) })
}

func newMarket(t *testing.T) *MarketProvider {
	t.Helper()
	return NewMarketProvider(testLogger(t), nopMetrics{}, ratelimit.New(), 2*time.Second, 10, 100)
}

func TestMarketSnapshot(t *testing.T) {
	var gotSymbols string
	quoteBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/finance/quote", r.URL.Path)
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"quoteResponse":{"result":[{
			"symbol":"INFY.NS",
			"regularMarketPrice":1520.45,
			"regularMarketChangePercent":1.25,
			"regularMarketDayHigh":1534.0,
			"regularMarketDayLow":1502.1,
			"regularMarketVolume":3500000,
			"marketCap":630000000000
		}],"error":null}}`)
	})

	snap, err := newMarket(t).Snapshot(context.Background(), "INFY", "NSE")
	require.NoError(t, err)

	assert.Equal(t, "INFY.NS", gotSymbols)
	assert.Equal(t, "INFY", snap.Symbol)
	assert.Equal(t, "NSE", snap.Exchange)
	assert.Equal(t, 1520.45, snap.CurrentPrice)
	assert.Equal(t, 1.25, snap.PercentChange)
	assert.Equal(t, 1534.0, snap.DailyHigh)
	assert.Equal(t, 1502.1, snap.DailyLow)
	assert.Equal(t, int64(630000000000), snap.MarketCap)
	assert.Equal(t, int64(3500000), snap.Volume)
}

func TestMarketSnapshotIndexPassthrough(t *testing.T) {
	var gotSymbols string
	quoteBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotSymbols = r.URL.Query().Get("symbols")
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"^NSEI","regularMarketPrice":24800.5}],"error":null}}`)
	})

	snap, err := newMarket(t).Snapshot(context.Background(), "^NSEI", "")
	require.NoError(t, err)
	assert.Equal(t, "^NSEI", gotSymbols)
	assert.Equal(t, 24800.5, snap.CurrentPrice)
	assert.Zero(t, snap.MarketCap)
}

func TestMarketSnapshotEmptyResult(t *testing.T) {
	quoteBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
	})

	_, err := newMarket(t).Snapshot(context.Background(), "GHOST", "NSE")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestMarketSnapshotUpstreamFailure(t *testing.T) {
	quoteBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := newMarket(t).Snapshot(context.Background(), "INFY", "NSE")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestMarketSnapshotRateLimited(t *testing.T) {
	quoteBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"INFY.NS","regularMarketPrice":1520.45}],"error":null}}`)
	})

	p := NewMarketProvider(testLogger(t), nopMetrics{}, ratelimit.New(), 2*time.Second, 1, 0.000001)
	_, err := p.Snapshot(context.Background(), "INFY", "NSE")
	require.NoError(t, err)

	_, err = p.Snapshot(context.Background(), "INFY", "NSE")
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}
