package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/service/ratelimit"
)

func newChart(t *testing.T, srvURL string) *ChartProvider {
	t.Helper()
	return NewChartProvider(srvURL, 5*time.Second, testLogger(t), nopMetrics{}, ratelimit.New(), 10, 100)
}

func TestChartSeries(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1700000000, 1700000060],
					"indicators": {"quote": [{"close": [2451.5, 2453.1]}]}
				}],
				"error": null
			}
		}`))
	}))
	defer srv.Close()

	s, err := newChart(t, srv.URL).Series(context.Background(), "RELIANCE.NS", domrepo.Timeframe{Range: "1d", Interval: "5m"})
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)
	assert.Equal(t, "1d", gotRange)
	assert.Equal(t, "5m", gotInterval)
	assert.Equal(t, "RELIANCE.NS", s.Symbol)
	assert.Equal(t, []int64{1700000000, 1700000060}, s.Timestamps)
	assert.Equal(t, []float64{2451.5, 2453.1}, s.Closes)
}

func TestChartSeriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer srv.Close()

	_, err := newChart(t, srv.URL).Series(context.Background(), "NOPE.NS", domrepo.Timeframe{Range: "1d", Interval: "5m"})
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestChartSeriesEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer srv.Close()

	_, err := newChart(t, srv.URL).Series(context.Background(), "TCS.NS", domrepo.Timeframe{Range: "1mo", Interval: "1d"})
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestChartSeriesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newChart(t, srv.URL).Series(context.Background(), "TCS.NS", domrepo.Timeframe{Range: "1d", Interval: "5m"})
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}
