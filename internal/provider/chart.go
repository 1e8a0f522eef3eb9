package provider

import (
	"context"
	"fmt"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/service/ratelimit"
	xhttp "FinTalk/pkg/http"
	"FinTalk/pkg/logger"
)

const defaultChartBaseURL = "https://query1.finance.yahoo.com"

// ChartProvider reads price series from the v8 chart endpoint.
type ChartProvider struct {
	client  *xhttp.Client
	baseURL string
	logger  *logger.Logger
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter

	capacity float64
	refill   float64
}

func NewChartProvider(baseURL string, timeout time.Duration, lgr *logger.Logger, metrics domrepo.Metrics, limiter *ratelimit.Limiter, capacity, refill float64) *ChartProvider {
	if baseURL == "" {
		baseURL = defaultChartBaseURL
	}
	return &ChartProvider{
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL: baseURL,
		logger:  lgr, metrics: metrics, limiter: limiter,
		capacity: capacity, refill: refill,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Series fetches closes for the timeframe window.
func (p *ChartProvider) Series(ctx context.Context, symbol string, tf domrepo.Timeframe) (*models.ChartSeries, error) {
	if !p.limiter.Allow("chart", p.capacity, p.refill) {
		p.metrics.RecordProviderError("chart")
		return nil, fmt.Errorf("chart rate limited: %w", models.ErrUpstreamUnavailable)
	}

	start := time.Now()
	var resp chartResponse
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/v8/finance/chart/%s", p.baseURL, symbol),
		Headers: map[string]string{"User-Agent": browserUA},
		QueryParams: map[string][]string{
			"range":          {tf.Range},
			"interval":       {tf.Interval},
			"includePrePost": {"false"},
		},
	}, &resp)
	p.metrics.RecordProviderLatency("chart", time.Since(start).Seconds())
	if err != nil {
		p.metrics.RecordProviderError("chart")
		return nil, fmt.Errorf("chart fetch %s: %w", symbol, models.ErrUpstreamUnavailable)
	}

	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		p.metrics.RecordProviderError("chart")
		return nil, fmt.Errorf("chart empty for %s: %w", symbol, models.ErrUpstreamUnavailable)
	}

	res := resp.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		p.metrics.RecordProviderError("chart")
		return nil, fmt.Errorf("chart missing quotes for %s: %w", symbol, models.ErrUpstreamUnavailable)
	}

	return &models.ChartSeries{
		Symbol:     symbol,
		Range:      tf.Range,
		Interval:   tf.Interval,
		Timestamps: res.Timestamp,
		Closes:     res.Indicators.Quote[0].Close,
	}, nil
}
