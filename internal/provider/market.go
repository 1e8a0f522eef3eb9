package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/equity"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/service/ratelimit"
	"FinTalk/pkg/logger"
)

// MarketProvider reads point-in-time quotes through the Yahoo quote API.
type MarketProvider struct {
	logger  *logger.Logger
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter
	timeout time.Duration

	capacity float64
	refill   float64
}

func NewMarketProvider(lgr *logger.Logger, metrics domrepo.Metrics, limiter *ratelimit.Limiter, timeout time.Duration, capacity, refill float64) *MarketProvider {
	return &MarketProvider{
		logger: lgr, metrics: metrics, limiter: limiter,
		timeout: timeout, capacity: capacity, refill: refill,
	}
}

// Snapshot fetches one quote. The quote library has no context support,
// so the call runs in its own goroutine under our deadline.
func (p *MarketProvider) Snapshot(ctx context.Context, symbol, exchange string) (*models.StockSnapshot, error) {
	if !p.limiter.Allow("market", p.capacity, p.refill) {
		p.metrics.RecordProviderError("market")
		return nil, fmt.Errorf("market rate limited: %w", models.ErrUpstreamUnavailable)
	}

	quoteSym := symbol
	switch exchange {
	case "NSE":
		quoteSym = symbol + ".NS"
	case "BSE":
		quoteSym = symbol + ".BO"
	}
	if symbol != "" && symbol[0] == '^' {
		quoteSym = symbol
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type result struct {
		snap *models.StockSnapshot
		err  error
	}
	ch := make(chan result, 1)
	start := time.Now()

	go func() {
		q, err := equity.Get(quoteSym)
		if err != nil {
			ch <- result{err: err}
			return
		}
		if q == nil {
			ch <- result{err: fmt.Errorf("no quote for %s", quoteSym)}
			return
		}
		ch <- result{snap: &models.StockSnapshot{
			Symbol:        symbol,
			Exchange:      exchange,
			CurrentPrice:  q.RegularMarketPrice,
			PercentChange: q.RegularMarketChangePercent,
			DailyHigh:     q.RegularMarketDayHigh,
			DailyLow:      q.RegularMarketDayLow,
			MarketCap:     q.MarketCap,
			Volume:        int64(q.RegularMarketVolume),
		}}
	}()

	select {
	case <-ctx.Done():
		p.metrics.RecordProviderError("market")
		return nil, fmt.Errorf("market snapshot %s: %w", quoteSym, models.ErrUpstreamUnavailable)
	case res := <-ch:
		p.metrics.RecordProviderLatency("market", time.Since(start).Seconds())
		if res.err != nil {
			p.metrics.RecordProviderError("market")
			p.logger.Debug("market snapshot failed",
				logger.String("symbol", quoteSym), logger.Error(res.err))
			return nil, fmt.Errorf("market snapshot %s: %w", quoteSym, models.ErrUpstreamUnavailable)
		}
		return res.snap, nil
	}
}
