package usecase

import (
	"context"
	"sync"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/logger"
)

// maxFanOut caps how many resolved entities get data fetched in one turn.
const maxFanOut = 5

// Fetcher fans one turn's data needs out to the providers and waits for
// all branches. A failed branch stays nil; it never cancels its siblings
// and is never retried inside the turn.
type Fetcher struct {
	market domrepo.MarketProvider
	news   domrepo.NewsProvider
	chart  domrepo.ChartProvider

	marketTimeout time.Duration
	newsTimeout   time.Duration
	chartTimeout  time.Duration

	logger *logger.Logger
}

func NewFetcher(
	market domrepo.MarketProvider,
	news domrepo.NewsProvider,
	chart domrepo.ChartProvider,
	marketTimeout, newsTimeout, chartTimeout time.Duration,
	lgr *logger.Logger,
) *Fetcher {
	return &Fetcher{
		market: market, news: news, chart: chart,
		marketTimeout: marketTimeout,
		newsTimeout:   newsTimeout,
		chartTimeout:  chartTimeout,
		logger:        lgr,
	}
}

// Fetch fills st.Data and st.Chart from st.Entities and st.Intents.
// Chart data, when requested, comes from the first entity only; a chart
// request also pulls news so the reply has something to say about the
// move.
func (f *Fetcher) Fetch(ctx context.Context, st *models.WorkflowState) {
	entities := st.Entities
	if len(entities) > maxFanOut {
		entities = entities[:maxFanOut]
	}
	if len(entities) == 0 {
		return
	}

	wantStock := st.Intents.Has(models.IntentStock)
	wantChart := st.Intents.Has(models.IntentChart)
	wantNews := st.Intents.Has(models.IntentNews) || wantChart

	st.Data = make([]models.EntityData, len(entities))
	var wg sync.WaitGroup

	for i, ent := range entities {
		st.Data[i].Entity = ent

		if wantStock {
			wg.Add(1)
			go func(i int, ent models.EntityRef) {
				defer wg.Done()
				symbol, exchange := ent.PreferredSymbol()
				if symbol == "" {
					return
				}
				cctx, cancel := context.WithTimeout(ctx, f.marketTimeout)
				defer cancel()
				snap, err := f.market.Snapshot(cctx, symbol, exchange)
				if err != nil {
					f.logger.Debug("stock branch failed",
						logger.String("symbol", symbol), logger.Error(err))
					return
				}
				st.Data[i].Stock = snap
			}(i, ent)
		}

		if wantNews {
			wg.Add(1)
			go func(i int, ent models.EntityRef) {
				defer wg.Done()
				cctx, cancel := context.WithTimeout(ctx, f.newsTimeout)
				defer cancel()
				items, err := f.news.Recent(cctx, ent.Name, st.Detail.ArticleCount())
				if err != nil {
					f.logger.Debug("news branch failed",
						logger.String("entity", ent.Name), logger.Error(err))
					return
				}
				st.Data[i].News = items
			}(i, ent)
		}
	}

	if wantChart {
		first := entities[0]
		if sym := first.QuoteSymbol(); sym != "" {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tf := domrepo.ParseTimeframe(st.TimeframeHint)
				cctx, cancel := context.WithTimeout(ctx, f.chartTimeout)
				defer cancel()
				series, err := f.chart.Series(cctx, sym, tf)
				if err != nil {
					f.logger.Debug("chart branch failed",
						logger.String("symbol", sym), logger.Error(err))
					return
				}
				st.Chart = series
			}()
		}
	}

	wg.Wait()
}
