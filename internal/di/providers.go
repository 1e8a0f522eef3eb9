package di

import (
	"context"
	"fmt"
	"time"

	"FinTalk/internal/directory"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/handler/api"
	"FinTalk/internal/intent"
	"FinTalk/internal/merge"
	"FinTalk/internal/provider"
	internalrepo "FinTalk/internal/repository"
	"FinTalk/internal/resolve"
	"FinTalk/internal/service/llm"
	"FinTalk/internal/service/ratelimit"
	"FinTalk/internal/session"
	"FinTalk/internal/usecase"
	"FinTalk/pkg/cache"
	pkgch "FinTalk/pkg/clickhouse"
	"FinTalk/pkg/config"
	pkgkafka "FinTalk/pkg/kafka"
	"FinTalk/pkg/logger"
	"FinTalk/pkg/metrics"
	"FinTalk/pkg/queue"
	"FinTalk/pkg/server"
)

// ProvideLogger builds the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideRedisCache connects to Redis. Redis is optional; without a host
// the session store and analytics queue run in degraded in-process mode.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if cfg.Redis.Host == "" {
		return nil, nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideSessionStore builds the layered conversation memory.
func ProvideSessionStore(rc *cache.RedisCache, lgr *logger.Logger, m domrepo.Metrics, cfg *config.Config) *session.Store {
	return session.NewStore(rc, lgr, m, cfg.Session.TTL, cfg.Session.SnapshotTTL)
}

// ProvideDirectory loads and indexes the instrument universe.
func ProvideDirectory(cfg *config.Config, lgr *logger.Logger) (*directory.Directory, error) {
	dir, err := directory.New(cfg.Directory.IndexPath, cfg.Directory.DataPath, lgr)
	if err != nil {
		return nil, fmt.Errorf("company directory: %w", err)
	}
	return dir, nil
}

// ProvideCompletionService creates the chat-completions client.
func ProvideCompletionService(cfg *config.Config, lgr *logger.Logger) domrepo.CompletionService {
	return llm.NewClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.Temperature,
		cfg.LLM.Timeout,
		lgr,
	)
}

// ProvideRateLimiter creates the shared provider token-bucket limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMarketProvider creates the quote provider.
func ProvideMarketProvider(lgr *logger.Logger, m domrepo.Metrics, lim *ratelimit.Limiter, cfg *config.Config) domrepo.MarketProvider {
	return provider.NewMarketProvider(lgr, m, lim,
		cfg.Providers.Market.Timeout,
		cfg.Providers.RateLimit.Capacity,
		cfg.Providers.RateLimit.RefillPerSec,
	)
}

// ProvideNewsProvider creates the news provider.
func ProvideNewsProvider(lgr *logger.Logger, m domrepo.Metrics, lim *ratelimit.Limiter, cfg *config.Config) domrepo.NewsProvider {
	return provider.NewNewsProvider(
		cfg.Providers.News.BaseURL,
		cfg.Providers.News.Timeout,
		lgr, m, lim,
		cfg.Providers.RateLimit.Capacity,
		cfg.Providers.RateLimit.RefillPerSec,
	)
}

// ProvideChartProvider creates the chart provider.
func ProvideChartProvider(lgr *logger.Logger, m domrepo.Metrics, lim *ratelimit.Limiter, cfg *config.Config) domrepo.ChartProvider {
	return provider.NewChartProvider(
		cfg.Providers.Chart.BaseURL,
		cfg.Providers.Chart.Timeout,
		lgr, m, lim,
		cfg.Providers.RateLimit.Capacity,
		cfg.Providers.RateLimit.RefillPerSec,
	)
}

// ProvideClassifier creates the intent classifier.
func ProvideClassifier(svc domrepo.CompletionService, lgr *logger.Logger) *intent.Classifier {
	return intent.NewClassifier(svc, lgr)
}

// ProvideResolver creates the entity resolver.
func ProvideResolver(dir *directory.Directory, svc domrepo.CompletionService, lgr *logger.Logger, m domrepo.Metrics, cfg *config.Config) *resolve.Resolver {
	return resolve.NewResolver(dir, svc, lgr, m, cfg.Resolver.Threshold)
}

// ProvideFetcher creates the concurrent data fetcher.
func ProvideFetcher(market domrepo.MarketProvider, news domrepo.NewsProvider, chart domrepo.ChartProvider, cfg *config.Config, lgr *logger.Logger) *usecase.Fetcher {
	return usecase.NewFetcher(market, news, chart,
		cfg.Providers.Market.Timeout,
		cfg.Providers.News.Timeout,
		cfg.Providers.Chart.Timeout,
		lgr,
	)
}

// ProvideMerger creates the reply renderer.
func ProvideMerger() *merge.Merger {
	return merge.New()
}

// ProvideClickHouseClient creates a ClickHouse client and the turn log
// schema. Returns nil when ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.TurnLogSchema("chat_turns")); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideTurnLog creates the ClickHouse turn log, or nil when disabled.
func ProvideTurnLog(chClient *pkgch.Client) domrepo.TurnLog {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseTurnLog(chClient.DB(), "chat_turns")
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideTurnPublisher wraps the producer, or nil when disabled.
func ProvideTurnPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.TurnPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaTurnPublisher(producer, cfg.Kafka.Topic)
}

// ProvideAnalyticsQueue builds the background turn-analytics queue with
// its drain job registered. Returns nil without Redis or without any
// analytics sink.
func ProvideAnalyticsQueue(rc *cache.RedisCache, lgr *logger.Logger, cfg *config.Config, turnLog domrepo.TurnLog, publisher domrepo.TurnPublisher) *queue.RedisQueue {
	if rc == nil {
		return nil
	}
	if turnLog == nil && publisher == nil {
		return nil
	}
	job := internalrepo.NewTurnAnalyticsJob(turnLog, publisher)
	q := queue.NewRedisQueue(lgr, &queue.QueueConfig{
		Workers:    cfg.Analytics.QueueWorkers,
		QueueSize:  1000,
		RetryLimit: cfg.Analytics.RetryLimit,
		RetryDelay: 5 * time.Second,
	}, rc.Client(), queue.ModeProducerConsumer, queue.WithKeyPrefix("fintalk:analytics"))
	q.RegisterJob(job)
	return q
}

// ProvideEngine assembles the conversation engine.
func ProvideEngine(
	classifier *intent.Classifier,
	resolver *resolve.Resolver,
	fetcher *usecase.Fetcher,
	merger *merge.Merger,
	svc domrepo.CompletionService,
	sessions *session.Store,
	dir *directory.Directory,
	news domrepo.NewsProvider,
	analytics *queue.RedisQueue,
	m domrepo.Metrics,
	lgr *logger.Logger,
	cfg *config.Config,
) *usecase.Engine {
	var q queue.QueueService
	if analytics != nil {
		q = analytics
	}
	return usecase.NewEngine(
		classifier, resolver, fetcher, merger,
		svc, sessions, dir, news,
		q, m, lgr,
		cfg.Session.TTL,
	)
}

// ProvideChatHandler creates the HTTP/websocket boundary.
func ProvideChatHandler(lgr *logger.Logger, engine *usecase.Engine) *api.ChatHandler {
	return api.NewChatHandler(lgr, engine)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	lgr *logger.Logger,
	handler *api.ChatHandler,
	analytics *queue.RedisQueue,
	sessions *session.Store,
	dir *directory.Directory,
	chClient *pkgch.Client,
	publisher domrepo.TurnPublisher,
) *server.App {
	return server.New(cfg, lgr, handler, analytics, sessions, dir, chClient, publisher)
}
