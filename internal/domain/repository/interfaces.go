package repository

import (
	"context"
	"time"

	"FinTalk/internal/domain/models"
)

// CompletionService exposes the language model as typed capabilities.
// Each capability has its own prompt and its own deterministic fallback
// at the call site; a test double can stub one without the others.
type CompletionService interface {
	// Classify labels a query with intents and optional entity/timeframe
	// hints. Malformed output must be reported, not papered over.
	Classify(ctx context.Context, query string, session *models.ConversationSession) (ClassifyResult, error)

	// ExtractEntityName returns the single most likely official listed
	// company for the query, or "" when the model answers none.
	ExtractEntityName(ctx context.Context, query string) (string, error)

	// Summarize condenses article text to roughly wordLimit words.
	Summarize(ctx context.Context, text string, wordLimit int) (string, error)

	// SmallTalk produces a short conversational reply.
	SmallTalk(ctx context.Context, query string) (string, error)
}

// ClassifyResult is the parsed shape of a classification completion.
type ClassifyResult struct {
	Intents       []string
	EntityHint    string
	TimeframeHint string
}

// CompanyDirectory is the read-only searchable set of tradable entities.
// Safe for concurrent use.
type CompanyDirectory interface {
	SearchByName(substring string, limit int) []models.EntityRef
	SearchBySymbol(symbol string) (models.EntityRef, bool)
	All() []models.EntityRef
}

// SessionStore is the per-conversation memory used across turns.
type SessionStore interface {
	Load(ctx context.Context, key string, ttl time.Duration) (*models.ConversationSession, error)
	Save(ctx context.Context, key string, session *models.ConversationSession) error
	Clear(ctx context.Context, key string) error
}

// MarketProvider returns a point-in-time snapshot for one listing.
type MarketProvider interface {
	Snapshot(ctx context.Context, symbol, exchange string) (*models.StockSnapshot, error)
}

// NewsProvider returns recent articles for a free-text query.
type NewsProvider interface {
	Recent(ctx context.Context, query string, k int) ([]models.NewsItem, error)

	// Article fetches the readable text of one article URL, for the
	// expand-news path.
	Article(ctx context.Context, url string) (string, error)
}

// ChartProvider returns a price series for a quote symbol.
type ChartProvider interface {
	Series(ctx context.Context, symbol string, tf Timeframe) (*models.ChartSeries, error)
}

// TurnLog persists completed-turn analytics rows.
type TurnLog interface {
	Insert(ctx context.Context, rec *models.TurnRecord) error
	Close() error
}

// TurnPublisher emits one event per completed turn.
type TurnPublisher interface {
	Publish(ctx context.Context, rec *models.TurnRecord) error
	Close() error
}

// Metrics records operational counters for the engine.
type Metrics interface {
	RecordTurn(intent string, outcome string)
	RecordResolution(source string, hit bool)
	RecordProviderLatency(provider string, seconds float64)
	RecordProviderError(provider string)
	RecordMemory(event string)
}
