package session

import (
	"context"
	"errors"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/cache"
	"FinTalk/pkg/logger"
)

// Store is the session memory behind the orchestrator: a persisted Redis
// layer with an in-process cache and a last-context snapshot as fallbacks.
// Writes go to both stores; an unreachable Redis never fails a turn.
type Store struct {
	redis   *cache.RedisCache
	local   *cache.MemoryCache
	last    *lastContext
	logger  *logger.Logger
	metrics domrepo.Metrics
	persist time.Duration
}

// NewStore builds the session store. persistTTL bounds how long Redis
// keeps a record; snapshotTTL bounds the unkeyed last-context fallback.
func NewStore(redis *cache.RedisCache, lgr *logger.Logger, metrics domrepo.Metrics, persistTTL, snapshotTTL time.Duration) *Store {
	return &Store{
		redis:   redis,
		local:   cache.NewMemoryCache(),
		last:    newLastContext(snapshotTTL),
		logger:  lgr,
		metrics: metrics,
		persist: persistTTL,
	}
}

// Load reads the session for key. A missing key is a no-op and returns
// nil. Records older than ttl read as empty. Redis errors degrade through
// the in-process cache and then the last-context snapshot.
func (s *Store) Load(ctx context.Context, key string, ttl time.Duration) (*models.ConversationSession, error) {
	if key == "" {
		return nil, nil
	}
	now := time.Now()

	if s.redis != nil {
		var sess models.ConversationSession
		err := s.redis.Get(ctx, cache.GenerateKey("session", key), &sess)
		switch {
		case err == nil:
			if sess.Expired(ttl, now) {
				s.metrics.RecordMemory("expired")
				return nil, nil
			}
			s.metrics.RecordMemory("hit")
			return &sess, nil
		case errors.Is(err, cache.ErrCacheMiss):
			// fall through to local layers
		default:
			s.logger.Warn("session store unreachable, using fallback",
				logger.String("key", key), logger.Error(err))
			s.metrics.RecordMemory("fallback")
		}
	}

	if v, ok := s.loadLocal(ctx, key); ok {
		if v.Expired(ttl, now) {
			return nil, nil
		}
		s.metrics.RecordMemory("local_hit")
		return v, nil
	}

	if v, ok := s.last.get(); ok && !v.Expired(ttl, now) {
		s.metrics.RecordMemory("snapshot_hit")
		return v, nil
	}

	s.metrics.RecordMemory("miss")
	return nil, nil
}

// Save replaces the full record under key in both stores. Saves with an
// empty key are dropped.
func (s *Store) Save(ctx context.Context, key string, sess *models.ConversationSession) error {
	if key == "" || sess == nil {
		return nil
	}
	sess.UpdatedAt = time.Now()

	// Non-positive TTL means keep forever.
	persist := s.persist
	if persist < 0 {
		persist = 0
	}

	_ = s.local.Set(ctx, cache.GenerateKey("session", key), sess, persist)
	s.last.set(sess)
	s.metrics.RecordMemory("save")

	if s.redis == nil {
		return nil
	}
	if err := s.redis.Set(ctx, cache.GenerateKey("session", key), sess, persist); err != nil {
		s.logger.Warn("session save degraded to in-process only",
			logger.String("key", key), logger.Error(err))
		return models.ErrMemoryUnavailable
	}
	return nil
}

// Clear forgets the session under key in every layer.
func (s *Store) Clear(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_ = s.local.Delete(ctx, cache.GenerateKey("session", key))
	s.last.set(nil)
	s.metrics.RecordMemory("clear")

	if s.redis == nil {
		return nil
	}
	if err := s.redis.Delete(ctx, cache.GenerateKey("session", key)); err != nil {
		return models.ErrMemoryUnavailable
	}
	return nil
}

// Close releases the in-process layer. The Redis client is shared and
// closed by its owner.
func (s *Store) Close() error {
	return s.local.Close()
}

func (s *Store) loadLocal(ctx context.Context, key string) (*models.ConversationSession, bool) {
	var v interface{}
	if err := s.local.Get(ctx, cache.GenerateKey("session", key), &v); err != nil {
		return nil, false
	}
	sess, ok := v.(*models.ConversationSession)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
