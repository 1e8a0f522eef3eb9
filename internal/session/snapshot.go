package session

import (
	"sync"
	"time"

	"FinTalk/internal/domain/models"
)

// lastContext is the short-lived "last successful context" snapshot: one
// unkeyed slot used as a coarse default when nothing keyed is available.
type lastContext struct {
	mu  sync.RWMutex
	s   *models.ConversationSession
	exp time.Time
	ttl time.Duration
}

func newLastContext(ttl time.Duration) *lastContext {
	return &lastContext{ttl: ttl}
}

func (c *lastContext) get() (*models.ConversationSession, bool) {
	c.mu.RLock()
	s, exp := c.s, c.exp
	c.mu.RUnlock()
	if s == nil {
		return nil, false
	}
	if !exp.IsZero() && time.Now().After(exp) {
		c.mu.Lock()
		c.s = nil
		c.mu.Unlock()
		return nil, false
	}
	return s, true
}

func (c *lastContext) set(s *models.ConversationSession) {
	var exp time.Time
	if c.ttl > 0 {
		exp = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.s = s
	c.exp = exp
	c.mu.Unlock()
}
