package models

import "time"

// ConversationSession is the per-conversation state that survives a turn.
// It is replaced wholesale on save (last writer wins), never patched.
type ConversationSession struct {
	Entity         *EntityRef        `json:"entity,omitempty"`
	Intents        []string          `json:"intents,omitempty"`
	LastArticleURL string            `json:"last_article_url,omitempty"`
	Extras         map[string]string `json:"extras,omitempty"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// HasEntity reports whether the session remembers a resolved company.
func (s *ConversationSession) HasEntity() bool {
	return s != nil && s.Entity != nil && s.Entity.Resolved()
}

// Expired reports whether the session is stale for the given TTL.
// A non-positive TTL means never expire.
func (s *ConversationSession) Expired(ttl time.Duration, now time.Time) bool {
	if s == nil {
		return true
	}
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.UpdatedAt) > ttl
}

// SessionKey derives the memory key for one turn: conversation id first,
// then user id. Empty means memory is a no-op for this turn.
func SessionKey(chatID, userID string) string {
	if chatID != "" {
		return chatID
	}
	return userID
}
