package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"FinTalk/internal/domain/models"
)

// extractJSON digs a JSON object out of a completion that may be wrapped
// in code fences, prose, or single-quoted pseudo-JSON.
func extractJSON(raw string, dest interface{}) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Errorf("empty completion: %w", models.ErrMalformedModelOutput)
	}

	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in completion: %w", models.ErrMalformedModelOutput)
	}
	s = s[start : end+1]

	if err := json.Unmarshal([]byte(s), dest); err == nil {
		return nil
	}

	// Single-quoted output is common enough to tolerate.
	requoted := strings.ReplaceAll(s, `'`, `"`)
	if err := json.Unmarshal([]byte(requoted), dest); err != nil {
		return fmt.Errorf("decode completion: %w", models.ErrMalformedModelOutput)
	}
	return nil
}
