package intent

import (
	"context"
	"strings"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/logger"
)

// Hints are optional extras the classifier lifted from the query.
type Hints struct {
	Entity    string
	Timeframe string
}

// Classifier labels queries with intents. The completion service is the
// primary path; a keyword scan takes over on failure, and explicit user
// wording always wins over inferred breadth.
type Classifier struct {
	llm    domrepo.CompletionService
	logger *logger.Logger
}

func NewClassifier(llm domrepo.CompletionService, lgr *logger.Logger) *Classifier {
	return &Classifier{llm: llm, logger: lgr}
}

// Classify is deterministic for a fixed (query, session) pair modulo the
// completion service; all post-processing is pure.
func (c *Classifier) Classify(ctx context.Context, query string, session *models.ConversationSession) (models.IntentSet, Hints) {
	if strings.TrimSpace(query) == "" {
		return models.NewIntentSet(models.IntentCasual), Hints{}
	}

	q := strings.ToLower(query)
	if isGreetingOnly(q) {
		return models.NewIntentSet(models.IntentGreeting), Hints{}
	}

	var hints Hints
	set := models.NewIntentSet()
	llmFailed := false

	res, err := c.llm.Classify(ctx, query, session)
	if err != nil {
		llmFailed = true
		c.logger.Debug("intent classification fell back to keywords", logger.Error(err))
	} else {
		for _, label := range res.Intents {
			if models.ValidIntent(label) {
				set.Add(models.Intent(label))
			}
		}
		hints.Entity = res.EntityHint
		hints.Timeframe = res.TimeframeHint
	}

	if len(set) == 0 {
		set = keywordScan(q)
	}

	set = applyOverrides(q, set)

	if len(set) == 0 {
		if llmFailed && HasPronounReference(query) && !session.HasEntity() {
			return models.NewIntentSet(models.IntentClarify), hints
		}
		if session.HasEntity() {
			return models.NewIntentSet(models.IntentStock, models.IntentNews), hints
		}
		return models.NewIntentSet(models.IntentCasual), hints
	}

	return set.Normalize(), hints
}

// keywordScan is the deterministic fallback: one pass over the intent
// keyword sets.
func keywordScan(q string) models.IntentSet {
	set := models.NewIntentSet()
	if containsAny(q, expandWords) {
		set.Add(models.IntentExpandNews)
	}
	if containsAny(q, stockWords) {
		set.Add(models.IntentStock)
	}
	if containsAny(q, newsWords) {
		set.Add(models.IntentNews)
	}
	if containsAny(q, chartWords) {
		set.Add(models.IntentChart)
	}
	if len(set) == 0 && containsAnyWord(q, greetingWords) && len(strings.Fields(q)) <= 3 {
		set.Add(models.IntentGreeting)
	}
	return set
}

// applyOverrides resolves stock/news/chart ambiguity in favor of the
// intent the user explicitly keyed, even when the model suggested more.
func applyOverrides(q string, set models.IntentSet) models.IntentSet {
	hasStock := containsAny(q, stockWords)
	hasNews := containsAny(q, newsWords)
	hasChart := containsAny(q, chartWords)

	switch {
	case hasStock && !hasNews && !hasChart:
		out := models.NewIntentSet(models.IntentStock)
		if set.Has(models.IntentExpandNews) {
			out.Add(models.IntentExpandNews)
		}
		return out
	case hasChart && !hasNews && !hasStock:
		out := models.NewIntentSet(models.IntentChart)
		if set.Has(models.IntentExpandNews) {
			out.Add(models.IntentExpandNews)
		}
		return out
	}
	return set
}
