package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/logger"
)

type stubCompletion struct {
	result domrepo.ClassifyResult
	err    error
	calls  int
}

func (s *stubCompletion) Classify(ctx context.Context, query string, session *models.ConversationSession) (domrepo.ClassifyResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubCompletion) ExtractEntityName(ctx context.Context, query string) (string, error) {
	return "", nil
}

func (s *stubCompletion) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	return "", nil
}

func (s *stubCompletion) SmallTalk(ctx context.Context, query string) (string, error) {
	return "", nil
}

func newTestClassifier(t *testing.T, stub *stubCompletion) *Classifier {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return NewClassifier(stub, l)
}

func TestClassifyEmptyQueryIsCasual(t *testing.T) {
	stub := &stubCompletion{}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "   ", nil)
	assert.True(t, set.Has(models.IntentCasual))
	assert.Equal(t, 0, stub.calls, "empty query should not hit the model")
}

func TestClassifyGreetingShortCircuits(t *testing.T) {
	stub := &stubCompletion{}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "hello!", nil)
	assert.True(t, set.Has(models.IntentGreeting))
	assert.Equal(t, 0, stub.calls)
}

func TestClassifyModelIntentsPassThrough(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{
		Intents:       []string{"news"},
		EntityHint:    "Infosys",
		TimeframeHint: "5y 1mo",
	}}
	c := newTestClassifier(t, stub)

	set, hints := c.Classify(context.Background(), "any developments at infosys lately", nil)
	assert.True(t, set.Has(models.IntentNews))
	assert.Equal(t, "Infosys", hints.Entity)
	assert.Equal(t, "5y 1mo", hints.Timeframe)
}

func TestClassifyInvalidLabelsDropped(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{
		Intents: []string{"weather", "stock"},
	}}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "tcs outlook", nil)
	assert.True(t, set.Has(models.IntentStock))
	assert.False(t, models.ValidIntent("weather"))
	assert.Len(t, set, 1)
}

func TestClassifyExplicitStockKeywordOverridesModel(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{
		Intents: []string{"stock", "news", "chart"},
	}}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "what is the price of TCS", nil)
	assert.True(t, set.Has(models.IntentStock))
	assert.False(t, set.Has(models.IntentNews))
	assert.False(t, set.Has(models.IntentChart))
}

func TestClassifyKeywordFallbackOnModelFailure(t *testing.T) {
	stub := &stubCompletion{err: errors.New("model down")}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "show me the chart", nil)
	assert.True(t, set.Has(models.IntentChart))
}

func TestClassifyPronounWithoutContextAsksToClarify(t *testing.T) {
	stub := &stubCompletion{err: errors.New("model down")}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "how about it", nil)
	assert.True(t, set.Has(models.IntentClarify))
	assert.Len(t, set, 1)
}

func TestClassifyShortFollowUpIsNotGreeting(t *testing.T) {
	stub := &stubCompletion{err: errors.New("model down")}
	c := newTestClassifier(t, stub)

	// "anything" carries "hi" as a substring; it must not read as a greeting.
	set, _ := c.Classify(context.Background(), "anything else", nil)
	assert.False(t, set.Has(models.IntentGreeting))
	assert.True(t, set.Has(models.IntentCasual))
}

func TestGreetingKeywordsMatchWholeWordsOnly(t *testing.T) {
	assert.False(t, containsAnyWord("anything else", greetingWords))
	assert.False(t, containsAnyWord("is this the one", greetingWords))
	assert.True(t, containsAnyWord("hi there", greetingWords))
	assert.True(t, containsAnyWord("good morning!", greetingWords))
}

func TestSignalsNewSubjectIgnoresSubstrings(t *testing.T) {
	assert.False(t, SignalsNewSubject("infosys news today"))
	assert.False(t, SignalsNewSubject("which exchange is it on"))
	assert.True(t, SignalsNewSubject("switch to a different company"))
	assert.True(t, SignalsNewSubject("show me another one"))
}

func TestClassifyAmbiguousFollowUpUsesSessionBreadth(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{}}
	c := newTestClassifier(t, stub)
	session := &models.ConversationSession{Entity: &models.EntityRef{Name: "Infosys", NSESymbol: "INFY"}}

	set, _ := c.Classify(context.Background(), "anything else", session)
	assert.True(t, set.Has(models.IntentStock))
	assert.True(t, set.Has(models.IntentNews))
}

func TestClassifyTerminalIntentInvariant(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{
		Intents: []string{"greeting", "stock"},
	}}
	c := newTestClassifier(t, stub)

	set, _ := c.Classify(context.Background(), "hello there, reliance?", nil)
	assert.True(t, set.Has(models.IntentGreeting))
	assert.Len(t, set, 1)
}

func TestClassifyDeterministicForFixedInputs(t *testing.T) {
	stub := &stubCompletion{result: domrepo.ClassifyResult{Intents: []string{"news"}}}
	c := newTestClassifier(t, stub)

	first, _ := c.Classify(context.Background(), "infosys headlines", nil)
	second, _ := c.Classify(context.Background(), "infosys headlines", nil)
	assert.True(t, first.Equal(second))
}
