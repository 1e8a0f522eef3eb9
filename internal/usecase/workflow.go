package usecase

import (
	"context"
	"strings"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/intent"
	"FinTalk/internal/merge"
	"FinTalk/internal/resolve"
	"FinTalk/pkg/logger"
	"FinTalk/pkg/queue"
	"FinTalk/pkg/util"
)

const maxSuggestions = 5

const smallTalkFallback = "I'm best at Indian stock markets. Ask me about a listed company's price, news or chart."

// Engine drives one conversational turn end to end: classify, resolve,
// fetch, merge, remember. Every turn produces a reply; failures degrade
// to clarify prompts or the no-data text rather than surfacing errors.
type Engine struct {
	classifier *intent.Classifier
	resolver   *resolve.Resolver
	fetcher    *Fetcher
	merger     *merge.Merger
	llm        domrepo.CompletionService
	sessions   domrepo.SessionStore
	directory  domrepo.CompanyDirectory
	news       domrepo.NewsProvider
	analytics  queue.QueueService
	metrics    domrepo.Metrics
	logger     *logger.Logger
	sessionTTL time.Duration
}

func NewEngine(
	classifier *intent.Classifier,
	resolver *resolve.Resolver,
	fetcher *Fetcher,
	merger *merge.Merger,
	llm domrepo.CompletionService,
	sessions domrepo.SessionStore,
	directory domrepo.CompanyDirectory,
	news domrepo.NewsProvider,
	analytics queue.QueueService,
	metrics domrepo.Metrics,
	lgr *logger.Logger,
	sessionTTL time.Duration,
) *Engine {
	return &Engine{
		classifier: classifier,
		resolver:   resolver,
		fetcher:    fetcher,
		merger:     merger,
		llm:        llm,
		sessions:   sessions,
		directory:  directory,
		news:       news,
		analytics:  analytics,
		metrics:    metrics,
		logger:     lgr,
		sessionTTL: sessionTTL,
	}
}

// HandleTurn runs one turn. The returned error is reserved for context
// cancellation; domain failures are already folded into the reply.
func (e *Engine) HandleTurn(ctx context.Context, query, chatID, userID string) (*models.Reply, error) {
	key := models.SessionKey(chatID, userID)
	session, err := e.sessions.Load(ctx, key, e.sessionTTL)
	if err != nil {
		e.logger.Warn("session load degraded", logger.String("key", key), logger.Error(err))
	}

	st := models.NewWorkflowState(query, key, session)
	st.Detail = models.DetailLevelFromQuery(query)

	intents, hints := e.classifier.Classify(ctx, query, session)
	st.Intents = intents
	st.EntityHint = hints.Entity
	st.TimeframeHint = hints.Timeframe

	outcome := "ok"
	switch {
	case intents.Has(models.IntentGreeting):
		st.Reply = e.merger.RenderGreeting()

	case intents.Has(models.IntentClarify):
		st.Suggestions = e.resolver.Suggest(query, maxSuggestions)
		st.Reply = e.merger.RenderClarify(st.Suggestions)
		outcome = "clarify"

	case intents.Has(models.IntentExpandNews) && !intents.NeedsEntity():
		st.Reply, outcome = e.expand(ctx, st)

	case intents.NeedsEntity():
		st.Reply, outcome = e.dataTurn(ctx, st)

	default:
		st.Reply = e.smallTalk(ctx, query)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.metrics.RecordTurn(primaryIntent(intents), outcome)
	e.recordTurn(ctx, st, outcome)
	return st.Reply, nil
}

// ClearSession forgets everything remembered under key.
func (e *Engine) ClearSession(ctx context.Context, key string) error {
	return e.sessions.Clear(ctx, key)
}

// dataTurn is the resolve-fetch-merge path for stock/news/chart intents.
func (e *Engine) dataTurn(ctx context.Context, st *models.WorkflowState) (*models.Reply, string) {
	e.resolveEntities(ctx, st)

	if len(st.Entities) == 0 {
		st.Suggestions = e.resolver.Suggest(st.Query, maxSuggestions)
		return e.merger.RenderClarify(st.Suggestions), "clarify"
	}

	e.fetcher.Fetch(ctx, st)

	// Resolution succeeded, so the company is remembered even when every
	// provider branch fails; a follow-up keeps its subject through an
	// upstream outage.
	e.rememberTurn(ctx, st)

	if !st.HasData() {
		return e.merger.Render(st), "no_data"
	}
	return e.merger.Render(st), "ok"
}

// resolveEntities fills st.Entities from the query, then the classifier
// hint, then session memory, and as a last resort a directory lookup on
// bare symbols and name prefixes.
func (e *Engine) resolveEntities(ctx context.Context, st *models.WorkflowState) {
	cands := e.resolver.Resolve(ctx, st.Query)
	if len(cands) == 0 && st.EntityHint != "" {
		cands = e.resolver.Resolve(ctx, st.EntityHint)
	}
	st.Candidates = cands

	for _, c := range cands {
		st.Entities = append(st.Entities, c.Entity)
		if len(st.Entities) == maxFanOut {
			break
		}
	}
	if len(st.Entities) > 0 {
		return
	}

	// An unresolved follow-up falls back to the remembered company unless
	// the wording asks for a new subject.
	if st.Session.HasEntity() && !intent.SignalsNewSubject(st.Query) {
		st.Entities = []models.EntityRef{*st.Session.Entity}
		st.FromMemory = true
		e.metrics.RecordMemory("entity_reuse")
		return
	}

	if c, ok := e.directoryLookup(st.Query); ok {
		st.Candidates = []models.ResolutionCandidate{c}
		st.Entities = []models.EntityRef{c.Entity}
	}
}

// directoryLookup matches a short single-token query against the
// directory's symbol table ("irctc", "TCS"), then as a name prefix
// ("infos"). An ambiguous prefix stays unresolved so the turn clarifies.
func (e *Engine) directoryLookup(query string) (models.ResolutionCandidate, bool) {
	token := strings.TrimSpace(query)
	if token == "" || strings.ContainsAny(token, " \t") || len(token) > 20 {
		return models.ResolutionCandidate{}, false
	}

	if ent, ok := e.directory.SearchBySymbol(strings.ToUpper(token)); ok {
		return models.ResolutionCandidate{Entity: ent, Confidence: 100, Source: models.SourceRegex}, true
	}

	lower := strings.ToLower(token)
	var hits []models.EntityRef
	for _, row := range e.directory.SearchByName(token, 2) {
		if strings.HasPrefix(strings.ToLower(row.Name), lower) {
			hits = append(hits, row)
		}
	}
	if len(hits) != 1 {
		return models.ResolutionCandidate{}, false
	}
	return models.ResolutionCandidate{Entity: hits[0], Confidence: 90, Source: models.SourceFuzzy}, true
}

// expand handles "tell me more": summarize the last shared article, or
// fetch one fresh article for the remembered company.
func (e *Engine) expand(ctx context.Context, st *models.WorkflowState) (*models.Reply, string) {
	var articleURL, title string
	if st.Session != nil {
		articleURL = st.Session.LastArticleURL
	}

	if articleURL == "" {
		var remembered string
		if st.Session.HasEntity() {
			remembered = st.Session.Entity.Name
		}
		topic := util.FirstNonEmpty(st.EntityHint, remembered)
		if topic == "" {
			st.Suggestions = e.resolver.Suggest(st.Query, maxSuggestions)
			return e.merger.RenderClarify(st.Suggestions), "clarify"
		}
		items, err := e.news.Recent(ctx, topic, 1)
		if err != nil || len(items) == 0 {
			return e.merger.Render(st), "no_data"
		}
		articleURL = items[0].URL
		title = items[0].Title
	}

	text, err := e.news.Article(ctx, articleURL)
	if err != nil {
		e.logger.Debug("article fetch failed", logger.String("url", articleURL), logger.Error(err))
		return e.merger.Render(st), "no_data"
	}

	words := st.Detail.WordLimit()
	summary, err := e.llm.Summarize(ctx, text, words)
	if err != nil {
		e.logger.Debug("summary fell back to truncation", logger.Error(err))
		summary = util.TruncateWords(util.CompactWhitespace(text), words)
	}

	sess := st.Session
	if sess == nil {
		sess = &models.ConversationSession{}
	}
	sess.LastArticleURL = articleURL
	e.saveSession(ctx, st.SessionKey, sess)

	return e.merger.RenderExpanded(title, summary), "ok"
}

func (e *Engine) smallTalk(ctx context.Context, query string) *models.Reply {
	text, err := e.llm.SmallTalk(ctx, query)
	if err != nil || strings.TrimSpace(text) == "" {
		return &models.Reply{Text: smallTalkFallback}
	}
	return &models.Reply{Text: text}
}

// rememberTurn persists the turn's side effects into session memory.
func (e *Engine) rememberTurn(ctx context.Context, st *models.WorkflowState) {
	sess := st.Session
	if sess == nil {
		sess = &models.ConversationSession{}
	}
	if p := st.Primary(); p != nil {
		sess.Entity = p
	}
	sess.Intents = st.Intents.Strings()
	for _, d := range st.Data {
		if len(d.News) > 0 {
			sess.LastArticleURL = d.News[0].URL
			break
		}
	}
	e.saveSession(ctx, st.SessionKey, sess)
}

func (e *Engine) saveSession(ctx context.Context, key string, sess *models.ConversationSession) {
	if err := e.sessions.Save(ctx, key, sess); err != nil {
		e.logger.Warn("session save degraded", logger.String("key", key), logger.Error(err))
	}
}

// recordTurn enqueues the analytics row. Analytics is best effort and
// never blocks or fails the reply.
func (e *Engine) recordTurn(ctx context.Context, st *models.WorkflowState, outcome string) {
	if e.analytics == nil {
		return
	}
	rec := &models.TurnRecord{
		At:         st.StartedAt,
		SessionKey: st.SessionKey,
		Query:      st.Query,
		Intents:    st.Intents.Strings(),
		FromMemory: st.FromMemory,
		DurationMs: time.Since(st.StartedAt).Milliseconds(),
	}
	if outcome != "ok" && outcome != "clarify" {
		rec.ErrorKind = outcome
	}
	if p := st.Primary(); p != nil {
		rec.Entity = p.Name
		rec.Symbol, _ = p.PreferredSymbol()
	}
	if err := e.analytics.PublishMessage(ctx, models.TurnMessageType, rec); err != nil {
		e.logger.Debug("turn analytics enqueue failed", logger.Error(err))
	}
}

func primaryIntent(set models.IntentSet) string {
	for _, in := range []models.Intent{
		models.IntentChart, models.IntentStock, models.IntentNews,
		models.IntentExpandNews, models.IntentClarify, models.IntentGreeting,
	} {
		if set.Has(in) {
			return string(in)
		}
	}
	return string(models.IntentCasual)
}
