package resolve

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/pkg/logger"
)

const (
	aliasBoost = 5
	llmFloor   = 60
	llmCeil    = 95
)

var exchangeSymbolRe = regexp.MustCompile(`(?i)\b([A-Z0-9&-]{1,20})\.(NS|BO)\b`)

// Resolver maps free text to ranked resolution candidates by cascading
// pattern extraction, span tagging, fuzzy directory matching and a
// completion-service fallback.
type Resolver struct {
	dir       domrepo.CompanyDirectory
	llm       domrepo.CompletionService
	logger    *logger.Logger
	metrics   domrepo.Metrics
	threshold int
}

func NewResolver(dir domrepo.CompanyDirectory, llm domrepo.CompletionService, lgr *logger.Logger, metrics domrepo.Metrics, threshold int) *Resolver {
	if threshold <= 0 {
		threshold = 70
	}
	return &Resolver{dir: dir, llm: llm, logger: lgr, metrics: metrics, threshold: threshold}
}

// Resolve returns candidates ordered by descending confidence, deduplicated
// by normalized name. An empty result means unresolved, not an error.
func (r *Resolver) Resolve(ctx context.Context, query string) []models.ResolutionCandidate {
	// Explicit exchange-suffixed symbols bypass fuzzy scoring entirely.
	if c, ok := r.resolveExplicitSymbol(query); ok {
		r.metrics.RecordResolution(string(models.SourceRegex), true)
		return []models.ResolutionCandidate{c}
	}

	if c, ok := r.resolveIndex(query); ok {
		r.metrics.RecordResolution(string(models.SourceRegex), true)
		return []models.ResolutionCandidate{c}
	}

	var candidates []models.ResolutionCandidate
	for _, frag := range ExtractCandidates(query) {
		if c, ok := r.fuzzyMatch(frag, models.SourceFuzzy); ok {
			candidates = append(candidates, c)
		}
	}
	for _, span := range TagSpans(query) {
		if c, ok := r.fuzzyMatch(span, models.SourceNER); ok {
			candidates = append(candidates, c)
		}
	}
	r.metrics.RecordResolution(string(models.SourceFuzzy), len(candidates) > 0)

	if len(candidates) == 0 {
		if c, ok := r.llmFallback(ctx, query); ok {
			candidates = append(candidates, c)
		}
		r.metrics.RecordResolution(string(models.SourceLLM), len(candidates) > 0)
	}

	return dedupe(candidates)
}

// Suggest ranks directory rows against the query without applying the
// acceptance threshold, for clarify prompts.
func (r *Resolver) Suggest(query string, n int) []models.Suggestion {
	frag := query
	if frags := ExtractCandidates(query); len(frags) > 0 {
		frag = frags[0]
	}
	norm := Normalize(frag)
	if alias, ok := CanonicalAlias(norm); ok {
		norm = Normalize(alias)
	}
	single := !strings.Contains(norm, " ")

	type scored struct {
		row   models.EntityRef
		score int
	}
	var rows []scored
	for _, row := range r.dir.All() {
		s := Score(norm, Normalize(row.Name), row.NSESymbol != "" || row.BSESymbol != "", single)
		if s > 0 {
			rows = append(rows, scored{row: row, score: s})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

	if len(rows) > n {
		rows = rows[:n]
	}
	out := make([]models.Suggestion, 0, len(rows))
	for _, sc := range rows {
		sym, exch := sc.row.PreferredSymbol()
		out = append(out, models.Suggestion{
			Name:     sc.row.Name,
			Symbol:   sym,
			Exchange: exch,
			Sector:   sc.row.Sector,
			Industry: sc.row.Industry,
		})
	}
	return out
}

func (r *Resolver) resolveExplicitSymbol(query string) (models.ResolutionCandidate, bool) {
	m := exchangeSymbolRe.FindStringSubmatch(query)
	if m == nil {
		return models.ResolutionCandidate{}, false
	}
	sym := strings.ToUpper(m[1])
	exch := strings.ToUpper(m[2])

	entity, found := r.dir.SearchBySymbol(sym)
	if !found {
		entity = models.EntityRef{Name: sym}
	}
	if exch == "NS" {
		entity.NSESymbol = sym
		entity.BSESymbol = ""
	} else {
		entity.BSESymbol = sym
		entity.NSESymbol = ""
	}
	return models.ResolutionCandidate{Entity: entity, Confidence: 100, Source: models.SourceRegex}, true
}

func (r *Resolver) resolveIndex(query string) (models.ResolutionCandidate, bool) {
	norm := Normalize(query)
	if sym, ok := IndexSymbol(norm); ok {
		return models.ResolutionCandidate{
			Entity:     models.EntityRef{Name: strings.ToUpper(norm), NSESymbol: sym},
			Confidence: 100,
			Source:     models.SourceRegex,
		}, true
	}
	return models.ResolutionCandidate{}, false
}

func (r *Resolver) fuzzyMatch(fragment string, source models.ResolutionSource) (models.ResolutionCandidate, bool) {
	norm := Normalize(fragment)
	if norm == "" {
		return models.ResolutionCandidate{}, false
	}

	if sym, ok := IndexSymbol(norm); ok {
		return models.ResolutionCandidate{
			Entity:     models.EntityRef{Name: strings.ToUpper(norm), NSESymbol: sym},
			Confidence: 100,
			Source:     source,
		}, true
	}

	boost := 0
	if alias, ok := CanonicalAlias(norm); ok {
		norm = Normalize(alias)
		boost = aliasBoost
	}
	single := !strings.Contains(norm, " ")

	var best models.EntityRef
	bestScore := 0
	for _, row := range r.dir.All() {
		s := Score(norm, Normalize(row.Name), row.NSESymbol != "" || row.BSESymbol != "", single)
		if s > bestScore {
			bestScore = s
			best = row
		}
	}

	if bestScore < r.threshold {
		return models.ResolutionCandidate{}, false
	}
	return models.ResolutionCandidate{
		Entity:     best,
		Confidence: clamp(bestScore+boost, 0, 100),
		Source:     source,
	}, true
}

func (r *Resolver) llmFallback(ctx context.Context, query string) (models.ResolutionCandidate, bool) {
	name, err := r.llm.ExtractEntityName(ctx, query)
	if err != nil {
		r.logger.Debug("entity extraction fallback failed", logger.Error(err))
		return models.ResolutionCandidate{}, false
	}
	if name == "" {
		return models.ResolutionCandidate{}, false
	}

	c, ok := r.fuzzyMatch(name, models.SourceLLM)
	if !ok {
		return models.ResolutionCandidate{}, false
	}
	// Model-derived confidence stays inside a conservative band.
	c.Confidence = clamp(c.Confidence, llmFloor, llmCeil)
	return c, true
}

func dedupe(candidates []models.ResolutionCandidate) []models.ResolutionCandidate {
	byName := make(map[string]models.ResolutionCandidate, len(candidates))
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := Normalize(c.Entity.Name)
		prev, seen := byName[key]
		if !seen {
			byName[key] = c
			order = append(order, key)
			continue
		}
		if c.Confidence > prev.Confidence {
			byName[key] = c
		}
	}

	out := make([]models.ResolutionCandidate, 0, len(byName))
	for _, key := range order {
		out = append(out, byName[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}
