package provider

import (
	"context"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/service/ratelimit"
	xhttp "FinTalk/pkg/http"
	"FinTalk/pkg/logger"
)

const defaultNewsBaseURL = "https://news.google.com/rss/search"

const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewsProvider fetches recent articles from a news RSS search feed.
type NewsProvider struct {
	client  *xhttp.Client
	baseURL string
	logger  *logger.Logger
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter

	capacity float64
	refill   float64
}

func NewNewsProvider(baseURL string, timeout time.Duration, lgr *logger.Logger, metrics domrepo.Metrics, limiter *ratelimit.Limiter, capacity, refill float64) *NewsProvider {
	if baseURL == "" {
		baseURL = defaultNewsBaseURL
	}
	return &NewsProvider{
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL: baseURL,
		logger:  lgr, metrics: metrics, limiter: limiter,
		capacity: capacity, refill: refill,
	}
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Source      string `xml:"source"`
}

// Recent returns up to k articles for the query, newest first.
func (p *NewsProvider) Recent(ctx context.Context, query string, k int) ([]models.NewsItem, error) {
	if !p.limiter.Allow("news", p.capacity, p.refill) {
		p.metrics.RecordProviderError("news")
		return nil, fmt.Errorf("news rate limited: %w", models.ErrUpstreamUnavailable)
	}

	start := time.Now()
	var body []byte
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    p.baseURL,
		Headers: map[string]string{
			"User-Agent": browserUA,
		},
		QueryParams: map[string][]string{
			"q":    {query},
			"hl":   {"en-IN"},
			"gl":   {"IN"},
			"ceid": {"IN:en"},
		},
	}, &body)
	p.metrics.RecordProviderLatency("news", time.Since(start).Seconds())
	if err != nil {
		p.metrics.RecordProviderError("news")
		return nil, fmt.Errorf("news feed: %w", models.ErrUpstreamUnavailable)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		p.metrics.RecordProviderError("news")
		p.logger.Debug("news feed parse failed", logger.Error(err))
		return nil, fmt.Errorf("news feed parse: %w", models.ErrUpstreamUnavailable)
	}

	items := feed.Channel.Items
	if len(items) > k {
		items = items[:k]
	}
	out := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.NewsItem{
			Title:   strings.TrimSpace(it.Title),
			URL:     strings.TrimSpace(it.Link),
			Summary: stripTags(it.Description),
			Source:  strings.TrimSpace(it.Source),
		})
	}
	return out, nil
}

// Article fetches one article page and returns its readable text, capped
// to a workable length for summarization.
func (p *NewsProvider) Article(ctx context.Context, url string) (string, error) {
	if !p.limiter.Allow("news", p.capacity, p.refill) {
		p.metrics.RecordProviderError("news")
		return "", fmt.Errorf("news rate limited: %w", models.ErrUpstreamUnavailable)
	}

	var body []byte
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     url,
		Headers: map[string]string{"User-Agent": browserUA},
	}, &body)
	if err != nil {
		p.metrics.RecordProviderError("news")
		return "", fmt.Errorf("article fetch: %w", models.ErrUpstreamUnavailable)
	}

	text := stripTags(string(body))
	const maxChars = 6000
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

var (
	scriptRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

func stripTags(html string) string {
	s := scriptRe.ReplaceAllString(html, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
