package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
	"FinTalk/internal/service/ratelimit"
	"FinTalk/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordTurn(string, string)             {}
func (nopMetrics) RecordResolution(string, bool)         {}
func (nopMetrics) RecordProviderLatency(string, float64) {}
func (nopMetrics) RecordProviderError(string)            {}
func (nopMetrics) RecordMemory(string)                   {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)
	return l
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>search results</title>
<item>
<title> Tata Motors Q1 profit jumps </title>
<link>https://example.com/a1</link>
<description>&lt;p&gt;Profit &amp;amp; revenue up&lt;/p&gt;</description>
<source url="https://example.com">Example Wire</source>
</item>
<item>
<title>Tata Motors launches new EV</title>
<link>https://example.com/a2</link>
<description>EV play</description>
<source url="https://example.com">Example Wire</source>
</item>
<item>
<title>Third story</title>
<link>https://example.com/a3</link>
<description>more</description>
<source url="https://example.com">Example Wire</source>
</item>
</channel>
</rss>`

func newNews(t *testing.T, srvURL string) *NewsProvider {
	t.Helper()
	return NewNewsProvider(srvURL, 5*time.Second, testLogger(t), nopMetrics{}, ratelimit.New(), 10, 100)
}

func TestNewsRecentParsesFeed(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items, err := newNews(t, srv.URL).Recent(context.Background(), "tata motors", 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "tata motors", gotQuery)
	assert.Equal(t, "Tata Motors Q1 profit jumps", items[0].Title)
	assert.Equal(t, "https://example.com/a1", items[0].URL)
	assert.Equal(t, "Profit & revenue up", items[0].Summary)
	assert.Equal(t, "Example Wire", items[0].Source)
}

func TestNewsRecentAllowsShortFeeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items, err := newNews(t, srv.URL).Recent(context.Background(), "tata", 10)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestNewsRecentUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newNews(t, srv.URL).Recent(context.Background(), "tata", 3)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestNewsRecentMalformedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss><channel><item>"))
	}))
	defer srv.Close()

	_, err := newNews(t, srv.URL).Recent(context.Background(), "tata", 3)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestNewsRecentRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	// One token, effectively no refill: second call must be rejected.
	p := NewNewsProvider(srv.URL, 5*time.Second, testLogger(t), nopMetrics{}, ratelimit.New(), 1, 0.000001)

	_, err := p.Recent(context.Background(), "tata", 1)
	require.NoError(t, err)
	_, err = p.Recent(context.Background(), "tata", 1)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)
}

func TestNewsArticleStripsMarkup(t *testing.T) {
	page := `<html><head><style>body{color:red}</style>
<script>window.x = 1;</script></head>
<body><h1>Headline</h1><p>First para.</p><p>Second&nbsp;para.</p></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := newNews(t, srv.URL).Article(context.Background(), srv.URL+"/story")
	require.NoError(t, err)
	assert.Equal(t, "Headline First para. Second para.", text)
	assert.NotContains(t, text, "window.x")
	assert.NotContains(t, text, "color:red")
}

func TestStripTags(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`<a href="x">link</a> text`, "link text"},
		{`plain`, "plain"},
		{`a &amp; b &quot;c&quot; &#39;d&#39;`, `a & b "c" 'd'`},
		{`  spaced   <b>out</b>  `, "spaced out"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, stripTags(tc.in), tc.in)
	}
}
