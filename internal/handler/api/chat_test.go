package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	"FinTalk/internal/intent"
	"FinTalk/internal/merge"
	"FinTalk/internal/resolve"
	"FinTalk/internal/session"
	"FinTalk/internal/usecase"
	"FinTalk/pkg/logger"
)

type nopMetrics struct{}

func (nopMetrics) RecordTurn(string, string)             {}
func (nopMetrics) RecordResolution(string, bool)         {}
func (nopMetrics) RecordProviderLatency(string, float64) {}
func (nopMetrics) RecordProviderError(string)            {}
func (nopMetrics) RecordMemory(string)                   {}

type stubLLM struct{}

func (stubLLM) Classify(context.Context, string, *models.ConversationSession) (domrepo.ClassifyResult, error) {
	return domrepo.ClassifyResult{}, errors.New("not wired in tests")
}
func (stubLLM) ExtractEntityName(context.Context, string) (string, error) { return "", nil }
func (stubLLM) Summarize(context.Context, string, int) (string, error)    { return "", nil }
func (stubLLM) SmallTalk(context.Context, string) (string, error)         { return "", nil }

func jsonDecode(resp *http.Response, dest interface{}) error {
	return json.NewDecoder(resp.Body).Decode(dest)
}

type stubDir struct{}

func (stubDir) SearchByName(string, int) []models.EntityRef { return nil }
func (stubDir) SearchBySymbol(string) (models.EntityRef, bool) {
	return models.EntityRef{}, false
}
func (stubDir) All() []models.EntityRef { return nil }

type stubMarket struct{}

func (stubMarket) Snapshot(context.Context, string, string) (*models.StockSnapshot, error) {
	return nil, models.ErrUpstreamUnavailable
}

type stubNews struct{}

func (stubNews) Recent(context.Context, string, int) ([]models.NewsItem, error) {
	return nil, models.ErrUpstreamUnavailable
}
func (stubNews) Article(context.Context, string) (string, error) {
	return "", models.ErrUpstreamUnavailable
}

type stubChart struct{}

func (stubChart) Series(context.Context, string, domrepo.Timeframe) (*models.ChartSeries, error) {
	return nil, models.ErrUpstreamUnavailable
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)

	llm := stubLLM{}
	store := session.NewStore(nil, lgr, nopMetrics{}, 30*time.Minute, 5*time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	engine := usecase.NewEngine(
		intent.NewClassifier(llm, lgr),
		resolve.NewResolver(stubDir{}, llm, lgr, nopMetrics{}, 70),
		usecase.NewFetcher(stubMarket{}, stubNews{}, stubChart{}, time.Second, time.Second, time.Second, lgr),
		merge.New(),
		llm,
		store,
		stubDir{},
		stubNews{},
		nil,
		nopMetrics{},
		lgr,
		30*time.Minute,
	)

	e := echo.New()
	NewChatHandler(lgr, engine).RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat", "application/json",
		strings.NewReader(`{"message": "hello!", "chat_id": "chat-1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status int `json:"status"`
		Data   struct {
			Reply string `json:"reply"`
		} `json:"data"`
	}
	require.NoError(t, jsonDecode(resp, &body))
	assert.Equal(t, http.StatusOK, body.Status)
	assert.Contains(t, body.Data.Reply, "NSE or BSE")
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{"message": ""}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, jsonDecode(resp, &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
}

func TestClearSessionEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/chat/session/chat-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestChatStream(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": "hello!"}))

	var reply models.ChatResponse
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Contains(t, reply.Reply, "NSE or BSE")
}

func TestChatStreamRejectsEmptyMessage(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"message": ""}))

	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "message required", frame["error"])
}
