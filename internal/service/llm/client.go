package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FinTalk/internal/domain/models"
	domrepo "FinTalk/internal/domain/repository"
	xhttp "FinTalk/pkg/http"
	"FinTalk/pkg/logger"
)

// Client talks to an OpenAI-compatible chat-completions endpoint over
// plain REST. Safe for concurrent use.
type Client struct {
	http        *xhttp.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float32
	logger      *logger.Logger
}

func NewClient(baseURL, apiKey, model string, temperature float32, timeout time.Duration, lgr *logger.Logger) *Client {
	return &Client{
		http:        xhttp.NewClient(xhttp.WithTimeout(timeout)),
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		logger:      lgr,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	var resp chatResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
			Temperature: c.temperature,
			MaxTokens:   maxTokens,
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", models.ErrUpstreamUnavailable)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("completion error %s: %w", resp.Error.Type, models.ErrUpstreamUnavailable)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion empty: %w", models.ErrMalformedModelOutput)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

type classifyPayload struct {
	Intents   []string `json:"intents"`
	Entity    string   `json:"entity"`
	Timeframe string   `json:"timeframe"`
}

// Classify implements repository.CompletionService.
func (c *Client) Classify(ctx context.Context, query string, session *models.ConversationSession) (domrepo.ClassifyResult, error) {
	user := query
	if session.HasEntity() {
		user = fmt.Sprintf("Earlier in this conversation the user discussed %s.\nQuery: %s", session.Entity.Name, query)
	}

	raw, err := c.complete(ctx, classifySystem, user, 200)
	if err != nil {
		return domrepo.ClassifyResult{}, err
	}

	var payload classifyPayload
	if err := extractJSON(raw, &payload); err != nil {
		c.logger.Debug("classification output unusable", logger.Error(err))
		return domrepo.ClassifyResult{}, err
	}
	return domrepo.ClassifyResult{
		Intents:       payload.Intents,
		EntityHint:    strings.TrimSpace(payload.Entity),
		TimeframeHint: strings.TrimSpace(payload.Timeframe),
	}, nil
}

// ExtractEntityName implements repository.CompletionService.
func (c *Client) ExtractEntityName(ctx context.Context, query string) (string, error) {
	raw, err := c.complete(ctx, extractSystem, query, 40)
	if err != nil {
		return "", err
	}
	name := strings.Trim(strings.TrimSpace(raw), `"' .`)
	if name == "" || strings.EqualFold(name, "none") {
		return "", nil
	}
	if strings.Count(name, " ") > 6 || strings.ContainsAny(name, "\n{}") {
		return "", fmt.Errorf("entity extraction rambled: %w", models.ErrMalformedModelOutput)
	}
	return name, nil
}

// Summarize implements repository.CompletionService.
func (c *Client) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	system := fmt.Sprintf(summarizeSystem, wordLimit)
	return c.complete(ctx, system, text, wordLimit*3)
}

// SmallTalk implements repository.CompletionService.
func (c *Client) SmallTalk(ctx context.Context, query string) (string, error) {
	return c.complete(ctx, smalltalkSystem, query, 120)
}
