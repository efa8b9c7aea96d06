package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Spyyy004/designbuddy/internal/config"
)

// Client issues chat-completion calls against an OpenAI-compatible API.
// Generation parameters (model, token cap, temperature) are fixed at
// construction; every call is a single attempt with no retry or streaming.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type client struct {
	http *resty.Client
	cfg  *config.OpenAIConfig
	log  *zap.Logger
}

func NewClient(cfg *config.OpenAIConfig, log *zap.Logger) Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey).
		SetTimeout(120 * time.Second)

	return &client{
		http: httpClient,
		cfg:  cfg,
		log:  log,
	}
}

func (c *client) Complete(ctx context.Context, messages []Message) (string, error) {
	body := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var out chatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		c.log.Error("Completion request failed", zap.Error(err))
		return "", err
	}

	if resp.IsError() {
		c.log.Error("Completion API returned an error",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return "", fmt.Errorf("completion api error (status %d): %s", resp.StatusCode(), resp.String())
	}

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("completion api returned no choices")
	}

	text := strings.TrimSpace(out.Choices[0].Message.Content)

	c.log.Info("Case study generated",
		zap.String("model", c.cfg.Model),
		zap.Int("length", len(text)))

	return text, nil
}
