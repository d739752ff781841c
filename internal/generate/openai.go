package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	tagSystemPrompt = "You help people tag their diary entries. Reply with the tags only, separated by commas."
)

// OpenAIConfig configures the chat completions client.
type OpenAIConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Style   string // style preset ID
	Prompt  string // overrides the style prompt when set
}

// OpenAI is a Generator backed by an OpenAI-compatible chat completions API.
type OpenAI struct {
	client      openai.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	cfg         OpenAIConfig
	system      string
}

// NewOpenAI creates a client. Requests are limited to one every 2 seconds
// with a burst of 3. SDK retries are disabled.
func NewOpenAI(cfg OpenAIConfig, logger *slog.Logger) (*OpenAI, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Style == "" {
		cfg.Style = DefaultStyle
	}
	system := cfg.Prompt
	if system == "" {
		style, err := LookupStyle(cfg.Style)
		if err != nil {
			return nil, err
		}
		system = style.Prompt
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OpenAI{
		client: openai.NewClient(
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(cfg.APIKey),
			option.WithRequestTimeout(60*time.Second),
			option.WithMaxRetries(0),
		),
		rateLimiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
		logger:      logger,
		cfg:         cfg,
		system:      system,
	}, nil
}

// Generate drafts an entry from the user's notes.
func (c *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	text, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(c.system),
		openai.UserMessage(userPrompt(req)),
	}, 400)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Tagify suggests three to five tags for text.
func (c *OpenAI) Tagify(ctx context.Context, text string) ([]string, error) {
	prompt := "Suggest 3-5 tags for the diary entry below. Each tag is a word or short phrase naming a topic, feeling or activity in it.\n\n" + text
	reply, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(tagSystemPrompt),
		openai.UserMessage(prompt),
	}, 100)
	if err != nil {
		return nil, err
	}
	return SplitTags(reply), nil
}

func (c *OpenAI) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, maxTokens int64) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: no API key configured", ErrGenerationFailed)
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %v", ErrGenerationFailed, err)
	}

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(maxTokens),
	})
	c.logger.Debug("chat completion", "model", c.cfg.Model, "duration", time.Since(start), "error", err)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			if apiErr.Message != "" {
				return "", fmt.Errorf("%w: status %d: %s", ErrGenerationFailed, apiErr.StatusCode, apiErr.Message)
			}
			return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, apiErr.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrGenerationFailed)
	}
	return completion.Choices[0].Message.Content, nil
}
