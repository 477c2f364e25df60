package planner

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

// DefaultCompletionTimeout is the default timeout for completion calls.
// Expiry is treated like a cancellation, only the message differs.
const DefaultCompletionTimeout = 30 * time.Second

// CompletionClient issues one chat completion. Cancellation propagates
// through ctx to the underlying transport.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient implements CompletionClient against an OpenAI-compatible
// endpoint.
type OpenAIClient struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewOpenAIClient creates a completion client. baseURL may be empty for the
// default endpoint; logger may be nil.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration, logger *zap.Logger, debugMode bool) *OpenAIClient {
	if timeout <= 0 {
		timeout = DefaultCompletionTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:    openai.NewClient(opts...),
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// Complete sends one system+user message pair and returns the raw content
// of the first choice.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	if c.debugMode {
		c.logger.Debug("llm_api_request",
			zap.String("operation", "generate_plan"),
			zap.String("model", c.model),
			zap.Int("prompt_length", len(systemPrompt)),
			zap.String("prompt_preview", preview(systemPrompt)),
			zap.String("user_preview", preview(userPrompt)),
		)
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)

	if err != nil {
		if c.debugMode {
			c.logger.Debug("llm_api_error",
				zap.String("operation", "generate_plan"),
				zap.String("model", c.model),
				zap.Error(err),
				zap.Duration("latency", latency),
			)
		}
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}

	if c.debugMode {
		c.logger.Debug("llm_api_response",
			zap.String("operation", "generate_plan"),
			zap.String("model", c.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", preview(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}

// maxPreviewLength caps preview strings in debug logs
const maxPreviewLength = 200

// preview strips control characters and truncates, so prompt text cannot
// inject log lines.
func preview(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		builder.WriteRune(r)
	}
	out := builder.String()
	if len(out) > maxPreviewLength {
		out = out[:maxPreviewLength] + "..."
	}
	return out
}
