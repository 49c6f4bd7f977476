// Package ai wraps the OpenAI chat-completion API behind a small Generator
// interface so the coach service can degrade to deterministic text when
// generation is unavailable or failing.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// ErrGenerationFailed wraps every failure leaving this package. Callers must
// catch it at the boundary and substitute a fallback; it is never surfaced to
// the user as a hard failure.
var ErrGenerationFailed = errors.New("text generation failed")

// Generator produces text for a prompt. Implementations must respect ctx.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// OpenAIClient wraps the OpenAI SDK with retry logic and logging.
type OpenAIClient struct {
	client     *openai.Client
	model      string
	logger     *zap.Logger
	maxRetries int
	baseDelay  time.Duration
}

// NewOpenAIClient creates a Generator backed by the OpenAI chat API.
func NewOpenAIClient(apiKey, model string, logger *zap.Logger) (*OpenAIClient, error) {
	if apiKey == "" || model == "" {
		return nil, fmt.Errorf("apiKey and model are required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:     &client,
		model:      model,
		logger:     logger,
		maxRetries: 3,
		baseDelay:  time.Second,
	}, nil
}

// Generate sends a chat completion request with exponential-backoff retries.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	startTime := time.Now()
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<uint(attempt-1))
			c.logger.Info("retrying OpenAI request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrGenerationFailed, ctx.Err())
			}
		}

		result, err := c.complete(ctx, systemPrompt, userMessage)
		if err == nil {
			c.logger.Info("OpenAI request completed",
				zap.Duration("processing_time", time.Since(startTime)),
				zap.Int("attempts", attempt+1),
			)
			return result, nil
		}

		lastErr = err
		if !c.isRetryable(err) {
			c.logger.Error("non-retryable OpenAI error",
				zap.Error(err),
				zap.Int("attempt", attempt+1),
			)
			break
		}

		c.logger.Warn("OpenAI request failed, will retry",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
		)
	}

	c.logger.Error("OpenAI request failed after retries",
		zap.Error(lastErr),
		zap.Duration("total_time", time.Since(startTime)),
		zap.Int("max_retries", c.maxRetries),
	)

	return "", fmt.Errorf("%w after %d attempts: %v", ErrGenerationFailed, c.maxRetries, lastErr)
}

// complete performs a single chat completion request.
func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	requestStart := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})

	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Info("OpenAI token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("request_time", time.Since(requestStart)),
	)

	return content, nil
}

// isRetryable determines if an error should trigger a retry. Authentication
// and invalid-request failures will not heal on their own.
func (c *OpenAIClient) isRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()

	if strings.Contains(errStr, "authentication") || strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "401") {
		return false
	}

	if strings.Contains(errStr, "invalid") || strings.Contains(errStr, "bad request") || strings.Contains(errStr, "400") {
		return false
	}

	// Retry everything else (rate limits, timeouts, network errors).
	return true
}
