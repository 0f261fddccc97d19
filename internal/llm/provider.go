package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the pipeline needs to call a chat model.
// It intentionally mirrors the CreateChatCompletion method so that any
// OpenAI-compatible backend, local or remote, can be adapted.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
	Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

// ErrEmptyCompletion indicates the model returned no usable text.
var ErrEmptyCompletion = errors.New("empty completion")

// Complete issues one system+user chat completion and returns the trimmed
// assistant text. A transient failure gets a single short-backoff retry; the
// context deadline still bounds the total attempt.
func Complete(ctx context.Context, c Client, model, system, user string, temperature float32, maxTokens int) (string, error) {
	if c == nil || strings.TrimSpace(model) == "" {
		return "", errors.New("text provider not configured")
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		N:           1,
	}
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		sleep(100 * time.Millisecond)
		resp, err = c.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("completion call (after retry): %w", err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// sleepFunc allows tests to replace the retry backoff.
var sleepFunc func(d time.Duration)

func sleep(d time.Duration) {
	if sleepFunc != nil {
		sleepFunc(d)
		return
	}
	time.Sleep(d)
}
