package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Throttled wraps a Client with a shared rate limiter and a per-call timeout
// so that a stalled or chatty backend cannot wedge a pipeline run. A nil
// Limiter disables throttling; a zero Timeout disables the deadline.
type Throttled struct {
	Inner   Client
	Limiter *rate.Limiter
	Timeout time.Duration
}

func (t *Throttled) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return openai.ChatCompletionResponse{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	return t.Inner.CreateChatCompletion(ctx, request)
}
