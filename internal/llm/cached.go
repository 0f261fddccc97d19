package llm

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/reformahub/contentpipe/internal/cache"
)

// Cached wraps a Client with a file-backed response cache keyed by model and
// message transcript. Cache failures are ignored: the wrapper degrades to a
// plain pass-through rather than failing the call.
type Cached struct {
	Inner Client
	Cache *cache.Cache
}

func (c *Cached) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.Cache == nil {
		return c.Inner.CreateChatCompletion(ctx, request)
	}
	key := cache.KeyFrom(request.Model, transcript(request))
	if raw, ok, _ := c.Cache.Get(ctx, key); ok {
		var resp openai.ChatCompletionResponse
		if err := json.Unmarshal(raw, &resp); err == nil && len(resp.Choices) > 0 {
			return resp, nil
		}
	}
	resp, err := c.Inner.CreateChatCompletion(ctx, request)
	if err != nil {
		return resp, err
	}
	if b, err := json.Marshal(resp); err == nil {
		_ = c.Cache.Save(ctx, key, b)
	}
	return resp, nil
}

func transcript(request openai.ChatCompletionRequest) string {
	var sb strings.Builder
	for _, m := range request.Messages {
		sb.WriteString(m.Role)
		sb.WriteString(":\n")
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
