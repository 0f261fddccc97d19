package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type enrichStub struct {
	rewrite    string
	rewriteErr error
	summary    string
	summaryErr error
}

func (s *enrichStub) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	user := req.Messages[len(req.Messages)-1].Content
	if strings.HasPrefix(user, "Melhore o artigo") {
		if s.rewriteErr != nil {
			return openai.ChatCompletionResponse{}, s.rewriteErr
		}
		return enrichResponse(s.rewrite), nil
	}
	if s.summaryErr != nil {
		return openai.ChatCompletionResponse{}, s.summaryErr
	}
	return enrichResponse(s.summary), nil
}

func enrichResponse(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: text}}},
	}
}

func TestEnrich(t *testing.T) {
	g := &Generator{
		Text:  &enrichStub{rewrite: "# Artigo\n\nVersão revisada com mais clareza e fluidez.", summary: "- parágrafos encurtados"},
		Model: "test-model",
	}
	e, err := g.Enrich(context.Background(), "# Artigo\n\nVersão original.", Options{Tone: "profissional"})
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if e.OriginalContent != "# Artigo\n\nVersão original." {
		t.Fatalf("original = %q", e.OriginalContent)
	}
	if !strings.Contains(e.EnrichedContent, "revisada") {
		t.Fatalf("enriched = %q", e.EnrichedContent)
	}
	if e.ImprovementsSummary != "- parágrafos encurtados" {
		t.Fatalf("summary = %q", e.ImprovementsSummary)
	}
	if e.OriginalWordCount != 4 || e.EnrichedWordCount != 9 {
		t.Fatalf("word counts = %d, %d", e.OriginalWordCount, e.EnrichedWordCount)
	}
}

func TestEnrichSummaryFailureDegrades(t *testing.T) {
	g := &Generator{
		Text:  &enrichStub{rewrite: "Texto revisado.", summaryErr: errors.New("overloaded")},
		Model: "test-model",
	}
	e, err := g.Enrich(context.Background(), "Texto original.", Options{})
	if err != nil {
		t.Fatalf("Enrich error: %v", err)
	}
	if e.ImprovementsSummary != "" {
		t.Fatalf("summary should degrade to empty, got %q", e.ImprovementsSummary)
	}
}

func TestEnrichRewriteFailureIsFatal(t *testing.T) {
	g := &Generator{
		Text:  &enrichStub{rewriteErr: errors.New("down")},
		Model: "test-model",
	}
	if _, err := g.Enrich(context.Background(), "Texto.", Options{}); err == nil {
		t.Fatal("rewrite failure must error")
	}
}
