package factcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/reformahub/contentpipe/internal/progress"
	"github.com/reformahub/contentpipe/internal/research"
)

// fakeChat routes on prompt content so one fake serves extraction,
// classification and summary calls.
type fakeChat struct {
	extraction     string
	classification string
	summary        string
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	user := req.Messages[len(req.Messages)-1].Content
	var content string
	switch {
	case strings.Contains(user, "Liste as"):
		content = f.extraction
	case strings.Contains(user, "Classifique"):
		content = f.classification
	case strings.Contains(user, "Resuma"):
		content = f.summary
	default:
		return openai.ChatCompletionResponse{}, fmt.Errorf("unexpected prompt: %s", user)
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}, nil
}

// fakeResearch fails on queries containing failOn and answers the rest.
type fakeResearch struct {
	failOn string
	calls  int
}

func (f *fakeResearch) Name() string { return "fake" }

func (f *fakeResearch) Search(_ context.Context, query string, _ research.Recency) (research.Answer, error) {
	f.calls++
	if f.failOn != "" && strings.Contains(query, f.failOn) {
		return research.Answer{}, errors.New("provider unavailable")
	}
	return research.Answer{Text: "Evidência encontrada para: " + query, Sources: []string{"https://example.com/evidencia"}}, nil
}

const fiveClaims = `1. A tinta acrílica dura em média cinco anos em fachadas.
2. A norma ABNT NBR 13245 trata de pintura em edificações.
3. O primer melhora a aderência da tinta ao reboco novo.
4. A pintura externa deve ser evitada em dias de chuva.
5. O custo médio por metro quadrado varia por região.`

const goodClassification = "```json\n{\"verificado\": true, \"resultado\": \"confirmado\", \"confianca\": 0.9, \"explicacao\": \"Fontes corroboram.\"}\n```"

func TestCheckHappyPath(t *testing.T) {
	c := &Checker{
		Text:     &fakeChat{extraction: fiveClaims, classification: goodClassification, summary: "Tudo confirmado."},
		Model:    "test-model",
		Research: &fakeResearch{},
	}
	report, err := c.Check(context.Background(), "conteúdo do artigo", 0, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if report.ClaimsChecked != 5 {
		t.Fatalf("ClaimsChecked = %d, want 5", report.ClaimsChecked)
	}
	if !report.Verified {
		t.Fatal("report should be verified when all claims pass")
	}
	if report.Stats.VerifiedCount != 5 || report.Stats.UnverifiedCount != 0 {
		t.Fatalf("stats %+v", report.Stats)
	}
	if report.Stats.AverageConfidence < 0.89 || report.Stats.AverageConfidence > 0.91 {
		t.Fatalf("AverageConfidence = %f, want 0.9", report.Stats.AverageConfidence)
	}
	if report.Summary != "Tudo confirmado." {
		t.Fatalf("summary = %q", report.Summary)
	}
	for _, r := range report.Results {
		if len(r.Sources) == 0 {
			t.Fatalf("claim %q lost its sources", r.Claim)
		}
	}
}

func TestCheckOneClaimFailureDoesNotStopTheRest(t *testing.T) {
	c := &Checker{
		Text:     &fakeChat{extraction: fiveClaims, classification: goodClassification, summary: "Resumo."},
		Model:    "test-model",
		Research: &fakeResearch{failOn: "primer"},
	}
	report, err := c.Check(context.Background(), "conteúdo", 0, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if report.ClaimsChecked != 5 {
		t.Fatalf("ClaimsChecked = %d, want 5", report.ClaimsChecked)
	}
	third := report.Results[2]
	if third.Verified || third.Confidence != 0 {
		t.Fatalf("failed claim should degrade, got %+v", third)
	}
	if third.Result != degradedResult {
		t.Fatalf("degraded result = %q", third.Result)
	}
	if report.Stats.VerifiedCount != 4 || report.Stats.UnverifiedCount != 1 {
		t.Fatalf("stats %+v", report.Stats)
	}
	want := (4 * 0.9) / 5
	if diff := report.Stats.AverageConfidence - want; diff > 0.001 || diff < -0.001 {
		t.Fatalf("AverageConfidence = %f, want %f", report.Stats.AverageConfidence, want)
	}
}

func TestCheckMalformedClassificationDegrades(t *testing.T) {
	c := &Checker{
		Text:     &fakeChat{extraction: "1. Alegação suficientemente longa para contar.", classification: "não sei dizer", summary: "Resumo."},
		Model:    "test-model",
		Research: &fakeResearch{},
	}
	report, err := c.Check(context.Background(), "conteúdo", 0, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if report.ClaimsChecked != 1 {
		t.Fatalf("ClaimsChecked = %d", report.ClaimsChecked)
	}
	if report.Results[0].Result != degradedResult || report.Results[0].Confidence != 0 {
		t.Fatalf("expected degraded classification, got %+v", report.Results[0])
	}
}

func TestCheckNoClaimsShortCircuits(t *testing.T) {
	fr := &fakeResearch{}
	c := &Checker{
		Text:     &fakeChat{extraction: "Não encontrei alegações verificáveis no texto."},
		Model:    "test-model",
		Research: fr,
	}
	report, err := c.Check(context.Background(), "conteúdo", 0, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if !report.Verified || report.ClaimsChecked != 0 {
		t.Fatalf("trivial report expected, got %+v", report)
	}
	if fr.calls != 0 {
		t.Fatalf("no research calls expected, got %d", fr.calls)
	}
	if report.Results == nil {
		t.Fatal("Results must be empty, not nil")
	}
}

func TestCheckShortClaimsDropped(t *testing.T) {
	c := &Checker{
		Text:     &fakeChat{extraction: "1. curta\n2. Esta alegação tem comprimento suficiente.", classification: goodClassification, summary: "Resumo."},
		Model:    "test-model",
		Research: &fakeResearch{},
	}
	report, err := c.Check(context.Background(), "conteúdo", 0, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if report.ClaimsChecked != 1 {
		t.Fatalf("short claims must be dropped, got %d", report.ClaimsChecked)
	}
}

func TestCheckProgressMonotonicEndsAtHundred(t *testing.T) {
	var events []progress.Event
	c := &Checker{
		Text:     &fakeChat{extraction: fiveClaims, classification: goodClassification, summary: "Resumo."},
		Model:    "test-model",
		Research: &fakeResearch{},
	}
	_, err := c.Check(context.Background(), "conteúdo", 0, func(e progress.Event) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected progress events")
	}
	last := -1
	for _, e := range events {
		if e.Percentage < last {
			t.Fatalf("progress went backwards: %d after %d", e.Percentage, last)
		}
		last = e.Percentage
	}
	if last != 100 {
		t.Fatalf("final progress = %d, want 100", last)
	}
}

func TestCheckMaxClaimsCap(t *testing.T) {
	c := &Checker{
		Text:     &fakeChat{extraction: fiveClaims, classification: goodClassification, summary: "Resumo."},
		Model:    "test-model",
		Research: &fakeResearch{},
	}
	report, err := c.Check(context.Background(), "conteúdo", 2, nil)
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if report.ClaimsChecked != 2 {
		t.Fatalf("ClaimsChecked = %d, want 2", report.ClaimsChecked)
	}
}
