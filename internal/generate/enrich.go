package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/reformahub/contentpipe/internal/llm"
)

// Enrichment is the result of one content-improvement pass.
type Enrichment struct {
	OriginalContent     string
	EnrichedContent     string
	ImprovementsSummary string
	OriginalWordCount   int
	EnrichedWordCount   int
}

const enrichSystem = "Você é um editor de conteúdo sobre reformas residenciais. " +
	"Melhore o artigo mantendo a estrutura em markdown: clareza, fluidez, " +
	"subtítulos e transições. Não invente fatos novos. Responda apenas com o artigo revisado."

// Enrich rewrites the content for quality and asks for a short summary of
// what changed. The rewrite is required; the summary degrades to empty when
// its call fails.
func (g *Generator) Enrich(ctx context.Context, content string, opts Options) (Enrichment, error) {
	user := "Melhore o artigo abaixo"
	if opts.Tone != "" {
		user += ", mantendo um tom " + opts.Tone
	}
	if opts.Audience != "" {
		user += ", para " + opts.Audience
	}
	user += ":\n\n" + content

	enriched, err := llm.Complete(ctx, g.Text, g.Model, enrichSystem, user, 0.4, 0)
	if err != nil {
		return Enrichment{}, fmt.Errorf("enriquecer artigo: %w", err)
	}

	summary, err := llm.Complete(ctx, g.Text, g.Model,
		"Você é um editor. Responda com uma lista curta em português.",
		"Liste em poucas linhas as principais melhorias feitas entre a versão original e a revisada.\n\nOriginal:\n"+
			content+"\n\nRevisada:\n"+enriched, 0.2, 0)
	if err != nil {
		log.Warn().Err(err).Msg("improvement summary failed; continuing without it")
		summary = ""
	}

	return Enrichment{
		OriginalContent:     content,
		EnrichedContent:     enriched,
		ImprovementsSummary: summary,
		OriginalWordCount:   len(strings.Fields(content)),
		EnrichedWordCount:   len(strings.Fields(enriched)),
	}, nil
}
