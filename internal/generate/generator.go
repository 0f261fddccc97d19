package generate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reformahub/contentpipe/internal/factcheck"
	"github.com/reformahub/contentpipe/internal/llm"
	"github.com/reformahub/contentpipe/internal/progress"
	"github.com/reformahub/contentpipe/internal/research"
	"github.com/reformahub/contentpipe/internal/seo"
)

// Options parameterizes one generation run.
type Options struct {
	Tone     string // e.g. "profissional e acessível"
	Audience string // e.g. "proprietários de imóveis"
	MinWords int
	MaxWords int

	IncludeSources bool // append a source-citation section to the draft
	IncludeFAQ     bool // append an FAQ section built from research

	WithMetadata bool // run the SEO-metadata synthesis stage
	FactCheck    bool // run the advisory fact-check pass

	Keywords []string
	Progress progress.Func
}

// Result is the terminal artifact of one run. The pipeline keeps no reference
// to it after returning.
type Result struct {
	Title       string
	Content     string
	Metadata    *Metadata
	Outline     string
	WordCount   int
	GeneratedAt time.Time

	// Research is the bundle the draft was grounded on, kept for
	// traceability and for the sidecar report.
	Research research.Bundle
	// FactCheck is present only when Options.FactCheck was set and the
	// advisory pass completed.
	FactCheck *factcheck.Report
	// SEO is always computed; scoring is pure and costs no provider calls.
	SEO seo.Analysis
}

// Generator sequences the staged pipeline: research, insight extraction,
// secondary research, outline, draft, then the optional fact-check and
// metadata passes. Stages are strictly sequential; each consumes the output
// of its predecessor.
type Generator struct {
	Text       llm.Client
	Model      string
	Aggregator *research.Aggregator
	Checker    *factcheck.Checker
}

var (
	// ErrResearchUnavailable marks a wholesale inability to research the
	// topic. Unlike per-stage degradation inside the aggregator, this is
	// fatal to the run.
	ErrResearchUnavailable = errors.New("research unavailable")
	// ErrNoDraft marks a draft stage that produced no usable prose.
	ErrNoDraft = errors.New("no draft produced")
)

var (
	h1LineRe = regexp.MustCompile(`(?m)^\s{0,3}#\s+(.+?)\s*$`)
	h1TagRe  = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)

	questionSectionRe = regexp.MustCompile(`(?im)^(?:#{1,6}\s*)?(?:perguntas|quest(?:ões|oes))\b[^\n]*$`)
	numberedLineRe    = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*])\s+(.+?)\s*$`)
)

// Generate runs the full pipeline for one topic. Failures in primary research
// or outline/draft generation abort the run; everything else degrades.
func (g *Generator) Generate(ctx context.Context, topic string, opts Options) (*Result, error) {
	emit := opts.Progress
	emit.Emit("início", "Iniciando geração para "+topic, 0)

	// 1. Primary research. A degraded bundle means the provider could not
	// answer at all, which leaves nothing to write from.
	emit.Emit("pesquisa", "Pesquisando informações atualizadas", 5)
	bundle := g.Aggregator.LatestInfo(ctx, topic)
	if bundle.Err != "" {
		return nil, fmt.Errorf("pesquisa inicial (%s): %w", bundle.Err, ErrResearchUnavailable)
	}
	emit.Emit("pesquisa", fmt.Sprintf("%d fontes e %d perguntas encontradas", len(bundle.Sources), len(bundle.FAQs)), 15)

	// 2. Insight extraction. Non-fatal: a failed or shapeless response just
	// skips secondary research.
	emit.Emit("insights", "Extraindo fatos e perguntas em aberto", 20)
	insights, err := llm.Complete(ctx, g.Text, g.Model,
		insightsSystem, insightsPrompt(topic, bundle), 0.2, 0)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("insight extraction failed; skipping secondary research")
		insights = ""
	}
	questions := openQuestions(insights)
	emit.Emit("insights", fmt.Sprintf("%d perguntas em aberto", len(questions)), 30)

	// 3. Secondary research, one query per question, sequential. A failing
	// question contributes nothing and the loop continues.
	secondary := g.secondaryResearch(ctx, questions, emit)
	emit.Emit("pesquisa complementar", "Pesquisa complementar concluída", 45)

	// 4. Outline.
	emit.Emit("estrutura", "Gerando estrutura do artigo", 50)
	outline, err := llm.Complete(ctx, g.Text, g.Model,
		outlineSystem, outlinePrompt(topic, bundle, insights, secondary, opts), 0.3, 0)
	if err != nil {
		return nil, fmt.Errorf("gerar estrutura: %w", err)
	}
	emit.Emit("estrutura", "Estrutura pronta", 55)

	// 5. Draft.
	emit.Emit("redação", "Redigindo o artigo completo", 60)
	draft, err := llm.Complete(ctx, g.Text, g.Model,
		draftSystem, draftPrompt(topic, bundle, outline, opts), 0.4, 0)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyCompletion) {
			return nil, ErrNoDraft
		}
		return nil, fmt.Errorf("redigir artigo: %w", err)
	}
	emit.Emit("redação", "Artigo redigido", 75)

	result := &Result{
		Title:       extractTitle(draft, topic),
		Content:     draft,
		Outline:     outline,
		WordCount:   len(strings.Fields(draft)),
		GeneratedAt: time.Now().UTC(),
		Research:    bundle,
	}

	// 6. Advisory fact-check.
	if opts.FactCheck && g.Checker != nil {
		emit.Emit("verificação", "Verificando alegações do artigo", 80)
		report, err := g.Checker.Check(ctx, draft, 0, nil)
		if err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("fact-check failed; continuing without report")
		} else {
			result.FactCheck = &report
		}
		emit.Emit("verificação", "Verificação concluída", 88)
	}

	// 7. Optional SEO metadata.
	if opts.WithMetadata {
		emit.Emit("metadados", "Gerando metadados SEO", 90)
		meta, err := g.Metadata(ctx, draft, topic)
		if err != nil {
			log.Warn().Err(err).Str("topic", topic).Msg("metadata generation failed; continuing without metadata")
		} else {
			result.Metadata = meta
		}
		emit.Emit("metadados", "Metadados prontos", 95)
	}

	result.SEO = seo.AnalyzeContent(draft, opts.Keywords)

	emit.Emit("concluído", "Geração concluída", 100)
	return result, nil
}

func (g *Generator) secondaryResearch(ctx context.Context, questions []string, emit progress.Func) string {
	if len(questions) == 0 || g.Aggregator == nil || g.Aggregator.Provider == nil {
		return ""
	}
	var sb strings.Builder
	for i, q := range questions {
		emit.Emit("pesquisa complementar", fmt.Sprintf("Pesquisando: %s", q), 30+(i+1)*15/len(questions))
		answer, err := g.Aggregator.Provider.Search(ctx, q, research.RecencyMonth)
		if err != nil {
			log.Warn().Err(err).Str("question", q).Msg("secondary research question failed; skipping")
			continue
		}
		if strings.TrimSpace(answer.Text) == "" {
			continue
		}
		sb.WriteString("### ")
		sb.WriteString(q)
		sb.WriteString("\n\n")
		sb.WriteString(answer.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// openQuestions scans the insight text for a "Perguntas"/"Questões" label and
// collects the list items that follow it. Absence of the label is not an
// error; it just means no secondary research.
func openQuestions(insights string) []string {
	loc := questionSectionRe.FindStringIndex(insights)
	if loc == nil {
		return nil
	}
	tail := insights[loc[1]:]
	// Stop at the next section heading, if any.
	if next := regexp.MustCompile(`(?m)^#{1,6}\s`).FindStringIndex(tail); next != nil {
		tail = tail[:next[0]]
	}
	var out []string
	for _, m := range numberedLineRe.FindAllStringSubmatch(tail, -1) {
		q := strings.TrimSpace(m[1])
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// extractTitle takes the draft's first heading, tag or #-prefixed, falling
// back to a deterministic title when the draft has none.
func extractTitle(draft, topic string) string {
	if m := h1LineRe.FindStringSubmatch(draft); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := h1TagRe.FindStringSubmatch(draft); m != nil {
		return strings.TrimSpace(stripTags(m[1]))
	}
	return "Artigo sobre " + topic
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}
