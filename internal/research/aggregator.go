package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reformahub/contentpipe/internal/parse"
)

// Overview groups the general research prose for one topic.
type Overview struct {
	General   string
	Technical string
	Costs     string
	Regional  string
}

// Trends groups market-trend research prose for one topic.
type Trends struct {
	Market      string
	Innovations string
	Predictions string
}

// Bundle is the structured aggregate of one research pass. Sources and FAQs
// may be empty but are never nil; callers treat empty as "no data". Err is
// set instead of an error return so a failed research pass degrades rather
// than crashes the pipeline.
type Bundle struct {
	Topic      string
	Overview   Overview
	Trends     Trends
	Sources    []parse.Source
	FAQs       []parse.FAQ
	SearchedAt time.Time
	Err        string
}

// Empty reports whether the bundle carries no research text at all.
func (b Bundle) Empty() bool {
	return b.Overview.General == "" && b.Trends.Market == "" &&
		len(b.Sources) == 0 && len(b.FAQs) == 0
}

// Options toggles the optional overview subsections and caps source count.
type Options struct {
	IncludeTechnical bool
	IncludeCosts     bool
	IncludeRegional  bool
	MaxSources       int // default 5
}

// Aggregator turns one topic string into one Bundle by issuing staged queries
// against the research provider and parsing each response. The section
// headings and record fields requested by the prompts below are what
// internal/parse expects; changing one side requires changing the other.
type Aggregator struct {
	Provider Provider
	Options  Options
}

// LatestInfo never returns an error: any stage failure yields a degraded
// Bundle with empty slices and Err set, so the orchestrator decides whether
// the starvation is fatal.
func (a *Aggregator) LatestInfo(ctx context.Context, topic string) Bundle {
	b := Bundle{
		Topic:      topic,
		Sources:    []parse.Source{},
		FAQs:       []parse.FAQ{},
		SearchedAt: time.Now().UTC(),
	}
	if a.Provider == nil {
		b.Err = "research provider not configured"
		return b
	}

	overview, err := a.Provider.Search(ctx, a.overviewQuery(topic), RecencyMonth)
	if err != nil {
		return a.degrade(b, "overview", err)
	}
	b.Overview = parseOverview(overview.Text)

	trends, err := a.Provider.Search(ctx, a.trendsQuery(topic), RecencyMonth)
	if err != nil {
		return a.degrade(b, "trends", err)
	}
	b.Trends = parseTrends(trends.Text)

	sources, err := a.Provider.Search(ctx, a.sourcesQuery(topic), RecencyYear)
	if err != nil {
		return a.degrade(b, "sources", err)
	}
	if parsed := parse.ParseSources(sources.Text); len(parsed) > 0 {
		b.Sources = parsed
	}

	faqs, err := a.Provider.Search(ctx, a.faqQuery(topic), RecencyMonth)
	if err != nil {
		return a.degrade(b, "faq", err)
	}
	if parsed := parse.ParseFAQs(faqs.Text); len(parsed) > 0 {
		b.FAQs = parsed
	}

	return b
}

// degrade resets the bundle to its empty-but-never-nil shape and records the
// failing stage. Downstream stages run with thinner material instead of
// seeing an error.
func (a *Aggregator) degrade(b Bundle, stage string, err error) Bundle {
	log.Warn().Err(err).Str("stage", stage).Str("topic", b.Topic).Msg("research stage failed; returning degraded bundle")
	return Bundle{
		Topic:      b.Topic,
		Sources:    []parse.Source{},
		FAQs:       []parse.FAQ{},
		SearchedAt: b.SearchedAt,
		Err:        fmt.Sprintf("%s: %v", stage, err),
	}
}

func (a *Aggregator) maxSources() int {
	if a.Options.MaxSources > 0 {
		return a.Options.MaxSources
	}
	return 5
}

func (a *Aggregator) overviewQuery(topic string) string {
	var sb strings.Builder
	sb.WriteString("Pesquise informações atualizadas e confiáveis sobre ")
	sb.WriteString(topic)
	sb.WriteString(" no contexto de reformas e construção civil no Brasil. ")
	sb.WriteString("Estruture a resposta em markdown com exatamente estas seções:\n")
	sb.WriteString("## VISÃO GERAL\n")
	if a.Options.IncludeTechnical {
		sb.WriteString("## ESPECIFICAÇÕES TÉCNICAS\n")
	}
	if a.Options.IncludeCosts {
		sb.WriteString("## CUSTOS\n")
	}
	if a.Options.IncludeRegional {
		sb.WriteString("## CONTEXTO REGIONAL\n")
	}
	sb.WriteString("Use apenas os títulos acima, sem seções extras.")
	return sb.String()
}

func (a *Aggregator) trendsQuery(topic string) string {
	return "Quais são as tendências atuais sobre " + topic + " no Brasil? " +
		"Estruture a resposta em markdown com exatamente estas seções:\n" +
		"## MERCADO\n## INOVAÇÕES\n## PREVISÕES\n" +
		"Use apenas os títulos acima, sem seções extras."
}

func (a *Aggregator) sourcesQuery(topic string) string {
	return fmt.Sprintf("Liste até %d fontes confiáveis sobre %s. "+
		"Formate cada fonte exatamente assim:\n"+
		"[FONTE]\nTítulo: ...\nAutor: ...\nData: ...\nURL: ...\nTipo: ...\nResumo: ...\nRelevância: alta, média ou baixa\n[/FONTE]\n"+
		"Quando a fonte não tiver URL, escreva \"URL: Não disponível online\".",
		a.maxSources(), topic)
}

func (a *Aggregator) faqQuery(topic string) string {
	return "Quais são as perguntas mais frequentes sobre " + topic + "? " +
		"Formate cada par exatamente assim:\n" +
		"[PERGUNTA]\nPergunta: ...\nResposta: ...\n[/PERGUNTA]"
}

func parseOverview(text string) Overview {
	sections := parse.Sections(text)
	o := Overview{
		General:   sections["VISAO_GERAL"],
		Technical: sections["ESPECIFICACOES_TECNICAS"],
		Costs:     sections["CUSTOS"],
		Regional:  sections["CONTEXTO_REGIONAL"],
	}
	// A provider that ignored the heading contract still contributes prose.
	if o.General == "" {
		o.General = strings.TrimSpace(text)
	}
	return o
}

func parseTrends(text string) Trends {
	sections := parse.Sections(text)
	t := Trends{
		Market:      sections["MERCADO"],
		Innovations: sections["INOVACOES"],
		Predictions: sections["PREVISOES"],
	}
	if t.Market == "" {
		t.Market = strings.TrimSpace(text)
	}
	return t
}
