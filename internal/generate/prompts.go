package generate

import (
	"fmt"
	"strings"

	"github.com/reformahub/contentpipe/internal/research"
)

const (
	insightsSystem = "Você é um pesquisador de conteúdo sobre reformas e construção civil. " +
		"Responda em markdown com exatamente duas seções: '## FATOS PRINCIPAIS' e '## PERGUNTAS EM ABERTO' (lista numerada)."

	outlineSystem = "Você é um editor de conteúdo. Produza uma estrutura de artigo em markdown: " +
		"um título H1 e seções H2, cada uma com 2-4 pontos-chave em lista."

	draftSystem = "Você é um redator especializado em reformas residenciais no Brasil. " +
		"Escreva artigos completos em markdown, começando por um título H1, com subtítulos H2 e parágrafos curtos. " +
		"Use apenas as informações fornecidas; não invente fatos, números ou fontes."
)

// researchContext renders the bundle into prompt material. Sections that the
// research pass left empty are simply omitted.
func researchContext(b research.Bundle) string {
	var sb strings.Builder
	writeSection := func(title, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		sb.WriteString("## ")
		sb.WriteString(title)
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	writeSection("Visão geral", b.Overview.General)
	writeSection("Especificações técnicas", b.Overview.Technical)
	writeSection("Custos", b.Overview.Costs)
	writeSection("Contexto regional", b.Overview.Regional)
	writeSection("Mercado", b.Trends.Market)
	writeSection("Inovações", b.Trends.Innovations)
	writeSection("Previsões", b.Trends.Predictions)

	if len(b.Sources) > 0 {
		sb.WriteString("## Fontes\n")
		for i, s := range b.Sources {
			sb.WriteString(fmt.Sprintf("%d. %s", i+1, s.Title))
			if s.Author != "" {
				sb.WriteString(", de " + s.Author)
			}
			if s.Date != "" {
				sb.WriteString(" (" + s.Date + ")")
			}
			if s.Summary != "" {
				sb.WriteString(": " + s.Summary)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if len(b.FAQs) > 0 {
		sb.WriteString("## Perguntas frequentes\n")
		for _, f := range b.FAQs {
			sb.WriteString("- " + f.Question + " " + f.Answer + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func insightsPrompt(topic string, b research.Bundle) string {
	var sb strings.Builder
	sb.WriteString("Tema: ")
	sb.WriteString(topic)
	sb.WriteString("\n\nCom base na pesquisa abaixo, liste os fatos principais para um artigo ")
	sb.WriteString("e as perguntas em aberto que mereceriam pesquisa adicional.\n\n")
	sb.WriteString(researchContext(b))
	return sb.String()
}

func outlinePrompt(topic string, b research.Bundle, insights, secondary string, opts Options) string {
	var sb strings.Builder
	sb.WriteString("Crie a estrutura de um artigo sobre: ")
	sb.WriteString(topic)
	if opts.Audience != "" {
		sb.WriteString("\nPúblico-alvo: " + opts.Audience)
	}
	sb.WriteString("\n\nPesquisa primária:\n\n")
	sb.WriteString(researchContext(b))
	if strings.TrimSpace(insights) != "" {
		sb.WriteString("\nInsights extraídos:\n\n")
		sb.WriteString(insights)
		sb.WriteString("\n")
	}
	if strings.TrimSpace(secondary) != "" {
		sb.WriteString("\nPesquisa complementar:\n\n")
		sb.WriteString(secondary)
		sb.WriteString("\n")
	}
	return sb.String()
}

func draftPrompt(topic string, b research.Bundle, outline string, opts Options) string {
	var sb strings.Builder
	sb.WriteString("Escreva o artigo completo sobre: ")
	sb.WriteString(topic)
	if opts.Tone != "" {
		sb.WriteString("\nTom: " + opts.Tone)
	}
	if opts.Audience != "" {
		sb.WriteString("\nPúblico-alvo: " + opts.Audience)
	}
	if opts.MinWords > 0 && opts.MaxWords > 0 {
		sb.WriteString(fmt.Sprintf("\nExtensão: entre %d e %d palavras", opts.MinWords, opts.MaxWords))
	}
	sb.WriteString("\n\nSiga esta estrutura:\n\n")
	sb.WriteString(outline)
	sb.WriteString("\n\nMaterial de pesquisa:\n\n")
	sb.WriteString(researchContext(b))
	if opts.IncludeFAQ && len(b.FAQs) > 0 {
		sb.WriteString("\nInclua ao final uma seção '## Perguntas frequentes' respondendo as perguntas do material.")
	}
	if opts.IncludeSources && len(b.Sources) > 0 {
		sb.WriteString("\nInclua ao final uma seção '## Fontes consultadas' listando as fontes do material.")
	}
	sb.WriteString("\nResponda apenas com o artigo em markdown.")
	return sb.String()
}
