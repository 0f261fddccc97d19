package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/reformahub/contentpipe/internal/llm"
	"github.com/reformahub/contentpipe/internal/progress"
	"github.com/reformahub/contentpipe/internal/research"
)

// ClaimCheck is the verification outcome for one extracted claim.
type ClaimCheck struct {
	Claim       string   `json:"claim"`
	Verified    bool     `json:"verified"`
	Result      string   `json:"result"`
	Confidence  float64  `json:"confidence"` // 0..1
	Sources     []string `json:"sources"`
	Explanation string   `json:"explanation"`
}

// Stats aggregates the per-claim outcomes.
type Stats struct {
	VerifiedCount     int     `json:"verifiedCount"`
	UnverifiedCount   int     `json:"unverifiedCount"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// Report is the terminal fact-check artifact. Verified is true when more
// claims verified than not; the report is advisory, not authoritative.
type Report struct {
	Verified      bool         `json:"verified"`
	Summary       string       `json:"summary"`
	ClaimsChecked int          `json:"claimsChecked"`
	Results       []ClaimCheck `json:"verificationResults"`
	Stats         Stats        `json:"stats"`
}

// DefaultMaxClaims caps extraction when the caller does not.
const DefaultMaxClaims = 8

// degradedResult marks a claim whose verification could not be processed.
const degradedResult = "erro ao processar verificação"

// Checker runs the extract → verify-each → summarize pass for one draft.
// External calls are sequential; one failing claim never stops the rest.
type Checker struct {
	Text     llm.Client
	Model    string
	Research research.Provider
}

var claimSplitRe = regexp.MustCompile(`(?m)^\s*\d+\s*[.)]\s*`)

// Check extracts up to maxClaims verifiable claims from content and verifies
// each against the research provider. Progress is reported after extraction,
// after each claim, and after summarization, with percentage interpolating
// linearly across the verification phase.
func (c *Checker) Check(ctx context.Context, content string, maxClaims int, onProgress progress.Func) (Report, error) {
	if maxClaims <= 0 {
		maxClaims = DefaultMaxClaims
	}

	onProgress.Emit("extração", "Extraindo alegações verificáveis", 5)
	claims, err := c.extractClaims(ctx, content, maxClaims)
	if err != nil {
		return Report{}, fmt.Errorf("extract claims: %w", err)
	}
	onProgress.Emit("extração", fmt.Sprintf("%d alegações extraídas", len(claims)), 15)

	if len(claims) == 0 {
		onProgress.Emit("concluído", "Nenhuma alegação verificável encontrada", 100)
		return Report{
			Verified:      true,
			Summary:       "Nenhuma alegação verificável encontrada no conteúdo.",
			ClaimsChecked: 0,
			Results:       []ClaimCheck{},
		}, nil
	}

	results := make([]ClaimCheck, 0, len(claims))
	for i, claim := range claims {
		results = append(results, c.verifyClaim(ctx, claim))
		pct := 15 + (i+1)*70/len(claims)
		onProgress.Emit("verificação", fmt.Sprintf("Alegação %d de %d verificada", i+1, len(claims)), pct)
	}

	report := aggregate(results)
	onProgress.Emit("resumo", "Gerando resumo da verificação", 90)
	report.Summary = c.summarize(ctx, report)
	onProgress.Emit("concluído", "Verificação concluída", 100)
	return report, nil
}

// extractClaims asks the model for a numbered list of the most verifiable
// factual claims and splits it. Claims under 10 characters are noise from
// list formatting and are dropped.
func (c *Checker) extractClaims(ctx context.Context, content string, maxClaims int) ([]string, error) {
	system := "Você é um verificador de fatos. Responda apenas com uma lista numerada, sem comentários."
	user := fmt.Sprintf("Liste as %d alegações factuais mais verificáveis do texto abaixo, "+
		"uma por linha, em lista numerada:\n\n%s", maxClaims, content)
	out, err := llm.Complete(ctx, c.Text, c.Model, system, user, 0.0, 0)
	if err != nil {
		return nil, err
	}
	parts := claimSplitRe.Split(out, -1)
	if len(parts) > 0 {
		// Text before the first numbered marker is preamble, not a claim.
		parts = parts[1:]
	}
	claims := make([]string, 0, maxClaims)
	for _, part := range parts {
		claim := strings.TrimSpace(part)
		if len(claim) < 10 {
			continue
		}
		claims = append(claims, claim)
		if len(claims) == maxClaims {
			break
		}
	}
	return claims, nil
}

// verifyClaim corroborates one claim via the research provider, then asks the
// model to classify the evidence. Any failure, including an unparsable
// classification, degrades to an unverified zero-confidence result so the
// loop continues.
func (c *Checker) verifyClaim(ctx context.Context, claim string) ClaimCheck {
	degraded := ClaimCheck{Claim: claim, Verified: false, Confidence: 0, Result: degradedResult, Sources: []string{}}

	answer, err := c.Research.Search(ctx, "Verifique se esta afirmação é verdadeira: "+claim, research.RecencyYear)
	if err != nil {
		log.Warn().Err(err).Str("claim", claim).Msg("claim research failed")
		return degraded
	}

	system := "Você é um verificador de fatos. Responda apenas com JSON no formato " +
		`{"verificado": bool, "resultado": string, "confianca": número entre 0 e 1, "explicacao": string}.`
	user := fmt.Sprintf("Alegação: %s\n\nEvidência encontrada:\n%s\n\nClassifique a alegação.", claim, answer.Text)
	out, err := llm.Complete(ctx, c.Text, c.Model, system, user, 0.0, 0)
	if err != nil {
		log.Warn().Err(err).Str("claim", claim).Msg("claim classification failed")
		return degraded
	}

	raw, ok := llm.ExtractJSON(out)
	if !ok {
		log.Warn().Str("claim", claim).Msg("claim classification not parseable")
		return degraded
	}
	var parsed struct {
		Verificado bool    `json:"verificado"`
		Resultado  string  `json:"resultado"`
		Confianca  float64 `json:"confianca"`
		Explicacao string  `json:"explicacao"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Warn().Err(err).Str("claim", claim).Msg("claim classification malformed")
		return degraded
	}

	confidence := parsed.Confianca
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	return ClaimCheck{
		Claim:       claim,
		Verified:    parsed.Verificado,
		Result:      strings.TrimSpace(parsed.Resultado),
		Confidence:  confidence,
		Sources:     sources,
		Explanation: strings.TrimSpace(parsed.Explicacao),
	}
}

func aggregate(results []ClaimCheck) Report {
	stats := Stats{}
	total := 0.0
	for _, r := range results {
		if r.Verified {
			stats.VerifiedCount++
		} else {
			stats.UnverifiedCount++
		}
		total += r.Confidence
	}
	if len(results) > 0 {
		stats.AverageConfidence = total / float64(len(results))
	}
	return Report{
		Verified:      stats.VerifiedCount > stats.UnverifiedCount,
		ClaimsChecked: len(results),
		Results:       results,
		Stats:         stats,
	}
}

// summarize asks the model for a short natural-language summary over the
// structured verification list. A failed summary call degrades to a
// deterministic one-liner.
func (c *Checker) summarize(ctx context.Context, report Report) string {
	fallback := fmt.Sprintf("%d alegações verificadas, %d confirmadas e %d não confirmadas (confiança média %.2f).",
		report.ClaimsChecked, report.Stats.VerifiedCount, report.Stats.UnverifiedCount, report.Stats.AverageConfidence)

	payload, err := json.Marshal(report.Results)
	if err != nil {
		return fallback
	}
	system := "Você é um verificador de fatos. Escreva um parágrafo curto em português resumindo os resultados."
	out, err := llm.Complete(ctx, c.Text, c.Model, system,
		"Resuma os resultados de verificação a seguir:\n\n"+string(payload), 0.2, 0)
	if err != nil {
		log.Warn().Err(err).Msg("fact-check summary failed; using fallback")
		return fallback
	}
	return out
}
