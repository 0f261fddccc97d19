package seo

import (
	"fmt"
	"math"
	"strings"
)

// Profile selects one of the two scoring strategies. Both read the same
// Metrics core; only the sub-score weighting differs.
type Profile string

const (
	// ProfileWeighted scores article body quality:
	// keywords 30%, structure 30%, readability 20%, content length 20%.
	ProfileWeighted Profile = "weighted"
	// ProfileBasic scores page-level SEO:
	// title 15%, description 15%, keyword placement 10%, content 10%,
	// headings 20%, links 10%, images 10%, structured data 10%.
	ProfileBasic Profile = "basic"
)

// Input carries everything a scoring pass may look at. Title and Description
// only matter to ProfileBasic.
type Input struct {
	Content     string
	Title       string
	Description string
	Keywords    []string
}

// Analysis is the scoring result: a composite 0..100 score, machine-checkable
// sub-scores, and human-readable findings. Derived purely from the input;
// identical inputs produce identical output.
type Analysis struct {
	Score       int
	Strengths   []string
	Weaknesses  []string
	Suggestions []string
	Subscores   map[string]int
	Metrics     Metrics
}

// AnalyzeContent scores article body text with ProfileWeighted.
func AnalyzeContent(content string, keywords []string) Analysis {
	return Analyze(Input{Content: content, Keywords: keywords}, ProfileWeighted)
}

// AnalyzePage scores a full page (title and meta description included) with
// ProfileBasic.
func AnalyzePage(content, title, description string, keywords []string) Analysis {
	return Analyze(Input{Content: content, Title: title, Description: description, Keywords: keywords}, ProfileBasic)
}

// Analyze computes the metrics core once and applies the chosen profile.
func Analyze(in Input, p Profile) Analysis {
	m := Compute(in.Content, in.Keywords)
	a := Analysis{
		Metrics:     m,
		Subscores:   map[string]int{},
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
	}
	switch p {
	case ProfileBasic:
		scoreBasic(in, m, &a)
	default:
		scoreWeighted(in, m, &a)
	}
	describe(in, m, &a)
	a.Suggestions = suggestionsFor(a.Weaknesses)
	return a
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

func scoreWeighted(in Input, m Metrics, a *Analysis) {
	kw := keywordScore(in, m)
	st := structureScore(m)
	rd := readabilityScore(m)
	ln := lengthScore(m.WordCount)

	a.Subscores["keywords"] = kw
	a.Subscores["structure"] = st
	a.Subscores["readability"] = rd
	a.Subscores["length"] = ln
	a.Score = clampScore(0.30*float64(kw) + 0.30*float64(st) + 0.20*float64(rd) + 0.20*float64(ln))
}

func scoreBasic(in Input, m Metrics, a *Analysis) {
	ti := titleScore(in)
	de := descriptionScore(in)
	pl := 0
	if m.KeywordInFirstParagraph {
		pl = 100
	}
	ln := lengthScore(m.WordCount)
	hd := headingScore(m)
	lk := linkScore(m.LinkCount)
	im := 0
	if m.ImageCount >= 1 {
		im = 100
	}
	sc := 0
	if m.HasSchema {
		sc = 100
	}

	a.Subscores["title"] = ti
	a.Subscores["description"] = de
	a.Subscores["placement"] = pl
	a.Subscores["content"] = ln
	a.Subscores["headings"] = hd
	a.Subscores["links"] = lk
	a.Subscores["images"] = im
	a.Subscores["schema"] = sc
	a.Score = clampScore(0.15*float64(ti) + 0.15*float64(de) + 0.10*float64(pl) +
		0.10*float64(ln) + 0.20*float64(hd) + 0.10*float64(lk) + 0.10*float64(im) + 0.10*float64(sc))
}

// keywordScore: density in the 1-3% band earns full marks, above 3% is
// penalized as stuffing, zero scores zero. First-paragraph presence and
// keyword headings round out the family.
func keywordScore(in Input, m Metrics) int {
	if len(in.Keywords) == 0 {
		return 50 // nothing to measure against; neutral
	}
	d := m.KeywordDensity
	var density float64
	switch {
	case d <= 0:
		density = 0
	case d < 1:
		density = 40 + 60*d
	case d <= 3:
		density = 100
	default:
		density = 100 - 25*(d-3)
		if density < 0 {
			density = 0
		}
	}
	first := 0.0
	if m.KeywordInFirstParagraph {
		first = 100
	}
	headings := float64(m.KeywordHeadings)
	if headings > 3 {
		headings = 3
	}
	return clampScore(0.6*density + 0.2*first + 0.2*(headings/3*100))
}

func structureScore(m Metrics) int {
	score := 0.0
	switch m.Headings[1] {
	case 1:
		score += 30
	case 0:
	default:
		score += 10 // multiple h1s confuse crawlers
	}
	switch {
	case m.Headings[2] >= 2:
		score += 25
	case m.Headings[2] == 1:
		score += 15
	}
	if m.ParagraphCount >= 3 && m.AvgParagraphWords > 0 && m.AvgParagraphWords <= 150 {
		score += 20
	} else if m.ParagraphCount > 0 {
		score += 10
	}
	if m.ListCount >= 1 {
		score += 15
	}
	if m.ImageCount >= 1 {
		score += 10
	}
	return clampScore(score)
}

func readabilityScore(m Metrics) int {
	score := m.FleschScore
	if m.PassiveVoiceCount > 5 {
		score -= 15
	}
	if m.ComplexWordRatio > 0.30 {
		score -= 15
	}
	return clampScore(score)
}

// lengthScore is monotonically non-decreasing in word count: under 300 words
// is thin content, 1200+ earns full marks.
func lengthScore(words int) int {
	switch {
	case words >= 1200:
		return 100
	case words >= 300:
		return clampScore(40 + 60*float64(words-300)/900)
	default:
		return clampScore(40 * float64(words) / 300)
	}
}

func titleScore(in Input) int {
	t := strings.TrimSpace(in.Title)
	if t == "" {
		return 0
	}
	score := 40.0
	if n := len([]rune(t)); n >= 30 && n <= 60 {
		score += 30
	}
	if len(in.Keywords) > 0 && matchesHeading(t, foldAll(in.Keywords)) {
		score += 30
	}
	return clampScore(score)
}

func descriptionScore(in Input) int {
	d := strings.TrimSpace(in.Description)
	if d == "" {
		return 0
	}
	score := 40.0
	if n := len([]rune(d)); n >= 120 && n <= 160 {
		score += 40
	}
	if len(in.Keywords) > 0 && matchesHeading(d, foldAll(in.Keywords)) {
		score += 20
	}
	return clampScore(score)
}

func headingScore(m Metrics) int {
	score := 0.0
	if m.Headings[1] == 1 {
		score += 50
	}
	if m.Headings[2] >= 2 {
		score += 30
	}
	if m.KeywordHeadings >= 1 {
		score += 20
	}
	return clampScore(score)
}

func linkScore(links int) int {
	switch {
	case links >= 2:
		return 100
	case links == 1:
		return 60
	default:
		return 0
	}
}

func foldAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if kk := fold(strings.TrimSpace(k)); kk != "" {
			out = append(out, kk)
		}
	}
	return out
}

// describe converts metric thresholds into natural-language findings.
func describe(in Input, m Metrics, a *Analysis) {
	strength := func(s string) { a.Strengths = append(a.Strengths, s) }
	weakness := func(s string) { a.Weaknesses = append(a.Weaknesses, s) }

	if len(in.Keywords) > 0 {
		switch d := m.KeywordDensity; {
		case d >= 1 && d <= 3:
			strength(fmt.Sprintf("Densidade de palavra-chave ideal (%.1f%%)", d))
		case d > 3:
			weakness(fmt.Sprintf("Densidade de palavra-chave excessiva (%.1f%%), risco de keyword stuffing", d))
		case d == 0:
			weakness("Palavra-chave ausente do conteúdo")
		default:
			weakness(fmt.Sprintf("Densidade de palavra-chave baixa (%.1f%%)", d))
		}
		if m.KeywordInFirstParagraph {
			strength("Palavra-chave presente no primeiro parágrafo")
		} else {
			weakness("Palavra-chave ausente do primeiro parágrafo")
		}
	}

	if m.Headings[1] == 1 {
		strength("Título principal (H1) único")
	} else if m.Headings[1] == 0 {
		weakness("Sem título principal (H1)")
	} else {
		weakness("Mais de um título principal (H1)")
	}
	if m.Headings[2] >= 2 {
		strength(fmt.Sprintf("Boa estrutura de subtítulos (%d H2)", m.Headings[2]))
	} else {
		weakness("Poucos subtítulos (H2)")
	}

	if m.WordCount < 300 {
		weakness("Conteúdo muito curto (menos de 300 palavras)")
	} else if m.WordCount >= 1200 {
		strength(fmt.Sprintf("Conteúdo extenso (%d palavras)", m.WordCount))
	}

	if m.FleschScore >= 50 {
		strength(fmt.Sprintf("Boa legibilidade (índice %.0f)", m.FleschScore))
	} else if m.WordCount > 0 {
		weakness(fmt.Sprintf("Legibilidade baixa (índice %.0f), frases longas ou palavras complexas", m.FleschScore))
	}
	if m.PassiveVoiceCount > 5 {
		weakness(fmt.Sprintf("Uso excessivo de voz passiva (%d ocorrências)", m.PassiveVoiceCount))
	}

	if m.ListCount == 0 {
		weakness("Sem listas para facilitar a leitura")
	}
	if m.ImageCount == 0 {
		weakness("Sem imagens no conteúdo")
	}
	if m.LinkCount == 0 {
		weakness("Sem links internos ou externos")
	}
}

// remediations maps a weakness-text fragment to a canned suggestion.
var remediations = []struct {
	match      string
	suggestion string
}{
	{"Densidade de palavra-chave excessiva", "Reduza repetições da palavra-chave e use sinônimos"},
	{"Densidade de palavra-chave baixa", "Inclua a palavra-chave mais algumas vezes de forma natural"},
	{"Palavra-chave ausente do conteúdo", "Inclua a palavra-chave alvo no texto"},
	{"primeiro parágrafo", "Mencione a palavra-chave logo no primeiro parágrafo"},
	{"Sem título principal", "Adicione um único H1 com a palavra-chave"},
	{"Mais de um título principal", "Mantenha apenas um H1 por página"},
	{"Poucos subtítulos", "Divida o texto com subtítulos H2 a cada 2-3 parágrafos"},
	{"muito curto", "Amplie o conteúdo para pelo menos 1200 palavras"},
	{"Legibilidade baixa", "Encurte as frases e prefira palavras simples"},
	{"voz passiva", "Reescreva frases passivas na voz ativa"},
	{"Sem listas", "Transforme enumerações em listas com marcadores"},
	{"Sem imagens", "Adicione imagens com texto alternativo descritivo"},
	{"Sem links", "Adicione links para conteúdos relacionados e fontes"},
}

func suggestionsFor(weaknesses []string) []string {
	out := []string{}
	for _, w := range weaknesses {
		for _, r := range remediations {
			if strings.Contains(w, r.match) {
				out = append(out, r.suggestion)
				break
			}
		}
	}
	return out
}
