package seo

import (
	"bufio"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/reformahub/contentpipe/internal/parse"
)

// Metrics is the shared measurement core both scoring profiles read from.
// Pure data; computing it has no side effects.
type Metrics struct {
	WordCount      int
	SentenceCount  int
	ParagraphCount int

	AvgParagraphWords float64
	AvgSentenceWords  float64

	// Headings[n] counts level-n headings, combining the markup-tag
	// convention (<h2>) and the #-prefixed line convention.
	Headings     [7]int
	HeadingCount int
	// HeadingRatio is headings per 100 words.
	HeadingRatio float64

	KeywordDensity          float64 // percent of tokens matching a target keyword
	KeywordInFirstParagraph bool
	KeywordHeadings         int

	ListCount  int
	ImageCount int
	LinkCount  int
	HasSchema  bool

	SyllablesPerWord  float64
	FleschScore       float64
	ComplexWordRatio  float64
	PassiveVoiceCount int
}

var (
	mdHeadingRe  = regexp.MustCompile(`^\s{0,3}(#{1,6})\s+(.+?)\s*$`)
	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLinkRe     = regexp.MustCompile(`[^!]\[[^\]]+\]\([^)]+\)`)
	mdListItemRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
)

// fold lowercases and strips diacritics so keyword matching ignores accents.
func fold(s string) string {
	return parse.Fold(s)
}

// Compute measures content once; both scoring profiles and the orchestrator
// share the result. Given identical inputs the output is identical.
func Compute(content string, keywords []string) Metrics {
	var m Metrics

	words := tokenize(content)
	m.WordCount = len(words)

	folded := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if kk := fold(strings.TrimSpace(k)); kk != "" {
			folded = append(folded, kk)
		}
	}

	matches := 0
	for _, w := range words {
		if matchesKeyword(w, folded) {
			matches++
		}
	}
	if m.WordCount > 0 {
		m.KeywordDensity = float64(matches) / float64(m.WordCount) * 100
	}

	countStructure(content, folded, &m)
	countHTML(content, folded, &m)
	m.HeadingCount = 0
	for _, n := range m.Headings {
		m.HeadingCount += n
	}
	if m.WordCount > 0 {
		m.HeadingRatio = float64(m.HeadingCount) / float64(m.WordCount) * 100
	}
	if m.ParagraphCount > 0 {
		m.AvgParagraphWords = float64(m.WordCount) / float64(m.ParagraphCount)
	}

	measureReadability(content, words, &m)
	return m
}

// tokenize splits content into lowercase diacritic-folded word tokens,
// skipping markup punctuation.
func tokenize(content string) []string {
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, fold(f))
	}
	return out
}

// matchesKeyword applies containment in either direction: the token matches
// when it contains the keyword or the keyword contains it. Short keywords can
// therefore over-match; the behavior is pinned by tests.
func matchesKeyword(token string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(token, k) || strings.Contains(k, token) {
			return true
		}
	}
	return false
}

// countStructure walks the #-line conventions: headings, list blocks,
// markdown images/links, paragraphs, first-paragraph keyword presence.
func countStructure(content string, keywords []string, m *Metrics) {
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inList := false
	inParagraph := false
	firstParagraph := ""
	firstParagraphDone := false

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if hm := mdHeadingRe.FindStringSubmatch(line); hm != nil {
			level := len(hm[1])
			m.Headings[level]++
			if matchesHeading(hm[2], keywords) {
				m.KeywordHeadings++
			}
			inList = false
			inParagraph = false
			continue
		}
		if mdListItemRe.MatchString(line) {
			if !inList {
				m.ListCount++
				inList = true
			}
			inParagraph = false
			continue
		}
		inList = false
		if trimmed == "" {
			inParagraph = false
			if firstParagraph != "" {
				firstParagraphDone = true
			}
			continue
		}
		if !inParagraph {
			m.ParagraphCount++
			inParagraph = true
		}
		if !firstParagraphDone {
			firstParagraph += " " + trimmed
		}
	}

	if firstParagraph != "" && len(keywords) > 0 {
		for _, tok := range tokenize(firstParagraph) {
			if matchesKeyword(tok, keywords) {
				m.KeywordInFirstParagraph = true
				break
			}
		}
	}

	m.ImageCount += len(mdImageRe.FindAllString(content, -1))
	m.LinkCount += len(mdLinkRe.FindAllString(" "+content, -1))
	if strings.Contains(content, "schema.org") || strings.Contains(content, "application/ld+json") {
		m.HasSchema = true
	}
}

func matchesHeading(heading string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, tok := range tokenize(heading) {
		if matchesKeyword(tok, keywords) {
			return true
		}
	}
	return false
}

// countHTML tokenizes any embedded markup and adds tag-convention headings,
// images, links and list containers on top of the markdown counts.
func countHTML(content string, keywords []string, m *Metrics) {
	if !strings.Contains(content, "<") {
		return
	}
	tz := html.NewTokenizer(strings.NewReader(content))
	var headingLevel int
	var headingText strings.Builder
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return
		}
		tok := tz.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch tok.Data {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				level := int(tok.Data[1] - '0')
				m.Headings[level]++
				headingLevel = level
				headingText.Reset()
			case "img":
				m.ImageCount++
			case "a":
				m.LinkCount++
			case "ul", "ol":
				m.ListCount++
			case "script":
				for _, attr := range tok.Attr {
					if attr.Key == "type" && attr.Val == "application/ld+json" {
						m.HasSchema = true
					}
				}
			}
		case html.TextToken:
			if headingLevel > 0 {
				headingText.WriteString(tok.Data)
			}
		case html.EndTagToken:
			if headingLevel > 0 && tok.Data == "h"+string(rune('0'+headingLevel)) {
				if matchesHeading(headingText.String(), keywords) {
					m.KeywordHeadings++
				}
				headingLevel = 0
			}
		}
	}
}
