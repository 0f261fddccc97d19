package parse

import (
	"regexp"
	"strings"
)

// FAQ is one question/answer pair extracted from provider output.
type FAQ struct {
	Question string
	Answer   string
}

var numberedItemRe = regexp.MustCompile(`(?m)^\s*\d+\s*[.)]\s*`)

// ParseFAQs extracts question/answer pairs. The delimited [PERGUNTA] block
// format is authoritative; when no block matches, a best-effort pass splits
// numbered-list text on the first "?" or ":" to approximate pairs. Entries
// that do not split cleanly are dropped. The result is never nil.
func ParseFAQs(text string) []FAQ {
	blocks := Blocks(text, FAQMarker)
	if len(blocks) == 0 {
		return freeTextFAQs(text)
	}
	out := make([]FAQ, 0, len(blocks))
	for _, b := range blocks {
		q := b.Value("PERGUNTA", "")
		a := b.Value("RESPOSTA", "")
		if q == "" || a == "" {
			continue
		}
		out = append(out, FAQ{Question: q, Answer: a})
	}
	return out
}

// freeTextFAQs approximates pairs from a numbered list such as
// "1. Quanto custa? Depende do tamanho da fachada." Coverage is best-effort.
func freeTextFAQs(text string) []FAQ {
	out := make([]FAQ, 0, 4)
	for _, item := range numberedItemRe.Split(text, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		q, a, ok := splitQuestion(item)
		if !ok {
			continue
		}
		out = append(out, FAQ{Question: q, Answer: a})
	}
	return out
}

func splitQuestion(item string) (question, answer string, ok bool) {
	if i := strings.Index(item, "?"); i >= 0 {
		question = strings.TrimSpace(item[:i+1])
		answer = strings.TrimSpace(item[i+1:])
	} else if i := strings.Index(item, ":"); i >= 0 {
		question = strings.TrimSpace(item[:i])
		answer = strings.TrimSpace(item[i+1:])
	}
	if question == "" || answer == "" {
		return "", "", false
	}
	return question, answer, true
}
