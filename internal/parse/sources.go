package parse

import (
	"regexp"
	"strings"
)

// Source is one research citation extracted from provider output. Fields are
// trimmed; a field absent from the block keeps its documented default.
type Source struct {
	Title  string
	Author string
	Date   string
	// URL is empty when the provider marked the source as not available
	// online ("Não disponível online").
	URL     string
	Type    string
	Summary string
	// Relevance is "alta", "média" or "baixa"; RelevanceUnspecified when
	// the block carries no usable value.
	Relevance string
}

// RelevanceUnspecified is the default relevance for sources that do not state one.
const RelevanceUnspecified = "não especificada"

// legacySourceRe introduces one record in the older free-text source format:
// "Fonte 3: Guia de Pintura". Field lines follow until the next "Fonte N:".
var legacySourceRe = regexp.MustCompile(`^\s*[Ff]onte\s+\d+\s*:\s*(.+?)\s*$`)

// ParseSources extracts sources from provider output. It tries the delimited
// [FONTE] block format first and falls back to the legacy "Fonte N:" format
// when no block matches. The result is never nil; unparseable input yields an
// empty slice.
func ParseSources(text string) []Source {
	blocks := Blocks(text, SourceMarker)
	if len(blocks) == 0 {
		return legacySources(text)
	}
	out := make([]Source, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, sourceFromBlock(b))
	}
	return out
}

func sourceFromBlock(b Block) Source {
	s := Source{
		Title:     b.Value("TITULO", ""),
		Author:    b.Value("AUTOR", b.Value("FONTE", "")),
		Date:      b.Value("DATA", ""),
		Type:      b.Value("TIPO", ""),
		Summary:   b.Value("RESUMO", ""),
		Relevance: normalizeRelevance(b.Value("RELEVANCIA", "")),
	}
	if url, ok := b.Get("URL"); ok {
		s.URL = normalizeURL(url)
	}
	return s
}

func normalizeURL(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || strings.EqualFold(Key(v), Key("Não disponível online")) {
		return ""
	}
	return v
}

func normalizeRelevance(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "alta":
		return "alta"
	case "média", "media":
		return "média"
	case "baixa":
		return "baixa"
	default:
		return RelevanceUnspecified
	}
}

// legacySources parses the older free-text format where each source starts on
// a "Fonte N: title" line and optional "Label: value" lines follow.
func legacySources(text string) []Source {
	out := make([]Source, 0, 4)
	var cur *Source
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Title) != "" {
			if cur.Relevance == "" {
				cur.Relevance = RelevanceUnspecified
			}
			out = append(out, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := legacySourceRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			cur = &Source{Title: m[1]}
			continue
		}
		if cur == nil {
			continue
		}
		if mm := fieldRe.FindStringSubmatch(trimmed); mm != nil {
			val := strings.TrimSpace(mm[2])
			switch Key(mm[1]) {
			case "AUTOR", "FONTE":
				cur.Author = val
			case "DATA", "ANO":
				cur.Date = val
			case "URL", "LINK":
				cur.URL = normalizeURL(val)
			case "TIPO":
				cur.Type = val
			case "RESUMO":
				cur.Summary = val
			case "RELEVANCIA":
				cur.Relevance = normalizeRelevance(val)
			}
		}
	}
	flush()
	return out
}
