package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/reformahub/contentpipe/internal/llm"
	"github.com/reformahub/contentpipe/internal/parse"
)

// Metadata is the SEO metadata synthesized for one article.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Slug        string   `json:"slug"`
}

const metadataSystem = "Você é um especialista em SEO. Responda apenas com um bloco JSON no formato " +
	"```json\n{\"title\": string, \"description\": string, \"keywords\": [string], \"slug\": string}\n``` " +
	"com title de até 60 caracteres e description entre 120 e 160 caracteres."

// Metadata asks the model to synthesize SEO metadata for the content. A
// provider failure returns the error; a response without parseable JSON
// degrades to a deterministic minimal object derived from the content itself.
func (g *Generator) Metadata(ctx context.Context, content, topic string) (*Metadata, error) {
	user := fmt.Sprintf("Gere os metadados SEO para o artigo abaixo, sobre %s:\n\n%s", topic, content)
	out, err := llm.Complete(ctx, g.Text, g.Model, metadataSystem, user, 0.2, 0)
	if err != nil {
		return nil, fmt.Errorf("metadata call: %w", err)
	}

	if raw, ok := llm.ExtractJSON(out); ok {
		var meta Metadata
		if err := json.Unmarshal(raw, &meta); err == nil && strings.TrimSpace(meta.Title) != "" {
			if meta.Slug == "" {
				meta.Slug = Slugify(meta.Title)
			}
			if meta.Keywords == nil {
				meta.Keywords = []string{topic}
			}
			return &meta, nil
		}
	}
	return fallbackMetadata(content, topic), nil
}

// fallbackMetadata is the documented default when the model response carries
// no parseable JSON: title from the draft heading, description from the first
// prose characters, the topic as sole keyword.
func fallbackMetadata(content, topic string) *Metadata {
	title := extractTitle(content, topic)
	return &Metadata{
		Title:       title,
		Description: firstChars(plainText(content), 155),
		Keywords:    []string{topic},
		Slug:        Slugify(title),
	}
}

var (
	markupLineRe = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+[^\n]*$`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

func plainText(content string) string {
	s := markupLineRe.ReplaceAllString(content, "")
	s = stripTags(s)
	return strings.Join(strings.Fields(s), " ")
}

func firstChars(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

// Slugify folds diacritics and collapses everything else into hyphens.
func Slugify(s string) string {
	v := slugStripRe.ReplaceAllString(parse.Fold(s), "-")
	return strings.Trim(v, "-")
}
