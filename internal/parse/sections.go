package parse

import (
	"bufio"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	sectionHeadingRe = regexp.MustCompile(`^\s{0,3}##\s+(.+?)\s*$`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)

	// NFD decomposition followed by removal of combining marks strips
	// diacritics so "Visão" and "Visao" normalize to the same key.
	diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Fold lowercases s and strips diacritics: "Visão" becomes "visao".
func Fold(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}

// Key normalizes a heading or field label into a stable lookup key:
// diacritics stripped, uppercased, whitespace runs replaced by underscores.
// "Especificações Técnicas" becomes "ESPECIFICACOES_TECNICAS".
func Key(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}
	stripped = strings.ToUpper(strings.TrimSpace(stripped))
	return whitespaceRunRe.ReplaceAllString(stripped, "_")
}

// Sections splits text at level-two markdown headings and returns each body
// keyed by the normalized heading. Text before the first heading is discarded.
// Repeated headings keep the last body. The map is never nil.
func Sections(text string) map[string]string {
	out := map[string]string{}
	var key string
	var body strings.Builder

	flush := func() {
		if key != "" {
			out[key] = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if m := sectionHeadingRe.FindStringSubmatch(line); m != nil {
			flush()
			key = Key(m[1])
			continue
		}
		if key != "" {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()
	return out
}

// Section returns the body for the given heading key, or the empty string.
func Section(text, headingKey string) string {
	return Sections(text)[Key(headingKey)]
}
