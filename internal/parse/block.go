package parse

import (
	"bufio"
	"regexp"
	"strings"
)

// Marker is a begin/end delimiter pair enclosing one structured record in
// free-form provider output, e.g. [FONTE] ... [/FONTE].
type Marker struct {
	Begin string
	End   string
}

var (
	SourceMarker = Marker{Begin: "[FONTE]", End: "[/FONTE]"}
	FAQMarker    = Marker{Begin: "[PERGUNTA]", End: "[/PERGUNTA]"}
)

// Block is a single parsed record: field values keyed by normalized label,
// preserving the order in which labels appeared.
type Block struct {
	fields map[string]string
	order  []string
}

// Get returns the trimmed value for a label. Lookup keys are normalized the
// same way as values stored by the scanner, so Get("TITULO") matches a
// "Título:" line regardless of accents.
func (b Block) Get(label string) (string, bool) {
	v, ok := b.fields[Key(label)]
	return v, ok
}

// Value returns the field value or fallback when the label is absent or empty.
func (b Block) Value(label, fallback string) string {
	if v, ok := b.Get(label); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Labels lists the normalized labels in input order.
func (b Block) Labels() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// fieldRe matches a "Label: value" line anchored at line start. The label part
// is deliberately short so prose containing a colon mid-sentence is treated as
// a continuation line, not a new field.
var fieldRe = regexp.MustCompile(`^([\p{L}][\p{L} /-]{0,30}):\s*(.*)$`)

// Blocks scans text line by line and returns every record enclosed by the
// marker pair, in order. Lines inside a block that do not start a new field
// are appended to the value of the last seen field. An unterminated block at
// end of input is kept; text outside any block is ignored. The result is
// never nil.
func Blocks(text string, m Marker) []Block {
	out := make([]Block, 0, 4)
	var cur *Block
	var lastLabel string

	flush := func() {
		if cur != nil && len(cur.order) > 0 {
			for k, v := range cur.fields {
				cur.fields[k] = strings.TrimSpace(v)
			}
			out = append(out, *cur)
		}
		cur = nil
		lastLabel = ""
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == m.Begin:
			flush()
			cur = &Block{fields: map[string]string{}}
		case trimmed == m.End:
			flush()
		case cur != nil:
			if mm := fieldRe.FindStringSubmatch(trimmed); mm != nil {
				label := Key(mm[1])
				if _, dup := cur.fields[label]; !dup {
					cur.order = append(cur.order, label)
				}
				cur.fields[label] = mm[2]
				lastLabel = label
			} else if lastLabel != "" && trimmed != "" {
				cur.fields[lastLabel] += "\n" + trimmed
			}
		}
	}
	flush()
	return out
}
