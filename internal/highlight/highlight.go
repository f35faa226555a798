// Package highlight splits anonymized text into plain and label spans so the
// web UI and the CLI can colour $[LABEL] tokens consistently.
package highlight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/gonkalabs/noface/internal/labels"
)

// tokenRe matches label tokens such as $[NAME] or $[DATE-OF-BIRTH].
var tokenRe = regexp.MustCompile(`\$\[([A-Z-]+)\]`)

// Span is one renderable piece of text. Label is empty for plain text.
type Span struct {
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
}

// Styled reports whether the span is a label token.
func (s Span) Styled() bool { return s.Label != "" }

// Style returns the inline CSS for a label span, or "" for plain text.
func (s Span) Style() string {
	if !s.Styled() {
		return ""
	}
	return fmt.Sprintf(
		"background-color:%s;color:%s;border:1px solid %s;padding:2px 8px;border-radius:4px;font-weight:600;font-size:0.9em",
		labels.Tint(s.Color), s.Color, s.Color,
	)
}

// Highlight splits text into spans. With enabled=false the whole text is one
// plain span. Empty text yields no spans.
func Highlight(text string, enabled bool) []Span {
	if text == "" {
		return nil
	}
	if !enabled {
		return []Span{{Text: text}}
	}

	var spans []Span
	last := 0
	for _, m := range tokenRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		label := text[m[2]:m[3]]
		spans = append(spans, Span{
			Text:  text[m[0]:m[1]],
			Label: label,
			Color: labels.Color(label),
		})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// Join concatenates the text of all spans.
func Join(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Count returns the number of label spans.
func Count(spans []Span) int {
	return lo.CountBy(spans, func(s Span) bool { return s.Styled() })
}

// Tokens returns the distinct labels that occur in text, in first-seen order.
func Tokens(text string) []string {
	var out []string
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return lo.Uniq(out)
}
