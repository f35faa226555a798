// Package render draws highlighted anonymization results outside the browser:
// ANSI-coloured text for the terminal and a Markdown report.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/highlight"
	"github.com/gonkalabs/noface/internal/labels"
)

// Panel titles shared by every renderer.
const (
	TitleOriginal   = "Original Text"
	TitleAnonymized = "Anonymized"
	TitleReplaced   = "Replaced Values"
	EmptyPanelText  = "No text to display"
)

// Terminal writes results and the legend with 24-bit ANSI colours.
type Terminal struct {
	w        io.Writer
	useColor bool
}

// NewTerminal returns a Terminal writing to w. With useColor=false no escape
// sequences are emitted.
func NewTerminal(w io.Writer, useColor bool) *Terminal {
	return &Terminal{w: w, useColor: useColor}
}

func (t *Terminal) paint(c *color.Color) *color.Color {
	if t.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// labelColor builds the style for a label token: its colour, bold.
func (t *Terminal) labelColor(hex string) *color.Color {
	r, g, b, ok := labels.RGB(hex)
	if !ok {
		r, g, b, _ = labels.RGB(labels.Fallback)
	}
	return t.paint(color.RGB(r, g, b).Add(color.Bold))
}

// Spans renders spans as a single string, colouring label tokens.
func (t *Terminal) Spans(spans []highlight.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Styled() {
			b.WriteString(t.labelColor(s.Color).Sprint(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func (t *Terminal) panel(title, text string, highlightLabels bool) error {
	header := t.paint(color.New(color.FgHiWhite, color.Bold, color.Underline))
	if _, err := fmt.Fprintln(t.w, header.Sprint(title)); err != nil {
		return err
	}
	body := EmptyPanelText
	if text != "" {
		body = t.Spans(highlight.Highlight(text, highlightLabels))
	} else {
		body = t.paint(color.New(color.Faint)).Sprint(body)
	}
	_, err := fmt.Fprintf(t.w, "%s\n\n", body)
	return err
}

// Result writes the three panels: original, anonymized (highlighted) and replaced.
func (t *Terminal) Result(res anonymizer.Result) error {
	if err := t.panel(TitleOriginal, res.OriginalText, false); err != nil {
		return err
	}
	if err := t.panel(TitleAnonymized, res.AnonymizedText, true); err != nil {
		return err
	}
	return t.panel(TitleReplaced, res.ReplacedText, false)
}

// Summary writes a one-line overview of a result.
func (t *Terminal) Summary(fileName string, size int64, res anonymizer.Result) error {
	spans := highlight.Highlight(res.AnonymizedText, true)
	sizeText := "unknown size"
	if size >= 0 {
		sizeText = humanize.IBytes(uint64(size))
	}
	line := fmt.Sprintf("%s (%s): %d entities redacted", fileName, sizeText, highlight.Count(spans))
	if found := highlight.Tokens(res.AnonymizedText); len(found) > 0 {
		line += " [" + strings.Join(found, ", ") + "]"
	}
	_, err := fmt.Fprintf(t.w, "%s\n\n", line)
	return err
}

// Legend writes every label with a colour swatch, in declaration order.
func (t *Terminal) Legend() error {
	for _, e := range labels.All() {
		swatch := t.labelColor(e.Color).Sprint("■")
		if _, err := fmt.Fprintf(t.w, "%s %-20s %s\n", swatch, e.Label, e.Color); err != nil {
			return err
		}
	}
	return nil
}
