package render

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/highlight"
	"github.com/gonkalabs/noface/internal/labels"
)

// Markdown writes a result as a Markdown report: a summary table, one code
// block per panel and the legend rows for the labels that occur.
func Markdown(w io.Writer, fileName string, res anonymizer.Result) error {
	md := markdown.NewMarkdown(w)
	spans := highlight.Highlight(res.AnonymizedText, true)

	md.H1("NoFace Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + fileName + "`"},
			{"Entities redacted", strconv.Itoa(highlight.Count(spans))},
		},
	})
	md.PlainText("")

	panel(md, TitleOriginal, res.OriginalText)
	panel(md, TitleAnonymized, res.AnonymizedText)
	panel(md, TitleReplaced, res.ReplacedText)

	counts := map[string]int{}
	for _, s := range spans {
		if s.Styled() {
			counts[s.Label]++
		}
	}
	if len(counts) > 0 {
		md.H2("Entity Types")
		md.PlainText("")
		var rows [][]string
		for _, label := range highlight.Tokens(res.AnonymizedText) {
			c := labels.Color(label)
			rows = append(rows, []string{"`" + label + "`", "`" + c + "`", strconv.Itoa(counts[label])})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Label", "Color", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

func panel(md *markdown.Markdown, title, text string) {
	md.H2(title)
	md.PlainText("")
	if text == "" {
		md.PlainText("_" + EmptyPanelText + "_")
	} else {
		md.CodeBlocks(markdown.SyntaxHighlightText, text)
	}
	md.PlainText("")
}
