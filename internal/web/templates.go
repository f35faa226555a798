package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/gonkalabs/noface/internal/highlight"
	"github.com/gonkalabs/noface/internal/labels"
	"github.com/gonkalabs/noface/internal/render"
	"github.com/gonkalabs/noface/internal/view"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Styles are built only from the static label map, so they are trusted CSS.
var funcs = template.FuncMap{
	"spanStyle": func(s highlight.Span) template.CSS { return template.CSS(s.Style()) },
	"legendStyle": func(e labels.Entry) template.CSS {
		return template.CSS("background-color:" + labels.Tint(e.Color) + ";border:2px solid " + e.Color)
	},
}

var pageTmpl = template.Must(template.New("index.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/index.html.tmpl"))

// panel is one of the three result columns.
type panel struct {
	Title string
	Icon  string
	Spans []highlight.Span
}

// pageData is everything the page template needs.
type pageData struct {
	Results    bool
	Processing bool
	FileName   string
	FileSize   string
	Alert      string
	Legend     []labels.Entry
	Panels     []panel
	Redacted   int
}

func newPageData(s view.Snapshot, alert string) pageData {
	d := pageData{
		Results:    s.State == view.StateResults,
		Processing: s.Processing,
		FileName:   s.FileName,
		Alert:      alert,
		Legend:     labels.All(),
	}
	if s.FileSize > 0 {
		d.FileSize = humanize.IBytes(uint64(s.FileSize))
	}
	if s.Result != nil {
		anon := highlight.Highlight(s.Result.AnonymizedText, true)
		d.Redacted = highlight.Count(anon)
		d.Panels = []panel{
			{Title: render.TitleOriginal, Icon: "📝", Spans: highlight.Highlight(s.Result.OriginalText, false)},
			{Title: render.TitleAnonymized, Icon: "🔒", Spans: anon},
			{Title: render.TitleReplaced, Icon: "🔄", Spans: highlight.Highlight(s.Result.ReplacedText, false)},
		}
	}
	return d
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, s view.Snapshot, alert string) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, newPageData(s, alert)); err != nil {
		slog.Error("render page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
