package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/highlight"
	"github.com/gonkalabs/noface/internal/intake"
	"github.com/gonkalabs/noface/internal/labels"
	"github.com/gonkalabs/noface/internal/view"
)

// SessionCookie names the cookie holding the browser session id.
const SessionCookie = "noface_session"

const alertUnsupported = "Please upload a .txt file"

// Handler implements all HTTP endpoints.
type Handler struct {
	anon           anonymizer.Anonymizer
	sessions       *view.Sessions
	maxUploadBytes int64
}

// New creates a Handler. maxUploadBytes <= 0 disables the upload limit.
func New(anon anonymizer.Anonymizer, sessions *view.Sessions, maxUploadBytes int64) *Handler {
	return &Handler{
		anon:           anon,
		sessions:       sessions,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts the page routes and the JSON API on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/", h.index)
	r.Post("/upload", h.upload)
	r.Post("/clear", h.clear)
	r.Handle("/static/*", staticHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.state)
		r.Get("/labels", h.listLabels)
		r.Post("/drop", h.drop)
	})
}

// ---------- endpoints ----------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, h.snapshot(r), "")
}

// upload handles the file-picker form. It always ends on the page: a redirect
// after processing, or a re-render with an alert when the file is rejected.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	f, err := intake.FromMultipart(w, r, "file", h.maxUploadBytes)
	if err == nil {
		if closer, ok := f.Body.(io.Closer); ok {
			defer closer.Close()
		}
		err = h.accept(r, c, f)
	}

	switch {
	case err == nil:
	case errors.Is(err, intake.ErrUnsupportedType):
		h.renderPage(w, http.StatusUnsupportedMediaType, c.Snapshot(), alertUnsupported)
		return
	case errors.Is(err, intake.ErrTooLarge):
		h.renderPage(w, http.StatusRequestEntityTooLarge, c.Snapshot(), h.tooLargeMessage())
		return
	case errors.Is(err, intake.ErrNoFile), errors.Is(err, view.ErrBusy):
		slog.Info("upload ignored", "err", err)
	default:
		// Anonymizer failures are logged by the composer; the user stays on
		// the upload view.
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// drop handles drag-and-drop uploads sent by app.js as a raw request body.
func (h *Handler) drop(w http.ResponseWriter, r *http.Request) {
	c := h.session(w, r)

	f, err := intake.FromRequestBody(w, r, h.maxUploadBytes)
	if err == nil {
		err = h.accept(r, c, f)
	}

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.stateResponse(c.Snapshot()))
	case errors.Is(err, intake.ErrUnsupportedType):
		writeErr(w, http.StatusUnsupportedMediaType, alertUnsupported)
	case errors.Is(err, intake.ErrTooLarge):
		writeErr(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
	case errors.Is(err, intake.ErrNoFile):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, view.ErrBusy):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		writeErr(w, http.StatusBadGateway, err.Error())
	}
}

// accept runs a validated upload through the composer. The anonymization
// call is detached from the request so a closed tab does not abort it.
func (h *Handler) accept(r *http.Request, c *view.Composer, f intake.File) error {
	ctx := context.WithoutCancel(r.Context())
	return intake.Accept(ctx, f, func(ctx context.Context, text string) error {
		c.SetFile(f.Name, f.Size)
		slog.Info("anonymizing upload", "file", f.Name, "bytes", len(text))
		return c.Submit(ctx, text, h.anon)
	})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if c, ok := h.existing(r); ok {
		c.Clear()
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// stateResponse is the JSON view of a session.
type stateResponse struct {
	view.Snapshot
	Spans []highlight.Span `json:"spans"`
}

func (h *Handler) stateResponse(s view.Snapshot) stateResponse {
	out := stateResponse{Snapshot: s, Spans: []highlight.Span{}}
	if s.Result != nil {
		if spans := highlight.Highlight(s.Result.AnonymizedText, true); spans != nil {
			out.Spans = spans
		}
	}
	return out
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stateResponse(h.snapshot(r)))
}

func (h *Handler) listLabels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, labels.All())
}

// ---------- helpers ----------

// existing returns the caller's Composer if the request names a live session.
func (h *Handler) existing(r *http.Request) (*view.Composer, bool) {
	ck, err := r.Cookie(SessionCookie)
	if err != nil || !view.ValidID(ck.Value) {
		return nil, false
	}
	return h.sessions.Lookup(ck.Value)
}

// snapshot reads the caller's state. Callers without a session see the
// initial Upload view.
func (h *Handler) snapshot(r *http.Request) view.Snapshot {
	if c, ok := h.existing(r); ok {
		return c.Snapshot()
	}
	return view.NewComposer().Snapshot()
}

// session returns the caller's Composer for a state-changing request,
// creating the session and issuing its cookie when needed.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *view.Composer {
	if ck, err := r.Cookie(SessionCookie); err == nil && view.ValidID(ck.Value) {
		return h.sessions.Get(ck.Value)
	}
	id := view.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.sessions.Get(id)
}

func (h *Handler) tooLargeMessage() string {
	if h.maxUploadBytes <= 0 {
		return "File is too large"
	}
	return fmt.Sprintf("File is too large (max %s)", humanize.IBytes(uint64(h.maxUploadBytes)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
