// Package anonymizer calls the remote anonymization service. The service is a
// black box: it takes raw text and returns the anonymized text (with $[LABEL]
// tokens) and the text with substituted values.
package anonymizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Result is the outcome of one successful anonymization call.
type Result struct {
	OriginalText   string `json:"originalText"`
	AnonymizedText string `json:"anonymizedText"`
	ReplacedText   string `json:"replacedText"`
}

// Anonymizer is implemented by Client and by test fakes.
type Anonymizer interface {
	Anonymize(ctx context.Context, text string) (Result, error)
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string // e.g. "500 Internal Server Error"
	Body   string
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return "anonymizer: status " + status
}

// Client talks to the anonymization service's /anonymize endpoint.
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the service at baseURL (e.g. "http://localhost:3000").
// The default HTTP client has no timeout; a call waits as long as the service does.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		url:  strings.TrimRight(baseURL, "/") + "/anonymize",
		http: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// URL returns the full endpoint URL.
func (c *Client) URL() string { return c.url }

type anonymizeRequest struct {
	Text string `json:"text"`
}

type anonymizeResponse struct {
	AnonymizedText string `json:"anonymizedText"`
	ReplacedText   string `json:"replacedText"`
}

// Anonymize sends text to the service. Exactly one request is made; there are
// no retries. Missing response fields are left empty.
func (c *Client) Anonymize(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(anonymizeRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("anonymizer: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("anonymizer: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("anonymizer request", "url", c.url, "bytes", len(body))
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("anonymizer: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{}, &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out anonymizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("anonymizer: decode: %w", err)
	}

	return Result{
		OriginalText:   text,
		AnonymizedText: out.AnonymizedText,
		ReplacedText:   out.ReplacedText,
	}, nil
}
