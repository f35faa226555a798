package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonkalabs/noface/internal/anonymizer"
	"github.com/gonkalabs/noface/internal/intake"
	"github.com/gonkalabs/noface/internal/render"
)

// isolateEnv clears the variables config.Load reads so the host environment
// does not leak into command tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ANONYMIZER_URL", "PORT", "LOG_LEVEL", "LOG_FILE",
		"CORS_ALLOW_ALL", "MAX_UPLOAD_BYTES", "SESSION_TTL",
	} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())
}

func anonymizerServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "unavailable", status)
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"anonymizedText": "Hello $[NAME], born $[DATE-OF-BIRTH].",
			"replacedText":   "Hello Piotr, born 1985-05-12.",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnonymizeText(t *testing.T) {
	isolateEnv(t)
	srv := anonymizerServer(t, http.StatusOK)
	in := writeFile(t, "notes.txt", "Hello Jan, born 1990-01-01.")

	out, err := runRoot(t, "anonymize", in, "--no-color", "--anonymizer-url", srv.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "notes.txt (27 B): 2 entities redacted [NAME, DATE-OF-BIRTH]")
	assert.Contains(t, out, render.TitleOriginal+"\nHello Jan, born 1990-01-01.")
	assert.Contains(t, out, render.TitleAnonymized+"\nHello $[NAME], born $[DATE-OF-BIRTH].")
	assert.Contains(t, out, render.TitleReplaced+"\nHello Piotr, born 1985-05-12.")
	assert.NotContains(t, out, "\x1b[")
}

func TestAnonymizeURLFromEnv(t *testing.T) {
	isolateEnv(t)
	srv := anonymizerServer(t, http.StatusOK)
	t.Setenv("ANONYMIZER_URL", srv.URL+"/anonymize")
	in := writeFile(t, "notes.txt", "Hello Jan.")

	_, err := runRoot(t, "anonymize", in, "--no-color")
	require.NoError(t, err)
}

func TestAnonymizeMarkdownToFile(t *testing.T) {
	isolateEnv(t)
	srv := anonymizerServer(t, http.StatusOK)
	in := writeFile(t, "notes.txt", "Hello Jan, born 1990-01-01.")
	outPath := filepath.Join(t.TempDir(), "reports", "notes.md")

	out, err := runRoot(t, "anonymize", in, "--format", "markdown", "-o", outPath, "--anonymizer-url", srv.URL)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# NoFace Report")
	assert.Contains(t, string(b), "## Entity Types")
}

func TestAnonymizeRejectsNonText(t *testing.T) {
	isolateEnv(t)
	srv := anonymizerServer(t, http.StatusOK)
	in := writeFile(t, "data.csv", "a,b,c")

	_, err := runRoot(t, "anonymize", in, "--anonymizer-url", srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, intake.ErrUnsupportedType)
}

func TestAnonymizeServiceError(t *testing.T) {
	isolateEnv(t)
	srv := anonymizerServer(t, http.StatusInternalServerError)
	in := writeFile(t, "notes.txt", "Hello Jan.")

	_, err := runRoot(t, "anonymize", in, "--anonymizer-url", srv.URL)
	var se *anonymizer.StatusError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
}

func TestAnonymizeUnknownFormat(t *testing.T) {
	isolateEnv(t)
	in := writeFile(t, "notes.txt", "Hello Jan.")

	_, err := runRoot(t, "anonymize", in, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestAnonymizeMissingFile(t *testing.T) {
	isolateEnv(t)
	_, err := runRoot(t, "anonymize", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
