// Package intake accepts uploaded text files. The file picker, drag-and-drop
// and the CLI each build a File and hand it to Accept, which validates the
// type, decodes the bytes and invokes the callback exactly once.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnsupportedType is returned for files that are neither text/plain nor *.txt.
	ErrUnsupportedType = errors.New("please upload a .txt file")
	// ErrTooLarge is returned when an upload exceeds the configured limit.
	ErrTooLarge = errors.New("file is too large")
	// ErrNoFile is returned when a request carries no file.
	ErrNoFile = errors.New("no file provided")
)

// File is an uploaded file before decoding.
type File struct {
	Name      string
	MediaType string // as declared by the client, parameters allowed
	Size      int64  // -1 when unknown
	Body      io.Reader
}

// baseMediaType strips parameters and lowercases: "Text/Plain; charset=utf-8" → "text/plain".
func baseMediaType(ct string) string {
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// Validate accepts files declared as text/plain or named *.txt.
func Validate(f File) error {
	if baseMediaType(f.MediaType) == "text/plain" || strings.HasSuffix(f.Name, ".txt") {
		return nil
	}
	return ErrUnsupportedType
}

// Decode reads r as text. UTF-8 is assumed; a UTF-8 BOM is dropped and a
// UTF-16 BOM switches decoding to UTF-16. Invalid bytes become U+FFFD.
func Decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("intake: decode: %w", err)
	}
	return string(b), nil
}

// Accept validates f, decodes its body and calls onText once with the text.
// onText is not called when validation or decoding fails.
func Accept(ctx context.Context, f File, onText func(context.Context, string) error) error {
	if err := Validate(f); err != nil {
		return err
	}
	if f.Body == nil {
		return ErrNoFile
	}
	text, err := Decode(f.Body)
	if err != nil {
		if tooLarge(err) {
			return ErrTooLarge
		}
		return err
	}
	return onText(ctx, text)
}
