package intake

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileNameHeader carries the file name on drag-and-drop uploads, URL-escaped.
const FileNameHeader = "X-File-Name"

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// multipartOverhead is the allowance for boundaries and part headers on top
// of the file limit.
const multipartOverhead = 64 << 10

// FromMultipart reads the file-picker upload in form field `field`.
// maxBytes <= 0 disables the size limit; otherwise it applies to the file
// itself, not the multipart envelope. The returned File's body is only valid
// until the request ends and implements io.Closer.
func FromMultipart(w http.ResponseWriter, r *http.Request, field string, maxBytes int64) (File, error) {
	if maxBytes > 0 {
		if r.ContentLength > maxBytes+multipartOverhead {
			return File{}, ErrTooLarge
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	}
	fh, hdr, err := r.FormFile(field)
	if err != nil {
		switch {
		case tooLarge(err):
			return File{}, ErrTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return File{}, ErrNoFile
		}
		return File{}, fmt.Errorf("intake: multipart: %w", err)
	}
	if maxBytes > 0 && hdr.Size > maxBytes {
		fh.Close()
		return File{}, ErrTooLarge
	}
	return File{
		Name:      hdr.Filename,
		MediaType: hdr.Header.Get("Content-Type"),
		Size:      hdr.Size,
		Body:      fh,
	}, nil
}

// FromRequestBody reads a drag-and-drop upload: the raw file is the request
// body, its name is in FileNameHeader and its type in Content-Type. An empty
// body is an empty file; only a request with neither a body nor a file name
// carries no file.
func FromRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) (File, error) {
	name := r.Header.Get(FileNameHeader)
	noBody := r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0
	if name == "" && noBody {
		return File{}, ErrNoFile
	}
	body := r.Body
	if body == nil {
		body = http.NoBody
	}
	if maxBytes > 0 {
		if r.ContentLength > maxBytes {
			return File{}, ErrTooLarge
		}
		body = http.MaxBytesReader(w, body, maxBytes)
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name != "" {
		name = filepath.Base(name)
	}
	return File{
		Name:      name,
		MediaType: r.Header.Get("Content-Type"),
		Size:      r.ContentLength,
		Body:      body,
	}, nil
}

// Open opens a local file. The media type is guessed from the extension.
// The caller closes the returned file.
func Open(path string) (File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("intake: open: %w", err)
	}
	size := int64(-1)
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}
	ext := strings.ToLower(filepath.Ext(path))
	mediaType := mime.TypeByExtension(ext)
	if mediaType == "" && ext == ".txt" {
		// not every system mime table lists .txt
		mediaType = "text/plain; charset=utf-8"
	}
	return File{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Size:      size,
		Body:      f,
	}, f, nil
}
