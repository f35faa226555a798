// Package view holds the per-session UI state: which view is shown, whether
// an anonymization request is in flight, and the last result.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gonkalabs/noface/internal/anonymizer"
)

// ErrBusy is returned by Submit while another request is in flight.
var ErrBusy = errors.New("view: anonymization already in progress")

// State is the view currently shown.
type State int

const (
	StateUpload State = iota
	StateResults
)

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StateResults:
		return "results"
	}
	return "unknown"
}

// MarshalText renders the state as "upload" or "results" in JSON.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "upload":
		*s = StateUpload
	case "results":
		*s = StateResults
	default:
		return fmt.Errorf("view: unknown state %q", b)
	}
	return nil
}

// Snapshot is a consistent copy of a Composer's state.
type Snapshot struct {
	State      State              `json:"state"`
	Processing bool               `json:"isProcessing"`
	FileName   string             `json:"fileName,omitempty"`
	FileSize   int64              `json:"fileSize,omitempty"`
	Result     *anonymizer.Result `json:"result"`
}

// Composer is the Upload/Results state machine for one session.
// result is non-nil exactly when the state is Results.
type Composer struct {
	mu         sync.Mutex
	processing bool
	result     *anonymizer.Result
	fileName   string
	fileSize   int64
}

// NewComposer returns a Composer in the Upload state.
func NewComposer() *Composer {
	return &Composer{}
}

// SetFile records the name and size of the file being processed, for display.
// It is ignored while a request is in flight.
func (c *Composer) SetFile(name string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processing {
		return
	}
	c.fileName = name
	c.fileSize = size
}

// Submit sends text to a and moves to Results on success. On failure the error
// is logged, the Composer stays in Upload and the error is returned.
// Submit returns ErrBusy without calling a if a request is already running.
func (c *Composer) Submit(ctx context.Context, text string, a anonymizer.Anonymizer) error {
	c.mu.Lock()
	if c.processing {
		c.mu.Unlock()
		return ErrBusy
	}
	c.processing = true
	c.mu.Unlock()

	res, err := a.Anonymize(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing = false
	if err != nil {
		slog.Error("error processing text", "err", err)
		return err
	}
	c.result = &res
	return nil
}

// Clear returns to the Upload state. It is a no-op in Upload and does not
// affect a request that is still in flight.
func (c *Composer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return
	}
	c.result = nil
	c.fileName = ""
	c.fileSize = 0
}

// Snapshot returns the current state.
func (c *Composer) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		State:      StateUpload,
		Processing: c.processing,
		FileName:   c.fileName,
		FileSize:   c.fileSize,
		Result:     c.result,
	}
	if c.result != nil {
		s.State = StateResults
	}
	return s
}
