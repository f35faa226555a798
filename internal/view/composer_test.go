package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonkalabs/noface/internal/anonymizer"
)

// fakeAnonymizer returns a fixed result or error.
type fakeAnonymizer struct {
	res   anonymizer.Result
	err   error
	calls atomic.Int32
	gate  chan struct{} // when set, Anonymize blocks until it is closed
}

func (f *fakeAnonymizer) Anonymize(_ context.Context, text string) (anonymizer.Result, error) {
	f.calls.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return anonymizer.Result{}, f.err
	}
	r := f.res
	r.OriginalText = text
	return r, nil
}

func TestComposerStartsInUpload(t *testing.T) {
	c := NewComposer()
	s := c.Snapshot()
	assert.Equal(t, StateUpload, s.State)
	assert.False(t, s.Processing)
	assert.Nil(t, s.Result)
}

func TestComposerSubmitSuccess(t *testing.T) {
	c := NewComposer()
	fa := &fakeAnonymizer{res: anonymizer.Result{AnonymizedText: "A", ReplacedText: "B"}}

	require.NoError(t, c.Submit(context.Background(), "X", fa))

	s := c.Snapshot()
	assert.Equal(t, StateResults, s.State)
	assert.False(t, s.Processing)
	require.NotNil(t, s.Result)
	assert.Equal(t, anonymizer.Result{OriginalText: "X", AnonymizedText: "A", ReplacedText: "B"}, *s.Result)
}

func TestComposerSubmitFailureStaysInUpload(t *testing.T) {
	c := NewComposer()
	boom := &anonymizer.StatusError{Code: 500}
	fa := &fakeAnonymizer{err: boom}

	err := c.Submit(context.Background(), "X", fa)
	assert.True(t, errors.Is(err, boom))

	s := c.Snapshot()
	assert.Equal(t, StateUpload, s.State)
	assert.False(t, s.Processing)
	assert.Nil(t, s.Result)
}

func TestComposerClearAfterSuccess(t *testing.T) {
	c := NewComposer()
	c.SetFile("notes.txt", 12)
	require.NoError(t, c.Submit(context.Background(), "X", &fakeAnonymizer{}))
	require.Equal(t, StateResults, c.Snapshot().State)

	c.Clear()

	s := c.Snapshot()
	assert.Equal(t, StateUpload, s.State)
	assert.Nil(t, s.Result)
	assert.False(t, s.Processing)
	assert.Empty(t, s.FileName)
}

func TestComposerClearInUploadIsNoop(t *testing.T) {
	c := NewComposer()
	c.SetFile("notes.txt", 12)
	before := c.Snapshot()

	c.Clear()

	assert.Equal(t, before, c.Snapshot())
}

func TestComposerRejectsOverlappingSubmit(t *testing.T) {
	c := NewComposer()
	fa := &fakeAnonymizer{gate: make(chan struct{})}

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "first", fa) }()

	require.Eventually(t, func() bool { return c.Snapshot().Processing }, time.Second, time.Millisecond)

	err := c.Submit(context.Background(), "second", fa)
	assert.ErrorIs(t, err, ErrBusy)

	close(fa.gate)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), fa.calls.Load())
	s := c.Snapshot()
	assert.False(t, s.Processing)
	require.NotNil(t, s.Result)
	assert.Equal(t, "first", s.Result.OriginalText)
}

func TestComposerClearDoesNotCancelInFlight(t *testing.T) {
	c := NewComposer()
	fa := &fakeAnonymizer{gate: make(chan struct{})}

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "X", fa) }()
	require.Eventually(t, func() bool { return c.Snapshot().Processing }, time.Second, time.Millisecond)

	c.Clear()
	assert.True(t, c.Snapshot().Processing)

	close(fa.gate)
	require.NoError(t, <-done)
	assert.Equal(t, StateResults, c.Snapshot().State)
}

func TestStateText(t *testing.T) {
	b, err := StateResults.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "results", string(b))
	assert.Equal(t, "upload", StateUpload.String())
}

func TestStateUnmarshalText(t *testing.T) {
	var s State
	require.NoError(t, s.UnmarshalText([]byte("results")))
	assert.Equal(t, StateResults, s)
	assert.Error(t, s.UnmarshalText([]byte("nope")))
}

func TestSetFileIgnoredWhileProcessing(t *testing.T) {
	c := NewComposer()
	fa := &fakeAnonymizer{gate: make(chan struct{})}
	c.SetFile("first.txt", 1)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "X", fa) }()
	require.Eventually(t, func() bool { return c.Snapshot().Processing }, time.Second, time.Millisecond)

	c.SetFile("second.txt", 2)
	close(fa.gate)
	require.NoError(t, <-done)
	assert.Equal(t, "first.txt", c.Snapshot().FileName)
}
