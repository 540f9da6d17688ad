package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a request carries no analyzable text.
// It is the only failure Analyze surfaces to the caller.
var ErrInvalidInput = errors.New("no text to analyze")

// BackendError wraps a remote scoring/summarization/claim failure.
// These are always recovered via the fallback chain, never surfaced.
type BackendError struct {
	Provider   string
	Capability string
	Err        error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Capability, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// FetchError wraps a URL retrieval failure. With no text to analyze the
// request is rejected, so this one does reach the caller.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
