package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the input does not contain a usable host.
	// The message is surfaced verbatim in classification results.
	ErrEmptyInput = errors.New("Empty input") //nolint:staticcheck
	// ErrUnexpectedStatus is recorded when a candidate responds with status >= 400
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrEmptyBody is recorded when a candidate responds without a body
	ErrEmptyBody = errors.New("empty response body")
)

// FetchError is returned when every candidate URL failed. It carries the last
// underlying failure.
type FetchError struct {
	// Candidates are the URLs that were attempted, in order
	Candidates []string
	// Last is the failure from the final attempt
	Last error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("Cannot access website (%v)", e.Last)
}

// Unwrap returns the last underlying failure
func (e *FetchError) Unwrap() error {
	return e.Last
}

// statusError reports a candidate that responded with an error status
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func (e *statusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// emptyBodyError reports a candidate that responded below 400 without a body
type emptyBodyError struct {
	code int
}

func (e *emptyBodyError) Error() string {
	return fmt.Sprintf("HTTP %d", e.code)
}

func (e *emptyBodyError) Unwrap() error {
	return ErrEmptyBody
}
