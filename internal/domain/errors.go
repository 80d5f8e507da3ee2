package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoAuthors indicates that the initial author listing produced no
	// authors; fatal to the run since there is nothing to process.
	ErrNoAuthors = errors.New("no authors found")

	// ErrFetchFailed indicates that a fetch exhausted its retries.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrMalformedResponse indicates an external payload that does not
	// match the expected schema.
	ErrMalformedResponse = errors.New("malformed response")
)

// FetchError records a fetch that failed after exhausting its retries.
// The caller decides whether the failure is fatal (author listing) or a
// skip (per-work enrichment).
type FetchError struct {
	URL      string
	Attempts int
	Cause    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Cause)
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *FetchError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrFetchFailed
}

// Is reports whether the target matches the ErrFetchFailed sentinel.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// MappingError records an external record that could not be mapped into an
// internal one (missing results field, wrong shapes). It carries enough
// context to reproduce: the source name and the unit identifier.
type MappingError struct {
	Source string
	ID     string
	Cause  error
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	return fmt.Sprintf("%s: cannot map record %q: %v", e.Source, e.ID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *MappingError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrMalformedResponse
}

// NewFetchError creates a FetchError.
func NewFetchError(url string, attempts int, cause error) *FetchError {
	return &FetchError{URL: url, Attempts: attempts, Cause: cause}
}

// NewMappingError creates a MappingError.
func NewMappingError(source, id string, cause error) *MappingError {
	return &MappingError{Source: source, ID: id, Cause: cause}
}
