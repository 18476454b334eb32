// ABOUTME: Error taxonomy shared by all engine components
// ABOUTME: Faults are typed at the point of detection, never inferred from message text
package faults

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned synchronously when a command arrives while
	// another command is still in flight. The engine rejects rather than
	// queues.
	ErrBusy = errors.New("engine busy: another operation is in flight")

	// ErrEmbeddingUnavailable indicates the embedder was invoked before a
	// successful initialize. This is a sequencing fault and should not
	// occur under correct engine use.
	ErrEmbeddingUnavailable = errors.New("embedding model not initialized")

	// ErrEmptyAnswer indicates a provider returned a syntactically valid
	// but empty response.
	ErrEmptyAnswer = errors.New("provider returned an empty answer")
)

// ConfigurationFault names a missing or invalid configuration field for
// the selected provider or embedding model. It is detected before any
// network call is attempted.
type ConfigurationFault struct {
	Field string
	// Reason is set when the field is present but invalid.
	Reason string
}

func (e *ConfigurationFault) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("configuration fault: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("configuration fault: %s is not set", e.Field)
}

// LibraryLoadFault wraps an embedding or SDK initialization failure. It is
// fatal to the current initialize attempt and recoverable by retrying
// initialize.
type LibraryLoadFault struct {
	Library string
	Err     error
}

func (e *LibraryLoadFault) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Library, e.Err)
}

func (e *LibraryLoadFault) Unwrap() error { return e.Err }

// StorageError wraps a persistence-layer I/O failure. The store is left in
// its last-known-good state; per-record atomicity is the only guarantee.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ProviderError wraps a network failure, non-2xx HTTP status, or
// provider-reported block from an LLM backend. Never retried
// automatically.
type ProviderError struct {
	Provider string
	// Status is the HTTP status code, or 0 when the failure happened
	// before a status was received.
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s API error (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsConfiguration reports whether err is (or wraps) a ConfigurationFault.
func IsConfiguration(err error) bool {
	var cf *ConfigurationFault
	return errors.As(err, &cf)
}

// IsProvider reports whether err is (or wraps) a ProviderError.
func IsProvider(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
