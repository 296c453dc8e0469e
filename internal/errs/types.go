// Package errs defines the error taxonomy for the sync layer and the
// recoverable/irrecoverable classification the retry policy keys off.
package errs

import (
	"errors"
	"fmt"
)

// ErrAuthRequired means the remote rejected the credentials. Terminal for
// the current operation: never retried, surfaced immediately.
var ErrAuthRequired = errors.New("authentication required")

// ErrNotFound is returned when an operation names a record that is not
// present in the local collection.
var ErrNotFound = errors.New("record not found")

// NetworkError wraps a transport-level failure (DNS, connect, timeout).
// Always considered transient.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: network error: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a non-2xx response from the remote record source.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote status %d", e.Op, e.StatusCode)
}

// ValidationError rejects malformed numeric filter input. Surfaced
// synchronously; the filter state it would have produced is never applied.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid numeric filter for %s: %q", e.Field, e.Value)
}

// IsRecoverable reports whether the retry policy may re-issue the failed
// request. Auth failures and client errors are not worth repeating; network
// failures and server errors are.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrNotFound) {
		return false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false
	}
	var re *RemoteError
	if errors.As(err, &re) {
		switch {
		case re.StatusCode == 408, re.StatusCode == 429:
			return true
		case re.StatusCode >= 400 && re.StatusCode < 500:
			return false
		default:
			return true
		}
	}
	return true
}
