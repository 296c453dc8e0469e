package mealsync

import (
	"errors"

	"github.com/platefeed/platefeed-sync/internal/errs"
	"github.com/platefeed/platefeed-sync/internal/shardqueue"
)

// Re-export shared errors so callers compare against a single symbol.
var (
	// ErrAuthRequired means the remote rejected the credentials. Never
	// retried; surface it as a login prompt.
	ErrAuthRequired = errs.ErrAuthRequired

	// ErrNotFound is returned by mutations naming a record that is not
	// present in the local collection.
	ErrNotFound = errs.ErrNotFound

	// ErrBackPressure is returned when the background queue is full.
	ErrBackPressure = shardqueue.ErrQueueFull
)

// Typed errors callers may inspect with errors.As.
type (
	NetworkError    = errs.NetworkError
	RemoteError     = errs.RemoteError
	ValidationError = errs.ValidationError
)

// IsAuthRequired reports whether err demands re-authentication.
func IsAuthRequired(err error) bool { return errors.Is(err, ErrAuthRequired) }

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// IsRetryable reports whether the error class would have been retried by
// the automatic policy; callers use it to decide whether to offer a manual
// retry affordance.
func IsRetryable(err error) bool { return errs.IsRecoverable(err) }
