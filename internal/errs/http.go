package errs

import "net/http"

// FromStatus maps a non-2xx response to the taxonomy. 401 and 403 become
// ErrAuthRequired so callers can branch on a single sentinel.
func FromStatus(op string, status int, body string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthRequired
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &RemoteError{Op: op, StatusCode: status, Body: body}
	}
}

// Network wraps a transport failure for op.
func Network(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}
