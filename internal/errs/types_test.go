package errs

import (
	"errors"
	"testing"
)

func TestIsRecoverable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"auth", ErrAuthRequired, false},
		{"not found", ErrNotFound, false},
		{"validation", &ValidationError{Field: "calories", Value: "x"}, false},
		{"network", &NetworkError{Op: "query", Err: errors.New("refused")}, true},
		{"server error", &RemoteError{Op: "query", StatusCode: 500}, true},
		{"rate limited", &RemoteError{Op: "query", StatusCode: 429}, true},
		{"timeout", &RemoteError{Op: "query", StatusCode: 408}, true},
		{"bad request", &RemoteError{Op: "query", StatusCode: 400}, false},
		{"unclassified", errors.New("boom"), true},
	}
	for _, tc := range cases {
		if got := IsRecoverable(tc.err); got != tc.want {
			t.Errorf("%s: IsRecoverable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFromStatus(t *testing.T) {
	if !errors.Is(FromStatus("op", 401, ""), ErrAuthRequired) {
		t.Fatal("401 should map to ErrAuthRequired")
	}
	if !errors.Is(FromStatus("op", 403, ""), ErrAuthRequired) {
		t.Fatal("403 should map to ErrAuthRequired")
	}
	if !errors.Is(FromStatus("op", 404, ""), ErrNotFound) {
		t.Fatal("404 should map to ErrNotFound")
	}
	var re *RemoteError
	if err := FromStatus("op", 503, "unavailable"); !errors.As(err, &re) || re.StatusCode != 503 {
		t.Fatalf("503 should map to *RemoteError, got %v", err)
	}
}
