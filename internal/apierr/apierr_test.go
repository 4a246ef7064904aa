package apierr_test

import (
	"errors"
	"fmt"
	"testing"

	"taskflow/internal/apierr"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   apierr.Kind
	}{
		{400, apierr.ValidationFailed},
		{401, apierr.Unauthorized},
		{403, apierr.Unauthorized},
		{404, apierr.NotFound},
		{409, apierr.Conflict},
		{429, apierr.RateLimited},
		{500, apierr.Unknown},
		{502, apierr.Unknown},
	}
	for _, tt := range tests {
		err := apierr.FromStatus(tt.status, "body")
		if got := apierr.KindOf(err); got != tt.want {
			t.Errorf("FromStatus(%d) kind = %v, want %v", tt.status, got, tt.want)
		}
		if err.StatusCode != tt.status {
			t.Errorf("FromStatus(%d) status = %d", tt.status, err.StatusCode)
		}
	}
}

func TestErrorString(t *testing.T) {
	if got := apierr.FromStatus(404, "todo not found").Error(); got != "HTTP 404: todo not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := apierr.FromStatus(500, "").Error(); got != "HTTP 500: Internal Server Error" {
		t.Errorf("Error() = %q", got)
	}
	if got := apierr.Network(errors.New("dial tcp: refused")).Error(); got != "dial tcp: refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf_WrappedAndForeign(t *testing.T) {
	wrapped := fmt.Errorf("list todos: %w", apierr.FromStatus(401, ""))
	if got := apierr.KindOf(wrapped); got != apierr.Unauthorized {
		t.Errorf("wrapped kind = %v, want Unauthorized", got)
	}
	if got := apierr.KindOf(errors.New("plain")); got != apierr.Unknown {
		t.Errorf("foreign error kind = %v, want Unknown", got)
	}
	if apierr.IsKind(nil, apierr.Unknown) {
		t.Error("IsKind(nil, ...) must be false")
	}
}

func TestNetworkUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := apierr.Network(cause)
	if !errors.Is(err, cause) {
		t.Error("Network must preserve the cause for errors.Is")
	}
	if !apierr.IsKind(err, apierr.NetworkFailure) {
		t.Error("expected NetworkFailure")
	}
}
