package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFetchError_Reason(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *FetchError
		want string
	}{
		{
			name: "timeout",
			err:  NewFetchError(ErrTimeout, "http://x/a", errors.New("context deadline exceeded")),
			want: "timeout",
		},
		{
			name: "http status",
			err:  &FetchError{Kind: ErrHTTPStatus, URL: "http://x/a", Status: 502},
			want: "HTTP 502",
		},
		{
			name: "transport with cause",
			err:  NewFetchError(ErrTransport, "http://x/a", cause),
			want: "transport error: connection refused",
		},
		{
			name: "cause already wraps kind",
			err:  NewFetchError(ErrParse, "http://x/a", fmt.Errorf("%w: unexpected end of input", ErrParse)),
			want: "parse error: unexpected end of input",
		},
		{
			name: "kind only",
			err:  NewFetchError(ErrParse, "http://x/a", nil),
			want: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchError_IsAndAs(t *testing.T) {
	cause := errors.New("boom")
	var err error = fmt.Errorf("panel pl: %w", NewFetchError(ErrTransport, "http://x/pl", cause))

	if !errors.Is(err, ErrTransport) {
		t.Error("expected errors.Is(err, ErrTransport)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is(err, cause)")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("did not expect errors.Is(err, ErrTimeout)")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to find *FetchError")
	}
	if fe.URL != "http://x/pl" {
		t.Errorf("URL = %q, want http://x/pl", fe.URL)
	}
}
