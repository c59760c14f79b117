package maperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without details",
			err:      New("DM-TEST-1000", "test message"),
			expected: "[DM-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      New("DM-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[DM-TEST-1001] test message: extra info",
		},
		{
			name:     "formatted details",
			err:      ErrIndexOutOfRange.WithDetailsf("domain %d >= %d", 20, 20),
			expected: "[DM-ARG-4001] index out of range: domain 20 >= 20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	withDetails := ErrKeyNotFound.WithDetails("key 500")

	if !errors.Is(withDetails, ErrKeyNotFound) {
		t.Error("errors.Is should match on code regardless of details")
	}
	if errors.Is(withDetails, ErrIndexOutOfRange) {
		t.Error("errors.Is should not match a different code")
	}
	if errors.Is(withDetails, fmt.Errorf("key not found")) {
		t.Error("errors.Is should not match a plain error")
	}

	wrapped := fmt.Errorf("get: %w", withDetails)
	if !errors.Is(wrapped, ErrKeyNotFound) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrInvalidArgument.WithCause(cause)

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if errors.Unwrap(ErrInvalidArgument) != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestError_CopiesDoNotMutate(t *testing.T) {
	_ = ErrKeyNotFound.WithDetails("x").WithCause(errors.New("y"))

	if ErrKeyNotFound.Details != "" || ErrKeyNotFound.Cause != nil {
		t.Error("sentinel was modified by WithDetails/WithCause")
	}
}

func TestCodeAndHas(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"sentinel", ErrKeyNotFound, "DM-KEY-4040"},
		{"wrapped", fmt.Errorf("op: %w", ErrIndexOutOfRange), "DM-ARG-4001"},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.code {
				t.Errorf("Code() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Has(tt.err, tt.code) {
				t.Errorf("Has(%v, %q) = false, want true", tt.err, tt.code)
			}
			if got := Has(tt.err, ""); got != (tt.code != "") {
				t.Errorf("Has(%v, \"\") = %v", tt.err, got)
			}
		})
	}
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err  *Error
		code string
	}{
		{ErrInvalidArgument, "DM-ARG-4000"},
		{ErrIndexOutOfRange, "DM-ARG-4001"},
		{ErrKeyNotFound, "DM-KEY-4040"},
		{ErrDereferenceAtEnd, "DM-ITER-5000"},
	}

	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("%s: code = %q, want %q", tt.err.Message, tt.err.Code, tt.code)
		}
	}
}
