package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFacade, "unknown facade: %s", "Q")

	if err.Code != ErrCodeInvalidFacade {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFacade)
	}

	if err.Message != "unknown facade: Q" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown facade: Q")
	}

	expected := "INVALID_FACADE: unknown facade: Q"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidBrief, cause, "decode brief.json")

	if err.Code != ErrCodeInvalidBrief {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidBrief)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "INVALID_BRIEF: decode brief.json: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeMissingBrief, "test"), ErrCodeMissingBrief, true},
		{"non-matching code", New(ErrCodeMissingBrief, "test"), ErrCodeInvalidTheme, false},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidBrief, "inner"), "outer"), ErrCodeInternal, true},
		{"fmt wrapped", fmt.Errorf("build: %w", New(ErrCodeMissingBrief, "nil")), ErrCodeMissingBrief, true},
		{"non-Error type", errors.New("plain error"), ErrCodeMissingBrief, false},
		{"nil error", nil, ErrCodeMissingBrief, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidSection, "test"), ErrCodeInvalidSection},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidTheme, "unknown theme: neon"), "unknown theme: neon"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
