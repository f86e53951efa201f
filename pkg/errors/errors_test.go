package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "too many nodes: %d", 900)

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGraph)
	}
	if err.Message != "too many nodes: 900" {
		t.Errorf("Message = %v, want %v", err.Message, "too many nodes: 900")
	}
	expected := "INVALID_GRAPH: too many nodes: 900"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeUpstream, cause, "model request failed")

	if err.Code != ErrCodeUpstream {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUpstream)
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
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("context: %w", New(ErrCodeBoardNotFound, "missing")),
			code:     ErrCodeBoardNotFound,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
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
	if code := GetCode(New(ErrCodeTimeout, "slow")); code != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeTimeout)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(New(ErrCodeForbidden, "no access")); msg != "no access" {
		t.Errorf("UserMessage() = %v, want %v", msg, "no access")
	}
	if msg := UserMessage(errors.New("plain")); msg != "plain" {
		t.Errorf("UserMessage() = %v, want %v", msg, "plain")
	}
}

func TestRateLimitedError(t *testing.T) {
	err := &RateLimitedError{RetryAfter: 30}
	if err.Error() != "rate limited: retry after 30 seconds" {
		t.Errorf("Error() = %v", err.Error())
	}
	if err.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRateLimited)
	}

	bare := &RateLimitedError{}
	if bare.Error() != "rate limited" {
		t.Errorf("Error() = %v, want %v", bare.Error(), "rate limited")
	}
}
