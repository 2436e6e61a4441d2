package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidScene, "test message: %s", "value")

	if err.Code != ErrCodeInvalidScene {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScene)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_SCENE: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidScene, cause, "element e1")

	if err.Code != ErrCodeInvalidScene {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidScene)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
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
			err:      New(ErrCodeInvalidScene, "test"),
			code:     ErrCodeInvalidScene,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidScene, "test"),
			code:     ErrCodeInvalidFormat,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidScene, New(ErrCodeInvalidColor, "inner"), "outer"),
			code:     ErrCodeInvalidScene,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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

func TestHas(t *testing.T) {
	err := Wrap(ErrCodeInvalidScene, New(ErrCodeInvalidColor, "bad hex"), "element e1")

	if !Has(err, ErrCodeInvalidColor) {
		t.Error("Has(err, INVALID_COLOR) = false, want true")
	}
	if !Has(err, ErrCodeInvalidScene) {
		t.Error("Has(err, INVALID_SCENE) = false, want true")
	}
	if Has(err, ErrCodeInvalidFormat) {
		t.Error("Has(err, INVALID_FORMAT) = true, want false")
	}
	if Has(nil, ErrCodeInvalidScene) {
		t.Error("Has(nil) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFormat, "test"),
			expected: ErrCodeInvalidFormat,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "wrapped Error",
			err:      Wrap(ErrCodeInvalidScene, New(ErrCodeInvalidColor, "bad hex \"#zz\""), "element e1"),
			expected: "element e1: bad hex \"#zz\"",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidScene, "x")) {
		t.Error("INVALID_SCENE should be a validation error")
	}
	if !IsValidation(New(ErrCodeInvalidFormat, "x")) {
		t.Error("INVALID_FORMAT should be a validation error")
	}
	if IsValidation(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be a validation error")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain errors should not be validation errors")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidScene,
		ErrCodeInvalidColor,
		ErrCodeInvalidFormat,
		ErrCodeInvalidGuidelines,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
