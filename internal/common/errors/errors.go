// Package errors provides standardized error handling for the medical chat core.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"
	ErrCodeIntentOutOfRange     ErrorCode = "INTENT_OUT_OF_RANGE"

	ErrCodeModelResponseParse ErrorCode = "MODEL_RESPONSE_PARSE_FAILED"
	ErrCodeTemplateNotFound   ErrorCode = "TEMPLATE_NOT_FOUND"

	ErrCodeUpstreamTimeout ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeUpstreamFailed  ErrorCode = "UPSTREAM_FAILED"

	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionComplete ErrorCode = "SESSION_COMPLETE"
	ErrCodeStoreFailed     ErrorCode = "STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryableByDefault(code),
		Timestamp: time.Now(),
	}
}

// Wrap creates a StandardError that wraps an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *StandardError {
	e := New(code, message)
	e.cause = cause
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// CodeOf extracts the ErrorCode from err, or empty when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether the error is safe to retry at the turn level.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

func retryableByDefault(code ErrorCode) bool {
	switch code {
	case ErrCodeUpstreamTimeout, ErrCodeUpstreamFailed, ErrCodeStoreFailed:
		return true
	}
	return false
}
