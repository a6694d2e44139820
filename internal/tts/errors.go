package tts

import (
	"errors"
	"fmt"
)

// Request validation errors. All are detected before any provider work starts.
var (
	ErrEmptyText         = errors.New("text is empty")
	ErrTextTooLong       = errors.New("text exceeds maximum length")
	ErrBadPercent        = errors.New("value must look like +10% or -20% within ±100%")
	ErrInvalidSSML       = errors.New("ssml must be a well-formed <speak> document")
	ErrEmptyConversation = errors.New("conversation has no turns")
	ErrJobAborted        = errors.New("job aborted after too many segment failures")
	ErrUnknownJob        = errors.New("unknown request id")
)

// ValidationError wraps a request validation failure with the offending field.
type ValidationError struct {
	Field string
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error { return e.Cause }

func invalidField(field string, cause error) *ValidationError {
	return &ValidationError{Field: field, Cause: cause}
}
