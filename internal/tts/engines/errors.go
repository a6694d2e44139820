package engines

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common provider errors.
var (
	ErrNoAudio      = errors.New("provider returned no audio data")
	ErrVoiceUnknown = errors.New("provider rejected the requested voice")
)

// SynthesisError wraps a provider failure with a transience classification.
// Transient failures (timeouts, transport faults) may be retried with unchanged
// parameters; permanent failures (rejected voice, malformed SSML) may not.
type SynthesisError struct {
	Transient bool
	Voice     string
	Cause     error
}

// Error implements the error interface.
func (e *SynthesisError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.Voice != "" {
		return fmt.Sprintf("synthesis failed (%s, voice %s): %v", kind, e.Voice, e.Cause)
	}
	return fmt.Sprintf("synthesis failed (%s): %v", kind, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SynthesisError) Unwrap() error { return e.Cause }

// NewTransient wraps err as a retryable synthesis failure.
func NewTransient(voice string, err error) *SynthesisError {
	return &SynthesisError{Transient: true, Voice: voice, Cause: err}
}

// NewPermanent wraps err as a non-retryable synthesis failure.
func NewPermanent(voice string, err error) *SynthesisError {
	return &SynthesisError{Transient: false, Voice: voice, Cause: err}
}

// IsTransient reports whether err should be retried. Deadline and transport
// errors count as transient even when a provider did not classify them.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *SynthesisError
	if errors.As(err, &se) {
		return se.Transient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return false
}
