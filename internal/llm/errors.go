package llm

import (
	"errors"
	"fmt"
)

// Kind is the closed set of completion-capability failures. Callers
// match with errors.As on *Error, never by string comparison.
type Kind int

const (
	// KindAuth is a missing or invalid credential. Non-retryable and
	// fatal to the whole pipeline.
	KindAuth Kind = iota + 1
	// KindRateLimit is a provider rate-limit response, retryable with
	// backoff.
	KindRateLimit
	// KindMaxRetries means the provider rate-limited every attempt.
	KindMaxRetries
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindMaxRetries:
		return "max_retries"
	default:
		return "unknown"
	}
}

// Error carries a failure kind plus structured context.
type Error struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("llm %s after %d attempts: %v", e.Kind, e.Attempts, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind extracts the failure kind from an error chain, or 0 when the
// error is not a classified completion failure.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
