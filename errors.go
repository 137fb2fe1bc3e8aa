package medlai

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoProviders is returned when a Resolver has an empty provider chain.
	ErrNoProviders = errors.New("no translation providers configured")

	// ErrSuperseded is returned by Pipeline when a newer submission started
	// before this one finished. The stale result must not be rendered.
	ErrSuperseded = errors.New("submission superseded by a newer request")
)

// TranslationError is the base error type for translation failures.
type TranslationError struct {
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a translation provider failure (network, non-2xx, bad payload).
type ProviderError struct {
	Provider   string
	Message    string
	StatusCode int // HTTP status, 0 when no response was received
	Cause      error
	Retryable  bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	prefix := "provider error"
	if e.Provider != "" {
		prefix = "provider error (" + e.Provider + ")"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// InputFormatError indicates structured input (JSON, XML) that could not be
// parsed. The structuring engine recovers from it by parsing the input as text.
type InputFormatError struct {
	Format string // "json" or "xml"
	Cause  error
}

func (e *InputFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input format error (%s): %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("input format error (%s)", e.Format)
}

func (e *InputFormatError) Unwrap() error {
	return e.Cause
}

// RateLimitError is returned when a request for a target language arrives
// inside the minimum interval. Callers may retry after RetryAfter.
type RateLimitError struct {
	Lang       string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited for language %q, retry after %v", e.Lang, e.RetryAfter)
}

// AllProvidersFailedError is returned when every provider in the chain failed.
type AllProvidersFailedError struct {
	Attempts []error
}

func (e *AllProvidersFailedError) Error() string {
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("all %d translation providers failed: %s", len(e.Attempts), strings.Join(msgs, "; "))
}

func (e *AllProvidersFailedError) Unwrap() []error {
	return e.Attempts
}

// IsRateLimited reports whether err is a RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
