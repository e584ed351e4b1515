package llm

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Sentinel generation errors. Providers wrap these so callers can branch with
// errors.Is instead of parsing provider-specific payloads.
var (
	// ErrTimeout: the generation call did not complete in time. Retriable.
	ErrTimeout = errors.New("generation timed out")

	// ErrRateLimited: the endpoint rejected the call for quota reasons. Retriable.
	ErrRateLimited = errors.New("generation rate limited")

	// ErrContextTooLarge: the prompt exceeds the model's context window.
	// Not retriable; the caller must shrink the prompt.
	ErrContextTooLarge = errors.New("generation context too large")
)

// IsTransient reports whether err is worth retrying (timeout or rate limit).
func IsTransient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited)
}

// ClassifyTransportErr maps transport-level failures onto sentinels.
func ClassifyTransportErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return err
}

// ClassifyStatus maps HTTP status codes and error bodies onto sentinels.
// Returns nil when the status carries no known classification.
func ClassifyStatus(statusCode int, body string) error {
	switch {
	case statusCode == 429:
		return ErrRateLimited
	case statusCode == 408 || statusCode == 504:
		return ErrTimeout
	case statusCode == 413:
		return ErrContextTooLarge
	case statusCode == 400 && mentionsContextLimit(body):
		return ErrContextTooLarge
	}
	return nil
}

func mentionsContextLimit(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "context length") ||
		strings.Contains(lower, "context window") ||
		strings.Contains(lower, "too many tokens") ||
		strings.Contains(lower, "maximum context")
}
