package bls

import (
	"fmt"
	"strings"
)

// ValidationError reports a request that is malformed before any network
// call is made (empty or oversized series list, inverted year range). It is
// never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "bls: invalid request: " + e.Reason
}

// TransportError reports a network or decoding failure, surfaced after the
// retry policy is exhausted (or immediately for non-retryable statuses).
type TransportError struct {
	Err        error
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("bls: transport failure (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("bls: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError reports a well-formed response whose status signals a
// logical failure (for example an unknown series identifier). The provider's
// message list is passed through. It is never retried.
type ProviderError struct {
	Status   string
	Messages []string
}

func (e *ProviderError) Error() string {
	if len(e.Messages) == 0 {
		return "bls: provider error: " + e.Status
	}
	return "bls: provider error: " + strings.Join(e.Messages, "; ")
}
