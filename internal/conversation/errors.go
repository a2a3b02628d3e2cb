// ABOUTME: Outcome types and sentinel errors for message dispatch
// ABOUTME: Dropped sends are reported through Result, never returned as failures

package conversation

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyInput is set on a Result when the text was blank after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is set on a Result when another send was still pending.
	ErrBusy = errors.New("send already in progress")
	// ErrNothingToRetry is set on a Result when Retry had no utterance to replay.
	ErrNothingToRetry = errors.New("nothing to retry")
	// ErrNoReply is used when the sender returned neither a reply nor an error.
	ErrNoReply = errors.New("Failed to get response from AI") //nolint:staticcheck // shown to users verbatim
)

// FallbackReason is shown when a failure carries no usable message.
const FallbackReason = "An unexpected error occurred"

// Status classifies the outcome of Send or Retry.
type Status string

const (
	StatusDelivered      Status = "delivered"
	StatusFailed         Status = "failed"
	StatusEmptyInput     Status = "empty_input"
	StatusBusy           Status = "busy"
	StatusNothingToRetry Status = "nothing_to_retry"
)

// Dispatched reports whether the call reached the assistant service.
func (s Status) Dispatched() bool {
	return s == StatusDelivered || s == StatusFailed
}

// Result describes what a Send or Retry did. Err is informational: for
// StatusFailed it is the sender's error, for dropped calls one of the
// sentinels above.
type Result struct {
	Status Status
	Err    error
	State  State
}

func statusFor(err error) Status {
	switch {
	case errors.Is(err, ErrEmptyInput):
		return StatusEmptyInput
	case errors.Is(err, ErrBusy):
		return StatusBusy
	case errors.Is(err, ErrNothingToRetry):
		return StatusNothingToRetry
	default:
		return StatusFailed
	}
}

// failureReason extracts the human-readable reason shown in the chat log.
func failureReason(err error) string {
	if err == nil {
		return FallbackReason
	}
	if reason := strings.TrimSpace(err.Error()); reason != "" {
		return reason
	}
	return FallbackReason
}
