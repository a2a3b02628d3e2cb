// ABOUTME: Error types returned by the assistant HTTP client
// ABOUTME: Separates transport failures (network, timeout, non-2xx) from protocol failures

package assistant

import (
	"errors"
	"fmt"
)

// DefaultProtocolMessage is used when the service reports failure without a reason.
const DefaultProtocolMessage = "Failed to get response from AI"

// TransportError means the request did not produce a usable HTTP response:
// the connection failed, the timeout elapsed, or the status was not 2xx.
type TransportError struct {
	Op         string // what the client was doing, e.g. "sending message"
	StatusCode int    // zero when no response was received
	Message    string // error text from the response body, if any
	Err        error
	timeout    bool
}

func (e *TransportError) Error() string {
	switch {
	case e.timeout:
		return fmt.Sprintf("%s: request timed out", e.Op)
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": transport failure"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request was abandoned because a deadline passed.
func (e *TransportError) Timeout() bool { return e.timeout }

// ProtocolError means the service answered but reported failure
// (success=false) or omitted the data payload.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Message == "" {
		return DefaultProtocolMessage
	}
	return e.Message
}

// IsTransport reports whether err is, or wraps, a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsProtocol reports whether err is, or wraps, a *ProtocolError.
func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
