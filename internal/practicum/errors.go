package practicum

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse indicates the API answered with a body that does
	// not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrMissingName indicates a homework record without a homework_name.
	ErrMissingName = errors.New("homework name is missing")
	// ErrUnknownStatus indicates a homework status outside the verdict table.
	ErrUnknownStatus = errors.New("unknown homework status")
	// ErrResponseTooLarge indicates a 200 body over the client's size cap.
	ErrResponseTooLarge = errors.New("response body too large")
)

// APIError is returned when the status endpoint answers with a non-200 code.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status endpoint %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// TransportError wraps network-level failures (DNS, timeouts, resets).
// Callers treat it as retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to status endpoint failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
