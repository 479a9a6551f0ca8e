package registry

import (
	"errors"
	"fmt"
)

// Error types for classifying registry lookup failures. Each cause gets its
// own type so the batch loop can report failures precisely.

// ClientError is a transport or HTTP failure that is not worth retrying
// (any status other than 429, network failures, timeouts).
type ClientError struct {
	// StatusCode is the HTTP status, or 0 when the request never completed.
	StatusCode int
	Err        error
}

func (e *ClientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("registry request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("registry request failed: %v", e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// RetryExhaustedError reports rate limiting that persisted past the retry
// budget. Distinct from ClientError so operators can tell throttling from
// outages.
type RetryExhaustedError struct {
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("registry rate limit persisted after %d attempts", e.Attempts)
}

// ParseError reports a response body that was not valid JSON or was missing
// the promised company payload.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse registry response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LookupError reports a search that did not resolve to exactly one company.
// Zero and multiple matches are both unresolvable: the caller cannot safely
// pick a record.
type LookupError struct {
	BusinessID   string
	TotalResults int
}

func (e *LookupError) Error() string {
	if e.TotalResults == 0 {
		return fmt.Sprintf("no company found for %s", e.BusinessID)
	}
	return fmt.Sprintf("ambiguous result for %s: %d companies match", e.BusinessID, e.TotalResults)
}

// IsNotFound reports whether err is a LookupError with zero matches.
func IsNotFound(err error) bool {
	var le *LookupError
	return errors.As(err, &le) && le.TotalResults == 0
}

// IsRetryExhausted reports whether err is a RetryExhaustedError.
func IsRetryExhausted(err error) bool {
	var re *RetryExhaustedError
	return errors.As(err, &re)
}
