// Package businessid validates Finnish business identifiers (Y-tunnus).
package businessid

import (
	"fmt"
	"regexp"
)

// pattern is the registry's canonical identifier shape: seven digits, a
// hyphen and a single check digit, e.g. "1234567-8".
var pattern = regexp.MustCompile(`^\d{7}-\d$`)

// FormatError reports an identifier that does not match the registry format.
// It carries the offending literal for diagnostics.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid business identifier %q: must match NNNNNNN-N", e.Value)
}

// Validate checks that s is a well-formed business identifier. It is pure
// and performs no I/O; callers must validate before any registry call.
func Validate(s string) error {
	if !pattern.MatchString(s) {
		return &FormatError{Value: s}
	}
	return nil
}
