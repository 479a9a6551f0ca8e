package registry

import "time"

// RetryConfig bounds the rate-limit retry loop.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the retry policy the registry's rate limiting
// calls for: five attempts total, five seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		Delay:       5 * time.Second,
	}
}
