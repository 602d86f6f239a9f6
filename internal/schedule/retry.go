package schedule

import (
	"time"

	"importpipe/internal/config"
)

// RetryDelayMinutes computes the exponential backoff delay for a retry
// attempt: base * 2^(attempt-1). Attempts are 1-indexed; values below 1 are
// treated as the first attempt.
func RetryDelayMinutes(attempt, baseDelayMinutes int) int {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelayMinutes << (attempt - 1)
}

// ShouldRetry reports whether a failed run should retry: never when
// RetryOnFailure is off, otherwise while the attempt count is below
// MaxRetries.
func ShouldRetry(attempt int, s config.Schedule) bool {
	if !s.RetryOnFailure {
		return false
	}
	return attempt < s.MaxRetries
}

// NextRetryTime is the instant the given attempt should retry at, using the
// schedule's base delay.
func NextRetryTime(attempt int, s config.Schedule, from time.Time) time.Time {
	d := time.Duration(RetryDelayMinutes(attempt, s.RetryDelayMinutes)) * time.Minute
	return from.Add(d)
}
