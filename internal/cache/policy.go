// Package cache holds the TTL policy for locally persisted API results.
// All functions are pure with respect to the supplied timestamp and safe to
// call from any goroutine.
package cache

import (
	"fmt"
	"time"
)

// TTL is the cache freshness window. A row exactly TTL old is expired.
const TTL = time.Hour

const ttlMillis = int64(TTL / time.Millisecond)

// IsValid reports whether a row created at the given epoch-millisecond
// timestamp is still fresh.
func IsValid(createdAt int64) bool {
	return isValidAt(createdAt, time.Now().UnixMilli())
}

func isValidAt(createdAt, now int64) bool {
	return now-createdAt < ttlMillis
}

// Remaining returns how many milliseconds of freshness a row has left,
// floored at zero.
func Remaining(createdAt int64) int64 {
	return remainingAt(createdAt, time.Now().UnixMilli())
}

func remainingAt(createdAt, now int64) int64 {
	remaining := ttlMillis - (now - createdAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpirationCutoff returns the epoch-millisecond timestamp below which rows
// are stale and eligible for purging.
func ExpirationCutoff() int64 {
	return time.Now().UnixMilli() - ttlMillis
}

// ShouldRefresh reports whether a row is old enough that callers should
// refetch rather than serve it.
func ShouldRefresh(createdAt int64) bool {
	return !IsValid(createdAt)
}

// Status returns a log-friendly description of a row's freshness.
func Status(createdAt int64) string {
	if IsValid(createdAt) {
		minutes := Remaining(createdAt) / int64(time.Minute/time.Millisecond)
		return fmt.Sprintf("Cache valid - %d minutes remaining", minutes)
	}
	return "Cache expired - needs refresh"
}
