// Package ratelimit implements merchant API request budget tracking and
// request gating. It monitors the X-RateLimit-Remaining and
// X-RateLimit-Reset response headers so tool runs sharing one credential
// stop hammering the API before it starts rejecting them.
package ratelimit

import (
	"time"
)

// Redis keys for rate limit state storage.
const (
	RedisKeyRemaining      = "sweeper:rate_limit:remaining"
	RedisKeyResetTimestamp = "sweeper:rate_limit:reset_timestamp"
	RedisKeyLastUpdate     = "sweeper:rate_limit:last_update"
)

// Thresholds for rate limit decisions.
const (
	// ThresholdCritical blocks all requests when the remaining budget
	// falls below this value.
	ThresholdCritical = 5

	// ThresholdWarning applies throttling when the remaining budget falls
	// below this value.
	ThresholdWarning = 20

	// ThresholdHealthy indicates normal operation. At or above this value
	// no restrictions apply.
	ThresholdHealthy = 50
)

// State represents the current merchant API request budget.
// Shared across tool runs via Redis.
type State struct {
	// RequestsRemaining is the number of requests left in the current
	// window, extracted from the X-RateLimit-Remaining header.
	RequestsRemaining int `json:"requests_remaining"`

	// ResetAt is when the budget window resets, calculated from the
	// X-RateLimit-Reset header (seconds until reset).
	ResetAt time.Time `json:"reset_at"`

	// LastUpdate is when this state was last refreshed from headers.
	LastUpdate time.Time `json:"last_update"`

	// IsHealthy is true when RequestsRemaining >= ThresholdHealthy.
	IsHealthy bool `json:"is_healthy"`
}

// IsStale returns true if the state data is older than the given duration.
func (s *State) IsStale(maxAge time.Duration) bool {
	return time.Since(s.LastUpdate) > maxAge
}

// NeedsCriticalBlock returns true if requests should be blocked.
func (s *State) NeedsCriticalBlock() bool {
	return s.RequestsRemaining < ThresholdCritical
}

// NeedsThrottling returns true if requests should be throttled.
func (s *State) NeedsThrottling() bool {
	return s.RequestsRemaining < ThresholdWarning && !s.NeedsCriticalBlock()
}

// TimeUntilReset returns the duration until the budget window resets.
// Returns 0 if the reset time has already passed.
func (s *State) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// UpdateHealth updates the IsHealthy field from RequestsRemaining.
func (s *State) UpdateHealth() {
	s.IsHealthy = s.RequestsRemaining >= ThresholdHealthy
}
