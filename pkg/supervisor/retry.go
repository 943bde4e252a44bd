package supervisor

import (
	"sync"
	"time"
)

// FixedBackoff is added to the connection interval after every failure.
const FixedBackoff = 2 * time.Second

// RetryPolicy computes the delay before the next point-to-point attempt.
// The delay never grows and retries never give up.
type RetryPolicy struct {
	mu sync.Mutex

	interval time.Duration
	backoff  time.Duration
	attempts int
}

// NewRetryPolicy creates a policy waiting interval plus FixedBackoff.
func NewRetryPolicy(interval time.Duration) *RetryPolicy {
	if interval < 0 {
		interval = 0
	}
	return &RetryPolicy{
		interval: interval,
		backoff:  FixedBackoff,
	}
}

// Next returns the delay before the next attempt and counts the failure.
func (p *RetryPolicy) Next() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.attempts++
	return p.interval + p.backoff
}

// Peek returns the delay without counting an attempt.
func (p *RetryPolicy) Peek() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval + p.backoff
}

// Reset clears the failure count. Call this after a successful connection.
func (p *RetryPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attempts = 0
}

// Attempts returns the number of failures since the last reset.
func (p *RetryPolicy) Attempts() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attempts
}
