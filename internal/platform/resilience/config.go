package resilience

import "time"

const (
	defaultFailureThreshold = 4
	defaultOpenTimeout      = 30 * time.Second
	defaultHalfOpenMaxReq   = 1
)

// CircuitBreakerConfig tunes the breaker guarding one outbound client.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFailureThreshold,
		OpenTimeout:      defaultOpenTimeout,
		HalfOpenMaxReq:   defaultHalfOpenMaxReq,
	}
}

// Normalize replaces out-of-range fields with their defaults so a partly
// configured breaker can never end up permanently open or trip on a
// single failure by accident.
func (c CircuitBreakerConfig) Normalize() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

// NewBreaker builds the breaker this config describes.
func (c CircuitBreakerConfig) NewBreaker() *CircuitBreaker {
	n := c.Normalize()
	return NewCircuitBreaker(n.FailureThreshold, n.OpenTimeout, n.HalfOpenMaxReq)
}
