// Package retry defines backoff policies for bounded polling loops.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Policy defines a bounded wait strategy.
type Policy struct {
	InitialDelay    time.Duration `json:"initial_delay"`
	MaxDelay        time.Duration `json:"max_delay"`
	MaxWait         time.Duration `json:"max_wait"`
	BackoffStrategy BackoffType   `json:"backoff_strategy"`
	JitterFactor    float64       `json:"jitter_factor"` // 0.0-1.0
}

// BackoffType identifies the backoff strategy.
type BackoffType string

const (
	BackoffFixed       BackoffType = "fixed"       // Same delay each time
	BackoffLinear      BackoffType = "linear"      // Delay increases linearly
	BackoffExponential BackoffType = "exponential" // Delay doubles each time
)

// PollPolicy returns the default policy for long-running operation polling.
func PollPolicy(initial, maxDelay, maxWait time.Duration) Policy {
	return Policy{
		InitialDelay:    initial,
		MaxDelay:        maxDelay,
		MaxWait:         maxWait,
		BackoffStrategy: BackoffExponential,
		JitterFactor:    0.1,
	}
}

// CalculateDelay calculates the delay for a given attempt.
func (p *Policy) CalculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	var delay time.Duration

	switch p.BackoffStrategy {
	case BackoffFixed:
		delay = p.InitialDelay
	case BackoffLinear:
		delay = p.InitialDelay * time.Duration(attempt)
	case BackoffExponential:
		delay = p.InitialDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	default:
		delay = p.InitialDelay
	}

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	if p.JitterFactor > 0 {
		jitter := float64(delay) * p.JitterFactor * (rand.Float64()*2 - 1) // -jitter to +jitter
		delay = time.Duration(float64(delay) + jitter)
		if delay < 0 {
			delay = 0
		}
	}

	return delay
}

// Wait sleeps for the attempt's delay, honouring context cancellation.
func (p *Policy) Wait(ctx context.Context, attempt int) error {
	delay := p.CalculateDelay(attempt)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Expired reports whether the wait budget has been spent.
func (p *Policy) Expired(start time.Time) bool {
	if p.MaxWait <= 0 {
		return false
	}
	return time.Since(start) >= p.MaxWait
}
