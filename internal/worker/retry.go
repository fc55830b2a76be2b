package worker

import "time"

// RetryPolicy controls backoff between failed sync attempts. Zero
// fields fall back to sane defaults so an empty policy never yields
// a zero pause.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NextDelay returns the pause before the given attempt (1-based).
// The delay grows by BackoffFactor per attempt and is capped at
// MaxDelay when one is set.
func (r RetryPolicy) NextDelay(attempt int) time.Duration {
	base := r.InitialDelay
	if base <= 0 {
		base = time.Second
	}
	factor := r.BackoffFactor
	if factor <= 0 {
		factor = 2
	}

	d := float64(base)
	ceiling := float64(r.MaxDelay)
	for i := 1; i < attempt; i++ {
		d *= factor
		if ceiling > 0 && d >= ceiling {
			return r.MaxDelay
		}
	}

	out := time.Duration(d)
	if out <= 0 {
		out = time.Second
	}
	return out
}
