package webhook

import (
	"math"
	"math/rand/v2"
	"time"
)

// BackoffStrategy returns the delay before retry n (n starts at 1).
type BackoffStrategy interface {
	NextInterval(retry int) time.Duration
}

// ExponentialBackoff grows the delay by Multiplier per retry, capped at Max,
// with +/- Jitter spread so concurrent senders do not retry in lockstep.
type ExponentialBackoff struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

func (b ExponentialBackoff) NextInterval(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	initial := b.Initial
	if initial <= 0 {
		initial = time.Second
	}
	ceiling := b.Max
	if ceiling <= 0 {
		ceiling = 30 * time.Second
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 2
	}

	d := float64(initial) * math.Pow(mult, float64(retry-1))
	if b.Jitter > 0 {
		d *= 1 + (rand.Float64()*2-1)*b.Jitter
	}
	return time.Duration(min(d, float64(ceiling)))
}

// FixedBackoff waits the same duration before every retry.
type FixedBackoff time.Duration

func (f FixedBackoff) NextInterval(retry int) time.Duration {
	if retry <= 0 {
		return 0
	}
	return time.Duration(f)
}
