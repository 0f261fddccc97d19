package research

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Throttled wraps a Provider with a shared rate limiter and per-call timeout.
// A nil Limiter disables throttling; a zero Timeout disables the deadline.
type Throttled struct {
	Inner   Provider
	Limiter *rate.Limiter
	Timeout time.Duration
}

func (t *Throttled) Name() string { return t.Inner.Name() }

func (t *Throttled) Search(ctx context.Context, query string, recency Recency) (Answer, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(ctx); err != nil {
			return Answer{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	return t.Inner.Search(ctx, query, recency)
}
