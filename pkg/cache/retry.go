package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// retry re-runs an operation after transient failures, doubling the delay
// between attempts.
type retry struct {
	attempts int
	delay    time.Duration
}

var defaultRetry = retry{attempts: 3, delay: 100 * time.Millisecond}

// do calls fn until it succeeds, fails permanently, the attempts run out,
// or ctx ends.
func (r retry) do(ctx context.Context, fn func() error) error {
	delay := r.delay
	var err error
	for i := range max(r.attempts, 1) {
		if err = fn(); err == nil || !transient(err) {
			return err
		}
		if i == r.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// transient reports whether err is a network failure worth retrying.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
