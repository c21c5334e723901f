package sink

import (
	"context"
	"errors"
	"time"

	"github.com/ethinspect/mevtrace/log"
	"github.com/ethinspect/mevtrace/mevtypes"
)

var logger = log.Module(log.ModuleSink)

// RetryingSink wraps a Sink and retries transient failures with
// exponential backoff, surfacing a *PermanentError (or an error that
// wraps one) to the caller immediately instead of retrying it.
type RetryingSink struct {
	next       Sink
	maxRetries int
	backoff    time.Duration
}

// NewRetrying wraps next with the inspection pipeline's default retry
// policy: up to 5 retries after the first attempt (6 attempts in all),
// waiting 100ms before the first retry and doubling the wait each time.
func NewRetrying(next Sink) *RetryingSink {
	return &RetryingSink{next: next, maxRetries: 5, backoff: 100 * time.Millisecond}
}

func (s *RetryingSink) Insert(ctx context.Context, ev *mevtypes.Evaluation) error {
	var perm *PermanentError
	var lastErr error
	wait := s.backoff

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		err := s.next.Insert(ctx, ev)
		if err == nil {
			return nil
		}
		if errors.As(err, &perm) {
			return err
		}
		lastErr = err
		if attempt == s.maxRetries {
			break
		}
		logger.Warn("insert failed, retrying", "attempt", attempt, "err", err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
		wait *= 2
	}
	return lastErr
}

func (s *RetryingSink) Close() error { return s.next.Close() }
