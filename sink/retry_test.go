package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// countingSink fails the first fail calls, returning err if it is set
// and a generic transient error otherwise, then succeeds.
type countingSink struct {
	calls int
	fail  int // number of leading calls that fail transiently
	err   error
}

func (s *countingSink) Insert(ctx context.Context, ev *mevtypes.Evaluation) error {
	s.calls++
	if s.calls <= s.fail {
		if s.err != nil {
			return s.err
		}
		return errors.New("transient failure")
	}
	return nil
}

func (s *countingSink) Close() error { return nil }

func TestRetryingSink_RetriesTransientThenSucceeds(t *testing.T) {
	inner := &countingSink{fail: 2}
	r := NewRetrying(inner)
	r.backoff = 0 // don't slow the test down

	if err := r.Insert(context.Background(), &mevtypes.Evaluation{}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryingSink_SurfacesPermanentImmediately(t *testing.T) {
	inner := &countingSink{fail: 5, err: &PermanentError{Err: errors.New("bad record")}}
	r := NewRetrying(inner)
	r.backoff = 0

	err := r.Insert(context.Background(), &mevtypes.Evaluation{})
	if err == nil {
		t.Fatalf("expected error")
	}
	var perm *PermanentError
	if !errors.As(err, &perm) {
		t.Fatalf("expected *PermanentError, got %T: %v", err, err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on permanent error)", inner.calls)
	}
}

func TestRetryingSink_ExhaustsRetriesAndReturnsLastError(t *testing.T) {
	inner := &countingSink{fail: 100}
	r := NewRetrying(inner)
	r.backoff = 0
	r.maxRetries = 2

	err := r.Insert(context.Background(), &mevtypes.Evaluation{})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3 (1 initial + 2 retries)", inner.calls)
	}
}
