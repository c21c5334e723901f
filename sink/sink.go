// Package sink is the persistence boundary (C6's output collaborator):
// a Sink accepts completed Evaluations for storage. The mevtrace
// command inserts each Evaluation the batch pipeline streams out; retry
// policy lives in RetryingSink, not here.
package sink

import (
	"context"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// Sink persists one finished Evaluation.
type Sink interface {
	Insert(ctx context.Context, ev *mevtypes.Evaluation) error
	Close() error
}

// PermanentError marks a Sink failure that retrying cannot fix (bad
// schema, oversized record, serialization failure). RetryingSink
// surfaces these immediately instead of retrying.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "sink: permanent: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }
