// Package batch implements the bounded-concurrency batch pipeline
// (C6): it streams Evaluation results for a block range, fetching,
// classifying, reducing and pricing every transaction under a fixed
// concurrency cap.
//
// The fetch stage and the evaluation stage are bounded by independent
// semaphores of the same weight, which keeps pending evaluations plus
// in-flight fetches from ever exceeding 2*Concurrency — the pipeline's
// one hard backpressure invariant. Grounded on the worker-pool shape of
// proofs/batch_verifier.go (semaphore + WaitGroup), generalized here to
// golang.org/x/sync's semaphore.Weighted and errgroup.Group so failures
// on one block or transaction propagate as Result values instead of
// aborting sibling work.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/ethinspect/mevtrace/decoders"
	"github.com/ethinspect/mevtrace/evaluator"
	"github.com/ethinspect/mevtrace/inspector"
	"github.com/ethinspect/mevtrace/log"
	"github.com/ethinspect/mevtrace/mevtypes"
	"github.com/ethinspect/mevtrace/reducer"
	"github.com/ethinspect/mevtrace/rpcmw"
)

var logger = log.Module(log.ModuleBatch)

// Result is one item of the pipeline's output stream: exactly one of
// Evaluation or Err is set. Block is always set so an error item can
// still be attributed; Hash is set for every per-transaction item and
// is the zero hash on a block-level fetch failure.
type Result struct {
	Block      uint64
	Hash       mevtypes.Hash
	Evaluation *mevtypes.Evaluation
	Err        error
}

// Config wires the pipeline's four dependencies plus its concurrency
// cap. Middleware, Registry, Reducers and Evaluator are all expected to
// be safe for concurrent use and are shared across every goroutine the
// pipeline spawns.
type Config struct {
	Middleware  rpcmw.Middleware
	Registry    *decoders.Registry
	Reducers    *reducer.Pipeline
	Evaluator   *evaluator.Evaluator
	Concurrency int
}

// Pipeline is the batch evaluator. A Pipeline is stateless between
// Run calls and may be reused for multiple ranges.
type Pipeline struct {
	cfg Config
}

// New builds a Pipeline from cfg, defaulting Concurrency to 8 and
// Reducers to reducer.DefaultPipeline() if unset.
func New(cfg Config) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.Reducers == nil {
		cfg.Reducers = reducer.DefaultPipeline()
	}
	return &Pipeline{cfg: cfg}
}

// Run streams one Result per transaction in [lo, hi) in no particular
// cross-block order. The returned channel is closed once every block
// fetch and every queued evaluation has completed, or ctx is canceled.
func (p *Pipeline) Run(ctx context.Context, lo, hi uint64) <-chan Result {
	out := make(chan Result, p.cfg.Concurrency*2)
	if lo >= hi {
		close(out)
		return out
	}

	fetchSem := semaphore.NewWeighted(int64(p.cfg.Concurrency))
	evalSem := semaphore.NewWeighted(int64(p.cfg.Concurrency))

	go func() {
		defer close(out)
		g, gctx := errgroup.WithContext(ctx)

		for n := lo; n < hi; n++ {
			n := n
			if err := fetchSem.Acquire(ctx, 1); err != nil {
				break // context canceled while waiting for a fetch slot
			}
			g.Go(func() error {
				defer fetchSem.Release(1)
				p.fetchAndDispatch(gctx, n, g, evalSem, out)
				return nil
			})
		}

		_ = g.Wait()
	}()

	return out
}

// fetchAndDispatch runs Stage A for block n, then Stage B (classify +
// reduce, synchronous and CPU-bound) for every transaction it yields,
// queuing each into Stage C under the shared errgroup.
func (p *Pipeline) fetchAndDispatch(ctx context.Context, n uint64, g *errgroup.Group, evalSem *semaphore.Weighted, out chan<- Result) {
	info, err := fetchBlock(ctx, p.cfg.Middleware, n)
	if err != nil {
		logger.Warn("block fetch failed", "block", n, "err", err)
		emit(ctx, out, Result{Block: n, Err: err})
		return
	}

	txs, gas := buildTransactions(info)
	for _, tx := range txs {
		tx := tx
		inspector.Pass(tx, p.cfg.Registry)
		p.cfg.Reducers.Run(tx)

		gi := gas[tx.Hash]
		if err := evalSem.Acquire(ctx, 1); err != nil {
			return
		}
		g.Go(func() error {
			defer evalSem.Release(1)
			ev, err := p.cfg.Evaluator.Evaluate(ctx, tx, gi.GasUsed, gi.GasPrice)
			if err != nil {
				emit(ctx, out, Result{Block: n, Hash: tx.Hash, Err: err})
				return nil
			}
			emit(ctx, out, Result{Block: n, Hash: tx.Hash, Evaluation: ev})
			return nil
		})
	}
}

// fetchBlock issues the four RPC calls Stage A needs concurrently and
// joins their results.
func fetchBlock(ctx context.Context, mw rpcmw.Middleware, n uint64) (*rpcmw.BlockInfo, error) {
	info := &rpcmw.BlockInfo{Number: n}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		traces, err := mw.TraceBlock(gctx, n)
		if err != nil {
			return err
		}
		info.Traces = traces
		return nil
	})
	g.Go(func() error {
		block, err := mw.GetBlockWithTxs(gctx, n)
		if err != nil {
			return err
		}
		info.Block = block
		return nil
	})
	g.Go(func() error {
		receipts, err := mw.ParityBlockReceipts(gctx, n)
		if err != nil {
			return err
		}
		info.Receipts = receipts
		return nil
	})
	g.Go(func() error {
		logs, err := mw.GetLogs(gctx, n)
		if err != nil {
			return err
		}
		info.Logs = logs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return info, nil
}

// emit writes r to out unless ctx has already been canceled, matching
// the "dropping the output stream cancels in-flight work" contract.
func emit(ctx context.Context, out chan<- Result, r Result) {
	select {
	case out <- r:
	case <-ctx.Done():
	}
}
