// Package reducer implements the reducer pass (C4): a fixed-order
// sequence of pure passes over a transaction's action list, folding
// primitive actions into higher-level ones.
package reducer

import "github.com/ethinspect/mevtrace/mevtypes"

// Reducer is one fold-pass over a transaction's known actions. A
// Reducer must not reset a call's Classification and must be
// idempotent: running it twice produces the same action list as
// running it once.
type Reducer interface {
	Reduce(tx *mevtypes.TransactionData)
}

// Pipeline runs a fixed, registered sequence of reducers over a
// transaction, in order.
type Pipeline struct {
	reducers []Reducer
}

// DefaultPipeline returns the pipeline every batch run uses: trades
// first (so arbitrage has trades to chain), then arbitrage detection,
// then liquidation joining.
func DefaultPipeline() *Pipeline {
	return NewPipeline(
		&TradeReducer{},
		&ArbitrageReducer{},
		&LiquidationReducer{},
	)
}

// NewPipeline builds a pipeline from an explicit reducer sequence.
func NewPipeline(reducers ...Reducer) *Pipeline {
	return &Pipeline{reducers: reducers}
}

// Run applies every reducer in order to tx.
func (p *Pipeline) Run(tx *mevtypes.TransactionData) {
	for _, r := range p.reducers {
		r.Reduce(tx)
	}
}

// actionEqualsKnown reports whether candidate equals any already
// non-pruned action in tx. Every reducer must honor this before
// appending a new action, per the shared non-double-emission rule.
func actionEqualsKnown(tx *mevtypes.TransactionData, candidate mevtypes.SpecificAction) bool {
	for _, a := range tx.ActionsKnown() {
		if a.Variant.Kind() == candidate.Kind() && a.Variant.Equal(candidate) {
			return true
		}
	}
	return false
}
