package mevtypes

import "github.com/holiman/uint256"

// TokenProfit is one token amount the evaluator attributed to a
// transaction, in that token's own units (not converted to the quote
// token and not netted against other legs).
type TokenProfit struct {
	Token  Address
	Amount *uint256.Int // unsigned magnitude; Negative carries the sign
	Negative bool
}

// Evaluation is the immutable, finished record of one inspected
// transaction: its classified data plus the cost and profit figures the
// evaluator attached. Once built, nothing mutates an Evaluation; a
// re-run produces a new one.
type Evaluation struct {
	Transaction *TransactionData

	GasUsed  uint64
	GasPrice *uint256.Int

	// Profit is the net amount of QuoteToken captured across every known
	// action, after folding out the gas cost priced in the same token.
	Profit      *uint256.Int
	ProfitNegative bool
	QuoteToken  Address

	// PerToken preserves the un-netted per-token profits an evaluator
	// produced before conversion, for callers that want the detail
	// instead of the single converted figure.
	PerToken []TokenProfit
}

// GasCost returns gas_used * gas_price as a 256-bit amount.
func (e *Evaluation) GasCost() *uint256.Int {
	cost := new(uint256.Int).SetUint64(e.GasUsed)
	return cost.Mul(cost, e.GasPrice)
}
