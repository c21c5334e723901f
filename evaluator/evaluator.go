// Package evaluator implements the evaluator (C5): joins a classified
// transaction with historical price data and gas costs into an
// Evaluation.
package evaluator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/addressbook"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// PriceOracle converts an amount of a token into quote-token terms as
// of a historical block. Implementations must be concurrency-safe;
// the batch pipeline shares one instance across every evaluation
// goroutine.
type PriceOracle interface {
	// Price returns how many quote-token units one whole unit (10^18
	// wei) of token was worth at blockNumber.
	Price(ctx context.Context, token mevtypes.Address, blockNumber uint64) (*big.Rat, error)
}

// EvalError wraps a price lookup or arithmetic failure for one
// transaction. It is always tagged with the block and transaction hash
// so the batch pipeline can surface it without losing provenance.
type EvalError struct {
	Block uint64
	Hash  mevtypes.Hash
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %s at block %d: %v", e.Hash, e.Block, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Evaluator computes gas-adjusted, quote-converted profit for a
// finished TransactionData.
type Evaluator struct {
	Oracle     PriceOracle
	QuoteToken mevtypes.Address
}

// New returns an Evaluator pricing everything into QuoteToken, wrapped
// native by default convention.
func New(oracle PriceOracle, quoteToken mevtypes.Address) *Evaluator {
	return &Evaluator{Oracle: oracle, QuoteToken: quoteToken}
}

// NewDefault returns an Evaluator quoting into wrapped native.
func NewDefault(oracle PriceOracle) *Evaluator {
	return New(oracle, addressbook.WETH)
}

const weiPerUnit = 1e18

// Evaluate joins tx with gas usage and the oracle's historical prices.
// A price-lookup failure for any profit-bearing action surfaces as an
// *EvalError without mutating tx.
func (e *Evaluator) Evaluate(ctx context.Context, tx *mevtypes.TransactionData, gasUsed uint64, gasPrice *uint256.Int) (*mevtypes.Evaluation, error) {
	total := new(big.Rat)
	var perToken []mevtypes.TokenProfit

	for _, a := range tx.ActionsKnown() {
		switch v := a.Variant.(type) {
		case mevtypes.Arbitrage:
			quote, err := e.convert(ctx, v.Token, v.Profit, tx.BlockNumber)
			if err != nil {
				return nil, &EvalError{Block: tx.BlockNumber, Hash: tx.Hash, Err: err}
			}
			total.Add(total, quote)
			perToken = append(perToken, mevtypes.TokenProfit{Token: v.Token, Amount: v.Profit})

		case mevtypes.Liquidation:
			if !v.HasReceivedLeg() {
				continue
			}
			recv, err := e.convert(ctx, v.ReceivedToken, v.ReceivedAmount, tx.BlockNumber)
			if err != nil {
				return nil, &EvalError{Block: tx.BlockNumber, Hash: tx.Hash, Err: err}
			}
			sent, err := e.convert(ctx, v.SentToken, v.SentAmount, tx.BlockNumber)
			if err != nil {
				return nil, &EvalError{Block: tx.BlockNumber, Hash: tx.Hash, Err: err}
			}
			net := new(big.Rat).Sub(recv, sent)
			total.Add(total, net)
			perToken = append(perToken, mevtypes.TokenProfit{Token: v.ReceivedToken, Amount: v.ReceivedAmount})
		}
	}

	gasCost := new(uint256.Int).SetUint64(gasUsed)
	if gasPrice != nil {
		gasCost.Mul(gasCost, gasPrice)
	}
	gasQuote, err := e.convert(ctx, addressbook.WETH, gasCost, tx.BlockNumber)
	if err != nil {
		return nil, &EvalError{Block: tx.BlockNumber, Hash: tx.Hash, Err: err}
	}
	total.Sub(total, gasQuote)

	profit, negative := ratToUint256(total)

	return &mevtypes.Evaluation{
		Transaction:    tx,
		GasUsed:        gasUsed,
		GasPrice:       gasPrice,
		Profit:         profit,
		ProfitNegative: negative,
		QuoteToken:     e.QuoteToken,
		PerToken:       perToken,
	}, nil
}

func (e *Evaluator) convert(ctx context.Context, token mevtypes.Address, amount *uint256.Int, block uint64) (*big.Rat, error) {
	if amount == nil {
		return new(big.Rat), nil
	}
	if token == e.QuoteToken {
		return amountToRat(amount), nil
	}
	price, err := e.Oracle.Price(ctx, token, block)
	if err != nil {
		return nil, fmt.Errorf("price lookup for %s: %w", token, err)
	}
	return new(big.Rat).Mul(amountToRat(amount), price), nil
}

func amountToRat(amount *uint256.Int) *big.Rat {
	r := new(big.Rat).SetInt(amount.ToBig())
	return r.Quo(r, big.NewRat(weiPerUnit, 1))
}

func ratToUint256(r *big.Rat) (*uint256.Int, bool) {
	negative := r.Sign() < 0
	abs := new(big.Rat).Abs(r)
	abs.Mul(abs, big.NewRat(weiPerUnit, 1))
	i := new(big.Int).Quo(abs.Num(), abs.Denom())
	return uint256.MustFromBig(i), negative
}
