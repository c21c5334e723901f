// Package mevtypes holds the core data model shared by every stage of the
// inspection pipeline: addresses, hashes, amounts, the call tree, event
// logs, classified actions and the finished transaction/evaluation
// records.
package mevtypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Address is the 20-byte address of an Ethereum account.
type Address = common.Address

// Hash is the 32-byte hash of a transaction, block or log topic.
type Hash = common.Hash

// Amount is a 256-bit unsigned integer used for token amounts, gas
// values and wei quantities. All arithmetic in the pipeline is exact;
// the evaluator prices values in its quote token with math/big
// rationals, not floating point.
type Amount = uint256.Int

// ZeroAmount returns a fresh zero-valued Amount.
func ZeroAmount() *Amount { return new(uint256.Int) }

// AmountFromUint64 returns a fresh Amount holding v.
func AmountFromUint64(v uint64) *Amount {
	return new(uint256.Int).SetUint64(v)
}
