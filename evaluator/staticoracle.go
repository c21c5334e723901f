package evaluator

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// StaticOracle is a minimal PriceOracle backed by a fixed per-token
// rate, ignoring blockNumber entirely. The price oracle's internals are
// out of scope for this repository; StaticOracle exists so the CLI and
// tests have a usable default, and production deployments are expected
// to supply their own PriceOracle (a historical on-chain oracle, a
// pricing API, etc).
type StaticOracle struct {
	mu     sync.RWMutex
	prices map[mevtypes.Address]*big.Rat
}

// NewStaticOracle builds a StaticOracle from an initial price table.
func NewStaticOracle(prices map[mevtypes.Address]*big.Rat) *StaticOracle {
	o := &StaticOracle{prices: make(map[mevtypes.Address]*big.Rat, len(prices))}
	for token, price := range prices {
		o.prices[token] = price
	}
	return o
}

// Set records or updates the price for token.
func (o *StaticOracle) Set(token mevtypes.Address, price *big.Rat) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[token] = price
}

func (o *StaticOracle) Price(_ context.Context, token mevtypes.Address, _ uint64) (*big.Rat, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if p, ok := o.prices[token]; ok {
		return p, nil
	}
	return nil, &UnknownTokenError{Token: token}
}

// UnknownTokenError reports that a PriceOracle has no rate for a token.
type UnknownTokenError struct {
	Token mevtypes.Address
}

func (e *UnknownTokenError) Error() string {
	return "evaluator: no price for token " + e.Token.Hex()
}
