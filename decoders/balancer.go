package decoders

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/addressbook"
	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// Balancer decodes two distinct ABIs: the pool contract itself
// (swapExactAmountIn/Out, called on a per-pool address) and the
// exchange proxy (batchSwapExactIn/Out, called on the single well
// known BalancerProxy address, which fans out into one or more pool
// calls beneath it). The proxy call itself never moves tokens — the
// nested pool calls do — so it is tagged Swap but left for
// reducer.TradeReducer's nested-transfer case to fold; only the
// pool-level call has its two legs as immediate children.
//
// Grounded on original_source/src/inspectors/balancer.rs.
type Balancer struct{}

// NewBalancer returns a ready-to-register Balancer decoder.
func NewBalancer() *Balancer { return &Balancer{} }

func (Balancer) Protocol() string { return "Balancer" }

func (Balancer) IsProtocolAddress(addr mevtypes.Address) (bool, bool) {
	if addr == addressbook.BalancerProxy {
		return true, true
	}
	// Pools are many distinct addresses; defer to ClassifyCall.
	return false, false
}

func (Balancer) IsProtocolEvent(log mevtypes.EventLog) bool {
	return log.Topic0() == assets.BalancerPool.Events["LOG_SWAP"].ID
}

func (Balancer) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	switch {
	case matchesSelector(sel, assets.BalancerPool.Methods["swapExactAmountIn"]),
		matchesSelector(sel, assets.BalancerPool.Methods["swapExactAmountOut"]):
		return mevtypes.ClassificationSwap, true
	case matchesSelector(sel, assets.BalancerPool.Methods["joinPool"]):
		return mevtypes.ClassificationAddLiquidity, true
	case matchesSelector(sel, assets.BalancerProxy.Methods["batchSwapExactIn"]),
		matchesSelector(sel, assets.BalancerProxy.Methods["batchSwapExactOut"]):
		return mevtypes.ClassificationSwap, true
	default:
		return mevtypes.ClassificationUnknown, false
	}
}

func (Balancer) DecodeCallAction(call *mevtypes.InternalCall, tx *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	if call.Classification != mevtypes.ClassificationAddLiquidity {
		return nil, false
	}
	// joinPool's maxAmountsIn is the caller's upper bound, not the
	// amount actually pulled; the exact per-token amounts only show up
	// on the ERC20 transfer subcalls beneath this one.
	var tokens []mevtypes.Address
	var amounts []*mevtypes.Amount
	for _, sub := range tx.SubcallsOf(call.TraceAddress) {
		sel := sub.Selector()
		if sel == nil {
			continue
		}
		if args, ok := tryUnpack(assets.ERC20.Methods["transferFrom"], sub.Input); ok && matchesSelector(sel, assets.ERC20.Methods["transferFrom"]) && len(args) == 3 {
			if amt, ok2 := args[2].(*big.Int); ok2 {
				tokens = append(tokens, sub.To)
				amounts = append(amounts, uint256.MustFromBig(amt))
			}
		}
	}
	if len(tokens) == 0 {
		return nil, false
	}
	return mevtypes.AddLiquidity{Tokens: tokens, Amounts: amounts}, true
}
