package reducer

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// LiquidationReducer joins an orphan Liquidation (one decoded without a
// received_amount, see decoders.Compound) with the seize/seizeInternal
// subcall that actually carries the seized-collateral figure. Pairs
// that do not match on borrower are left unjoined rather than forced
// together.
type LiquidationReducer struct{}

func (LiquidationReducer) Reduce(tx *mevtypes.TransactionData) {
	for _, a := range tx.ActionsKnown() {
		liq, ok := a.Variant.(mevtypes.Liquidation)
		if !ok || liq.HasReceivedLeg() {
			continue
		}
		seize, found := findSeize(tx, a.TraceAddress, liq.LiquidatedUser)
		if !found {
			continue
		}
		joined := liq
		joined.ReceivedAmount = seize.amount
		if actionEqualsKnown(tx, joined) {
			continue
		}
		a.Variant = joined
		tx.SetStatus(mevtypes.StatusSuccess)
	}
}

type seizeResult struct {
	borrower common.Address
	amount   *uint256.Int
}

func findSeize(tx *mevtypes.TransactionData, liquidationAddr mevtypes.TraceAddress, borrower common.Address) (seizeResult, bool) {
	for _, call := range tx.DescendantsOf(liquidationAddr) {
		sel := call.Selector()
		if sel == nil {
			continue
		}
		if args, ok := decodeSeizeInternal(sel, call.Input); ok {
			if args.borrower == borrower {
				return args, true
			}
			continue
		}
		if args, ok := decodeSeize(sel, call.Input); ok {
			if args.borrower == borrower {
				return args, true
			}
		}
	}
	return seizeResult{}, false
}

func decodeSeizeInternal(sel, input []byte) (seizeResult, bool) {
	m := assets.CToken.Methods["seizeInternal"]
	if len(m.ID) != 4 || !byteSliceEqual(sel, m.ID) {
		return seizeResult{}, false
	}
	args, err := m.Inputs.Unpack(input[4:])
	if err != nil || len(args) != 4 {
		return seizeResult{}, false
	}
	borrower, ok1 := args[2].(common.Address)
	amt, ok2 := args[3].(*big.Int)
	if !ok1 || !ok2 {
		return seizeResult{}, false
	}
	return seizeResult{borrower: borrower, amount: uint256.MustFromBig(amt)}, true
}

func decodeSeize(sel, input []byte) (seizeResult, bool) {
	m := assets.CToken.Methods["seize"]
	if len(m.ID) != 4 || !byteSliceEqual(sel, m.ID) {
		return seizeResult{}, false
	}
	args, err := m.Inputs.Unpack(input[4:])
	if err != nil || len(args) != 3 {
		return seizeResult{}, false
	}
	borrower, ok1 := args[1].(common.Address)
	amt, ok2 := args[2].(*big.Int)
	if !ok1 || !ok2 {
		return seizeResult{}, false
	}
	return seizeResult{borrower: borrower, amount: uint256.MustFromBig(amt)}, true
}

func byteSliceEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
