package decoders

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// ERC20 decodes plain token transfers. It has no fixed contract
// address — every ERC20 token is a different address — so
// IsProtocolAddress always defers to ClassifyCall.
type ERC20 struct{}

// NewERC20 returns a ready-to-register ERC20 decoder.
func NewERC20() *ERC20 { return &ERC20{} }

func (ERC20) Protocol() string { return "ERC20" }

func (ERC20) IsProtocolAddress(mevtypes.Address) (bool, bool) { return false, false }

func (ERC20) IsProtocolEvent(log mevtypes.EventLog) bool {
	t0 := log.Topic0()
	return t0 == assets.ERC20.Events["Transfer"].ID || t0 == assets.ERC20.Events["Approval"].ID
}

func (ERC20) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	switch {
	case matchesSelector(sel, assets.ERC20.Methods["transfer"]):
		return mevtypes.ClassificationTransfer, true
	case matchesSelector(sel, assets.ERC20.Methods["transferFrom"]):
		return mevtypes.ClassificationTransfer, true
	default:
		return mevtypes.ClassificationUnknown, false
	}
}

func (ERC20) DecodeCallAction(call *mevtypes.InternalCall, _ *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	sel := call.Selector()
	if sel == nil {
		return nil, false
	}
	switch {
	case matchesSelector(sel, assets.ERC20.Methods["transfer"]):
		args, err := assets.ERC20.Methods["transfer"].Inputs.Unpack(call.Input[4:])
		if err != nil || len(args) != 2 {
			return nil, false
		}
		to, ok1 := args[0].(common.Address)
		amt, ok2 := args[1].(*big.Int)
		if !ok1 || !ok2 {
			return nil, false
		}
		return mevtypes.Transfer{From: call.From, To: to, Token: call.To, Amount: uint256.MustFromBig(amt)}, true

	case matchesSelector(sel, assets.ERC20.Methods["transferFrom"]):
		args, err := assets.ERC20.Methods["transferFrom"].Inputs.Unpack(call.Input[4:])
		if err != nil || len(args) != 3 {
			return nil, false
		}
		from, ok1 := args[0].(common.Address)
		to, ok2 := args[1].(common.Address)
		amt, ok3 := args[2].(*big.Int)
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return mevtypes.Transfer{From: from, To: to, Token: call.To, Amount: uint256.MustFromBig(amt)}, true

	default:
		return nil, false
	}
}
