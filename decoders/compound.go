package decoders

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/addressbook"
	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// Compound decodes cToken liquidations and the comptroller/oracle
// pre-flight calls that precede them. It does not itself resolve the
// seized-collateral amount: that is the job of the LiquidationReducer,
// which joins this decoder's orphan Liquidation with the matching
// seize subcall (see reducer.LiquidationReducer).
//
// Grounded on original_source/src/inspectors/compound.rs.
type Compound struct{}

// NewCompound returns a ready-to-register Compound decoder.
func NewCompound() *Compound { return &Compound{} }

func (Compound) Protocol() string { return "Compound" }

func (Compound) IsProtocolAddress(addr mevtypes.Address) (bool, bool) {
	if addr == addressbook.Comptroller || addr == addressbook.CompoundOracle {
		return true, true
	}
	// cTokens are many distinct addresses; defer to ClassifyCall.
	return false, false
}

func (Compound) IsProtocolEvent(log mevtypes.EventLog) bool {
	return log.Topic0() == assets.CToken.Events["LiquidateBorrow"].ID
}

func (Compound) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	switch {
	case matchesSelector(sel, assets.CEther.Methods["liquidateBorrow"]),
		matchesSelector(sel, assets.CToken.Methods["liquidateBorrow"]):
		return mevtypes.ClassificationLiquidation, true
	case matchesSelector(sel, assets.Comptroller.Methods["liquidateBorrowAllowed"]):
		return mevtypes.ClassificationLiquidationCheck, true
	case matchesSelector(sel, assets.PriceOracle.Methods["getUnderlyingPrice"]):
		return mevtypes.ClassificationLiquidationCheck, true
	default:
		return mevtypes.ClassificationUnknown, false
	}
}

func (Compound) DecodeCallAction(call *mevtypes.InternalCall, tx *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	switch call.Classification {
	case mevtypes.ClassificationLiquidation:
		return decodeLiquidation(call)
	case mevtypes.ClassificationLiquidationCheck:
		return decodeLiquidationCheck(call, tx)
	default:
		return nil, false
	}
}

// decodeLiquidation builds an orphan Liquidation (ReceivedAmount nil)
// from the liquidateBorrow call itself. ReceivedToken is resolved from
// the raw cToken collateral market through addressbook.Underlying so
// the evaluator prices the actual seized asset, not the market
// contract's own address. A DelegateCall variant is skipped:
// compound-protocol's cToken.liquidateBorrow forwards via a regular
// call that already produces the action, so decoding the delegate leg
// too would double-count the same liquidation.
func decodeLiquidation(call *mevtypes.InternalCall) (mevtypes.SpecificAction, bool) {
	if call.CallType == mevtypes.CallTypeDelegateCall {
		return nil, false
	}
	sentToken := addressbook.Underlying(call.To)

	if args, ok := tryUnpack(assets.CToken.Methods["liquidateBorrow"], call.Input); ok && len(args) == 3 {
		borrower, ok1 := args[0].(common.Address)
		repayAmount, ok2 := args[1].(*big.Int)
		cTokenCollateral, ok3 := args[2].(common.Address)
		if ok1 && ok2 && ok3 {
			return mevtypes.Liquidation{
				SentToken:      sentToken,
				SentAmount:     uint256.MustFromBig(repayAmount),
				ReceivedToken:  addressbook.Underlying(cTokenCollateral),
				ReceivedAmount: nil,
				From:           call.From,
				LiquidatedUser: borrower,
			}, true
		}
	}

	if args, ok := tryUnpack(assets.CEther.Methods["liquidateBorrow"], call.Input); ok && len(args) == 2 {
		borrower, ok1 := args[0].(common.Address)
		cTokenCollateral, ok2 := args[1].(common.Address)
		if ok1 && ok2 {
			amt := mevtypes.ZeroAmount()
			if call.Value != nil {
				amt = call.Value
			}
			return mevtypes.Liquidation{
				SentToken:      sentToken,
				SentAmount:     amt,
				ReceivedToken:  addressbook.Underlying(cTokenCollateral),
				ReceivedAmount: nil,
				From:           call.From,
				LiquidatedUser: borrower,
			}, true
		}
	}

	return nil, false
}

// decodeLiquidationCheck handles both the comptroller pre-flight and
// the price-oracle lookup; neither implies a liquidation happened, so
// this only ever downgrades a transaction toward Checked (SetStatus
// refuses to clobber an already-observed Success).
func decodeLiquidationCheck(call *mevtypes.InternalCall, tx *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	tx.SetStatus(mevtypes.StatusChecked)

	if args, ok := tryUnpack(assets.Comptroller.Methods["liquidateBorrowAllowed"], call.Input); ok && len(args) == 5 {
		borrower, ok1 := args[3].(common.Address)
		market, ok2 := args[1].(common.Address)
		if ok1 && ok2 {
			return mevtypes.LiquidationCheck{Borrower: borrower, Market: market}, true
		}
	}

	if args, ok := tryUnpack(assets.PriceOracle.Methods["getUnderlyingPrice"], call.Input); ok && len(args) == 1 {
		if market, ok1 := args[0].(common.Address); ok1 {
			return mevtypes.LiquidationCheck{Borrower: common.Address{}, Market: market}, true
		}
	}

	return nil, false
}
