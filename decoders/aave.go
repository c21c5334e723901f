package decoders

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// Aave decodes the lending pool's liquidationCall. Unlike Compound it
// carries both the repaid and seized amounts on one call, so it does
// not need a reducer join: the LiquidationCall event alone resolves
// both legs.
type Aave struct{}

// NewAave returns a ready-to-register Aave decoder.
func NewAave() *Aave { return &Aave{} }

func (Aave) Protocol() string { return "Aave" }

func (Aave) IsProtocolAddress(mevtypes.Address) (bool, bool) { return false, false }

func (Aave) IsProtocolEvent(log mevtypes.EventLog) bool {
	return log.Topic0() == assets.AavePool.Events["LiquidationCall"].ID
}

func (Aave) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	if matchesSelector(sel, assets.AavePool.Methods["liquidationCall"]) {
		return mevtypes.ClassificationLiquidation, true
	}
	return mevtypes.ClassificationUnknown, false
}

func (Aave) DecodeCallAction(call *mevtypes.InternalCall, tx *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	if call.Classification != mevtypes.ClassificationLiquidation {
		return nil, false
	}
	if call.CallType == mevtypes.CallTypeDelegateCall {
		return nil, false
	}

	logs := mevtypes.CallLogsDecoded(tx, call.TraceAddress, decodeLiquidationCallEvent)
	if len(logs) == 0 {
		return nil, false
	}
	ev := logs[0].Decoded
	tx.SetStatus(mevtypes.StatusSuccess)
	return mevtypes.Liquidation{
		SentToken:      ev.DebtAsset,
		SentAmount:     ev.DebtToCover,
		ReceivedToken:  ev.CollateralAsset,
		ReceivedAmount: ev.LiquidatedCollateralAmount,
		From:           ev.Liquidator,
		LiquidatedUser: ev.User,
	}, true
}

type liquidationCallEvent struct {
	CollateralAsset            common.Address
	DebtAsset                  common.Address
	User                       common.Address
	DebtToCover                *uint256.Int
	LiquidatedCollateralAmount *uint256.Int
	Liquidator                 common.Address
}

func decodeLiquidationCallEvent(log mevtypes.EventLog) (liquidationCallEvent, bool) {
	if log.Topic0() != assets.AavePool.Events["LiquidationCall"].ID || len(log.Topics) != 4 {
		return liquidationCallEvent{}, false
	}
	args, err := assets.AavePool.Events["LiquidationCall"].Inputs.NonIndexed().Unpack(log.Data)
	if err != nil || len(args) != 4 {
		return liquidationCallEvent{}, false
	}
	debtToCover, ok1 := args[0].(*big.Int)
	liquidatedAmount, ok2 := args[1].(*big.Int)
	liquidator, ok3 := args[2].(common.Address)
	if !ok1 || !ok2 || !ok3 {
		return liquidationCallEvent{}, false
	}
	return liquidationCallEvent{
		CollateralAsset:            common.BytesToAddress(log.Topics[1].Bytes()),
		DebtAsset:                  common.BytesToAddress(log.Topics[2].Bytes()),
		User:                       common.BytesToAddress(log.Topics[3].Bytes()),
		DebtToCover:                uint256.MustFromBig(debtToCover),
		LiquidatedCollateralAmount: uint256.MustFromBig(liquidatedAmount),
		Liquidator:                 liquidator,
	}, true
}
