package reducer

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

func TestLiquidationReducer_JoinsSeizeByMatchingBorrower(t *testing.T) {
	borrower := common.HexToAddress("0x1111111111111111111111111111111111111111")
	liquidator := common.HexToAddress("0x2222222222222222222222222222222222222222")
	collateral := common.HexToAddress("0x3333333333333333333333333333333333333333")

	seizeInput, err := assets.CToken.Pack("seize", liquidator, borrower, big.NewInt(500))
	if err != nil {
		t.Fatalf("pack seize: %v", err)
	}
	seizeCall := &mevtypes.InternalCall{TraceAddress: mevtypes.TraceAddress{0, 0}, Input: seizeInput}
	tx := mevtypes.NewTransactionData(mevtypes.Hash{}, 1, []*mevtypes.InternalCall{
		{TraceAddress: mevtypes.TraceAddress{0}}, seizeCall,
	}, nil)

	orphan := &mevtypes.Action{
		TraceAddress: mevtypes.TraceAddress{0},
		Variant: mevtypes.Liquidation{
			SentToken:      common.HexToAddress("0x4444444444444444444444444444444444444444"),
			SentAmount:     uint256.NewInt(1000),
			ReceivedToken:  collateral,
			LiquidatedUser: borrower,
		},
	}
	tx.AddAction(orphan)

	(LiquidationReducer{}).Reduce(tx)

	liq := orphan.Variant.(mevtypes.Liquidation)
	if !liq.HasReceivedLeg() {
		t.Fatalf("expected the liquidation to be joined with a received leg")
	}
	if !liq.ReceivedAmount.Eq(uint256.NewInt(500)) {
		t.Fatalf("ReceivedAmount = %s, want 500", liq.ReceivedAmount)
	}
	if tx.Status != mevtypes.StatusSuccess {
		t.Fatalf("tx.Status = %s, want success", tx.Status)
	}
}

func TestLiquidationReducer_JoinsSeizeInternalVariant(t *testing.T) {
	borrower := common.HexToAddress("0x1111111111111111111111111111111111111111")
	liquidator := common.HexToAddress("0x2222222222222222222222222222222222222222")
	seizerToken := common.HexToAddress("0x5555555555555555555555555555555555555555")

	seizeInput, err := assets.CToken.Pack("seizeInternal", seizerToken, liquidator, borrower, big.NewInt(700))
	if err != nil {
		t.Fatalf("pack seizeInternal: %v", err)
	}
	seizeCall := &mevtypes.InternalCall{TraceAddress: mevtypes.TraceAddress{0, 0}, Input: seizeInput}
	tx := mevtypes.NewTransactionData(mevtypes.Hash{}, 1, []*mevtypes.InternalCall{
		{TraceAddress: mevtypes.TraceAddress{0}}, seizeCall,
	}, nil)

	orphan := &mevtypes.Action{
		TraceAddress: mevtypes.TraceAddress{0},
		Variant:      mevtypes.Liquidation{LiquidatedUser: borrower, SentAmount: uint256.NewInt(1)},
	}
	tx.AddAction(orphan)

	(LiquidationReducer{}).Reduce(tx)

	liq := orphan.Variant.(mevtypes.Liquidation)
	if !liq.HasReceivedLeg() || !liq.ReceivedAmount.Eq(uint256.NewInt(700)) {
		t.Fatalf("Liquidation = %+v, want ReceivedAmount=700", liq)
	}
}

func TestLiquidationReducer_MismatchedBorrowerIsNotJoined(t *testing.T) {
	borrower := common.HexToAddress("0x1111111111111111111111111111111111111111")
	otherBorrower := common.HexToAddress("0x6666666666666666666666666666666666666666")
	liquidator := common.HexToAddress("0x2222222222222222222222222222222222222222")

	seizeInput, err := assets.CToken.Pack("seize", liquidator, otherBorrower, big.NewInt(500))
	if err != nil {
		t.Fatalf("pack seize: %v", err)
	}
	seizeCall := &mevtypes.InternalCall{TraceAddress: mevtypes.TraceAddress{0, 0}, Input: seizeInput}
	tx := mevtypes.NewTransactionData(mevtypes.Hash{}, 1, []*mevtypes.InternalCall{
		{TraceAddress: mevtypes.TraceAddress{0}}, seizeCall,
	}, nil)

	orphan := &mevtypes.Action{
		TraceAddress: mevtypes.TraceAddress{0},
		Variant:      mevtypes.Liquidation{LiquidatedUser: borrower, SentAmount: uint256.NewInt(1)},
	}
	tx.AddAction(orphan)

	(LiquidationReducer{}).Reduce(tx)

	if orphan.Variant.(mevtypes.Liquidation).HasReceivedLeg() {
		t.Fatalf("expected a borrower mismatch to leave the liquidation orphaned")
	}
}

func TestLiquidationReducer_AlreadyJoinedLiquidationIsSkipped(t *testing.T) {
	borrower := common.HexToAddress("0x1111111111111111111111111111111111111111")
	tx := mevtypes.NewTransactionData(mevtypes.Hash{}, 1, nil, nil)
	joined := &mevtypes.Action{
		Variant: mevtypes.Liquidation{
			LiquidatedUser: borrower,
			SentAmount:     uint256.NewInt(1),
			ReceivedAmount: uint256.NewInt(99),
		},
	}
	tx.AddAction(joined)

	(LiquidationReducer{}).Reduce(tx)

	liq := joined.Variant.(mevtypes.Liquidation)
	if !liq.ReceivedAmount.Eq(uint256.NewInt(99)) {
		t.Fatalf("expected an already-joined liquidation to be left untouched")
	}
}
