package sink

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/mevtypes"
)

func newTestEvaluation(block uint64, hashByte byte) *mevtypes.Evaluation {
	tx := mevtypes.NewTransactionData(common.Hash{hashByte}, block, nil, nil)
	return &mevtypes.Evaluation{
		Transaction: tx,
		GasUsed:     21000,
		GasPrice:    uint256.NewInt(1_000_000_000),
		Profit:      uint256.NewInt(500),
		QuoteToken:  common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"),
	}
}

func TestLevelDBSink_InsertAndKeyOrder(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenLevelDB(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("OpenLevelDB: %v", err)
	}
	defer s.Close()

	ev1 := newTestEvaluation(100, 0x01)
	ev2 := newTestEvaluation(100, 0x02)

	if err := s.Insert(context.Background(), ev1); err != nil {
		t.Fatalf("insert ev1: %v", err)
	}
	if err := s.Insert(context.Background(), ev2); err != nil {
		t.Fatalf("insert ev2: %v", err)
	}

	k1 := evalKey(ev1)
	k2 := evalKey(ev2)
	if len(k1) != len(k2) {
		t.Fatalf("key lengths differ: %d vs %d", len(k1), len(k2))
	}
	// Same block prefix (first 8 bytes), differing hash suffix.
	for i := 0; i < 8; i++ {
		if k1[i] != k2[i] {
			t.Fatalf("block prefix mismatch at byte %d", i)
		}
	}
}

func TestLevelDBSink_InsertNilIsPermanent(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenLevelDB(filepath.Join(dir, "db"))
	if err != nil {
		t.Fatalf("OpenLevelDB: %v", err)
	}
	defer s.Close()

	err = s.Insert(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected error inserting nil evaluation")
	}
	var perm *PermanentError
	if !errors.As(err, &perm) {
		t.Fatalf("expected a *PermanentError, got %T: %v", err, err)
	}
}

func TestToRecord_RoundTripsAmounts(t *testing.T) {
	ev := newTestEvaluation(42, 0x09)
	ev.PerToken = []mevtypes.TokenProfit{
		{Token: common.HexToAddress("0x1111111111111111111111111111111111111111"), Amount: uint256.NewInt(7), Negative: true},
	}
	rec := toRecord(ev)
	if rec.Profit != "500" {
		t.Fatalf("Profit = %q, want %q", rec.Profit, "500")
	}
	if len(rec.PerToken) != 1 || rec.PerToken[0].Amount != "7" || !rec.PerToken[0].Negative {
		t.Fatalf("PerToken = %+v", rec.PerToken)
	}
}
