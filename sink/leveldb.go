package sink

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// record is the on-disk representation of an Evaluation. Amounts are
// stored as decimal strings since uint256.Int has no native gob/json
// support that round-trips through leveldb's []byte values.
type record struct {
	Transaction    string            `json:"transaction"`
	GasUsed        uint64            `json:"gas_used"`
	GasPrice       string            `json:"gas_price"`
	Profit         string            `json:"profit"`
	ProfitNegative bool              `json:"profit_negative"`
	QuoteToken     string            `json:"quote_token"`
	PerToken       []recordTokenLeg  `json:"per_token,omitempty"`
}

type recordTokenLeg struct {
	Token    string `json:"token"`
	Amount   string `json:"amount"`
	Negative bool   `json:"negative"`
}

// LevelDBSink persists Evaluations keyed by block number then
// transaction hash, so a range scan over a block prefix yields every
// evaluation for that block in order.
type LevelDBSink struct {
	db *leveldb.DB
}

// OpenLevelDB opens (creating if absent) a goleveldb database at path.
func OpenLevelDB(path string) (*LevelDBSink, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}
	return &LevelDBSink{db: db}, nil
}

func (s *LevelDBSink) Insert(ctx context.Context, ev *mevtypes.Evaluation) error {
	if ev == nil {
		return &PermanentError{Err: fmt.Errorf("nil evaluation")}
	}
	rec := toRecord(ev)
	data, err := json.Marshal(rec)
	if err != nil {
		return &PermanentError{Err: err}
	}
	key := evalKey(ev)
	if err := s.db.Put(key, data, nil); err != nil {
		return fmt.Errorf("sink: put %x: %w", key, err)
	}
	return nil
}

func (s *LevelDBSink) Close() error { return s.db.Close() }

// evalKey orders records by block number (big-endian, for correct byte
// ordering) then by transaction hash, so prefix scans by block work.
func evalKey(ev *mevtypes.Evaluation) []byte {
	hashBytes := ev.Transaction.Hash.Bytes()
	key := make([]byte, 8+len(hashBytes))
	binary.BigEndian.PutUint64(key[:8], ev.Transaction.BlockNumber)
	copy(key[8:], hashBytes)
	return key
}

func toRecord(ev *mevtypes.Evaluation) record {
	rec := record{
		Transaction:    ev.Transaction.Hash.Hex(),
		GasUsed:        ev.GasUsed,
		ProfitNegative: ev.ProfitNegative,
		QuoteToken:     ev.QuoteToken.Hex(),
	}
	if ev.GasPrice != nil {
		rec.GasPrice = ev.GasPrice.Dec()
	}
	if ev.Profit != nil {
		rec.Profit = ev.Profit.Dec()
	}
	for _, t := range ev.PerToken {
		leg := recordTokenLeg{Token: t.Token.Hex(), Negative: t.Negative}
		if t.Amount != nil {
			leg.Amount = t.Amount.Dec()
		}
		rec.PerToken = append(rec.PerToken, leg)
	}
	return rec
}
