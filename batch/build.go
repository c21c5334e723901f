package batch

import (
	"strings"

	"github.com/holiman/uint256"

	"github.com/ethinspect/mevtrace/mevtypes"
	"github.com/ethinspect/mevtrace/rpcmw"
)

// gasInfo is what Stage C needs from a transaction's receipt/body to
// compute gas_cost.
type gasInfo struct {
	GasUsed  uint64
	GasPrice *uint256.Int
}

// buildTransactions groups one block's traces by transaction hash
// (preserving trace order), attaches each transaction's logs, and
// returns one TransactionData per transaction plus its gas figures.
func buildTransactions(info *rpcmw.BlockInfo) ([]*mevtypes.TransactionData, map[mevtypes.Hash]gasInfo) {
	order := make([]mevtypes.Hash, 0)
	calls := make(map[mevtypes.Hash][]*mevtypes.InternalCall)

	for i := range info.Traces {
		t := &info.Traces[i]
		if t.Type != "" && t.Type != "call" {
			continue // create/suicide/reward traces carry no economic action
		}
		h := t.TransactionHash
		if _, seen := calls[h]; !seen {
			order = append(order, h)
		}
		calls[h] = append(calls[h], rawTraceToCall(t))
	}

	logs := make(map[mevtypes.Hash][]mevtypes.EventLog)
	for _, l := range info.Logs {
		logs[l.TxHash] = append(logs[l.TxHash], rawLogToEventLog(l))
	}

	gas := make(map[mevtypes.Hash]gasInfo)
	for _, r := range info.Receipts {
		gi := gasInfo{}
		if r.GasUsed != nil {
			gi.GasUsed = r.GasUsed.Big().Uint64()
		}
		if r.EffectiveGasPrice != nil {
			gi.GasPrice = uint256.MustFromBig(r.EffectiveGasPrice.Big())
		}
		gas[r.TransactionHash] = gi
	}
	if info.Block != nil {
		for _, txn := range info.Block.Transactions {
			gi, ok := gas[txn.Hash]
			if ok && gi.GasPrice == nil && txn.GasPrice != nil {
				gi.GasPrice = uint256.MustFromBig(txn.GasPrice.Big())
				gas[txn.Hash] = gi
			}
		}
	}

	var blockNumber uint64
	if info.Block != nil && info.Block.Number != nil {
		blockNumber = info.Block.Number.Big().Uint64()
	} else {
		blockNumber = info.Number
	}

	txs := make([]*mevtypes.TransactionData, 0, len(order))
	for _, h := range order {
		tx := mevtypes.NewTransactionData(h, blockNumber, calls[h], logs[h])
		txs = append(txs, tx)
		if _, ok := gas[h]; !ok {
			gas[h] = gasInfo{}
		}
	}
	return txs, gas
}

func rawTraceToCall(t *rpcmw.RawTrace) *mevtypes.InternalCall {
	call := &mevtypes.InternalCall{
		From:         t.Action.From,
		To:           t.Action.To,
		CallType:     parseCallType(t.Action.CallType),
		TraceAddress: append(mevtypes.TraceAddress(nil), t.TraceAddress...),
		Input:        []byte(t.Action.Input),
		Status:       mevtypes.CallStatusSuccess,
	}
	if t.Action.Value != nil {
		call.Value = uint256.MustFromBig(t.Action.Value.Big())
	} else {
		call.Value = mevtypes.ZeroAmount()
	}
	if t.Error != "" {
		call.Status = mevtypes.CallStatusReverted
	}
	if t.Result != nil && t.Result.GasUsed != nil {
		call.GasUsed = t.Result.GasUsed.Big().Uint64()
	}
	return call
}

func parseCallType(s string) mevtypes.CallType {
	switch strings.ToLower(s) {
	case "call":
		return mevtypes.CallTypeCall
	case "delegatecall":
		return mevtypes.CallTypeDelegateCall
	case "staticcall":
		return mevtypes.CallTypeStaticCall
	case "callcode":
		return mevtypes.CallTypeCallCode
	case "create", "create2":
		return mevtypes.CallTypeCreate
	default:
		return mevtypes.CallTypeUnknown
	}
}

func rawLogToEventLog(l rpcmw.RawLog) mevtypes.EventLog {
	topics := make([]mevtypes.Hash, len(l.Topics))
	copy(topics, l.Topics)
	idx := uint(0)
	if l.Index != nil {
		idx = uint(l.Index.Big().Uint64())
	}
	return mevtypes.EventLog{
		Address:  l.Address,
		Topics:   topics,
		Data:     []byte(l.Data),
		TxHash:   l.TxHash,
		LogIndex: idx,
	}
}
