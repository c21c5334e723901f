package rpcmw

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RawTrace is one entry of a parity-style trace_block response. Only
// the call-action shape is modeled; create/suicide/reward traces are
// skipped by the caller (see batch.buildTransactions).
type RawTrace struct {
	Action struct {
		From     common.Address `json:"from"`
		To       common.Address `json:"to"`
		Value    *hexBigInt     `json:"value"`
		Gas      *hexBigInt     `json:"gas"`
		Input    hexBytes       `json:"input"`
		CallType string         `json:"callType"`
	} `json:"action"`
	Result *struct {
		GasUsed *hexBigInt `json:"gasUsed"`
		Output  hexBytes   `json:"output"`
	} `json:"result"`
	Error            string `json:"error"`
	TraceAddress     []int  `json:"traceAddress"`
	TransactionHash  common.Hash `json:"transactionHash"`
	TransactionPos   int         `json:"transactionPosition"`
	Type             string      `json:"type"`
}

// RawReceipt is the subset of eth_getTransactionReceipt / parity
// parity_getBlockReceipts fields the evaluator needs.
type RawReceipt struct {
	TransactionHash   common.Hash `json:"transactionHash"`
	GasUsed           *hexBigInt  `json:"gasUsed"`
	EffectiveGasPrice *hexBigInt  `json:"effectiveGasPrice"`
	Status            *hexBigInt  `json:"status"`
	Logs              []RawLog    `json:"logs"`
}

// RawLog mirrors an eth_getLogs entry.
type RawLog struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexBytes       `json:"data"`
	TxHash  common.Hash    `json:"transactionHash"`
	Index   *hexBigInt     `json:"logIndex"`
}

// RawTransaction is the subset of a block body's transaction list the
// evaluator needs for gas price lookup when a receipt lacks
// effectiveGasPrice (pre-EIP-1559 nodes).
type RawTransaction struct {
	Hash     common.Hash `json:"hash"`
	GasPrice *hexBigInt  `json:"gasPrice"`
}

// RawBlock is the subset of eth_getBlockByNumber(fullTx=true) needed to
// pair transactions with their gas price.
type RawBlock struct {
	Number       *hexBigInt       `json:"number"`
	Hash         common.Hash      `json:"hash"`
	Timestamp    *hexBigInt       `json:"timestamp"`
	Transactions []RawTransaction `json:"transactions"`
}

// BlockInfo is the joint result of Stage A's four concurrent RPC
// calls for one block.
type BlockInfo struct {
	Number   uint64
	Traces   []RawTrace
	Block    *RawBlock
	Receipts []RawReceipt
	Logs     []RawLog
}

// hexBigInt decodes both 0x-prefixed hex and bare-integer JSON, which
// is what go-ethereum's geth and parity-descended clients respectively
// emit for these fields across node implementations.
type hexBigInt big.Int

func (h *hexBigInt) Big() *big.Int { return (*big.Int)(h) }
