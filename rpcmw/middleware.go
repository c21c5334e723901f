// Package rpcmw is the archival-node RPC boundary (C6's external
// collaborator): it fetches traces, block bodies, receipts, and logs
// for one block at a time.
package rpcmw

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// NotFoundError marks a block that the node has no data for.
type NotFoundError struct {
	Block uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rpcmw: block %d not found", e.Block)
}

// FetchError wraps any RPC failure obtaining block data. It is
// retryable at the caller's discretion; the batch pipeline surfaces it
// as-is rather than retrying automatically.
type FetchError struct {
	Block uint64
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("rpcmw: fetch block %d: %v", e.Block, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Middleware is the archival-node RPC contract the batch pipeline
// consumes. Implementations must be safe for concurrent use by
// multiple in-flight Stage A fetches.
type Middleware interface {
	TraceBlock(ctx context.Context, number uint64) ([]RawTrace, error)
	GetBlockWithTxs(ctx context.Context, number uint64) (*RawBlock, error)
	ParityBlockReceipts(ctx context.Context, number uint64) ([]RawReceipt, error)
	GetLogs(ctx context.Context, number uint64) ([]RawLog, error)
}

// Client is the production Middleware. trace_block and
// parity_getBlockReceipts have no ethclient.Client equivalent, so those
// two go through raw CallContext; GetBlockWithTxs uses ethclient's
// BlockByNumber, which already decodes the block body's transaction
// list into typed values instead of raw JSON.
type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client
}

// Dial connects to a node's JSON-RPC endpoint (http(s):// or ws(s)://).
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("rpcmw: dial %s: %w", url, err)
	}
	return &Client{rpc: c, eth: ethclient.NewClient(c)}, nil
}

// NewClient wraps an already-dialed rpc.Client.
func NewClient(c *rpc.Client) *Client { return &Client{rpc: c, eth: ethclient.NewClient(c)} }

func (c *Client) TraceBlock(ctx context.Context, number uint64) ([]RawTrace, error) {
	var traces []RawTrace
	if err := c.rpc.CallContext(ctx, &traces, "trace_block", blockTag(number)); err != nil {
		return nil, &FetchError{Block: number, Err: err}
	}
	return traces, nil
}

func (c *Client) GetBlockWithTxs(ctx context.Context, number uint64) (*RawBlock, error) {
	block, err := c.eth.BlockByNumber(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		if err == ethereum.NotFound {
			return nil, &NotFoundError{Block: number}
		}
		return nil, &FetchError{Block: number, Err: err}
	}

	txs := make([]RawTransaction, len(block.Transactions()))
	for i, txn := range block.Transactions() {
		txs[i] = RawTransaction{
			Hash:     txn.Hash(),
			GasPrice: (*hexBigInt)(txn.GasPrice()),
		}
	}
	return &RawBlock{
		Number:       (*hexBigInt)(new(big.Int).SetUint64(block.NumberU64())),
		Hash:         block.Hash(),
		Timestamp:    (*hexBigInt)(new(big.Int).SetUint64(block.Time())),
		Transactions: txs,
	}, nil
}

func (c *Client) ParityBlockReceipts(ctx context.Context, number uint64) ([]RawReceipt, error) {
	var receipts []RawReceipt
	if err := c.rpc.CallContext(ctx, &receipts, "parity_getBlockReceipts", blockTag(number)); err != nil {
		return nil, &FetchError{Block: number, Err: err}
	}
	return receipts, nil
}

func (c *Client) GetLogs(ctx context.Context, number uint64) ([]RawLog, error) {
	filter := map[string]interface{}{
		"fromBlock": blockTag(number),
		"toBlock":   blockTag(number),
	}
	var logs []RawLog
	if err := c.rpc.CallContext(ctx, &logs, "eth_getLogs", filter); err != nil {
		return nil, &FetchError{Block: number, Err: err}
	}
	return logs, nil
}

// blockTag renders a block number the way every JSON-RPC method here
// expects it: "0x"-prefixed, no leading zeroes.
func blockTag(n uint64) string {
	return fmt.Sprintf("0x%x", n)
}
