package rpcmw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

// newFakeNode starts an httptest JSON-RPC 2.0 server that answers each
// registered method with a canned raw JSON result, mimicking the shape
// an archival node's trace_block/parity_getBlockReceipts/eth_getLogs
// responses take on the wire.
func newFakeNode(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, ok := responses[req.Method]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":` + result + `}`))
	}))
	return srv
}

func dialFake(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := rpc.DialContext(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("dial fake node: %v", err)
	}
	return NewClient(c)
}

func TestClient_TraceBlock(t *testing.T) {
	srv := newFakeNode(t, map[string]string{
		"trace_block": `[{"action":{"from":"0x1111111111111111111111111111111111111111","to":"0x2222222222222222222222222222222222222222","value":"0x1","gas":"0x5208","input":"0x","callType":"call"},"result":{"gasUsed":"0x5208","output":"0x"},"traceAddress":[],"transactionHash":"0x3333333333333333333333333333333333333333333333333333333333333c","transactionPosition":0,"type":"call"}]`,
	})
	defer srv.Close()

	traces, err := dialFake(t, srv).TraceBlock(context.Background(), 100)
	if err != nil {
		t.Fatalf("TraceBlock: %v", err)
	}
	if len(traces) != 1 {
		t.Fatalf("len(traces) = %d, want 1", len(traces))
	}
	if traces[0].Action.CallType != "call" {
		t.Fatalf("CallType = %q, want call", traces[0].Action.CallType)
	}
}

func TestClient_TraceBlock_PropagatesFetchError(t *testing.T) {
	srv := newFakeNode(t, map[string]string{})
	defer srv.Close()

	_, err := dialFake(t, srv).TraceBlock(context.Background(), 100)
	if err == nil {
		t.Fatalf("expected an error for an unregistered method")
	}
	if _, ok := err.(*FetchError); !ok {
		t.Fatalf("err = %T(%v), want *FetchError", err, err)
	}
}

func TestClient_ParityBlockReceipts(t *testing.T) {
	srv := newFakeNode(t, map[string]string{
		"parity_getBlockReceipts": `[{"transactionHash":"0x3333333333333333333333333333333333333333333333333333333333333c","gasUsed":"0x5208","effectiveGasPrice":"0x3b9aca00","status":"0x1","logs":[]}]`,
	})
	defer srv.Close()

	receipts, err := dialFake(t, srv).ParityBlockReceipts(context.Background(), 100)
	if err != nil {
		t.Fatalf("ParityBlockReceipts: %v", err)
	}
	if len(receipts) != 1 || receipts[0].Status.Big().Int64() != 1 {
		t.Fatalf("receipts = %+v, want one successful receipt", receipts)
	}
}

func TestClient_GetLogs(t *testing.T) {
	srv := newFakeNode(t, map[string]string{
		"eth_getLogs": `[{"address":"0x2222222222222222222222222222222222222222","topics":["0x3333333333333333333333333333333333333333333333333333333333333c"],"data":"0x","transactionHash":"0x4444444444444444444444444444444444444444444444444444444444444d","logIndex":"0x0"}]`,
	})
	defer srv.Close()

	logs, err := dialFake(t, srv).GetLogs(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("len(logs) = %d, want 1", len(logs))
	}
}

func TestDial_ConnectsToAReachableEndpoint(t *testing.T) {
	srv := newFakeNode(t, map[string]string{"eth_getLogs": `[]`})
	defer srv.Close()

	c, err := Dial(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	if _, err := c.GetLogs(context.Background(), 1); err != nil {
		t.Fatalf("GetLogs after Dial: %v", err)
	}
}

func TestBlockTag_FormatsAsHexNoLeadingZeroes(t *testing.T) {
	if got := blockTag(255); got != "0xff" {
		t.Fatalf("blockTag(255) = %q, want 0xff", got)
	}
	if got := blockTag(0); got != "0x0" {
		t.Fatalf("blockTag(0) = %q, want 0x0", got)
	}
}
