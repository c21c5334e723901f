package rpcmw

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// hexBytes decodes a 0x-prefixed hex string into raw bytes.
type hexBytes []byte

func (h *hexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || s == "0x" {
		*h = nil
		return nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return fmt.Errorf("rpcmw: decode hex bytes %q: %w", s, err)
	}
	*h = b
	return nil
}

func (h *hexBigInt) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "0x" {
			*h = hexBigInt(*big.NewInt(0))
			return nil
		}
		v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "0x"), 16)
		if !ok {
			return fmt.Errorf("rpcmw: decode hex int %q", s)
		}
		*h = hexBigInt(*v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rpcmw: decode int field: %w", err)
	}
	*h = hexBigInt(*big.NewInt(n))
	return nil
}
