package decoders

import (
	"bytes"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// matchesSelector reports whether a call's 4-byte selector matches m's.
// abi.Method zero-values (a name miss on the Methods map) carry a nil
// ID, so this is also safe to call with a method that doesn't exist.
func matchesSelector(selector []byte, m abi.Method) bool {
	return len(m.ID) == 4 && bytes.Equal(selector, m.ID)
}

// tryUnpack decodes call data against m, swallowing any error into ok=false.
func tryUnpack(m abi.Method, data []byte) ([]interface{}, bool) {
	if len(data) < 4 {
		return nil, false
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, false
	}
	return args, true
}
