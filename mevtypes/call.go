package mevtypes

import "github.com/holiman/uint256"

// TraceAddress locates a call within a transaction's call tree as a
// sequence of child indices; the root call has an empty TraceAddress.
// Using a slice of indices instead of parent pointers means "is A an
// ancestor of B" is a plain prefix check and the tree never has cyclic
// ownership to worry about.
type TraceAddress []int

// IsAncestorOf reports whether t is a strict prefix of other, i.e. the
// call at t contains the call at other somewhere in its subtree.
func (t TraceAddress) IsAncestorOf(other TraceAddress) bool {
	if len(t) >= len(other) {
		return false
	}
	for i, idx := range t {
		if other[i] != idx {
			return false
		}
	}
	return true
}

// IsRoot reports whether this is the outermost call of the transaction.
func (t TraceAddress) IsRoot() bool { return len(t) == 0 }

// Equal reports whether two trace addresses name the same call.
func (t TraceAddress) Equal(other TraceAddress) bool {
	if len(t) != len(other) {
		return false
	}
	for i, idx := range t {
		if other[i] != idx {
			return false
		}
	}
	return true
}

// String renders the trace address as dot-separated indices, e.g. "0.2.1".
func (t TraceAddress) String() string {
	if len(t) == 0 {
		return "root"
	}
	out := make([]byte, 0, len(t)*2)
	for i, idx := range t {
		if i > 0 {
			out = append(out, '.')
		}
		out = appendInt(out, idx)
	}
	return string(out)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	// reverse the digits we just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// CallType identifies the EVM call opcode that produced an InternalCall.
type CallType uint8

const (
	CallTypeUnknown CallType = iota
	CallTypeCall
	CallTypeDelegateCall
	CallTypeStaticCall
	CallTypeCallCode
	CallTypeCreate
)

func (c CallType) String() string {
	switch c {
	case CallTypeCall:
		return "call"
	case CallTypeDelegateCall:
		return "delegatecall"
	case CallTypeStaticCall:
		return "staticcall"
	case CallTypeCallCode:
		return "callcode"
	case CallTypeCreate:
		return "create"
	default:
		return "unknown"
	}
}

// Classification tags an InternalCall with the economic role a decoder
// has assigned it. Once set to anything other than Unknown it must never
// be reset back to Unknown for the remainder of the pipeline.
type Classification uint8

const (
	ClassificationUnknown Classification = iota
	ClassificationTransfer
	ClassificationSwap
	ClassificationLiquidation
	ClassificationLiquidationCheck
	ClassificationAddLiquidity
	ClassificationDeposit
	ClassificationWithdrawal
	ClassificationPrune
)

func (c Classification) String() string {
	switch c {
	case ClassificationTransfer:
		return "transfer"
	case ClassificationSwap:
		return "swap"
	case ClassificationLiquidation:
		return "liquidation"
	case ClassificationLiquidationCheck:
		return "liquidation_check"
	case ClassificationAddLiquidity:
		return "add_liquidity"
	case ClassificationDeposit:
		return "deposit"
	case ClassificationWithdrawal:
		return "withdrawal"
	case ClassificationPrune:
		return "prune"
	default:
		return "unknown"
	}
}

// CallStatus is whether a call succeeded or reverted.
type CallStatus uint8

const (
	CallStatusSuccess CallStatus = iota
	CallStatusReverted
)

// InternalCall is one node of a transaction's call tree. TraceAddress is
// unique within a transaction and the tree is a forest rooted at the
// empty TraceAddress: for any two calls A and B, A is an ancestor of B
// iff A.TraceAddress is a strict prefix of B.TraceAddress.
type InternalCall struct {
	From         Address
	To           Address
	Value        *uint256.Int
	Input        []byte
	CallType     CallType
	TraceAddress TraceAddress
	GasUsed      uint64
	Status       CallStatus

	// Protocol and Classification are mutated in place by the inspector
	// pass. Protocol is an empty string until a decoder claims the call.
	Protocol       string
	Classification Classification
}

// Selector returns the call's 4-byte function selector, or nil if the
// input is too short to contain one.
func (c *InternalCall) Selector() []byte {
	if len(c.Input) < 4 {
		return nil
	}
	return c.Input[:4]
}

// Succeeded reports whether the call completed without reverting.
func (c *InternalCall) Succeeded() bool { return c.Status == CallStatusSuccess }
