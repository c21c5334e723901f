// Package decoders implements the protocol decoder registry (C1): one
// Decoder per DeFi protocol, tried in registration order against every
// call and log of a transaction.
package decoders

import (
	"sync"

	"github.com/ethinspect/mevtrace/mevtypes"
)

// Decoder is implemented by one protocol's classifier. All methods must
// be safe against adversarially malformed input; a failed decode is a
// normal negative result, never a panic or error. The only side effect
// allowed is DecodeCallAction updating tx's status via SetStatus.
type Decoder interface {
	// Protocol returns the tag this decoder stamps onto calls and
	// transactions it claims, e.g. "UniswapV2", "Balancer", "Compound".
	Protocol() string

	// IsProtocolAddress tri-values whether addr belongs to this
	// protocol: true/false when it can tell, and ok=false when the
	// address alone is not enough signal and classify_call should be
	// tried regardless.
	IsProtocolAddress(addr mevtypes.Address) (value bool, ok bool)

	// IsProtocolEvent reports whether log decodes under any event
	// schema this protocol defines.
	IsProtocolEvent(log mevtypes.EventLog) bool

	// ClassifyCall attempts to match call's selector and argument tuple
	// against this protocol's ABI. On success it returns the
	// classification to stamp onto the call.
	ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool)

	// DecodeCallAction builds the higher-level action for a call this
	// decoder has already classified. tx is supplied for log and
	// subtrace lookup.
	DecodeCallAction(call *mevtypes.InternalCall, tx *mevtypes.TransactionData) (mevtypes.SpecificAction, bool)
}

// Registry is an ordered, immutable-after-construction collection of
// decoders. It is freely shared across goroutines: Register, Freeze and
// Decoders are guarded by a read-write mutex, matching the
// construct-once-then-share-forever lifecycle the rest of the pipeline
// assumes.
type Registry struct {
	mu       sync.RWMutex
	decoders []Decoder
	frozen   bool
}

// NewRegistry returns an empty registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a decoder. Order matters: it is the order
// ClassifyCall is tried in, and the first decoder to claim a call wins.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic("decoders: Register called after Freeze")
	}
	r.decoders = append(r.decoders, d)
}

// Freeze marks the registry read-only. Calling it is optional but
// documents the construct-once intent; Decoders returns a defensive
// copy regardless.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Decoders returns the registered decoders in registration order.
func (r *Registry) Decoders() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Decoder, len(r.decoders))
	copy(out, r.decoders)
	return out
}
