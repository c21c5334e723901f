// Package inspector implements the inspector pass (C3): applying every
// registered protocol decoder to every call and log of one transaction.
package inspector

import (
	"github.com/ethinspect/mevtrace/decoders"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// Pass classifies every call in tx against registry, decodes an action
// for every call that got classified, and tags the transaction's
// protocol set from its logs. Calls are visited in depth-first
// pre-order, matching TraceAddress's lexicographic order, so outer calls
// are classified and decoded before inner ones.
func Pass(tx *mevtypes.TransactionData, registry *decoders.Registry) {
	decs := registry.Decoders()

	// Step 1: classify every call. First decoder to claim a call wins;
	// classification is monotonic for the rest of the pipeline once set.
	for _, call := range tx.Calls() {
		if call.Classification != mevtypes.ClassificationUnknown {
			continue
		}
		for _, d := range decs {
			if ok, known := d.IsProtocolAddress(call.To); known && !ok {
				continue
			}
			if classification, matched := d.ClassifyCall(call); matched {
				call.Protocol = d.Protocol()
				call.Classification = classification
				tx.AddProtocol(call.Protocol)
				break
			}
		}
	}

	// Step 2: decode an action for every classified call, in the same
	// pre-order. Only the decoder that claimed the call is asked.
	byProtocol := make(map[string]decoders.Decoder, len(decs))
	for _, d := range decs {
		byProtocol[d.Protocol()] = d
	}
	for _, call := range tx.Calls() {
		if call.Protocol == "" {
			continue
		}
		d, ok := byProtocol[call.Protocol]
		if !ok {
			continue
		}
		if action, matched := d.DecodeCallAction(call, tx); matched {
			tx.AddAction(&mevtypes.Action{
				Variant:      action,
				TraceAddress: call.TraceAddress,
			})
		}
	}

	// Step 3: tag the transaction's protocol set from every log any
	// decoder recognizes as its own, independent of call classification.
	for _, log := range tx.Logs() {
		for _, d := range decs {
			if d.IsProtocolEvent(log) {
				tx.AddProtocol(d.Protocol())
			}
		}
	}
}
