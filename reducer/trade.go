package reducer

import "github.com/ethinspect/mevtrace/mevtypes"

// TradeReducer folds opposing transfer pairs into Trade actions. It
// runs two passes: first it pairs the immediate child transfers of
// every call a decoder tagged Swap (Balancer pool swaps, Uniswap V2
// swaps, Curve exchanges — the decoder only tags Classification, it
// does not build the Trade itself, see decoders.Balancer); second it
// pairs any remaining opposing transfers anywhere in the nested tree,
// covering proxy-routed swaps (Balancer's exchange proxy, zapper
// contracts) whose two legs are not siblings.
type TradeReducer struct{}

func (TradeReducer) Reduce(tx *mevtypes.TransactionData) {
	reduceSwapTaggedCalls(tx)
	reduceNestedTransferPairs(tx)
}

func reduceSwapTaggedCalls(tx *mevtypes.TransactionData) {
	for _, call := range tx.Calls() {
		if call.Classification != mevtypes.ClassificationSwap {
			continue
		}
		var in, out *mevtypes.Action
		for _, a := range tx.ActionsKnown() {
			t, ok := a.Variant.(mevtypes.Transfer)
			if !ok || len(a.TraceAddress) != len(call.TraceAddress)+1 || !call.TraceAddress.IsAncestorOf(a.TraceAddress) {
				continue
			}
			switch {
			case t.To == call.To:
				in = a
			case t.From == call.To:
				out = a
			}
		}
		if in == nil || out == nil {
			continue
		}
		t1 := in.Variant.(mevtypes.Transfer)
		t2 := out.Variant.(mevtypes.Transfer)
		if t1.From != t2.To || t2.From != t1.To {
			continue
		}
		trade := mevtypes.Trade{T1: t1, T2: t2}
		if actionEqualsKnown(tx, trade) {
			continue
		}
		tx.AddAction(&mevtypes.Action{Variant: trade, TraceAddress: call.TraceAddress})
		in.Pruned = true
		out.Pruned = true
	}
}

// reduceNestedTransferPairs pairs any two still-known transfers of
// different tokens whose parties mirror each other (t1.From == t2.To and
// t2.From == t1.To), wherever their calls sit in the tree; amounts are
// not compared. This generalized case
// covers routes a protocol-specific decoder never tagged at all.
func reduceNestedTransferPairs(tx *mevtypes.TransactionData) {
	actions := tx.ActionsKnown()
	for i := 0; i < len(actions); i++ {
		a := actions[i]
		if a.Pruned {
			continue
		}
		t1, ok := a.Variant.(mevtypes.Transfer)
		if !ok {
			continue
		}
		for j := i + 1; j < len(actions); j++ {
			b := actions[j]
			if b.Pruned {
				continue
			}
			t2, ok := b.Variant.(mevtypes.Transfer)
			if !ok {
				continue
			}
			if t1.From != t2.To || t2.From != t1.To || t1.Token == t2.Token {
				continue
			}
			trade := mevtypes.Trade{T1: t1, T2: t2}
			if actionEqualsKnown(tx, trade) {
				continue
			}
			tx.AddAction(&mevtypes.Action{Variant: trade, TraceAddress: a.TraceAddress})
			a.Pruned = true
			b.Pruned = true
			break
		}
	}
}
