package mevtypes

import "sort"

// Status summarizes the outcome of a transaction as seen by the
// pipeline. Success wins once observed; Reverted is sticky against
// Checked but gives way to a later Success; absent either, a transaction
// that only ever showed a liquidation pre-flight is Checked. See
// SPEC_FULL.md §14(a) for the precedence rationale.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusReverted
	StatusChecked
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusReverted:
		return "reverted"
	case StatusChecked:
		return "checked"
	default:
		return "unknown"
	}
}

// TransactionData owns one transaction's call tree, its logs, and the
// actions classification/reduction have produced so far. It is mutated
// in place by the inspector and reducer passes, then treated as
// immutable input to evaluation.
type TransactionData struct {
	Hash        Hash
	BlockNumber uint64
	Status      Status

	// calls is kept sorted in depth-first pre-order (lexicographic order
	// of TraceAddress), which is the order inspectors must iterate in.
	calls []*InternalCall
	logs  []EventLog

	Actions   []*Action
	protocols map[string]struct{}
}

// NewTransactionData builds a TransactionData from raw calls and logs.
// Calls are sorted into pre-order; logs are sorted by LogIndex.
func NewTransactionData(hash Hash, blockNumber uint64, calls []*InternalCall, logs []EventLog) *TransactionData {
	sortedCalls := append([]*InternalCall(nil), calls...)
	sort.Slice(sortedCalls, func(i, j int) bool {
		return lessTraceAddress(sortedCalls[i].TraceAddress, sortedCalls[j].TraceAddress)
	})
	sortedLogs := append([]EventLog(nil), logs...)
	sort.Slice(sortedLogs, func(i, j int) bool { return sortedLogs[i].LogIndex < sortedLogs[j].LogIndex })

	return &TransactionData{
		Hash:        hash,
		BlockNumber: blockNumber,
		Status:      StatusUnknown,
		calls:       sortedCalls,
		logs:        sortedLogs,
		protocols:   make(map[string]struct{}),
	}
}

func lessTraceAddress(a, b TraceAddress) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Calls returns every call in the transaction in depth-first pre-order.
// Inspector passes rely on this ordering so outer calls are classified
// before their inner subcalls.
func (tx *TransactionData) Calls() []*InternalCall { return tx.calls }

// Logs returns every log in the transaction in log-index order.
func (tx *TransactionData) Logs() []EventLog { return tx.logs }

// CallAt returns the call with the given trace address, or nil.
func (tx *TransactionData) CallAt(addr TraceAddress) *InternalCall {
	for _, c := range tx.calls {
		if c.TraceAddress.Equal(addr) {
			return c
		}
	}
	return nil
}

// SubcallsOf returns the immediate children of the call at addr: calls
// whose TraceAddress is addr with exactly one extra trailing index.
func (tx *TransactionData) SubcallsOf(addr TraceAddress) []*InternalCall {
	var out []*InternalCall
	for _, c := range tx.calls {
		if len(c.TraceAddress) == len(addr)+1 && addr.IsAncestorOf(c.TraceAddress) {
			out = append(out, c)
		}
	}
	return out
}

// DescendantsOf returns every call strictly beneath addr in the tree,
// regardless of depth.
func (tx *TransactionData) DescendantsOf(addr TraceAddress) []*InternalCall {
	var out []*InternalCall
	for _, c := range tx.calls {
		if addr.IsAncestorOf(c.TraceAddress) {
			out = append(out, c)
		}
	}
	return out
}

// LogsAt returns the logs emitted by the call at addr or any call in its
// subtree. Raw traces carry no explicit call-to-log index, so this
// correlates by contract address instead: a log belongs to addr's
// subtree if its Address matches addr's own call or one of its
// descendants' To address. This is an approximation (two distinct calls
// to the same contract within one subtree are indistinguishable), but it
// correctly excludes logs emitted by contracts outside the subtree
// entirely, which is what callers like CallLogsDecoded rely on to avoid
// pairing a call with another, unrelated call's log elsewhere in the
// same transaction.
func (tx *TransactionData) LogsAt(addr TraceAddress) []EventLog {
	call := tx.CallAt(addr)
	if call == nil {
		return nil
	}
	addrs := map[Address]struct{}{call.To: {}}
	for _, d := range tx.DescendantsOf(addr) {
		addrs[d.To] = struct{}{}
	}
	var out []EventLog
	for _, log := range tx.logs {
		if _, ok := addrs[log.Address]; ok {
			out = append(out, log)
		}
	}
	return out
}

// AddAction appends a newly classified action to the transaction.
func (tx *TransactionData) AddAction(a *Action) { tx.Actions = append(tx.Actions, a) }

// ActionsKnown returns every non-pruned action, in insertion order. This
// is the "actions" iteration surface: reducers and the evaluator only
// ever look at known (non-pruned) actions.
func (tx *TransactionData) ActionsKnown() []*Action {
	out := make([]*Action, 0, len(tx.Actions))
	for _, a := range tx.Actions {
		if !a.Pruned {
			out = append(out, a)
		}
	}
	return out
}

// AddProtocol records that a protocol's decoder claimed some call or log
// of this transaction.
func (tx *TransactionData) AddProtocol(tag string) { tx.protocols[tag] = struct{}{} }

// Protocols returns the set of protocol tags discovered in this
// transaction.
func (tx *TransactionData) Protocols() []string {
	out := make([]string, 0, len(tx.protocols))
	for p := range tx.protocols {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// HasProtocol reports whether a protocol tag was discovered.
func (tx *TransactionData) HasProtocol(tag string) bool {
	_, ok := tx.protocols[tag]
	return ok
}

// SetStatus applies the status precedence rule: Success wins once set
// and is never downgraded; Reverted can only be replaced by Success;
// otherwise the transaction takes whatever status is set.
func (tx *TransactionData) SetStatus(s Status) {
	switch tx.Status {
	case StatusSuccess:
		return
	case StatusReverted:
		if s == StatusSuccess {
			tx.Status = StatusSuccess
		}
		return
	default:
		tx.Status = s
	}
}

// DecodedLog pairs a raw log with a value some decoder extracted from it.
type DecodedLog[T any] struct {
	Log     EventLog
	Decoded T
}

// CallLogsDecoded is the primary mechanism decoders use to correlate a
// call with the logs its protocol emitted: it returns every log under
// addr's subtree whose decode function succeeds. It is a package-level
// generic function rather than a method because Go methods cannot carry
// their own type parameters.
func CallLogsDecoded[T any](tx *TransactionData, addr TraceAddress, decode func(EventLog) (T, bool)) []DecodedLog[T] {
	var out []DecodedLog[T]
	for _, log := range tx.LogsAt(addr) {
		if v, ok := decode(log); ok {
			out = append(out, DecodedLog[T]{Log: log, Decoded: v})
		}
	}
	return out
}
