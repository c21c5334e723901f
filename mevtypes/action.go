package mevtypes

import "github.com/holiman/uint256"

// ActionKind identifies which SpecificAction variant an Action carries.
type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionTransfer
	ActionTrade
	ActionArbitrage
	ActionLiquidation
	ActionLiquidationCheck
	ActionAddLiquidity
	ActionDeposit
	ActionWithdrawal
)

func (k ActionKind) String() string {
	switch k {
	case ActionTransfer:
		return "Transfer"
	case ActionTrade:
		return "Trade"
	case ActionArbitrage:
		return "Arbitrage"
	case ActionLiquidation:
		return "Liquidation"
	case ActionLiquidationCheck:
		return "LiquidationCheck"
	case ActionAddLiquidity:
		return "AddLiquidity"
	case ActionDeposit:
		return "Deposit"
	case ActionWithdrawal:
		return "Withdrawal"
	default:
		return "Unknown"
	}
}

// SpecificAction is implemented by every economic-action variant a
// decoder or reducer can produce. Kind lets callers dispatch without a
// type switch when they only need the tag; Equal backs the reducer
// non-double-emission rule ("skip a reduction that would produce an
// action equal to an existing non-pruned one").
type SpecificAction interface {
	Kind() ActionKind
	Equal(other SpecificAction) bool
}

// Transfer is a plain movement of one token from one address to another.
// It is the atomic unit every higher-level action (Trade, Arbitrage,
// Liquidation's legs) is ultimately built from.
type Transfer struct {
	From   Address
	To     Address
	Token  Address
	Amount *uint256.Int
}

func (Transfer) Kind() ActionKind { return ActionTransfer }

func (t Transfer) Equal(other SpecificAction) bool {
	o, ok := other.(Transfer)
	if !ok {
		return false
	}
	return t.From == o.From && t.To == o.To && t.Token == o.Token && amountEqual(t.Amount, o.Amount)
}

// Trade is two opposing transfers folded into a single swap: T1 moves
// into the pool, T2 moves out of it.
type Trade struct {
	T1 Transfer
	T2 Transfer
}

func (Trade) Kind() ActionKind { return ActionTrade }

func (t Trade) Equal(other SpecificAction) bool {
	o, ok := other.(Trade)
	if !ok {
		return false
	}
	return t.T1.Equal(o.T1) && t.T2.Equal(o.T2)
}

// Arbitrage is a cycle of trades that returns the initiator a net
// positive amount of the token they started with.
type Arbitrage struct {
	Profit *uint256.Int
	Token  Address
}

func (Arbitrage) Kind() ActionKind { return ActionArbitrage }

func (a Arbitrage) Equal(other SpecificAction) bool {
	o, ok := other.(Arbitrage)
	if !ok {
		return false
	}
	return a.Token == o.Token && amountEqual(a.Profit, o.Profit)
}

// Liquidation is a completed liquidation: the liquidator repaid
// SentAmount of SentToken on behalf of LiquidatedUser and received
// ReceivedAmount of ReceivedToken in seized collateral.
type Liquidation struct {
	SentToken       Address
	SentAmount      *uint256.Int
	ReceivedToken   Address
	ReceivedAmount  *uint256.Int
	From            Address
	LiquidatedUser  Address
}

func (Liquidation) Kind() ActionKind { return ActionLiquidation }

func (l Liquidation) Equal(other SpecificAction) bool {
	o, ok := other.(Liquidation)
	if !ok {
		return false
	}
	return l.SentToken == o.SentToken && l.ReceivedToken == o.ReceivedToken &&
		l.From == o.From && l.LiquidatedUser == o.LiquidatedUser &&
		amountEqual(l.SentAmount, o.SentAmount) && amountEqual(l.ReceivedAmount, o.ReceivedAmount)
}

// HasReceivedLeg reports whether the seize side of the liquidation has
// already been joined. An orphan Liquidation (decoded but lacking its
// seize subcall) has a nil ReceivedAmount.
func (l Liquidation) HasReceivedLeg() bool { return l.ReceivedAmount != nil }

// LiquidationCheck is a pre-flight (a comptroller/oracle call). It is
// recorded whenever such a call is decoded, also when a successful
// Liquidation follows in the same transaction; the transaction's Status
// tells the two cases apart.
type LiquidationCheck struct {
	Borrower Address
	Market   Address // the cToken/reserve the check was performed against
}

func (LiquidationCheck) Kind() ActionKind { return ActionLiquidationCheck }

func (c LiquidationCheck) Equal(other SpecificAction) bool {
	o, ok := other.(LiquidationCheck)
	if !ok {
		return false
	}
	return c == o
}

// AddLiquidity is a deposit of multiple tokens into a pool in exchange
// for pool/LP shares.
type AddLiquidity struct {
	Tokens  []Address
	Amounts []*uint256.Int
}

func (AddLiquidity) Kind() ActionKind { return ActionAddLiquidity }

func (a AddLiquidity) Equal(other SpecificAction) bool {
	o, ok := other.(AddLiquidity)
	if !ok || len(a.Tokens) != len(o.Tokens) {
		return false
	}
	for i := range a.Tokens {
		if a.Tokens[i] != o.Tokens[i] || !amountEqual(a.Amounts[i], o.Amounts[i]) {
			return false
		}
	}
	return true
}

// Deposit is a single-token deposit into a lending/vault protocol.
type Deposit struct {
	Token  Address
	Amount *uint256.Int
	From   Address
}

func (Deposit) Kind() ActionKind { return ActionDeposit }

func (d Deposit) Equal(other SpecificAction) bool {
	o, ok := other.(Deposit)
	if !ok {
		return false
	}
	return d.Token == o.Token && d.From == o.From && amountEqual(d.Amount, o.Amount)
}

// Withdrawal is a single-token withdrawal from a lending/vault protocol.
type Withdrawal struct {
	Token  Address
	Amount *uint256.Int
	To     Address
}

func (Withdrawal) Kind() ActionKind { return ActionWithdrawal }

func (w Withdrawal) Equal(other SpecificAction) bool {
	o, ok := other.(Withdrawal)
	if !ok {
		return false
	}
	return w.Token == o.Token && w.To == o.To && amountEqual(w.Amount, o.Amount)
}

func amountEqual(a, b *uint256.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Eq(b)
}

// Action is the envelope every decoder/reducer emits: the SpecificAction
// plus provenance (which call produced it) and mutable lifecycle state.
// Actions are never deleted once appended to a TransactionData; a
// superseded action is re-tagged Pruned and skipped by "known" iteration.
type Action struct {
	Variant      SpecificAction
	TraceAddress TraceAddress
	LogIndexes   []uint
	Pruned       bool
}

// Kind is a convenience accessor for Variant.Kind().
func (a *Action) Kind() ActionKind { return a.Variant.Kind() }
