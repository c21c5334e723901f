package reducer

import "github.com/ethinspect/mevtrace/mevtypes"

// ArbitrageReducer detects chains of Trade actions that begin and end
// at the same token, in the hands of the same address, with a net
// positive amount. When more than one cycle is possible it prefers the
// shortest; among equal-length cycles, the one with the largest
// profit.
type ArbitrageReducer struct{}

type cycleCandidate struct {
	trades []*mevtypes.Action
	token  mevtypes.Address
	profit *mevtypes.Amount
}

func (ArbitrageReducer) Reduce(tx *mevtypes.TransactionData) {
	for {
		trades := tradeActions(tx)
		if len(trades) == 0 {
			return
		}
		best := findBestCycle(trades)
		if best == nil {
			return
		}
		arb := mevtypes.Arbitrage{Profit: best.profit, Token: best.token}
		if !actionEqualsKnown(tx, arb) {
			tx.AddAction(&mevtypes.Action{Variant: arb, TraceAddress: best.trades[0].TraceAddress})
		}
		for _, t := range best.trades {
			t.Pruned = true
		}
	}
}

func tradeActions(tx *mevtypes.TransactionData) []*mevtypes.Action {
	var out []*mevtypes.Action
	for _, a := range tx.ActionsKnown() {
		if a.Kind() == mevtypes.ActionTrade {
			out = append(out, a)
		}
	}
	return out
}

// findBestCycle greedily extends every possible starting trade into a
// chain until the chain returns to its starting token, recording each
// completed cycle as a candidate.
func findBestCycle(trades []*mevtypes.Action) *cycleCandidate {
	var best *cycleCandidate
	for start := range trades {
		startTrade := trades[start].Variant.(mevtypes.Trade)
		startToken := startTrade.T1.Token
		startAmount := startTrade.T1.Amount

		used := make(map[int]bool, len(trades))
		used[start] = true
		chain := []*mevtypes.Action{trades[start]}
		curToken := startTrade.T2.Token
		curAmount := startTrade.T2.Amount
		curHolder := startTrade.T2.To

		for step := 0; step < len(trades); step++ {
			if curToken == startToken {
				break
			}
			extended := false
			for j := range trades {
				if used[j] {
					continue
				}
				tj := trades[j].Variant.(mevtypes.Trade)
				if tj.T1.Token != curToken {
					continue
				}
				used[j] = true
				chain = append(chain, trades[j])
				curToken = tj.T2.Token
				curAmount = tj.T2.Amount
				curHolder = tj.T2.To
				extended = true
				break
			}
			if !extended {
				break
			}
		}

		if curToken != startToken || curHolder != startTrade.T1.From || len(chain) < 2 {
			continue
		}
		if curAmount.Cmp(startAmount) <= 0 {
			continue
		}
		profit := new(mevtypes.Amount).Sub(curAmount, startAmount)
		cand := &cycleCandidate{trades: chain, token: startToken, profit: profit}
		if better(cand, best) {
			best = cand
		}
	}
	return best
}

func better(cand, cur *cycleCandidate) bool {
	if cur == nil {
		return true
	}
	if len(cand.trades) != len(cur.trades) {
		return len(cand.trades) < len(cur.trades)
	}
	return cand.profit.Cmp(cur.profit) > 0
}
