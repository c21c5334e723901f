package decoders

import (
	"github.com/ethinspect/mevtrace/assets"
	"github.com/ethinspect/mevtrace/mevtypes"
)

// UniswapV2Like decodes the constant-product AMM swap shape shared by
// Uniswap V2 and its forks (Sushiswap, etc). A single implementation is
// registered once per fork under a different protocol tag, since the
// ABI and call shape are byte-identical across them.
//
// ClassifyCall only tags the call Swap; it does not itself build a
// Trade. Trade construction needs the swap's two child transfer
// actions, which do not exist yet when decode_call_action runs for the
// swap call (the inspector pass visits calls in pre-order, so a parent
// call is decoded before its children are). That pairing is therefore
// done once per transaction by reducer.TradeReducer, after the whole
// call tree has been classified.
type UniswapV2Like struct {
	protocol string
}

// NewUniswapV2 returns the canonical Uniswap V2 decoder.
func NewUniswapV2() *UniswapV2Like { return &UniswapV2Like{protocol: "UniswapV2"} }

// NewSushiswap returns a Sushiswap decoder sharing Uniswap V2's ABI.
func NewSushiswap() *UniswapV2Like { return &UniswapV2Like{protocol: "Sushiswap"} }

func (u *UniswapV2Like) Protocol() string { return u.protocol }

func (u *UniswapV2Like) IsProtocolAddress(mevtypes.Address) (bool, bool) {
	// Every pair is a distinct address; there is no single factory
	// constant worth hardcoding here, so defer to ClassifyCall.
	return false, false
}

func (u *UniswapV2Like) IsProtocolEvent(log mevtypes.EventLog) bool {
	t0 := log.Topic0()
	return t0 == assets.UniswapV2Pair.Events["Swap"].ID ||
		t0 == assets.UniswapV2Pair.Events["Mint"].ID ||
		t0 == assets.UniswapV2Pair.Events["Burn"].ID
}

func (u *UniswapV2Like) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	if matchesSelector(sel, assets.UniswapV2Pair.Methods["swap"]) {
		return mevtypes.ClassificationSwap, true
	}
	return mevtypes.ClassificationUnknown, false
}

func (u *UniswapV2Like) DecodeCallAction(*mevtypes.InternalCall, *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	return nil, false
}

// Curve decodes StableSwap-style exchange calls. Like UniswapV2Like it
// only tags the call; reducer.TradeReducer pairs the transfer legs.
type Curve struct{}

// NewCurve returns a ready-to-register Curve decoder.
func NewCurve() *Curve { return &Curve{} }

func (Curve) Protocol() string { return "Curve" }

func (Curve) IsProtocolAddress(mevtypes.Address) (bool, bool) { return false, false }

func (Curve) IsProtocolEvent(log mevtypes.EventLog) bool {
	return log.Topic0() == assets.CurvePool.Events["TokenExchange"].ID
}

func (Curve) ClassifyCall(call *mevtypes.InternalCall) (mevtypes.Classification, bool) {
	sel := call.Selector()
	if sel == nil {
		return mevtypes.ClassificationUnknown, false
	}
	if matchesSelector(sel, assets.CurvePool.Methods["exchange"]) ||
		matchesSelector(sel, assets.CurvePool.Methods["exchange_underlying"]) {
		return mevtypes.ClassificationSwap, true
	}
	return mevtypes.ClassificationUnknown, false
}

func (Curve) DecodeCallAction(*mevtypes.InternalCall, *mevtypes.TransactionData) (mevtypes.SpecificAction, bool) {
	return nil, false
}
