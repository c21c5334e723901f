// Package addressbook holds the well-known mainnet contract addresses
// and the cToken-to-underlying mapping the Compound decoder needs.
// The addresses are fixed at package init; the cToken map can still be
// extended at runtime through RegisterMarket, which does no locking.
package addressbook

import "github.com/ethereum/go-ethereum/common"

// Well-known Compound and Balancer mainnet contracts.
var (
	Comptroller     = common.HexToAddress("0x3d9819210A31b4961b30EF54bE2aeD79B9c9Cd30")
	CompoundOracle  = common.HexToAddress("0x02557a5E05DeFeFFD4cAe6D83eA3d173B272c904")
	BalancerProxy   = common.HexToAddress("0x3E66B66Fd1d0b02fDa6C811Da9E0547970DB2f21")
	WETH            = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	CETH            = common.HexToAddress("0x4Ddc2D193948926D02f9B1fE9e1daa0718270ED5")
)

// ctokenUnderlying maps a cToken market to the ERC20 it wraps. cETH is
// special-cased to WETH since it has no underlying() getter at all.
// Populated from the markets known at the time this pipeline was built;
// other markets are added here or through RegisterMarket (mirrors Compound's own
// comptroller.getAllMarkets() being resolved once and cached, see
// original_source/src/inspectors/compound.rs Compound::create).
var ctokenUnderlying = map[common.Address]common.Address{
	CETH: WETH,
	common.HexToAddress("0xb3319f5D18Bc0D84dD1b4825Dcde5d5f7266d407"): common.HexToAddress("0xE41d2489571d322189246DaFA5ebDe1F4699F498"), // cZRX -> ZRX
}

// Underlying resolves a cToken address to the token it wraps. If the
// address is not a known cToken it is returned unchanged, matching the
// original inspector's "fall back to the address itself" behavior.
func Underlying(cToken common.Address) common.Address {
	if u, ok := ctokenUnderlying[cToken]; ok {
		return u
	}
	return cToken
}

// RegisterMarket adds a cToken/underlying pair discovered at runtime
// (e.g. via Comptroller.getAllMarkets over RPC at startup).
func RegisterMarket(cToken, underlying common.Address) {
	ctokenUnderlying[cToken] = underlying
}

// aliases gives a short human name to addresses end-to-end tests and
// logs commonly need to reference; unlike ctokenUnderlying this has no
// bearing on classification.
var aliases = map[common.Address]string{
	WETH: "WETH",
	CETH: "cETH",
	common.HexToAddress("0xE41d2489571d322189246DaFA5ebDe1F4699F498"): "ZRX",
	common.HexToAddress("0x0bc529c00C6401aEF6D220BE8C6Ea1667F6Ad93e"): "YFI",
}

// Alias returns a short symbol for addr, or "" if unknown.
func Alias(addr common.Address) string {
	return aliases[addr]
}
