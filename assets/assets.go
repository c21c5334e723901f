// Package assets embeds the protocol ABI files the decoder registry
// parses once at startup.
package assets

import (
	"embed"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed erc20.json ctoken.json cether.json comptroller.json priceoracle.json balancerpool.json balancerproxy.json uniswapv2pair.json curvepool.json aavepool.json
var files embed.FS

func mustParse(name string) abi.ABI {
	raw, err := files.ReadFile(name)
	if err != nil {
		panic("assets: missing embedded file " + name + ": " + err.Error())
	}
	parsed, err := abi.JSON(strings.NewReader(string(raw)))
	if err != nil {
		panic("assets: malformed ABI " + name + ": " + err.Error())
	}
	return parsed
}

// Parsed ABIs, built once at package init. Every decoder in the
// decoders package reads from these rather than re-parsing JSON.
var (
	ERC20         = mustParse("erc20.json")
	CToken        = mustParse("ctoken.json")
	CEther        = mustParse("cether.json")
	Comptroller   = mustParse("comptroller.json")
	PriceOracle   = mustParse("priceoracle.json")
	BalancerPool  = mustParse("balancerpool.json")
	BalancerProxy = mustParse("balancerproxy.json")
	UniswapV2Pair = mustParse("uniswapv2pair.json")
	CurvePool     = mustParse("curvepool.json")
	AavePool      = mustParse("aavepool.json")
)
