package assets

import "testing"

func TestERC20HasTransferMethods(t *testing.T) {
	for _, name := range []string{"transfer", "transferFrom"} {
		if _, ok := ERC20.Methods[name]; !ok {
			t.Fatalf("ERC20: missing method %q", name)
		}
	}
}

func TestCompoundABIsHaveLiquidationSurface(t *testing.T) {
	if _, ok := CToken.Methods["liquidateBorrow"]; !ok {
		t.Fatalf("CToken: missing liquidateBorrow")
	}
	if _, ok := CEther.Methods["liquidateBorrow"]; !ok {
		t.Fatalf("CEther: missing liquidateBorrow")
	}
	if _, ok := Comptroller.Methods["liquidateBorrowAllowed"]; !ok {
		t.Fatalf("Comptroller: missing liquidateBorrowAllowed")
	}
	if _, ok := PriceOracle.Methods["getUnderlyingPrice"]; !ok {
		t.Fatalf("PriceOracle: missing getUnderlyingPrice")
	}
}

func TestBalancerABIsHaveExpectedSurface(t *testing.T) {
	if _, ok := BalancerPool.Methods["joinPool"]; !ok {
		t.Fatalf("BalancerPool: missing joinPool")
	}
	if _, ok := BalancerProxy.Methods["batchSwapExactIn"]; !ok {
		t.Fatalf("BalancerProxy: missing batchSwapExactIn")
	}
}

func TestAavePoolHasLiquidationCall(t *testing.T) {
	if _, ok := AavePool.Methods["liquidationCall"]; !ok {
		t.Fatalf("AavePool: missing liquidationCall")
	}
	if _, ok := AavePool.Events["LiquidationCall"]; !ok {
		t.Fatalf("AavePool: missing LiquidationCall event")
	}
}

func TestUniswapV2PairHasSwapEvent(t *testing.T) {
	if _, ok := UniswapV2Pair.Events["Swap"]; !ok {
		t.Fatalf("UniswapV2Pair: missing Swap event")
	}
}

func TestCurvePoolHasAtLeastOneMethod(t *testing.T) {
	if len(CurvePool.Methods) == 0 {
		t.Fatalf("CurvePool: expected at least one method")
	}
}
