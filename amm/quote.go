package amm

import (
	"github.com/shopspring/decimal"

	"github.com/krazyTry/cpamm-go/curve"
)

// SwapQuote previews a swap. Prices are in units of the output asset per
// unit of the input asset, scaled by each mint's decimals; they are for
// display only, settlement uses the integer amounts.
type SwapQuote struct {
	AmountIn     uint64
	AmountOut    uint64
	MinAmountOut uint64
	Fee          uint64

	SpotPrice      decimal.Decimal
	ExecutionPrice decimal.Decimal
	// PriceImpact is (spot - execution) / spot
	PriceImpact decimal.Decimal
}

// WithdrawQuote previews a withdrawal.
type WithdrawQuote struct {
	Shares     uint64
	AmountX    uint64
	AmountY    uint64
	MinAmountX uint64
	MinAmountY uint64
	// ShareOfPool is shares / supply
	ShareOfPool decimal.Decimal
}

func uiAmount(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-int32(decimals))
}

// withSlippage lowers amount by slippageBps, rounding down.
func withSlippage(amount uint64, slippageBps uint16) (uint64, error) {
	v, err := curve.AmountAfterFee(amount, slippageBps)
	if err != nil {
		return 0, fromCurve(err)
	}
	return v, nil
}

// QuoteSwap prices amountIn against the given reserves. MinAmountOut is
// the output less slippageBps and can be passed straight to Swap.
func QuoteSwap(reserveIn, reserveOut uint64, decimalsIn, decimalsOut uint8, amountIn uint64, feeBps, slippageBps uint16) (*SwapQuote, error) {
	out, err := curve.SwapOutput(reserveIn, reserveOut, amountIn, feeBps)
	if err != nil {
		return nil, fromCurve(err)
	}
	eff, err := curve.AmountAfterFee(amountIn, feeBps)
	if err != nil {
		return nil, fromCurve(err)
	}
	minOut, err := withSlippage(out, slippageBps)
	if err != nil {
		return nil, err
	}

	spot := uiAmount(reserveOut, decimalsOut).Div(uiAmount(reserveIn, decimalsIn))
	execution := uiAmount(out, decimalsOut).Div(uiAmount(amountIn, decimalsIn))
	return &SwapQuote{
		AmountIn:       amountIn,
		AmountOut:      out,
		MinAmountOut:   minOut,
		Fee:            amountIn - eff,
		SpotPrice:      spot,
		ExecutionPrice: execution,
		PriceImpact:    spot.Sub(execution).Div(spot),
	}, nil
}

// QuoteSwap prices a swap against the vault balances in a.
func (a *Accounts) QuoteSwap(isX bool, amountIn uint64, decimalsX, decimalsY uint8, slippageBps uint16) (*SwapQuote, error) {
	if err := a.loaded(); err != nil {
		return nil, err
	}
	if a.Config.Locked {
		return nil, ErrPoolLocked
	}
	reserveIn, reserveOut := a.reserves(isX)
	decIn, decOut := decimalsX, decimalsY
	if !isX {
		decIn, decOut = decimalsY, decimalsX
	}
	return QuoteSwap(reserveIn, reserveOut, decIn, decOut, amountIn, a.Config.Fee, slippageBps)
}

// QuoteWithdraw previews burning shares out of supply.
func QuoteWithdraw(reserveX, reserveY, supply, shares uint64, precision uint8, slippageBps uint16) (*WithdrawQuote, error) {
	x, y, err := curve.WithdrawAmounts(reserveX, reserveY, supply, shares, precision)
	if err != nil {
		return nil, fromCurve(err)
	}
	minX, err := withSlippage(x, slippageBps)
	if err != nil {
		return nil, err
	}
	minY, err := withSlippage(y, slippageBps)
	if err != nil {
		return nil, err
	}
	return &WithdrawQuote{
		Shares:      shares,
		AmountX:     x,
		AmountY:     y,
		MinAmountX:  minX,
		MinAmountY:  minY,
		ShareOfPool: decimal.NewFromUint64(shares).Div(decimal.NewFromUint64(supply)),
	}, nil
}

// QuoteWithdraw previews a withdrawal against the balances in a.
func (a *WithdrawAccounts) QuoteWithdraw(shares uint64, slippageBps uint16) (*WithdrawQuote, error) {
	if err := a.loaded(); err != nil {
		return nil, err
	}
	if a.MintLp == nil {
		return nil, constraint(ErrAccountNotInitialized, "mint_lp")
	}
	if a.Config.Locked {
		return nil, ErrPoolLocked
	}
	return QuoteWithdraw(a.VaultX.Amount, a.VaultY.Amount, a.MintLp.Supply, shares, a.MintLp.Decimals, slippageBps)
}
