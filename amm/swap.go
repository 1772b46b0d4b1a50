package amm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-go/curve"
)

// Swap sells amountIn of X (isX) or Y for the other asset, failing with
// ErrSlippageExceeded when fewer than minAmountOut would be paid out.
// Nothing is transferred unless every check passes.
func (p *Program) Swap(tp TokenProgram, a *Accounts, isX bool, amountIn, minAmountOut uint64) error {
	logger := p.logger.With(
		zap.String("instruction", "swap"),
		zap.Stringer("config", a.Config.Address),
		zap.Bool("is_x", isX),
		zap.Uint64("amount_in", amountIn),
		zap.Uint64("min_amount_out", minAmountOut),
	)
	if err := a.Validate(p.id); err != nil {
		logger.Warn("rejected", zap.Error(err))
		return err
	}
	out, err := p.swap(tp, a, isX, amountIn, minAmountOut, logger)
	if err != nil {
		logger.Warn("rejected", zap.Error(err))
		return err
	}
	logger.Info("swapped", zap.Uint64("amount_out", out))
	return nil
}

func (p *Program) swap(tp TokenProgram, a *Accounts, isX bool, amountIn, minAmountOut uint64, logger *zap.Logger) (uint64, error) {
	if amountIn == 0 {
		return 0, ErrInvalidAmount
	}
	if a.Config.Locked {
		return 0, ErrPoolLocked
	}
	if a.VaultX.Amount == 0 || a.VaultY.Amount == 0 {
		return 0, ErrNoLiquidityInPool
	}

	reserveIn, reserveOut := a.reserves(isX)
	out, err := curve.SwapOutput(reserveIn, reserveOut, amountIn, a.Config.Fee)
	if err != nil {
		return 0, fromCurve(err)
	}
	logger.Debug("priced",
		zap.Uint64("reserve_in", reserveIn),
		zap.Uint64("reserve_out", reserveOut),
		zap.Uint16("fee_bps", a.Config.Fee),
		zap.Uint64("amount_out", out),
	)
	if out < minAmountOut {
		return 0, fmt.Errorf("%w: out %d < min %d", ErrSlippageExceeded, out, minAmountOut)
	}

	if err := p.depositTokens(tp, a, isX, amountIn); err != nil {
		return 0, err
	}
	if err := p.withdrawTokens(tp, a, !isX, out); err != nil {
		return 0, err
	}
	return out, nil
}
