package amm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-go/curve"
)

// Withdraw burns shares and pays out the proportional part of both
// vaults, failing with ErrSlippageExceeded when either amount falls below
// its minimum. The fixed-point precision of the split is the decimal
// count of the share mint.
func (p *Program) Withdraw(tp TokenProgram, a *WithdrawAccounts, shares, minX, minY uint64) error {
	logger := p.logger.With(
		zap.String("instruction", "withdraw"),
		zap.Stringer("config", a.Config.Address),
		zap.Uint64("shares", shares),
		zap.Uint64("min_x", minX),
		zap.Uint64("min_y", minY),
	)
	if err := a.Validate(p.id); err != nil {
		logger.Warn("rejected", zap.Error(err))
		return err
	}
	x, y, err := p.withdraw(tp, a, shares, minX, minY, logger)
	if err != nil {
		logger.Warn("rejected", zap.Error(err))
		return err
	}
	logger.Info("withdrew", zap.Uint64("amount_x", x), zap.Uint64("amount_y", y))
	return nil
}

func (p *Program) withdraw(tp TokenProgram, a *WithdrawAccounts, shares, minX, minY uint64, logger *zap.Logger) (uint64, uint64, error) {
	if shares == 0 {
		return 0, 0, ErrInvalidAmount
	}
	if a.Config.Locked {
		return 0, 0, ErrPoolLocked
	}
	if a.MintLp.Supply == 0 {
		return 0, 0, ErrNoLiquidityInPool
	}

	x, y, err := curve.WithdrawAmounts(a.VaultX.Amount, a.VaultY.Amount, a.MintLp.Supply, shares, a.MintLp.Decimals)
	if err != nil {
		return 0, 0, fromCurve(err)
	}
	logger.Debug("priced",
		zap.Uint64("reserve_x", a.VaultX.Amount),
		zap.Uint64("reserve_y", a.VaultY.Amount),
		zap.Uint64("supply", a.MintLp.Supply),
		zap.Uint8("precision", a.MintLp.Decimals),
		zap.Uint64("amount_x", x),
		zap.Uint64("amount_y", y),
	)
	if x < minX || y < minY {
		return 0, 0, fmt.Errorf("%w: got (%d, %d), min (%d, %d)", ErrSlippageExceeded, x, y, minX, minY)
	}

	// burn precedes both payouts
	if err := p.burnLpTokens(tp, a, shares); err != nil {
		return 0, 0, err
	}
	if err := p.withdrawTokens(tp, &a.Accounts, true, x); err != nil {
		return 0, 0, err
	}
	if err := p.withdrawTokens(tp, &a.Accounts, false, y); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
