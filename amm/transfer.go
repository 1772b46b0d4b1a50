package amm

import (
	"fmt"

	"github.com/krazyTry/cpamm-go/state"
)

// depositTokens moves amount from the user into the vault of one asset,
// authorized by the user's own signature.
func (p *Program) depositTokens(tp TokenProgram, a *Accounts, isX bool, amount uint64) error {
	vault, user := a.side(isX)
	if err := tp.Transfer(user.Address, vault.Address, state.Wallet(a.User), amount); err != nil {
		return fmt.Errorf("%w: deposit to %s: %w", ErrTransferFailure, vault.Address, err)
	}
	return nil
}

// withdrawTokens moves amount from the vault of one asset to the user,
// signed by the config PDA.
func (p *Program) withdrawTokens(tp TokenProgram, a *Accounts, isX bool, amount uint64) error {
	capability, err := p.authority.Derive(a.Config.Config)
	if err != nil {
		return fmt.Errorf("%w: derive pool authority: %w", ErrConstraintSeeds, err)
	}
	vault, user := a.side(isX)
	if err := tp.Transfer(vault.Address, user.Address, capability, amount); err != nil {
		return fmt.Errorf("%w: withdraw from %s: %w", ErrTransferFailure, vault.Address, err)
	}
	return nil
}

// burnLpTokens destroys amount shares held by the user.
func (p *Program) burnLpTokens(tp TokenProgram, a *WithdrawAccounts, amount uint64) error {
	if err := tp.Burn(a.MintLp.Address, a.UserLp.Address, state.Wallet(a.User), amount); err != nil {
		return fmt.Errorf("%w: burn %d shares: %w", ErrTransferFailure, amount, err)
	}
	return nil
}
