package amm

import (
	"github.com/gagliardetto/solana-go"

	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// Validate checks that the presented accounts belong together: the user
// signed, the config is the PDA of its seed and names both mints, and
// every token account is the associated account of the expected owner.
func (a *Accounts) Validate(programID solana.PublicKey) error {
	if !a.UserSigned {
		return constraint(ErrConstraintSigner, "user")
	}

	cfg := a.Config.Config
	if cfg == nil {
		return constraint(ErrAccountNotInitialized, "config")
	}
	if !cfg.MintX.Equals(a.MintX) {
		return constraint(ErrConstraintHasOne, "mint_x")
	}
	if !cfg.MintY.Equals(a.MintY) {
		return constraint(ErrConstraintHasOne, "mint_y")
	}
	config, err := solana.CreateProgramAddress(state.ConfigSignerSeeds(cfg.Seed, cfg.ConfigBump), programID)
	if err != nil || !config.Equals(a.Config.Address) {
		return constraint(ErrConstraintSeeds, "config")
	}

	checks := []struct {
		name  string
		acc   *solanago.TokenAccount
		mint  solana.PublicKey
		owner solana.PublicKey
	}{
		{"vault_x", a.VaultX, a.MintX, config},
		{"vault_y", a.VaultY, a.MintY, config},
		{"user_x", a.UserX, a.MintX, a.User},
		{"user_y", a.UserY, a.MintY, a.User},
	}
	for _, c := range checks {
		if err := checkTokenAccount(c.name, c.acc, c.mint, c.owner); err != nil {
			return err
		}
	}
	return nil
}

// Validate extends Accounts.Validate with the share mint PDA and the
// user's share account.
func (a *WithdrawAccounts) Validate(programID solana.PublicKey) error {
	if err := a.Accounts.Validate(programID); err != nil {
		return err
	}
	if a.MintLp == nil {
		return constraint(ErrAccountNotInitialized, "mint_lp")
	}
	lp, err := solana.CreateProgramAddress(state.LpMintSeeds(a.Config.Address, a.Config.LpBump), programID)
	if err != nil || !lp.Equals(a.MintLp.Address) {
		return constraint(ErrConstraintSeeds, "mint_lp")
	}
	return checkTokenAccount("user_lp", a.UserLp, lp, a.User)
}

func checkTokenAccount(name string, acc *solanago.TokenAccount, mint, owner solana.PublicKey) error {
	if acc == nil || !acc.IsInitialized() {
		return constraint(ErrAccountNotInitialized, name)
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil || !ata.Equals(acc.Address) {
		return constraint(ErrConstraintAssociated, name)
	}
	if !acc.Mint.Equals(mint) {
		return constraint(ErrConstraintTokenMint, name)
	}
	if !acc.Owner.Equals(owner) {
		return constraint(ErrConstraintTokenOwner, name)
	}
	return nil
}
