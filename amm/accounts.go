package amm

import (
	"github.com/gagliardetto/solana-go"

	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// ConfigAccount is a decoded pool config and the address it lives at.
type ConfigAccount struct {
	Address solana.PublicKey
	*state.Config
}

// Accounts is the snapshot a swap operates on.
type Accounts struct {
	User       solana.PublicKey
	UserSigned bool

	MintX solana.PublicKey
	MintY solana.PublicKey

	Config ConfigAccount

	VaultX *solanago.TokenAccount
	VaultY *solanago.TokenAccount
	UserX  *solanago.TokenAccount
	UserY  *solanago.TokenAccount
}

// WithdrawAccounts adds the share mint and the user's share account.
type WithdrawAccounts struct {
	Accounts

	MintLp *solanago.Mint
	UserLp *solanago.TokenAccount
}

// loaded reports which of the config and vaults is missing, if any.
func (a *Accounts) loaded() error {
	if a.Config.Config == nil {
		return constraint(ErrAccountNotInitialized, "config")
	}
	if a.VaultX == nil {
		return constraint(ErrAccountNotInitialized, "vault_x")
	}
	if a.VaultY == nil {
		return constraint(ErrAccountNotInitialized, "vault_y")
	}
	return nil
}

// reserves orders the vault balances as (in, out) for a swap direction.
func (a *Accounts) reserves(isX bool) (in, out uint64) {
	if isX {
		return a.VaultX.Amount, a.VaultY.Amount
	}
	return a.VaultY.Amount, a.VaultX.Amount
}

// side returns the vault and the user account holding one asset.
func (a *Accounts) side(isX bool) (vault, user *solanago.TokenAccount) {
	if isX {
		return a.VaultX, a.UserX
	}
	return a.VaultY, a.UserY
}
