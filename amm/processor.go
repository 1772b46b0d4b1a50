package amm

import (
	"bytes"
	"fmt"

	"github.com/gagliardetto/solana-go"

	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// AccountLoader reads account snapshots from the host ledger.
type AccountLoader interface {
	TokenAccount(key solana.PublicKey) (*solanago.TokenAccount, error)
	Mint(key solana.PublicKey) (*solanago.Mint, error)
	Config(key solana.PublicKey) (*state.Config, error)
	IsSigner(key solana.PublicKey) bool
}

// Host is the execution context an instruction runs in.
type Host interface {
	AccountLoader
	TokenProgram
}

// Process decodes ix and runs it against the accounts it names.
func (p *Program) Process(host Host, ix solana.Instruction) error {
	if !ix.ProgramID().Equals(p.id) {
		return fmt.Errorf("%w: %s", ErrInvalidProgramID, ix.ProgramID())
	}
	data, err := ix.Data()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}
	if len(data) < 8 {
		return ErrInvalidInstruction
	}

	metas := ix.Accounts()
	switch {
	case bytes.Equal(data[:8], SwapDiscriminator[:]):
		var args SwapArgs
		if err := decodeArgs(data, &args); err != nil {
			return err
		}
		a, err := loadSwapAccounts(host, metas)
		if err != nil {
			return err
		}
		return p.Swap(host, a, args.IsX, args.Amount, args.Min)

	case bytes.Equal(data[:8], WithdrawDiscriminator[:]):
		var args WithdrawArgs
		if err := decodeArgs(data, &args); err != nil {
			return err
		}
		a, err := loadWithdrawAccounts(host, metas)
		if err != nil {
			return err
		}
		return p.Withdraw(host, a, args.Amount, args.MinX, args.MinY)
	}
	return ErrInvalidInstruction
}

func requireProgram(meta *solana.AccountMeta, id solana.PublicKey) error {
	if !meta.PublicKey.Equals(id) {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidProgramID, id, meta.PublicKey)
	}
	return nil
}

// Load reads the accounts named by k. The user counts as signed when the
// host saw its signature.
func (k SwapKeys) Load(host AccountLoader) (*Accounts, error) {
	a := &Accounts{
		User:       k.User,
		UserSigned: host.IsSigner(k.User),
		MintX:      k.MintX,
		MintY:      k.MintY,
	}
	cfg, err := host.Config(k.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: config: %w", ErrAccountNotInitialized, err)
	}
	a.Config = ConfigAccount{Address: k.Config, Config: cfg}

	for _, ta := range []struct {
		name string
		key  solana.PublicKey
		dst  **solanago.TokenAccount
	}{
		{"vault_x", k.VaultX, &a.VaultX},
		{"vault_y", k.VaultY, &a.VaultY},
		{"user_x", k.UserX, &a.UserX},
		{"user_y", k.UserY, &a.UserY},
	} {
		if *ta.dst, err = host.TokenAccount(ta.key); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAccountNotInitialized, ta.name, err)
		}
	}
	return a, nil
}

// Load reads the accounts named by k.
func (k WithdrawKeys) Load(host AccountLoader) (*WithdrawAccounts, error) {
	base, err := k.SwapKeys.Load(host)
	if err != nil {
		return nil, err
	}
	mintLp, err := host.Mint(k.MintLp)
	if err != nil {
		return nil, fmt.Errorf("%w: mint_lp: %w", ErrAccountNotInitialized, err)
	}
	userLp, err := host.TokenAccount(k.UserLp)
	if err != nil {
		return nil, fmt.Errorf("%w: user_lp: %w", ErrAccountNotInitialized, err)
	}
	return &WithdrawAccounts{Accounts: *base, MintLp: mintLp, UserLp: userLp}, nil
}

func swapKeys(metas []*solana.AccountMeta) SwapKeys {
	return SwapKeys{
		User:   metas[0].PublicKey,
		MintX:  metas[1].PublicKey,
		MintY:  metas[2].PublicKey,
		Config: metas[3].PublicKey,
		VaultX: metas[4].PublicKey,
		VaultY: metas[5].PublicKey,
		UserX:  metas[6].PublicKey,
		UserY:  metas[7].PublicKey,
	}
}

func loadSwapAccounts(host AccountLoader, metas []*solana.AccountMeta) (*Accounts, error) {
	if len(metas) < 9 {
		return nil, ErrAccountNotEnoughKeys
	}
	if err := requireProgram(metas[8], solana.TokenProgramID); err != nil {
		return nil, err
	}
	a, err := swapKeys(metas).Load(host)
	if err != nil {
		return nil, err
	}
	a.UserSigned = a.UserSigned && metas[0].IsSigner
	return a, nil
}

func loadWithdrawAccounts(host AccountLoader, metas []*solana.AccountMeta) (*WithdrawAccounts, error) {
	if len(metas) < 13 {
		return nil, ErrAccountNotEnoughKeys
	}
	for i, id := range []solana.PublicKey{solana.TokenProgramID, solana.SystemProgramID, solana.SPLAssociatedTokenAccountProgramID} {
		if err := requireProgram(metas[10+i], id); err != nil {
			return nil, err
		}
	}
	// withdraw places mint_lp between config and the vaults
	keys := WithdrawKeys{
		SwapKeys: swapKeys([]*solana.AccountMeta{
			metas[0], metas[1], metas[2], metas[3],
			metas[5], metas[6], metas[7], metas[8],
		}),
		MintLp: metas[4].PublicKey,
		UserLp: metas[9].PublicKey,
	}
	a, err := keys.Load(host)
	if err != nil {
		return nil, err
	}
	a.UserSigned = a.UserSigned && metas[0].IsSigner
	return a, nil
}
