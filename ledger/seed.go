package ledger

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-go/amm"
	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// The helpers below create accounts and balances directly. Pool
// initialization and deposits are not part of the pool program, so
// tests and simulations set up state through them.

func (tx *Tx) create(key solana.PublicKey) error {
	if _, err := tx.get(key); err == nil {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}
	return nil
}

// CreateMint stores an initialized mint with zero supply.
func (l *Ledger) CreateMint(key solana.PublicKey, decimals uint8, authority *solana.PublicKey) error {
	return l.Execute(nil, func(tx *Tx) error {
		if err := tx.create(key); err != nil {
			return err
		}
		return tx.putMint(&solanago.Mint{
			Address:       key,
			MintAuthority: authority,
			Decimals:      decimals,
			IsInitialized: true,
		})
	})
}

// CreateTokenAccount stores an empty token account of mint owned by owner.
func (l *Ledger) CreateTokenAccount(address, mint, owner solana.PublicKey) error {
	return l.Execute(nil, func(tx *Tx) error {
		return tx.createTokenAccount(address, mint, owner)
	})
}

func (tx *Tx) createTokenAccount(address, mint, owner solana.PublicKey) error {
	if err := tx.create(address); err != nil {
		return err
	}
	if _, err := tx.Mint(mint); err != nil {
		return err
	}
	return tx.putTokenAccount(&solanago.TokenAccount{
		Address: address,
		Mint:    mint,
		Owner:   owner,
		State:   solanago.AccountStateInitialized,
	})
}

// CreateAssociatedTokenAccount stores the empty associated token account
// of (owner, mint) and returns its address.
func (l *Ledger) CreateAssociatedTokenAccount(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return address, l.CreateTokenAccount(address, mint, owner)
}

// MintTo credits amount to account and raises the supply of its mint.
func (l *Ledger) MintTo(account solana.PublicKey, amount uint64) error {
	return l.Execute(nil, func(tx *Tx) error {
		acc, err := tx.TokenAccount(account)
		if err != nil {
			return err
		}
		m, err := tx.Mint(acc.Mint)
		if err != nil {
			return err
		}
		if acc.Amount > math.MaxUint64-amount || m.Supply > math.MaxUint64-amount {
			return fmt.Errorf("%w: mint %d to %s", ErrOverflow, amount, account)
		}
		acc.Amount += amount
		m.Supply += amount
		if err := tx.putTokenAccount(acc); err != nil {
			return err
		}
		return tx.putMint(m)
	})
}

// SetFrozen freezes or thaws a token account.
func (l *Ledger) SetFrozen(account solana.PublicKey, frozen bool) error {
	return l.Execute(nil, func(tx *Tx) error {
		acc, err := tx.TokenAccount(account)
		if err != nil {
			return err
		}
		acc.State = solanago.AccountStateInitialized
		if frozen {
			acc.State = solanago.AccountStateFrozen
		}
		return tx.putTokenAccount(acc)
	})
}

// PutConfig stores cfg at address as a program-owned account.
func (l *Ledger) PutConfig(address solana.PublicKey, cfg *state.Config) error {
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	return l.Execute(nil, func(tx *Tx) error {
		tx.put(address, l.programID, data)
		return nil
	})
}

// SetLocked flips the locked flag of the config at address.
func (l *Ledger) SetLocked(address solana.PublicKey, locked bool) error {
	return l.Execute(nil, func(tx *Tx) error {
		cfg, err := tx.Config(address)
		if err != nil {
			return err
		}
		cfg.Locked = locked
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		tx.put(address, l.programID, data)
		return nil
	})
}

// PoolParams describe a pool to create.
type PoolParams struct {
	Seed       uint64
	MintX      solana.PublicKey
	MintY      solana.PublicKey
	Fee        uint16
	LpDecimals uint8
	Authority  *solana.PublicKey
}

// Pool is the set of addresses that make up one pool.
type Pool struct {
	ProgramID solana.PublicKey
	Seed      uint64
	Config    solana.PublicKey
	MintX     solana.PublicKey
	MintY     solana.PublicKey
	MintLp    solana.PublicKey
	VaultX    solana.PublicKey
	VaultY    solana.PublicKey
}

// CreatePool stores the config, share mint and both empty vaults of a
// pool at their derived addresses. Both mints must already exist.
func (l *Ledger) CreatePool(params PoolParams) (*Pool, error) {
	config, configBump, err := state.DeriveConfigAddress(l.programID, params.Seed)
	if err != nil {
		return nil, err
	}
	mintLp, lpBump, err := state.DeriveLpMintAddress(l.programID, config)
	if err != nil {
		return nil, err
	}
	pool := &Pool{
		ProgramID: l.programID,
		Seed:      params.Seed,
		Config:    config,
		MintX:     params.MintX,
		MintY:     params.MintY,
		MintLp:    mintLp,
	}
	if pool.VaultX, _, err = solana.FindAssociatedTokenAddress(config, params.MintX); err != nil {
		return nil, err
	}
	if pool.VaultY, _, err = solana.FindAssociatedTokenAddress(config, params.MintY); err != nil {
		return nil, err
	}

	cfg := &state.Config{
		Seed:       params.Seed,
		Authority:  params.Authority,
		MintX:      params.MintX,
		MintY:      params.MintY,
		Fee:        params.Fee,
		ConfigBump: configBump,
		LpBump:     lpBump,
	}
	data, err := cfg.Encode()
	if err != nil {
		return nil, err
	}

	err = l.Execute(nil, func(tx *Tx) error {
		if err := tx.create(config); err != nil {
			return err
		}
		tx.put(config, l.programID, data)
		if err := tx.create(mintLp); err != nil {
			return err
		}
		if err := tx.putMint(&solanago.Mint{
			Address:       mintLp,
			MintAuthority: &config,
			Decimals:      params.LpDecimals,
			IsInitialized: true,
		}); err != nil {
			return err
		}
		if err := tx.createTokenAccount(pool.VaultX, params.MintX, config); err != nil {
			return err
		}
		return tx.createTokenAccount(pool.VaultY, params.MintY, config)
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug("pool created", zap.Stringer("config", config), zap.Uint64("seed", params.Seed))
	return pool, nil
}

// SwapKeys returns the swap accounts of user in p.
func (p *Pool) SwapKeys(user solana.PublicKey) (amm.SwapKeys, error) {
	return amm.DeriveSwapKeys(p.ProgramID, p.Seed, p.MintX, p.MintY, user)
}

// WithdrawKeys returns the withdraw accounts of user in p.
func (p *Pool) WithdrawKeys(user solana.PublicKey) (amm.WithdrawKeys, error) {
	return amm.DeriveWithdrawKeys(p.ProgramID, p.Seed, p.MintX, p.MintY, user)
}
