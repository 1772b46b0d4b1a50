package amm_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-go/amm"
	"github.com/krazyTry/cpamm-go/ledger"
)

type fixture struct {
	l       *ledger.Ledger
	program *amm.Program
	pool    *ledger.Pool

	user   solana.PublicKey
	userX  solana.PublicKey
	userY  solana.PublicKey
	userLp solana.PublicKey
}

// newFixture creates a pool holding the given reserves, a user holding
// the whole share supply and 1,000,000 of each asset.
func newFixture(t *testing.T, reserveX, reserveY, supply uint64, fee uint16) *fixture {
	t.Helper()
	l := ledger.New()
	mintX := solana.NewWallet().PublicKey()
	mintY := solana.NewWallet().PublicKey()
	require.NoError(t, l.CreateMint(mintX, 6, nil))
	require.NoError(t, l.CreateMint(mintY, 9, nil))

	pool, err := l.CreatePool(ledger.PoolParams{Seed: 42, MintX: mintX, MintY: mintY, Fee: fee, LpDecimals: 6})
	require.NoError(t, err)

	f := &fixture{l: l, program: amm.NewProgram(), pool: pool, user: solana.NewWallet().PublicKey()}
	f.userX, err = l.CreateAssociatedTokenAccount(f.user, mintX)
	require.NoError(t, err)
	f.userY, err = l.CreateAssociatedTokenAccount(f.user, mintY)
	require.NoError(t, err)
	f.userLp, err = l.CreateAssociatedTokenAccount(f.user, pool.MintLp)
	require.NoError(t, err)

	require.NoError(t, l.MintTo(pool.VaultX, reserveX))
	require.NoError(t, l.MintTo(pool.VaultY, reserveY))
	require.NoError(t, l.MintTo(f.userLp, supply))
	require.NoError(t, l.MintTo(f.userX, 1_000_000))
	require.NoError(t, l.MintTo(f.userY, 1_000_000))
	return f
}

func (f *fixture) balance(t *testing.T, key solana.PublicKey) uint64 {
	t.Helper()
	acc, err := f.l.TokenAccount(key)
	require.NoError(t, err)
	return acc.Amount
}

func (f *fixture) supply(t *testing.T) uint64 {
	t.Helper()
	mint, err := f.l.Mint(f.pool.MintLp)
	require.NoError(t, err)
	return mint.Supply
}

// accounts loads the withdraw accounts of the fixture user as signed.
func (f *fixture) accounts(t *testing.T) *amm.WithdrawAccounts {
	t.Helper()
	keys, err := f.pool.WithdrawKeys(f.user)
	require.NoError(t, err)
	var a *amm.WithdrawAccounts
	require.NoError(t, f.l.Execute([]solana.PublicKey{f.user}, func(tx *ledger.Tx) (err error) {
		a, err = keys.Load(tx)
		return err
	}))
	require.True(t, a.UserSigned)
	return a
}

func (f *fixture) swap(t *testing.T, isX bool, amount, min uint64) error {
	t.Helper()
	keys, err := f.pool.SwapKeys(f.user)
	require.NoError(t, err)
	ix, err := amm.NewSwapInstruction(f.program.ID(), amm.SwapArgs{IsX: isX, Amount: amount, Min: min}, keys)
	require.NoError(t, err)
	return f.l.Submit(f.program, ix, f.user)
}

func (f *fixture) withdraw(t *testing.T, shares, minX, minY uint64) error {
	t.Helper()
	keys, err := f.pool.WithdrawKeys(f.user)
	require.NoError(t, err)
	ix, err := amm.NewWithdrawInstruction(f.program.ID(), amm.WithdrawArgs{Amount: shares, MinX: minX, MinY: minY}, keys)
	require.NoError(t, err)
	return f.l.Submit(f.program, ix, f.user)
}
