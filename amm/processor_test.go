package amm_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-go/amm"
)

func TestInstructionLayout(t *testing.T) {
	user := solana.NewWallet().PublicKey()
	keys, err := amm.DeriveWithdrawKeys(amm.NewProgram().ID(), 42, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), user)
	require.NoError(t, err)

	swap, err := amm.NewSwapInstruction(amm.NewProgram().ID(), amm.SwapArgs{IsX: true, Amount: 1_000, Min: 996}, keys.SwapKeys)
	require.NoError(t, err)
	data, err := swap.Data()
	require.NoError(t, err)
	require.Len(t, data, 8+1+8+8)
	assert.Equal(t, amm.SwapDiscriminator[:], data[:8])
	assert.Equal(t, byte(1), data[8])
	assert.Equal(t, "swap", amm.InstructionName(data))

	metas := swap.Accounts()
	require.Len(t, metas, 9)
	assert.True(t, metas[0].IsSigner)
	assert.Equal(t, user, metas[0].PublicKey)
	assert.Equal(t, keys.Config, metas[3].PublicKey)
	assert.Equal(t, solana.TokenProgramID, metas[8].PublicKey)

	withdraw, err := amm.NewWithdrawInstruction(amm.NewProgram().ID(), amm.WithdrawArgs{Amount: 100, MinX: 100, MinY: 200}, keys)
	require.NoError(t, err)
	data, err = withdraw.Data()
	require.NoError(t, err)
	require.Len(t, data, 8+8+8+8)
	assert.Equal(t, "withdraw", amm.InstructionName(data))
	metas = withdraw.Accounts()
	require.Len(t, metas, 13)
	assert.Equal(t, keys.MintLp, metas[4].PublicKey)
	assert.Equal(t, keys.UserLp, metas[9].PublicKey)

	assert.Equal(t, "unknown", amm.InstructionName([]byte{1, 2, 3}))
}

func TestProcessRejectsMalformedInstructions(t *testing.T) {
	f := newFixture(t, 1_000, 1_000, 1_000, 30)
	keys, err := f.pool.SwapKeys(f.user)
	require.NoError(t, err)
	ix, err := amm.NewSwapInstruction(f.program.ID(), amm.SwapArgs{IsX: true, Amount: 10}, keys)
	require.NoError(t, err)
	data, err := ix.Data()
	require.NoError(t, err)
	metas := ix.Accounts()

	swapped := append(solana.AccountMetaSlice{}, metas...)
	swapped[8] = solana.NewAccountMeta(solana.SystemProgramID, false, false)
	unsigned := append(solana.AccountMetaSlice{}, metas...)
	unsigned[0] = solana.NewAccountMeta(f.user, true, false)

	cases := []struct {
		name    string
		ix      solana.Instruction
		signers []solana.PublicKey
		err     error
	}{
		{"other program", solana.NewInstruction(solana.NewWallet().PublicKey(), metas, data), []solana.PublicKey{f.user}, amm.ErrInvalidProgramID},
		{"short data", solana.NewInstruction(f.program.ID(), metas, data[:4]), []solana.PublicKey{f.user}, amm.ErrInvalidInstruction},
		{"unknown instruction", solana.NewInstruction(f.program.ID(), metas, make([]byte, 25)), []solana.PublicKey{f.user}, amm.ErrInvalidInstruction},
		{"truncated args", solana.NewInstruction(f.program.ID(), metas, data[:12]), []solana.PublicKey{f.user}, amm.ErrInvalidInstruction},
		{"missing accounts", solana.NewInstruction(f.program.ID(), metas[:8], data), []solana.PublicKey{f.user}, amm.ErrAccountNotEnoughKeys},
		{"wrong token program", solana.NewInstruction(f.program.ID(), swapped, data), []solana.PublicKey{f.user}, amm.ErrInvalidProgramID},
		{"no signature", ix, nil, amm.ErrConstraintSigner},
		{"meta not a signer", solana.NewInstruction(f.program.ID(), unsigned, data), []solana.PublicKey{f.user}, amm.ErrConstraintSigner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, f.l.Submit(f.program, tc.ix, tc.signers...), tc.err)
			assert.Equal(t, uint64(1_000), f.balance(t, f.pool.VaultX))
		})
	}
}

func TestProcessMissingAccount(t *testing.T) {
	f := newFixture(t, 1_000, 1_000, 1_000, 30)
	keys, err := f.pool.WithdrawKeys(f.user)
	require.NoError(t, err)
	keys.UserLp = solana.NewWallet().PublicKey()
	ix, err := amm.NewWithdrawInstruction(f.program.ID(), amm.WithdrawArgs{Amount: 10}, keys)
	require.NoError(t, err)

	err = f.l.Submit(f.program, ix, f.user)
	require.ErrorIs(t, err, amm.ErrAccountNotInitialized)
	code, ok := amm.Code(err)
	require.True(t, ok)
	assert.Equal(t, uint32(3012), code)
}
