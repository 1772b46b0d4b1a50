package amm

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/cpamm-go/state"
)

var (
	SwapDiscriminator     = sighash("swap")
	WithdrawDiscriminator = sighash("withdraw")
)

func sighash(name string) [8]byte {
	hash := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

// InstructionName returns the instruction encoded in data, or "unknown".
func InstructionName(data []byte) string {
	if len(data) < 8 {
		return "unknown"
	}
	switch {
	case bytes.Equal(data[:8], SwapDiscriminator[:]):
		return "swap"
	case bytes.Equal(data[:8], WithdrawDiscriminator[:]):
		return "withdraw"
	}
	return "unknown"
}

type SwapArgs struct {
	IsX    bool
	Amount uint64
	Min    uint64
}

type WithdrawArgs struct {
	Amount uint64
	MinX   uint64
	MinY   uint64
}

func encodeArgs(disc [8]byte, args any) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeArgs(data []byte, args any) error {
	if err := bin.NewBorshDecoder(data[8:]).Decode(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}
	return nil
}

// SwapKeys are the accounts of a swap instruction, in instruction order.
type SwapKeys struct {
	User   solana.PublicKey
	MintX  solana.PublicKey
	MintY  solana.PublicKey
	Config solana.PublicKey
	VaultX solana.PublicKey
	VaultY solana.PublicKey
	UserX  solana.PublicKey
	UserY  solana.PublicKey
}

// WithdrawKeys are the accounts of a withdraw instruction.
type WithdrawKeys struct {
	SwapKeys
	MintLp solana.PublicKey
	UserLp solana.PublicKey
}

// DeriveSwapKeys computes every address a swap needs from the pool seed,
// its mints and the user wallet.
func DeriveSwapKeys(programID solana.PublicKey, poolSeed uint64, mintX, mintY, user solana.PublicKey) (SwapKeys, error) {
	config, _, err := state.DeriveConfigAddress(programID, poolSeed)
	if err != nil {
		return SwapKeys{}, err
	}
	keys := SwapKeys{User: user, MintX: mintX, MintY: mintY, Config: config}
	for _, ata := range []struct {
		dst         *solana.PublicKey
		owner, mint solana.PublicKey
	}{
		{&keys.VaultX, config, mintX},
		{&keys.VaultY, config, mintY},
		{&keys.UserX, user, mintX},
		{&keys.UserY, user, mintY},
	} {
		if *ata.dst, _, err = solana.FindAssociatedTokenAddress(ata.owner, ata.mint); err != nil {
			return SwapKeys{}, err
		}
	}
	return keys, nil
}

// DeriveWithdrawKeys extends DeriveSwapKeys with the share accounts.
func DeriveWithdrawKeys(programID solana.PublicKey, poolSeed uint64, mintX, mintY, user solana.PublicKey) (WithdrawKeys, error) {
	base, err := DeriveSwapKeys(programID, poolSeed, mintX, mintY, user)
	if err != nil {
		return WithdrawKeys{}, err
	}
	mintLp, _, err := state.DeriveLpMintAddress(programID, base.Config)
	if err != nil {
		return WithdrawKeys{}, err
	}
	userLp, _, err := solana.FindAssociatedTokenAddress(user, mintLp)
	if err != nil {
		return WithdrawKeys{}, err
	}
	return WithdrawKeys{SwapKeys: base, MintLp: mintLp, UserLp: userLp}, nil
}

// NewSwapInstruction builds a swap instruction for programID.
func NewSwapInstruction(programID solana.PublicKey, args SwapArgs, keys SwapKeys) (solana.Instruction, error) {
	data, err := encodeArgs(SwapDiscriminator, args)
	if err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(keys.User, true, true),
		solana.NewAccountMeta(keys.MintX, false, false),
		solana.NewAccountMeta(keys.MintY, false, false),
		solana.NewAccountMeta(keys.Config, false, false),
		solana.NewAccountMeta(keys.VaultX, true, false),
		solana.NewAccountMeta(keys.VaultY, true, false),
		solana.NewAccountMeta(keys.UserX, true, false),
		solana.NewAccountMeta(keys.UserY, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
	}
	return solana.NewInstruction(programID, accounts, data), nil
}

// NewWithdrawInstruction builds a withdraw instruction for programID.
func NewWithdrawInstruction(programID solana.PublicKey, args WithdrawArgs, keys WithdrawKeys) (solana.Instruction, error) {
	data, err := encodeArgs(WithdrawDiscriminator, args)
	if err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(keys.User, true, true),
		solana.NewAccountMeta(keys.MintX, false, false),
		solana.NewAccountMeta(keys.MintY, false, false),
		solana.NewAccountMeta(keys.Config, false, false),
		solana.NewAccountMeta(keys.MintLp, true, false),
		solana.NewAccountMeta(keys.VaultX, true, false),
		solana.NewAccountMeta(keys.VaultY, true, false),
		solana.NewAccountMeta(keys.UserX, true, false),
		solana.NewAccountMeta(keys.UserY, true, false),
		solana.NewAccountMeta(keys.UserLp, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
	}
	return solana.NewInstruction(programID, accounts, data), nil
}
