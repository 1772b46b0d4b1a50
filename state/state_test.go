package state

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLayout(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	cfg := &Config{
		Seed:       42,
		Authority:  &authority,
		MintX:      solana.NewWallet().PublicKey(),
		MintY:      solana.NewWallet().PublicKey(),
		Fee:        30,
		Locked:     true,
		ConfigBump: 254,
		LpBump:     253,
	}

	data, err := cfg.Encode()
	require.NoError(t, err)
	require.Len(t, data, 8+8+1+32+32+32+2+1+1+1)
	assert.Equal(t, ConfigDiscriminator[:], data[:8])
	assert.Equal(t, byte(42), data[8])

	got, err := DecodeConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	cfg.Authority = nil
	data, err = cfg.Encode()
	require.NoError(t, err)
	require.Len(t, data, 8+8+1+32+32+2+1+1+1)
	got, err = DecodeConfig(data)
	require.NoError(t, err)
	assert.Nil(t, got.Authority)
	assert.Equal(t, cfg.MintY, got.MintY)
}

func TestDecodeConfigRejectsForeignAccount(t *testing.T) {
	cfg := &Config{Seed: 1}
	data, err := cfg.Encode()
	require.NoError(t, err)
	data[0] ^= 0xff

	_, err = DecodeConfig(data)
	require.Error(t, err)

	_, err = DecodeConfig(data[:12])
	require.Error(t, err)
}

func TestPDAAuthority(t *testing.T) {
	const poolSeed = 42
	config, bump, err := DeriveConfigAddress(ProgramID, poolSeed)
	require.NoError(t, err)

	auth := PDAAuthority{ProgramID: ProgramID}
	capability, err := auth.Derive(&Config{Seed: poolSeed, ConfigBump: bump})
	require.NoError(t, err)
	assert.Equal(t, config, capability.Key)
	assert.True(t, capability.Derived())
	assert.True(t, auth.Prove(capability))

	// seeds for another pool do not prove this key
	forged := Capability{Key: config, Seeds: ConfigSignerSeeds(poolSeed+1, bump)}
	assert.False(t, auth.Prove(forged))

	// a wallet capability is never a derived proof
	assert.False(t, auth.Prove(Wallet(config)))

	other := PDAAuthority{ProgramID: solana.NewWallet().PublicKey()}
	assert.False(t, other.Prove(capability))
}

func TestDeriveLpMintAddress(t *testing.T) {
	config, _, err := DeriveConfigAddress(ProgramID, 7)
	require.NoError(t, err)
	lp, bump, err := DeriveLpMintAddress(ProgramID, config)
	require.NoError(t, err)

	again, err := solana.CreateProgramAddress(LpMintSeeds(config, bump), ProgramID)
	require.NoError(t, err)
	assert.Equal(t, lp, again)
	assert.NotEqual(t, config, lp)
}
