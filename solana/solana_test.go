package solana

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/cpamm-go/state"
)

func TestTokenAccountLayout(t *testing.T) {
	delegate := solana.NewWallet().PublicKey()
	acc := &TokenAccount{
		Address:         solana.NewWallet().PublicKey(),
		Mint:            solana.NewWallet().PublicKey(),
		Owner:           solana.NewWallet().PublicKey(),
		Amount:          1_000_000,
		Delegate:        &delegate,
		DelegatedAmount: 5,
		State:           AccountStateInitialized,
	}
	data, err := acc.Encode()
	require.NoError(t, err)
	require.Len(t, data, TokenAccountSize)
	assert.Equal(t, acc.Mint[:], data[:32])
	assert.Equal(t, acc.Owner[:], data[32:64])
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[64:72]))

	got, err := DecodeTokenAccount(acc.Address, data)
	require.NoError(t, err)
	assert.Equal(t, acc, got)
	assert.True(t, got.IsInitialized())
	assert.False(t, got.IsFrozen())
	assert.Nil(t, got.CloseAuthority)

	_, err = DecodeTokenAccount(acc.Address, data[:100])
	require.Error(t, err)
}

func TestMintLayout(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	m := &Mint{
		Address:       solana.NewWallet().PublicKey(),
		MintAuthority: &authority,
		Supply:        1_000_000,
		Decimals:      6,
		IsInitialized: true,
	}
	data, err := m.Encode()
	require.NoError(t, err)
	require.Len(t, data, MintSize)
	assert.Equal(t, byte(6), data[44])

	got, err := DecodeMint(m.Address, data)
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestParseTokenAccountJSON(t *testing.T) {
	address := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	raw := fmt.Sprintf(`{
		"program": "spl-token",
		"parsed": {
			"type": "account",
			"info": {
				"isNative": false,
				"mint": %q,
				"owner": %q,
				"state": "initialized",
				"tokenAmount": {"amount": "18446744073709551615", "decimals": 6, "uiAmountString": "18446744073709.551615"}
			}
		},
		"space": 165
	}`, mint, owner)

	acc, err := ParseTokenAccountJSON(address, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, mint, acc.Mint)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, uint64(18446744073709551615), acc.Amount)
	assert.Equal(t, AccountStateInitialized, acc.State)
	assert.Nil(t, acc.Delegate)
	assert.Nil(t, acc.IsNative)

	_, err = ParseTokenAccountJSON(address, []byte(`{"parsed":{"type":"mint","info":{}}}`))
	require.Error(t, err)
}

func TestParseMintJSON(t *testing.T) {
	address := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	raw := fmt.Sprintf(`{"parsed":{"type":"mint","info":{"decimals":9,"freezeAuthority":null,"isInitialized":true,"mintAuthority":%q,"supply":"424242"}}}`, authority)

	m, err := ParseMintJSON(address, []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, uint8(9), m.Decimals)
	assert.Equal(t, uint64(424242), m.Supply)
	require.NotNil(t, m.MintAuthority)
	assert.Equal(t, authority, *m.MintAuthority)
	assert.Nil(t, m.FreezeAuthority)
}

func TestParseJSONRejectsBadNumbers(t *testing.T) {
	address := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	account := func(amount string) []byte {
		return []byte(fmt.Sprintf(`{"parsed":{"type":"account","info":{"mint":%q,"owner":%q,"state":"initialized","tokenAmount":{"amount":%s,"decimals":6}}}}`, mint, owner, amount))
	}
	for _, amount := range []string{`"12x"`, `"-1"`, `"18446744073709551616"`, `""`, `5000`, `null`} {
		_, err := ParseTokenAccountJSON(address, account(amount))
		assert.Error(t, err, "amount %s", amount)
	}
	_, err := ParseTokenAccountJSON(address, []byte(fmt.Sprintf(`{"parsed":{"type":"account","info":{"mint":%q,"owner":%q,"tokenAmount":{"amount":"1"},"delegatedAmount":{"amount":"oops"}}}}`, mint, owner)))
	assert.Error(t, err, "delegated amount")

	mintJSON := func(decimals, supply string) []byte {
		return []byte(fmt.Sprintf(`{"parsed":{"type":"mint","info":{"decimals":%s,"isInitialized":true,"supply":%s}}}`, decimals, supply))
	}
	m, err := ParseMintJSON(address, mintJSON("255", `"1"`))
	require.NoError(t, err)
	assert.Equal(t, uint8(255), m.Decimals)

	for _, tc := range []struct{ decimals, supply string }{
		{"256", `"1"`},
		{"-1", `"1"`},
		{"6.5", `"1"`},
		{`"6"`, `"1"`},
		{"6", `"nope"`},
		{"6", `1`},
	} {
		_, err := ParseMintJSON(address, mintJSON(tc.decimals, tc.supply))
		assert.Error(t, err, "decimals %s supply %s", tc.decimals, tc.supply)
	}
}

func TestRecorder(t *testing.T) {
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	config, bump, err := state.DeriveConfigAddress(state.ProgramID, 42)
	require.NoError(t, err)
	pda := state.Capability{Key: config, Seeds: state.ConfigSignerSeeds(42, bump)}

	rec := &Recorder{}
	require.NoError(t, rec.Transfer(from, to, pda, 996))
	require.NoError(t, rec.Burn(mint, from, state.Wallet(to), 100))
	require.Len(t, rec.Invocations, 2)

	transfer := rec.Invocations[0]
	assert.Equal(t, solana.TokenProgramID, transfer.Instruction.ProgramID())
	assert.Equal(t, pda.Seeds, transfer.SignerSeeds)
	accounts := transfer.Instruction.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, from, accounts[0].PublicKey)
	assert.Equal(t, to, accounts[1].PublicKey)
	assert.Equal(t, config, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsSigner)
	data, err := transfer.Instruction.Data()
	require.NoError(t, err)
	assert.Equal(t, byte(3), data[0])
	assert.Equal(t, uint64(996), binary.LittleEndian.Uint64(data[1:9]))

	burn := rec.Invocations[1]
	assert.Nil(t, burn.SignerSeeds)
	data, err = burn.Instruction.Data()
	require.NoError(t, err)
	assert.Equal(t, byte(8), data[0])
	assert.Equal(t, uint64(100), binary.LittleEndian.Uint64(data[1:9]))

	assert.Len(t, rec.Instructions(), 2)
}

type knownAccounts map[solana.PublicKey]bool

func (k knownAccounts) Exists(key solana.PublicKey) bool { return k[key] }

func TestPrepareTokenATA(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	var ixs []solana.Instruction
	got, err := PrepareTokenATA(knownAccounts{ata: true}, owner, mint, owner, &ixs)
	require.NoError(t, err)
	assert.Equal(t, ata, got)
	assert.Empty(t, ixs)

	_, err = PrepareTokenATA(knownAccounts{}, owner, mint, owner, &ixs)
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ixs[0].ProgramID())
	accounts := ixs[0].Accounts()
	assert.True(t, accounts[0].IsSigner)
	assert.Equal(t, ata, accounts[1].PublicKey)
	assert.Equal(t, owner, accounts[2].PublicKey)
	assert.Equal(t, mint, accounts[3].PublicKey)
}
