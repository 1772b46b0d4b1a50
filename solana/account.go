package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// TokenAccountSize is the length of an SPL token account.
const TokenAccountSize = 165

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccount is a decoded SPL token account.
type TokenAccount struct {
	Address solana.PublicKey

	Mint   solana.PublicKey
	Owner  solana.PublicKey
	Amount uint64

	// Authority that may spend DelegatedAmount on the owner's behalf
	Delegate        *solana.PublicKey
	DelegatedAmount uint64

	State AccountState

	// Rent-exempt reserve of a native (wrapped SOL) account
	IsNative *uint64

	CloseAuthority *solana.PublicKey
}

func (a *TokenAccount) IsInitialized() bool { return a.State != AccountStateUninitialized }
func (a *TokenAccount) IsFrozen() bool      { return a.State == AccountStateFrozen }

// tokenAccountLayout https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

func optionalKey(option uint32, key solana.PublicKey) *solana.PublicKey {
	if option == 0 {
		return nil
	}
	return &key
}

func keyOption(key *solana.PublicKey) (uint32, solana.PublicKey) {
	if key == nil {
		return 0, solana.PublicKey{}
	}
	return 1, *key
}

// DecodeTokenAccount parses SPL token account data held at address.
func DecodeTokenAccount(address solana.PublicKey, data []byte) (*TokenAccount, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("token account %s: data too short (%d bytes)", address, len(data))
	}
	raw := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data[:TokenAccountSize]).Decode(raw); err != nil {
		return nil, fmt.Errorf("token account %s: %w", address, err)
	}
	acc := &TokenAccount{
		Address:         address,
		Mint:            raw.Mint,
		Owner:           raw.Owner,
		Amount:          raw.Amount,
		Delegate:        optionalKey(raw.DelegateOption, raw.Delegate),
		DelegatedAmount: raw.DelegatedAmount,
		State:           AccountState(raw.State),
		CloseAuthority:  optionalKey(raw.CloseAuthorityOption, raw.CloseAuthority),
	}
	if raw.IsNativeOption > 0 {
		reserve := raw.IsNative
		acc.IsNative = &reserve
	}
	return acc, nil
}

// Encode returns the SPL layout of a.
func (a *TokenAccount) Encode() ([]byte, error) {
	raw := &tokenAccountLayout{
		Mint:            a.Mint,
		Owner:           a.Owner,
		Amount:          a.Amount,
		State:           uint8(a.State),
		DelegatedAmount: a.DelegatedAmount,
	}
	raw.DelegateOption, raw.Delegate = keyOption(a.Delegate)
	raw.CloseAuthorityOption, raw.CloseAuthority = keyOption(a.CloseAuthority)
	if a.IsNative != nil {
		raw.IsNativeOption, raw.IsNative = 1, *a.IsNative
	}

	buf := new(bytes.Buffer)
	if err := binary.NewBinEncoder(buf).Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
