package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MintSize is the length of an SPL mint account.
const MintSize = 82

// Mint is a decoded SPL mint.
type Mint struct {
	Address         solana.PublicKey
	MintAuthority   *solana.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

type mintLayout struct {
	MintAuthorityOption   uint32
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         bool
	FreezeAuthorityOption uint32
	FreezeAuthority       solana.PublicKey
}

// DecodeMint parses SPL mint data held at address.
func DecodeMint(address solana.PublicKey, data []byte) (*Mint, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("mint %s: data too short (%d bytes)", address, len(data))
	}
	raw := &mintLayout{}
	if err := binary.NewBinDecoder(data[:MintSize]).Decode(raw); err != nil {
		return nil, fmt.Errorf("mint %s: %w", address, err)
	}
	return &Mint{
		Address:         address,
		MintAuthority:   optionalKey(raw.MintAuthorityOption, raw.MintAuthority),
		Supply:          raw.Supply,
		Decimals:        raw.Decimals,
		IsInitialized:   raw.IsInitialized,
		FreezeAuthority: optionalKey(raw.FreezeAuthorityOption, raw.FreezeAuthority),
	}, nil
}

// Encode returns the SPL layout of m.
func (m *Mint) Encode() ([]byte, error) {
	raw := &mintLayout{
		Supply:        m.Supply,
		Decimals:      m.Decimals,
		IsInitialized: m.IsInitialized,
	}
	raw.MintAuthorityOption, raw.MintAuthority = keyOption(m.MintAuthority)
	raw.FreezeAuthorityOption, raw.FreezeAuthority = keyOption(m.FreezeAuthority)

	buf := new(bytes.Buffer)
	if err := binary.NewBinEncoder(buf).Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
