// Package state holds the persisted pool record and the program-derived
// identities that bind vaults and the share mint to it.
package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ConfigDiscriminator prefixes every Config account.
var ConfigDiscriminator = discriminator("Config")

func discriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

// Config is the on-ledger record of one pool.
type Config struct {
	Seed uint64
	// Authority is kept for layout compatibility; the swap and withdraw
	// paths never read it.
	Authority  *solana.PublicKey
	MintX      solana.PublicKey
	MintY      solana.PublicKey
	Fee        uint16 // basis points
	Locked     bool
	ConfigBump uint8
	LpBump     uint8
}

func (c Config) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteBytes(ConfigDiscriminator[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint64(c.Seed, binary.LittleEndian); err != nil {
		return err
	}
	if c.Authority == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.WriteBytes(c.Authority[:], false); err != nil {
			return err
		}
	}
	if err = encoder.WriteBytes(c.MintX[:], false); err != nil {
		return err
	}
	if err = encoder.WriteBytes(c.MintY[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint16(c.Fee, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteBool(c.Locked); err != nil {
		return err
	}
	if err = encoder.WriteUint8(c.ConfigBump); err != nil {
		return err
	}
	return encoder.WriteUint8(c.LpBump)
}

func (c *Config) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	disc, err := decoder.ReadNBytes(8)
	if err != nil {
		return err
	}
	if !bytes.Equal(disc, ConfigDiscriminator[:]) {
		return fmt.Errorf("wrong discriminator: wanted %x, got %x", ConfigDiscriminator[:], disc)
	}
	if c.Seed, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	hasAuthority, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	c.Authority = nil
	if hasAuthority {
		key, err := readPublicKey(decoder)
		if err != nil {
			return err
		}
		c.Authority = &key
	}
	if c.MintX, err = readPublicKey(decoder); err != nil {
		return err
	}
	if c.MintY, err = readPublicKey(decoder); err != nil {
		return err
	}
	if c.Fee, err = decoder.ReadUint16(binary.LittleEndian); err != nil {
		return err
	}
	if c.Locked, err = decoder.ReadBool(); err != nil {
		return err
	}
	if c.ConfigBump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	c.LpBump, err = decoder.ReadUint8()
	return err
}

func readPublicKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	b, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

// Encode returns the account data for c.
func (c *Config) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeConfig parses Config account data.
func DecodeConfig(data []byte) (*Config, error) {
	c := new(Config)
	if err := bin.NewBorshDecoder(data).Decode(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}
