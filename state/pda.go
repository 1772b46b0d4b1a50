package state

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// ProgramID is the address the pool program is deployed at.
var ProgramID = solana.MustPublicKeyFromBase58("8Lh86deJ3M5pYxApMeWHKdPjF2ZJE6HEXECG3f1MrBpQ")

var seed = struct {
	Config []byte
	Lp     []byte
}{
	Config: []byte("config"),
	Lp:     []byte("lp"),
}

func seedBytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// DeriveConfigAddress finds the config PDA for a pool seed.
func DeriveConfigAddress(programID solana.PublicKey, poolSeed uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seed.Config, seedBytes(poolSeed)}, programID)
}

// DeriveLpMintAddress finds the share mint PDA of a config.
func DeriveLpMintAddress(programID, config solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{seed.Lp, config.Bytes()}, programID)
}

// ConfigSignerSeeds are the seeds, bump included, that sign for the config PDA.
func ConfigSignerSeeds(poolSeed uint64, bump uint8) [][]byte {
	return [][]byte{seed.Config, seedBytes(poolSeed), {bump}}
}

// LpMintSeeds are the seeds, bump included, of the share mint PDA.
func LpMintSeeds(config solana.PublicKey, bump uint8) [][]byte {
	return [][]byte{seed.Lp, config.Bytes(), {bump}}
}

// Capability is the right to move funds out of an account owned by Key.
// A wallet capability carries no seeds and is backed by a transaction
// signature. A derived capability carries the seeds that re-create Key
// under the program id; no private key exists for it.
type Capability struct {
	Key   solana.PublicKey
	Seeds [][]byte
}

// Wallet returns the capability of a signing wallet.
func Wallet(key solana.PublicKey) Capability {
	return Capability{Key: key}
}

func (c Capability) Derived() bool {
	return len(c.Seeds) > 0
}

// PDAAuthority derives and proves the delegated signing capability of a pool.
type PDAAuthority struct {
	ProgramID solana.PublicKey
}

// Derive returns the capability that lets cfg's config PDA sign for its vaults.
func (a PDAAuthority) Derive(cfg *Config) (Capability, error) {
	seeds := ConfigSignerSeeds(cfg.Seed, cfg.ConfigBump)
	key, err := solana.CreateProgramAddress(seeds, a.ProgramID)
	if err != nil {
		return Capability{}, err
	}
	return Capability{Key: key, Seeds: seeds}, nil
}

// Prove reports whether the seeds of c re-create c.Key under the program id.
func (a PDAAuthority) Prove(c Capability) bool {
	if !c.Derived() {
		return false
	}
	key, err := solana.CreateProgramAddress(c.Seeds, a.ProgramID)
	if err != nil {
		return false
	}
	return key.Equals(c.Key)
}
