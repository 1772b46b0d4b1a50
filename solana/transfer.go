package solana

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/krazyTry/cpamm-go/state"
)

// TransferInstruction moves amount from one token account to another.
// authority must own from; when it is a PDA the runtime signs with the
// seeds passed alongside the instruction.
func TransferInstruction(from, to, authority solana.PublicKey, amount uint64) solana.Instruction {
	return token.NewTransferInstruction(
		amount,
		from,
		to,
		authority,
		[]solana.PublicKey{},
	).Build()
}

// BurnInstruction destroys amount tokens held in from, lowering the mint supply.
func BurnInstruction(mint, from, authority solana.PublicKey, amount uint64) solana.Instruction {
	return token.NewBurnInstruction(
		amount,
		from,
		mint,
		authority,
		[]solana.PublicKey{},
	).Build()
}

// Invocation is one token program call together with the signer seeds
// that authorize it, if any.
type Invocation struct {
	Instruction solana.Instruction
	SignerSeeds [][]byte
}

// Recorder collects token program calls instead of executing them.
// It is used to build transactions off-chain and to inspect what an
// operation would do.
type Recorder struct {
	Invocations []Invocation
}

func (r *Recorder) Transfer(from, to solana.PublicKey, authority state.Capability, amount uint64) error {
	r.Invocations = append(r.Invocations, Invocation{
		Instruction: TransferInstruction(from, to, authority.Key, amount),
		SignerSeeds: authority.Seeds,
	})
	return nil
}

func (r *Recorder) Burn(mint, from solana.PublicKey, authority state.Capability, amount uint64) error {
	r.Invocations = append(r.Invocations, Invocation{
		Instruction: BurnInstruction(mint, from, authority.Key, amount),
		SignerSeeds: authority.Seeds,
	})
	return nil
}

// Instructions returns the recorded instructions in call order.
func (r *Recorder) Instructions() []solana.Instruction {
	out := make([]solana.Instruction, 0, len(r.Invocations))
	for _, inv := range r.Invocations {
		out = append(out, inv.Instruction)
	}
	return out
}
