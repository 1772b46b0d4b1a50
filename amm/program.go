// Package amm executes swaps and withdrawals against a two-asset
// constant-product pool.
//
// The package holds no pool state of its own. Every operation reads the
// accounts handed to it once, prices with the curve package, checks the
// caller's bounds and then moves funds only through a TokenProgram. The
// host that supplies the TokenProgram is responsible for committing or
// discarding the whole operation.
package amm

import (
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-go/state"
)

// TokenProgram moves and burns tokens on behalf of the pool.
// Implementations must apply each call fully or not at all.
type TokenProgram interface {
	Transfer(from, to solana.PublicKey, authority state.Capability, amount uint64) error
	Burn(mint, from solana.PublicKey, authority state.Capability, amount uint64) error
}

// Program binds the pool logic to a deployed program id.
type Program struct {
	id        solana.PublicKey
	authority state.PDAAuthority
	logger    *zap.Logger
}

type Option func(*Program)

func WithProgramID(id solana.PublicKey) Option {
	return func(p *Program) {
		p.id = id
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProgram returns a Program for state.ProgramID unless overridden.
func NewProgram(opts ...Option) *Program {
	p := &Program{
		id:     state.ProgramID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.authority = state.PDAAuthority{ProgramID: p.id}
	p.logger = p.logger.With(zap.Stringer("program", p.id))
	return p
}

func (p *Program) ID() solana.PublicKey {
	return p.id
}

// Authority returns the PDA authority the program signs vault transfers with.
func (p *Program) Authority() state.PDAAuthority {
	return p.authority
}
