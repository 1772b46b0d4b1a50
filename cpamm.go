package cpamm

import (
	"github.com/krazyTry/cpamm-go/amm"
	"github.com/krazyTry/cpamm-go/ledger"
)

// NewProgram creates the pool program.
//
// Example:
//
// program := NewProgram(amm.WithLogger(logger))
//
// ix, _ := amm.NewSwapInstruction(program.ID(), amm.SwapArgs{IsX: true, Amount: 1_000, Min: 996}, keys)
var NewProgram = amm.NewProgram

// NewLedger creates an in-memory ledger that hosts the pool program.
//
// Example:
//
// l := NewLedger(ledger.WithRegisterer(prometheus.DefaultRegisterer))
//
// pool, _ := l.CreatePool(ledger.PoolParams{Seed: 42, MintX: mintX, MintY: mintY, Fee: 30, LpDecimals: 6})
//
// l.Submit(program, ix, user)
var NewLedger = ledger.New
