// Package ledger is an in-memory account store that hosts the pool
// program. It stands in for the chain runtime: it owns every account,
// checks signatures and program-derived authorities, implements the token
// program the pool moves funds through, and applies each instruction
// as a single all-or-nothing unit.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/krazyTry/cpamm-go/amm"
	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// Account is raw account data and the program that owns it.
type Account struct {
	Owner solana.PublicKey
	Data  []byte
}

func (a *Account) clone() *Account {
	return &Account{Owner: a.Owner, Data: append([]byte(nil), a.Data...)}
}

// Ledger holds accounts and executes transactions against them one at a
// time.
type Ledger struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*Account

	programID solana.PublicKey
	authority state.PDAAuthority

	logger     *zap.Logger
	registerer prometheus.Registerer
	metrics    *metrics
}

type Option func(*Ledger)

// WithProgramID sets the program that owns pool configs.
func WithProgramID(id solana.PublicKey) Option {
	return func(l *Ledger) {
		l.programID = id
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithRegisterer registers the ledger metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(l *Ledger) {
		l.registerer = reg
	}
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		accounts:  make(map[solana.PublicKey]*Account),
		programID: state.ProgramID,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.authority = state.PDAAuthority{ProgramID: l.programID}
	l.metrics = newMetrics(l.registerer)
	return l
}

func (l *Ledger) ProgramID() solana.PublicKey {
	return l.programID
}

// Execute runs fn inside a transaction signed by signers. Writes made
// through the transaction become visible only if fn returns nil; any
// error discards all of them.
func (l *Ledger) Execute(signers []solana.PublicKey, fn func(*Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx := newTx(l, signers)
	if err := fn(tx); err != nil {
		l.logger.Debug("transaction discarded", zap.Int("staged", len(tx.staged)), zap.Error(err))
		return err
	}
	for key, acc := range tx.staged {
		l.accounts[key] = acc
	}
	for _, kind := range tx.calls {
		l.metrics.transfers.WithLabelValues(kind).Inc()
	}
	l.logger.Debug("transaction committed", zap.Int("staged", len(tx.staged)))
	return nil
}

// View runs fn against a transaction whose writes are always discarded.
func (l *Ledger) View(fn func(*Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(newTx(l, nil))
}

// Submit executes ix with program inside one transaction.
func (l *Ledger) Submit(program *amm.Program, ix solana.Instruction, signers ...solana.PublicKey) error {
	return l.SubmitTransaction(program, []solana.Instruction{ix}, signers...)
}

// SubmitTransaction executes ixs in order inside one transaction. Besides
// program, the ledger hosts the associated token account program's create
// instruction. The first failure discards the whole transaction.
func (l *Ledger) SubmitTransaction(program *amm.Program, ixs []solana.Instruction, signers ...solana.PublicKey) error {
	return l.Execute(signers, func(tx *Tx) error {
		for i, ix := range ixs {
			name := instructionName(program, ix)
			err := tx.process(program, ix)
			l.metrics.instructions.WithLabelValues(name, resultLabel(err)).Inc()
			if err != nil {
				l.logger.Info("instruction failed", zap.Int("index", i), zap.String("instruction", name), zap.Error(err))
				return err
			}
			l.logger.Info("instruction executed", zap.Int("index", i), zap.String("instruction", name))
		}
		return nil
	})
}

func instructionName(program *amm.Program, ix solana.Instruction) string {
	switch {
	case ix.ProgramID().Equals(solana.SPLAssociatedTokenAccountProgramID):
		return "create_associated_token_account"
	case ix.ProgramID().Equals(program.ID()):
		if data, err := ix.Data(); err == nil {
			return amm.InstructionName(data)
		}
	}
	return "unknown"
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var e *amm.Error
	if errors.As(err, &e) {
		return e.Name
	}
	return "error"
}

// Account returns a copy of the account stored at key.
func (l *Ledger) Account(key solana.PublicKey) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return acc.clone(), nil
}

// SetAccount stores acc at key, replacing whatever was there.
func (l *Ledger) SetAccount(key solana.PublicKey, acc *Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[key] = acc.clone()
}

// Exists reports whether an account is stored at key.
func (l *Ledger) Exists(key solana.PublicKey) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.accounts[key]
	return ok
}

// Len returns the number of stored accounts.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accounts)
}

// TokenAccount returns the committed token account at key.
func (l *Ledger) TokenAccount(key solana.PublicKey) (acc *solanago.TokenAccount, err error) {
	err = l.View(func(tx *Tx) error {
		acc, err = tx.TokenAccount(key)
		return err
	})
	return acc, err
}

// Mint returns the committed mint at key.
func (l *Ledger) Mint(key solana.PublicKey) (mint *solanago.Mint, err error) {
	err = l.View(func(tx *Tx) error {
		mint, err = tx.Mint(key)
		return err
	})
	return mint, err
}

// Config returns the committed pool config at key.
func (l *Ledger) Config(key solana.PublicKey) (cfg *state.Config, err error) {
	err = l.View(func(tx *Tx) error {
		cfg, err = tx.Config(key)
		return err
	})
	return cfg, err
}
