package ledger

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/cpamm-go/amm"
	solanago "github.com/krazyTry/cpamm-go/solana"
	"github.com/krazyTry/cpamm-go/state"
)

// Tx is the execution context of one transaction. Reads see the
// transaction's own writes; nothing reaches the ledger until Execute
// commits.
type Tx struct {
	ledger  *Ledger
	signers map[solana.PublicKey]bool
	staged  map[solana.PublicKey]*Account
	calls   []string
}

func newTx(l *Ledger, signers []solana.PublicKey) *Tx {
	tx := &Tx{
		ledger:  l,
		signers: make(map[solana.PublicKey]bool, len(signers)),
		staged:  make(map[solana.PublicKey]*Account),
	}
	for _, s := range signers {
		tx.signers[s] = true
	}
	return tx
}

func (tx *Tx) get(key solana.PublicKey) (*Account, error) {
	if acc, ok := tx.staged[key]; ok {
		return acc, nil
	}
	if acc, ok := tx.ledger.accounts[key]; ok {
		return acc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
}

func (tx *Tx) owned(key, owner solana.PublicKey) (*Account, error) {
	acc, err := tx.get(key)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(owner) {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrInvalidAccountOwner, key, acc.Owner)
	}
	return acc, nil
}

func (tx *Tx) put(key, owner solana.PublicKey, data []byte) {
	tx.staged[key] = &Account{Owner: owner, Data: data}
}

func (tx *Tx) IsSigner(key solana.PublicKey) bool {
	return tx.signers[key]
}

// TokenAccount decodes the token account at key.
func (tx *Tx) TokenAccount(key solana.PublicKey) (*solanago.TokenAccount, error) {
	acc, err := tx.owned(key, solana.TokenProgramID)
	if err != nil {
		return nil, err
	}
	if len(acc.Data) != solanago.TokenAccountSize {
		return nil, fmt.Errorf("%w: %s is not a token account", ErrInvalidAccountData, key)
	}
	return solanago.DecodeTokenAccount(key, acc.Data)
}

// Mint decodes the mint at key.
func (tx *Tx) Mint(key solana.PublicKey) (*solanago.Mint, error) {
	acc, err := tx.owned(key, solana.TokenProgramID)
	if err != nil {
		return nil, err
	}
	if len(acc.Data) != solanago.MintSize {
		return nil, fmt.Errorf("%w: %s is not a mint", ErrInvalidAccountData, key)
	}
	return solanago.DecodeMint(key, acc.Data)
}

// Config decodes the pool config at key.
func (tx *Tx) Config(key solana.PublicKey) (*state.Config, error) {
	acc, err := tx.owned(key, tx.ledger.programID)
	if err != nil {
		return nil, err
	}
	return state.DecodeConfig(acc.Data)
}

func (tx *Tx) putTokenAccount(acc *solanago.TokenAccount) error {
	data, err := acc.Encode()
	if err != nil {
		return err
	}
	tx.put(acc.Address, solana.TokenProgramID, data)
	return nil
}

func (tx *Tx) putMint(mint *solanago.Mint) error {
	data, err := mint.Encode()
	if err != nil {
		return err
	}
	tx.put(mint.Address, solana.TokenProgramID, data)
	return nil
}

// authorize checks that authority may spend from acc and returns the
// metric kind of the call.
func (tx *Tx) authorize(acc *solanago.TokenAccount, authority state.Capability) (string, error) {
	if !acc.Owner.Equals(authority.Key) {
		return "", fmt.Errorf("%w: %s is owned by %s, not %s", ErrOwnerMismatch, acc.Address, acc.Owner, authority.Key)
	}
	if authority.Derived() {
		if !tx.ledger.authority.Prove(authority) {
			return "", fmt.Errorf("%w: %s", ErrInvalidSeeds, authority.Key)
		}
		return kindPDA, nil
	}
	if !tx.IsSigner(authority.Key) {
		return "", fmt.Errorf("%w: %s", ErrMissingSignature, authority.Key)
	}
	return kindWallet, nil
}

// Transfer moves amount between two accounts of the same mint.
func (tx *Tx) Transfer(from, to solana.PublicKey, authority state.Capability, amount uint64) error {
	src, err := tx.TokenAccount(from)
	if err != nil {
		return err
	}
	dst, err := tx.TokenAccount(to)
	if err != nil {
		return err
	}
	if !src.Mint.Equals(dst.Mint) {
		return fmt.Errorf("%w: %s holds %s, %s holds %s", ErrMintMismatch, from, src.Mint, to, dst.Mint)
	}
	if src.IsFrozen() || dst.IsFrozen() {
		return ErrAccountFrozen
	}
	kind, err := tx.authorize(src, authority)
	if err != nil {
		return err
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientFunds, from, src.Amount, amount)
	}

	if !from.Equals(to) {
		if dst.Amount > math.MaxUint64-amount {
			return fmt.Errorf("%w: %s", ErrOverflow, to)
		}
		src.Amount -= amount
		dst.Amount += amount
		if err := tx.putTokenAccount(src); err != nil {
			return err
		}
		if err := tx.putTokenAccount(dst); err != nil {
			return err
		}
	}
	tx.calls = append(tx.calls, kind)
	return nil
}

// Burn destroys amount tokens held in from and lowers the mint supply.
func (tx *Tx) Burn(mint, from solana.PublicKey, authority state.Capability, amount uint64) error {
	m, err := tx.Mint(mint)
	if err != nil {
		return err
	}
	acc, err := tx.TokenAccount(from)
	if err != nil {
		return err
	}
	if !acc.Mint.Equals(mint) {
		return fmt.Errorf("%w: %s holds %s", ErrMintMismatch, from, acc.Mint)
	}
	if acc.IsFrozen() {
		return ErrAccountFrozen
	}
	if _, err := tx.authorize(acc, authority); err != nil {
		return err
	}
	if acc.Amount < amount {
		return fmt.Errorf("%w: %s holds %d, burns %d", ErrInsufficientFunds, from, acc.Amount, amount)
	}
	if m.Supply < amount {
		return fmt.Errorf("%w: supply of %s is %d", ErrInsufficientFunds, mint, m.Supply)
	}

	acc.Amount -= amount
	m.Supply -= amount
	if err := tx.putTokenAccount(acc); err != nil {
		return err
	}
	if err := tx.putMint(m); err != nil {
		return err
	}
	tx.calls = append(tx.calls, kindBurn)
	return nil
}

// process runs one instruction of a transaction. Anything not addressed
// to the associated token account program is handed to program, which
// rejects foreign program ids itself.
func (tx *Tx) process(program *amm.Program, ix solana.Instruction) error {
	if ix.ProgramID().Equals(solana.SPLAssociatedTokenAccountProgramID) {
		return tx.createAssociatedTokenAccount(ix)
	}
	return program.Process(tx, ix)
}

// createAssociatedTokenAccount executes the associated token account
// program's create instruction: payer, account, wallet, mint.
func (tx *Tx) createAssociatedTokenAccount(ix solana.Instruction) error {
	metas := ix.Accounts()
	if len(metas) < 4 {
		return fmt.Errorf("%w: create associated token account needs 4 accounts", ErrInvalidAccountData)
	}
	payer, address, wallet, mint := metas[0].PublicKey, metas[1].PublicKey, metas[2].PublicKey, metas[3].PublicKey
	if !metas[0].IsSigner || !tx.IsSigner(payer) {
		return fmt.Errorf("%w: payer %s", ErrMissingSignature, payer)
	}
	expected, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return err
	}
	if !expected.Equals(address) {
		return fmt.Errorf("%w: %s is not the associated account of %s", ErrInvalidSeeds, address, wallet)
	}
	return tx.createTokenAccount(address, mint, wallet)
}
