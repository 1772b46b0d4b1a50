package ledger

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	solanago "github.com/krazyTry/cpamm-go/solana"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type snapshotAccount struct {
	Address string `json:"address"`
	Owner   string `json:"owner"`
	Data    string `json:"data"`
}

type snapshot struct {
	ProgramID string            `json:"programId"`
	Accounts  []snapshotAccount `json:"accounts"`
}

// Snapshot encodes every account as JSON, data in base64, sorted by
// address.
func (l *Ledger) Snapshot() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := snapshot{
		ProgramID: l.programID.String(),
		Accounts:  make([]snapshotAccount, 0, len(l.accounts)),
	}
	for key, acc := range l.accounts {
		snap.Accounts = append(snap.Accounts, snapshotAccount{
			Address: key.String(),
			Owner:   acc.Owner.String(),
			Data:    base64.StdEncoding.EncodeToString(acc.Data),
		})
	}
	sort.Slice(snap.Accounts, func(i, j int) bool {
		return snap.Accounts[i].Address < snap.Accounts[j].Address
	})
	return json.Marshal(snap)
}

// Restore replaces the ledger's accounts with those in raw. raw must
// have been produced for the same program id. On error the ledger is
// left unchanged.
func (l *Ledger) Restore(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: snapshot is not valid json", ErrInvalidAccountData)
	}
	root := gjson.ParseBytes(raw)
	if id := root.Get("programId").String(); id != l.programID.String() {
		return fmt.Errorf("%w: snapshot of program %q", ErrInvalidAccountOwner, id)
	}

	accounts := make(map[solana.PublicKey]*Account)
	var err error
	root.Get("accounts").ForEach(func(_, v gjson.Result) bool {
		var key, owner solana.PublicKey
		if key, err = solana.PublicKeyFromBase58(v.Get("address").String()); err != nil {
			return false
		}
		if owner, err = solana.PublicKeyFromBase58(v.Get("owner").String()); err != nil {
			return false
		}
		var data []byte
		if data, err = base64.StdEncoding.DecodeString(v.Get("data").String()); err != nil {
			return false
		}
		accounts[key] = &Account{Owner: owner, Data: data}
		return true
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAccountData, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = accounts
	return nil
}

// ImportTokenAccount stores a token account given as the jsonParsed
// value of a getAccountInfo response.
func (l *Ledger) ImportTokenAccount(address solana.PublicKey, raw []byte) error {
	acc, err := solanago.ParseTokenAccountJSON(address, raw)
	if err != nil {
		return err
	}
	return l.Execute(nil, func(tx *Tx) error {
		return tx.putTokenAccount(acc)
	})
}

// ImportMint stores a mint given as the jsonParsed value of a
// getAccountInfo response.
func (l *Ledger) ImportMint(address solana.PublicKey, raw []byte) error {
	mint, err := solanago.ParseMintJSON(address, raw)
	if err != nil {
		return err
	}
	return l.Execute(nil, func(tx *Tx) error {
		return tx.putMint(mint)
	})
}
