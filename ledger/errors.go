package ledger

import "errors"

var (
	ErrAccountNotFound     = errors.New("ledger: account not found")
	ErrAccountExists       = errors.New("ledger: account already exists")
	ErrInvalidAccountOwner = errors.New("ledger: account is owned by another program")
	ErrInvalidAccountData  = errors.New("ledger: invalid account data")
	ErrMintMismatch        = errors.New("ledger: account does not hold this mint")
	ErrOwnerMismatch       = errors.New("ledger: authority does not own the account")
	ErrMissingSignature    = errors.New("ledger: missing required signature")
	ErrInvalidSeeds        = errors.New("ledger: signer seeds do not derive the authority")
	ErrInsufficientFunds   = errors.New("ledger: insufficient funds")
	ErrAccountFrozen       = errors.New("ledger: account is frozen")
	ErrOverflow            = errors.New("ledger: balance overflow")
)
