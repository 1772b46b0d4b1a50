package amm

import (
	"errors"
	"fmt"

	"github.com/krazyTry/cpamm-go/curve"
)

// Error is a program error with a stable numeric code. Codes below 6000
// follow the framework's account-constraint numbering, codes from 6000
// on are specific to the pool.
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

var (
	ErrInvalidInstruction = &Error{101, "InstructionFallbackNotFound", "unknown instruction"}

	ErrConstraintHasOne      = &Error{2001, "ConstraintHasOne", "has one constraint was violated"}
	ErrConstraintSigner      = &Error{2002, "ConstraintSigner", "signer constraint was violated"}
	ErrConstraintSeeds       = &Error{2006, "ConstraintSeeds", "seeds constraint was violated"}
	ErrConstraintAssociated  = &Error{2009, "ConstraintAssociated", "associated token constraint was violated"}
	ErrConstraintTokenMint   = &Error{2014, "ConstraintTokenMint", "token mint constraint was violated"}
	ErrConstraintTokenOwner  = &Error{2015, "ConstraintTokenOwner", "token owner constraint was violated"}
	ErrAccountNotEnoughKeys  = &Error{3005, "AccountNotEnoughKeys", "not enough account keys given to the instruction"}
	ErrInvalidProgramID      = &Error{3008, "InvalidProgramId", "program id was not as expected"}
	ErrAccountNotInitialized = &Error{3012, "AccountNotInitialized", "account is not initialized"}

	ErrInvalidAmount       = &Error{6000, "InvalidAmount", "amount must be greater than zero"}
	ErrPoolLocked          = &Error{6001, "PoolLocked", "pool is locked"}
	ErrNoLiquidityInPool   = &Error{6002, "NoLiquidityInPool", "no liquidity in pool"}
	ErrSlippageExceeded    = &Error{6003, "SlippageExceeded", "slippage exceeded"}
	ErrArithmeticOverflow  = &Error{6004, "ArithmeticOverflow", "arithmetic overflow"}
	ErrArithmeticUnderflow = &Error{6005, "ArithmeticUnderflow", "arithmetic underflow"}
	ErrInvalidFee          = &Error{6006, "InvalidFee", "fee must be below 10000 basis points"}
	ErrTransferFailure     = &Error{6007, "TransferFailure", "token transfer failed"}
)

// Code returns the numeric code carried by err, or false when err is not
// a program error.
func Code(err error) (uint32, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// fromCurve maps engine errors onto program errors.
func fromCurve(err error) error {
	switch {
	case errors.Is(err, curve.ErrOverflow):
		return ErrArithmeticOverflow
	case errors.Is(err, curve.ErrUnderflow):
		return ErrArithmeticUnderflow
	case errors.Is(err, curve.ErrNoLiquidity):
		return ErrNoLiquidityInPool
	case errors.Is(err, curve.ErrZeroAmount):
		return ErrInvalidAmount
	case errors.Is(err, curve.ErrInvalidFee):
		return ErrInvalidFee
	}
	return err
}

func constraint(e *Error, account string) error {
	return fmt.Errorf("%w: %s", e, account)
}
