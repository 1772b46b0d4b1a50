package curve

import "errors"

var (
	ErrOverflow    = errors.New("curve: arithmetic overflow")
	ErrUnderflow   = errors.New("curve: arithmetic underflow")
	ErrNoLiquidity = errors.New("curve: no liquidity")
	ErrZeroAmount  = errors.New("curve: amount must be greater than zero")
	ErrInvalidFee  = errors.New("curve: fee must be below 10000 basis points")
)
