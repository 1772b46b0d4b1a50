// Package curve implements the constant-product pricing used by the pool.
//
// All functions are pure and integer-only. Intermediates are carried in
// 256-bit space and rejected once they leave the 128-bit range the ledger
// computes in, so nothing wraps or truncates silently. The one exception
// is the withdrawal numerator reserve*shares*10^precision, which is
// carried at full width. Amounts paid out of the pool are rounded down.
package curve

import (
	"github.com/holiman/uint256"
)

// checked rejects values wider than IntermediateBits.
func checked(v *uint256.Int) (*uint256.Int, error) {
	if v.BitLen() > IntermediateBits {
		return nil, ErrOverflow
	}
	return v, nil
}

func mul(a, b *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return checked(out)
}

func add(a, b *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return checked(out)
}

func sub(a, b *uint256.Int) (*uint256.Int, error) {
	if a.Lt(b) {
		return nil, ErrUnderflow
	}
	return new(uint256.Int).Sub(a, b), nil
}

func div(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrNoLiquidity
	}
	return new(uint256.Int).Div(a, b), nil
}

// divCeil rounds the quotient up.
func divCeil(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, ErrNoLiquidity
	}
	q, r := new(uint256.Int), new(uint256.Int)
	q.DivMod(a, b, r)
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	return q, nil
}

func toU64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}

// AmountAfterFee returns amountIn*(10000-feeBps)/10000, rounded down.
func AmountAfterFee(amountIn uint64, feeBps uint16) (uint64, error) {
	if feeBps >= BasisPointMax {
		return 0, ErrInvalidFee
	}
	eff, err := amountAfterFee(uint256.NewInt(amountIn), feeBps)
	if err != nil {
		return 0, err
	}
	return toU64(eff)
}

func amountAfterFee(amountIn *uint256.Int, feeBps uint16) (*uint256.Int, error) {
	keep, err := sub(basisPointMax, uint256.NewInt(uint64(feeBps)))
	if err != nil {
		return nil, err
	}
	scaled, err := mul(amountIn, keep)
	if err != nil {
		return nil, err
	}
	return div(scaled, basisPointMax)
}

// SwapOutput returns the amount of the output asset paid for amountIn of
// the input asset.
//
//	eff = amountIn * (10000 - feeBps) / 10000
//	out = reserveOut - ceil(reserveIn*reserveOut / (reserveIn + eff))
//
// The post-swap output reserve is rounded up, so out itself is the exact
// constant-product output rounded down and k never decreases. The result
// is always strictly below reserveOut.
func SwapOutput(reserveIn, reserveOut, amountIn uint64, feeBps uint16) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 {
		return 0, ErrNoLiquidity
	}
	if amountIn == 0 {
		return 0, ErrZeroAmount
	}
	if feeBps >= BasisPointMax {
		return 0, ErrInvalidFee
	}

	rIn := uint256.NewInt(reserveIn)
	rOut := uint256.NewInt(reserveOut)

	eff, err := amountAfterFee(uint256.NewInt(amountIn), feeBps)
	if err != nil {
		return 0, err
	}
	k, err := mul(rIn, rOut)
	if err != nil {
		return 0, err
	}
	newIn, err := add(rIn, eff)
	if err != nil {
		return 0, err
	}
	newOut, err := divCeil(k, newIn)
	if err != nil {
		return 0, err
	}
	out, err := sub(rOut, newOut)
	if err != nil {
		return 0, err
	}
	return toU64(out)
}

// WithdrawAmounts returns the share of each reserve owed for burning
// shares out of supply. Both sides of shares/supply are scaled by
// 10^precision and the scaled ratio is applied to each reserve in a single
// division, so the result is floor(reserve*shares/supply) for every
// precision the scaled values fit 128 bits at.
//
// Burning the entire supply returns exactly the reserves.
func WithdrawAmounts(reserveX, reserveY, supply, shares uint64, precision uint8) (x, y uint64, err error) {
	if supply == 0 {
		return 0, 0, ErrNoLiquidity
	}
	if shares == 0 {
		return 0, 0, ErrZeroAmount
	}
	if int(precision) > MaxPrecision {
		return 0, 0, ErrOverflow
	}
	// the remaining supply may not go negative
	if _, err = sub(uint256.NewInt(supply), uint256.NewInt(shares)); err != nil {
		return 0, 0, err
	}

	scale := pow10[precision]
	scaledShares, err := mul(uint256.NewInt(shares), scale)
	if err != nil {
		return 0, 0, err
	}
	scaledSupply, err := mul(uint256.NewInt(supply), scale)
	if err != nil {
		return 0, 0, err
	}

	portion := func(reserve uint64) (uint64, error) {
		// reserve < 2^64 and scaledShares < 2^128, so the numerator fits 256 bits
		numerator := new(uint256.Int).Mul(uint256.NewInt(reserve), scaledShares)
		v, err := div(numerator, scaledSupply)
		if err != nil {
			return 0, err
		}
		return toU64(v)
	}

	if x, err = portion(reserveX); err != nil {
		return 0, 0, err
	}
	if y, err = portion(reserveY); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// Invariant returns reserveX*reserveY. The product of two u64 values
// always fits in 128 bits.
func Invariant(reserveX, reserveY uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(reserveX), uint256.NewInt(reserveY))
}
