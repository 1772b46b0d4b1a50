package curve

import "github.com/holiman/uint256"

const (
	// BasisPointMax is 100% expressed in basis points.
	BasisPointMax = 10_000

	// MaxPrecision is the largest fixed-point exponent accepted by WithdrawAmounts.
	// 10^38 is the largest power of ten below 2^128.
	MaxPrecision = 38

	// IntermediateBits is the width every intermediate product must fit in.
	IntermediateBits = 128
)

var (
	basisPointMax = uint256.NewInt(BasisPointMax)

	// pow10[i] = 10^i for i in [0, MaxPrecision]
	pow10 [MaxPrecision + 1]*uint256.Int
)

func init() {
	pow10[0] = uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := 1; i < len(pow10); i++ {
		pow10[i] = new(uint256.Int).Mul(pow10[i-1], ten)
	}
}
