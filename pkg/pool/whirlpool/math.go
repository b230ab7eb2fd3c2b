package whirlpool

import (
	"fmt"
	"math/big"

	cosmath "cosmossdk.io/math"

	pkg "github.com/dexcore-labs/solswap/pkg"
)

// sqrt(1.0001)^(-2^i) in Q64.64, one entry per bit of the tick magnitude.
var tickRatioMagic = []struct {
	bit   int
	ratio cosmath.Int
}{
	{0x2, u64Int(18444899583751176192)},
	{0x4, u64Int(18443055278223355904)},
	{0x8, u64Int(18439367220385607680)},
	{0x10, u64Int(18431993317065453568)},
	{0x20, u64Int(18417254355718170624)},
	{0x40, u64Int(18387811781193609216)},
	{0x80, u64Int(18329067761203558400)},
	{0x100, u64Int(18212142134806163456)},
	{0x200, u64Int(17980523815641700352)},
	{0x400, u64Int(17526086738831433728)},
	{0x800, u64Int(16651378430235570176)},
	{0x1000, u64Int(15030750278694412288)},
	{0x2000, u64Int(12247334978884435968)},
	{0x4000, u64Int(8131365268886854656)},
	{0x8000, u64Int(3584323654725218816)},
	{0x10000, u64Int(696457651848324352)},
	{0x20000, u64Int(26294789957507116)},
	{0x40000, u64Int(37481735321082)},
}

var (
	tickRatioOdd  = u64Int(18445821805675395072)
	tickRatioOne  = cosmath.NewIntFromBigInt(new(big.Int).Set(q64))
	log2BX32      = big.NewInt(59543866431248)
	tickLowMargin = big.NewInt(184467440737095516)
	tickHighMargin, _ = new(big.Int).SetString("15793534762490258745", 10)
)

const logBitPrecision = 14

func u64Int(v uint64) cosmath.Int {
	return cosmath.NewIntFromBigInt(new(big.Int).SetUint64(v))
}

func divRoundUp(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// mulShiftRight64 returns (a*b)>>64.
func mulShiftRight64(a, b cosmath.Int) cosmath.Int {
	p := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return cosmath.NewIntFromBigInt(p.Rsh(p, 64))
}

// GetAmountDeltaA returns the token A delta between two sqrt prices for the
// given liquidity, |L * (pu - pl) / (pl * pu)| scaled back out of Q64.64.
func GetAmountDeltaA(currSqrtPrice, targetSqrtPrice, liquidity cosmath.Int, roundUp bool) cosmath.Int {
	lower, upper := orderPrices(currSqrtPrice, targetSqrtPrice)

	num := new(big.Int).Sub(upper.BigInt(), lower.BigInt())
	num.Mul(num, liquidity.BigInt())
	num.Lsh(num, 64)
	den := new(big.Int).Mul(lower.BigInt(), upper.BigInt())

	if roundUp {
		return cosmath.NewIntFromBigInt(divRoundUp(num, den))
	}
	return cosmath.NewIntFromBigInt(num.Quo(num, den))
}

// GetAmountDeltaB returns the token B delta, |L * (pu - pl)| >> 64.
func GetAmountDeltaB(currSqrtPrice, targetSqrtPrice, liquidity cosmath.Int, roundUp bool) cosmath.Int {
	lower, upper := orderPrices(currSqrtPrice, targetSqrtPrice)

	p := new(big.Int).Sub(upper.BigInt(), lower.BigInt())
	p.Mul(p, liquidity.BigInt())
	rem := new(big.Int).And(p, new(big.Int).Sub(new(big.Int).Set(q64), big.NewInt(1)))
	p.Rsh(p, 64)
	if roundUp && rem.Sign() != 0 {
		p.Add(p, big.NewInt(1))
	}
	return cosmath.NewIntFromBigInt(p)
}

func orderPrices(a, b cosmath.Int) (lower, upper cosmath.Int) {
	if a.LT(b) {
		return a, b
	}
	return b, a
}

// GetNextSqrtPrice advances the pool price by a fixed token amount. Token A
// amounts move the price through the L*p/(L ± p*amount) form, token B amounts
// through a plain Q64.64 addition.
func GetNextSqrtPrice(sqrtPrice, liquidity, amount cosmath.Int, amountSpecifiedIsInput, aToB bool) cosmath.Int {
	if amountSpecifiedIsInput == aToB {
		return getNextSqrtPriceFromARoundUp(sqrtPrice, liquidity, amount, amountSpecifiedIsInput)
	}
	return getNextSqrtPriceFromBRoundDown(sqrtPrice, liquidity, amount, amountSpecifiedIsInput)
}

func getNextSqrtPriceFromARoundUp(sqrtPrice, liquidity, amount cosmath.Int, amountSpecifiedIsInput bool) cosmath.Int {
	if amount.IsZero() {
		return sqrtPrice
	}

	num := new(big.Int).Mul(liquidity.BigInt(), sqrtPrice.BigInt())
	num.Lsh(num, 64)
	shifted := new(big.Int).Lsh(liquidity.BigInt(), 64)
	pa := new(big.Int).Mul(sqrtPrice.BigInt(), amount.BigInt())

	den := new(big.Int)
	if amountSpecifiedIsInput {
		den.Add(shifted, pa)
	} else {
		den.Sub(shifted, pa)
	}
	return cosmath.NewIntFromBigInt(divRoundUp(num, den))
}

func getNextSqrtPriceFromBRoundDown(sqrtPrice, liquidity, amount cosmath.Int, amountSpecifiedIsInput bool) cosmath.Int {
	delta := new(big.Int).Lsh(amount.BigInt(), 64)
	delta.Quo(delta, liquidity.BigInt())
	if amountSpecifiedIsInput {
		return sqrtPrice.Add(cosmath.NewIntFromBigInt(delta))
	}
	delta.Add(delta, big.NewInt(1))
	return sqrtPrice.Sub(cosmath.NewIntFromBigInt(delta))
}

// SqrtPriceFromTickIndex converts a tick index to its Q64.64 sqrt price by
// binary decomposition of the tick magnitude over precomputed powers.
func SqrtPriceFromTickIndex(tick int) (cosmath.Int, error) {
	if tick < MinTickIndex || tick > MaxTickIndex {
		return cosmath.Int{}, fmt.Errorf("%w: tick index %d", pkg.ErrOutOfBounds, tick)
	}

	tickAbs := tick
	if tickAbs < 0 {
		tickAbs = -tickAbs
	}

	ratio := tickRatioOne
	if tickAbs&0x1 != 0 {
		ratio = tickRatioOdd
	}
	for _, m := range tickRatioMagic {
		if tickAbs&m.bit != 0 {
			ratio = mulShiftRight64(ratio, m.ratio)
		}
	}
	if tick > 0 {
		ratio = maxU128In.Quo(ratio)
	}
	return ratio, nil
}

// TickIndexFromSqrtPrice inverts SqrtPriceFromTickIndex, computing
// floor(log_sqrt(1.0001)(price)) via a fixed-point base-2 logarithm.
func TickIndexFromSqrtPrice(sqrtPriceX64 cosmath.Int) int {
	price := sqrtPriceX64.BigInt()
	msb := price.BitLen() - 1

	log2IntegerX32 := new(big.Int).Lsh(big.NewInt(int64(msb-64)), 32)

	r := new(big.Int).Set(price)
	if msb >= 64 {
		r.Rsh(r, uint(msb-63))
	} else {
		r.Lsh(r, uint(63-msb))
	}

	bit := new(big.Int).Lsh(big.NewInt(1), 63)
	fractionX64 := new(big.Int)
	for precision := 0; bit.Sign() > 0 && precision < logBitPrecision; precision++ {
		r.Mul(r, r)
		over := new(big.Int).Rsh(r, 127)
		r.Rsh(r, uint(63+over.Int64()))
		if over.Sign() != 0 {
			fractionX64.Add(fractionX64, bit)
		}
		bit.Rsh(bit, 1)
	}

	log2X32 := new(big.Int).Rsh(fractionX64, 32)
	log2X32.Add(log2X32, log2IntegerX32)
	logbX64 := new(big.Int).Mul(log2X32, log2BX32)

	tickLow := new(big.Int).Sub(logbX64, tickLowMargin)
	tickLow.Rsh(tickLow, 64)
	tickHigh := new(big.Int).Add(logbX64, tickHighMargin)
	tickHigh.Rsh(tickHigh, 64)

	low, high := int(tickLow.Int64()), int(tickHigh.Int64())
	if low == high {
		return low
	}
	derived, err := SqrtPriceFromTickIndex(high)
	if err == nil && derived.LTE(sqrtPriceX64) {
		return high
	}
	return low
}
