package whirlpool

import (
	"math/big"
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexcore-labs/solswap/pkg"
)

func q64Int(t *testing.T, whole int64) cosmath.Int {
	t.Helper()
	return cosmath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(whole), 64))
}

func TestSqrtPriceFromTickZero(t *testing.T) {
	p, err := SqrtPriceFromTickIndex(0)
	require.NoError(t, err)

	// tick 0 is price 1.0, exactly 2^64 in Q64.64
	assert.True(t, p.Equal(q64Int(t, 1)), "got %s", p)
}

func TestSqrtPriceFromTickBounds(t *testing.T) {
	_, err := SqrtPriceFromTickIndex(MaxTickIndex + 1)
	assert.ErrorIs(t, err, pkg.ErrOutOfBounds)
	_, err = SqrtPriceFromTickIndex(MinTickIndex - 1)
	assert.ErrorIs(t, err, pkg.ErrOutOfBounds)

	lo, err := SqrtPriceFromTickIndex(MinTickIndex)
	require.NoError(t, err)
	hi, err := SqrtPriceFromTickIndex(MaxTickIndex)
	require.NoError(t, err)
	assert.True(t, lo.LT(hi))
}

func TestTickSqrtPriceRoundTrip(t *testing.T) {
	for _, tick := range []int{0, 1, -1, 8, -8, 100, -100, 4437, -4437, 39000, -39000, 443635, -443635} {
		p, err := SqrtPriceFromTickIndex(tick)
		require.NoError(t, err)
		assert.Equal(t, tick, TickIndexFromSqrtPrice(p), "tick %d via %s", tick, p)
	}
}

func TestSqrtPriceMonotonicInTick(t *testing.T) {
	prev, err := SqrtPriceFromTickIndex(-50)
	require.NoError(t, err)
	for tick := -49; tick <= 50; tick++ {
		p, err := SqrtPriceFromTickIndex(tick)
		require.NoError(t, err)
		assert.True(t, p.GT(prev), "tick %d", tick)
		prev = p
	}
}

func TestAmountDeltaB(t *testing.T) {
	liquidity := cosmath.NewInt(1000)
	pl, pu := q64Int(t, 1), q64Int(t, 2)

	// L * (pu - pl) >> 64 with whole-number prices has no remainder
	assert.Equal(t, int64(1000), GetAmountDeltaB(pl, pu, liquidity, false).Int64())
	assert.Equal(t, int64(1000), GetAmountDeltaB(pu, pl, liquidity, true).Int64())
}

func TestAmountDeltaBRoundsUpOnRemainder(t *testing.T) {
	liquidity := cosmath.NewInt(1000)
	pl := q64Int(t, 1)
	pu := pl.AddRaw(1) // one Q64.64 ulp above price 1

	assert.Equal(t, int64(0), GetAmountDeltaB(pl, pu, liquidity, false).Int64())
	assert.Equal(t, int64(1), GetAmountDeltaB(pl, pu, liquidity, true).Int64())
}

func TestAmountDeltaA(t *testing.T) {
	liquidity := cosmath.NewInt(1000)
	pl, pu := q64Int(t, 1), q64Int(t, 2)

	// L * (pu-pl) / (pl*pu) = 1000 * 1/2
	assert.Equal(t, int64(500), GetAmountDeltaA(pl, pu, liquidity, false).Int64())
	assert.Equal(t, int64(500), GetAmountDeltaA(pu, pl, liquidity, true).Int64())
}

func TestNextSqrtPriceFromTokenB(t *testing.T) {
	price := q64Int(t, 1)
	liquidity := cosmath.NewInt(1000)
	amount := cosmath.NewInt(10)

	// b-to-a swap with input B pushes the price up by amount<<64/L
	up := GetNextSqrtPrice(price, liquidity, amount, true, false)
	wantDelta := cosmath.NewIntFromBigInt(new(big.Int).Quo(new(big.Int).Lsh(big.NewInt(10), 64), big.NewInt(1000)))
	assert.True(t, up.Equal(price.Add(wantDelta)), "got %s", up)

	// a-to-b swap with output B pulls it down, rounding against the user
	down := GetNextSqrtPrice(price, liquidity, amount, false, true)
	assert.True(t, down.Equal(price.Sub(wantDelta).SubRaw(1)), "got %s", down)
}

func TestNextSqrtPriceFromTokenAZeroAmount(t *testing.T) {
	price := q64Int(t, 3)
	assert.True(t, GetNextSqrtPrice(price, cosmath.NewInt(500), cosmath.ZeroInt(), true, true).Equal(price))
}
