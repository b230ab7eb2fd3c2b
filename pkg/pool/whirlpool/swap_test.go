package whirlpool

import (
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
)

func newTestTickArray(startTick int) *TickArrayState {
	ta := &TickArrayState{StartTickIndex: int32(startTick)}
	for i := range ta.Ticks {
		ta.Ticks[i].LiquidityNet = cosmath.ZeroInt()
	}
	return ta
}

func testPool(liquidity int64, tickSpacing uint16) *WhirlpoolState {
	p, _ := SqrtPriceFromTickIndex(0)
	return &WhirlpoolState{
		TickSpacing:      tickSpacing,
		FeeRate:          3000, // 0.3%
		ProtocolFeeRate:  300,  // 3% of fees
		Liquidity:        uint128.FromBig(cosmath.NewInt(liquidity).BigInt()),
		SqrtPrice:        uint128.FromBig(p.BigInt()),
		TickCurrentIndex: 0,
	}
}

// downSequence covers ticks [-1408, 704) for spacing 8, the window an
// a-to-b swap from tick 0 traverses.
func downSequence(t *testing.T) (*TickArraySequence, []solana.PublicKey) {
	t.Helper()
	addrs := []solana.PublicKey{
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
	}
	arrays := []TickArrayData{
		{Address: addrs[0], Data: newTestTickArray(0)},
		{Address: addrs[1], Data: newTestTickArray(-704)},
		{Address: addrs[2], Data: newTestTickArray(-1408)},
	}
	// boundary tick with no net liquidity change
	arrays[0].Data.Ticks[0].Initialized = true
	seq, err := NewTickArraySequence(arrays, 8, true)
	require.NoError(t, err)
	return seq, addrs
}

func TestTickArrayIndexRoundTrip(t *testing.T) {
	for _, tick := range []int{0, 8, 704, -8, -704, -1409, 4400} {
		idx := TickArrayIndexFromTick(tick, 8)
		back := idx.ToTickIndex()
		// ToTickIndex floors to the containing initializable tick
		assert.LessOrEqual(t, back, tick, "tick %d", tick)
		assert.Greater(t, back+8, tick, "tick %d", tick)
	}
}

func TestSimulateSwapZeroAmount(t *testing.T) {
	seq, _ := downSequence(t)
	_, err := SimulateSwap(testPool(1_000_000_000, 8), seq, SwapParams{
		Amount:                 cosmath.ZeroInt(),
		SqrtPriceLimit:         MinSqrtPriceX64,
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	assert.ErrorIs(t, err, pkg.ErrZeroAmount)
}

func TestSimulateSwapLimitOutsideGlobalBounds(t *testing.T) {
	seq, _ := downSequence(t)
	_, err := SimulateSwap(testPool(1_000_000_000, 8), seq, SwapParams{
		Amount:                 cosmath.NewInt(1000),
		SqrtPriceLimit:         MinSqrtPriceX64.SubRaw(1),
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	assert.ErrorIs(t, err, pkg.ErrOutOfBounds)
}

func TestSimulateSwapLimitOnWrongSide(t *testing.T) {
	seq, _ := downSequence(t)
	_, err := SimulateSwap(testPool(1_000_000_000, 8), seq, SwapParams{
		Amount:                 cosmath.NewInt(1000),
		SqrtPriceLimit:         MaxSqrtPriceX64, // above current price on an a-to-b swap
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	assert.ErrorIs(t, err, pkg.ErrOutOfBounds)
}

func TestSimulateSwapSlippageViolation(t *testing.T) {
	seq, _ := downSequence(t)
	_, err := SimulateSwap(testPool(1_000_000_000, 8), seq, SwapParams{
		Amount:                 cosmath.NewInt(1_000_000),
		SqrtPriceLimit:         MinSqrtPriceX64,
		OtherAmountThreshold:   cosmath.NewInt(2_000_000), // impossible at price ~1
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	assert.ErrorIs(t, err, pkg.ErrSlippageViolation)
}

func TestSimulateSwapSingleStep(t *testing.T) {
	seq, _ := downSequence(t)
	amount := cosmath.NewInt(1_000_000)

	quote, err := SimulateSwap(testPool(1_000_000_000, 8), seq, SwapParams{
		Amount:                 amount,
		SqrtPriceLimit:         MinSqrtPriceX64,
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	require.NoError(t, err)

	// the whole input is consumed
	assert.True(t, quote.EstimatedAmountIn.Equal(amount), "in %s", quote.EstimatedAmountIn)

	// output stays below the fee-reduced input at price ~1 and above a loose
	// floor accounting for price impact at this liquidity
	assert.True(t, quote.EstimatedAmountOut.LT(cosmath.NewInt(997_001)), "out %s", quote.EstimatedAmountOut)
	assert.True(t, quote.EstimatedAmountOut.GT(cosmath.NewInt(990_000)), "out %s", quote.EstimatedAmountOut)

	// fee is amount * feeRate / FEE_RATE_MUL_VALUE plus rounding residue
	assert.True(t, quote.TotalFee.GTE(cosmath.NewInt(3000)), "fee %s", quote.TotalFee)
	assert.True(t, quote.TotalFee.LTE(cosmath.NewInt(3010)), "fee %s", quote.TotalFee)

	// protocol skim is rate/10000 of the fee, not zero
	assert.True(t, quote.ProtocolFee.IsPositive())
	assert.True(t, quote.ProtocolFee.LT(quote.TotalFee))

	assert.Len(t, quote.TickArrays, MaxSwapTickArrays)
}

func TestSimulateSwapTouchedArrayPadding(t *testing.T) {
	addr := solana.NewWallet().PublicKey()
	arrays := []TickArrayData{{Address: addr, Data: newTestTickArray(0)}}
	arrays[0].Data.Ticks[1].Initialized = true // tick 8
	seq, err := NewTickArraySequence(arrays, 8, false)
	require.NoError(t, err)

	quote, err := SimulateSwap(testPool(1_000_000_000_000, 8), seq, SwapParams{
		Amount:                 cosmath.NewInt(1000),
		SqrtPriceLimit:         MaxSqrtPriceX64,
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   false,
	})
	require.NoError(t, err)

	// one array touched, padded to three entries
	require.Len(t, quote.TickArrays, MaxSwapTickArrays)
	assert.Equal(t, addr, quote.TickArrays[0])
	assert.Equal(t, addr, quote.TickArrays[1])
	assert.Equal(t, addr, quote.TickArrays[2])
}

func TestSimulateSwapExhaustsTickArrays(t *testing.T) {
	seq, _ := downSequence(t)

	// tiny liquidity: the trade pushes the price past all three arrays
	_, err := SimulateSwap(testPool(1000, 8), seq, SwapParams{
		Amount:                 cosmath.NewInt(1_000_000_000),
		SqrtPriceLimit:         MinSqrtPriceX64,
		OtherAmountThreshold:   cosmath.ZeroInt(),
		AmountSpecifiedIsInput: true,
		AToB:                   true,
	})
	assert.ErrorIs(t, err, pkg.ErrOutOfBounds)
}

func TestCrossingTickAdjustsLiquidity(t *testing.T) {
	seq, _ := downSequence(t)

	// crossing tick 0 downward with liquidityNet = 0 keeps liquidity intact
	quote, err := ComputeSwap(testPool(1_000_000_000, 8), seq,
		cosmath.NewInt(10_000), MinSqrtPriceX64, true, true)
	require.NoError(t, err)
	assert.True(t, quote.EndLiquidity.Equal(cosmath.NewInt(1_000_000_000)))
	assert.True(t, quote.EndTickIndex < 0)
}
