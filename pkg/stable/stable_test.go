package stable

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDBalancedPool(t *testing.T) {
	amp := math.NewInt(100)
	balances := []math.Int{math.NewInt(1_000_000), math.NewInt(1_000_000)}

	d, err := ComputeD(amp, balances)
	require.NoError(t, err)

	// a perfectly balanced pool has D = sum of balances
	assert.True(t, d.Sub(math.NewInt(2_000_000)).Abs().LTE(math.OneInt()),
		"D = %s", d)
}

func TestComputeDEmptyPool(t *testing.T) {
	d, err := ComputeD(math.NewInt(100), []math.Int{math.ZeroInt(), math.ZeroInt()})
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestComputeDSkewedPoolBounds(t *testing.T) {
	amp := math.NewInt(85)
	balances := []math.Int{math.NewInt(4_000_000), math.NewInt(1_000_000)}

	d, err := ComputeD(amp, balances)
	require.NoError(t, err)

	// D lies between the constant-product and constant-sum extremes
	sum := math.NewInt(5_000_000)
	geo2 := math.NewInt(4_000_000) // 2*sqrt(xy)
	assert.True(t, d.GT(geo2), "D = %s", d)
	assert.True(t, d.LTE(sum), "D = %s", d)
}

func TestComputeYInvertsComputeD(t *testing.T) {
	amp := math.NewInt(100)
	balances := []math.Int{math.NewInt(3_000_000), math.NewInt(2_500_000)}

	d, err := ComputeD(amp, balances)
	require.NoError(t, err)

	// solving for either balance with the other fixed must recover it
	y, err := ComputeY(amp, balances, 1, d)
	require.NoError(t, err)
	assert.True(t, y.Sub(balances[1]).Abs().LTE(math.NewInt(2)), "y = %s", y)
}

func TestComputeYSwapMovesBalance(t *testing.T) {
	amp := math.NewInt(100)
	balances := []math.Int{math.NewInt(1_000_000), math.NewInt(1_000_000)}

	d, err := ComputeD(amp, balances)
	require.NoError(t, err)

	// deposit 100k into token 0 and solve for token 1
	in := math.NewInt(100_000)
	post := []math.Int{balances[0].Add(in), balances[1]}
	y, err := ComputeY(amp, post, 1, d)
	require.NoError(t, err)

	out := balances[1].Sub(y)
	assert.True(t, out.IsPositive())
	assert.True(t, out.LT(in), "stableswap output %s must not exceed input", out)
	// near the balanced point the curve is close to 1:1
	assert.True(t, out.GT(math.NewInt(99_000)), "out = %s", out)
}

func TestComputeYFourCoins(t *testing.T) {
	amp := math.NewInt(60)
	balances := []math.Int{
		math.NewInt(2_000_000),
		math.NewInt(2_000_000),
		math.NewInt(2_000_000),
		math.NewInt(2_000_000),
	}
	d, err := ComputeD(amp, balances)
	require.NoError(t, err)

	post := make([]math.Int, len(balances))
	copy(post, balances)
	post[0] = post[0].Add(math.NewInt(50_000))
	y, err := ComputeY(amp, post, 3, d)
	require.NoError(t, err)

	out := balances[3].Sub(y)
	assert.True(t, out.IsPositive())
	assert.True(t, out.LT(math.NewInt(50_000)))
}

func TestComputeYBadIndex(t *testing.T) {
	_, err := ComputeY(math.NewInt(100), []math.Int{math.NewInt(1), math.NewInt(1)}, 2, math.NewInt(2))
	require.Error(t, err)
}
