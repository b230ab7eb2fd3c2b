// Package stable implements the StableSwap invariant solver shared by the
// saber, mercurial and cropper-style pools. All arithmetic is integer over
// cosmossdk math.Int; convergence follows the on-chain programs (Newton
// iteration, at most 255 rounds, tolerance of one base unit).
package stable

import (
	"fmt"

	"cosmossdk.io/math"
)

const maxIterations = 255

// ComputeD solves the StableSwap invariant D for the given amplification
// coefficient and pool balances. Returns zero when the pool is empty.
func ComputeD(amp math.Int, balances []math.Int) (math.Int, error) {
	n := int64(len(balances))
	if n < 2 {
		return math.ZeroInt(), fmt.Errorf("stable: need at least two balances, got %d", n)
	}
	nCoins := math.NewInt(n)
	ann := amp.Mul(nCoins)

	s := math.ZeroInt()
	for _, b := range balances {
		s = s.Add(b)
	}
	if s.IsZero() {
		return math.ZeroInt(), nil
	}

	d := s
	prev := math.ZeroInt()
	for i := 0; i < maxIterations; i++ {
		dp := d
		for _, b := range balances {
			den := b.Mul(nCoins)
			if den.IsZero() {
				return math.ZeroInt(), fmt.Errorf("stable: zero balance in non-empty pool")
			}
			dp = dp.Mul(d).Quo(den)
		}
		prev = d
		num := ann.Mul(s).Add(dp.Mul(nCoins)).Mul(d)
		den := ann.Sub(math.OneInt()).Mul(d).Add(dp.Mul(nCoins.Add(math.OneInt())))
		d = num.Quo(den)
		if d.Sub(prev).Abs().LTE(math.OneInt()) {
			return d, nil
		}
	}
	return d, nil
}

// ComputeY solves the invariant for the balance at outIndex, holding every
// other balance fixed. Callers substitute the post-deposit input balance into
// balances before calling; balances[outIndex] itself is ignored.
func ComputeY(amp math.Int, balances []math.Int, outIndex int, d math.Int) (math.Int, error) {
	n := int64(len(balances))
	if outIndex < 0 || int64(outIndex) >= n {
		return math.ZeroInt(), fmt.Errorf("stable: out index %d outside %d balances", outIndex, n)
	}
	nCoins := math.NewInt(n)
	ann := amp.Mul(nCoins)

	c := d
	s := math.ZeroInt()
	for j, b := range balances {
		if j == outIndex {
			continue
		}
		if b.IsZero() {
			return math.ZeroInt(), fmt.Errorf("stable: zero balance at index %d", j)
		}
		s = s.Add(b)
		c = c.Mul(d).Quo(b.Mul(nCoins))
	}
	c = c.Mul(d).Quo(ann.Mul(nCoins))
	b := s.Add(d.Quo(ann))

	y := d
	for i := 0; i < maxIterations; i++ {
		prev := y
		num := y.Mul(y).Add(c)
		den := y.Add(y).Add(b).Sub(d)
		y = num.Quo(den)
		if y.Sub(prev).Abs().LTE(math.OneInt()) {
			return y, nil
		}
	}
	return y, nil
}
