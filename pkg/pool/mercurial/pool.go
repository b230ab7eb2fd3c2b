// Package mercurial supports the Mercurial multi-token StableSwap program.
package mercurial

import (
	"fmt"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
	"github.com/dexcore-labs/solswap/pkg/stable"
)

// SwapState is the Mercurial pool account. TokenAccounts has MaxNCoins fixed
// slots; pools with fewer tokens leave the tail slots zeroed.
type SwapState struct {
	Version                  uint8
	IsInitialized            bool
	Nonce                    uint8
	AmplificationCoefficient uint64
	FeeNumerator             uint64
	AdminFeeNumerator        uint64
	TokenAccountsLength      uint32
	PrecisionFactor          uint64
	PrecisionMultipliers     [MaxNCoins]uint64
	TokenAccounts            [MaxNCoins]solana.PublicKey
	PoolMint                 solana.PublicKey
	AdminTokenMint           solana.PublicKey
	AdminSwapEnabled         bool
	AdminAddLiquidityEnabled bool
}

func (s *SwapState) Decode(data []byte) error {
	if len(data) < SwapStateSize {
		return fmt.Errorf("%w: mercurial pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), SwapStateSize)
	}
	dec := layout.NewDecoder(data)
	s.Version = dec.ReadUint8()
	s.IsInitialized = dec.ReadBool()
	s.Nonce = dec.ReadUint8()
	s.AmplificationCoefficient = dec.ReadUint64()
	s.FeeNumerator = dec.ReadUint64()
	s.AdminFeeNumerator = dec.ReadUint64()
	s.TokenAccountsLength = dec.ReadUint32()
	s.PrecisionFactor = dec.ReadUint64()
	for i := 0; i < MaxNCoins; i++ {
		s.PrecisionMultipliers[i] = dec.ReadUint64()
	}
	for i := 0; i < MaxNCoins; i++ {
		s.TokenAccounts[i] = dec.ReadPublicKey()
	}
	s.PoolMint = dec.ReadPublicKey()
	s.AdminTokenMint = dec.ReadPublicKey()
	s.AdminSwapEnabled = dec.ReadBool()
	s.AdminAddLiquidityEnabled = dec.ReadBool()
	return dec.Err()
}

func (s *SwapState) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteUint8(s.Version)
	enc.WriteBool(s.IsInitialized)
	enc.WriteUint8(s.Nonce)
	enc.WriteUint64(s.AmplificationCoefficient)
	enc.WriteUint64(s.FeeNumerator)
	enc.WriteUint64(s.AdminFeeNumerator)
	enc.WriteUint32(s.TokenAccountsLength)
	enc.WriteUint64(s.PrecisionFactor)
	for i := 0; i < MaxNCoins; i++ {
		enc.WriteUint64(s.PrecisionMultipliers[i])
	}
	for i := 0; i < MaxNCoins; i++ {
		enc.WritePublicKey(s.TokenAccounts[i])
	}
	enc.WritePublicKey(s.PoolMint)
	enc.WritePublicKey(s.AdminTokenMint)
	enc.WriteBool(s.AdminSwapEnabled)
	enc.WriteBool(s.AdminAddLiquidityEnabled)
	return enc.Bytes()
}

// ActiveTokenAccounts returns the populated vault slots in order.
func (s *SwapState) ActiveTokenAccounts() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, MaxNCoins)
	for _, acc := range s.TokenAccounts {
		if !acc.IsZero() {
			out = append(out, acc)
		}
	}
	return out
}

// Quote computes the output amount for amountIn over the normalized vault
// balances. Balances are scaled by the per-token precision multipliers before
// solving the invariant.
func (s *SwapState) Quote(amountIn cosmath.Int, balances []cosmath.Int, fromIndex, toIndex int) (cosmath.Int, error) {
	if amountIn.IsZero() {
		return cosmath.ZeroInt(), nil
	}
	if fromIndex >= len(balances) || toIndex >= len(balances) {
		return cosmath.ZeroInt(), fmt.Errorf("mercurial quote: index outside %d balances", len(balances))
	}

	xp := make([]cosmath.Int, len(balances))
	for i, b := range balances {
		xp[i] = b.Mul(cosmath.NewIntFromUint64(s.PrecisionMultipliers[i]))
	}
	amp := cosmath.NewIntFromUint64(s.AmplificationCoefficient)
	d, err := stable.ComputeD(amp, xp)
	if err != nil {
		return cosmath.ZeroInt(), fmt.Errorf("mercurial quote: %w", err)
	}

	post := make([]cosmath.Int, len(xp))
	copy(post, xp)
	post[fromIndex] = post[fromIndex].Add(amountIn.Mul(cosmath.NewIntFromUint64(s.PrecisionMultipliers[fromIndex])))
	y, err := stable.ComputeY(amp, post, toIndex, d)
	if err != nil {
		return cosmath.ZeroInt(), fmt.Errorf("mercurial quote: %w", err)
	}

	dy := xp[toIndex].Sub(y)
	return dy.Quo(cosmath.NewIntFromUint64(s.PrecisionMultipliers[toIndex])), nil
}
