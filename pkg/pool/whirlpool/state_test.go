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

func TestWhirlpoolStateRoundTrip(t *testing.T) {
	src := &WhirlpoolState{
		WhirlpoolsConfig:           solana.NewWallet().PublicKey(),
		WhirlpoolBump:              254,
		TickSpacing:                64,
		TickSpacingSeed:            [2]uint8{64, 0},
		FeeRate:                    3000,
		ProtocolFeeRate:            300,
		Liquidity:                  uint128.From64(918273645),
		SqrtPrice:                  uint128.FromBig(q64Int(t, 1).BigInt()),
		TickCurrentIndex:           -12345,
		ProtocolFeeOwedA:           17,
		ProtocolFeeOwedB:           23,
		TokenMintA:                 solana.NewWallet().PublicKey(),
		TokenVaultA:                solana.NewWallet().PublicKey(),
		FeeGrowthGlobalA:           uint128.From64(111),
		TokenMintB:                 solana.NewWallet().PublicKey(),
		TokenVaultB:                solana.NewWallet().PublicKey(),
		FeeGrowthGlobalB:           uint128.From64(222),
		RewardLastUpdatedTimestamp: 1700000000,
	}
	for i := range src.RewardInfos {
		src.RewardInfos[i].Mint = solana.NewWallet().PublicKey()
		src.RewardInfos[i].Vault = solana.NewWallet().PublicKey()
		src.RewardInfos[i].Authority = solana.NewWallet().PublicKey()
	}

	raw := src.Encode()
	require.Len(t, raw, WhirlpoolAccountSize)

	got, err := DecodeWhirlpoolState(raw)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestDecodeWhirlpoolStateWrongSize(t *testing.T) {
	_, err := DecodeWhirlpoolState(make([]byte, WhirlpoolAccountSize-1))
	assert.ErrorIs(t, err, pkg.ErrMalformedAccount)
}

func TestTickArrayStateRoundTrip(t *testing.T) {
	src := newTestTickArray(-704)
	src.Whirlpool = solana.NewWallet().PublicKey()
	src.Ticks[3].Initialized = true
	src.Ticks[3].LiquidityNet = cosmath.NewInt(-987654321)
	src.Ticks[3].LiquidityGross = uint128.From64(987654321)
	src.Ticks[87].Initialized = true
	src.Ticks[87].LiquidityNet = cosmath.NewInt(42)

	raw := src.Encode()
	require.Len(t, raw, TickArrayAccountSize)

	got, err := DecodeTickArrayState(raw)
	require.NoError(t, err)
	assert.Equal(t, int32(-704), got.StartTickIndex)
	assert.Equal(t, src.Whirlpool, got.Whirlpool)
	assert.True(t, got.Ticks[3].Initialized)
	assert.True(t, got.Ticks[3].LiquidityNet.Equal(cosmath.NewInt(-987654321)))
	assert.True(t, got.Ticks[87].LiquidityNet.Equal(cosmath.NewInt(42)))
	assert.False(t, got.Ticks[0].Initialized)
}

func TestDecodeTickArrayBadDiscriminator(t *testing.T) {
	raw := newTestTickArray(0).Encode()
	raw[0] ^= 0xff
	_, err := DecodeTickArrayState(raw)
	assert.ErrorIs(t, err, pkg.ErrMalformedAccount)
}
