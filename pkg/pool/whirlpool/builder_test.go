package whirlpool

import (
	"context"
	"fmt"
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

type mapFetcher map[solana.PublicKey][]byte

func (m mapFetcher) FetchAccount(_ context.Context, address solana.PublicKey) ([]byte, error) {
	data, ok := m[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pkg.ErrAccountNotFound, address)
	}
	return data, nil
}

func TestStartTickIndex(t *testing.T) {
	assert.Equal(t, 0, StartTickIndex(0, 8, 0))
	assert.Equal(t, 0, StartTickIndex(703, 8, 0))
	assert.Equal(t, -704, StartTickIndex(-1, 8, 0))
	assert.Equal(t, -704, StartTickIndex(0, 8, -1))
	assert.Equal(t, 704, StartTickIndex(0, 8, 1))
	assert.Equal(t, -5632, StartTickIndex(-5000, 64, 0))
}

func TestBuildSwapInstruction(t *testing.T) {
	pool := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	userSource := solana.NewWallet().PublicKey()
	userDestination := solana.NewWallet().PublicKey()

	p, err := SqrtPriceFromTickIndex(0)
	require.NoError(t, err)
	state := &WhirlpoolState{
		TickSpacing:      8,
		TickSpacingSeed:  [2]uint8{8, 0},
		FeeRate:          3000,
		ProtocolFeeRate:  300,
		Liquidity:        uint128.From64(1_000_000_000),
		SqrtPrice:        uint128.FromBig(p.BigInt()),
		TickCurrentIndex: 0,
		TokenMintA:       solana.NewWallet().PublicKey(),
		TokenVaultA:      solana.NewWallet().PublicKey(),
		TokenMintB:       solana.NewWallet().PublicKey(),
		TokenVaultB:      solana.NewWallet().PublicKey(),
	}

	fetcher := mapFetcher{pool: state.Encode()}
	for _, start := range []int{0, -704, -1408} {
		addr, err := TickArrayAddress(pool, start)
		require.NoError(t, err)
		ta := newTestTickArray(start)
		ta.Whirlpool = pool
		if start == 0 {
			ta.Ticks[0].Initialized = true
		}
		fetcher[addr] = ta.Encode()
	}

	hop := pkg.SwapHop{
		Protocol:        pkg.ProtocolWhirlpool,
		PoolAddress:     pool,
		PoolAuthority:   pool,
		PoolSource:      state.TokenVaultA,
		PoolDestination: state.TokenVaultB,
		SourceMint:      state.TokenMintA,
		DestinationMint: state.TokenMintB,
		AmountIn:        cosmath.NewInt(1_000_000),
		AmountOutMin:    cosmath.NewInt(900_000),
	}

	inst, err := NewBuilder().BuildSwapInstruction(context.Background(), fetcher, hop, user, userSource, userDestination)
	require.NoError(t, err)

	assert.Equal(t, WHIRLPOOL_PROGRAM_ID, inst.ProgramID())

	accounts := inst.Accounts()
	require.Len(t, accounts, 11)
	assert.Equal(t, solana.TokenProgramID, accounts[0].PublicKey)
	assert.Equal(t, user, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsSigner)
	assert.Equal(t, pool, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsWritable)
	assert.Equal(t, userSource, accounts[3].PublicKey)
	assert.Equal(t, state.TokenVaultA, accounts[4].PublicKey)
	assert.Equal(t, userDestination, accounts[5].PublicKey)
	assert.Equal(t, state.TokenVaultB, accounts[6].PublicKey)

	oracle, err := OracleAddress(pool)
	require.NoError(t, err)
	assert.Equal(t, oracle, accounts[10].PublicKey)

	data, err := inst.Data()
	require.NoError(t, err)
	// discriminator + amount + threshold + u128 limit + 2 bool flags
	require.Len(t, data, 8+8+8+16+1+1)
	assert.Equal(t, layout.InstructionDiscriminator("swap"), data[:8])
	assert.Equal(t, byte(1), data[40], "amount specified is input")
	assert.Equal(t, byte(1), data[41], "a to b")
}

func TestBuildSwapInstructionUnknownMint(t *testing.T) {
	pool := solana.NewWallet().PublicKey()
	state := &WhirlpoolState{
		TokenMintA: solana.NewWallet().PublicKey(),
		TokenMintB: solana.NewWallet().PublicKey(),
	}
	fetcher := mapFetcher{pool: state.Encode()}

	hop := pkg.SwapHop{
		Protocol:        pkg.ProtocolWhirlpool,
		PoolAddress:     pool,
		PoolAuthority:   pool,
		PoolSource:      solana.NewWallet().PublicKey(),
		PoolDestination: solana.NewWallet().PublicKey(),
		SourceMint:      solana.NewWallet().PublicKey(), // traded by neither side
		DestinationMint: solana.NewWallet().PublicKey(),
		AmountIn:        cosmath.NewInt(1),
		AmountOutMin:    cosmath.ZeroInt(),
	}
	_, err := NewBuilder().BuildSwapInstruction(context.Background(), fetcher, hop,
		solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	assert.Error(t, err)
}
