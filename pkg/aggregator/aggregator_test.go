package aggregator

import (
	"context"
	"fmt"
	"testing"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/pool/saber"
	"github.com/dexcore-labs/solswap/pkg/sol"
)

type mapFetcher map[solana.PublicKey][]byte

func (m mapFetcher) FetchAccount(_ context.Context, address solana.PublicKey) ([]byte, error) {
	data, ok := m[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pkg.ErrAccountNotFound, address)
	}
	return data, nil
}

// fakeTokens records lifecycle calls and hands out marker instructions so
// tests can count what the aggregator appended.
type fakeTokens struct {
	createPerMint map[solana.PublicKey]int
	closeCalls    int
	transferCalls int
	lastTransfer  struct {
		source, destination solana.PublicKey
		amount              uint64
	}
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{createPerMint: make(map[solana.PublicKey]int)}
}

func marker(tag byte) solana.Instruction {
	return solana.NewInstruction(solana.TokenProgramID, solana.AccountMetaSlice{}, []byte{tag})
}

func (f *fakeTokens) ResolveOrCreate(_ context.Context, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	f.createPerMint[mint]++
	return ata, []solana.Instruction{marker(1)}, nil
}

func (f *fakeTokens) ResolveOrCreateFor(ctx context.Context, _, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error) {
	return f.ResolveOrCreate(ctx, owner, mint)
}

func (f *fakeTokens) CloseAccount(_, _ solana.PublicKey) (solana.Instruction, error) {
	f.closeCalls++
	return marker(2), nil
}

func (f *fakeTokens) Transfer(_, source, destination solana.PublicKey, amount uint64) (solana.Instruction, error) {
	f.transferCalls++
	f.lastTransfer.source = source
	f.lastTransfer.destination = destination
	f.lastTransfer.amount = amount
	return marker(3), nil
}

func saberFixture(mintA, mintB solana.PublicKey) (solana.PublicKey, *saber.StableSwapState) {
	pool := solana.NewWallet().PublicKey()
	state := &saber.StableSwapState{
		IsInitialized:       true,
		Nonce:               252,
		InitialAmpFactor:    100,
		TargetAmpFactor:     100,
		TokenAccountA:       solana.NewWallet().PublicKey(),
		TokenAccountB:       solana.NewWallet().PublicKey(),
		MintA:               mintA,
		MintB:               mintB,
		AdminFeeAccountA:    solana.NewWallet().PublicKey(),
		AdminFeeAccountB:    solana.NewWallet().PublicKey(),
		TradeFeeNumerator:   4,
		TradeFeeDenominator: 10000,
	}
	return pool, state
}

func saberHop(pool solana.PublicKey, state *saber.StableSwapState, sourceMint, destMint solana.PublicKey) pkg.SwapHop {
	poolSource, poolDest := state.TokenAccountA, state.TokenAccountB
	if sourceMint.Equals(state.MintB) {
		poolSource, poolDest = state.TokenAccountB, state.TokenAccountA
	}
	return pkg.SwapHop{
		Protocol:        pkg.ProtocolSaber,
		PoolAddress:     pool,
		PoolAuthority:   solana.NewWallet().PublicKey(),
		PoolSource:      poolSource,
		PoolDestination: poolDest,
		SourceMint:      sourceMint,
		DestinationMint: destMint,
		AmountIn:        math.NewInt(1_000_000),
		AmountOutMin:    math.NewInt(990_000),
	}
}

func TestBuildSwapTransactionSingleHop(t *testing.T) {
	usdc := solana.NewWallet().PublicKey()
	pool, state := saberFixture(sol.WSOL, usdc)
	fetcher := mapFetcher{pool: state.Encode()}
	tokens := newFakeTokens()
	user := solana.NewWallet().PublicKey()

	agg := New(fetcher, tokens, nil)
	insts, err := agg.BuildSwapTransaction(context.Background(),
		[]pkg.SwapHop{saberHop(pool, state, sol.WSOL, usdc)}, user, Options{})
	require.NoError(t, err)

	// 2 creates + swap + wrapped SOL close
	require.Len(t, insts, 4)
	assert.Equal(t, 1, tokens.closeCalls)
	assert.Equal(t, 0, tokens.transferCalls)

	// swap precedes the close
	data, err := insts[3].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, data)
}

func TestBuildSwapTransactionWSOLCloseDedup(t *testing.T) {
	usdc := solana.NewWallet().PublicKey()
	poolAB, stateAB := saberFixture(sol.WSOL, usdc)
	poolBA, stateBA := saberFixture(usdc, sol.WSOL)
	fetcher := mapFetcher{poolAB: stateAB.Encode(), poolBA: stateBA.Encode()}
	tokens := newFakeTokens()
	user := solana.NewWallet().PublicKey()

	hops := []pkg.SwapHop{
		saberHop(poolAB, stateAB, sol.WSOL, usdc),
		saberHop(poolBA, stateBA, usdc, sol.WSOL),
	}
	agg := New(fetcher, tokens, nil)
	insts, err := agg.BuildSwapTransaction(context.Background(), hops, user, Options{})
	require.NoError(t, err)

	// both hops touch wrapped SOL; exactly one close is appended
	assert.Equal(t, 1, tokens.closeCalls)

	closes := 0
	for _, inst := range insts {
		data, err := inst.Data()
		require.NoError(t, err)
		if len(data) == 1 && data[0] == 2 {
			closes++
		}
	}
	assert.Equal(t, 1, closes)
}

func TestBuildSwapTransactionATACreationDedup(t *testing.T) {
	usdc := solana.NewWallet().PublicKey()
	poolAB, stateAB := saberFixture(sol.WSOL, usdc)
	poolBA, stateBA := saberFixture(usdc, sol.WSOL)
	fetcher := mapFetcher{poolAB: stateAB.Encode(), poolBA: stateBA.Encode()}
	tokens := newFakeTokens()

	hops := []pkg.SwapHop{
		saberHop(poolAB, stateAB, sol.WSOL, usdc),
		saberHop(poolBA, stateBA, usdc, sol.WSOL),
	}
	agg := New(fetcher, tokens, nil)
	insts, err := agg.BuildSwapTransaction(context.Background(), hops, solana.NewWallet().PublicKey(), Options{})
	require.NoError(t, err)

	// 4 mint references collapse to 2 scheduled creations
	creates := 0
	for _, inst := range insts {
		data, err := inst.Data()
		require.NoError(t, err)
		if len(data) == 1 && data[0] == 1 {
			creates++
		}
	}
	assert.Equal(t, 2, creates)
}

func TestBuildSwapTransactionFeeInjection(t *testing.T) {
	usdc := solana.NewWallet().PublicKey()
	pool, state := saberFixture(sol.WSOL, usdc)
	fetcher := mapFetcher{pool: state.Encode()}
	tokens := newFakeTokens()
	user := solana.NewWallet().PublicKey()

	agg := New(fetcher, tokens, nil)
	insts, err := agg.BuildSwapTransaction(context.Background(),
		[]pkg.SwapHop{saberHop(pool, state, sol.WSOL, usdc)}, user,
		Options{ChargeFee: true, FeeAmount: 5000})
	require.NoError(t, err)

	require.Equal(t, 1, tokens.transferCalls)
	assert.Equal(t, uint64(5000), tokens.lastTransfer.amount)

	userDest, _, err := solana.FindAssociatedTokenAddress(user, usdc)
	require.NoError(t, err)
	treasuryATA, _, err := solana.FindAssociatedTokenAddress(sol.FeeTreasury, usdc)
	require.NoError(t, err)
	assert.Equal(t, userDest, tokens.lastTransfer.source)
	assert.Equal(t, treasuryATA, tokens.lastTransfer.destination)

	// the fee transfer is the last instruction
	data, err := insts[len(insts)-1].Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, data)
}

func TestBuildSwapTransactionValidation(t *testing.T) {
	agg := New(mapFetcher{}, newFakeTokens(), nil)

	_, err := agg.BuildSwapTransaction(context.Background(), nil, solana.NewWallet().PublicKey(), Options{})
	assert.Error(t, err)

	hop := pkg.SwapHop{Protocol: pkg.Protocol(200)}
	_, err = agg.BuildSwapTransaction(context.Background(), []pkg.SwapHop{hop}, solana.NewWallet().PublicKey(), Options{})
	assert.ErrorIs(t, err, pkg.ErrUnsupportedProtocol)
}

func TestBuildSwapTransactionMissingPoolAborts(t *testing.T) {
	usdc := solana.NewWallet().PublicKey()
	pool, state := saberFixture(sol.WSOL, usdc)

	agg := New(mapFetcher{}, newFakeTokens(), nil) // fetcher has no accounts
	_, err := agg.BuildSwapTransaction(context.Background(),
		[]pkg.SwapHop{saberHop(pool, state, sol.WSOL, usdc)},
		solana.NewWallet().PublicKey(), Options{})
	assert.ErrorIs(t, err, pkg.ErrAccountNotFound)
}

func TestBuilderForCoversEveryProtocol(t *testing.T) {
	for p := pkg.Protocol(0); p.Valid(); p++ {
		b, err := BuilderFor(p)
		require.NoError(t, err, "protocol %s", p)
		assert.Equal(t, p, b.Protocol())
	}

	_, err := BuilderFor(pkg.Protocol(200))
	assert.ErrorIs(t, err, pkg.ErrUnsupportedProtocol)
}
