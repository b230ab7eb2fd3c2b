package whirlpool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// StartTickIndex returns the start tick of the array that holds tickIndex,
// shifted by offset whole arrays.
func StartTickIndex(tickIndex int, tickSpacing int, offset int) int {
	ticksPerArray := tickSpacing * TickArraySize
	return (floorDiv(tickIndex, ticksPerArray) + offset) * ticksPerArray
}

// TickArrayAddress derives the PDA of the tick array starting at startTick.
func TickArrayAddress(pool solana.PublicKey, startTick int) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(TickArraySeed), pool.Bytes(), []byte(strconv.Itoa(startTick))},
		WHIRLPOOL_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: whirlpool tick array: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return addr, nil
}

// OracleAddress derives the oracle PDA of a whirlpool.
func OracleAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(OracleSeed), pool.Bytes()},
		WHIRLPOOL_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: whirlpool oracle: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return addr, nil
}

// Builder assembles the Whirlpool swap instruction for one route hop. It
// simulates the swap against fetched tick arrays first so the instruction
// carries exactly the arrays the program will traverse.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolWhirlpool }

func (b *Builder) BuildSwapInstruction(
	ctx context.Context,
	fetcher pkg.AccountFetcher,
	hop pkg.SwapHop,
	userAuthority solana.PublicKey,
	userSource solana.PublicKey,
	userDestination solana.PublicKey,
) (solana.Instruction, error) {
	raw, err := fetcher.FetchAccount(ctx, hop.PoolAddress)
	if err != nil {
		return nil, fmt.Errorf("fetch whirlpool %s: %w", hop.PoolAddress, err)
	}
	state, err := DecodeWhirlpoolState(raw)
	if err != nil {
		return nil, fmt.Errorf("decode whirlpool %s: %w", hop.PoolAddress, err)
	}

	var aToB bool
	switch {
	case state.TokenMintA.Equals(hop.SourceMint):
		aToB = true
	case state.TokenMintB.Equals(hop.SourceMint):
		aToB = false
	default:
		return nil, fmt.Errorf("whirlpool %s does not trade mint %s", hop.PoolAddress, hop.SourceMint)
	}

	tickArrays, err := fetchTickArraySequence(ctx, fetcher, hop.PoolAddress, state, aToB)
	if err != nil {
		return nil, err
	}
	seq, err := NewTickArraySequence(tickArrays, int(state.TickSpacing), aToB)
	if err != nil {
		return nil, err
	}

	sqrtPriceLimit := MaxSqrtPriceX64
	if aToB {
		sqrtPriceLimit = MinSqrtPriceX64
	}
	quote, err := SimulateSwap(state, seq, SwapParams{
		Amount:                 hop.AmountIn,
		SqrtPriceLimit:         sqrtPriceLimit,
		OtherAmountThreshold:   hop.AmountOutMin,
		AmountSpecifiedIsInput: true,
		AToB:                   aToB,
	})
	if err != nil {
		return nil, fmt.Errorf("simulate whirlpool %s: %w", hop.PoolAddress, err)
	}

	oracle, err := OracleAddress(hop.PoolAddress)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(layout.InstructionDiscriminator("swap"), false); err != nil {
		return nil, fmt.Errorf("encode whirlpool swap payload: %w", err)
	}
	limit := uint128.FromBig(sqrtPriceLimit.BigInt())
	for _, v := range []interface{}{
		hop.AmountIn.Uint64(),
		hop.AmountOutMin.Uint64(),
		limit.Lo,
		limit.Hi,
		true, // amount specified is input
		aToB,
	} {
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode whirlpool swap payload: %w", err)
		}
	}

	userA, userB := userSource, userDestination
	if !aToB {
		userA, userB = userDestination, userSource
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 0: token program
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 1: token authority (signer)
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, true, false))        // 2: whirlpool (writable)
	accounts.Append(solana.NewAccountMeta(userA, true, false))                  // 3: user token A account (writable)
	accounts.Append(solana.NewAccountMeta(state.TokenVaultA, true, false))      // 4: vault A (writable)
	accounts.Append(solana.NewAccountMeta(userB, true, false))                  // 5: user token B account (writable)
	accounts.Append(solana.NewAccountMeta(state.TokenVaultB, true, false))      // 6: vault B (writable)
	for _, ta := range quote.TickArrays {
		accounts.Append(solana.NewAccountMeta(ta, true, false)) // 7..9: tick arrays (writable)
	}
	accounts.Append(solana.NewAccountMeta(oracle, true, false)) // 10: oracle (writable)

	return solana.NewInstruction(WHIRLPOOL_PROGRAM_ID, accounts, buf.Bytes()), nil
}

// fetchTickArraySequence resolves and fetches the three tick arrays starting
// at the pool's current tick, advancing in swap direction. Arrays that do not
// exist on chain are kept as address-only placeholders.
func fetchTickArraySequence(ctx context.Context, fetcher pkg.AccountFetcher, pool solana.PublicKey, state *WhirlpoolState, aToB bool) ([]TickArrayData, error) {
	direction := 1
	if aToB {
		direction = -1
	}

	out := make([]TickArrayData, 0, MaxSwapTickArrays)
	for i := 0; i < MaxSwapTickArrays; i++ {
		start := StartTickIndex(int(state.TickCurrentIndex), int(state.TickSpacing), i*direction)
		addr, err := TickArrayAddress(pool, start)
		if err != nil {
			return nil, err
		}

		raw, err := fetcher.FetchAccount(ctx, addr)
		if errors.Is(err, pkg.ErrAccountNotFound) {
			out = append(out, TickArrayData{Address: addr})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch tick array %s: %w", addr, err)
		}
		data, err := DecodeTickArrayState(raw)
		if err != nil {
			return nil, fmt.Errorf("decode tick array %s: %w", addr, err)
		}
		out = append(out, TickArrayData{Address: addr, Data: data})
	}
	return out, nil
}
