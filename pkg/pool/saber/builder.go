package saber

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Saber swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolSaber }

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
		return nil, fmt.Errorf("fetch saber pool %s: %w", hop.PoolAddress, err)
	}
	var state StableSwapState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode saber pool %s: %w", hop.PoolAddress, err)
	}

	// the admin fee account sits on the output side of the trade
	adminFee := state.AdminFeeAccountA
	if hop.SourceMint.Equals(state.MintA) {
		adminFee = state.AdminFeeAccountB
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode saber swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode saber swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode saber swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))    // 0: swap info
	accounts.Append(solana.NewAccountMeta(hop.PoolAuthority, false, false))  // 1: swap authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))       // 2: user authority (signer)
	accounts.Append(solana.NewAccountMeta(userSource, true, false))          // 3: user source (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolSource, true, false))      // 4: pool source vault (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolDestination, true, false)) // 5: pool destination vault (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))     // 6: user destination (writable)
	accounts.Append(solana.NewAccountMeta(adminFee, true, false))            // 7: admin fee account (writable)
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 8: token program

	return solana.NewInstruction(SABER_PROGRAM_ID, accounts, buf.Bytes()), nil
}
