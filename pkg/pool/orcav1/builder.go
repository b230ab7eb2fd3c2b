package orcav1

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Orca v1 swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolOrca }

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
		return nil, fmt.Errorf("fetch orca pool %s: %w", hop.PoolAddress, err)
	}
	var state TokenSwapState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode orca pool %s: %w", hop.PoolAddress, err)
	}

	authority, err := Authority(hop.PoolAddress)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode orca swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode orca swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode orca swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))       // 0: swap info
	accounts.Append(solana.NewAccountMeta(authority, false, false))             // 1: swap authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 2: user authority (signer)
	accounts.Append(solana.NewAccountMeta(userSource, true, false))             // 3: user source (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolSource, true, false))         // 4: pool vault in (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolDestination, true, false))    // 5: pool vault out (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))        // 6: user destination (writable)
	accounts.Append(solana.NewAccountMeta(state.TokenPool, true, false))        // 7: pool mint (writable)
	accounts.Append(solana.NewAccountMeta(state.FeeAccount, true, false))       // 8: fee account (writable)
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 9: token program

	return solana.NewInstruction(ORCA_SWAP_PROGRAM_ID, accounts, buf.Bytes()), nil
}
