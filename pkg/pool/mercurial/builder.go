package mercurial

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Mercurial exchange instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolMercurial }

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
		return nil, fmt.Errorf("fetch mercurial pool %s: %w", hop.PoolAddress, err)
	}
	var state SwapState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode mercurial pool %s: %w", hop.PoolAddress, err)
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode mercurial swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode mercurial swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode mercurial swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))       // 0: swap state
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 1: token program
	accounts.Append(solana.NewAccountMeta(hop.PoolAuthority, false, false))     // 2: pool authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 3: user authority (signer)
	for _, vault := range state.ActiveTokenAccounts() {
		accounts.Append(solana.NewAccountMeta(vault, true, false)) // pool vaults (writable)
	}
	accounts.Append(solana.NewAccountMeta(userSource, true, false))      // user source (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false)) // user destination (writable)

	return solana.NewInstruction(MERCURIAL_PROGRAM_ID, accounts, buf.Bytes()), nil
}
