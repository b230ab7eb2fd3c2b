package crema

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Crema swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolCrema }

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
		return nil, fmt.Errorf("fetch crema pool %s: %w", hop.PoolAddress, err)
	}
	var state TokenSwapAccount
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode crema pool %s: %w", hop.PoolAddress, err)
	}

	authority, _, err := solana.FindProgramAddress(
		[][]byte{state.TokenSwapKey.Bytes()},
		CREMA_PROGRAM_ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: crema authority: %s", pkg.ErrAuthorityDerivationFailed, err)
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode crema swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode crema swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode crema swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, true, false))        // 0: swap account (writable)
	accounts.Append(solana.NewAccountMeta(authority, false, false))             // 1: swap authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 2: user authority (signer)
	accounts.Append(solana.NewAccountMeta(userSource, true, false))             // 3: user source (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))        // 4: user destination (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolSource, true, false))         // 5: pool vault in (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolDestination, true, false))    // 6: pool vault out (writable)
	accounts.Append(solana.NewAccountMeta(state.TicksKey, true, false))         // 7: ticks account (writable)
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 8: token program

	return solana.NewInstruction(CREMA_PROGRAM_ID, accounts, buf.Bytes()), nil
}
