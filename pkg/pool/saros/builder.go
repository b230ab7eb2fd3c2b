package saros

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Saros swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolSaros }

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
		return nil, fmt.Errorf("fetch saros pool %s: %w", hop.PoolAddress, err)
	}
	var state TokenSwapState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode saros pool %s: %w", hop.PoolAddress, err)
	}

	authority, err := Authority(hop.PoolAddress)
	if err != nil {
		return nil, err
	}

	// orient the pool vaults by the input mint
	vaultIn, vaultOut := state.Token0Account, state.Token1Account
	if !hop.SourceMint.Equals(state.Token0Mint) {
		vaultIn, vaultOut = state.Token1Account, state.Token0Account
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode saros swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode saros swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode saros swap payload: %w", err)
	}
	if err := enc.Encode(keyCoin98); err != nil {
		return nil, fmt.Errorf("encode saros swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))       // 0: swap info
	accounts.Append(solana.NewAccountMeta(authority, false, false))             // 1: pool authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 2: user authority (signer)
	accounts.Append(solana.NewAccountMeta(userSource, true, false))             // 3: user source (writable)
	accounts.Append(solana.NewAccountMeta(vaultIn, true, false))                // 4: pool vault in (writable)
	accounts.Append(solana.NewAccountMeta(vaultOut, true, false))               // 5: pool vault out (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))        // 6: user destination (writable)
	accounts.Append(solana.NewAccountMeta(state.LpTokenMint, true, false))      // 7: LP mint (writable)
	accounts.Append(solana.NewAccountMeta(state.FeeAccount, true, false))       // 8: fee account (writable)
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 9: token program

	return solana.NewInstruction(SAROS_SWAP_PROGRAM_ID, accounts, buf.Bytes()), nil
}
