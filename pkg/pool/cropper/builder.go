package cropper

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Cropper swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolCropper }

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
		return nil, fmt.Errorf("fetch cropper pool %s: %w", hop.PoolAddress, err)
	}
	var state AmmState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode cropper pool %s: %w", hop.PoolAddress, err)
	}

	authority, err := state.Authority()
	if err != nil {
		return nil, err
	}

	// admin fee is collected in the admin's ATA for the input mint
	feeAccount, _, err := solana.FindAssociatedTokenAddress(AdminAccount, hop.SourceMint)
	if err != nil {
		return nil, fmt.Errorf("derive cropper fee account: %w", err)
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode cropper swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode cropper swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode cropper swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))       // 0: swap info
	accounts.Append(solana.NewAccountMeta(authority, false, false))             // 1: swap authority
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 2: user authority (signer)
	accounts.Append(solana.NewAccountMeta(StateAccount, false, false))          // 3: program state
	accounts.Append(solana.NewAccountMeta(userSource, true, false))             // 4: user source (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolSource, true, false))         // 5: pool vault in (writable)
	accounts.Append(solana.NewAccountMeta(hop.PoolDestination, true, false))    // 6: pool vault out (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))        // 7: user destination (writable)
	accounts.Append(solana.NewAccountMeta(state.PoolMint, true, false))         // 8: pool mint (writable)
	accounts.Append(solana.NewAccountMeta(feeAccount, true, false))             // 9: admin fee ATA (writable)
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 10: token program

	return solana.NewInstruction(CROPPER_PROGRAM_ID, accounts, buf.Bytes()), nil
}
