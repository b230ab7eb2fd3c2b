package aldrin

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// Builder assembles the Aldrin swap instruction for one route hop.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolAldrin }

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
		return nil, fmt.Errorf("fetch aldrin pool %s: %w", hop.PoolAddress, err)
	}
	var state PoolState
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode aldrin pool %s: %w", hop.PoolAddress, err)
	}

	// quote -> base routes take the Ask side with the accounts swapped
	isInverted := state.QuoteTokenMint.Equals(hop.DestinationMint)
	side := SideBid
	if isInverted {
		side = SideAsk
	}

	poolSigner, _, err := solana.FindProgramAddress(
		[][]byte{hop.PoolAddress.Bytes()},
		ALDRIN_POOLS_PROGRAM_ID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: aldrin pool signer: %s", pkg.ErrAuthorityDerivationFailed, err)
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.WriteBytes(layout.InstructionDiscriminator("swap"), false); err != nil {
		return nil, fmt.Errorf("encode aldrin swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode aldrin swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode aldrin swap payload: %w", err)
	}
	if err := enc.Encode(uint8(side)); err != nil {
		return nil, fmt.Errorf("encode aldrin swap payload: %w", err)
	}

	baseSide, quoteSide := userDestination, userSource
	if isInverted {
		baseSide, quoteSide = userSource, userDestination
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, false, false))        // 0: pool
	accounts.Append(solana.NewAccountMeta(poolSigner, false, false))             // 1: pool signer
	accounts.Append(solana.NewAccountMeta(state.PoolMint, true, false))          // 2: pool mint (writable)
	accounts.Append(solana.NewAccountMeta(state.BaseTokenVault, true, false))    // 3: base vault (writable)
	accounts.Append(solana.NewAccountMeta(state.QuoteTokenVault, true, false))   // 4: quote vault (writable)
	accounts.Append(solana.NewAccountMeta(state.FeePoolTokenAccount, true, false)) // 5: fee pool token account (writable)
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))           // 6: user authority (signer)
	accounts.Append(solana.NewAccountMeta(baseSide, true, false))                // 7: user base-side account (writable)
	accounts.Append(solana.NewAccountMeta(quoteSide, true, false))               // 8: user quote-side account (writable)
	accounts.Append(solana.NewAccountMeta(state.Curve, false, false))            // 9: curve
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false))  // 10: token program

	return solana.NewInstruction(ALDRIN_POOLS_PROGRAM_ID, accounts, buf.Bytes()), nil
}
