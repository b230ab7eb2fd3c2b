package raydium

import (
	"bytes"
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// Builder assembles the Raydium AMM v4 swapBaseIn instruction for one route
// hop. Both the pool and its Serum market are fetched.
type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Protocol() pkg.Protocol { return pkg.ProtocolRaydium }

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
		return nil, fmt.Errorf("fetch raydium pool %s: %w", hop.PoolAddress, err)
	}
	var state LiquidityStateV4
	if err := state.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode raydium pool %s: %w", hop.PoolAddress, err)
	}

	rawMarket, err := fetcher.FetchAccount(ctx, state.MarketID)
	if err != nil {
		return nil, fmt.Errorf("fetch serum market %s: %w", state.MarketID, err)
	}
	var market MarketStateV3
	if err := market.Decode(rawMarket); err != nil {
		return nil, fmt.Errorf("decode serum market %s: %w", state.MarketID, err)
	}

	poolAuthority, err := PoolAuthority()
	if err != nil {
		return nil, err
	}
	marketAuthority, _, err := MarketAuthority(state.MarketID, state.MarketProgramID)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	enc := bin.NewBorshEncoder(buf)
	if err := enc.Encode(swapInstruction); err != nil {
		return nil, fmt.Errorf("encode raydium swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountIn.Uint64()); err != nil {
		return nil, fmt.Errorf("encode raydium swap payload: %w", err)
	}
	if err := enc.Encode(hop.AmountOutMin.Uint64()); err != nil {
		return nil, fmt.Errorf("encode raydium swap payload: %w", err)
	}

	accounts := solana.AccountMetaSlice{}
	accounts.Append(solana.NewAccountMeta(solana.TokenProgramID, false, false)) // 0: token program
	accounts.Append(solana.NewAccountMeta(hop.PoolAddress, true, false))        // 1: amm (writable)
	accounts.Append(solana.NewAccountMeta(poolAuthority, false, false))         // 2: amm authority
	accounts.Append(solana.NewAccountMeta(state.OpenOrders, true, false))       // 3: open orders (writable)
	accounts.Append(solana.NewAccountMeta(state.BaseVault, true, false))        // 4: base vault (writable)
	accounts.Append(solana.NewAccountMeta(state.QuoteVault, true, false))       // 5: quote vault (writable)
	accounts.Append(solana.NewAccountMeta(state.MarketProgramID, false, false)) // 6: market program
	accounts.Append(solana.NewAccountMeta(state.MarketID, true, false))         // 7: market (writable)
	accounts.Append(solana.NewAccountMeta(market.Bids, true, false))            // 8: bids (writable)
	accounts.Append(solana.NewAccountMeta(market.Asks, true, false))            // 9: asks (writable)
	accounts.Append(solana.NewAccountMeta(market.EventQueue, true, false))      // 10: event queue (writable)
	accounts.Append(solana.NewAccountMeta(market.BaseVault, true, false))       // 11: market base vault (writable)
	accounts.Append(solana.NewAccountMeta(market.QuoteVault, true, false))      // 12: market quote vault (writable)
	accounts.Append(solana.NewAccountMeta(marketAuthority, false, false))       // 13: market vault signer
	accounts.Append(solana.NewAccountMeta(userSource, true, false))             // 14: user source (writable)
	accounts.Append(solana.NewAccountMeta(userDestination, true, false))        // 15: user destination (writable)
	accounts.Append(solana.NewAccountMeta(userAuthority, false, true))          // 16: user authority (signer)

	return solana.NewInstruction(RAYDIUM_AMM_PROGRAM_ID, accounts, buf.Bytes()), nil
}
