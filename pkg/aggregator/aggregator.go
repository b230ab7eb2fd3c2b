package aggregator

import (
	"context"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/sol"
)

// TokenAccountService resolves the user's token accounts and builds the
// lifecycle instructions around a swap. Satisfied by sol.TokenAccounts; tests
// substitute an in-memory implementation.
type TokenAccountService interface {
	ResolveOrCreate(ctx context.Context, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error)
	ResolveOrCreateFor(ctx context.Context, payer, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error)
	CloseAccount(owner, account solana.PublicKey) (solana.Instruction, error)
	Transfer(owner, source, destination solana.PublicKey, amount uint64) (solana.Instruction, error)
}

// Options tunes one transaction build.
type Options struct {
	// ChargeFee appends a transfer of FeeAmount from the final hop's
	// destination account to the fee treasury.
	ChargeFee bool
	FeeAmount uint64
}

// Aggregator assembles a multi-hop swap route into the instruction list of a
// single atomic transaction.
type Aggregator struct {
	fetcher pkg.AccountFetcher
	tokens  TokenAccountService
	log     logrus.FieldLogger
}

func New(fetcher pkg.AccountFetcher, tokens TokenAccountService, log logrus.FieldLogger) *Aggregator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Aggregator{fetcher: fetcher, tokens: tokens, log: log}
}

// BuildSwapTransaction validates the route, prefetches every hop's pool
// account concurrently, then assembles instructions hop by hop in route
// order. Any failure aborts the whole build; no partial instruction list is
// returned.
func (a *Aggregator) BuildSwapTransaction(
	ctx context.Context,
	hops []pkg.SwapHop,
	userAuthority solana.PublicKey,
	opts Options,
) ([]solana.Instruction, error) {
	if len(hops) == 0 {
		return nil, fmt.Errorf("route has no hops")
	}
	if userAuthority.IsZero() {
		return nil, fmt.Errorf("user authority is unset")
	}
	for i, hop := range hops {
		if err := hop.Validate(); err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
	}

	fetcher := newCachingFetcher(a.fetcher)
	if err := a.prefetchPools(ctx, fetcher, hops); err != nil {
		return nil, err
	}

	insts := make([]solana.Instruction, 0, len(hops)*2)
	scheduledATAs := make(map[solana.PublicKey]bool)

	resolve := func(mint solana.PublicKey) (solana.PublicKey, error) {
		ata, create, err := a.tokens.ResolveOrCreate(ctx, userAuthority, mint)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("resolve token account for %s: %w", mint, err)
		}
		if len(create) > 0 && !scheduledATAs[ata] {
			insts = append(insts, create...)
		}
		scheduledATAs[ata] = true
		return ata, nil
	}

	var lastDestination solana.PublicKey
	touchesWSOL := false
	for i, hop := range hops {
		userSource, err := resolve(hop.SourceMint)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		userDestination, err := resolve(hop.DestinationMint)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}

		builder, err := BuilderFor(hop.Protocol)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		inst, err := builder.BuildSwapInstruction(ctx, fetcher, hop, userAuthority, userSource, userDestination)
		if err != nil {
			return nil, fmt.Errorf("hop %d: %w", i, err)
		}
		insts = append(insts, inst)

		a.log.WithFields(logrus.Fields{
			"hop":      i,
			"protocol": hop.Protocol.String(),
			"pool":     hop.PoolAddress.String(),
			"amountIn": hop.AmountIn.String(),
		}).Debug("hop instruction assembled")

		if hop.SourceMint.Equals(sol.WSOL) || hop.DestinationMint.Equals(sol.WSOL) {
			touchesWSOL = true
		}
		lastDestination = userDestination
	}

	// One close regardless of how many hops pass through wrapped SOL.
	if touchesWSOL {
		wsolATA, _, err := solana.FindAssociatedTokenAddress(userAuthority, sol.WSOL)
		if err != nil {
			return nil, fmt.Errorf("find wrapped SOL account: %w", err)
		}
		closeInst, err := a.tokens.CloseAccount(userAuthority, wsolATA)
		if err != nil {
			return nil, fmt.Errorf("close wrapped SOL account: %w", err)
		}
		insts = append(insts, closeInst)
	}

	if opts.ChargeFee && opts.FeeAmount > 0 {
		feeMint := hops[len(hops)-1].DestinationMint
		treasuryATA, create, err := a.tokens.ResolveOrCreateFor(ctx, userAuthority, sol.FeeTreasury, feeMint)
		if err != nil {
			return nil, fmt.Errorf("resolve treasury token account: %w", err)
		}
		insts = append(insts, create...)

		feeInst, err := a.tokens.Transfer(userAuthority, lastDestination, treasuryATA, opts.FeeAmount)
		if err != nil {
			return nil, fmt.Errorf("build fee transfer: %w", err)
		}
		insts = append(insts, feeInst)
	}

	return insts, nil
}

// prefetchPools issues every hop's pool account fetch concurrently and joins
// before assembly starts. Assembly order stays the hop order; only the I/O is
// fanned out.
func (a *Aggregator) prefetchPools(ctx context.Context, fetcher pkg.AccountFetcher, hops []pkg.SwapHop) error {
	unique := make(map[solana.PublicKey]struct{}, len(hops))
	for _, hop := range hops {
		unique[hop.PoolAddress] = struct{}{}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for addr := range unique {
		wg.Add(1)
		go func(addr solana.PublicKey) {
			defer wg.Done()
			if _, err := fetcher.FetchAccount(ctx, addr); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("prefetch pool %s: %w", addr, err)
				}
				mu.Unlock()
			}
		}(addr)
	}
	wg.Wait()
	return firstErr
}
