package aggregator

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
)

// cachingFetcher memoizes account fetches for the lifetime of one build so
// the prefetch fan-out and the per-hop builders never hit the transport twice
// for the same address. Not-found results are cached as well.
type cachingFetcher struct {
	inner pkg.AccountFetcher

	mu    sync.Mutex
	cache map[solana.PublicKey]fetchResult
}

type fetchResult struct {
	data []byte
	err  error
}

func newCachingFetcher(inner pkg.AccountFetcher) *cachingFetcher {
	return &cachingFetcher{
		inner: inner,
		cache: make(map[solana.PublicKey]fetchResult),
	}
}

func (f *cachingFetcher) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	f.mu.Lock()
	if res, ok := f.cache[address]; ok {
		f.mu.Unlock()
		return res.data, res.err
	}
	f.mu.Unlock()

	data, err := f.inner.FetchAccount(ctx, address)

	f.mu.Lock()
	f.cache[address] = fetchResult{data: data, err: err}
	f.mu.Unlock()
	return data, err
}
