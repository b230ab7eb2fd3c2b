package sol

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"golang.org/x/time/rate"

	"github.com/dexcore-labs/solswap/pkg"
)

// defaultFetchRate caps account lookups against public RPC endpoints.
const (
	defaultFetchRate  = rate.Limit(20)
	defaultFetchBurst = 40
)

// Client represents a Solana client that handles both RPC and WebSocket
// connections. Account fetches are rate limited so concurrent route prefetch
// does not trip public endpoint quotas.
type Client struct {
	RpcClient *rpc.Client
	WsClient  *ws.Client

	limiter *rate.Limiter
}

// NewClient creates a new Solana client with both RPC and WebSocket connections
func NewClient(ctx context.Context, endpoint, wsEndpoint string) (*Client, error) {
	c := &Client{
		RpcClient: rpc.New(endpoint),
		limiter:   rate.NewLimiter(defaultFetchRate, defaultFetchBurst),
	}
	if wsEndpoint != "" {
		wsClient, err := ws.Connect(ctx, wsEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to establish WebSocket connection: %w", err)
		}
		c.WsClient = wsClient
	}
	return c, nil
}

// SetFetchRate overrides the account-fetch rate limit.
func (c *Client) SetFetchRate(limit rate.Limit, burst int) {
	c.limiter = rate.NewLimiter(limit, burst)
}

// FetchAccount returns the raw data of a single account. A missing account
// surfaces as pkg.ErrAccountNotFound.
func (c *Client) FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.RpcClient.GetAccountInfo(ctx, address)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", pkg.ErrAccountNotFound, address)
		}
		return nil, fmt.Errorf("get account info %s: %w", address, err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrAccountNotFound, address)
	}
	return res.Value.Data.GetBinary(), nil
}

// FetchAccounts returns raw data for several accounts in one RPC call,
// keyed by address. Missing accounts are omitted from the result.
func (c *Client) FetchAccounts(ctx context.Context, addresses []solana.PublicKey) (map[solana.PublicKey][]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	res, err := c.RpcClient.GetMultipleAccounts(ctx, addresses...)
	if err != nil {
		return nil, fmt.Errorf("get multiple accounts: %w", err)
	}
	out := make(map[solana.PublicKey][]byte, len(addresses))
	for i, acc := range res.Value {
		if acc == nil {
			continue
		}
		out[addresses[i]] = acc.Data.GetBinary()
	}
	return out, nil
}

// Close terminates all client connections
func (c *Client) Close() error {
	if c.WsClient != nil {
		c.WsClient.Close()
	}
	return nil
}
