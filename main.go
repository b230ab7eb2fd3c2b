package main

import (
	"context"
	"os"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/aggregator"
	"github.com/dexcore-labs/solswap/pkg/pool/whirlpool"
	"github.com/dexcore-labs/solswap/pkg/sol"
	"github.com/dexcore-labs/solswap/utils"
)

const (
	// SOL/USDC whirlpool
	defaultPoolAddr = "HJPjoWUrhoZzkNfRpHuieeFk9WcZWjwy6PBjZ81ngndJ"

	defaultAmountIn = 1000000000 // 1 SOL (9 decimals)
)

func main() {
	utils.LoadEnv()
	log := logrus.StandardLogger()

	privateKeyStr := os.Getenv("SOLANA_PRIVATE_KEY")
	if privateKeyStr == "" {
		log.Fatal("SOLANA_PRIVATE_KEY is required")
	}
	privateKey := solana.MustPrivateKeyFromBase58(privateKeyStr)
	user := privateKey.PublicKey()
	log.WithField("publicKey", user).Info("loaded wallet")

	ctx := context.Background()
	rpcURL := utils.GetEnvOrDefault("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com")
	wsURL := utils.GetEnvOrDefault("SOLANA_WS_RPC_URL", "wss://api.mainnet-beta.solana.com")

	client, err := sol.NewClient(ctx, rpcURL, wsURL)
	if err != nil {
		log.WithError(err).Fatal("create solana client")
	}
	defer client.Close()

	poolAddr := solana.MustPublicKeyFromBase58(utils.GetEnvOrDefault("POOL_ADDRESS", defaultPoolAddr))
	raw, err := client.FetchAccount(ctx, poolAddr)
	if err != nil {
		log.WithError(err).WithField("pool", poolAddr).Fatal("fetch pool")
	}
	state, err := whirlpool.DecodeWhirlpoolState(raw)
	if err != nil {
		log.WithError(err).Fatal("decode pool")
	}
	log.WithFields(logrus.Fields{
		"pool":      poolAddr,
		"mintA":     state.TokenMintA,
		"mintB":     state.TokenMintB,
		"tick":      state.TickCurrentIndex,
		"liquidity": state.Liquidity,
	}).Info("decoded whirlpool")

	tokens := sol.NewTokenAccounts(client)

	// fund the wrapped SOL account the route spends from
	amountIn := math.NewInt(defaultAmountIn)
	_, wrapInsts, err := tokens.WrapSOL(ctx, user, amountIn.Uint64())
	if err != nil {
		log.WithError(err).Fatal("wrap SOL")
	}

	hop := pkg.SwapHop{
		Protocol:        pkg.ProtocolWhirlpool,
		PoolAddress:     poolAddr,
		PoolAuthority:   poolAddr,
		PoolSource:      state.TokenVaultA,
		PoolDestination: state.TokenVaultB,
		SourceMint:      state.TokenMintA,
		DestinationMint: state.TokenMintB,
		AmountIn:        amountIn,
		AmountOutMin:    math.ZeroInt(), // demo accepts any quote
	}

	agg := aggregator.New(client, tokens, log)
	swapInsts, err := agg.BuildSwapTransaction(ctx, []pkg.SwapHop{hop}, user, aggregator.Options{})
	if err != nil {
		log.WithError(err).Fatal("build swap transaction")
	}

	insts := append(wrapInsts, swapInsts...)
	log.WithField("instructions", len(insts)).Info("route assembled")

	res, err := client.RpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		log.WithError(err).Fatal("get blockhash")
	}

	sig, err := client.SendTx(ctx, res.Value.Blockhash, []solana.PrivateKey{privateKey}, insts, true)
	if err != nil {
		log.WithError(err).Fatal("send transaction")
	}
	log.WithField("signature", sig).Info("transaction simulated")
}
