package whirlpool

import (
	"math/big"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

var (
	// Orca Whirlpool program
	WHIRLPOOL_PROGRAM_ID = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")
)

// Tick configuration
const (
	TickArraySize     = 88
	MaxSwapTickArrays = 3
	MinTickIndex      = -443636
	MaxTickIndex      = 443636

	TickArraySeed = "tick_array"
	OracleSeed    = "oracle"
)

// Account sizes (including the 8-byte Anchor discriminator)
const (
	WhirlpoolAccountSize = 653
	TickArrayAccountSize = 9988
)

// Fee rate denominators
var (
	FeeRateMulValue         = cosmath.NewInt(1_000_000)
	ProtocolFeeRateMulValue = cosmath.NewInt(10_000)
)

// Price bounds in Q64.64
var (
	MinSqrtPriceX64    = cosmath.NewInt(4295048016)
	MaxSqrtPriceX64, _ = cosmath.NewIntFromString("79226673515401279992447579055")
)

var (
	q64       = new(big.Int).Lsh(big.NewInt(1), 64)
	maxU128   = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxU128In = cosmath.NewIntFromBigInt(maxU128)
)
