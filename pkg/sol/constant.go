package sol

import "github.com/gagliardetto/solana-go"

var (
	WSOL      = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	NativeSOL = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

	// FeeTreasury receives the optional aggregation fee.
	FeeTreasury = solana.MustPublicKeyFromBase58("5UrM9csUEDBeBqMZTuuZyHRNhbRW4vQ1MgKJDrKU1U2v")

	TokenAccountSize = uint64(165)
)
