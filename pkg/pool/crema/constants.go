package crema

import "github.com/gagliardetto/solana-go"

var (
	// Crema swap program
	CREMA_PROGRAM_ID = solana.MustPublicKeyFromBase58("6MLxLqiXaaSUpkgMnWDTuejNZEz3kE7k2woyHGVFw319")
)

const (
	// decoded prefix of the token swap account; the price and liquidity
	// fields that follow are not needed for routing
	TokenSwapAccountPrefixSize = 356

	swapInstruction = uint8(1)
)
