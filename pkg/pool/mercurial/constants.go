package mercurial

import "github.com/gagliardetto/solana-go"

var (
	// Mercurial multi-token StableSwap program
	MERCURIAL_PROGRAM_ID = solana.MustPublicKeyFromBase58("MERLuDFBMmsHnsBPZw2sDQZHvXFMwp8EdjudcU2HKky")
)

const (
	// MaxNCoins is the pool's token account slot count; unused slots hold
	// the zero key.
	MaxNCoins = 4

	// SwapState account size
	SwapStateSize = 265

	swapInstruction = uint8(4)
)
