package saros

import "github.com/gagliardetto/solana-go"

var (
	// Saros swap program (Coin98 token-swap fork)
	SAROS_SWAP_PROGRAM_ID = solana.MustPublicKeyFromBase58("SSwapUtytfBdBn1b9NUGG6foMVPtcWgpRU32HToDUZr")
)

const (
	// TokenSwapState account size
	TokenSwapStateSize = 324

	swapInstruction = uint8(1)

	// trailing marker byte required by the fork's swap payload
	keyCoin98 = uint8(98)
)
