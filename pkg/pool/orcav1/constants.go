package orcav1

import "github.com/gagliardetto/solana-go"

var (
	// Orca v1 token-swap program
	ORCA_SWAP_PROGRAM_ID = solana.MustPublicKeyFromBase58("9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP")
)

const (
	// TokenSwapState account size
	TokenSwapStateSize = 324

	swapInstruction = uint8(1)
)
