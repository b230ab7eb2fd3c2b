package saber

import "github.com/gagliardetto/solana-go"

var (
	// Saber StableSwap program
	SABER_PROGRAM_ID = solana.MustPublicKeyFromBase58("SSwpkEEcbUqx4vtoEByFjSkhKdCT862DNVb52nZg1UZ")
)

const (
	// StableSwap pool account size
	StableSwapStateSize = 395

	swapInstruction = uint8(1)
)
