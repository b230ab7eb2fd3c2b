package raydium

import "github.com/gagliardetto/solana-go"

var (
	// Raydium AMM v4 program
	RAYDIUM_AMM_PROGRAM_ID = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")

	// PDA seed of the shared amm authority
	AmmAuthoritySeed = []byte("amm authority")
)

const (
	// LiquidityStateV4 decoded prefix (trailing padding words excluded)
	LiquidityStateV4Size = 728

	// Serum market state v3 account size
	MarketStateV3Size = 388

	// swapBaseIn instruction tag
	swapInstruction = uint8(9)

	// highest vault signer nonce tried before giving up
	maxMarketAuthorityNonce = 100
)
