package aldrin

import "github.com/gagliardetto/solana-go"

var (
	// Aldrin pools program (v2)
	ALDRIN_POOLS_PROGRAM_ID = solana.MustPublicKeyFromBase58("CURVGoZn8zycx6FXwwevgBTB2gVvdbGTEpvMJDbgs2t4")
)

// Side of the order book the swap takes.
type Side uint8

const (
	SideBid Side = 0
	SideAsk Side = 1
)

// Curve types
const (
	CurveProduct = uint8(0)
	CurveStable  = uint8(1)
)

const (
	// PoolStateV2 account size
	PoolStateV2Size = 474
)
