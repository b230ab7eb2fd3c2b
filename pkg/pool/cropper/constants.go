package cropper

import "github.com/gagliardetto/solana-go"

var (
	// Cropper token-swap fork
	CROPPER_PROGRAM_ID = solana.MustPublicKeyFromBase58("CTMAxxk34HjKWxQ3QLZK1HpaLXmBveao3ESePXbiyfzh")

	// Global program state account, fixed for the mainnet deployment.
	StateAccount = solana.MustPublicKeyFromBase58("3hsU1VgsBgBgz5jWiqdw9RfGU6TpWdCmdah1oi4kF3Tq")

	// Admin wallet; its source-mint ATA collects the protocol fee.
	AdminAccount = solana.MustPublicKeyFromBase58("DyDdJM9KVsvosfXbcHDp4pRpmbMHkRq3pcarBykPy4ir")
)

const (
	// AmmState account size
	AmmStateSize = 291

	swapInstruction = uint8(1)
)
