package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://gateway.pinata.cloud"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Platform tag attached to every artifact and ledger record
	PLATFORM_NAME = "RemixRite"

	// Royalty constants
	DEFAULT_REMIX_FEE        = "0.50"
	DEFAULT_CURRENCY_DECIMAL = 2
	DEFAULT_ROYALTY_RATE     = 10

	// Largest number of distinct parent clips in one remix
	MAX_CLIPS_PER_REMIX = 20
)
