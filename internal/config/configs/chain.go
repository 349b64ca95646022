package configs

// Chain configures the Ethereum node and the hot wallet used to send
// payouts. The dispatcher only runs when Enabled is set.
type Chain struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	RPCURL  string `env:"RPC_URL" envDefault:"http://localhost:8545"`
	ChainID int64  `env:"CHAIN_ID" envDefault:"11155111"`
	// PrivateKey is the hex encoded key of the paying account.
	PrivateKey string `env:"PRIVATE_KEY"`
	// GasLimit for a plain value transfer.
	GasLimit uint64 `env:"GAS_LIMIT" envDefault:"21000"`
}
