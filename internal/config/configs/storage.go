package configs

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Storage selects where the ledger is kept. Memory storage loses every
// campaign on restart and is meant for demos and local development.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// SeedDemo populates the ledger with demo campaigns on startup.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`
}
