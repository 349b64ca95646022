package configs

import "time"

// Payout configures the dispatcher that settles queued refunds and
// withdrawals.
type Payout struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"15s"`
	// Batch is the maximum number of pending payouts taken per run.
	Batch   int `env:"BATCH" envDefault:"50"`
	Workers int `env:"WORKERS" envDefault:"4"`
	// Timeout bounds a single transfer.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
