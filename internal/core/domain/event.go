package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Donation is a record of a single contribution. A refunded donation keeps
// its entry with a zero amount.
type Donation struct {
	Donor     common.Address
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Milestone is a named funding threshold.
type Milestone struct {
	FundingLevel decimal.Decimal
	Description  string
	CreatedAt    time.Time
}

// Reached reports whether collected has met the milestone threshold.
func (m Milestone) Reached(collected decimal.Decimal) bool {
	return collected.GreaterThanOrEqual(m.FundingLevel)
}
