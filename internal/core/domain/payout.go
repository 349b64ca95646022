package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutKind tells why the ledger owes a transfer.
type PayoutKind string

const (
	PayoutRefund     PayoutKind = "refund"
	PayoutWithdrawal PayoutKind = "withdrawal"
)

// PayoutStatus tracks settlement of a payout.
type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutSending PayoutStatus = "sending"
	PayoutSent    PayoutStatus = "sent"
	PayoutFailed  PayoutStatus = "failed"
)

// Payout is an outbound value transfer owed by the ledger. It is recorded
// atomically with the refund or withdrawal that caused it and settled
// later by the payout dispatcher.
type Payout struct {
	ID         uuid.UUID
	CampaignID int64
	Kind       PayoutKind
	Recipient  common.Address
	Amount     decimal.Decimal
	Status     PayoutStatus
	TxHash     string
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPayout returns a pending payout with a fresh id.
func NewPayout(campaignID int64, kind PayoutKind, to common.Address, amount decimal.Decimal, now time.Time) Payout {
	return Payout{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Kind:       kind,
		Recipient:  to,
		Amount:     amount,
		Status:     PayoutPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
