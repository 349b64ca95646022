package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/core/domain"
)

// MutateFunc applies one ledger operation to a loaded campaign. Payouts it
// returns are stored in the same transaction as the campaign changes. A
// returned error discards every change.
type MutateFunc func(c *domain.Campaign) ([]domain.Payout, error)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must serialize
// UpdateCampaign calls on the same campaign and apply them atomically.
type CampaignRepository interface {
	// CreateCampaign stores c and returns the id it was assigned. Ids are
	// sequential starting at zero.
	CreateCampaign(ctx context.Context, c *domain.Campaign) (int64, error)
	// GetCampaign returns a campaign with its donations and milestones, or
	// domain.ErrNotFound.
	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// ListCampaigns returns campaigns ordered by id, without donation and
	// milestone lists.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
	// UpdateCampaign loads the campaign exclusively, runs fn and persists
	// the result together with any payouts fn returns.
	UpdateCampaign(ctx context.Context, id int64, fn MutateFunc) error
}

// PayoutRepository stores the payout outbox.
type PayoutRepository interface {
	// ListPayouts returns payouts matching filter ordered by creation time.
	ListPayouts(ctx context.Context, filter PayoutFilter) ([]domain.Payout, error)
	// ClaimPayout moves a pending payout to domain.PayoutSending before it
	// is transferred. It reports false when the payout is no longer
	// pending, and returns domain.ErrNotFound for an unknown id.
	ClaimPayout(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	// MarkPayoutSent records a successful transfer.
	MarkPayoutSent(ctx context.Context, id uuid.UUID, txHash string, at time.Time) error
	// MarkPayoutFailed records a failed transfer with its reason.
	MarkPayoutFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

// PayoutFilter narrows ListPayouts. Zero values match everything; a zero
// Limit means no limit.
type PayoutFilter struct {
	CampaignID *int64
	Status     domain.PayoutStatus
	Limit      int
}

// Transferer moves value on behalf of the ledger and returns the reference
// of the submitted transfer (a transaction hash).
type Transferer interface {
	Transfer(ctx context.Context, p domain.Payout) (string, error)
}

// Clock supplies the current time to the ledger.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in UTC.
var SystemClock = ClockFunc(func() time.Time { return time.Now().UTC() })
