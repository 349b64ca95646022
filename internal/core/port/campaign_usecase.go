package port

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"crowdfund/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the ledger.
// This interface represents the primary port into the application domain.
// Every mutating call is applied atomically; guard failures are returned as
// domain errors (domain.ErrNotOwner, domain.ErrCampaignPaused, ...).
type CampaignUseCase interface {
	// CreateCampaign validates the draft and stores a new Active campaign,
	// returning its sequential id.
	CreateCampaign(ctx context.Context, draft domain.Draft) (int64, error)

	// UpdateCampaign replaces title, description, image and deadline while
	// the campaign has received no donations.
	UpdateCampaign(ctx context.Context, id int64, caller common.Address, changes domain.Changes) error

	// AdjustGoal replaces the funding target under the same guards as
	// UpdateCampaign.
	AdjustGoal(ctx context.Context, id int64, caller common.Address, target decimal.Decimal) error

	// Donate records a donation of amount wei from donor and returns the
	// campaign as the donation left it.
	Donate(ctx context.Context, id int64, donor common.Address, amount decimal.Decimal) (*domain.Campaign, error)

	// Refund returns every donor's contribution after a failed campaign
	// and returns the payouts that were queued.
	Refund(ctx context.Context, id int64, caller common.Address) ([]domain.Payout, error)

	// Withdraw queues the payout of collected funds to the owner of a
	// completed campaign.
	Withdraw(ctx context.Context, id int64, caller common.Address) (domain.Payout, error)

	// ChangeState moves the campaign to the requested state.
	ChangeState(ctx context.Context, id int64, caller common.Address, state domain.State) error

	// Resume moves a paused campaign back to Active.
	Resume(ctx context.Context, id int64, caller common.Address) error

	// Complete closes a campaign whose target has been met.
	Complete(ctx context.Context, id int64, caller common.Address) error

	// AddMilestone appends a funding milestone.
	AddMilestone(ctx context.Context, id int64, caller common.Address, fundingLevel decimal.Decimal, description string) error

	GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
	GetDonations(ctx context.Context, id int64) ([]domain.Donation, error)
	GetMilestones(ctx context.Context, id int64) ([]domain.Milestone, error)
	GetPayouts(ctx context.Context, id int64) ([]domain.Payout, error)
}

// CampaignFilter narrows ListCampaigns. A nil Owner lists every campaign.
type CampaignFilter struct {
	Owner *common.Address
}
