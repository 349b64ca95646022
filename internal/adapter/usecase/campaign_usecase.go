package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// CampaignUseCase provides the ledger business logic. It orchestrates the
// campaign aggregate and the repositories to implement port.CampaignUseCase.
// Guards run inside the repository's exclusive update so that every
// operation observes the result of the previous one.
type CampaignUseCase struct {
	repo    port.CampaignRepository
	payouts port.PayoutRepository
	clock   port.Clock
	logger  *slog.Logger
}

// NewCampaignUseCase creates a new usecase with the provided repositories,
// clock and logger.
func NewCampaignUseCase(repo port.CampaignRepository, payouts port.PayoutRepository, clock port.Clock, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, payouts: payouts, clock: clock, logger: logger}
}

// CreateCampaign validates the draft against the current time and stores
// it. The returned id is assigned by the repository.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, draft domain.Draft) (int64, error) {
	c, err := domain.NewCampaign(draft, u.clock.Now())
	if err != nil {
		return 0, err
	}
	id, err := u.repo.CreateCampaign(ctx, c)
	if err != nil {
		return 0, err
	}
	u.logger.Info("campaign created",
		slog.Int64("campaign_id", id),
		slog.String("owner", draft.Owner.Hex()),
		slog.String("target", draft.Target.String()))
	return id, nil
}

// UpdateCampaign replaces the campaign metadata and deadline.
func (u *CampaignUseCase) UpdateCampaign(ctx context.Context, id int64, caller common.Address, changes domain.Changes) error {
	return u.mutate(ctx, id, "campaign updated", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.Update(caller, changes, u.clock.Now())
	})
}

// AdjustGoal replaces the funding target.
func (u *CampaignUseCase) AdjustGoal(ctx context.Context, id int64, caller common.Address, target decimal.Decimal) error {
	return u.mutate(ctx, id, "campaign goal adjusted", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.AdjustGoal(caller, target, u.clock.Now())
	})
}

// Donate records a donation. The returned campaign is a snapshot taken
// inside the update, so later writers do not show up in it.
func (u *CampaignUseCase) Donate(ctx context.Context, id int64, donor common.Address, amount decimal.Decimal) (*domain.Campaign, error) {
	var snapshot *domain.Campaign
	err := u.repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		if err := c.Donate(donor, amount, u.clock.Now()); err != nil {
			return nil, err
		}
		snapshot = c.Clone()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("donation recorded",
		slog.Int64("campaign_id", id),
		slog.String("donor", donor.Hex()),
		slog.String("amount", amount.String()))
	return snapshot, nil
}

// Refund returns contributions of a failed campaign and reports the
// payouts that were queued for settlement.
func (u *CampaignUseCase) Refund(ctx context.Context, id int64, caller common.Address) ([]domain.Payout, error) {
	var payouts []domain.Payout
	err := u.repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		var err error
		payouts, err = c.Refund(caller, u.clock.Now())
		return payouts, err
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("campaign refunded", slog.Int64("campaign_id", id), slog.Int("payouts", len(payouts)))
	return payouts, nil
}

// Withdraw queues the payout of collected funds to the owner.
func (u *CampaignUseCase) Withdraw(ctx context.Context, id int64, caller common.Address) (domain.Payout, error) {
	var payout domain.Payout
	err := u.repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		var err error
		payout, err = c.Withdraw(caller, u.clock.Now())
		if err != nil {
			return nil, err
		}
		return []domain.Payout{payout}, nil
	})
	if err != nil {
		return domain.Payout{}, err
	}
	u.logger.Info("campaign funds withdrawn",
		slog.Int64("campaign_id", id),
		slog.String("payout_id", payout.ID.String()),
		slog.String("amount", payout.Amount.String()))
	return payout, nil
}

// ChangeState moves the campaign to state.
func (u *CampaignUseCase) ChangeState(ctx context.Context, id int64, caller common.Address, state domain.State) error {
	return u.mutate(ctx, id, "campaign state changed", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.ChangeState(caller, state, u.clock.Now())
	})
}

// Resume reactivates a paused campaign.
func (u *CampaignUseCase) Resume(ctx context.Context, id int64, caller common.Address) error {
	return u.mutate(ctx, id, "campaign resumed", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.Resume(caller, u.clock.Now())
	})
}

// Complete closes a funded campaign.
func (u *CampaignUseCase) Complete(ctx context.Context, id int64, caller common.Address) error {
	return u.mutate(ctx, id, "campaign completed", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.Complete(caller, u.clock.Now())
	})
}

// AddMilestone appends a funding milestone.
func (u *CampaignUseCase) AddMilestone(ctx context.Context, id int64, caller common.Address, fundingLevel decimal.Decimal, description string) error {
	return u.mutate(ctx, id, "milestone added", func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.AddMilestone(caller, fundingLevel, description, u.clock.Now())
	})
}

func (u *CampaignUseCase) mutate(ctx context.Context, id int64, msg string, fn port.MutateFunc) error {
	if err := u.repo.UpdateCampaign(ctx, id, fn); err != nil {
		return err
	}
	u.logger.Info(msg, slog.Int64("campaign_id", id))
	return nil
}

// GetCampaign returns a campaign with its donations and milestones.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// ListCampaigns returns campaign summaries, optionally of a single owner.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx, filter)
}

// GetDonations returns the donation records of a campaign in order.
func (u *CampaignUseCase) GetDonations(ctx context.Context, id int64) ([]domain.Donation, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Donations, nil
}

// GetMilestones returns the milestones of a campaign in order.
func (u *CampaignUseCase) GetMilestones(ctx context.Context, id int64) ([]domain.Milestone, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Milestones, nil
}

// GetPayouts returns every payout a campaign has queued.
func (u *CampaignUseCase) GetPayouts(ctx context.Context, id int64) ([]domain.Payout, error) {
	if _, err := u.repo.GetCampaign(ctx, id); err != nil {
		return nil, err
	}
	return u.payouts.ListPayouts(ctx, port.PayoutFilter{CampaignID: &id})
}
