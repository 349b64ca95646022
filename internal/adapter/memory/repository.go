package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// Repository keeps the ledger in process memory. It implements
// port.CampaignRepository and port.PayoutRepository. A single mutex
// serializes every operation, so mutations apply atomically.
type Repository struct {
	mu        sync.Mutex
	campaigns []*domain.Campaign
	payouts   []domain.Payout
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

// CreateCampaign stores a copy of c under the next sequential id.
func (r *Repository) CreateCampaign(_ context.Context, c *domain.Campaign) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := c.Clone()
	cp.ID = int64(len(r.campaigns))
	r.campaigns = append(r.campaigns, cp)
	return cp.ID, nil
}

// GetCampaign returns a copy of the stored campaign.
func (r *Repository) GetCampaign(_ context.Context, id int64) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

// ListCampaigns returns campaign summaries in id order.
func (r *Repository) ListCampaigns(_ context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if filter.Owner != nil && c.Owner != *filter.Owner {
			continue
		}
		summary := *c
		summary.Donations = nil
		summary.Milestones = nil
		out = append(out, summary)
	}
	return out, nil
}

// UpdateCampaign runs fn on a copy and swaps it in only when fn succeeds.
func (r *Repository) UpdateCampaign(_ context.Context, id int64, fn port.MutateFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.lookup(id)
	if err != nil {
		return err
	}
	cp := c.Clone()
	payouts, err := fn(cp)
	if err != nil {
		return err
	}
	r.campaigns[id] = cp
	r.payouts = append(r.payouts, payouts...)
	return nil
}

func (r *Repository) lookup(id int64) (*domain.Campaign, error) {
	if id < 0 || id >= int64(len(r.campaigns)) {
		return nil, domain.ErrNotFound
	}
	return r.campaigns[id], nil
}

// ListPayouts returns payouts matching filter ordered by creation time.
func (r *Repository) ListPayouts(_ context.Context, filter port.PayoutFilter) ([]domain.Payout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Payout, 0)
	for _, p := range r.payouts {
		if filter.CampaignID != nil && p.CampaignID != *filter.CampaignID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ClaimPayout moves a pending payout to sending.
func (r *Repository) ClaimPayout(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	claimed := false
	err := r.settle(id, func(p *domain.Payout) {
		if p.Status != domain.PayoutPending {
			return
		}
		p.Status = domain.PayoutSending
		p.UpdatedAt = at
		claimed = true
	})
	return claimed, err
}

// MarkPayoutSent records a successful transfer.
func (r *Repository) MarkPayoutSent(_ context.Context, id uuid.UUID, txHash string, at time.Time) error {
	return r.settle(id, func(p *domain.Payout) {
		p.Status = domain.PayoutSent
		p.TxHash = txHash
		p.Reason = ""
		p.UpdatedAt = at
	})
}

// MarkPayoutFailed records a failed transfer.
func (r *Repository) MarkPayoutFailed(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	return r.settle(id, func(p *domain.Payout) {
		p.Status = domain.PayoutFailed
		p.Reason = reason
		p.UpdatedAt = at
	})
}

func (r *Repository) settle(id uuid.UUID, apply func(p *domain.Payout)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.payouts {
		if r.payouts[i].ID == id {
			apply(&r.payouts[i])
			return nil
		}
	}
	return domain.ErrNotFound
}
