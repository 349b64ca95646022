package domain

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// State is the lifecycle state of a campaign.
type State string

const (
	StateActive    State = "Active"
	StatePaused    State = "Paused"
	StateCompleted State = "Completed"
)

// ParseState converts the textual state name into a State.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StateActive, StatePaused, StateCompleted:
		return State(s), nil
	default:
		return "", fmt.Errorf("unknown state %q: %w", s, ErrInvalidTransition)
	}
}

// Campaign is a single fundraising effort and the aggregate every ledger
// operation is applied to. Amounts are integer wei.
type Campaign struct {
	ID              int64
	Owner           common.Address
	Title           string
	Description     string
	Category        string
	Image           string
	Target          decimal.Decimal
	Deadline        time.Time
	AmountCollected decimal.Decimal
	State           State
	Withdrawn       bool
	Donations       []Donation
	Milestones      []Milestone
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Draft carries the fields supplied when a campaign is created.
type Draft struct {
	Owner       common.Address
	Title       string
	Description string
	Category    string
	Image       string
	Target      decimal.Decimal
	Deadline    time.Time
}

// Changes carries the metadata an owner may replace before the first donation.
type Changes struct {
	Title       string
	Description string
	Image       string
	Deadline    time.Time
}

// NewCampaign validates the draft and returns an Active campaign with no
// donations. The ID is assigned by the repository.
func NewCampaign(d Draft, now time.Time) (*Campaign, error) {
	if !d.Deadline.After(now) {
		return nil, ErrInvalidDeadline
	}
	if !validWei(d.Target) {
		return nil, ErrInvalidAmount
	}
	return &Campaign{
		Owner:           d.Owner,
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		Image:           d.Image,
		Target:          d.Target,
		Deadline:        d.Deadline,
		AmountCollected: decimal.Zero,
		State:           StateActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update replaces title, description, image and deadline. Only the owner
// may do so, and only while nothing has been donated.
func (c *Campaign) Update(caller common.Address, ch Changes, now time.Time) error {
	if err := c.checkMutable(caller); err != nil {
		return err
	}
	if !ch.Deadline.After(now) {
		return ErrInvalidDeadline
	}
	c.Title = ch.Title
	c.Description = ch.Description
	c.Image = ch.Image
	c.Deadline = ch.Deadline
	c.UpdatedAt = now
	return nil
}

// AdjustGoal replaces the funding target under the same guards as Update.
func (c *Campaign) AdjustGoal(caller common.Address, target decimal.Decimal, now time.Time) error {
	if err := c.checkMutable(caller); err != nil {
		return err
	}
	if !validWei(target) {
		return ErrInvalidAmount
	}
	c.Target = target
	c.UpdatedAt = now
	return nil
}

func (c *Campaign) checkMutable(caller common.Address) error {
	if caller != c.Owner {
		return ErrNotOwner
	}
	if !c.AmountCollected.IsZero() {
		return ErrAlreadyFunded
	}
	if c.State == StateCompleted {
		return ErrInvalidTransition
	}
	return nil
}

// Donate appends a donation record and grows the collected amount.
func (c *Campaign) Donate(donor common.Address, amount decimal.Decimal, now time.Time) error {
	if !validWei(amount) {
		return ErrInvalidAmount
	}
	if c.State != StateActive {
		return ErrCampaignPaused
	}
	if now.After(c.Deadline) {
		return ErrDeadlinePassed
	}
	total := c.AmountCollected.Add(amount)
	if total.GreaterThan(MaxWei) {
		return ErrInvalidAmount
	}
	c.Donations = append(c.Donations, Donation{Donor: donor, Amount: amount, CreatedAt: now})
	c.AmountCollected = total
	c.UpdatedAt = now
	return nil
}

// Refund returns every donor's cumulative contribution once the deadline
// has passed without reaching the target. Donation entries are kept with
// their amount zeroed, so a second refund produces no payouts.
func (c *Campaign) Refund(caller common.Address, now time.Time) ([]Payout, error) {
	if caller != c.Owner {
		return nil, ErrNotOwner
	}
	if !now.After(c.Deadline) {
		return nil, ErrDeadlineNotReached
	}
	if c.AmountCollected.GreaterThanOrEqual(c.Target) {
		return nil, ErrGoalReached
	}

	var order []common.Address
	totals := make(map[common.Address]decimal.Decimal)
	for i := range c.Donations {
		d := &c.Donations[i]
		if d.Amount.IsZero() {
			continue
		}
		if _, ok := totals[d.Donor]; !ok {
			order = append(order, d.Donor)
		}
		totals[d.Donor] = totals[d.Donor].Add(d.Amount)
		c.AmountCollected = c.AmountCollected.Sub(d.Amount)
		d.Amount = decimal.Zero
	}

	payouts := make([]Payout, 0, len(order))
	for _, donor := range order {
		payouts = append(payouts, NewPayout(c.ID, PayoutRefund, donor, totals[donor], now))
	}
	if len(payouts) > 0 {
		c.UpdatedAt = now
	}
	return payouts, nil
}

// Withdraw pays the collected amount out to the owner of a completed
// campaign. It can succeed only once.
func (c *Campaign) Withdraw(caller common.Address, now time.Time) (Payout, error) {
	if caller != c.Owner {
		return Payout{}, ErrNotOwner
	}
	if c.State != StateCompleted {
		return Payout{}, ErrInvalidTransition
	}
	if c.Withdrawn {
		return Payout{}, ErrAlreadyWithdrawn
	}
	c.Withdrawn = true
	c.UpdatedAt = now
	return NewPayout(c.ID, PayoutWithdrawal, c.Owner, c.AmountCollected, now), nil
}

// Pause moves an Active campaign to Paused.
func (c *Campaign) Pause(caller common.Address, now time.Time) error {
	return c.transition(caller, StateActive, StatePaused, now)
}

// Resume moves a Paused campaign back to Active.
func (c *Campaign) Resume(caller common.Address, now time.Time) error {
	return c.transition(caller, StatePaused, StateActive, now)
}

// Complete closes an Active campaign whose target has been met. Completed
// is terminal.
func (c *Campaign) Complete(caller common.Address, now time.Time) error {
	if caller != c.Owner {
		return ErrNotOwner
	}
	if c.State != StateActive {
		return ErrInvalidTransition
	}
	if c.AmountCollected.LessThan(c.Target) {
		return ErrGoalNotMet
	}
	c.State = StateCompleted
	c.UpdatedAt = now
	return nil
}

// ChangeState routes a requested target state to the matching transition.
func (c *Campaign) ChangeState(caller common.Address, target State, now time.Time) error {
	switch target {
	case StatePaused:
		return c.Pause(caller, now)
	case StateActive:
		return c.Resume(caller, now)
	case StateCompleted:
		return c.Complete(caller, now)
	default:
		if caller != c.Owner {
			return ErrNotOwner
		}
		return ErrInvalidTransition
	}
}

func (c *Campaign) transition(caller common.Address, from, to State, now time.Time) error {
	if caller != c.Owner {
		return ErrNotOwner
	}
	if c.State != from {
		return ErrInvalidTransition
	}
	c.State = to
	c.UpdatedAt = now
	return nil
}

// AddMilestone appends an informational funding threshold.
func (c *Campaign) AddMilestone(caller common.Address, fundingLevel decimal.Decimal, description string, now time.Time) error {
	if caller != c.Owner {
		return ErrNotOwner
	}
	if !validWei(fundingLevel) {
		return ErrInvalidAmount
	}
	c.Milestones = append(c.Milestones, Milestone{
		FundingLevel: fundingLevel,
		Description:  description,
		CreatedAt:    now,
	})
	c.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so a failed operation can be discarded without
// touching the stored aggregate.
func (c *Campaign) Clone() *Campaign {
	cp := *c
	cp.Donations = append([]Donation(nil), c.Donations...)
	cp.Milestones = append([]Milestone(nil), c.Milestones...)
	return &cp
}
