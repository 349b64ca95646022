package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
	"crowdfund/internal/core/port/mocks"
)

var (
	owner = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	donor = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	now   = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo port.CampaignRepository, payouts port.PayoutRepository, clock *time.Time) *CampaignUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCampaignUseCase(repo, payouts, port.ClockFunc(func() time.Time { return *clock }), logger)
}

func fixture(t *testing.T) *domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(domain.Draft{
		Owner:    owner,
		Title:    "Title",
		Target:   decimal.NewFromInt(1000),
		Deadline: now.Add(24 * time.Hour),
	}, now)
	require.NoError(t, err)
	c.ID = 7
	return c
}

// applyTo makes UpdateCampaign run the mutation against c the way a
// repository would: on a copy that replaces c only on success.
func applyTo(c *domain.Campaign, stored *[]domain.Payout) func(context.Context, int64, port.MutateFunc) error {
	return func(_ context.Context, _ int64, fn port.MutateFunc) error {
		cp := c.Clone()
		payouts, err := fn(cp)
		if err != nil {
			return err
		}
		*c = *cp
		if stored != nil {
			*stored = append(*stored, payouts...)
		}
		return nil
	}
}

func TestCreateCampaign(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	clock := now

	repo.EXPECT().
		CreateCampaign(mock.Anything, mock.AnythingOfType("*domain.Campaign")).
		Run(func(ctx context.Context, c *domain.Campaign) {
			assert.Equal(t, owner, c.Owner)
			assert.Equal(t, domain.StateActive, c.State)
		}).
		Return(int64(0), nil)

	svc := newTestUseCase(repo, nil, &clock)
	id, err := svc.CreateCampaign(context.Background(), domain.Draft{
		Owner:    owner,
		Title:    "Title",
		Target:   decimal.NewFromInt(1000),
		Deadline: now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)
}

// TestCreateCampaignPastDeadline ensures validation happens before the
// repository is touched.
func TestCreateCampaignPastDeadline(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	clock := now

	svc := newTestUseCase(repo, nil, &clock)
	_, err := svc.CreateCampaign(context.Background(), domain.Draft{
		Owner:    owner,
		Target:   decimal.NewFromInt(1000),
		Deadline: now.Add(-time.Hour),
	})
	require.ErrorIs(t, err, domain.ErrInvalidDeadline)
}

func TestDonateUsesCurrentClock(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(applyTo(c, nil))

	svc := newTestUseCase(repo, nil, &clock)
	_, err := svc.Donate(context.Background(), 7, donor, decimal.NewFromInt(400))
	require.NoError(t, err)

	clock = c.Deadline.Add(time.Second)
	_, err = svc.Donate(context.Background(), 7, donor, decimal.NewFromInt(400))
	require.ErrorIs(t, err, domain.ErrDeadlinePassed)

	assert.True(t, c.AmountCollected.Equal(decimal.NewFromInt(400)))
	assert.Len(t, c.Donations, 1)
}

// TestDonateReturnsSnapshot checks the returned campaign reflects the
// donation and does not follow later writes.
func TestDonateReturnsSnapshot(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(applyTo(c, nil))

	svc := newTestUseCase(repo, nil, &clock)
	ctx := context.Background()

	first, err := svc.Donate(ctx, 7, donor, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = svc.Donate(ctx, 7, owner, decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.True(t, first.AmountCollected.Equal(decimal.NewFromInt(100)))
	require.Len(t, first.Donations, 1)
	assert.Equal(t, donor, first.Donations[0].Donor)
	assert.True(t, c.AmountCollected.Equal(decimal.NewFromInt(300)))

	_, err = svc.Donate(ctx, 7, donor, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPausedDonationLeavesCampaignUntouched(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(applyTo(c, nil))

	svc := newTestUseCase(repo, nil, &clock)
	ctx := context.Background()

	require.NoError(t, svc.ChangeState(ctx, 7, owner, domain.StatePaused))
	_, err := svc.Donate(ctx, 7, donor, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domain.ErrCampaignPaused)
	assert.Equal(t, domain.StatePaused, c.State)
	assert.Empty(t, c.Donations)

	require.NoError(t, svc.Resume(ctx, 7, owner))
	_, err = svc.Donate(ctx, 7, donor, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, domain.StateActive, c.State)
}

func TestRefundQueuesPayouts(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now
	var stored []domain.Payout

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(applyTo(c, &stored))

	svc := newTestUseCase(repo, nil, &clock)
	ctx := context.Background()
	_, err := svc.Donate(ctx, 7, donor, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = svc.Donate(ctx, 7, donor, decimal.NewFromInt(50))
	require.NoError(t, err)

	_, err = svc.Refund(ctx, 7, owner)
	require.ErrorIs(t, err, domain.ErrDeadlineNotReached)

	clock = c.Deadline.Add(time.Minute)
	payouts, err := svc.Refund(ctx, 7, owner)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, donor, payouts[0].Recipient)
	assert.True(t, payouts[0].Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, payouts, stored)
	assert.True(t, c.AmountCollected.IsZero())
}

func TestWithdrawQueuesSinglePayout(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now
	var stored []domain.Payout

	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(applyTo(c, &stored))

	svc := newTestUseCase(repo, nil, &clock)
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, 7, owner)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Donate(ctx, 7, donor, decimal.NewFromInt(1000))
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, 7, owner))

	p, err := svc.Withdraw(ctx, 7, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.PayoutWithdrawal, p.Kind)
	assert.Equal(t, owner, p.Recipient)
	require.Len(t, stored, 1)
	assert.Equal(t, p.ID, stored[0].ID)

	_, err = svc.Withdraw(ctx, 7, owner)
	require.ErrorIs(t, err, domain.ErrAlreadyWithdrawn)
	assert.Len(t, stored, 1)
}

func TestReadAccessors(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	payouts := mocks.NewMockPayoutRepository(t)
	c := fixture(t)
	clock := now
	require.NoError(t, c.Donate(donor, decimal.NewFromInt(5), now))
	require.NoError(t, c.AddMilestone(owner, decimal.NewFromInt(500), "half way", now))

	repo.EXPECT().GetCampaign(mock.Anything, int64(7)).Return(c, nil)
	repo.EXPECT().GetCampaign(mock.Anything, int64(8)).Return(nil, domain.ErrNotFound)
	payouts.EXPECT().
		ListPayouts(mock.Anything, mock.MatchedBy(func(f port.PayoutFilter) bool {
			return f.CampaignID != nil && *f.CampaignID == 7
		})).
		Return([]domain.Payout{}, nil)

	svc := newTestUseCase(repo, payouts, &clock)
	ctx := context.Background()

	donations, err := svc.GetDonations(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, donations, 1)

	milestones, err := svc.GetMilestones(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "half way", milestones[0].Description)

	list, err := svc.GetPayouts(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.GetDonations(ctx, 8)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetPayouts(ctx, 8)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestConcurrentDonations ensures donations applied through a serializing
// repository are all accounted for exactly once.
func TestConcurrentDonations(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := fixture(t)
	clock := now

	// Serialise access the way a row lock would.
	var mu sync.Mutex
	apply := applyTo(c, nil)
	repo.EXPECT().
		UpdateCampaign(mock.Anything, int64(7), mock.Anything).
		RunAndReturn(func(ctx context.Context, id int64, fn port.MutateFunc) error {
			mu.Lock()
			defer mu.Unlock()
			return apply(ctx, id, fn)
		})

	svc := newTestUseCase(repo, nil, &clock)

	wg := sync.WaitGroup{}
	count := 10
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, _ = svc.Donate(context.Background(), 7, donor, decimal.NewFromInt(3))
		}()
	}
	wg.Wait()

	if !c.AmountCollected.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected amount after concurrency: got %s, want 30", c.AmountCollected)
	}
	if len(c.Donations) != count {
		t.Fatalf("unexpected donation count: got %d, want %d", len(c.Donations), count)
	}
}
