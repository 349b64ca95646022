package postgres

import (
	"context"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
	"crowdfund/internal/db"
)

var (
	owner = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	donor = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

// newTestRepository connects to the database named by PSQL_TEST_ADDRESS,
// migrates it and empties every table.
func newTestRepository(t *testing.T) *CampaignRepository {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("set PSQL_TEST_ADDRESS to run postgres tests")
	}
	u, err := url.Parse(addr)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(addr))

	ctx := context.Background()
	pool, err := db.NewPostgresPool(ctx, configs.Postgres{Addr: *u, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE payouts, milestones, donations, campaigns`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE campaign_ids SET next_id = 0`)
	require.NoError(t, err)
	return NewCampaignRepository(pool)
}

func newCampaign(t *testing.T, now time.Time) *domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(domain.Draft{
		Owner:    owner,
		Title:    "Title",
		Category: "education",
		Target:   decimal.RequireFromString("1000000000000000000"),
		Deadline: now.Add(time.Hour),
	}, now)
	require.NoError(t, err)
	return c
}

func TestCampaignRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	id, err := repo.CreateCampaign(ctx, newCampaign(t, now))
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	err = repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		if err := c.AddMilestone(owner, decimal.NewFromInt(500), "halfway", now); err != nil {
			return nil, err
		}
		return nil, c.Donate(donor, decimal.RequireFromString("100000000000000000"), now)
	})
	require.NoError(t, err)

	c, err := repo.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, owner, c.Owner)
	assert.Equal(t, domain.StateActive, c.State)
	assert.True(t, c.Target.Equal(decimal.RequireFromString("1000000000000000000")))
	assert.True(t, c.AmountCollected.Equal(decimal.RequireFromString("100000000000000000")))
	require.Len(t, c.Donations, 1)
	assert.Equal(t, donor, c.Donations[0].Donor)
	require.Len(t, c.Milestones, 1)
	assert.Equal(t, "halfway", c.Milestones[0].Description)
	assert.True(t, c.Deadline.Equal(now.Add(time.Hour)))

	_, err = repo.GetCampaign(ctx, 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, repo.UpdateCampaign(ctx, 99, nil), domain.ErrNotFound)

	list, err := repo.ListCampaigns(ctx, port.CampaignFilter{Owner: &donor})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// TestFailedInsertKeepsIDsSequential checks a rejected insert does not
// consume an id.
func TestFailedInsertKeepsIDsSequential(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	broken := newCampaign(t, now)
	broken.Target = decimal.Zero
	_, err := repo.CreateCampaign(ctx, broken)
	require.Error(t, err)

	for want := int64(0); want < 3; want++ {
		id, err := repo.CreateCampaign(ctx, newCampaign(t, now))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestGuardErrorRollsBack(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()
	id, err := repo.CreateCampaign(ctx, newCampaign(t, now))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.Pause(owner, now)
	}))
	err = repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		return nil, c.Donate(donor, decimal.NewFromInt(1), now)
	})
	require.ErrorIs(t, err, domain.ErrCampaignPaused)

	c, err := repo.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatePaused, c.State)
	assert.Empty(t, c.Donations)
}

func TestRefundPersistsZeroedDonationsAndPayouts(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()
	id, err := repo.CreateCampaign(ctx, newCampaign(t, now))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
			return nil, c.Donate(donor, decimal.NewFromInt(10), now)
		}))
	}
	later := now.Add(2 * time.Hour)
	require.NoError(t, repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
		return c.Refund(owner, later)
	}))

	c, err := repo.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.True(t, c.AmountCollected.IsZero())
	require.Len(t, c.Donations, 2)
	assert.True(t, c.Donations[0].Amount.IsZero())

	pending, err := repo.ListPayouts(ctx, port.PayoutFilter{CampaignID: &id, Status: domain.PayoutPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Amount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, donor, pending[0].Recipient)

	claimed, err := repo.ClaimPayout(ctx, pending[0].ID, later)
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = repo.ClaimPayout(ctx, pending[0].ID, later)
	require.NoError(t, err)
	assert.False(t, claimed)
	_, err = repo.ClaimPayout(ctx, domain.NewPayout(id, domain.PayoutRefund, donor, decimal.NewFromInt(1), later).ID, later)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.MarkPayoutSent(ctx, pending[0].ID, "0xabc", later))
	sent, err := repo.ListPayouts(ctx, port.PayoutFilter{Status: domain.PayoutSent, Limit: 5})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "0xabc", sent[0].TxHash)
}

func TestConcurrentDonations(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()
	id, err := repo.CreateCampaign(ctx, newCampaign(t, now))
	require.NoError(t, err)

	wg := sync.WaitGroup{}
	count := 4
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			err := repo.UpdateCampaign(ctx, id, func(c *domain.Campaign) ([]domain.Payout, error) {
				return nil, c.Donate(donor, decimal.NewFromInt(5), now)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := repo.GetCampaign(ctx, id)
	require.NoError(t, err)
	assert.Len(t, c.Donations, count)
	assert.True(t, c.AmountCollected.Equal(decimal.NewFromInt(20)))
}
