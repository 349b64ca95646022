package db

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdfund/internal/adapter/memory"
	"crowdfund/internal/adapter/usecase"
	"crowdfund/internal/core/port"
)

func TestSeed(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := memory.NewRepository()
	svc := usecase.NewCampaignUseCase(repo, repo, port.ClockFunc(func() time.Time { return now }),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, Seed(context.Background(), svc, now))

	list, err := svc.ListCampaigns(context.Background(), port.CampaignFilter{Owner: &DemoOwner})
	require.NoError(t, err)
	require.Len(t, list, 5)
	for _, c := range list {
		assert.True(t, c.AmountCollected.IsPositive())
		assert.True(t, c.AmountCollected.LessThan(c.Target))

		donations, err := svc.GetDonations(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Len(t, donations, 3)
	}
}
