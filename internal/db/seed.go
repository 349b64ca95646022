package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// DemoOwner owns every seeded campaign.
var DemoOwner = common.HexToAddress("0x00000000000000000000000000000000000d3a00")

var demoCategories = []string{"education", "health", "technology", "art"}

// Seed creates demo campaigns with a few donations and milestones. It goes
// through the use case, so it works with every storage driver and produces
// the same records a client would.
func Seed(ctx context.Context, svc port.CampaignUseCase, now time.Time) error {
	r := rand.New(rand.NewSource(now.UnixNano()))
	oneEther := decimal.New(1, domain.EtherDecimals)

	for i := 1; i <= 5; i++ {
		id, err := svc.CreateCampaign(ctx, domain.Draft{
			Owner:       DemoOwner,
			Title:       fmt.Sprintf("Campaign %d", i),
			Description: fmt.Sprintf("Demo campaign number %d", i),
			Category:    demoCategories[r.Intn(len(demoCategories))],
			Image:       fmt.Sprintf("https://example.com/images/%d.png", i),
			Target:      oneEther.Mul(decimal.NewFromInt(int64(5 * i))),
			Deadline:    now.AddDate(0, 1, 0),
		})
		if err != nil {
			return fmt.Errorf("seed campaign %d: %w", i, err)
		}

		err = svc.AddMilestone(ctx, id, DemoOwner, oneEther.Mul(decimal.NewFromInt(int64(i))), "first milestone")
		if err != nil {
			return fmt.Errorf("seed milestone %d: %w", id, err)
		}

		for j := 0; j < 3; j++ {
			donor := common.BigToAddress(decimal.NewFromInt(int64(0xd0000 + i*10 + j)).BigInt())
			amount := oneEther.Div(decimal.NewFromInt(int64(r.Intn(9) + 2))).Floor()
			if _, err = svc.Donate(ctx, id, donor, amount); err != nil {
				return fmt.Errorf("seed donation %d: %w", id, err)
			}
		}
	}
	return nil
}
