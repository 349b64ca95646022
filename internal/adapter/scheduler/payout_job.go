package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"

	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// PayoutJob settles queued refunds and withdrawals. Each run takes a batch
// of pending payouts, claims each one, transfers it on a worker pool and
// records the outcome. A payout is transferred at most once: a failed
// payout stays failed, and one whose outcome could not be recorded stays
// sending until an operator reconciles it.
type PayoutJob struct {
	ctx        context.Context
	payouts    port.PayoutRepository
	transferer port.Transferer
	clock      port.Clock
	cfg        configs.Payout
	pool       *ants.Pool
	logger     *slog.Logger
}

// RunStats summarizes one run of the job.
type RunStats struct {
	Sent    int
	Failed  int
	Skipped int
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeSent
	outcomeFailed
)

// NewPayoutJob creates the job and its worker pool. ctx bounds every run;
// call Close to release the pool.
func NewPayoutJob(ctx context.Context, payouts port.PayoutRepository, transferer port.Transferer,
	clock port.Clock, cfg configs.Payout, logger *slog.Logger,
) (*PayoutJob, error) {
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create payout pool: %w", err)
	}
	return &PayoutJob{
		ctx:        ctx,
		payouts:    payouts,
		transferer: transferer,
		clock:      clock,
		cfg:        cfg,
		pool:       pool,
		logger:     logger.With(slog.String("job", "payout_dispatcher")),
	}, nil
}

func (j *PayoutJob) GetName() string {
	return "payout_dispatcher"
}

func (j *PayoutJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.cfg.Interval)
}

// Execute runs one dispatch and logs the outcome.
func (j *PayoutJob) Execute() {
	stats, err := j.Run(j.ctx)
	if err != nil {
		j.logger.Error("payout run failed", slog.Any("error", err))
		return
	}
	if stats.Sent+stats.Failed+stats.Skipped > 0 {
		j.logger.Info("payout run finished",
			slog.Int("sent", stats.Sent),
			slog.Int("failed", stats.Failed),
			slog.Int("skipped", stats.Skipped))
	}
}

// Run dispatches up to cfg.Batch pending payouts and waits for all of them.
func (j *PayoutJob) Run(ctx context.Context) (RunStats, error) {
	pending, err := j.payouts.ListPayouts(ctx, port.PayoutFilter{Status: domain.PayoutPending, Limit: j.cfg.Batch})
	if err != nil {
		return RunStats{}, fmt.Errorf("list pending payouts: %w", err)
	}

	var (
		wg                    sync.WaitGroup
		sent, failed, skipped atomic.Int64
	)
	for _, p := range pending {
		p := p // per-iteration copy; module targets go 1.21 loop semantics
		wg.Add(1)
		err = j.pool.Submit(func() {
			defer wg.Done()
			switch j.settle(ctx, p) {
			case outcomeSent:
				sent.Add(1)
			case outcomeFailed:
				failed.Add(1)
			default:
				skipped.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			j.logger.Error("failed to submit payout", slog.String("payout_id", p.ID.String()), slog.Any("error", err))
		}
	}
	wg.Wait()
	return RunStats{Sent: int(sent.Load()), Failed: int(failed.Load()), Skipped: int(skipped.Load())}, nil
}

// settle claims p, transfers it and records the result.
func (j *PayoutJob) settle(ctx context.Context, p domain.Payout) outcome {
	log := j.logger.With(
		slog.String("payout_id", p.ID.String()),
		slog.Int64("campaign_id", p.CampaignID),
		slog.String("kind", string(p.Kind)))

	claimed, err := j.payouts.ClaimPayout(ctx, p.ID, j.clock.Now())
	if err != nil {
		log.Error("failed to claim payout", slog.Any("error", err))
		return outcomeSkipped
	}
	if !claimed {
		log.Debug("payout claimed elsewhere")
		return outcomeSkipped
	}

	tctx := ctx
	if j.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, j.cfg.Timeout)
		defer cancel()
	}

	hash, err := j.transferer.Transfer(tctx, p)
	if err != nil {
		log.Warn("payout transfer failed", slog.Any("error", err))
		if err = j.payouts.MarkPayoutFailed(ctx, p.ID, err.Error(), j.clock.Now()); err != nil {
			log.Error("failed to mark payout failed", slog.Any("error", err))
		}
		return outcomeFailed
	}

	// The payout stays sending if this fails, so it is never sent twice.
	if err = j.payouts.MarkPayoutSent(ctx, p.ID, hash, j.clock.Now()); err != nil {
		log.Error("payout sent but not recorded", slog.String("tx_hash", hash), slog.Any("error", err))
	}
	log.Info("payout sent", slog.String("tx_hash", hash), slog.String("amount", p.Amount.String()))
	return outcomeSent
}

// Close releases the worker pool.
func (j *PayoutJob) Close() {
	j.pool.Release()
}
