package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"crowdfund/internal/core/domain"
	"crowdfund/internal/core/port"
)

// serializationFailure is the SQLSTATE of a transaction aborted by a
// concurrent update under SERIALIZABLE isolation.
const serializationFailure = "40001"

const maxAttempts = 5

// Amounts are NUMERIC(78,0) and cross the wire as text.
const campaignColumns = `id, owner, title, description, category, image, target::text, deadline,
amount_collected::text, state, withdrawn, created_at, updated_at`

const payoutColumns = `id::text, campaign_id, kind, recipient, amount::text, status, tx_hash, reason,
created_at, updated_at`

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CampaignRepository implements port.CampaignRepository and
// port.PayoutRepository using pgxpool for PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// CreateCampaign inserts c under the next id from campaign_ids. The
// counter row is locked and advanced in the same transaction as the
// insert, so concurrent creates queue up and a failed insert leaves no gap.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign) (id int64, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `UPDATE campaign_ids SET next_id = next_id + 1 RETURNING next_id - 1`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("allocate campaign id: %w", err)
	}
	_, err = tx.Exec(ctx, `INSERT INTO campaigns
    (id, owner, title, description, category, image, target, deadline, amount_collected, state, withdrawn, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8,$9::numeric,$10,$11,$12,$13)`,
		id, c.Owner.Hex(), c.Title, c.Description, c.Category, c.Image, c.Target.String(), c.Deadline,
		c.AmountCollected.String(), string(c.State), c.Withdrawn, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert campaign: %w", err)
	}
	return id, nil
}

// GetCampaign returns a campaign with its donations and milestones.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	return loadCampaign(ctx, r.pool, id, false)
}

// ListCampaigns returns campaign summaries ordered by id.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	var args []any
	where := ""
	if filter.Owner != nil {
		where = "WHERE owner = $1"
		args = append(args, filter.Owner.Hex())
	}
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM campaigns %s ORDER BY id`, campaignColumns, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return list, nil
}

// UpdateCampaign locks the campaign row, applies fn and persists the
// difference together with the payouts fn returns. Transactions aborted by a
// concurrent writer are retried.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, id int64, fn port.MutateFunc) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = r.updateOnce(ctx, id, fn)
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != serializationFailure {
			return err
		}
	}
	return err
}

func (r *CampaignRepository) updateOnce(ctx context.Context, id int64, fn port.MutateFunc) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	c, err := loadCampaign(ctx, tx, id, true)
	if err != nil {
		return err
	}
	before := c.Clone()
	payouts, err := fn(c)
	if err != nil {
		return err
	}

	b := diffBatch(before, c, payouts)
	br := tx.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err = br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("persist campaign %d: %w", id, err)
		}
	}
	return br.Close()
}

// diffBatch queues the statements that turn before into c: the campaign
// row, new or changed donations, new milestones and the queued payouts.
func diffBatch(before, c *domain.Campaign, payouts []domain.Payout) *pgx.Batch {
	b := &pgx.Batch{}
	b.Queue(`UPDATE campaigns SET title = $2, description = $3, image = $4, target = $5::numeric, deadline = $6,
    amount_collected = $7::numeric, state = $8, withdrawn = $9, updated_at = $10 WHERE id = $1`,
		c.ID, c.Title, c.Description, c.Image, c.Target.String(), c.Deadline,
		c.AmountCollected.String(), string(c.State), c.Withdrawn, c.UpdatedAt)
	for i, d := range c.Donations {
		switch {
		case i >= len(before.Donations):
			b.Queue(`INSERT INTO donations (campaign_id, seq, donor, amount, created_at) VALUES ($1,$2,$3,$4::numeric,$5)`,
				c.ID, i, d.Donor.Hex(), d.Amount.String(), d.CreatedAt)
		case !d.Amount.Equal(before.Donations[i].Amount):
			b.Queue(`UPDATE donations SET amount = $3::numeric WHERE campaign_id = $1 AND seq = $2`,
				c.ID, i, d.Amount.String())
		}
	}
	for i := len(before.Milestones); i < len(c.Milestones); i++ {
		m := c.Milestones[i]
		b.Queue(`INSERT INTO milestones (campaign_id, seq, funding_level, description, created_at) VALUES ($1,$2,$3::numeric,$4,$5)`,
			c.ID, i, m.FundingLevel.String(), m.Description, m.CreatedAt)
	}
	for _, p := range payouts {
		b.Queue(`INSERT INTO payouts (id, campaign_id, kind, recipient, amount, status, tx_hash, reason, created_at, updated_at)
VALUES ($1::uuid,$2,$3,$4,$5::numeric,$6,$7,$8,$9,$10)`,
			p.ID.String(), p.CampaignID, string(p.Kind), p.Recipient.Hex(), p.Amount.String(), string(p.Status),
			p.TxHash, p.Reason, p.CreatedAt, p.UpdatedAt)
	}
	return b
}

func loadCampaign(ctx context.Context, q querier, id int64, forUpdate bool) (*domain.Campaign, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaigns WHERE id = $1`, campaignColumns)
	if forUpdate {
		query += " FOR UPDATE"
	}
	c, err := scanCampaign(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}

	rows, err := q.Query(ctx, `SELECT donor, amount::text, created_at FROM donations WHERE campaign_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get donations %d: %w", id, err)
	}
	c.Donations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Donation, error) {
		var (
			d             domain.Donation
			donor, amount string
		)
		if err := row.Scan(&donor, &amount, &d.CreatedAt); err != nil {
			return d, err
		}
		d.Donor = common.HexToAddress(donor)
		d.CreatedAt = d.CreatedAt.UTC()
		v, err := decimal.NewFromString(amount)
		d.Amount = v
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("get donations %d: %w", id, err)
	}

	rows, err = q.Query(ctx, `SELECT funding_level::text, description, created_at FROM milestones WHERE campaign_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("get milestones %d: %w", id, err)
	}
	c.Milestones, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Milestone, error) {
		var (
			m     domain.Milestone
			level string
		)
		if err := row.Scan(&level, &m.Description, &m.CreatedAt); err != nil {
			return m, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		v, err := decimal.NewFromString(level)
		m.FundingLevel = v
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("get milestones %d: %w", id, err)
	}
	return c, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                        domain.Campaign
		owner, target, collected string
		state                    string
	)
	err := row.Scan(&c.ID, &owner, &c.Title, &c.Description, &c.Category, &c.Image, &target, &c.Deadline,
		&collected, &state, &c.Withdrawn, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Owner = common.HexToAddress(owner)
	c.State = domain.State(state)
	c.Deadline = c.Deadline.UTC()
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	if c.Target, err = decimal.NewFromString(target); err != nil {
		return nil, err
	}
	if c.AmountCollected, err = decimal.NewFromString(collected); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListPayouts returns payouts matching filter ordered by creation time.
func (r *CampaignRepository) ListPayouts(ctx context.Context, filter port.PayoutFilter) ([]domain.Payout, error) {
	var (
		conds []string
		args  []any
	)
	if filter.CampaignID != nil {
		args = append(args, *filter.CampaignID)
		conds = append(conds, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM payouts", payoutColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	payouts, err := pgx.CollectRows(rows, scanPayout)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return payouts, nil
}

func scanPayout(row pgx.CollectableRow) (domain.Payout, error) {
	var (
		p                     domain.Payout
		id, recipient, amount string
		kind, status          string
	)
	err := row.Scan(&id, &p.CampaignID, &kind, &recipient, &amount, &status, &p.TxHash, &p.Reason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if p.ID, err = uuid.Parse(id); err != nil {
		return p, err
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return p, err
	}
	p.Kind = domain.PayoutKind(kind)
	p.Status = domain.PayoutStatus(status)
	p.Recipient = common.HexToAddress(recipient)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

// ClaimPayout moves a pending payout to sending. It reports false when
// the payout exists but is no longer pending.
func (r *CampaignRepository) ClaimPayout(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	var claimed bool
	err := r.pool.QueryRow(ctx, `WITH claimed AS (
    UPDATE payouts SET status = 'sending', updated_at = $2 WHERE id = $1::uuid AND status = 'pending' RETURNING id
)
SELECT TRUE FROM claimed
UNION ALL
SELECT FALSE FROM payouts WHERE id = $1::uuid AND NOT EXISTS (SELECT 1 FROM claimed)`,
		id.String(), at).Scan(&claimed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("claim payout: %w", err)
	}
	return claimed, nil
}

// MarkPayoutSent records a successful transfer.
func (r *CampaignRepository) MarkPayoutSent(ctx context.Context, id uuid.UUID, txHash string, at time.Time) error {
	return r.settle(ctx, `UPDATE payouts SET status = 'sent', tx_hash = $2, reason = '', updated_at = $3 WHERE id = $1::uuid`,
		id.String(), txHash, at)
}

// MarkPayoutFailed records a failed transfer.
func (r *CampaignRepository) MarkPayoutFailed(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	return r.settle(ctx, `UPDATE payouts SET status = 'failed', reason = $2, updated_at = $3 WHERE id = $1::uuid`,
		id.String(), reason, at)
}

func (r *CampaignRepository) settle(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
