package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/domain"
)

// PostgresReferralRepository implements ReferralStore on PostgreSQL.
type PostgresReferralRepository struct {
	db       *pgxpool.Pool
	logger   *zap.Logger
	notifier notifier[domain.Referral]
}

const referralColumns = `id, name, wallet, generation, amount, cycle_days, start_date,
	expiration, status, referrer_id, earnings, user_income, cycle_count, total_earned`

func scanReferral(row pgx.Row) (domain.Referral, error) {
	var ref domain.Referral
	err := row.Scan(
		&ref.ID, &ref.Name, &ref.Wallet, &ref.Generation, &ref.Amount,
		&ref.CycleDays, &ref.StartDate, &ref.Expiration, &ref.Status,
		&ref.ReferrerID, &ref.Earnings, &ref.UserIncome, &ref.CycleCount,
		&ref.TotalEarned,
	)
	return ref, err
}

// List returns all referrals in creation order.
func (r *PostgresReferralRepository) List(ctx context.Context) ([]domain.Referral, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+referralColumns+` FROM referrals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer rows.Close()

	var refs []domain.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan referral: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// Create persists a referral, assigning an id when absent.
func (r *PostgresReferralRepository) Create(ctx context.Context, ref domain.Referral) (domain.Referral, error) {
	if ref.ID == "" {
		ref.ID = newID("ref")
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO referrals (`+referralColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		ref.ID, ref.Name, ref.Wallet, ref.Generation, ref.Amount,
		ref.CycleDays, ref.StartDate, ref.Expiration, ref.Status,
		ref.ReferrerID, ref.Earnings, ref.UserIncome, ref.CycleCount,
		ref.TotalEarned,
	)
	if err != nil {
		return domain.Referral{}, fmt.Errorf("failed to create referral: %w", err)
	}

	r.publish(ctx)
	return ref, nil
}

// Update loads the referral inside a transaction, applies mutate and writes
// the result back.
func (r *PostgresReferralRepository) Update(ctx context.Context, id string, mutate func(*domain.Referral) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	ref, err := scanReferral(tx.QueryRow(ctx,
		`SELECT `+referralColumns+` FROM referrals WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load referral %s: %w", id, err)
	}

	if err := mutate(&ref); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE referrals SET name = $2, wallet = $3, generation = $4, amount = $5,
			cycle_days = $6, start_date = $7, expiration = $8, status = $9,
			referrer_id = $10, earnings = $11, user_income = $12,
			cycle_count = $13, total_earned = $14
		WHERE id = $1`,
		ref.ID, ref.Name, ref.Wallet, ref.Generation, ref.Amount,
		ref.CycleDays, ref.StartDate, ref.Expiration, ref.Status,
		ref.ReferrerID, ref.Earnings, ref.UserIncome, ref.CycleCount,
		ref.TotalEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to update referral %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit referral update: %w", err)
	}

	r.publish(ctx)
	return nil
}

// Delete removes a referral by id.
func (r *PostgresReferralRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete referral %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.publish(ctx)
	return nil
}

// Subscribe registers a live feed, firing immediately with the current
// snapshot.
func (r *PostgresReferralRepository) Subscribe(fn func([]domain.Referral)) func() {
	unsubscribe := r.notifier.subscribe(fn)
	if refs, err := r.List(context.Background()); err == nil {
		fn(refs)
	}
	return unsubscribe
}

func (r *PostgresReferralRepository) publish(ctx context.Context) {
	refs, err := r.List(ctx)
	if err != nil {
		r.logger.Warn("failed to publish referral snapshot", zap.Error(err))
		return
	}
	r.notifier.publish(refs)
}
