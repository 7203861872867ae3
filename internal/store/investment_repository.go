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

// PostgresInvestmentRepository implements InvestmentStore on PostgreSQL.
type PostgresInvestmentRepository struct {
	db       *pgxpool.Pool
	logger   *zap.Logger
	notifier notifier[domain.PersonalInvestment]
}

const investmentColumns = `id, amount, cycle_days, start_date, expiration, status,
	earnings, cycle_count, total_earned`

func scanInvestment(row pgx.Row) (domain.PersonalInvestment, error) {
	var inv domain.PersonalInvestment
	err := row.Scan(
		&inv.ID, &inv.Amount, &inv.CycleDays, &inv.StartDate, &inv.Expiration,
		&inv.Status, &inv.Earnings, &inv.CycleCount, &inv.TotalEarned,
	)
	return inv, err
}

// List returns all personal investments in creation order.
func (r *PostgresInvestmentRepository) List(ctx context.Context) ([]domain.PersonalInvestment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var invs []domain.PersonalInvestment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

// Create persists an investment, assigning an id when absent.
func (r *PostgresInvestmentRepository) Create(ctx context.Context, inv domain.PersonalInvestment) (domain.PersonalInvestment, error) {
	if inv.ID == "" {
		inv.ID = newID("inv")
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO investments (`+investmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.ID, inv.Amount, inv.CycleDays, inv.StartDate, inv.Expiration,
		inv.Status, inv.Earnings, inv.CycleCount, inv.TotalEarned,
	)
	if err != nil {
		return domain.PersonalInvestment{}, fmt.Errorf("failed to create investment: %w", err)
	}

	r.publish(ctx)
	return inv, nil
}

// Update loads the investment inside a transaction, applies mutate and writes
// the result back.
func (r *PostgresInvestmentRepository) Update(ctx context.Context, id string, mutate func(*domain.PersonalInvestment) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvestment(tx.QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load investment %s: %w", id, err)
	}

	if err := mutate(&inv); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE investments SET amount = $2, cycle_days = $3, start_date = $4,
			expiration = $5, status = $6, earnings = $7, cycle_count = $8,
			total_earned = $9
		WHERE id = $1`,
		inv.ID, inv.Amount, inv.CycleDays, inv.StartDate, inv.Expiration,
		inv.Status, inv.Earnings, inv.CycleCount, inv.TotalEarned,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit investment update: %w", err)
	}

	r.publish(ctx)
	return nil
}

// Delete removes an investment by id.
func (r *PostgresInvestmentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.publish(ctx)
	return nil
}

// Subscribe registers a live feed, firing immediately with the current
// snapshot.
func (r *PostgresInvestmentRepository) Subscribe(fn func([]domain.PersonalInvestment)) func() {
	unsubscribe := r.notifier.subscribe(fn)
	if invs, err := r.List(context.Background()); err == nil {
		fn(invs)
	}
	return unsubscribe
}

func (r *PostgresInvestmentRepository) publish(ctx context.Context) {
	invs, err := r.List(ctx)
	if err != nil {
		r.logger.Warn("failed to publish investment snapshot", zap.Error(err))
		return
	}
	r.notifier.publish(invs)
}
