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

// PostgresLeadRepository implements LeadStore on PostgreSQL.
type PostgresLeadRepository struct {
	db       *pgxpool.Pool
	logger   *zap.Logger
	notifier notifier[domain.Lead]
}

const leadColumns = `id, name, phone, email, status, notes, contact_date, last_contact, source`

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Status,
		&lead.Notes, &lead.ContactDate, &lead.LastContact, &lead.Source,
	)
	return lead, err
}

// List returns all leads in creation order.
func (r *PostgresLeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// Create persists a lead, assigning an id when absent.
func (r *PostgresLeadRepository) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.ID == "" {
		lead.ID = newID("lead")
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.Status,
		lead.Notes, lead.ContactDate, lead.LastContact, lead.Source,
	)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("failed to create lead: %w", err)
	}

	r.publish(ctx)
	return lead, nil
}

// Update loads the lead inside a transaction, applies mutate and writes the
// result back. Lead status transitions form a free graph, so no transition
// validation happens here.
func (r *PostgresLeadRepository) Update(ctx context.Context, id string, mutate func(*domain.Lead) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lead, err := scanLead(tx.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to load lead %s: %w", id, err)
	}

	if err := mutate(&lead); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE leads SET name = $2, phone = $3, email = $4, status = $5,
			notes = $6, contact_date = $7, last_contact = $8, source = $9
		WHERE id = $1`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.Status,
		lead.Notes, lead.ContactDate, lead.LastContact, lead.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead %s: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit lead update: %w", err)
	}

	r.publish(ctx)
	return nil
}

// Delete removes a lead by id.
func (r *PostgresLeadRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	r.publish(ctx)
	return nil
}

// Subscribe registers a live feed, firing immediately with the current
// snapshot.
func (r *PostgresLeadRepository) Subscribe(fn func([]domain.Lead)) func() {
	unsubscribe := r.notifier.subscribe(fn)
	if leads, err := r.List(context.Background()); err == nil {
		fn(leads)
	}
	return unsubscribe
}

func (r *PostgresLeadRepository) publish(ctx context.Context) {
	leads, err := r.List(ctx)
	if err != nil {
		r.logger.Warn("failed to publish lead snapshot", zap.Error(err))
		return
	}
	r.notifier.publish(leads)
}
