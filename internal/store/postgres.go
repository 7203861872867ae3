package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/config"
)

// PostgresStore backs the dashboard with PostgreSQL via pgx. Subscriptions
// are served in-process: after every successful write the repository re-lists
// the collection and pushes the snapshot to local subscribers.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger

	referrals   *PostgresReferralRepository
	investments *PostgresInvestmentRepository
	leads       *PostgresLeadRepository
}

// OpenPostgres connects to the configured database and runs pending
// migrations.
func OpenPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := RunMigrations(cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	ps := &PostgresStore{db: pool, logger: logger}
	ps.referrals = &PostgresReferralRepository{db: pool, logger: logger}
	ps.investments = &PostgresInvestmentRepository{db: pool, logger: logger}
	ps.leads = &PostgresLeadRepository{db: pool, logger: logger}

	logger.Info("connected to postgres",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name))
	return ps, nil
}

// Referrals returns the referral repository.
func (ps *PostgresStore) Referrals() ReferralStore { return ps.referrals }

// Investments returns the personal investment repository.
func (ps *PostgresStore) Investments() InvestmentStore { return ps.investments }

// Leads returns the lead repository.
func (ps *PostgresStore) Leads() LeadStore { return ps.leads }

// Close releases the connection pool.
func (ps *PostgresStore) Close() error {
	ps.db.Close()
	return nil
}

// newID generates a record identifier with a type prefix.
func newID(prefix string) string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("id generation failed: %v", err))
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(buf))
}

// notifier fans collection snapshots out to in-process subscribers.
type notifier[T any] struct {
	mu      sync.Mutex
	subs    map[int]func([]T)
	nextSub int
}

func (n *notifier[T]) subscribe(fn func([]T)) func() {
	n.mu.Lock()
	if n.subs == nil {
		n.subs = make(map[int]func([]T))
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier[T]) publish(snapshot []T) {
	n.mu.Lock()
	subs := make([]func([]T), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
