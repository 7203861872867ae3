// Package store provides the persistence ports behind the dashboard: one
// CRUD + subscribe store per entity type, with interchangeable memory and
// PostgreSQL drivers selected by configuration. The calculation core never
// imports this package; callers feed store snapshots into it.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/config"
	"github.com/refdash/refdash/internal/domain"
)

// ReferralStore is the persistence port for referral records.
type ReferralStore interface {
	List(ctx context.Context) ([]domain.Referral, error)
	Create(ctx context.Context, ref domain.Referral) (domain.Referral, error)
	Update(ctx context.Context, id string, mutate func(*domain.Referral) error) error
	Delete(ctx context.Context, id string) error
	// Subscribe registers a live collection feed. The callback fires once
	// with the current snapshot and again after every successful write. The
	// returned function cancels the subscription.
	Subscribe(fn func([]domain.Referral)) (unsubscribe func())
}

// InvestmentStore is the persistence port for personal investments.
type InvestmentStore interface {
	List(ctx context.Context) ([]domain.PersonalInvestment, error)
	Create(ctx context.Context, inv domain.PersonalInvestment) (domain.PersonalInvestment, error)
	Update(ctx context.Context, id string, mutate func(*domain.PersonalInvestment) error) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]domain.PersonalInvestment)) (unsubscribe func())
}

// LeadStore is the persistence port for pipeline leads.
type LeadStore interface {
	List(ctx context.Context) ([]domain.Lead, error)
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	Update(ctx context.Context, id string, mutate func(*domain.Lead) error) error
	Delete(ctx context.Context, id string) error
	Subscribe(fn func([]domain.Lead)) (unsubscribe func())
}

// Store bundles the per-entity stores behind one handle.
type Store interface {
	Referrals() ReferralStore
	Investments() InvestmentStore
	Leads() LeadStore
	Close() error
}

// ErrNotFound is returned when an id does not exist in a store.
var ErrNotFound = fmt.Errorf("record not found")

// Open selects and initializes the configured storage driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return OpenMemory(cfg.Storage.SnapshotPath, logger)
	case "postgres":
		return OpenPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
