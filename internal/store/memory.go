package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/domain"
)

// MemoryStore keeps all collections in memory with an optional JSON snapshot
// file. It is the local, single-user mode of the dashboard.
type MemoryStore struct {
	mu           sync.RWMutex
	snapshotPath string
	logger       *zap.Logger
	nextID       int

	referrals   *memCollection[domain.Referral]
	investments *memCollection[domain.PersonalInvestment]
	leads       *memCollection[domain.Lead]
}

// memSnapshot is the on-disk layout of the snapshot file.
type memSnapshot struct {
	NextID      int                         `json:"nextId"`
	Referrals   []domain.Referral           `json:"referrals"`
	Investments []domain.PersonalInvestment `json:"investments"`
	Leads       []domain.Lead               `json:"leads"`
}

// OpenMemory creates a memory store, loading a prior snapshot when the file
// exists. An empty snapshot path disables persistence.
func OpenMemory(snapshotPath string, logger *zap.Logger) (*MemoryStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ms := &MemoryStore{
		snapshotPath: snapshotPath,
		logger:       logger,
		nextID:       1,
	}
	ms.referrals = newMemCollection(ms, "ref",
		func(r domain.Referral) string { return r.ID },
		func(r *domain.Referral, id string) { r.ID = id })
	ms.investments = newMemCollection(ms, "inv",
		func(i domain.PersonalInvestment) string { return i.ID },
		func(i *domain.PersonalInvestment, id string) { i.ID = id })
	ms.leads = newMemCollection(ms, "lead",
		func(l domain.Lead) string { return l.ID },
		func(l *domain.Lead, id string) { l.ID = id })

	if snapshotPath != "" {
		if err := ms.load(); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// Referrals returns the referral store.
func (ms *MemoryStore) Referrals() ReferralStore { return ms.referrals }

// Investments returns the personal investment store.
func (ms *MemoryStore) Investments() InvestmentStore { return ms.investments }

// Leads returns the lead store.
func (ms *MemoryStore) Leads() LeadStore { return ms.leads }

// Close writes a final snapshot when persistence is enabled.
func (ms *MemoryStore) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.persistLocked()
}

// Seed replaces all collections with the given records, assigning ids where
// missing, and notifies subscribers. Used when importing a portfolio file.
func (ms *MemoryStore) Seed(referrals []domain.Referral, investments []domain.PersonalInvestment, leads []domain.Lead) error {
	ms.referrals.replace(referrals)
	ms.investments.replace(investments)
	ms.leads.replace(leads)

	ms.mu.Lock()
	err := ms.persistLocked()
	ms.mu.Unlock()
	if err != nil {
		return err
	}

	ms.referrals.notify()
	ms.investments.notify()
	ms.leads.notify()
	return nil
}

func (ms *MemoryStore) load() error {
	data, err := os.ReadFile(ms.snapshotPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", ms.snapshotPath, err)
	}

	var snap memSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", ms.snapshotPath, err)
	}

	if snap.NextID > 0 {
		ms.nextID = snap.NextID
	}
	ms.referrals.replace(snap.Referrals)
	ms.investments.replace(snap.Investments)
	ms.leads.replace(snap.Leads)
	ms.logger.Info("snapshot loaded",
		zap.String("path", ms.snapshotPath),
		zap.Int("referrals", len(snap.Referrals)),
		zap.Int("investments", len(snap.Investments)),
		zap.Int("leads", len(snap.Leads)))
	return nil
}

// persistLocked writes the snapshot file. Callers hold ms.mu.
func (ms *MemoryStore) persistLocked() error {
	if ms.snapshotPath == "" {
		return nil
	}
	snap := memSnapshot{
		NextID:      ms.nextID,
		Referrals:   ms.referrals.snapshotLocked(),
		Investments: ms.investments.snapshotLocked(),
		Leads:       ms.leads.snapshotLocked(),
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(ms.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", ms.snapshotPath, err)
	}
	return nil
}

func (ms *MemoryStore) allocateID(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, ms.nextID)
	ms.nextID++
	return id
}

// memCollection is one entity collection inside a MemoryStore. Records keep
// insertion order, which the aggregation layer relies on for stable top-N
// ranking.
type memCollection[T any] struct {
	store    *MemoryStore
	idPrefix string
	idOf     func(T) string
	setID    func(*T, string)

	items   []T
	subs    map[int]func([]T)
	nextSub int
}

func newMemCollection[T any](store *MemoryStore, idPrefix string, idOf func(T) string, setID func(*T, string)) *memCollection[T] {
	return &memCollection[T]{
		store:    store,
		idPrefix: idPrefix,
		idOf:     idOf,
		setID:    setID,
		subs:     make(map[int]func([]T)),
	}
}

// List returns a copy of the collection in insertion order.
func (c *memCollection[T]) List(ctx context.Context) ([]T, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()
	return c.snapshotLocked(), nil
}

// Create persists the record, assigning an id when absent, and returns it.
func (c *memCollection[T]) Create(ctx context.Context, item T) (T, error) {
	c.store.mu.Lock()
	if c.idOf(item) == "" {
		c.setID(&item, c.store.allocateID(c.idPrefix))
	}
	c.items = append(c.items, item)
	err := c.store.persistLocked()
	c.store.mu.Unlock()

	if err != nil {
		var zero T
		return zero, err
	}
	c.notify()
	return item, nil
}

// Update applies mutate to the record with the given id.
func (c *memCollection[T]) Update(ctx context.Context, id string, mutate func(*T) error) error {
	c.store.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.store.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := mutate(&c.items[idx]); err != nil {
		c.store.mu.Unlock()
		return err
	}
	err := c.store.persistLocked()
	c.store.mu.Unlock()

	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Delete removes the record with the given id.
func (c *memCollection[T]) Delete(ctx context.Context, id string) error {
	c.store.mu.Lock()
	idx := -1
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.store.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	err := c.store.persistLocked()
	c.store.mu.Unlock()

	if err != nil {
		return err
	}
	c.notify()
	return nil
}

// Subscribe registers a live feed, firing immediately with the current
// snapshot.
func (c *memCollection[T]) Subscribe(fn func([]T)) func() {
	c.store.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	snapshot := c.snapshotLocked()
	c.store.mu.Unlock()

	fn(snapshot)
	return func() {
		c.store.mu.Lock()
		delete(c.subs, id)
		c.store.mu.Unlock()
	}
}

func (c *memCollection[T]) replace(items []T) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.items = nil
	for _, item := range items {
		if c.idOf(item) == "" {
			c.setID(&item, c.store.allocateID(c.idPrefix))
		}
		c.items = append(c.items, item)
	}
}

func (c *memCollection[T]) notify() {
	c.store.mu.RLock()
	snapshot := c.snapshotLocked()
	subs := make([]func([]T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.store.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// snapshotLocked copies the collection. Callers hold ms.mu.
func (c *memCollection[T]) snapshotLocked() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
