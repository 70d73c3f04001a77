package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"scaletrend/internal/core/domain"
)

// Storage keys mirror the dashboard's original local persistence: one blob
// for the entry list, one for the goal, both namespaced per user.
const (
	entriesKeyPrefix = "weightData:"
	goalKeyPrefix    = "weightGoal:"
)

var (
	_ domain.EntryRepository = (*EntryRepository)(nil)
	_ domain.GoalRepository  = (*GoalRepository)(nil)
)

// EntryRepository keeps the whole per-user entry list as one JSON blob and
// rewrites it on every mutation. The store is local and single-writer, so a
// mutex is all the coordination the read-modify-write cycle needs.
type EntryRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

func (r *EntryRepository) key(userID string) string {
	return entriesKeyPrefix + userID
}

func (r *EntryRepository) load(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	blob, ok, err := r.store.Load(ctx, r.key(userID))
	if err != nil {
		return nil, err
	}

	if !ok {
		// First visit on this profile: seed the demo ledger.
		entries := sampleEntries(userID)
		if err := r.save(ctx, userID, entries); err != nil {
			return nil, err
		}
		return entries, nil
	}

	var entries []*domain.WeightEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}

func (r *EntryRepository) save(ctx context.Context, userID string, entries []*domain.WeightEntry) error {
	blob, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return r.store.Save(ctx, r.key(userID), blob)
}

func (r *EntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.MaterializeEntries(entries), nil
}

func (r *EntryRepository) Upsert(ctx context.Context, entry *domain.WeightEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, entry.UserID)
	if err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	replaced := false
	for i, e := range entries {
		if e.Date == entry.Date {
			entry.ID = e.ID
			entry.CreatedAt = e.CreatedAt
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	return r.save(ctx, entry.UserID, domain.MaterializeEntries(entries))
}

func (r *EntryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx, userID)
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.Date == date {
			found = true
			continue
		}
		kept = append(kept, e)
	}

	if !found {
		return domain.ErrEntryNotFound
	}

	return r.save(ctx, userID, kept)
}

type GoalRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewGoalRepository(store *Store) *GoalRepository {
	return &GoalRepository{store: store}
}

func (r *GoalRepository) key(userID string) string {
	return goalKeyPrefix + userID
}

// GetByUser seeds the demo goal the first time a profile is read, matching
// the dashboard's behavior of showing sample data instead of an empty state.
func (r *GoalRepository) GetByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blob, ok, err := r.store.Load(ctx, r.key(userID))
	if err != nil {
		return nil, err
	}

	if !ok {
		goal := sampleGoal(userID)
		if err := r.saveLocked(ctx, goal); err != nil {
			return nil, err
		}
		return goal, nil
	}

	var goal domain.Goal
	if err := json.Unmarshal(blob, &goal); err != nil {
		return nil, fmt.Errorf("decode goal: %w", err)
	}
	return &goal, nil
}

func (r *GoalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	blob, ok, err := r.store.Load(ctx, r.key(goal.UserID))
	if err != nil {
		return err
	}
	if ok {
		var existing domain.Goal
		if err := json.Unmarshal(blob, &existing); err == nil {
			goal.ID = existing.ID
			goal.StartDate = existing.StartDate
			goal.CreatedAt = existing.CreatedAt
		}
	}

	return r.saveLocked(ctx, goal)
}

func (r *GoalRepository) saveLocked(ctx context.Context, goal *domain.Goal) error {
	blob, err := json.Marshal(goal)
	if err != nil {
		return fmt.Errorf("encode goal: %w", err)
	}
	return r.store.Save(ctx, r.key(goal.UserID), blob)
}
