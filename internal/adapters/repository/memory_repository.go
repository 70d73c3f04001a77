package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"scaletrend/internal/core/domain"
)

// In-memory repositories back the handler tests and the demo wiring. They
// honor the same contracts as the Postgres adapters: one entry per
// (user, date), one goal per user with start_date preserved on update.

type InMemoryEntryRepository struct {
	store map[string]map[string]*domain.WeightEntry // userID -> date -> entry

	mu sync.RWMutex
}

func NewInMemoryEntryRepository() *InMemoryEntryRepository {
	return &InMemoryEntryRepository{
		store: make(map[string]map[string]*domain.WeightEntry),
	}
}

func (r *InMemoryEntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*domain.WeightEntry
	for _, e := range r.store[userID] {
		copied := *e
		entries = append(entries, &copied)
	}

	return domain.MaterializeEntries(entries), nil
}

func (r *InMemoryEntryRepository) Upsert(ctx context.Context, entry *domain.WeightEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	byDate, ok := r.store[entry.UserID]
	if !ok {
		byDate = make(map[string]*domain.WeightEntry)
		r.store[entry.UserID] = byDate
	}

	if existing, ok := byDate[entry.Date]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}

	copied := *entry
	byDate[entry.Date] = &copied
	return nil
}

func (r *InMemoryEntryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	byDate := r.store[userID]
	if _, ok := byDate[date]; !ok {
		return domain.ErrEntryNotFound
	}

	delete(byDate, date)
	return nil
}

type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func (r *InMemoryGoalRepository) GetByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}

	copied := *goal
	return &copied, nil
}

func (r *InMemoryGoalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	if existing, ok := r.store[goal.UserID]; ok {
		goal.ID = existing.ID
		goal.StartDate = existing.StartDate
		goal.CreatedAt = existing.CreatedAt
	}

	copied := *goal
	r.store[goal.UserID] = &copied
	return nil
}

type InMemoryUserRepository struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}

	copied := *user
	r.byID[user.ID] = &copied
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
