package services

import (
	"context"
	"errors"
	"time"

	"scaletrend/internal/core/domain"
)

// LedgerService is the single source of truth for one user's weight entries
// and goal. All mutation goes through it; statistics are derived on read.
// Storage is injected, so the Postgres-backed remote path and the local
// offline store run the exact same upsert and ordering logic.
type LedgerService struct {
	entries domain.EntryRepository
	goals   domain.GoalRepository
}

func NewLedgerService(entries domain.EntryRepository, goals domain.GoalRepository) *LedgerService {
	return &LedgerService{
		entries: entries,
		goals:   goals,
	}
}

type UpsertEntryInput struct {
	UserID string
	Date   string
	Weight float64
	Notes  string
}

type SetGoalInput struct {
	UserID       string
	TargetWeight float64
	TargetDate   string
}

// UpsertEntry validates and persists a weight measurement. Logging the same
// date twice replaces weight and notes in full; the store never ends up with
// two entries for one date. Validation failures reject the call before any
// state change.
func (s *LedgerService) UpsertEntry(ctx context.Context, input UpsertEntryInput) (*domain.WeightEntry, error) {
	entry := domain.NewWeightEntry(input.UserID, input.Date, input.Weight, input.Notes)

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.entries.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// RemoveEntry deletes the entry for a date. Deleting a date that was never
// logged is a no-op, not an error.
func (s *LedgerService) RemoveEntry(ctx context.Context, userID, date string) error {
	if err := domain.ValidateDate(date); err != nil {
		return err
	}

	err := s.entries.DeleteByDate(ctx, userID, date)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return nil
	}
	return err
}

// SetGoal creates or overwrites the user's single goal. The repository
// preserves StartDate and CreatedAt of an existing goal, so only the first
// SetGoal stamps the start date.
func (s *LedgerService) SetGoal(ctx context.Context, input SetGoalInput) (*domain.Goal, error) {
	goal := domain.NewGoal(input.UserID, input.TargetWeight, input.TargetDate)

	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := s.goals.Upsert(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// GetGoal returns nil when no goal is set; absence is a legitimate empty
// state, never an error.
func (s *LedgerService) GetGoal(ctx context.Context, userID string) (*domain.Goal, error) {
	goal, err := s.goals.GetByUser(ctx, userID)
	if errors.Is(err, domain.ErrGoalNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// ListEntries returns the user's entries in ascending date order, scoped to
// the window. The window cutoff is evaluated against the clock on every
// call; results shifting across a day boundary is expected.
func (s *LedgerService) ListEntries(ctx context.Context, userID string, window domain.Window) ([]*domain.WeightEntry, error) {
	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	materialized := domain.MaterializeEntries(entries)
	return domain.FilterByWindow(materialized, window, time.Now().UTC()), nil
}

// Stats recomputes derived statistics over the windowed entries. Nothing is
// cached; ledgers are small enough that a fresh pass per read is fine.
func (s *LedgerService) Stats(ctx context.Context, userID string, window domain.Window) (domain.DerivedStats, error) {
	entries, err := s.ListEntries(ctx, userID, window)
	if err != nil {
		return domain.DerivedStats{}, err
	}

	goal, err := s.GetGoal(ctx, userID)
	if err != nil {
		return domain.DerivedStats{}, err
	}

	return domain.ComputeStats(entries, goal), nil
}
