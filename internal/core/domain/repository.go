package domain

import (
	"context"
	"errors"
)

var (
	ErrEntryNotFound = errors.New("weight entry not found")
	ErrGoalNotFound  = errors.New("goal not found")
	ErrUnauthorized  = errors.New("unauthorized")
)

// EntryRepository is the storage capability the ledger is parameterized
// over. The Postgres adapter and the local offline store both implement it,
// so the upsert/merge logic lives in exactly one place.
type EntryRepository interface {
	// ListByUser retrieves every entry for a user, ordered ascending by date.
	ListByUser(ctx context.Context, userID string) ([]*WeightEntry, error)

	// Upsert inserts the entry, or replaces weight and notes in full when an
	// entry for (user, date) already exists. Last write wins.
	Upsert(ctx context.Context, entry *WeightEntry) error

	// DeleteByDate removes the entry for the given date.
	// Returns ErrEntryNotFound when no entry exists for that date.
	DeleteByDate(ctx context.Context, userID, date string) error
}

type GoalRepository interface {
	// GetByUser retrieves the user's single goal.
	// Returns ErrGoalNotFound when none is set.
	GetByUser(ctx context.Context, userID string) (*Goal, error)

	// Upsert inserts the goal, or updates target weight and target date when
	// one already exists. StartDate and CreatedAt of an existing goal are
	// preserved; the stored values are written back onto the argument.
	Upsert(ctx context.Context, goal *Goal) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
