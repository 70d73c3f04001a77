package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scaletrend/internal/core/domain"
)

type MockEntryRepo struct {
	mock.Mock
}

func (m *MockEntryRepo) ListByUser(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeightEntry), args.Error(1)
}

func (m *MockEntryRepo) Upsert(ctx context.Context, entry *domain.WeightEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockEntryRepo) DeleteByDate(ctx context.Context, userID, date string) error {
	return m.Called(ctx, userID, date).Error(0)
}

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) GetByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) Upsert(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func TestLedgerService_UpsertEntry(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: Should validate and persist the entry", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		entryRepo.On("Upsert", ctx, mock.MatchedBy(func(e *domain.WeightEntry) bool {
			return e.UserID == uid && e.Date == "2025-05-10" && e.Weight == 82.5 && e.Notes == "after run"
		})).Return(nil)

		entry, err := svc.UpsertEntry(ctx, UpsertEntryInput{
			UserID: uid,
			Date:   "2025-05-10",
			Weight: 82.5,
			Notes:  "after run",
		})

		require.NoError(t, err)
		assert.NotNil(t, entry)
		assert.False(t, entry.UpdatedAt.IsZero())
		entryRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject invalid weight before touching storage", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		_, err := svc.UpsertEntry(ctx, UpsertEntryInput{UserID: uid, Date: "2025-05-10", Weight: -1})

		assert.ErrorIs(t, err, domain.ErrInvalidEntry)
		entryRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("Fail: Should reject invalid date before touching storage", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		_, err := svc.UpsertEntry(ctx, UpsertEntryInput{UserID: uid, Date: "2025/05/10", Weight: 80})

		assert.ErrorIs(t, err, domain.ErrInvalidEntry)
		entryRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("Fail: Storage errors propagate and nothing is returned", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		storeErr := errors.New("connection refused")
		entryRepo.On("Upsert", ctx, mock.Anything).Return(storeErr)

		entry, err := svc.UpsertEntry(ctx, UpsertEntryInput{UserID: uid, Date: "2025-05-10", Weight: 80})

		assert.ErrorIs(t, err, storeErr)
		assert.Nil(t, entry)
	})
}

func TestLedgerService_RemoveEntry(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: Should delete the entry for the date", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		entryRepo.On("DeleteByDate", ctx, uid, "2025-05-10").Return(nil)

		assert.NoError(t, svc.RemoveEntry(ctx, uid, "2025-05-10"))
		entryRepo.AssertExpectations(t)
	})

	t.Run("Success: Deleting an absent date is an idempotent no-op", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		entryRepo.On("DeleteByDate", ctx, uid, "2025-05-10").Return(domain.ErrEntryNotFound)

		assert.NoError(t, svc.RemoveEntry(ctx, uid, "2025-05-10"))
	})

	t.Run("Fail: Other storage errors still surface", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		storeErr := errors.New("timeout")
		entryRepo.On("DeleteByDate", ctx, uid, "2025-05-10").Return(storeErr)

		assert.ErrorIs(t, svc.RemoveEntry(ctx, uid, "2025-05-10"), storeErr)
	})

	t.Run("Fail: Invalid date is rejected without a storage call", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		assert.ErrorIs(t, svc.RemoveEntry(ctx, uid, "yesterday"), domain.ErrInvalidEntry)
		entryRepo.AssertNotCalled(t, "DeleteByDate")
	})
}

func TestLedgerService_SetGoal(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: First goal is stamped with today's start date", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(new(MockEntryRepo), goalRepo)

		goalRepo.On("Upsert", ctx, mock.MatchedBy(func(g *domain.Goal) bool {
			return g.UserID == uid && g.TargetWeight == 75 && g.StartDate == time.Now().UTC().Format(domain.DateLayout)
		})).Return(nil)

		goal, err := svc.SetGoal(ctx, SetGoalInput{UserID: uid, TargetWeight: 75})

		require.NoError(t, err)
		assert.Equal(t, 75.0, goal.TargetWeight)
		goalRepo.AssertExpectations(t)
	})

	t.Run("Success: Repository-preserved start date is reflected in the result", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(new(MockEntryRepo), goalRepo)

		goalRepo.On("Upsert", ctx, mock.Anything).Run(func(args mock.Arguments) {
			g := args.Get(1).(*domain.Goal)
			g.StartDate = "2025-05-10" // existing goal's start date survives the update
		}).Return(nil)

		goal, err := svc.SetGoal(ctx, SetGoalInput{UserID: uid, TargetWeight: 70})

		require.NoError(t, err)
		assert.Equal(t, 70.0, goal.TargetWeight)
		assert.Equal(t, "2025-05-10", goal.StartDate)
	})

	t.Run("Fail: Non-positive target weight rejected before storage", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(new(MockEntryRepo), goalRepo)

		_, err := svc.SetGoal(ctx, SetGoalInput{UserID: uid, TargetWeight: 0})

		assert.ErrorIs(t, err, domain.ErrInvalidGoal)
		goalRepo.AssertNotCalled(t, "Upsert")
	})
}

func TestLedgerService_GetGoal(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: No goal set means nil, not an error", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(new(MockEntryRepo), goalRepo)

		goalRepo.On("GetByUser", ctx, uid).Return(nil, domain.ErrGoalNotFound)

		goal, err := svc.GetGoal(ctx, uid)

		assert.NoError(t, err)
		assert.Nil(t, goal)
	})

	t.Run("Fail: Storage errors are not swallowed", func(t *testing.T) {
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(new(MockEntryRepo), goalRepo)

		storeErr := errors.New("connection reset")
		goalRepo.On("GetByUser", ctx, uid).Return(nil, storeErr)

		_, err := svc.GetGoal(ctx, uid)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestLedgerService_ListEntries(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: Entries come back materialized in ascending date order", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		today := time.Now().UTC()
		d := func(offset int) string { return today.AddDate(0, 0, offset).Format(domain.DateLayout) }

		entryRepo.On("ListByUser", ctx, uid).Return([]*domain.WeightEntry{
			{Date: d(-1), Weight: 81},
			{Date: d(-3), Weight: 83},
			{Date: d(-2), Weight: 82},
		}, nil)

		out, err := svc.ListEntries(ctx, uid, domain.WindowAll)

		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, d(-3), out[0].Date)
		assert.Equal(t, d(-1), out[2].Date)
	})

	t.Run("Success: Window filter scopes the result", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		svc := NewLedgerService(entryRepo, new(MockGoalRepo))

		today := time.Now().UTC()
		d := func(offset int) string { return today.AddDate(0, 0, offset).Format(domain.DateLayout) }

		entryRepo.On("ListByUser", ctx, uid).Return([]*domain.WeightEntry{
			{Date: d(-40), Weight: 85},
			{Date: d(-2), Weight: 81},
			{Date: d(0), Weight: 80},
		}, nil)

		out, err := svc.ListEntries(ctx, uid, domain.Window7d)

		require.NoError(t, err)
		assert.Len(t, out, 2)
	})
}

func TestLedgerService_Stats(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Success: Combines windowed entries with the goal", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(entryRepo, goalRepo)

		today := time.Now().UTC()
		d := func(offset int) string { return today.AddDate(0, 0, offset).Format(domain.DateLayout) }

		entryRepo.On("ListByUser", ctx, uid).Return([]*domain.WeightEntry{
			{Date: d(-2), Weight: 80},
			{Date: d(-1), Weight: 79},
			{Date: d(0), Weight: 78},
		}, nil)
		goalRepo.On("GetByUser", ctx, uid).Return(&domain.Goal{UserID: uid, TargetWeight: 75}, nil)

		stats, err := svc.Stats(ctx, uid, domain.WindowAll)

		require.NoError(t, err)
		assert.Equal(t, 78.0, stats.Current)
		assert.Equal(t, domain.TrendDown, stats.Trend)
		require.NotNil(t, stats.GoalDistance)
		assert.Equal(t, 3.0, *stats.GoalDistance)
	})

	t.Run("Success: Missing goal leaves goal distance unset", func(t *testing.T) {
		entryRepo := new(MockEntryRepo)
		goalRepo := new(MockGoalRepo)
		svc := NewLedgerService(entryRepo, goalRepo)

		entryRepo.On("ListByUser", ctx, uid).Return([]*domain.WeightEntry{}, nil)
		goalRepo.On("GetByUser", ctx, uid).Return(nil, domain.ErrGoalNotFound)

		stats, err := svc.Stats(ctx, uid, domain.WindowAll)

		require.NoError(t, err)
		assert.Nil(t, stats.GoalDistance)
		assert.Equal(t, domain.TrendNeutral, stats.Trend)
	})
}
