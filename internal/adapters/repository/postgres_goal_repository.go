package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"scaletrend/internal/core/domain"
)

type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) GetByUser(ctx context.Context, userID string) (*domain.Goal, error) {
	var goal domain.Goal

	query := `
		SELECT id, user_id, target_weight,
		       to_char(start_date, 'YYYY-MM-DD') AS start_date,
		       COALESCE(to_char(target_date, 'YYYY-MM-DD'), '') AS target_date,
		       created_at, updated_at
		FROM user_goals
		WHERE user_id = $1`

	err := r.db.GetContext(ctx, &goal, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// Upsert keeps a single goal row per user via the UNIQUE (user_id)
// constraint. On update only target_weight, target_date and updated_at
// change; start_date and created_at stay as first written, and the stored
// values are read back onto the goal.
func (r *PostgresGoalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_goals (id, user_id, target_weight, start_date, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4::date, NULLIF($5, '')::date, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET target_weight = EXCLUDED.target_weight,
		    target_date   = EXCLUDED.target_date,
		    updated_at    = EXCLUDED.updated_at
		RETURNING id, to_char(start_date, 'YYYY-MM-DD'), created_at`

	err := r.db.QueryRowContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.TargetWeight,
		goal.StartDate,
		goal.TargetDate,
		goal.CreatedAt,
		goal.UpdatedAt,
	).Scan(&goal.ID, &goal.StartDate, &goal.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return errors.New("referenced user does not exist")
		}
		return err
	}
	return nil
}
