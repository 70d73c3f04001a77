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

type PostgresEntryRepository struct {
	db *sqlx.DB
}

func NewPostgresEntryRepository(db *sqlx.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{db: db}
}

// Upsert relies on the UNIQUE (user_id, date) index: the conflict-resolving
// INSERT is atomic server-side, so two sessions writing the same date can
// never produce duplicate rows; the later commit wins.
func (r *PostgresEntryRepository) Upsert(ctx context.Context, entry *domain.WeightEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO user_weights (id, user_id, weight, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7)
		ON CONFLICT (user_id, date) DO UPDATE
		SET weight     = EXCLUDED.weight,
		    notes      = EXCLUDED.notes,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Weight,
		entry.Date,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return errors.New("referenced user does not exist")
		}
		return err
	}
	return nil
}

func (r *PostgresEntryRepository) ListByUser(ctx context.Context, userID string) ([]*domain.WeightEntry, error) {
	entries := []*domain.WeightEntry{}

	query := `
		SELECT id, user_id, weight, to_char(date, 'YYYY-MM-DD') AS date, notes, created_at, updated_at
		FROM user_weights
		WHERE user_id = $1
		ORDER BY date ASC`

	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresEntryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_weights WHERE user_id = $1 AND date = $2::date`,
		userID, date,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// GetByDate is used by integration tests and the health of the upsert path;
// absence maps to ErrEntryNotFound.
func (r *PostgresEntryRepository) GetByDate(ctx context.Context, userID, date string) (*domain.WeightEntry, error) {
	var entry domain.WeightEntry

	query := `
		SELECT id, user_id, weight, to_char(date, 'YYYY-MM-DD') AS date, notes, created_at, updated_at
		FROM user_weights
		WHERE user_id = $1 AND date = $2::date`

	err := r.db.GetContext(ctx, &entry, query, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}
