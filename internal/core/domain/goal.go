package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrInvalidGoal = errors.New("invalid goal")
)

// Goal is a user's target weight. At most one goal exists per user; setting a
// new one overwrites the previous in place. StartDate is stamped on first
// creation and preserved across updates. TargetDate is optional and empty
// when unset.
type Goal struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	TargetWeight float64 `json:"target_weight" db:"target_weight"`
	StartDate    string  `json:"start_date" db:"start_date"`
	TargetDate   string  `json:"target_date,omitempty" db:"target_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewGoal(userID string, targetWeight float64, targetDate string) *Goal {
	now := time.Now().UTC()

	return &Goal{
		UserID:       userID,
		TargetWeight: targetWeight,
		StartDate:    now.Format(DateLayout),
		TargetDate:   strings.TrimSpace(targetDate),

		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (g *Goal) Validate() error {
	if strings.TrimSpace(g.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidGoal)
	}
	if math.IsNaN(g.TargetWeight) || math.IsInf(g.TargetWeight, 0) || g.TargetWeight <= 0 {
		return fmt.Errorf("%w: target weight must be positive", ErrInvalidGoal)
	}
	if g.StartDate != "" {
		if err := ValidateDate(g.StartDate); err != nil {
			return fmt.Errorf("%w: invalid start date", ErrInvalidGoal)
		}
	}
	if g.TargetDate != "" {
		if err := ValidateDate(g.TargetDate); err != nil {
			return fmt.Errorf("%w: invalid target date", ErrInvalidGoal)
		}
	}
	return nil
}
