package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used as the entry's natural key.
// Lexicographic order on this layout matches chronological order.
const DateLayout = "2006-01-02"

var (
	ErrInvalidEntry = errors.New("invalid weight entry")
)

// WeightEntry is one user's weight measurement for one calendar date.
// Within a user's ledger there is at most one entry per date; logging the
// same date again replaces weight and notes in full.
type WeightEntry struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Date   string  `json:"date" db:"date"`
	Weight float64 `json:"weight" db:"weight"`
	Notes  string  `json:"notes" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewWeightEntry(userID, date string, weight float64, notes string) *WeightEntry {
	now := time.Now().UTC()

	return &WeightEntry{
		UserID: userID,
		Date:   strings.TrimSpace(date),
		Weight: weight,
		Notes:  notes,

		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *WeightEntry) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidEntry)
	}
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
		return fmt.Errorf("%w: weight must be a finite number", ErrInvalidEntry)
	}
	if e.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidEntry)
	}
	return nil
}

// ValidateDate accepts strict YYYY-MM-DD calendar dates. The round-trip
// check rejects loose forms like "2025-1-1" that time.Parse would accept.
func ValidateDate(date string) error {
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return fmt.Errorf("%w: date must be a valid YYYY-MM-DD calendar date", ErrInvalidEntry)
	}
	return nil
}

// MaterializeEntries re-establishes the ledger's ordering invariant over rows
// coming back from storage: ascending by date, at most one entry per date.
// Should a backend race ever produce duplicate dates, the most recently
// updated row wins.
func MaterializeEntries(entries []*WeightEntry) []*WeightEntry {
	byDate := make(map[string]*WeightEntry, len(entries))
	for _, e := range entries {
		if prev, ok := byDate[e.Date]; ok && prev.UpdatedAt.After(e.UpdatedAt) {
			continue
		}
		byDate[e.Date] = e
	}

	out := make([]*WeightEntry, 0, len(byDate))
	for _, e := range byDate {
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})

	return out
}
