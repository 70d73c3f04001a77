package localstore

import (
	"time"

	"scaletrend/internal/core/domain"
)

// Demo data shown on a fresh local profile, nine consecutive daily weigh-ins
// trending gently down toward a 75 kg goal.
var sampleWeights = []struct {
	date   string
	weight float64
}{
	{"2025-05-10", 82.5},
	{"2025-05-11", 82.2},
	{"2025-05-12", 82.7},
	{"2025-05-13", 81.9},
	{"2025-05-14", 81.5},
	{"2025-05-15", 81.2},
	{"2025-05-16", 81.0},
	{"2025-05-17", 80.8},
	{"2025-05-18", 80.5},
}

func sampleEntries(userID string) []*domain.WeightEntry {
	now := time.Now().UTC()

	entries := make([]*domain.WeightEntry, 0, len(sampleWeights))
	for i, s := range sampleWeights {
		entries = append(entries, &domain.WeightEntry{
			ID:        "sample-" + s.date,
			UserID:    userID,
			Date:      s.date,
			Weight:    s.weight,
			CreatedAt: now,
			UpdatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return entries
}

func sampleGoal(userID string) *domain.Goal {
	now := time.Now().UTC()

	return &domain.Goal{
		ID:           "sample-goal",
		UserID:       userID,
		TargetWeight: 75,
		StartDate:    "2025-05-10",
		TargetDate:   "2025-07-10",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
