package domain

import (
	"errors"
	"math"
	"time"
)

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Window scopes which entries feed the displayed statistics. It never
// deletes anything; it is a presentation filter evaluated at call time.
type Window string

const (
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
	WindowAll Window = "all"
)

var ErrInvalidWindow = errors.New("invalid window (must be 7d, 30d, 90d or all)")

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case Window7d, Window30d, Window90d, WindowAll:
		return Window(s), nil
	case "":
		return WindowAll, nil
	default:
		return "", ErrInvalidWindow
	}
}

func (w Window) days() int {
	switch w {
	case Window7d:
		return 7
	case Window30d:
		return 30
	case Window90d:
		return 90
	default:
		return 0
	}
}

// DerivedStats is computed from the windowed entry list on every read and
// never stored.
type DerivedStats struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
	Average  float64 `json:"average"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Trend    Trend   `json:"trend"`

	// GoalDistance is current minus target weight; positive means still
	// above goal. Nil when no goal is set.
	GoalDistance *float64 `json:"goal_distance,omitempty"`
}

// FilterByWindow keeps entries dated within the last N days counted back
// from now, lower bound inclusive: an entry dated exactly N days ago stays
// in. WindowAll returns the input unchanged. The input must already be in
// ascending date order and is not mutated.
func FilterByWindow(entries []*WeightEntry, w Window, now time.Time) []*WeightEntry {
	days := w.days()
	if days == 0 {
		return entries
	}

	cutoff := now.UTC().AddDate(0, 0, -days).Format(DateLayout)

	out := make([]*WeightEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// ComputeStats aggregates an ordered entry list in a single pass. An empty
// list yields all zeros with a neutral trend. The trend compares the first
// and last of the last three entries; the middle one is deliberately
// ignored, so a dip inside an overall climb still reads as "up".
func ComputeStats(entries []*WeightEntry, goal *Goal) DerivedStats {
	stats := DerivedStats{Trend: TrendNeutral}
	if len(entries) == 0 {
		return stats
	}

	current := entries[len(entries)-1].Weight
	previous := current
	if len(entries) > 1 {
		previous = entries[len(entries)-2].Weight
	}

	minW, maxW, sum := entries[0].Weight, entries[0].Weight, 0.0
	for _, e := range entries {
		if e.Weight < minW {
			minW = e.Weight
		}
		if e.Weight > maxW {
			maxW = e.Weight
		}
		sum += e.Weight
	}

	stats.Current = round1(current)
	stats.Previous = round1(previous)
	stats.Change = round1(current - previous)
	stats.Average = round1(sum / float64(len(entries)))
	stats.Min = round1(minW)
	stats.Max = round1(maxW)

	if len(entries) >= 3 {
		first := entries[len(entries)-3].Weight
		last := entries[len(entries)-1].Weight
		switch {
		case last > first:
			stats.Trend = TrendUp
		case last < first:
			stats.Trend = TrendDown
		}
	}

	if goal != nil {
		distance := round1(current - goal.TargetWeight)
		stats.GoalDistance = &distance
	}

	return stats
}

// round1 rounds to one decimal place, half away from zero, matching the
// display rounding the dashboard applies everywhere.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
