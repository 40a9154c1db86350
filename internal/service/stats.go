package service

import (
	"math"

	"github.com/yourname/sleepcatalyst/internal"
)

// Stats are the aggregate numbers shown above the trend chart.
type Stats struct {
	AverageHours       float64 `json:"average_hours"`       // mean duration, 1 decimal
	ConsistencyPercent int     `json:"consistency_percent"` // % of entries meeting the goal
}

// ComputeStats derives the average duration and goal-consistency percentage
// from the current log. An empty log yields zero values rather than an error.
func ComputeStats(entries []internal.SleepEntry, goalHours float64) Stats {
	if len(entries) == 0 {
		return Stats{}
	}
	total := 0.0
	met := 0
	for _, e := range entries {
		total += e.Duration
		if e.Duration >= goalHours {
			met++
		}
	}
	n := float64(len(entries))
	return Stats{
		AverageHours:       round1(total / n),
		ConsistencyPercent: int(math.Round(float64(met) / n * 100)),
	}
}

// GoalDeficitHours reports how far the average falls short of the goal, to
// one decimal. An average meeting or exceeding the goal yields 0.
func GoalDeficitHours(averageHours, goalHours float64) float64 {
	if averageHours >= goalHours {
		return 0
	}
	return round1(goalHours - averageHours)
}
