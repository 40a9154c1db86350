package service

import "github.com/yourname/sleepcatalyst/internal"

// MinTrendPoints is how many entries a chart needs before a trend line means
// anything; below it the series is flagged as insufficient, not failed.
const MinTrendPoints = 2

// TrendSeries is the chart-ready view of the log: chronological points plus
// the goal as a constant reference line.
type TrendSeries struct {
	Points           []internal.SleepEntry `json:"points"`
	GoalHours        float64               `json:"goal_hours"`
	InsufficientData bool                  `json:"insufficient_data"`
}

// BuildSeries returns the newest-first log reordered oldest-first for
// time-series consumption. The source slice is left untouched.
func BuildSeries(entries []internal.SleepEntry) []internal.SleepEntry {
	out := make([]internal.SleepEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

// BuildTrend combines BuildSeries with the goal reference line.
func BuildTrend(entries []internal.SleepEntry, goalHours float64) TrendSeries {
	return TrendSeries{
		Points:           BuildSeries(entries),
		GoalHours:        goalHours,
		InsufficientData: len(entries) < MinTrendPoints,
	}
}
