package internal

import "time"

// SleepEntry is one recorded sleep session. The JSON field names are the
// persisted layout under the "sleep_logs" key and must stay stable.
type SleepEntry struct {
	ID       int64     `json:"id"`
	Date     string    `json:"date"` // short display label, e.g. "Jan 5"
	FullDate time.Time `json:"fullDate"`
	BedTime  string    `json:"bedTime"`  // HH:MM, 24-hour
	WakeTime string    `json:"wakeTime"` // HH:MM, 24-hour
	Duration float64   `json:"duration"` // hours, 2 decimals
}

// GoalConfig holds the user's target nightly sleep duration.
type GoalConfig struct {
	Hours float64 `json:"hours"` // [4, 12] in 0.5 steps
}

const (
	// DefaultGoalHours is used when no goal has been persisted yet.
	DefaultGoalHours = 8.0

	// MaxEntries bounds the rolling log; appending past the cap evicts the
	// oldest entries by position.
	MaxEntries = 30
)
