package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/sleepcatalyst/internal"
)

func entriesWithDurations(durations ...float64) []internal.SleepEntry {
	entries := make([]internal.SleepEntry, len(durations))
	for i, d := range durations {
		entries[i] = internal.SleepEntry{ID: int64(i + 1), Duration: d}
	}
	return entries
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, 8)
	assert.Equal(t, 0.0, stats.AverageHours)
	assert.Equal(t, 0, stats.ConsistencyPercent)
}

func TestComputeStats_AverageAndConsistency(t *testing.T) {
	stats := ComputeStats(entriesWithDurations(8.0, 6.0, 9.0), 7)
	assert.Equal(t, 7.7, stats.AverageHours)
	assert.Equal(t, 67, stats.ConsistencyPercent)
}

func TestComputeStats_GoalBoundaryCountsAsMet(t *testing.T) {
	stats := ComputeStats(entriesWithDurations(8.0, 7.99), 8)
	assert.Equal(t, 50, stats.ConsistencyPercent)
}

func TestComputeStats_AllMet(t *testing.T) {
	stats := ComputeStats(entriesWithDurations(8.5, 9.0), 8)
	assert.Equal(t, 8.8, stats.AverageHours)
	assert.Equal(t, 100, stats.ConsistencyPercent)
}

func TestGoalDeficitHours(t *testing.T) {
	assert.Equal(t, 0.3, GoalDeficitHours(7.7, 8))
	assert.Equal(t, 1.0, GoalDeficitHours(7.0, 8))
	assert.Equal(t, 0.0, GoalDeficitHours(8.0, 8), "meeting the goal")
	assert.Equal(t, 0.0, GoalDeficitHours(9.2, 8), "exceeding the goal")
	assert.Equal(t, 8.0, GoalDeficitHours(0, 8), "no sleep logged yet")
}
