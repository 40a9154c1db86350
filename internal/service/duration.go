package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// ParseClock converts an HH:MM 24-hour wall-clock string into minutes since
// midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("service: invalid clock value %q", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("service: invalid hour in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("service: invalid minute in %q", value)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("service: clock value %q out of range", value)
	}
	return h*60 + m, nil
}

// ComputeDuration returns the hours slept between bedTime and wakeTime, both
// HH:MM wall-clock strings, rounded to two decimals. A wake time earlier than
// the bed time means the sleep crossed midnight and a full day is added.
// Equal times collapse to 0 hours; a 24h sleep is indistinguishable from a 0h
// one by this arithmetic, which is a known limitation.
func ComputeDuration(bedTime, wakeTime string) (float64, error) {
	start, err := ParseClock(bedTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(wakeTime)
	if err != nil {
		return 0, err
	}
	diff := end - start
	if diff < 0 {
		diff += minutesPerDay
	}
	return round2(float64(diff) / 60), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
