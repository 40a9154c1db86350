package tracker

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/service"
	"github.com/yourname/sleepcatalyst/internal/storage"
)

// Tracker owns the sleep log and goal for the session: a newest-first bounded
// slice of entries plus the configured goal, written through to the key-value
// store on every mutation. All reads hand out copies.
type Tracker struct {
	entries []internal.SleepEntry
	goal    float64
	lastID  int64
	mu      sync.RWMutex
	store   storage.Store
	logger  internal.Logger
	now     func() time.Time
}

// New builds a tracker starting at defaultGoal; Init replaces it with the
// persisted goal when one exists.
func New(store storage.Store, defaultGoal float64, logger internal.Logger) *Tracker {
	if defaultGoal <= 0 {
		defaultGoal = internal.DefaultGoalHours
	}
	return &Tracker{
		goal:   defaultGoal,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Init loads persisted state. Absent or malformed values fall back to the
// empty log and default goal; Init never fails, durability loss degrades to
// starting fresh.
func (t *Tracker) Init(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if raw, ok, err := t.store.Get(ctx, storage.KeySleepLogs); err != nil {
		t.logger.Warnf("tracker: cannot read %s, starting empty: %v", storage.KeySleepLogs, err)
	} else if ok {
		var entries []internal.SleepEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			t.logger.Warnf("tracker: malformed %s, starting empty: %v", storage.KeySleepLogs, err)
		} else {
			if len(entries) > internal.MaxEntries {
				entries = entries[:internal.MaxEntries]
			}
			t.entries = entries
			for _, e := range entries {
				if e.ID > t.lastID {
					t.lastID = e.ID
				}
			}
		}
	}

	if raw, ok, err := t.store.Get(ctx, storage.KeySleepGoal); err != nil {
		t.logger.Warnf("tracker: cannot read %s, using default goal: %v", storage.KeySleepGoal, err)
	} else if ok {
		goal, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			t.logger.Warnf("tracker: malformed %s, using default goal: %v", storage.KeySleepGoal, err)
		} else {
			t.goal = goal
		}
	}

	t.logger.Infof("tracker: initialized with %d entries, goal %.1fh", len(t.entries), t.goal)
}

// Append records a new sleep session from HH:MM bed and wake times. The entry
// is prepended and the log truncated to the cap, evicting the oldest entries
// by position.
func (t *Tracker) Append(ctx context.Context, bedTime, wakeTime string) (internal.SleepEntry, error) {
	duration, err := service.ComputeDuration(bedTime, wakeTime)
	if err != nil {
		return internal.SleepEntry{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	entry := internal.SleepEntry{
		ID:       t.nextID(now),
		Date:     now.Format("Jan 2"),
		FullDate: now,
		BedTime:  bedTime,
		WakeTime: wakeTime,
		Duration: duration,
	}

	t.entries = append([]internal.SleepEntry{entry}, t.entries...)
	if len(t.entries) > internal.MaxEntries {
		t.entries = t.entries[:internal.MaxEntries]
	}

	t.persistEntries(ctx)
	return entry, nil
}

// Remove deletes the entry with the given id. An unknown id is a no-op, not
// an error.
func (t *Tracker) Remove(ctx context.Context, id int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.entries[:0:0]
	for _, e := range t.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(t.entries) {
		return
	}
	t.entries = kept
	t.persistEntries(ctx)
}

// SetGoal updates the target nightly hours. Range and step validation is the
// caller's job.
func (t *Tracker) SetGoal(ctx context.Context, hours float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.goal = hours
	value := strconv.FormatFloat(hours, 'f', -1, 64)
	if err := t.store.Set(ctx, storage.KeySleepGoal, value); err != nil {
		t.logger.Errorf("tracker: failed to persist goal: %v", err)
	}
}

// Entries returns the log newest-first.
func (t *Tracker) Entries() []internal.SleepEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]internal.SleepEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Tracker) Goal() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.goal
}

// Stats recomputes the aggregate numbers from the current log and goal.
func (t *Tracker) Stats() service.Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return service.ComputeStats(t.entries, t.goal)
}

// Overview is a consistent snapshot of the aggregates, the goal and the log
// size, taken under one lock so the numbers describe the same state.
type Overview struct {
	Stats            service.Stats
	GoalHours        float64
	EntryCount       int
	GoalDeficitHours float64
}

func (t *Tracker) Overview() Overview {
	t.mu.RLock()
	defer t.mu.RUnlock()
	stats := service.ComputeStats(t.entries, t.goal)
	return Overview{
		Stats:            stats,
		GoalHours:        t.goal,
		EntryCount:       len(t.entries),
		GoalDeficitHours: service.GoalDeficitHours(stats.AverageHours, t.goal),
	}
}

// Trend builds the chart-ready chronological series.
func (t *Tracker) Trend() service.TrendSeries {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return service.BuildTrend(t.entries, t.goal)
}

// nextID allocates a creation-time id in unix milliseconds, bumped past the
// last one when two appends land in the same millisecond. The id doubles as
// the deletion key, so it must be unique.
func (t *Tracker) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

// persistEntries writes the log through to the store. Failures are logged and
// swallowed; persistence is fire-and-forget from the mutation's perspective.
// Callers hold the write lock.
func (t *Tracker) persistEntries(ctx context.Context) {
	raw, err := json.Marshal(t.entries)
	if err != nil {
		t.logger.Errorf("tracker: failed to encode entries: %v", err)
		return
	}
	if err := t.store.Set(ctx, storage.KeySleepLogs, string(raw)); err != nil {
		t.logger.Errorf("tracker: failed to persist entries: %v", err)
	}
}
