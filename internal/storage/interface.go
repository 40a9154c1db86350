package storage

import "context"

// Keys under which the tracker persists its state.
const (
	KeySleepLogs = "sleep_logs"
	KeySleepGoal = "sleep_goal"
)

// Store is a durable key-value collaborator over opaque string keys. Get
// reports absence via the second return; callers treat absent and malformed
// values the same way.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
