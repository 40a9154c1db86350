package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yourname/sleepcatalyst/internal"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStore(path string, logger internal.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("storage: failed to open sqlite db: %v", err)
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		db.Close()
		logger.Errorf("storage: failed to ensure kv_state table: %v", err)
		return nil, err
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		s.logger.Errorf("storage: failed to read %s: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO kv_state (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')`, key, value)
	if err != nil {
		s.logger.Errorf("storage: failed to write %s: %v", key, err)
		return err
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
