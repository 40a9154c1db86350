package storage

import (
	"fmt"

	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/config"
)

func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.StorageBackend {
	case "file":
		return NewFileStore(cfg.DataFile, logger)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresStore(cfg.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
