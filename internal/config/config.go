package config

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
)

type Config struct {
	Env        string
	LogLevel   string
	ListenAddr string
	AuthToken  string

	StorageBackend string // file, sqlite or postgres
	DataFile       string
	SQLitePath     string
	PostgresDSN    string

	DefaultGoalHours float64
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv(".env")
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			ListenAddr:       getEnv("LISTEN_ADDR", ":8088"),
			AuthToken:        getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			StorageBackend:   getEnv("STORAGE_BACKEND", "file"),
			DataFile:         getEnv("DATA_FILE", "data/sleepcatalyst.json"),
			SQLitePath:       getEnv("SQLITE_PATH", "data/sleepcatalyst.db"),
			PostgresDSN:      getEnv("POSTGRES_DSN", ""),
			DefaultGoalHours: getEnvFloat("DEFAULT_GOAL_HOURS", 8),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "file":
		if c.DataFile == "" {
			return errors.New("DATA_FILE is required when STORAGE_BACKEND=file")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.AuthToken == "" {
		return errors.New("AUTH_TOKEN must not be empty")
	}
	if c.DefaultGoalHours < 4 || c.DefaultGoalHours > 12 {
		return errors.New("DEFAULT_GOAL_HOURS must be between 4 and 12")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// loadDotEnv applies KEY=VALUE lines from path to the process environment.
// Missing file is fine; existing environment variables win.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		if os.Getenv(key) == "" {
			os.Setenv(key, strings.TrimSpace(kv[1]))
		}
	}
	return sc.Err()
}
