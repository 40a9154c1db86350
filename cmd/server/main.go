package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/api"
	"github.com/yourname/sleepcatalyst/internal/auth"
	"github.com/yourname/sleepcatalyst/internal/config"
	"github.com/yourname/sleepcatalyst/internal/storage"
	"github.com/yourname/sleepcatalyst/internal/tracker"
)

const appVersion = "0.3.0"

type appContext struct {
	logger internal.Logger
	trk    *tracker.Tracker
}

func (a *appContext) Logger() internal.Logger   { return a.logger }
func (a *appContext) Tracker() *tracker.Tracker { return a.trk }

func main() {
	var (
		addr    string
		backend string
	)

	root := &cobra.Command{
		Use:     "sleepcatalyst",
		Short:   "Personal sleep log with goal tracking and trend analytics",
		Version: appVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("addr") {
				cfg.ListenAddr = addr
			}
			if cmd.Flags().Changed("storage") {
				cfg.StorageBackend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.Flags().StringVar(&addr, "addr", ":8088", "listen address")
	root.Flags().StringVar(&backend, "storage", "file", "storage backend (file, sqlite, postgres)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	trk := tracker.New(store, cfg.DefaultGoalHours, logger)
	trk.Init(context.Background())

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	app := &appContext{logger: logger, trk: trk}
	provider := auth.NewLocalProvider(cfg.AuthToken, logger)
	api.RegisterRoutes(r, app, auth.Middleware(provider))

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	go func() {
		logger.Infof("server running on %s (storage=%s)", cfg.ListenAddr, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
	return nil
}
