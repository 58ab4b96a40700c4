package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"Kubernetes-config-generator/counter"
	"Kubernetes-config-generator/export"
	"Kubernetes-config-generator/router"
	"Kubernetes-config-generator/stats"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) statsService() *stats.Service {
	cfg := a.cfg
	cache, err := stats.NewFileCache(a.fs, cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		logs.Warnf("file cache unavailable, keeping stats in memory: %v", err)
		cache = stats.NewTimed(cfg.CacheTTL)
	}
	svc := &stats.Service{
		Usage:    stats.NewCounterClient(cfg.CounterURL),
		UsageKey: cfg.CounterKey,
		Cache:    cache,
	}
	if cfg.GitHubOwner != "" && cfg.GitHubRepo != "" {
		svc.Stars = stats.NewGitHubStars(cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubToken, cache)
	}
	return svc
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	style, err := export.ParseStyle(cfg.ExportStyle)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{
		Export:        export.Options{StrictSeparators: cfg.ExportStrict, Style: style},
		Stats:         a.statsService(),
		StatsInterval: cfg.StatsInterval,
		BaseContext:   ctx,
	}
	if cfg.CounterEnabled {
		store, err := counter.Open(a.fs, cfg.CounterDB)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Counter = store
	}

	app := router.NewApp(deps)
	errCh := make(chan error, 1)
	go func() {
		logs.WithField("listen", cfg.Listen).Info("starting HTTP API")
		errCh <- app.Listen(cfg.Listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logs.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
