package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/neonroyal/internal/api"
	"github.com/fadedpez/neonroyal/internal/config"
	"github.com/fadedpez/neonroyal/internal/console"
	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/repositories/archive"
	"github.com/fadedpez/neonroyal/pkg/repositories/profile"
	"github.com/fadedpez/neonroyal/pkg/rng"
	"github.com/fadedpez/neonroyal/pkg/scheduler"
	"github.com/fadedpez/neonroyal/pkg/services/casino"
	"github.com/fadedpez/neonroyal/pkg/services/ledger"
	"github.com/fadedpez/neonroyal/pkg/services/statistics"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Console output goes to stdout, so logs go to stderr
	logger := logging.NewLoggerTo(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openProfileStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open profile store: %v", err)
		os.Exit(1)
	}

	clk := clock.NewSystem(cfg.Location)
	opts := []ledger.Option{ledger.WithLogger(logger)}

	// The archive is optional; a failure to reach it only disables it
	var arch archive.Archive
	if cfg.ArchiveEnabled() {
		esArchive, err := archive.NewElasticsearchArchive(ctx, &archive.ElasticsearchConfig{
			URL:         cfg.ESURL,
			Username:    cfg.ESUsername,
			Password:    cfg.ESPassword,
			IndexPrefix: cfg.ESIndexPrefix,
		})
		if err != nil {
			logger.Warn("Round archive disabled: %v", err)
		} else {
			logger.Info("Archiving rounds to %s/%s", cfg.ESURL, esArchive.Index())
			arch = esArchive
			opts = append(opts, ledger.WithArchive(esArchive))
		}
	}

	wallet := ledger.Open(ctx, repo, clk, opts...)

	var src rng.Source
	if cfg.RNGSeed != 0 {
		logger.Info("Using fixed RNG seed %d", cfg.RNGSeed)
		src = rng.NewSeeded(cfg.RNGSeed)
	} else {
		src = rng.New(logger)
	}

	floor := casino.NewFloor(wallet, src, clk, casino.WithLogger(logger))
	stats := statistics.NewService(wallet)
	cli := console.New(floor, stats, os.Stdout, logger)

	maintenance := scheduler.NewMaintenance(clk, wallet, wallet, arch, scheduler.Intervals{
		BonusTick:     cfg.TickInterval,
		ProfileFlush:  cfg.SaveInterval,
		ArchiveMaxAge: cfg.ESRetention,
	}, logger)
	maintenance.Start(ctx)

	// The console and the API share one floor; quitting either ends both
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var apiDone chan struct{}
	if cfg.APIEnabled() {
		apiDone = make(chan struct{})
		srv := api.NewServer(cfg.HTTPAddr, api.New(floor, stats, logger))
		go func() {
			defer close(apiDone)
			logger.Info("Serving API on http://%s", cfg.HTTPAddr)
			if err := api.Serve(runCtx, srv); err != nil {
				logger.Error("API server stopped: %v", err)
				cancel()
			}
		}()
	}

	if err := cli.Run(runCtx, os.Stdin); err != nil {
		logger.Error("Console stopped: %v", err)
	}

	// Cleanup and exit
	cancel()
	if apiDone != nil {
		<-apiDone
	}
	maintenance.Stop()
	if err := wallet.Close(context.Background()); err != nil {
		logger.Error("Error during shutdown: %v", err)
		os.Exit(1)
	}
	fmt.Println("Profile saved. Good night.")
}

func openProfileStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (profile.Repository, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		logger.Info("Using SQLite profile at %s", cfg.ProfilePath)
		return profile.NewSQLiteRepository(ctx, cfg.ProfilePath, logger)
	case config.StoreMemory:
		logger.Info("Using in-memory profile; nothing will be saved")
		return profile.NewMemoryRepository(), nil
	default:
		logger.Info("Using JSON profile at %s", cfg.ProfilePath)
		return profile.NewFileRepository(cfg.ProfilePath), nil
	}
}
