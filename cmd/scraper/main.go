package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/app"
	"github.com/kapu/nftnyc-speaker-scraper/internal/config"
	"github.com/kapu/nftnyc-speaker-scraper/internal/util"
)

func main() {
	headless := flag.Bool("headless", true, "run the browser without a visible window")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Scraper.Headless = *headless

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("NFT.NYC speaker scraper starting",
		zap.Bool("headless", *headless),
		zap.String("base_url", cfg.Scraper.BaseURL),
		zap.Int("tracks", len(cfg.Scraper.Tracks)))
	for i, track := range cfg.Scraper.Tracks {
		logger.Info("Configured track",
			zap.Int("index", i+1),
			zap.String("name", track.Name),
			zap.String("path", track.Path))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received interrupt, aborting run", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Interrupted by user")
			return
		}
		logger.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

// run isolates the scrape so a panic anywhere in it is reported with a stack
// trace instead of crashing the process silently.
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Fatal error", zap.Any("panic", r), zap.Stack("stacktrace"))
			err = fmt.Errorf("fatal: %v", r)
		}
	}()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	return container.Run(ctx)
}
