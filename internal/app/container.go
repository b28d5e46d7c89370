// Package app assembles the scraper's services and owns the run lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/browser"
	"github.com/kapu/nftnyc-speaker-scraper/internal/config"
	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
	"github.com/kapu/nftnyc-speaker-scraper/internal/export"
	"github.com/kapu/nftnyc-speaker-scraper/internal/normalize"
	"github.com/kapu/nftnyc-speaker-scraper/internal/scrape"
)

// ErrNoData is returned when every track came back empty.
var ErrNoData = errors.New("no data extracted")

const timestampLayout = "20060102_150405"

// Container wires the browser session, scrape pipeline and exporters
// together for one run.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	session  *browser.Session
	pipeline *scrape.Pipeline
	excel    *export.ExcelExporter
	json     *export.JSONExporter
}

// Build launches the browser and assembles the pipeline.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	session, err := browser.NewSession(ctx, cfg.Scraper.Headless, cfg.Scraper.Timing.NavigationTimeout(), logger)
	if err != nil {
		return nil, fmt.Errorf("starting browser session: %w", err)
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		session:  session,
		pipeline: scrape.NewPipeline(session, cfg.Scraper, logger),
		excel:    export.NewExcelExporter(logger),
		json:     export.NewJSONExporter(logger),
	}, nil
}

// Close shuts the browser down.
func (c *Container) Close() {
	if c.session != nil {
		c.session.Close()
	}
}

// Run executes one full scrape, normalizes the records, writes both output
// documents and logs the final summary. A context cancellation (user
// interrupt) aborts without writing partial output.
func (c *Container) Run(ctx context.Context) error {
	start := time.Now()

	raw, err := c.pipeline.ScrapeAll(ctx)
	if err != nil {
		return err
	}

	result := normalize.Run(raw)
	if len(result.Tracks) == 0 {
		c.Logger.Error("No data extracted")
		return ErrNoData
	}

	xlsxPath, jsonPath, err := c.outputPaths(result.ScrapedAt)
	if err != nil {
		return err
	}

	if err := c.excel.Write(result, xlsxPath); err != nil {
		return err
	}
	c.Logger.Info("Saved workbook", zap.String("path", xlsxPath))

	if err := c.json.Write(result, jsonPath); err != nil {
		return err
	}

	c.logSummary(result, time.Since(start))
	return nil
}

func (c *Container) outputPaths(scrapedAt time.Time) (string, string, error) {
	out := c.Config.Output
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	base := out.BaseFilename
	if out.UseTimestamp {
		base = fmt.Sprintf("%s_%s", base, scrapedAt.Format(timestampLayout))
	}
	return filepath.Join(out.Dir, base+".xlsx"), filepath.Join(out.Dir, base+".json"), nil
}

// logSummary mirrors the per-track breakdown the operator cares about:
// totals, throughput and handle coverage.
func (c *Container) logSummary(result domain.RunResult, elapsed time.Duration) {
	total := result.TotalSpeakers()
	stats := result.Stats()

	perSecond := 0.0
	if elapsed > 0 {
		perSecond = float64(total) / elapsed.Seconds()
	}

	c.Logger.Info("Run complete",
		zap.Duration("elapsed", elapsed.Round(100*time.Millisecond)),
		zap.Float64("speakers_per_second", perSecond),
		zap.Int("tracks", len(result.Tracks)),
		zap.Int("total_tracks_configured", len(c.Config.Scraper.Tracks)),
		zap.Int("speakers", total),
		zap.Int("with_x", stats.WithX),
		zap.Int("with_instagram", stats.WithInstagram),
		zap.Int("with_linkedin", stats.WithLinkedIn))

	for _, tr := range result.Tracks {
		ts := tr.Stats()
		c.Logger.Info("Track breakdown",
			zap.String("track", tr.Track.Name),
			zap.Int("speakers", len(tr.Speakers)),
			zap.Int("with_x", ts.WithX),
			zap.Int("with_instagram", ts.WithInstagram),
			zap.Int("with_linkedin", ts.WithLinkedIn),
			zap.String("first", tr.Speakers[0].Name))
	}
}
