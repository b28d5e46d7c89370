package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/config"
	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

// Page is the rendering/interaction surface the pipeline drives. It is
// satisfied by browser.Session in production and by fakes in tests.
//
// Indexed methods look the element up by position against the current render
// snapshot on every call; the snapshot may have been refreshed between calls
// (closing a detail modal re-renders the grid), which is exactly why callers
// must not hold element references across interactions.
type Page interface {
	Navigate(ctx context.Context, url string) error
	Pause(ctx context.Context, d time.Duration) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Count(ctx context.Context, selector string) (int, error)
	TextAt(ctx context.Context, selector string, index int, child string) (string, error)
	AttrAt(ctx context.Context, selector string, index int, child, attr string) (string, error)
	ClickAt(ctx context.Context, selector string, index int) error
	Click(ctx context.Context, selector string, timeout time.Duration) error
	HTML(ctx context.Context, selector string) (string, error)
	PressEscape(ctx context.Context) error
}

// Pipeline scrapes every configured track sequentially over a single shared
// page. There is no parallelism by design: one browser context, fixed pacing
// delays, deterministic order.
type Pipeline struct {
	page   Page
	cfg    config.ScraperConfig
	logger *zap.Logger
}

func NewPipeline(page Page, cfg config.ScraperConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		page:   page,
		cfg:    cfg,
		logger: logger,
	}
}

// ScrapeAll visits each track in configured order and accumulates the
// non-empty results. A track that fails or yields nothing is simply absent
// from the result. Context cancellation aborts the run between steps and is
// returned to the caller.
func (p *Pipeline) ScrapeAll(ctx context.Context) (domain.RunResult, error) {
	result := domain.RunResult{
		BaseURL:   p.cfg.BaseURL,
		ScrapedAt: time.Now(),
	}

	p.logger.Info("Scraping tracks",
		zap.Int("tracks", len(p.cfg.Tracks)),
		zap.String("base_url", p.cfg.BaseURL))

	for i, track := range p.cfg.Tracks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		p.logger.Info("Track progress",
			zap.Int("current", i+1),
			zap.Int("total", len(p.cfg.Tracks)),
			zap.String("track", track.Name))

		speakers := p.ScrapeTrack(ctx, track)
		if len(speakers) > 0 {
			result.Tracks = append(result.Tracks, domain.TrackResult{Track: track, Speakers: speakers})
		}

		if err := p.page.Pause(ctx, p.cfg.Timing.TrackPause()); err != nil {
			return result, err
		}
	}

	return result, nil
}
