package scrape

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/constants"
	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
	"github.com/kapu/nftnyc-speaker-scraper/internal/util"
	scraperrors "github.com/kapu/nftnyc-speaker-scraper/pkg/errors"
)

// ScrapeTrack extracts the speakers of one track page in on-page order.
//
// Navigation failures and listing timeouts are logged and yield an empty
// slice so the run continues with the next track. Per-entry failures yield a
// partial record; entries without a readable name produce an empty-name
// placeholder that the normalizer drops later.
func (p *Pipeline) ScrapeTrack(ctx context.Context, track domain.Track) []domain.Speaker {
	url := p.cfg.BaseURL + track.Path
	log := p.logger.With(zap.String("track", track.Name))
	log.Info("Scraping track", zap.String("url", url))

	sel := constants.Selectors

	if err := p.page.Navigate(ctx, url); err != nil {
		log.Error("Navigation failed", zap.Error(scraperrors.NewNavigationError(track.Name, url, err)))
		return nil
	}

	// The grid is rendered by page scripts with no readiness signal, so give
	// it a fixed settle window before polling for entries.
	if err := p.page.Pause(ctx, p.cfg.Timing.PageLoadWait()); err != nil {
		return nil
	}
	if err := p.page.WaitVisible(ctx, sel.SpeakerBlock, p.cfg.Timing.ListingTimeout()); err != nil {
		log.Error("Speaker grid never appeared",
			zap.Error(scraperrors.NewListingError(track.Name, sel.SpeakerBlock, err)))
		return nil
	}

	p.dismissCookieBanner(ctx)

	count, err := p.page.Count(ctx, sel.SpeakerBlock)
	if err != nil {
		log.Error("Counting speaker blocks failed", zap.Error(err))
		return nil
	}
	if count == 0 {
		log.Warn("No speakers found")
		return nil
	}
	log.Info("Found speakers", zap.Int("count", count))

	speakers := make([]domain.Speaker, 0, count)
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return speakers
		}
		sp := p.extractSpeaker(ctx, track, i)
		// Final fix-up: order stays sequential even when extraction bailed
		// out before assigning it.
		sp.Order = i
		speakers = append(speakers, sp)
	}

	stats := domain.TrackResult{Track: track, Speakers: speakers}.Stats()
	log.Info("Track complete",
		zap.Int("speakers", count),
		zap.Int("with_x", stats.WithX),
		zap.Int("with_instagram", stats.WithInstagram),
		zap.Int("with_linkedin", stats.WithLinkedIn),
		zap.String("first", speakers[0].Name))

	return speakers
}

// extractSpeaker reads one listing entry by position, opens its detail modal
// and merges the harvested social handles. Every step is best-effort; the
// modal is always closed before returning so state never leaks into the next
// entry.
func (p *Pipeline) extractSpeaker(ctx context.Context, track domain.Track, index int) domain.Speaker {
	sp := domain.NewSpeaker(index)
	sel := constants.Selectors

	name, err := p.page.TextAt(ctx, sel.SpeakerBlock, index, sel.SpeakerName)
	if err != nil {
		p.logger.Debug("Failed reading speaker name",
			zap.Error(scraperrors.NewEntryError(track.Name, index, err)))
		return sp
	}
	sp.Name = strings.TrimSpace(name)
	if sp.Name == "" {
		return sp
	}

	if tag, err := p.page.TextAt(ctx, sel.SpeakerBlock, index, sel.SpeakerTag); err == nil {
		sp.Tag = strings.TrimSpace(tag)
	}
	sp.ImageURL = p.imageURL(ctx, index)

	if err := p.page.ClickAt(ctx, sel.SpeakerBlock, index); err != nil {
		p.logger.Debug("Failed opening detail modal",
			zap.Error(scraperrors.NewEntryError(track.Name, index, err)))
		return sp
	}
	_ = p.page.Pause(ctx, p.cfg.Timing.ModalWait())

	if err := p.page.WaitVisible(ctx, sel.Modal, p.cfg.Timing.ModalVisible()); err == nil {
		if html, err := p.page.HTML(ctx, sel.Modal); err == nil && html != "" {
			modalName, links := HarvestModal(html)
			// Only merge when the modal really shows this entry; a stale
			// modal from a previous entry must not contaminate the record.
			if util.Normalize(modalName) == util.Normalize(sp.Name) {
				sp.XHandle = links.X
				sp.Instagram = links.Instagram
				sp.LinkedIn = links.LinkedIn
			}
		}
	}

	p.closeModal(ctx)
	return sp
}

// imageURL reads the entry's image source, falling back to data-src for
// lazy-loaded images, and absolutizes relative paths against the base URL.
func (p *Pipeline) imageURL(ctx context.Context, index int) string {
	sel := constants.Selectors
	src, err := p.page.AttrAt(ctx, sel.SpeakerBlock, index, sel.SpeakerImage, "src")
	if err != nil {
		return ""
	}
	if src == "" {
		src, _ = p.page.AttrAt(ctx, sel.SpeakerBlock, index, sel.SpeakerImage, "data-src")
	}
	if src == "" {
		return ""
	}
	if strings.HasPrefix(src, "http") {
		return src
	}
	return p.cfg.BaseURL + src
}

// closeModal closes the open detail view: close button first, then the
// overlay, then Escape as a last resort. Always called, even after failures.
func (p *Pipeline) closeModal(ctx context.Context) {
	sel := constants.Selectors
	waits := constants.FixedWaits

	if err := p.page.Click(ctx, sel.ModalClose, waits.CloseButton); err == nil {
		_ = p.page.Pause(ctx, p.cfg.Timing.ModalClose())
		return
	}
	if err := p.page.Click(ctx, sel.ModalOverlay, waits.Overlay); err == nil {
		_ = p.page.Pause(ctx, p.cfg.Timing.ModalClose())
		return
	}
	_ = p.page.PressEscape(ctx)
	_ = p.page.Pause(ctx, waits.EscapeSettle)
}

// dismissCookieBanner clicks away the one-time consent overlay when present.
// Best-effort and never fatal.
func (p *Pipeline) dismissCookieBanner(ctx context.Context) {
	sel := constants.Selectors
	waits := constants.FixedWaits

	if err := p.page.WaitVisible(ctx, sel.CookieBanner, waits.CookieBanner); err != nil {
		return
	}
	if err := p.page.Click(ctx, sel.CookieAccept, waits.CookieBanner); err != nil {
		return
	}
	_ = p.page.Pause(ctx, waits.CookieSettle)
}
