// Package normalize cleans scraped speaker records without disturbing their
// on-page order.
package normalize

import (
	"sort"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
	"github.com/kapu/nftnyc-speaker-scraper/internal/util"
)

// Speakers returns a cleaned copy of in: whitespace runs collapsed in every
// text field, blank-named records dropped, records stably sorted by their
// original on-page position, and later duplicates of a name removed so the
// earliest occurrence's field values win. Applying it twice yields the same
// result.
func Speakers(in []domain.Speaker) []domain.Speaker {
	cleaned := make([]domain.Speaker, 0, len(in))
	for _, sp := range in {
		sp.Name = util.CollapseWhitespace(sp.Name)
		sp.Tag = util.CollapseWhitespace(sp.Tag)
		sp.ImageURL = util.CollapseWhitespace(sp.ImageURL)
		sp.XHandle = util.CollapseWhitespace(sp.XHandle)
		sp.Instagram = util.CollapseWhitespace(sp.Instagram)
		sp.LinkedIn = util.CollapseWhitespace(sp.LinkedIn)
		if sp.Name == "" {
			continue
		}
		cleaned = append(cleaned, sp)
	}

	// Input should already be ordered; the sort is defensive and stable so
	// equal orders keep their relative position.
	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Order < cleaned[j].Order
	})

	seen := make(map[string]bool, len(cleaned))
	out := make([]domain.Speaker, 0, len(cleaned))
	for _, sp := range cleaned {
		if seen[sp.Name] {
			continue
		}
		seen[sp.Name] = true
		out = append(out, sp)
	}
	return out
}

// Run normalizes every track of a run result and drops tracks left empty.
func Run(in domain.RunResult) domain.RunResult {
	out := domain.RunResult{
		BaseURL:   in.BaseURL,
		ScrapedAt: in.ScrapedAt,
	}
	for _, tr := range in.Tracks {
		speakers := Speakers(tr.Speakers)
		if len(speakers) == 0 {
			continue
		}
		out.Tracks = append(out.Tracks, domain.TrackResult{Track: tr.Track, Speakers: speakers})
	}
	return out
}
