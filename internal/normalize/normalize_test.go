package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

func speaker(order int, name string) domain.Speaker {
	sp := domain.NewSpeaker(order)
	sp.Name = name
	return sp
}

func TestSpeakersDedupKeepsEarliest(t *testing.T) {
	t.Parallel()

	first := speaker(0, "Jane Doe")
	first.Tag = "Artist"
	second := speaker(2, "Jane Doe")
	second.Tag = "Duplicate Billing"

	out := Speakers([]domain.Speaker{first, speaker(1, "Alice"), second})

	require.Len(t, out, 2)
	assert.Equal(t, "Jane Doe", out[0].Name)
	assert.Equal(t, "Artist", out[0].Tag)
	assert.Equal(t, "Alice", out[1].Name)
}

func TestSpeakersRestoresPageOrder(t *testing.T) {
	t.Parallel()

	out := Speakers([]domain.Speaker{
		speaker(2, "Carol"),
		speaker(0, "Alice"),
		speaker(1, "Bob"),
	})

	require.Len(t, out, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"},
		[]string{out[0].Name, out[1].Name, out[2].Name})
}

func TestSpeakersDropsBlankNames(t *testing.T) {
	t.Parallel()

	out := Speakers([]domain.Speaker{
		speaker(0, ""),
		speaker(1, "   \t  "),
		speaker(2, "Alice"),
	})

	require.Len(t, out, 1)
	assert.Equal(t, "Alice", out[0].Name)
}

func TestSpeakersCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	sp := speaker(0, "  Jane \n  Doe  ")
	sp.Tag = "Chief Artist"

	out := Speakers([]domain.Speaker{sp})

	require.Len(t, out, 1)
	assert.Equal(t, "Jane Doe", out[0].Name)
	assert.Equal(t, "Chief Artist", out[0].Tag)
}

// Whitespace-differing names collapse to the same key and dedup.
func TestSpeakersDedupAfterCollapse(t *testing.T) {
	t.Parallel()

	out := Speakers([]domain.Speaker{
		speaker(0, "Jane Doe"),
		speaker(1, "Jane   Doe"),
	})

	assert.Len(t, out, 1)
}

func TestSpeakersIdempotent(t *testing.T) {
	t.Parallel()

	in := []domain.Speaker{
		speaker(3, " Jane  Doe "),
		speaker(0, "Alice"),
		speaker(1, ""),
		speaker(2, "Alice"),
	}

	once := Speakers(in)
	twice := Speakers(once)
	assert.Equal(t, once, twice)
}

func TestRunDropsEmptyTracks(t *testing.T) {
	t.Parallel()

	scrapedAt := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	in := domain.RunResult{
		BaseURL:   "https://www.nft.nyc",
		ScrapedAt: scrapedAt,
		Tracks: []domain.TrackResult{
			{Track: domain.Track{Name: "MAIN"}, Speakers: []domain.Speaker{speaker(0, "Alice")}},
			{Track: domain.Track{Name: "GHOST"}, Speakers: []domain.Speaker{speaker(0, "  ")}},
		},
	}

	out := Run(in)

	require.Len(t, out.Tracks, 1)
	assert.Equal(t, "MAIN", out.Tracks[0].Track.Name)
	assert.Equal(t, "https://www.nft.nyc", out.BaseURL)
	assert.Equal(t, scrapedAt, out.ScrapedAt)
}
