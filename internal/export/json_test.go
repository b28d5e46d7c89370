package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

func TestJSONExporterWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, NewJSONExporter(nil).Write(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Metadata struct {
			ScrapedAt     string `json:"scraped_at"`
			BaseURL       string `json:"base_url"`
			TotalTracks   int    `json:"total_tracks"`
			TotalSpeakers int    `json:"total_speakers"`
			WithX         int    `json:"with_x"`
		} `json:"metadata"`
		Tracks map[string]struct {
			SpeakerCount int `json:"speaker_count"`
			Stats        struct {
				WithX int `json:"with_x"`
			} `json:"stats"`
			Speakers []struct {
				Name    string  `json:"name"`
				XHandle *string `json:"x_handle"`
			} `json:"speakers"`
		} `json:"tracks"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "2026-08-23T14:05:00Z", doc.Metadata.ScrapedAt)
	assert.Equal(t, "https://www.nft.nyc", doc.Metadata.BaseURL)
	assert.Equal(t, 2, doc.Metadata.TotalTracks)
	assert.Equal(t, 3, doc.Metadata.TotalSpeakers)
	assert.Equal(t, 2, doc.Metadata.WithX)

	main, ok := doc.Tracks["MAIN"]
	require.True(t, ok)
	assert.Equal(t, 2, main.SpeakerCount)
	assert.Equal(t, 1, main.Stats.WithX)
	require.Len(t, main.Speakers, 2)

	require.NotNil(t, main.Speakers[0].XHandle)
	assert.Equal(t, "alice", *main.Speakers[0].XHandle)
	// Absent handles serialize as null, not the sentinel string.
	assert.Nil(t, main.Speakers[1].XHandle)
	assert.NotContains(t, string(data), `"N/A"`)
}

// Track keys must appear in configured order in the raw bytes; a plain map
// would sort them.
func TestJSONExporterTrackOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, NewJSONExporter(nil).Write(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	first := strings.Index(string(data), `"MAIN"`)
	second := strings.Index(string(data), `"BTC & ORDINALS"`)
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}

func TestNullableHandle(t *testing.T) {
	t.Parallel()

	assert.Nil(t, nullableHandle(""))
	assert.Nil(t, nullableHandle(domain.AbsentHandle))
	got := nullableHandle("alice")
	require.NotNil(t, got)
	assert.Equal(t, "alice", *got)
}
