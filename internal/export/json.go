package export

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
	scraperrors "github.com/kapu/nftnyc-speaker-scraper/pkg/errors"
)

// JSONExporter writes the structured {metadata, tracks} document.
type JSONExporter struct {
	logger *zap.Logger
}

func NewJSONExporter(logger *zap.Logger) *JSONExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONExporter{logger: logger}
}

type jsonDocument struct {
	Metadata jsonMetadata `json:"metadata"`
	Tracks   orderedTracks `json:"tracks"`
}

type jsonMetadata struct {
	ScrapedAt     string `json:"scraped_at"`
	BaseURL       string `json:"base_url"`
	TotalTracks   int    `json:"total_tracks"`
	TotalSpeakers int    `json:"total_speakers"`
	WithX         int    `json:"with_x"`
	WithInstagram int    `json:"with_instagram"`
	WithLinkedIn  int    `json:"with_linkedin"`
}

type jsonTrack struct {
	SpeakerCount int           `json:"speaker_count"`
	Stats        jsonStats     `json:"stats"`
	Speakers     []jsonSpeaker `json:"speakers"`
}

type jsonStats struct {
	WithX         int `json:"with_x"`
	WithInstagram int `json:"with_instagram"`
	WithLinkedIn  int `json:"with_linkedin"`
}

// jsonSpeaker is the exported record shape. Absent handles encode as null so
// consumers can distinguish "no handle" from a real value; the internal
// order field never appears.
type jsonSpeaker struct {
	Name      string  `json:"name"`
	Tag       string  `json:"tag"`
	ImageURL  string  `json:"image_url"`
	XHandle   *string `json:"x_handle"`
	LinkedIn  *string `json:"linkedin"`
	Instagram *string `json:"instagram"`
}

// orderedTracks marshals as a JSON object whose keys appear in slice order,
// preserving the configured track sequence (a Go map would not).
type orderedTracks []namedTrack

type namedTrack struct {
	name  string
	track jsonTrack
}

func (t orderedTracks) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.track)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Write renders result as an indented JSON document at path.
func (e *JSONExporter) Write(result domain.RunResult, path string) error {
	doc := buildDocument(result)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return scraperrors.NewExportError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return scraperrors.NewExportError(path, err)
	}
	e.logger.Info("Saved JSON document",
		zap.String("path", path),
		zap.Int("tracks", len(result.Tracks)),
		zap.Int("speakers", result.TotalSpeakers()))
	return nil
}

func buildDocument(result domain.RunResult) jsonDocument {
	total := result.Stats()
	doc := jsonDocument{
		Metadata: jsonMetadata{
			ScrapedAt:     result.ScrapedAt.Format(time.RFC3339),
			BaseURL:       result.BaseURL,
			TotalTracks:   len(result.Tracks),
			TotalSpeakers: result.TotalSpeakers(),
			WithX:         total.WithX,
			WithInstagram: total.WithInstagram,
			WithLinkedIn:  total.WithLinkedIn,
		},
		Tracks: make(orderedTracks, 0, len(result.Tracks)),
	}

	for _, tr := range result.Tracks {
		stats := tr.Stats()
		speakers := make([]jsonSpeaker, 0, len(tr.Speakers))
		for _, sp := range tr.Speakers {
			speakers = append(speakers, jsonSpeaker{
				Name:      sp.Name,
				Tag:       sp.Tag,
				ImageURL:  sp.ImageURL,
				XHandle:   nullableHandle(sp.XHandle),
				LinkedIn:  nullableHandle(sp.LinkedIn),
				Instagram: nullableHandle(sp.Instagram),
			})
		}
		doc.Tracks = append(doc.Tracks, namedTrack{
			name: tr.Track.Name,
			track: jsonTrack{
				SpeakerCount: len(tr.Speakers),
				Stats: jsonStats{
					WithX:         stats.WithX,
					WithInstagram: stats.WithInstagram,
					WithLinkedIn:  stats.WithLinkedIn,
				},
				Speakers: speakers,
			},
		})
	}
	return doc
}

func nullableHandle(s string) *string {
	if s == "" || s == domain.AbsentHandle {
		return nil
	}
	return &s
}
