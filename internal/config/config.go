// Package config provides configuration for the speaker scraper.
//
// The compiled-in defaults are the contract: a plain run needs no flags,
// files or environment variables. The .env, SCRAPER_* / LOG_* environment
// and optional YAML-file overrides exist only as development and test
// conveniences and are never required.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

// Configuration validation errors.
var (
	ErrNoTracks           = errors.New("at least one track is required")
	ErrTrackMissingName   = errors.New("track name is required")
	ErrTrackMissingPath   = errors.New("track path is required and must start with /")
	ErrMissingBaseURL     = errors.New("scraper.base_url is required")
	ErrMissingBaseName    = errors.New("output.base_filename is required")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrNegativeTimingMs   = errors.New("timing values must be non-negative milliseconds")
	ErrZeroListingTimeout = errors.New("timing.listing_timeout_ms must be at least 1")
	ErrZeroNavTimeout     = errors.New("timing.navigation_timeout_ms must be at least 1")
)

type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScraperConfig describes what to scrape and how to pace it.
type ScraperConfig struct {
	BaseURL  string         `yaml:"base_url"`
	Headless bool           `yaml:"headless"`
	Tracks   []domain.Track `yaml:"tracks"`
	Timing   TimingConfig   `yaml:"timing"`
}

// TimingConfig holds the pacing delays in milliseconds. The site exposes no
// readiness signal, so the page-load wait is a deliberate fixed delay.
type TimingConfig struct {
	NavigationTimeoutMs int `yaml:"navigation_timeout_ms"`
	PageLoadWaitMs      int `yaml:"page_load_wait_ms"`
	ListingTimeoutMs    int `yaml:"listing_timeout_ms"`
	ModalWaitMs         int `yaml:"modal_wait_ms"`
	ModalVisibleMs      int `yaml:"modal_visible_ms"`
	ModalCloseMs        int `yaml:"modal_close_ms"`
	TrackPauseMs        int `yaml:"track_pause_ms"`
}

func (t TimingConfig) NavigationTimeout() time.Duration { return msDuration(t.NavigationTimeoutMs) }

func (t TimingConfig) PageLoadWait() time.Duration   { return msDuration(t.PageLoadWaitMs) }
func (t TimingConfig) ListingTimeout() time.Duration { return msDuration(t.ListingTimeoutMs) }
func (t TimingConfig) ModalWait() time.Duration      { return msDuration(t.ModalWaitMs) }
func (t TimingConfig) ModalVisible() time.Duration   { return msDuration(t.ModalVisibleMs) }
func (t TimingConfig) ModalClose() time.Duration     { return msDuration(t.ModalCloseMs) }
func (t TimingConfig) TrackPause() time.Duration     { return msDuration(t.TrackPauseMs) }

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// OutputConfig controls where and under what names the documents are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	BaseFilename string `yaml:"base_filename"`
	UseTimestamp bool   `yaml:"use_timestamp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultTracks is the fixed list of nft.nyc speaker track pages.
var DefaultTracks = []domain.Track{
	{Name: "FEATURED", Path: "/speakers"},
	{Name: "COMMUNITY", Path: "/speakers/community"},
	{Name: "AI", Path: "/speakers/ai"},
	{Name: "ART", Path: "/speakers/art"},
	{Name: "ENTERTAINMENT", Path: "/speakers/entertainment"},
	{Name: "LEGAL", Path: "/speakers/legal"},
	{Name: "BRANDS", Path: "/speakers/brands"},
	{Name: "FUTURE", Path: "/speakers/future"},
	{Name: "GAMING", Path: "/speakers/gaming"},
	{Name: "BTC & ORDINALS", Path: "/speakers/bitcoin"},
}

// Default returns the built-in configuration.
func Default() *Config {
	tracks := make([]domain.Track, len(DefaultTracks))
	copy(tracks, DefaultTracks)

	return &Config{
		Scraper: ScraperConfig{
			BaseURL:  "https://www.nft.nyc",
			Headless: true,
			Tracks:   tracks,
			Timing: TimingConfig{
				NavigationTimeoutMs: 30000,
				PageLoadWaitMs:      3000,
				ListingTimeoutMs:    10000,
				ModalWaitMs:         700,
				ModalVisibleMs:      1200,
				ModalCloseMs:        350,
				TrackPauseMs:        500,
			},
		},
		Output: OutputConfig{
			Dir:          ".",
			BaseFilename: "nyc_speaker_all_tracks",
			UseTimestamp: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the runtime configuration: defaults, then .env / environment
// overrides, then an optional YAML file named by SCRAPER_CONFIG.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	cfg.Scraper.BaseURL = getEnv("SCRAPER_BASE_URL", cfg.Scraper.BaseURL)
	cfg.Output.Dir = getEnv("SCRAPER_OUTPUT_DIR", cfg.Output.Dir)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.File = getEnv("LOG_FILE", cfg.Logging.File)

	if path := os.Getenv("SCRAPER_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile overlays the YAML document at path onto the configuration.
// Fields absent from the document keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scraper.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if len(c.Scraper.Tracks) == 0 {
		return ErrNoTracks
	}
	for _, track := range c.Scraper.Tracks {
		if strings.TrimSpace(track.Name) == "" {
			return fmt.Errorf("%w (path %q)", ErrTrackMissingName, track.Path)
		}
		if !strings.HasPrefix(track.Path, "/") {
			return fmt.Errorf("%w (track %q)", ErrTrackMissingPath, track.Name)
		}
	}

	t := c.Scraper.Timing
	for _, ms := range []int{t.PageLoadWaitMs, t.ModalWaitMs, t.ModalVisibleMs, t.ModalCloseMs, t.TrackPauseMs} {
		if ms < 0 {
			return ErrNegativeTimingMs
		}
	}
	if t.ListingTimeoutMs < 1 {
		return ErrZeroListingTimeout
	}
	if t.NavigationTimeoutMs < 1 {
		return ErrZeroNavTimeout
	}

	if strings.TrimSpace(c.Output.BaseFilename) == "" {
		return ErrMissingBaseName
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
