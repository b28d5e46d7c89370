package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

func TestExtractX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain handle", "https://twitter.com/elonmusk", "elonmusk"},
		{"x.com domain", "https://x.com/elonmusk", "elonmusk"},
		{"leading at sign", "https://twitter.com/@someone", "someone"},
		{"uppercase url and handle", "HTTPS://X.COM/@JackDorsey", "jackdorsey"},
		{"purely numeric", "https://x.com/12345", domain.AbsentHandle},
		{"reserved home", "https://twitter.com/home", domain.AbsentHandle},
		{"reserved intent", "https://twitter.com/intent", domain.AbsentHandle},
		{"reserved nftnyc", "https://twitter.com/nftnyc", domain.AbsentHandle},
		{"empty input", "", domain.AbsentHandle},
		{"unrelated url", "https://example.com/profile", domain.AbsentHandle},
		{"underscore handle", "https://twitter.com/some_name_1", "some_name_1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractX(tt.text))
		})
	}
}

func TestExtractXRejectsEveryReservedWord(t *testing.T) {
	t.Parallel()

	for word := range reservedX {
		assert.Equal(t, domain.AbsentHandle, ExtractX("https://twitter.com/"+word), "word %q", word)
	}
}

func TestExtractInstagram(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain handle", "https://instagram.com/janedoe", "janedoe"},
		{"www prefix", "https://www.instagram.com/jane.doe", "jane.doe"},
		{"uppercase lowered", "https://INSTAGRAM.COM/JaneDoe", "janedoe"},
		{"reserved explore", "https://instagram.com/explore", domain.AbsentHandle},
		{"reserved accounts", "https://instagram.com/accounts", domain.AbsentHandle},
		{"leading period", "https://instagram.com/.hidden", domain.AbsentHandle},
		{"empty input", "", domain.AbsentHandle},
		{"no match", "https://example.com/janedoe", domain.AbsentHandle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractInstagram(tt.text))
		})
	}
}

func TestExtractInstagramRejectsEveryReservedWord(t *testing.T) {
	t.Parallel()

	for word := range reservedInstagram {
		assert.Equal(t, domain.AbsentHandle, ExtractInstagram("https://instagram.com/"+word), "word %q", word)
	}
}

func TestExtractLinkedIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"company page", "https://www.linkedin.com/company/acme-corp", "linkedin.com/company/acme-corp"},
		{"personal page", "https://linkedin.com/in/jane-doe", "linkedin.com/in/jane-doe"},
		{"segment case preserved", "https://linkedin.com/in/Jane-Doe", "linkedin.com/in/Jane-Doe"},
		{"reserved jobs", "https://linkedin.com/in/jobs", domain.AbsentHandle},
		{"reserved feed", "https://linkedin.com/in/feed", domain.AbsentHandle},
		{"segment too short", "https://linkedin.com/in/ab", domain.AbsentHandle},
		{"empty input", "", domain.AbsentHandle},
		{"no match", "https://example.com/in/jane-doe", domain.AbsentHandle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractLinkedIn(tt.text))
		})
	}
}

// Extraction is total: whatever the input, the result is either a valid
// handle or the absent sentinel, never an empty string.
func TestExtractionNeverReturnsEmpty(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "twitter.com/", "x.com", "instagram.com/", "linkedin.com/in/",
		"://///", "twitter.com/%%%", "linkedin.com/company/",
		"https://twitter.com/a_very_long_handle_exceeding_limits",
	}
	for _, in := range inputs {
		assert.NotEmpty(t, ExtractX(in), "ExtractX(%q)", in)
		assert.NotEmpty(t, ExtractInstagram(in), "ExtractInstagram(%q)", in)
		assert.NotEmpty(t, ExtractLinkedIn(in), "ExtractLinkedIn(%q)", in)
	}
}
