package scrape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

func modalHTML(name string, hrefs ...string) string {
	links := ""
	for _, href := range hrefs {
		links += fmt.Sprintf(`<li><a href=%q>link</a></li>`, href)
	}
	return fmt.Sprintf(`
		<div class="sz-speaker sz-speaker--full">
			<h3 class="sz-speaker__name">%s</h3>
			<h4 class="sz-speaker__tagline">Builder</h4>
			<ul class="sz-speaker__links">%s</ul>
		</div>`, name, links)
}

func TestHarvestModal(t *testing.T) {
	t.Parallel()

	name, links := HarvestModal(modalHTML("Jane Doe",
		"https://twitter.com/janedoe",
		"https://www.instagram.com/jane.doe",
		"https://linkedin.com/in/jane-doe",
	))

	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, "janedoe", links.X)
	assert.Equal(t, "jane.doe", links.Instagram)
	assert.Equal(t, "linkedin.com/in/jane-doe", links.LinkedIn)
}

// The last link of each platform determines the slot value.
func TestHarvestModalLastLinkWins(t *testing.T) {
	t.Parallel()

	_, links := HarvestModal(modalHTML("Jane Doe",
		"https://twitter.com/first_handle",
		"https://twitter.com/second_handle",
	))

	assert.Equal(t, "second_handle", links.X)
}

// A classified link whose handle is rejected still overwrites the slot,
// leaving it absent.
func TestHarvestModalRejectedLinkOverwrites(t *testing.T) {
	t.Parallel()

	_, links := HarvestModal(modalHTML("Jane Doe",
		"https://instagram.com/jane.doe",
		"https://instagram.com/explore",
	))

	assert.Equal(t, domain.AbsentHandle, links.Instagram)
}

func TestHarvestModalNoLinkList(t *testing.T) {
	t.Parallel()

	name, links := HarvestModal(`<div class="sz-speaker sz-speaker--full">
		<h3 class="sz-speaker__name">Jane Doe</h3></div>`)

	assert.Equal(t, "Jane Doe", name)
	assert.Equal(t, domain.AbsentHandle, links.X)
	assert.Equal(t, domain.AbsentHandle, links.Instagram)
	assert.Equal(t, domain.AbsentHandle, links.LinkedIn)
}

func TestHarvestModalEmptyInput(t *testing.T) {
	t.Parallel()

	name, links := HarvestModal("")

	assert.Empty(t, name)
	assert.Equal(t, domain.AbsentHandle, links.X)
	assert.Equal(t, domain.AbsentHandle, links.Instagram)
	assert.Equal(t, domain.AbsentHandle, links.LinkedIn)
}

func TestHarvestModalUnclassifiedLinksIgnored(t *testing.T) {
	t.Parallel()

	_, links := HarvestModal(modalHTML("Jane Doe",
		"https://example.com/janedoe",
		"mailto:jane@example.com",
	))

	assert.Equal(t, domain.AbsentHandle, links.X)
	assert.Equal(t, domain.AbsentHandle, links.Instagram)
	assert.Equal(t, domain.AbsentHandle, links.LinkedIn)
}
