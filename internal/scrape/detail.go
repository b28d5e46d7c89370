package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kapu/nftnyc-speaker-scraper/internal/constants"
	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

// SocialLinks holds the per-platform handle slots harvested from one detail
// modal. Unresolved slots carry the absent sentinel.
type SocialLinks struct {
	X         string
	Instagram string
	LinkedIn  string
}

func defaultSocialLinks() SocialLinks {
	return SocialLinks{
		X:         domain.AbsentHandle,
		Instagram: domain.AbsentHandle,
		LinkedIn:  domain.AbsentHandle,
	}
}

// HarvestModal parses one detail modal's HTML and returns the displayed
// speaker name plus the social handles found in the modal's link list.
//
// Each classified link overwrites its platform's slot, so when a modal
// carries several links for the same platform the last one wins. Parsing
// problems never surface as errors; callers get the absent defaults.
func HarvestModal(html string) (string, SocialLinks) {
	links := defaultSocialLinks()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", links
	}

	name := strings.TrimSpace(doc.Find(constants.Selectors.ModalName).First().Text())

	doc.Find(constants.Selectors.ModalLinks).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		switch {
		case strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com"):
			links.X = ExtractX(href)
		case strings.Contains(href, "instagram.com"):
			links.Instagram = ExtractInstagram(href)
		case strings.Contains(href, "linkedin.com"):
			links.LinkedIn = ExtractLinkedIn(href)
		}
	})

	return name, links
}
