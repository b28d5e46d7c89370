package scrape

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kapu/nftnyc-speaker-scraper/internal/domain"
)

// Handle extraction is pure pattern matching: given free-form link text it
// returns a normalized handle or domain.AbsentHandle. It never fails and
// never returns an empty string.

var (
	xHandleRe   = regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/@?([A-Za-z0-9_]{1,15})`)
	instagramRe = regexp.MustCompile(`(?i)instagram\.com/([A-Za-z0-9_.]{1,30})`)
	linkedinRe  = regexp.MustCompile(`(?i)linkedin\.com/(in|company)/([A-Za-z0-9-]{3,100})`)
)

// Platform-reserved path segments that are never personal handles.
var (
	reservedX = map[string]bool{
		"home": true, "explore": true, "i": true, "intent": true,
		"share": true, "login": true, "uwt": true, "nftnyc": true, "twitter": true,
	}
	reservedInstagram = map[string]bool{
		"explore": true, "accounts": true, "direct": true,
		"uwt": true, "nftnyc": true, "instagram": true,
	}
	reservedLinkedIn = map[string]bool{
		"feed": true, "jobs": true, "help": true, "about": true, "linkedin": true,
	}
)

// ExtractX returns the lowercase X/Twitter handle found in text, or the
// absent sentinel. Purely numeric segments and reserved paths are rejected.
func ExtractX(text string) string {
	if text == "" {
		return domain.AbsentHandle
	}
	m := xHandleRe.FindStringSubmatch(text)
	if m == nil {
		return domain.AbsentHandle
	}
	handle := strings.ToLower(m[1])
	if reservedX[handle] || isDigits(handle) {
		return domain.AbsentHandle
	}
	return handle
}

// ExtractInstagram returns the lowercase Instagram handle found in text, or
// the absent sentinel. Segments that start or end with a period are rejected.
func ExtractInstagram(text string) string {
	if text == "" {
		return domain.AbsentHandle
	}
	m := instagramRe.FindStringSubmatch(text)
	if m == nil {
		return domain.AbsentHandle
	}
	handle := strings.ToLower(m[1])
	if reservedInstagram[handle] || strings.HasPrefix(handle, ".") || strings.HasSuffix(handle, ".") {
		return domain.AbsentHandle
	}
	return handle
}

// ExtractLinkedIn returns a normalized "linkedin.com/{in|company}/{segment}"
// path for the profile found in text, or the absent sentinel. The segment's
// case is preserved.
func ExtractLinkedIn(text string) string {
	if text == "" {
		return domain.AbsentHandle
	}
	m := linkedinRe.FindStringSubmatch(text)
	if m == nil {
		return domain.AbsentHandle
	}
	kind, segment := strings.ToLower(m[1]), m[2]
	if reservedLinkedIn[strings.ToLower(segment)] {
		return domain.AbsentHandle
	}
	return fmt.Sprintf("linkedin.com/%s/%s", kind, segment)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
