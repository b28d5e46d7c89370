package errors

import "fmt"

// Error codes
const (
	CodeNavigation = "NAVIGATION_ERROR"
	CodeListing    = "LISTING_ERROR"
	CodeEntry      = "ENTRY_ERROR"
	CodeExport     = "EXPORT_ERROR"
)

// ScrapeError carries the failure class, the track it occurred in and
// arbitrary context alongside the wrapped cause.
type ScrapeError struct {
	Message string
	Code    string
	Track   string
	Context map[string]any
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// NewNavigationError marks a failed navigation to a track page. The track is
// treated as empty and the run continues.
func NewNavigationError(track, url string, cause error) *ScrapeError {
	return &ScrapeError{
		Message: fmt.Sprintf("failed to navigate to %s", url),
		Code:    CodeNavigation,
		Track:   track,
		Context: map[string]any{"url": url},
		Cause:   cause,
	}
}

// NewListingError marks a track page whose speaker listing never rendered
// within the timeout.
func NewListingError(track, selector string, cause error) *ScrapeError {
	return &ScrapeError{
		Message: fmt.Sprintf("speaker listing %q never became visible", selector),
		Code:    CodeListing,
		Track:   track,
		Context: map[string]any{"selector": selector},
		Cause:   cause,
	}
}

// NewEntryError marks a recoverable failure on a single listing entry.
func NewEntryError(track string, index int, cause error) *ScrapeError {
	return &ScrapeError{
		Message: fmt.Sprintf("failed to extract entry %d", index),
		Code:    CodeEntry,
		Track:   track,
		Context: map[string]any{"index": index},
		Cause:   cause,
	}
}

// NewExportError marks a failure writing an output document.
func NewExportError(path string, cause error) *ScrapeError {
	return &ScrapeError{
		Message: fmt.Sprintf("failed to export %s", path),
		Code:    CodeExport,
		Context: map[string]any{"path": path},
		Cause:   cause,
	}
}
