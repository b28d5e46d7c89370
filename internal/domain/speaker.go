package domain

import "time"

// AbsentHandle marks a social field with no extractable value.
const AbsentHandle = "N/A"

// Track identifies one speaker listing page grouping entries by category.
// The list of tracks is fixed at configuration time and immutable for a run.
type Track struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Speaker is one extracted listing entry.
//
// Order is the zero-based position within the track as first observed on the
// page. It is used only for sequencing and deduplication tie-breaking and
// never appears in exported output.
type Speaker struct {
	Name      string
	Tag       string
	ImageURL  string
	XHandle   string
	Instagram string
	LinkedIn  string
	Order     int
}

// NewSpeaker returns a speaker placeholder at the given on-page position with
// every social slot set to the absent sentinel.
func NewSpeaker(order int) Speaker {
	return Speaker{
		XHandle:   AbsentHandle,
		Instagram: AbsentHandle,
		LinkedIn:  AbsentHandle,
		Order:     order,
	}
}

// TrackResult holds the speakers extracted from one track, in on-page order.
type TrackResult struct {
	Track    Track
	Speakers []Speaker
}

// HandleStats counts speakers with a resolved handle per platform.
type HandleStats struct {
	WithX         int
	WithInstagram int
	WithLinkedIn  int
}

// Stats tallies resolved handles across the track's speakers.
func (r TrackResult) Stats() HandleStats {
	var st HandleStats
	for _, sp := range r.Speakers {
		if sp.XHandle != AbsentHandle {
			st.WithX++
		}
		if sp.Instagram != AbsentHandle {
			st.WithInstagram++
		}
		if sp.LinkedIn != AbsentHandle {
			st.WithLinkedIn++
		}
	}
	return st
}

// RunResult is the full output of one execution. Tracks is a slice rather
// than a map so that configured track order is preserved; tracks that yielded
// zero speakers are omitted entirely.
type RunResult struct {
	Tracks    []TrackResult
	BaseURL   string
	ScrapedAt time.Time
}

// TotalSpeakers returns the speaker count summed over all tracks.
func (r RunResult) TotalSpeakers() int {
	total := 0
	for _, tr := range r.Tracks {
		total += len(tr.Speakers)
	}
	return total
}

// Stats aggregates handle coverage over all tracks.
func (r RunResult) Stats() HandleStats {
	var st HandleStats
	for _, tr := range r.Tracks {
		ts := tr.Stats()
		st.WithX += ts.WithX
		st.WithInstagram += ts.WithInstagram
		st.WithLinkedIn += ts.WithLinkedIn
	}
	return st
}
