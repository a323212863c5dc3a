package domain

import (
	"strings"
)

// PageSize is the number of events requested per catalog page.
const PageSize = 20

type Event struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	StartDate string  `json:"start_date,omitempty"`
	Images    []Image `json:"images,omitempty"`
	Venues    []Venue `json:"venues,omitempty"`
	Info      string  `json:"info,omitempty"`
	URL       string  `json:"url,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Ratio  string `json:"ratio,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type Venue struct {
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// PrimaryImageURL returns the first image URL, or "" when the event has none.
func (e Event) PrimaryImageURL() string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0].URL
}

func (e Event) PrimaryVenue() (Venue, bool) {
	if len(e.Venues) == 0 {
		return Venue{}, false
	}
	return e.Venues[0], true
}

func (e Event) DisplayDate() string {
	if e.StartDate == "" {
		return "Unknown"
	}
	return e.StartDate
}

func (e Event) DisplayInfo() string {
	if strings.TrimSpace(e.Info) == "" {
		return "No additional info available."
	}
	return e.Info
}

// Location renders the primary venue as "City, Country", skipping blank parts.
func (e Event) Location() string {
	venue, ok := e.PrimaryVenue()
	if !ok {
		return ""
	}
	parts := make([]string, 0, 2)
	if venue.City != "" {
		parts = append(parts, venue.City)
	}
	if venue.Country != "" {
		parts = append(parts, venue.Country)
	}
	return strings.Join(parts, ", ")
}

type FilterField string

const (
	FieldKeyword FilterField = "keyword"
	FieldCity    FilterField = "city"
	FieldSegment FilterField = "segment"
)

// Filter is the user's search input. Empty strings mean "unconstrained".
type Filter struct {
	Keyword   string `json:"keyword"`
	City      string `json:"city"`
	SegmentID string `json:"segment_id"`
}

// With returns a copy of f with one field replaced.
func (f Filter) With(field FilterField, value string) (Filter, error) {
	switch field {
	case FieldKeyword:
		f.Keyword = value
	case FieldCity:
		f.City = value
	case FieldSegment:
		f.SegmentID = value
	default:
		return f, ValidationError{Field: string(field), Message: "unknown filter field"}
	}
	return f, nil
}
