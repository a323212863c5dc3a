// Package ui provides the Bubble Tea TUI for browsing events.
package ui

import (
	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/listing"
)

// StateChanged carries the latest listing controller snapshot.
type StateChanged struct {
	State listing.State
}

// SegmentsLoaded is sent when the category picker options are fetched.
type SegmentsLoaded struct {
	Segments []domain.Segment
	Err      error
}

// FavoritesLoaded is sent when the favorites screen reads the store.
type FavoritesLoaded struct {
	Events []domain.Event
	Err    error
}

// FavoriteStatus reports whether an event is saved, after a lookup or a toggle.
type FavoriteStatus struct {
	ID    string
	Saved bool
	Err   error
}
