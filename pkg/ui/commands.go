package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/logging"
)

// Lister is the listing controller surface the TUI drives.
type Lister interface {
	SetField(field domain.FilterField, value string) error
	Search(ctx context.Context) bool
	LoadMore(ctx context.Context) bool
	Close()
}

type SegmentSource interface {
	ListClassifications(ctx context.Context) ([]domain.Classification, error)
}

type FavoritesStore interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
	Contains(ctx context.Context, id string) (bool, error)
	Toggle(ctx context.Context, event domain.Event) (bool, error)
}

// Commands builds the AppConfig that connects the App to its backends.
// Controller state reaches the App separately, through a StateRelay.
func Commands(ctx context.Context, lister Lister, segments SegmentSource, favorites FavoritesStore, logger *log.Logger) AppConfig {
	logger = logging.OrDiscard(logger)

	return AppConfig{
		SetField: func(field domain.FilterField, value string) {
			if err := lister.SetField(field, value); err != nil {
				logger.Warn("filter edit rejected", "field", field, "err", err)
			}
		},
		Search: func() tea.Cmd {
			return func() tea.Msg {
				lister.Search(ctx)
				return nil
			}
		},
		LoadMore: func() tea.Cmd {
			return func() tea.Msg {
				lister.LoadMore(ctx)
				return nil
			}
		},
		LoadSegments: func() tea.Cmd {
			return func() tea.Msg {
				classifications, err := segments.ListClassifications(ctx)
				if err != nil {
					logger.Error("failed to load classifications", "err", err)
					return SegmentsLoaded{Err: err}
				}
				return SegmentsLoaded{Segments: domain.UniqueSegments(classifications)}
			}
		},
		LoadFavorites: func() tea.Cmd {
			return func() tea.Msg {
				events, err := favorites.GetAll(ctx)
				return FavoritesLoaded{Events: events, Err: err}
			}
		},
		CheckFavorite: func(id string) tea.Cmd {
			return func() tea.Msg {
				saved, err := favorites.Contains(ctx, id)
				return FavoriteStatus{ID: id, Saved: saved, Err: err}
			}
		},
		ToggleFavorite: func(event domain.Event) tea.Cmd {
			return func() tea.Msg {
				saved, err := favorites.Toggle(ctx, event)
				if err != nil {
					logger.Error("failed to toggle favorite", "id", event.ID, "err", err)
				}
				return FavoriteStatus{ID: event.ID, Saved: saved, Err: err}
			}
		},
		Close: lister.Close,
	}
}
