package interfaces

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/logging"
)

// Favorites is the favorites surface shared by the HTTP API and the CLI.
// *collectors.FavoritesWriter satisfies it.
type Favorites interface {
	GetAll(ctx context.Context) ([]domain.Event, error)
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, event domain.Event) (bool, error)
	Remove(ctx context.Context, id string) error
	Toggle(ctx context.Context, event domain.Event) (bool, error)
}

// BrowseService answers the one-shot catalog questions that do not go
// through a listing controller.
type BrowseService struct {
	catalog domain.Catalog
	logger  *log.Logger
}

func NewBrowseService(catalog domain.Catalog, logger *log.Logger) *BrowseService {
	return &BrowseService{
		catalog: catalog,
		logger:  logging.OrDiscard(logger),
	}
}

// Search fetches one page without touching any controller state.
func (s *BrowseService) Search(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error) {
	if page < 0 {
		return nil, domain.ErrInvalidRequest
	}

	events, err := s.catalog.SearchEvents(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return events, nil
}

// Segments returns the category picker options, "All Event Types" first.
func (s *BrowseService) Segments(ctx context.Context) ([]domain.Segment, error) {
	classifications, err := s.catalog.ListClassifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}

	segments := domain.UniqueSegments(classifications)
	return append([]domain.Segment{domain.AllEventTypes}, segments...), nil
}

func (s *BrowseService) Event(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	return s.catalog.GetEvent(ctx, id)
}

func (s *BrowseService) Genre(ctx context.Context, id string) domain.GenreResult {
	result := s.catalog.GetGenre(ctx, id)
	if result.Err != nil {
		s.logger.Debug("genre lookup failed", "id", id, "err", result.Err)
	}
	return result
}
