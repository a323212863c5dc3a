package interfaces

import (
	"context"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/listing"
)

type mockController struct {
	state        listing.State
	setFieldFunc func(field domain.FilterField, value string) error
	searchFunc   func(ctx context.Context) bool
	loadMoreFunc func(ctx context.Context) bool
}

func (m *mockController) State() listing.State {
	return m.state
}

func (m *mockController) SetField(field domain.FilterField, value string) error {
	if m.setFieldFunc != nil {
		return m.setFieldFunc(field, value)
	}
	return nil
}

func (m *mockController) Search(ctx context.Context) bool {
	if m.searchFunc != nil {
		return m.searchFunc(ctx)
	}
	return true
}

func (m *mockController) LoadMore(ctx context.Context) bool {
	if m.loadMoreFunc != nil {
		return m.loadMoreFunc(ctx)
	}
	return true
}

type mockCatalog struct {
	searchFunc          func(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error)
	classificationsFunc func(ctx context.Context) ([]domain.Classification, error)
	genreFunc           func(ctx context.Context, id string) domain.GenreResult
	eventFunc           func(ctx context.Context, id string) (*domain.Event, error)
}

func (m *mockCatalog) SearchEvents(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, filter, page)
	}
	return []domain.Event{}, nil
}

func (m *mockCatalog) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	if m.classificationsFunc != nil {
		return m.classificationsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) GetGenre(ctx context.Context, id string) domain.GenreResult {
	if m.genreFunc != nil {
		return m.genreFunc(ctx, id)
	}
	return domain.GenreResult{}
}

func (m *mockCatalog) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if m.eventFunc != nil {
		return m.eventFunc(ctx, id)
	}
	return nil, domain.ErrEventNotFound
}

type mockFavorites struct {
	getAllFunc   func(ctx context.Context) ([]domain.Event, error)
	containsFunc func(ctx context.Context, id string) (bool, error)
	addFunc      func(ctx context.Context, event domain.Event) (bool, error)
	removeFunc   func(ctx context.Context, id string) error
	toggleFunc   func(ctx context.Context, event domain.Event) (bool, error)
}

func (m *mockFavorites) GetAll(ctx context.Context) ([]domain.Event, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return []domain.Event{}, nil
}

func (m *mockFavorites) Contains(ctx context.Context, id string) (bool, error) {
	if m.containsFunc != nil {
		return m.containsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockFavorites) Add(ctx context.Context, event domain.Event) (bool, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, event)
	}
	return true, nil
}

func (m *mockFavorites) Remove(ctx context.Context, id string) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, id)
	}
	return nil
}

func (m *mockFavorites) Toggle(ctx context.Context, event domain.Event) (bool, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, event)
	}
	return true, nil
}
