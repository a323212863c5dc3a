package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/yair/eventscout/pkg/domain"
)

type fakeLister struct {
	edits    []fieldEdit
	searches int
	more     int
	closed   bool
	setErr   error
}

func (f *fakeLister) SetField(field domain.FilterField, value string) error {
	f.edits = append(f.edits, fieldEdit{field, value})
	return f.setErr
}

func (f *fakeLister) Search(ctx context.Context) bool {
	f.searches++
	return true
}

func (f *fakeLister) LoadMore(ctx context.Context) bool {
	f.more++
	return true
}

func (f *fakeLister) Close() { f.closed = true }

type fakeSegments struct {
	classifications []domain.Classification
	err             error
}

func (f *fakeSegments) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	return f.classifications, f.err
}

type fakeFavorites struct {
	saved map[string]domain.Event
	err   error
}

func (f *fakeFavorites) GetAll(ctx context.Context) ([]domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	events := make([]domain.Event, 0, len(f.saved))
	for _, e := range f.saved {
		events = append(events, e)
	}
	return events, nil
}

func (f *fakeFavorites) Contains(ctx context.Context, id string) (bool, error) {
	_, ok := f.saved[id]
	return ok, f.err
}

func (f *fakeFavorites) Toggle(ctx context.Context, event domain.Event) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.saved[event.ID]; ok {
		delete(f.saved, event.ID)
		return false, nil
	}
	f.saved[event.ID] = event
	return true, nil
}

func TestCommands(t *testing.T) {
	ctx := context.Background()
	lister := &fakeLister{}
	segments := &fakeSegments{classifications: []domain.Classification{
		{Segment: &domain.Segment{ID: "KZ1", Name: "Music"}},
		{Segment: &domain.Segment{ID: "KZ1", Name: "Music"}},
		{Segment: &domain.Segment{ID: "KZ2", Name: "Sports"}},
	}}
	favorites := &fakeFavorites{saved: map[string]domain.Event{}}
	cfg := Commands(ctx, lister, segments, favorites, nil)

	t.Run("filter and fetch", func(t *testing.T) {
		cfg.SetField(domain.FieldKeyword, "jazz")
		if len(lister.edits) != 1 || lister.edits[0].value != "jazz" {
			t.Errorf("expected edit forwarded, got %+v", lister.edits)
		}

		if msg := cfg.Search()(); msg != nil {
			t.Errorf("expected no message from search, got %T", msg)
		}
		cfg.LoadMore()()
		if lister.searches != 1 || lister.more != 1 {
			t.Errorf("expected search and load more, got %d/%d", lister.searches, lister.more)
		}

		lister.setErr = errors.New("rejected")
		cfg.SetField("bogus", "x")
		lister.setErr = nil
	})

	t.Run("segments are deduplicated", func(t *testing.T) {
		msg := cfg.LoadSegments()().(SegmentsLoaded)
		if msg.Err != nil {
			t.Fatalf("expected no error, got %v", msg.Err)
		}
		if len(msg.Segments) != 2 {
			t.Errorf("expected 2 segments, got %d", len(msg.Segments))
		}
	})

	t.Run("segment failure", func(t *testing.T) {
		failing := Commands(ctx, lister, &fakeSegments{err: domain.ErrExternalAPIFailure}, favorites, nil)
		msg := failing.LoadSegments()().(SegmentsLoaded)
		if !errors.Is(msg.Err, domain.ErrExternalAPIFailure) {
			t.Errorf("expected error, got %v", msg.Err)
		}
	})

	t.Run("favorites", func(t *testing.T) {
		event := domain.Event{ID: "E1", Name: "Jazz Night"}

		status := cfg.ToggleFavorite(event)().(FavoriteStatus)
		if !status.Saved || status.ID != "E1" {
			t.Errorf("expected E1 saved, got %+v", status)
		}

		status = cfg.CheckFavorite("E1")().(FavoriteStatus)
		if !status.Saved {
			t.Error("expected E1 reported saved")
		}

		loaded := cfg.LoadFavorites()().(FavoritesLoaded)
		if len(loaded.Events) != 1 {
			t.Errorf("expected 1 favorite, got %d", len(loaded.Events))
		}

		status = cfg.ToggleFavorite(event)().(FavoriteStatus)
		if status.Saved {
			t.Error("expected second toggle to remove")
		}
	})

	t.Run("close", func(t *testing.T) {
		cfg.Close()
		if !lister.closed {
			t.Error("expected Close forwarded")
		}
	})
}
