package domain

import (
	"context"
)

type Catalog interface {
	SearchEvents(ctx context.Context, filter Filter, page int) ([]Event, error)
	ListClassifications(ctx context.Context) ([]Classification, error)
	GetGenre(ctx context.Context, id string) GenreResult
	GetEvent(ctx context.Context, id string) (*Event, error)
}

type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type FavoritesRepository interface {
	GetAll(ctx context.Context) ([]Event, error)
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, event Event) (bool, error)
	Remove(ctx context.Context, id string) error
}
