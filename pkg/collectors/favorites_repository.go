package collectors

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/logging"
)

// FavoritesKey is the storage key holding the favorites snapshot.
const FavoritesKey = "favorites"

// FavoritesRepository keeps the favorites list as one JSON snapshot in a
// key-value store. Every mutation reads the whole snapshot, changes it in
// memory and writes it back; two concurrent mutations can lose an update.
// Wrap it in a FavoritesWriter when more than one caller mutates.
type FavoritesRepository struct {
	kv     domain.KeyValueStore
	key    string
	logger *log.Logger
}

func NewFavoritesRepository(kv domain.KeyValueStore, logger *log.Logger) (*FavoritesRepository, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value store is required")
	}

	return &FavoritesRepository{
		kv:     kv,
		key:    FavoritesKey,
		logger: logging.OrDiscard(logger),
	}, nil
}

// GetAll returns the persisted favorites, or an empty slice if none were ever saved.
func (r *FavoritesRepository) GetAll(ctx context.Context) ([]domain.Event, error) {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, &domain.StorageError{Op: "read", Key: r.key, Err: err}
	}
	if !ok {
		return []domain.Event{}, nil
	}

	var events []domain.Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, &domain.StorageError{Op: "decode", Key: r.key, Err: err}
	}
	if events == nil {
		events = []domain.Event{}
	}

	return events, nil
}

func (r *FavoritesRepository) Contains(ctx context.Context, id string) (bool, error) {
	events, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}

	return indexOf(events, id) >= 0, nil
}

// Add appends event unless an event with the same ID is already saved, in
// which case nothing is written and added is false.
func (r *FavoritesRepository) Add(ctx context.Context, event domain.Event) (bool, error) {
	if event.ID == "" {
		return false, domain.ErrInvalidRequest
	}

	events, err := r.GetAll(ctx)
	if err != nil {
		return false, err
	}

	if indexOf(events, event.ID) >= 0 {
		return false, nil
	}

	if err := r.write(ctx, append(events, event)); err != nil {
		return false, err
	}

	r.logger.Info("favorite added", "id", event.ID, "count", len(events)+1)
	return true, nil
}

// Remove drops the event with the given ID. The snapshot is rewritten even
// when the ID was not present.
func (r *FavoritesRepository) Remove(ctx context.Context, id string) error {
	events, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if event.ID != id {
			kept = append(kept, event)
		}
	}

	if err := r.write(ctx, kept); err != nil {
		return err
	}

	r.logger.Info("favorite removed", "id", id, "count", len(kept))
	return nil
}

func (r *FavoritesRepository) write(ctx context.Context, events []domain.Event) error {
	data, err := json.Marshal(events)
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: r.key, Err: err}
	}

	if err := r.kv.Set(ctx, r.key, string(data)); err != nil {
		return &domain.StorageError{Op: "write", Key: r.key, Err: err}
	}

	return nil
}

func indexOf(events []domain.Event, id string) int {
	for i, event := range events {
		if event.ID == id {
			return i
		}
	}
	return -1
}
