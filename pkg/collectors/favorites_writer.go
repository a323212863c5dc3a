package collectors

import (
	"context"
	"errors"
	"sync"

	"github.com/yair/eventscout/pkg/domain"
)

// ErrWriterClosed is returned by mutations submitted after Close.
var ErrWriterClosed = errors.New("favorites writer closed")

// FavoritesWriter serializes favorites mutations through one goroutine so
// read-modify-write cycles from different screens cannot interleave. Reads
// pass straight through to the repository.
type FavoritesWriter struct {
	repo domain.FavoritesRepository

	requests chan writeRequest
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

type writeRequest struct {
	ctx   context.Context
	apply func(ctx context.Context) (bool, error)
	reply chan writeResult
}

type writeResult struct {
	changed bool
	err     error
}

func NewFavoritesWriter(repo domain.FavoritesRepository) *FavoritesWriter {
	w := &FavoritesWriter{
		repo:     repo,
		requests: make(chan writeRequest),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *FavoritesWriter) run() {
	defer close(w.doneCh)

	for {
		select {
		case req := <-w.requests:
			changed, err := req.apply(req.ctx)
			req.reply <- writeResult{changed: changed, err: err}
		case <-w.stopCh:
			return
		}
	}
}

// Close stops the writer goroutine and waits for it to exit. Safe to call
// more than once.
func (w *FavoritesWriter) Close() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.doneCh
}

func (w *FavoritesWriter) submit(ctx context.Context, apply func(ctx context.Context) (bool, error)) (bool, error) {
	req := writeRequest{ctx: ctx, apply: apply, reply: make(chan writeResult, 1)}

	select {
	case w.requests <- req:
	case <-w.stopCh:
		return false, ErrWriterClosed
	case <-ctx.Done():
		return false, ctx.Err()
	}

	res := <-req.reply
	return res.changed, res.err
}

func (w *FavoritesWriter) GetAll(ctx context.Context) ([]domain.Event, error) {
	return w.repo.GetAll(ctx)
}

func (w *FavoritesWriter) Contains(ctx context.Context, id string) (bool, error) {
	return w.repo.Contains(ctx, id)
}

func (w *FavoritesWriter) Add(ctx context.Context, event domain.Event) (bool, error) {
	return w.submit(ctx, func(ctx context.Context) (bool, error) {
		return w.repo.Add(ctx, event)
	})
}

func (w *FavoritesWriter) Remove(ctx context.Context, id string) error {
	_, err := w.submit(ctx, func(ctx context.Context) (bool, error) {
		return true, w.repo.Remove(ctx, id)
	})
	return err
}

// Toggle removes event if it is saved and adds it otherwise, as one step.
// It reports whether the event is a favorite afterwards.
func (w *FavoritesWriter) Toggle(ctx context.Context, event domain.Event) (bool, error) {
	return w.submit(ctx, func(ctx context.Context) (bool, error) {
		saved, err := w.repo.Contains(ctx, event.ID)
		if err != nil {
			return false, err
		}
		if saved {
			return false, w.repo.Remove(ctx, event.ID)
		}
		if _, err := w.repo.Add(ctx, event); err != nil {
			return false, err
		}
		return true, nil
	})
}
