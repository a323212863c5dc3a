// Package listing holds the event list state machine: filter edits are
// debounced into reset-fetches, scrolling appends further pages, and a
// single-flight guard keeps requests strictly sequential.
package listing

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yair/eventscout/pkg/domain"
	"github.com/yair/eventscout/pkg/logging"
)

// EventSearcher is the slice of the catalog the controller needs.
type EventSearcher interface {
	SearchEvents(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error)
}

// State is a snapshot of the controller. Page is the cursor of the next
// page to request; it is 0 until the first successful reset-fetch.
//
// Version increases with every published transition. Snapshots can reach
// an OnChange callback out of order when transitions race, so consumers
// that keep only the latest state should compare versions.
type State struct {
	Version        uint64
	Filter         domain.Filter
	Events         []domain.Event
	Page           int
	InitialLoading bool
	LoadingMore    bool
	Err            error
}

// Loading reports whether a fetch of either kind is outstanding.
func (s State) Loading() bool {
	return s.InitialLoading || s.LoadingMore
}

type Option func(*Controller)

func WithAfterFunc(afterFunc AfterFunc) Option {
	return func(c *Controller) {
		c.afterFunc = afterFunc
	}
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logging.OrDiscard(logger)
	}
}

// WithDedupe drops appended events whose ID is already in the collection.
func WithDedupe(enabled bool) Option {
	return func(c *Controller) {
		c.dedupe = enabled
	}
}

// WithOnChange registers fn to receive a snapshot after every state
// transition. fn runs on whichever goroutine caused the transition and must
// not call back into the controller synchronously.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

type Controller struct {
	catalog   EventSearcher
	afterFunc AfterFunc
	debounce  time.Duration
	dedupe    bool
	onChange  func(State)
	logger    *log.Logger

	baseCtx context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex
	state   State
	pending TimerHandle
	armed   uint64
	closed  bool
}

func New(catalog EventSearcher, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		catalog:   catalog,
		afterFunc: DefaultAfterFunc,
		debounce:  DefaultDebounce,
		logger:    logging.Discard(),
		baseCtx:   ctx,
		cancel:    cancel,
		state:     State{Events: []domain.Event{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// changedLocked stamps a new version on the state and returns the snapshot
// to publish for it.
func (c *Controller) changedLocked() State {
	c.state.Version++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Events = append([]domain.Event(nil), c.state.Events...)
	return s
}

// SetField records one filter field and schedules a debounced reset-fetch.
func (c *Controller) SetField(field domain.FilterField, value string) error {
	c.mu.Lock()
	filter, err := c.state.Filter.With(field, value)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	c.SetFilter(filter)
	return nil
}

// SetFilter records filter immediately and (re)arms the debounce timer. Only
// the last filter within a quiet window produces a request.
func (c *Controller) SetFilter(filter domain.Filter) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state.Filter = filter
	c.armLocked()
	snapshot := c.changedLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *Controller) armLocked() {
	if c.pending != nil {
		c.pending.Stop()
	}

	c.armed++
	generation := c.armed
	c.pending = c.afterFunc(c.debounce, func() {
		c.fireDebounce(generation)
	})
}

func (c *Controller) fireDebounce(generation uint64) {
	c.mu.Lock()
	if c.closed || c.pending == nil || c.armed != generation {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	if c.state.Loading() {
		// Try again once the outstanding fetch has had time to finish.
		c.armLocked()
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.resetFetch(c.baseCtx)
}

// Search cancels any pending debounce and runs a reset-fetch immediately.
// It blocks until the fetch completes and reports false when the request
// was rejected because another fetch is outstanding or the controller is
// closed.
func (c *Controller) Search(ctx context.Context) bool {
	c.mu.Lock()
	if c.pending != nil && !c.state.Loading() {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()

	return c.resetFetch(ctx)
}

// LoadMore appends the next page. It is a no-op before the first
// successful load and while any fetch is outstanding.
func (c *Controller) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.state.Loading() || len(c.state.Events) == 0 {
		c.mu.Unlock()
		return false
	}
	c.state.LoadingMore = true
	filter := c.state.Filter
	page := c.state.Page
	snapshot := c.changedLocked()
	c.mu.Unlock()

	c.notify(snapshot)

	fetchID := uuid.NewString()
	c.logger.Debug("loading more events", "fetch_id", fetchID, "page", page)

	events, err := c.search(ctx, filter, page)

	c.mu.Lock()
	c.state.LoadingMore = false
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding result after close", "fetch_id", fetchID)
		return true
	}
	if err != nil {
		c.state.Err = err
		c.logger.Warn("load more failed", "fetch_id", fetchID, "page", page, "err", err)
	} else {
		c.state.Events = c.appendLocked(events)
		c.state.Page = page + 1
		c.state.Err = nil
		c.logger.Debug("page appended", "fetch_id", fetchID, "received", len(events), "total", len(c.state.Events))
	}
	snapshot = c.changedLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return true
}

func (c *Controller) resetFetch(ctx context.Context) bool {
	c.mu.Lock()
	if c.closed || c.state.Loading() {
		c.mu.Unlock()
		return false
	}
	c.state.InitialLoading = true
	c.state.Page = 0
	filter := c.state.Filter
	snapshot := c.changedLocked()
	c.mu.Unlock()

	c.notify(snapshot)

	fetchID := uuid.NewString()
	c.logger.Debug("searching events", "fetch_id", fetchID, "keyword", filter.Keyword, "city", filter.City, "segment", filter.SegmentID)

	events, err := c.search(ctx, filter, 0)

	c.mu.Lock()
	c.state.InitialLoading = false
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding result after close", "fetch_id", fetchID)
		return true
	}
	if err != nil {
		c.state.Err = err
		c.logger.Warn("search failed", "fetch_id", fetchID, "err", err)
	} else {
		c.state.Events = events
		c.state.Page = 1
		c.state.Err = nil
		c.logger.Debug("events loaded", "fetch_id", fetchID, "count", len(events))
	}
	snapshot = c.changedLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return true
}

// search runs one catalog call bounded by both ctx and the controller's
// lifetime.
func (c *Controller) search(ctx context.Context, filter domain.Filter, page int) ([]domain.Event, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.baseCtx, cancel)
	defer stop()

	events, err := c.catalog.SearchEvents(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

func (c *Controller) appendLocked(events []domain.Event) []domain.Event {
	if !c.dedupe {
		return append(c.state.Events, events...)
	}

	seen := make(map[string]bool, len(c.state.Events))
	for _, event := range c.state.Events {
		seen[event.ID] = true
	}
	merged := c.state.Events
	for _, event := range events {
		if seen[event.ID] {
			continue
		}
		seen[event.ID] = true
		merged = append(merged, event)
	}
	return merged
}

// Close cancels the pending debounce and any outstanding request. Results
// that arrive afterwards are discarded. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.mu.Unlock()

	c.cancel()
}

func (c *Controller) notify(state State) {
	if c.onChange != nil {
		c.onChange(state)
	}
}
