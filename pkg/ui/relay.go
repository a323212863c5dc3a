package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yair/eventscout/pkg/listing"
)

// StateRelay forwards controller snapshots to the program. Publish never
// blocks, so it is safe to call from inside Update; intermediate snapshots
// are coalesced and only the latest is delivered.
type StateRelay struct {
	mu     sync.Mutex
	latest listing.State
	signal chan struct{}
}

func NewStateRelay() *StateRelay {
	return &StateRelay{signal: make(chan struct{}, 1)}
}

// Publish is meant to be passed to listing.WithOnChange. Snapshots older
// than the one already held are dropped.
func (r *StateRelay) Publish(state listing.State) {
	r.mu.Lock()
	if state.Version < r.latest.Version {
		r.mu.Unlock()
		return
	}
	r.latest = state
	r.mu.Unlock()

	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Run delivers snapshots with send until ctx is done.
func (r *StateRelay) Run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.signal:
			r.mu.Lock()
			state := r.latest
			r.mu.Unlock()
			send(StateChanged{State: state})
		}
	}
}
