// ABOUTME: In-memory fan-out of conversation snapshots to rendering subscribers
// ABOUTME: Slow subscribers lose intermediate snapshots but always get the newest

package conversation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	// subscriberBufferSize is the channel buffer for each subscriber.
	subscriberBufferSize = 64
)

// Broadcaster provides in-memory pub/sub for State snapshots. A front end
// subscribes once per mounted view and re-renders from each snapshot it
// receives.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan State // subID -> ch
	closed      bool
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster. Pass nil logger for default.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan State),
		logger:      logger.With("component", "broadcaster"),
	}
}

// Subscribe registers a subscriber and returns its channel and ID. The
// subscription is cleaned up when ctx is cancelled. Subscribing to a closed
// broadcaster returns an already-closed channel.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan State, string) {
	return b.subscribe(ctx, nil)
}

// subscribe is Subscribe with an optional snapshot queued before any
// published one.
func (b *Broadcaster) subscribe(ctx context.Context, initial *State) (<-chan State, string) {
	subID := uuid.New().String()
	ch := make(chan State, subscriberBufferSize)
	if initial != nil {
		ch <- *initial
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, subID
	}
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", subID)

	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish delivers a snapshot to every subscriber without blocking. When a
// subscriber's buffer is full its oldest pending snapshot is discarded so
// the newest one still lands.
func (b *Broadcaster) Publish(s State) {
	// Sends happen under the read lock so Unsubscribe cannot close a channel mid-send.
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- s:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
		b.logger.Debug("dropped stale snapshot for slow subscriber", "sub_id", id)
	}
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}
	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("subscriber removed", "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}
	b.closed = true

	b.logger.Debug("broadcaster closed")
}
