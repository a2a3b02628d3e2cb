// ABOUTME: Concurrency-safe holder of the current conversation State
// ABOUTME: Applies transitions under a lock and publishes each new snapshot

package conversation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/2389/coursechat/internal/course"
)

// Store owns the live State of one chat session. Each mutation replaces the
// current snapshot with a new one and publishes it to subscribers in the
// order the mutations were applied.
type Store struct {
	mu          sync.Mutex
	state       State
	broadcaster *Broadcaster
	logger      *slog.Logger
}

// NewStore creates a store initialized with a single greeting message.
func NewStore(greeting string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state:       NewState(greeting),
		broadcaster: NewBroadcaster(logger),
		logger:      logger.With("component", "store"),
	}
}

// Snapshot returns the current State.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel of snapshots, primed with the current one.
func (s *Store) Subscribe(ctx context.Context) (<-chan State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broadcaster.subscribe(ctx, &s.state)
}

// Unsubscribe ends a subscription created by Subscribe.
func (s *Store) Unsubscribe(subID string) {
	s.broadcaster.Unsubscribe(subID)
}

// Close ends all subscriptions.
func (s *Store) Close() {
	s.broadcaster.Close()
}

// Transact applies fn to the current State inside the store's critical
// section. If fn returns an error the State is left untouched and nothing is
// published.
func (s *Store) Transact(fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	s.broadcaster.Publish(next)
	return next, nil
}

// Update applies an infallible transition and returns the new State.
func (s *Store) Update(fn func(State) State) State {
	next, _ := s.Transact(func(st State) (State, error) {
		return fn(st), nil
	})
	return next
}

func (s *Store) SetComposingText(text string) State {
	return s.Update(func(st State) State { return st.WithComposingText(text) })
}

func (s *Store) SetPending(pending bool) State {
	return s.Update(func(st State) State { return st.WithPending(pending) })
}

func (s *Store) AppendUser(text string) State {
	return s.Update(func(st State) State { return st.AppendUser(text) })
}

func (s *Store) AppendAssistant(content string, courses []course.Course, aiContent string) State {
	return s.Update(func(st State) State { return st.AppendAssistant(content, courses, aiContent) })
}

func (s *Store) AppendErrorMessage(reason string) State {
	s.logger.Debug("appending error message", "reason", reason)
	return s.Update(func(st State) State { return st.AppendErrorMessage(reason) })
}

func (s *Store) RemoveLastErrorMessage() State {
	return s.Update(func(st State) State { return st.RemoveLastErrorMessage() })
}
