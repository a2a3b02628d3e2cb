// ABOUTME: Dispatcher sends user turns to the assistant service one at a time
// ABOUTME: Appends optimistically, reconciles replies or failures, and replays on retry

package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Sender is the assistant service as seen by the Dispatcher. history holds
// only the turns before message.
type Sender interface {
	SendMessage(ctx context.Context, message string, history []HistoryEntry) (*Reply, error)
}

// Dispatcher runs the send pipeline against a Store. At most one send is in
// flight per Store; extra Send or Retry calls made meanwhile are dropped.
type Dispatcher struct {
	store  *Store
	sender Sender
	logger *slog.Logger
}

// NewDispatcher wires a Dispatcher to its store and sender.
func NewDispatcher(store *Store, sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:  store,
		sender: sender,
		logger: logger.With("component", "dispatcher"),
	}
}

// Store returns the store this dispatcher writes to.
func (d *Dispatcher) Store() *Store {
	return d.store
}

// Send trims rawText and, unless it is blank or a send is pending, appends it
// as a user turn, calls the sender once, and appends the reply or an error
// message. It blocks until the send resolves. Failures end up in the chat
// log and in Result; Send never panics on a sender failure.
func (d *Dispatcher) Send(ctx context.Context, rawText string) Result {
	text := strings.TrimSpace(rawText)

	var history []HistoryEntry
	_, err := d.store.Transact(func(st State) (State, error) {
		next, h, err := admit(st, text)
		history = h
		return next, err
	})
	if err != nil {
		return d.dropped(err)
	}

	return d.deliver(ctx, text, history)
}

// Submit sends the current composing text.
func (d *Dispatcher) Submit(ctx context.Context) Result {
	return d.Send(ctx, d.store.Snapshot().ComposingText())
}

// Retry replays the last user utterance. A trailing error message is removed
// first so repeated retries do not pile up failures. The utterance is
// appended again as a new user turn.
func (d *Dispatcher) Retry(ctx context.Context) Result {
	var (
		text    string
		history []HistoryEntry
	)
	_, err := d.store.Transact(func(st State) (State, error) {
		text = st.LastUserUtterance()
		if text == "" {
			return st, ErrNothingToRetry
		}
		if st.Pending() {
			return st, ErrBusy
		}
		next, h, err := admit(st.RemoveLastErrorMessage(), text)
		history = h
		return next, err
	})
	if err != nil {
		return d.dropped(err)
	}

	d.logger.Debug("retrying last message", "length", len(text))
	return d.deliver(ctx, text, history)
}

// admit is the single-flight gate. On success the user turn is appended,
// pending is set and the composing text cleared, all in one transition.
func admit(st State, text string) (State, []HistoryEntry, error) {
	if text == "" {
		return st, nil, ErrEmptyInput
	}
	if st.Pending() {
		return st, nil, ErrBusy
	}
	history := st.History()
	next := st.AppendUser(text).WithPending(true).WithComposingText("")
	return next, history, nil
}

func (d *Dispatcher) dropped(err error) Result {
	status := statusFor(err)
	d.logger.Debug("send dropped", "status", status)
	return Result{Status: status, Err: err, State: d.store.Snapshot()}
}

// deliver calls the sender and reconciles the outcome. Pending is cleared in
// the same transition that appends the reply or error message.
func (d *Dispatcher) deliver(ctx context.Context, text string, history []HistoryEntry) Result {
	d.logger.Debug("sending message", "history_len", len(history))

	reply, err := d.call(ctx, text, history)
	if err == nil && reply == nil {
		err = ErrNoReply
	}

	if err != nil {
		reason := failureReason(err)
		d.logger.Warn("send failed", "error", err)
		st := d.store.Update(func(st State) State {
			return st.AppendErrorMessage(reason).WithPending(false)
		})
		return Result{Status: StatusFailed, Err: err, State: st}
	}

	d.logger.Debug("reply received", "courses", len(reply.Courses))
	st := d.store.Update(func(st State) State {
		return st.AppendAssistant(reply.Message, reply.Courses, reply.AIContent).WithPending(false)
	})
	return Result{Status: StatusDelivered, State: st}
}

// call invokes the sender, turning a panic into an ordinary failure so the
// pending flag is always released.
func (d *Dispatcher) call(ctx context.Context, text string, history []HistoryEntry) (reply *Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = nil
			err = fmt.Errorf("assistant sender panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.sender.SendMessage(ctx, text, history)
}
