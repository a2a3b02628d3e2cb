// ABOUTME: Immutable conversation state and its pure transition functions
// ABOUTME: Every transition returns a new State; prior snapshots are never mutated

package conversation

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/2389/coursechat/internal/course"
)

// State is a snapshot of one chat session. The zero value is an empty
// conversation without a greeting; use NewState for a fresh session.
type State struct {
	messages          []Message
	composingText     string
	pending           bool
	lastError         string
	lastUserUtterance string
}

// NewState returns a conversation holding only the assistant greeting.
// An empty greeting uses DefaultGreeting.
func NewState(greeting string) State {
	if strings.TrimSpace(greeting) == "" {
		greeting = DefaultGreeting
	}
	return State{
		messages: []Message{newMessage(RoleAssistant, KindGreeting, greeting)},
	}
}

// Messages returns a copy of the message log in display order.
func (s State) Messages() []Message {
	return slices.Clone(s.messages)
}

// Len is the number of messages in the log.
func (s State) Len() int {
	return len(s.messages)
}

// Last returns the most recent message, if any.
func (s State) Last() (Message, bool) {
	if len(s.messages) == 0 {
		return Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

func (s State) ComposingText() string     { return s.composingText }
func (s State) Pending() bool             { return s.pending }
func (s State) LastError() string         { return s.lastError }
func (s State) LastUserUtterance() string { return s.lastUserUtterance }

// WithComposingText replaces the input buffer. Any string is accepted.
func (s State) WithComposingText(text string) State {
	s.composingText = text
	return s
}

// WithPending sets the in-flight flag. It does not guard against races;
// the Dispatcher owns single-flight admission.
func (s State) WithPending(pending bool) State {
	s.pending = pending
	return s
}

// AppendUser appends a user turn with trimmed content and remembers the
// trimmed text for retry. The composing text is left alone.
func (s State) AppendUser(text string) State {
	text = strings.TrimSpace(text)
	s.messages = appendMessage(s.messages, newMessage(RoleUser, KindReply, text))
	s.lastUserUtterance = text
	return s
}

// AppendAssistant appends a reply from the assistant service and clears the
// last error.
func (s State) AppendAssistant(content string, courses []course.Course, aiContent string) State {
	m := newMessage(RoleAssistant, KindReply, content)
	m.Courses = slices.Clone(courses)
	m.AIContent = aiContent
	s.messages = appendMessage(s.messages, m)
	s.lastError = ""
	return s
}

// AppendErrorMessage appends a synthesized assistant message describing the
// failure and records reason as the last error.
func (s State) AppendErrorMessage(reason string) State {
	s.messages = appendMessage(s.messages, newMessage(RoleAssistant, KindError, ErrorContent(reason)))
	s.lastError = reason
	return s
}

// RemoveLastErrorMessage drops the trailing message if it is a synthesized
// error. A trailing user turn or real reply is never removed.
func (s State) RemoveLastErrorMessage() State {
	last, ok := s.Last()
	if !ok || !last.IsError() {
		return s
	}
	s.messages = slices.Clone(s.messages[:len(s.messages)-1])
	return s
}

// History reduces the log to the chat_history sent with the next request.
// The greeting is local and is never included, so a conversation with N
// messages yields N-1 entries. Synthesized error messages are kept.
func (s State) History() []HistoryEntry {
	return lo.FilterMap(s.messages, func(m Message, _ int) (HistoryEntry, bool) {
		if m.Kind == KindGreeting {
			return HistoryEntry{}, false
		}
		return HistoryEntry{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp}, true
	})
}

// appendMessage never writes into a backing array shared with an older snapshot.
func appendMessage(msgs []Message, m Message) []Message {
	return append(slices.Clip(msgs), m)
}
