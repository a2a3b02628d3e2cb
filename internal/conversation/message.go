// ABOUTME: Message and history types for a single chat session
// ABOUTME: Messages are immutable values; IDs are timestamp plus random suffix

package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/coursechat/internal/course"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Kind distinguishes synthesized assistant messages from real replies.
type Kind string

const (
	// KindReply is a user turn or a reply returned by the assistant service.
	KindReply Kind = "reply"
	// KindGreeting is the locally synthesized opening message.
	KindGreeting Kind = "greeting"
	// KindError is a locally synthesized message describing a failed send.
	KindError Kind = "error"
)

// DefaultGreeting opens every new conversation.
const DefaultGreeting = "Greetings! I'm Austrian Institute AI - I will inform you about our courses. Just ask me a question and I will help you."

// errorTemplate wraps a failure reason into the chat bubble shown to the user.
const errorTemplate = "Sorry, I encountered an error: %s. Please try again."

// Message is one entry in the conversation log. Treat it as read-only.
type Message struct {
	ID        string
	Role      Role
	Kind      Kind
	Content   string
	Timestamp time.Time
	Courses   []course.Course
	AIContent string
}

// IsError reports whether m is a synthesized failure message.
func (m Message) IsError() bool {
	return m.Role == RoleAssistant && m.Kind == KindError
}

// HasCourses reports whether m carries course offers for a carousel.
func (m Message) HasCourses() bool {
	return len(m.Courses) > 0
}

// HistoryEntry is the reduced form of a prior message sent to the assistant
// service as chat_history.
type HistoryEntry struct {
	Role      Role
	Content   string
	Timestamp time.Time
}

// Reply is the successful result of a send.
type Reply struct {
	Message   string
	Courses   []course.Course
	AIContent string
}

// newMessageID returns a session-unique ID: unix milliseconds plus a random suffix.
func newMessageID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

func newMessage(role Role, kind Kind, content string) Message {
	now := time.Now()
	return Message{
		ID:        newMessageID(now),
		Role:      role,
		Kind:      kind,
		Content:   content,
		Timestamp: now,
	}
}

// ErrorContent renders a failure reason the way it appears in the chat log.
func ErrorContent(reason string) string {
	return fmt.Sprintf(errorTemplate, reason)
}
