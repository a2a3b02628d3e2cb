// ABOUTME: Chat endpoint of the assistant service
// ABOUTME: Implements conversation.Sender over POST /chat/message

package assistant

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/2389/coursechat/internal/conversation"
	"github.com/2389/coursechat/internal/course"
)

// isoTimestamp matches JavaScript's Date.toISOString output.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// ChatRequest is the body of POST /chat/message.
type ChatRequest struct {
	Message     string           `json:"message"`
	ChatHistory []HistoryMessage `json:"chat_history"`
}

// HistoryMessage is one prior turn in ChatRequest.
type HistoryMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatReply is the data payload of a successful chat response.
type ChatReply struct {
	Message   string          `json:"message"`
	Courses   []course.Course `json:"courses,omitempty"`
	AIContent string          `json:"ai_content,omitempty"`
}

// Chat sends message with the given prior turns and returns the reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if req.ChatHistory == nil {
		req.ChatHistory = []HistoryMessage{}
	}
	return call[ChatReply](ctx, c, "sending message", http.MethodPost, "/chat/message", nil, req)
}

// SendMessage implements conversation.Sender.
func (c *Client) SendMessage(ctx context.Context, message string, history []conversation.HistoryEntry) (*conversation.Reply, error) {
	reply, err := c.Chat(ctx, ChatRequest{
		Message:     message,
		ChatHistory: toHistoryMessages(history),
	})
	if err != nil {
		return nil, err
	}
	return &conversation.Reply{
		Message:   reply.Message,
		Courses:   reply.Courses,
		AIContent: reply.AIContent,
	}, nil
}

func toHistoryMessages(history []conversation.HistoryEntry) []HistoryMessage {
	return lo.Map(history, func(h conversation.HistoryEntry, _ int) HistoryMessage {
		return HistoryMessage{
			Role:      string(h.Role),
			Content:   h.Content,
			Timestamp: formatTimestamp(h.Timestamp),
		}
	})
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(isoTimestamp)
}

var _ conversation.Sender = (*Client)(nil)
