// ABOUTME: Tests for State transitions
// ABOUTME: Covers greeting, immutability of snapshots, error removal and history

package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coursechat/internal/course"
)

func TestNewState_Greeting(t *testing.T) {
	st := NewState("")

	require.Equal(t, 1, st.Len())
	first, ok := st.Last()
	require.True(t, ok)
	assert.Equal(t, RoleAssistant, first.Role)
	assert.Equal(t, KindGreeting, first.Kind)
	assert.Equal(t, DefaultGreeting, first.Content)
	assert.False(t, st.Pending())
	assert.Empty(t, st.ComposingText())
	assert.Empty(t, st.LastError())
	assert.Empty(t, st.LastUserUtterance())
}

func TestNewState_CustomGreeting(t *testing.T) {
	st := NewState("Hallo!")
	first, _ := st.Last()
	assert.Equal(t, "Hallo!", first.Content)
}

func TestState_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewState("")
	withUser := base.AppendUser("hello")
	withReply := withUser.AppendAssistant("hi", nil, "")
	// Appending twice from the same snapshot must not clobber either branch.
	branchA := withUser.AppendErrorMessage("boom")

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, withUser.Len())
	assert.Equal(t, 3, withReply.Len())
	assert.Equal(t, 3, branchA.Len())

	lastReply, _ := withReply.Last()
	lastErr, _ := branchA.Last()
	assert.Equal(t, "hi", lastReply.Content)
	assert.True(t, lastErr.IsError())
}

func TestState_MessagesReturnsCopy(t *testing.T) {
	st := NewState("").AppendUser("hello")
	msgs := st.Messages()
	msgs[1].Content = "tampered"

	again := st.Messages()
	assert.Equal(t, "hello", again[1].Content)
}

func TestState_AppendUserTrimsAndRemembers(t *testing.T) {
	st := NewState("").WithComposingText("  hello  ").AppendUser("  hello  ")

	last, _ := st.Last()
	assert.Equal(t, RoleUser, last.Role)
	assert.Equal(t, "hello", last.Content)
	assert.Equal(t, "hello", st.LastUserUtterance())
	assert.Equal(t, "  hello  ", st.ComposingText(), "append does not clear composing text")
}

func TestState_AppendAssistantClearsError(t *testing.T) {
	courses := []course.Course{{ID: 1, Title: "A1"}, {ID: 2, Title: "A2"}}
	st := NewState("").AppendUser("x").AppendErrorMessage("boom")
	require.Equal(t, "boom", st.LastError())

	st = st.AppendAssistant("here you go", courses, "raw")
	assert.Empty(t, st.LastError())

	last, _ := st.Last()
	assert.Equal(t, KindReply, last.Kind)
	assert.Equal(t, "raw", last.AIContent)
	require.Len(t, last.Courses, 2)
	assert.Equal(t, 1, last.Courses[0].ID)

	courses[0].Title = "changed"
	last, _ = st.Last()
	assert.Equal(t, "A1", last.Courses[0].Title, "courses are copied on append")
}

func TestState_AppendErrorMessage(t *testing.T) {
	st := NewState("").AppendErrorMessage("network down")

	last, _ := st.Last()
	assert.Equal(t, RoleAssistant, last.Role)
	assert.True(t, last.IsError())
	assert.Equal(t, "Sorry, I encountered an error: network down. Please try again.", last.Content)
	assert.Equal(t, "network down", st.LastError())
}

func TestState_RemoveLastErrorMessage(t *testing.T) {
	st := NewState("").AppendUser("hello").AppendErrorMessage("boom")
	removed := st.RemoveLastErrorMessage()

	assert.Equal(t, 2, removed.Len())
	last, _ := removed.Last()
	assert.Equal(t, RoleUser, last.Role)
	assert.Equal(t, 3, st.Len(), "original snapshot untouched")
}

func TestState_RemoveLastErrorMessage_KeepsNonErrors(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"greeting only", NewState("")},
		{"trailing user turn", NewState("").AppendUser("hello")},
		{"trailing real reply", NewState("").AppendUser("hello").AppendAssistant("hi", nil, "")},
		{"empty log", State{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.state.RemoveLastErrorMessage()
			assert.Equal(t, tt.state.Len(), got.Len())
		})
	}
}

func TestState_HistoryExcludesGreeting(t *testing.T) {
	st := NewState("").
		AppendUser("first").
		AppendAssistant("reply one", nil, "").
		AppendUser("second").
		AppendErrorMessage("boom")

	history := st.History()
	require.Len(t, history, st.Len()-1)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, RoleAssistant, history[3].Role)
	assert.Contains(t, history[3].Content, "boom")
	for _, h := range history {
		assert.NotEqual(t, DefaultGreeting, h.Content)
		assert.False(t, h.Timestamp.IsZero())
	}
}

func TestNewMessageID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	st := NewState("")
	for range 200 {
		st = st.AppendUser("x")
	}
	for _, m := range st.Messages() {
		assert.False(t, seen[m.ID], "duplicate id %s", m.ID)
		seen[m.ID] = true
	}
}
