// ABOUTME: Tests for logger construction and the colorized text handler
// ABOUTME: Color output is disabled so lines can be compared as plain text

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/coursechat/internal/config"
)

func init() {
	color.NoColor = true
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.Debug("hidden")
	logger.With("component", "dispatcher").Info("message delivered", "courses", 2)
	logger.Error("send failed", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "INF message delivered component=dispatcher courses=2")
	assert.Contains(t, lines[1], "ERR send failed error=boom")
}

func TestNew_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "debug"}, &buf)

	logger.WithGroup("api").Debug("request", "path", "/chat/message")
	assert.Contains(t, buf.String(), "DBG request api.path=/chat/message")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("skipped")
	logger.Warn("slow reply", "elapsed_ms", 900)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "slow reply", rec["msg"])
	assert.EqualValues(t, 900, rec["elapsed_ms"])
}

func TestColorHandler_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info"}, &buf)

	var wg sync.WaitGroup
	for i := range 20 {
		child := logger.With("worker", i)
		wg.Go(func() {
			child.Info("tick")
		})
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 20)
	for _, l := range lines {
		assert.Contains(t, l, "INF tick worker=")
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
