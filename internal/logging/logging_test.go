package logging

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

// recordingHandler captures records at or above its level, optionally
// failing every Handle call.
type recordingHandler struct {
	level    slog.Level
	fail     error
	received []string
}

func (h *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	if h.fail != nil {
		return h.fail
	}
	h.received = append(h.received, record.Message)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandlerRespectsPerHandlerLevels(t *testing.T) {
	verbose := &recordingHandler{level: slog.LevelDebug}
	errorsOnly := &recordingHandler{level: slog.LevelError}
	multi := NewMultiHandler(verbose, errorsOnly)

	ctx := context.Background()
	assert.True(t, multi.Enabled(ctx, slog.LevelDebug))

	info := slog.NewRecord(time.Now(), slog.LevelInfo, "routine", 0)
	require.NoError(t, multi.Handle(ctx, info))

	boom := slog.NewRecord(time.Now(), slog.LevelError, "boom", 0)
	require.NoError(t, multi.Handle(ctx, boom))

	assert.Equal(t, []string{"routine", "boom"}, verbose.received)
	assert.Equal(t, []string{"boom"}, errorsOnly.received)
}

func TestMultiHandlerDeliversPastFailures(t *testing.T) {
	failure := errors.New("sink unavailable")
	broken := &recordingHandler{level: slog.LevelInfo, fail: failure}
	healthy := &recordingHandler{level: slog.LevelInfo}
	multi := NewMultiHandler(broken, healthy)

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "still delivered", 0)
	err := multi.Handle(context.Background(), record)

	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []string{"still delivered"}, healthy.received)
}
