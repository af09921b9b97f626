package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferedServiceLogger(level slog.Level) (*ServiceLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewServiceLogger(slog.New(handler), LogConfig{
		Service:   "phrase-sort-service",
		Component: "session",
	}), buf
}

func TestServiceLogger_SuccessFollowsHandlerLevel(t *testing.T) {
	t.Run("debug handler keeps success", func(t *testing.T) {
		l, buf := newBufferedServiceLogger(slog.LevelDebug)

		l.LogOperation(context.Background(), "apply_action", "s1", time.Millisecond, nil)

		assert.Contains(t, buf.String(), `"level":"DEBUG"`)
		assert.Contains(t, buf.String(), `"msg":"apply_action operation success"`)
		assert.Contains(t, buf.String(), `"session_id":"s1"`)
	})

	t.Run("info handler drops success", func(t *testing.T) {
		l, buf := newBufferedServiceLogger(slog.LevelInfo)

		l.LogOperation(context.Background(), "apply_action", "s1", time.Millisecond, nil)

		assert.Empty(t, buf.String())
	})
}

func TestServiceLogger_ErrorLevels(t *testing.T) {
	l, buf := newBufferedServiceLogger(slog.LevelInfo)

	l.LogOperation(context.Background(), "get_session", "s2", time.Millisecond, ErrSessionNotFound)
	assert.Contains(t, buf.String(), `"level":"INFO"`)
	assert.Contains(t, buf.String(), `"status":"not_found"`)

	buf.Reset()
	l.LogOperation(context.Background(), "start_session", "s3", time.Millisecond, ValidationErrors{*NewValidationError("file", "is required", nil)})
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"validation_errors_count":1`)

	buf.Reset()
	l.LogOperation(context.Background(), "apply_action", "s4", time.Millisecond, ErrInternalError)
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
