package utils

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production").Debug("hidden")
	newLogger(&buf, "production").Info("shown", "session_id", "abc")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"session_id":"abc"`)

	buf.Reset()
	newLogger(&buf, "development").Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}

func TestSlogLogger_LogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	logger.LogRequest("GET", "/health", 200, "1ms")
	logger.LogRequest("POST", "/api/v1/sessions", 400, "1ms")
	logger.LogRequest("POST", "/api/v1/sessions", 503, "1ms")

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"level":"ERROR"`)
}

func TestRequestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, requestLevel(http.StatusNoContent))
	assert.Equal(t, slog.LevelInfo, requestLevel(http.StatusFound))
	assert.Equal(t, slog.LevelWarn, requestLevel(http.StatusNotFound))
	assert.Equal(t, slog.LevelWarn, requestLevel(499))
	assert.Equal(t, slog.LevelError, requestLevel(http.StatusInternalServerError))
}

func TestSlogLogger_LogError(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "production").With("component", "test").LogError(errors.New("boom"), "failed")

	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")

	router := gin.New()
	router.GET("/sessions/:id", ContextLogger(logger), func(c *gin.Context) {
		GetLoggerFromContext(c).Info("handled")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/s-1", nil)
	req.Header.Set("X-Request-ID", "req-9")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, buf.String(), `"session_id":"s-1"`)
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
}
