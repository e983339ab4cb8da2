package utils

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	base := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	router := gin.New()
	router.Use(ContextLogger(base))
	router.GET("/ping", func(c *gin.Context) {
		logger, ok := LoggerFromContext(c)
		require.True(t, ok)
		logger.Info("pong")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	req.Header.Set(StudentIDHeader, "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-7", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
	assert.Contains(t, buf.String(), `"student_id":"alice"`)
	assert.Contains(t, buf.String(), `"path":"/ping"`)
}

func TestLoggerFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	logger, ok := LoggerFromContext(c)
	assert.False(t, ok)
	assert.Nil(t, logger)
}
