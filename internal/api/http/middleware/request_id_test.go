package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(seen *string) *gin.Engine {
		r := gin.New()
		r.Use(RequestIDMiddleware())
		r.GET("/ping", func(c *gin.Context) {
			*seen = GetRequestID(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return r
	}

	t.Run("generates an id when missing", func(t *testing.T) {
		var seen string
		r := newRouter(&seen)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		assert.Equal(t, w.Header().Get("X-Request-Id"), seen)
	})

	t.Run("echoes a caller-supplied id", func(t *testing.T) {
		var seen string
		r := newRouter(&seen)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-Id", "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))
		assert.Equal(t, "req-123", seen)
	})
}

func TestGetRequestIDWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	assert.Equal(t, "", GetRequestID(req.Context()))
}
