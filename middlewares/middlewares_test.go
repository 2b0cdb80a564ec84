package middlewares

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

type staticResolver map[string]string

func (r staticResolver) Resolve(tok string) (string, error) {
	if k, ok := r[tok]; ok {
		return k, nil
	}
	return "", errors.New("unknown token")
}

func init() { gin.SetMode(gin.TestMode) }

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(staticResolver{"good": "user-1"}))
	r.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextUserKey)) })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		url    string
		status int
		body   string
	}{
		{"valid bearer", "Bearer good", "/me", http.StatusOK, "user-1"},
		{"missing header", "", "/me", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic good", "/me", http.StatusUnauthorized, "Authorization header required"},
		{"unknown token", "Bearer bad", "/me", http.StatusUnauthorized, "invalid token"},
		{"query token ignored outside websocket", "", "/me?token=good", http.StatusUnauthorized, "Authorization header required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthMiddleware_WebsocketQueryToken(t *testing.T) {
	r := newAuthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me?token=good", nil)
	req.Header.Set("Connection", "upgrade")
	req.Header.Set("Upgrade", "websocket")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)
	log.Logger = zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping/:id", func(c *gin.Context) { c.String(http.StatusTeapot, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/7", nil))
	rid := w.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, w.Body.String())
	assert.Contains(t, buf.String(), `"path":"/ping/:id"`)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping/8", nil)
	req.Header.Set(HeaderRequestID, "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
}
