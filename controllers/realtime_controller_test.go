package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metabolic-care/middlewares"
	"metabolic-care/services"
)

func init() { gin.SetMode(gin.TestMode) }

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"no origin header", []string{"https://app.example"}, "", true},
		{"wildcard", []string{"*"}, "https://evil.example", true},
		{"listed", []string{"https://a.example", "https://app.example"}, "https://app.example", true},
		{"case insensitive", []string{"https://App.Example"}, "https://app.example", true},
		{"not listed", []string{"https://app.example"}, "https://evil.example", false},
		{"empty list", nil, "https://app.example", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, originAllowed(tt.allowed)(r))
		})
	}
}

func TestAlertController_StreamOrigin(t *testing.T) {
	h := NewAlertController(nil, services.NewRealtimeHub(), []string{"https://app.example"})
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { c.Set(middlewares.ContextUserKey, "user-1") }, h.Stream)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://app.example"}})
	require.NoError(t, err)
	conn.Close()
}
